package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/roach88/qsynth/internal/progress"
	"github.com/roach88/qsynth/internal/sse"
	"github.com/roach88/qsynth/internal/store"
)

// defaultOracleBits is used when /api/get-oracle has no bits parameter.
const defaultOracleBits = "01"

// runRequest is the body of POST /api/run-algorithm. Both fields are accepted
// and otherwise unused.
type runRequest struct {
	ProblemInput any `json:"problemInput"`
	WantOutput   any `json:"wantOutput"`
}

type messageRequest struct {
	Content  string `json:"content"`
	UserName string `json:"userName"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type statusResponse struct {
	Status string `json:"status"`
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("write response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, code int, msg string) {
	s.writeJSON(w, code, errorResponse{Error: msg})
}

func (s *Server) handleRunAlgorithm(w http.ResponseWriter, r *http.Request) {
	var req runRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "request body must be a JSON object")
		return
	}

	log := s.logger.With(zap.String("stream", uuid.Must(uuid.NewV7()).String()))
	log.Debug("stream requested",
		zap.Any("problemInput", req.ProblemInput),
		zap.Any("wantOutput", req.WantOutput))

	stream, err := sse.NewWriter(w)
	if err != nil {
		log.Error("cannot stream", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	s.metrics.activeStreams.Inc()
	defer s.metrics.activeStreams.Dec()

	err = s.progress.Run(r.Context(), func(rec progress.Record) error {
		if err := stream.Send(rec); err != nil {
			return err
		}
		s.metrics.streamEvents.Inc()
		return nil
	})
	switch {
	case err == nil:
		log.Debug("stream complete", zap.Int("events", stream.Sent()))
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		log.Debug("client disconnected", zap.Int("events", stream.Sent()))
	case sse.IsSerialization(err):
		log.Error("stream terminated", zap.Int("events", stream.Sent()), zap.Error(err))
	default:
		log.Warn("stream write failed", zap.Int("events", stream.Sent()), zap.Error(err))
	}
}

func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	if s.messages == nil {
		s.writeError(w, http.StatusServiceUnavailable, "message board is not configured")
		return
	}

	messages, err := s.messages.ListMessages(r.Context())
	if err != nil {
		s.logger.Error("list messages", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to read messages")
		return
	}
	s.writeJSON(w, http.StatusOK, messages)
}

func (s *Server) handleCreateMessage(w http.ResponseWriter, r *http.Request) {
	if s.messages == nil {
		s.writeError(w, http.StatusServiceUnavailable, "message board is not configured")
		return
	}

	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "request body must be a JSON object")
		return
	}

	m, err := s.messages.WriteMessage(r.Context(), store.Message{
		Content:  req.Content,
		UserName: req.UserName,
	})
	if errors.Is(err, store.ErrEmptyContent) {
		s.writeError(w, http.StatusBadRequest, "content is required")
		return
	}
	if err != nil {
		s.logger.Error("write message", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to save message")
		return
	}

	s.logger.Info("message stored", zap.String("id", m.ID), zap.Int64("seq", m.Seq))
	s.writeJSON(w, http.StatusCreated, statusResponse{Status: "success"})
}

func (s *Server) handleGetOracle(w http.ResponseWriter, r *http.Request) {
	bits := r.URL.Query().Get("bits")
	if bits == "" {
		bits = defaultOracleBits
	}
	s.writeJSON(w, http.StatusOK, s.oracle.Run(bits))
}
