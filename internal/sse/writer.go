// Package sse writes server-sent events.
//
// Every event is a single "data: <json>" line followed by a blank line, and is
// flushed as soon as it is written.
package sse

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

// ErrorKind classifies writer failures.
type ErrorKind string

const (
	// KindSerialization means a value could not be encoded as JSON.
	KindSerialization ErrorKind = "SerializationError"
)

// SerializationError reports a value that could not be encoded. The stream
// should be terminated; the event is not written.
type SerializationError struct {
	Kind ErrorKind
	Err  error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}

// ErrNoFlush is returned by NewWriter when the response cannot be flushed.
var ErrNoFlush = errors.New("response writer does not support flushing")

// Writer streams events over one HTTP response.
type Writer struct {
	w       io.Writer
	flusher http.Flusher
	sent    int
}

// NewWriter sets the event-stream headers on w. It does not write the status
// line; the first Send does.
func NewWriter(w http.ResponseWriter) (*Writer, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, ErrNoFlush
	}
	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	return &Writer{w: w, flusher: flusher}, nil
}

// Send writes v as one event and flushes it.
func (s *Writer) Send(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return &SerializationError{Kind: KindSerialization, Err: err}
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", data); err != nil {
		return errors.Wrap(err, "write event")
	}
	s.flusher.Flush()
	s.sent++
	return nil
}

// Sent returns the number of events written.
func (s *Writer) Sent() int {
	return s.sent
}

// IsSerialization reports whether err is a SerializationError.
func IsSerialization(err error) bool {
	var se *SerializationError
	return errors.As(err, &se)
}
