package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

type metrics struct {
	requests      *prometheus.CounterVec
	activeStreams prometheus.Gauge
	streamEvents  prometheus.Counter
}

func newMetrics() *metrics {
	return &metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "qsynth",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		activeStreams: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "qsynth",
			Subsystem: "progress",
			Name:      "active_streams",
			Help:      "Progress streams currently open.",
		}),
		streamEvents: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "qsynth",
			Subsystem: "progress",
			Name:      "events_total",
			Help:      "Progress records sent to clients.",
		}),
	}
}

func (m *metrics) register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.requests, m.activeStreams, m.streamEvents} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// statusRecorder captures the response code. It forwards Flush so streaming
// handlers keep working behind it.
type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.code == 0 {
		r.code = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.code == 0 {
		r.code = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func (s *Server) instrument(route string, h http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		h(rec, r)
		if rec.code == 0 {
			rec.code = http.StatusOK
		}
		s.metrics.requests.WithLabelValues(route, strconv.Itoa(rec.code)).Inc()
		s.logger.Debug("request",
			zap.String("route", route),
			zap.Int("code", rec.code),
			zap.Duration("elapsed", time.Since(start)))
	})
}
