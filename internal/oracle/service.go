package oracle

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Response is the JSON object printed by the oracle tool and returned by the
// HTTP oracle endpoint. Callers must inspect Success.
type Response struct {
	Success   bool   `json:"success"`
	NumQubits int    `json:"num_qubits,omitempty"`
	QASM      string `json:"qasm,omitempty"`
	Image     string `json:"image,omitempty"`
	Error     string `json:"error,omitempty"`
}

// NoInput is the response for an invocation without a truth table.
func NoInput() Response {
	return Response{Success: false, Error: "No input"}
}

// Report converts a synthesis outcome into a Response. Every failure kind is
// reported the same way.
func Report(r *Result, err error) Response {
	if err != nil {
		return Response{Success: false, Error: failureMessage(err)}
	}
	return Response{
		Success:   true,
		NumQubits: r.NumQubits,
		QASM:      r.QASM,
		Image:     r.ImageBase64(),
	}
}

// Runner runs the oracle tool for one raw argument.
type Runner interface {
	Run(arg string) Response
}

// Metrics counts oracle runs. Register it on a registry with MustRegister.
type Metrics struct {
	Runs      *prometheus.CounterVec
	CacheHits prometheus.Counter
	Duration  prometheus.Histogram
}

// NewMetrics creates unregistered oracle metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		Runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "qsynth",
			Subsystem: "oracle",
			Name:      "runs_total",
			Help:      "Oracle synthesis runs by outcome.",
		}, []string{"outcome"}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "qsynth",
			Subsystem: "oracle",
			Name:      "cache_hits_total",
			Help:      "Oracle responses served from cache.",
		}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "qsynth",
			Subsystem: "oracle",
			Name:      "synthesis_seconds",
			Help:      "Time spent synthesizing uncached oracles.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
	}
}

// Collectors returns every collector for registration.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{m.Runs, m.CacheHits, m.Duration}
}

// Service runs syntheses with optional caching and verification.
//
// Thread-safety: Service is safe for concurrent use; the cache is internally locked.
type Service struct {
	logger  *zap.Logger
	cache   *lru.Cache[string, Response]
	verify  bool
	metrics *Metrics
}

// Option configures a Service.
type Option func(*Service) error

// WithCache keeps the last size responses keyed by normalized truth table.
// A size of zero disables caching.
func WithCache(size int) Option {
	return func(s *Service) error {
		if size == 0 {
			s.cache = nil
			return nil
		}
		c, err := lru.New[string, Response](size)
		if err != nil {
			return errors.Wrap(err, "create oracle cache")
		}
		s.cache = c
		return nil
	}
}

// WithVerify simulates every synthesized circuit before reporting success.
func WithVerify(verify bool) Option {
	return func(s *Service) error {
		s.verify = verify
		return nil
	}
}

// WithMetrics records runs on m.
func WithMetrics(m *Metrics) Option {
	return func(s *Service) error {
		s.metrics = m
		return nil
	}
}

// NewService creates a Service. A nil logger is replaced with a no-op logger.
func NewService(logger *zap.Logger, opts ...Option) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{logger: logger}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Run normalizes arg, synthesizes it and reports the outcome. It never fails:
// errors are carried in the Response.
func (s *Service) Run(arg string) Response {
	table := NormalizeArg(arg)

	if s.cache != nil {
		if resp, ok := s.cache.Get(table); ok {
			s.logger.Debug("oracle cache hit", zap.String("table", table))
			if s.metrics != nil {
				s.metrics.CacheHits.Inc()
				s.metrics.Runs.WithLabelValues(outcome(resp)).Inc()
			}
			return resp
		}
	}

	start := time.Now()
	result, err := Synthesize(table)
	if err == nil && s.verify {
		err = Verify(result)
	}
	elapsed := time.Since(start)

	resp := Report(result, err)
	if err != nil {
		s.logger.Warn("oracle synthesis failed",
			zap.String("table", table),
			zap.String("kind", string(KindOf(err))),
			zap.Error(err))
	} else {
		s.logger.Info("oracle synthesized",
			zap.String("table", table),
			zap.String("expression", result.Expression),
			zap.Int("num_qubits", result.NumQubits),
			zap.Int("ops", len(result.Circuit.Ops)),
			zap.Int("png_bytes", len(result.PNG)),
			zap.Duration("elapsed", elapsed))
	}

	if s.metrics != nil {
		s.metrics.Duration.Observe(elapsed.Seconds())
		s.metrics.Runs.WithLabelValues(outcome(resp)).Inc()
	}
	if s.cache != nil {
		s.cache.Add(table, resp)
	}
	return resp
}

func outcome(resp Response) string {
	if resp.Success {
		return "success"
	}
	return "failure"
}
