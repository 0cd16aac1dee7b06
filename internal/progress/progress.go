// Package progress generates the fabricated circuit-optimization progress
// stream: a fixed number of epochs, each carrying a random selection of gate
// triples from a small catalog.
//
// A Generator is safe to share between requests. Every Run draws from its own
// random source, so concurrent runs share no mutable state.
package progress

import (
	"context"
	"math/rand/v2"
	"time"
)

// Defaults used by the streaming endpoint.
const (
	DefaultEpochs = 50
	DefaultDelay  = 300 * time.Millisecond

	minGates = 3
	maxGates = 5
)

// GateTriple is one column of a drawn circuit. Values are 1 (filled control),
// 0 (open control) and 3 (target).
type GateTriple [3]int

// Catalog is the closed set of triples every record draws from.
var Catalog = [...]GateTriple{
	{1, 1, 3},
	{1, 3, 1},
	{1, 0, 3},
	{0, 0, 3},
	{0, 1, 3},
}

// InCatalog reports whether g is one of the catalog triples.
func InCatalog(g GateTriple) bool {
	for _, c := range Catalog {
		if c == g {
			return true
		}
	}
	return false
}

// Record is one progress event. It is not modified after emission.
type Record struct {
	TotalEpochs int          `json:"total_epochs"`
	Epoch       int          `json:"epoch"`
	Circuit     []GateTriple `json:"circuit"`
}

// Sample picks between 3 and 5 distinct catalog triples, in random order.
func Sample(r *rand.Rand) []GateTriple {
	k := minGates + r.IntN(maxGates-minGates+1)
	perm := r.Perm(len(Catalog))
	out := make([]GateTriple, k)
	for i := 0; i < k; i++ {
		out[i] = Catalog[perm[i]]
	}
	return out
}

// SourceFunc returns a fresh random generator for one run.
type SourceFunc func() *rand.Rand

// unseeded returns a generator seeded from the runtime's random state.
func unseeded() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Generator produces progress records.
type Generator struct {
	epochs int
	delay  time.Duration
	source SourceFunc
}

// Option configures a Generator.
type Option func(*Generator)

// WithEpochs overrides the number of records per run.
func WithEpochs(n int) Option {
	return func(g *Generator) { g.epochs = n }
}

// WithDelay overrides the pause before each record.
func WithDelay(d time.Duration) Option {
	return func(g *Generator) { g.delay = d }
}

// WithRandSource makes runs reproducible by supplying each run's generator.
func WithRandSource(fn SourceFunc) Option {
	return func(g *Generator) { g.source = fn }
}

// New creates a Generator with the default epoch count and delay.
func New(opts ...Option) *Generator {
	g := &Generator{
		epochs: DefaultEpochs,
		delay:  DefaultDelay,
		source: unseeded,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Epochs returns the number of records each run emits.
func (g *Generator) Epochs() int {
	return g.epochs
}

// Run waits the delay and emits one record per epoch, epochs 1 through
// Epochs(). It stops early with ctx.Err() when ctx is done, or with emit's
// error when emit fails.
func (g *Generator) Run(ctx context.Context, emit func(Record) error) error {
	r := g.source()

	var timer *time.Timer
	if g.delay > 0 {
		timer = time.NewTimer(g.delay)
		defer timer.Stop()
	}

	for epoch := 1; epoch <= g.epochs; epoch++ {
		if timer != nil {
			if epoch > 1 {
				timer.Reset(g.delay)
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		rec := Record{
			TotalEpochs: g.epochs,
			Epoch:       epoch,
			Circuit:     Sample(r),
		}
		if err := emit(rec); err != nil {
			return err
		}
	}
	return nil
}
