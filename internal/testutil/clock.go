package testutil

import (
	"sync"
	"time"
)

// StepClock is a deterministic wall clock for tests.
//
// Every call to Now returns the previous instant plus a fixed step, starting
// from a known time. Stores stamped with StepClock produce the same timestamps
// on every run.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type StepClock struct {
	mu    sync.Mutex
	start time.Time
	step  time.Duration
	calls int64
}

// DefaultClockStart is the first instant returned by NewStepClock(0, 0).
var DefaultClockStart = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// NewStepClock creates a clock whose first Now() is start.
//
// A zero start uses DefaultClockStart; a zero step uses one second.
func NewStepClock(start time.Time, step time.Duration) *StepClock {
	if start.IsZero() {
		start = DefaultClockStart
	}
	if step == 0 {
		step = time.Second
	}
	return &StepClock{start: start, step: step}
}

// Now returns the next instant. Each call advances the clock by one step.
func (c *StepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.start.Add(time.Duration(c.calls) * c.step)
	c.calls++
	return t
}

// Calls returns how many times Now has been called.
func (c *StepClock) Calls() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// Reset rewinds the clock so the next Now() returns the start time again.
func (c *StepClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = 0
}
