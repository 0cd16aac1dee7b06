package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/roach88/qsynth/internal/testutil"
)

// createTestStore creates a new store in a temp directory with a step clock.
func createTestStore(t *testing.T) (*Store, *testutil.StepClock) {
	t.Helper()
	clock := testutil.NewStepClock(time.Time{}, time.Second)
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, WithClock(clock))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, clock
}
