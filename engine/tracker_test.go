// engine/tracker_test.go
package engine_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chmenegatti/sqlx/engine"
)

func TestInMemoryTracker(t *testing.T) {
	tracker := engine.NewInMemoryTracker()
	a, b := &Account{Name: "a"}, &Account{Name: "b"}

	assert.False(t, tracker.IsTracked(a))

	tracker.Track(a)
	tracker.Track(a)
	assert.True(t, tracker.IsTracked(a))
	assert.False(t, tracker.IsTracked(b), "identity, not equality")
	assert.Equal(t, 1, tracker.Len())

	tracker.Forget(a)
	assert.False(t, tracker.IsTracked(a))
	assert.Equal(t, 0, tracker.Len())

	tracker.Forget(b)
	assert.False(t, tracker.IsTracked(b))
}

func TestInMemoryTrackerIgnoresValues(t *testing.T) {
	tracker := engine.NewInMemoryTracker()

	tracker.Track(Account{Name: "a"})
	tracker.Track((*Account)(nil))
	tracker.Track(nil)

	assert.Equal(t, 0, tracker.Len())
	assert.False(t, tracker.IsTracked(Account{Name: "a"}))
	assert.False(t, tracker.IsTracked(nil))
}

func TestInMemoryTrackerConcurrent(t *testing.T) {
	tracker := engine.NewInMemoryTracker()
	accounts := make([]*Account, 50)
	for i := range accounts {
		accounts[i] = &Account{ID: int64(i)}
	}

	var wg sync.WaitGroup
	for _, a := range accounts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tracker.Track(a)
			_ = tracker.IsTracked(a)
		}()
	}
	wg.Wait()

	assert.Equal(t, len(accounts), tracker.Len())
	for _, a := range accounts {
		tracker.Forget(a)
	}
	assert.Equal(t, 0, tracker.Len())
}
