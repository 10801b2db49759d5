// engine/tracker.go
package engine

import (
	"reflect"
	"runtime"
	"sync"
	"weak"
)

// Tracker records which entity instances exist in the database.
type Tracker interface {
	Track(entity any)
	Forget(entity any)
	IsTracked(entity any) bool
}

// InMemoryTracker is a Tracker keyed by object identity. It holds weak
// references only: an entry is evicted once its entity is garbage collected.
// Only non-nil pointers can be tracked.
type InMemoryTracker struct {
	mu      sync.Mutex
	entries map[weak.Pointer[byte]]runtime.Cleanup
}

var _ Tracker = (*InMemoryTracker)(nil)

func NewInMemoryTracker() *InMemoryTracker {
	return &InMemoryTracker{entries: make(map[weak.Pointer[byte]]runtime.Cleanup)}
}

func (t *InMemoryTracker) Track(entity any) {
	ptr, ok := identity(entity)
	if !ok {
		return
	}
	key := weak.Make(ptr)
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.entries[key]; ok {
		return
	}
	t.entries[key] = runtime.AddCleanup(ptr, t.evict, key)
}

func (t *InMemoryTracker) Forget(entity any) {
	ptr, ok := identity(entity)
	if !ok {
		return
	}
	key := weak.Make(ptr)
	t.mu.Lock()
	defer t.mu.Unlock()
	if cleanup, ok := t.entries[key]; ok {
		cleanup.Stop()
		delete(t.entries, key)
	}
}

func (t *InMemoryTracker) IsTracked(entity any) bool {
	ptr, ok := identity(entity)
	if !ok {
		return false
	}
	key := weak.Make(ptr)
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok = t.entries[key]
	return ok
}

// Len returns the number of live entries.
func (t *InMemoryTracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

func (t *InMemoryTracker) evict(key weak.Pointer[byte]) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.entries, key)
}

func identity(entity any) (*byte, bool) {
	rv := reflect.ValueOf(entity)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Type().Elem().Size() == 0 {
		return nil, false
	}
	return (*byte)(rv.UnsafePointer()), true
}
