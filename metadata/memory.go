// metadata/memory.go
package metadata

import (
	"reflect"
	"sync"
)

// InMemory is a Store filled by explicit registration.
type InMemory struct {
	mu      sync.RWMutex
	entries map[reflect.Type]*Metadata
}

var _ Store = (*InMemory)(nil)

func NewInMemory() *InMemory {
	return &InMemory{entries: make(map[reflect.Type]*Metadata)}
}

// Register maps t (or the type it points to) to md.
func (s *InMemory) Register(t reflect.Type, md *Metadata) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[Indirect(t)] = md
}

func (s *InMemory) Retrieve(t reflect.Type) (*Metadata, error) {
	t = Indirect(t)
	s.mu.RLock()
	defer s.mu.RUnlock()
	if md, ok := s.entries[t]; ok {
		return md, nil
	}
	return nil, NotFound(className(t))
}

func className(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
