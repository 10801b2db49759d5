// accessor/funcs.go
package accessor

import "sync"

// Getter reads one property of obj.
type Getter func(obj any) any

// Setter writes one property of obj.
type Setter func(obj any, value any) error

// Funcs is an Accessor backed by registered functions, for entities whose
// accessors are written or generated ahead of time.
type Funcs struct {
	mu    sync.RWMutex
	props map[string]funcPair
}

type funcPair struct {
	get Getter
	set Setter
}

var _ Accessor = (*Funcs)(nil)

func NewFuncs() *Funcs {
	return &Funcs{props: make(map[string]funcPair)}
}

// Register installs the accessors of one property.
func (f *Funcs) Register(scope, name string, get Getter, set Setter) *Funcs {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.props[scope+"."+name] = funcPair{get: get, set: set}
	return f
}

func (f *Funcs) lookup(scope, name string) (funcPair, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	p, ok := f.props[scope+"."+name]
	return p, ok
}

func (f *Funcs) Get(obj any, scope, name string) (any, error) {
	p, ok := f.lookup(scope, name)
	if !ok || p.get == nil {
		return nil, nonexistent(scope, name)
	}
	return p.get(obj), nil
}

func (f *Funcs) Set(obj any, scope, name string, value any) error {
	p, ok := f.lookup(scope, name)
	if !ok || p.set == nil {
		return nonexistent(scope, name)
	}
	return p.set(obj, value)
}

func (f *Funcs) Has(_ any, scope, name string) bool {
	_, ok := f.lookup(scope, name)
	return ok
}
