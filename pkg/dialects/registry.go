// pkg/dialects/registry.go
package dialects

import (
	"sort"
	"sync"

	"github.com/chmenegatti/sqlx/pkg/dialects/common"
)

var (
	dialectsMu sync.RWMutex
	registered = make(map[string]common.Dialect)
)

func init() {
	Register(Generic{})
}

// Register makes a dialect available by its name.
// It panics if d is nil or if a dialect with the same name was already registered.
func Register(d common.Dialect) {
	dialectsMu.Lock()
	defer dialectsMu.Unlock()
	if d == nil {
		panic("dialects: Register dialect is nil")
	}
	if _, dup := registered[d.Name()]; dup {
		panic("dialects: Register called twice for dialect " + d.Name())
	}
	registered[d.Name()] = d
}

// Get returns the dialect registered under name, or nil.
func Get(name string) common.Dialect {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	return registered[name]
}

// Registered returns the sorted names of all registered dialects.
func Registered() []string {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	list := make([]string, 0, len(registered))
	for name := range registered {
		list = append(list, name)
	}
	sort.Strings(list)
	return list
}
