// Package env is the process-wide variable store that search bindings write
// into.
package env

import "sync"

// Store is a thread-safe key/value environment.
type Store struct {
	mu   sync.RWMutex
	vars map[string]string
}

func New() *Store {
	return &Store{vars: make(map[string]string)}
}

func (s *Store) Get(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.vars[key]
}

func (s *Store) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vars[key] = value
}

// All returns a copy of every variable.
func (s *Store) All() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cp := make(map[string]string, len(s.vars))
	for k, v := range s.vars {
		cp[k] = v
	}
	return cp
}

var (
	global *Store
	once   sync.Once
)

// Default returns the shared process-wide store.
func Default() *Store {
	once.Do(func() {
		global = New()
	})
	return global
}
