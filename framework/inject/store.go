package inject

import (
	"sync"

	"github.com/google/uuid"

	"github.com/km-arc/go-inject/framework/config"
)

// entry holds an erased bound value, or a factory still pending its
// first read.
type entry struct {
	value   any
	factory func() any
}

// Store is one scope's mutable key → value mapping. A store is owned by
// the scope that created it but may be read and written by any number
// of concurrent callers inside that scope; all operations are mutually
// exclusive per store instance. Stores are never shared for mutation
// across forked scopes — entering a scope always copies.
type Store struct {
	mu       sync.Mutex
	id       string
	values   map[boundKey]entry
	classify func() config.Classification
}

// NewStore creates an empty store. The classifier picks which default a
// key seeds on first read; nil means the process-wide probe
// (config.Classify).
func NewStore(classify func() config.Classification) *Store {
	if classify == nil {
		classify = config.Classify
	}
	return &Store{
		id:       uuid.NewString(),
		values:   make(map[boundKey]entry),
		classify: classify,
	}
}

// ID returns the store's snapshot identity, for diagnostics only.
func (s *Store) ID() string { return s.id }

// Len reports how many keys are bound, cached or pending.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.values)
}

// Copy produces an independent store holding the same entries under a
// consistent snapshot. Entries are copied shallowly: bound values are
// shared, not cloned, and pending factories stay pending in both
// stores.
func (s *Store) Copy() *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := &Store{
		id:       uuid.NewString(),
		values:   make(map[boundKey]entry, len(s.values)),
		classify: s.classify,
	}
	for k, e := range s.values {
		out.values[k] = e
	}
	return out
}

// get returns the erased value bound to k, forcing a pending factory.
// Absent keys report false with no side effect.
func (s *Store) get(k boundKey) (any, bool) {
	s.mu.Lock()
	e, ok := s.values[k]
	if !ok {
		s.mu.Unlock()
		return nil, false
	}
	if e.factory == nil {
		s.mu.Unlock()
		return e.value, true
	}
	compute := e.factory
	s.mu.Unlock()

	return s.settle(k, compute()), true
}

// resolve returns the value bound to k, seeding the classifier's
// default if k is unbound. The first read fixes the value for the
// store's remaining lifetime, so later classification changes or
// non-deterministic factories cannot shift it.
func (s *Store) resolve(k boundKey) any {
	s.mu.Lock()
	e, ok := s.values[k]
	if ok && e.factory == nil {
		s.mu.Unlock()
		return e.value
	}
	var compute func() any
	if ok {
		compute = e.factory
	} else {
		env := s.classify()
		compute = func() any { return k.defaultFor(env) }
	}
	s.mu.Unlock()

	// Factories and defaults run unlocked, so they may resolve other
	// keys from this same store.
	return s.settle(k, compute())
}

// settle caches value for k unless a concurrent reader cached first, in
// which case the earlier value wins and is returned.
func (s *Store) settle(k boundKey, value any) any {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.values[k]; ok && cur.factory == nil {
		return cur.value
	}
	s.values[k] = entry{value: value}
	return value
}

// put binds an erased value for k.
func (s *Store) put(k boundKey, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[k] = entry{value: value}
}

// putFactory binds a pending factory for k.
func (s *Store) putFactory(k boundKey, factory func() any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[k] = entry{factory: factory}
}
