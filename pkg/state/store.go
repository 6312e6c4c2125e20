package state

import "sync"

// Store wraps a plain key/value record so that every write is
// intercepted: a write whose value equals the current one is a no-op
// (no notification), any other write commits the value and then
// notifies subscribers synchronously, before the write call returns.
type Store struct {
	mu     sync.RWMutex
	values map[string]any
	subs   []*subscription
	nextID int
}

type subscription struct {
	id int
	fn func()
}

// NewStore creates a store over a copy of the initial record. A nil
// initial record starts empty.
func NewStore(initial map[string]any) *Store {
	values := make(map[string]any, len(initial))
	for k, v := range initial {
		values[k] = v
	}
	return &Store{values: values}
}

// Get returns the current value for key, or nil when absent. Reads pass
// through unchanged.
func (s *Store) Get(key string) any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key]
}

// Snapshot returns a copy of the current record.
func (s *Store) Snapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Set writes one key. Writing a value equal to the current one never
// notifies.
func (s *Store) Set(key string, value any) {
	s.mu.Lock()
	changed := !valuesEqual(s.values[key], value)
	if changed {
		s.values[key] = value
	}
	s.mu.Unlock()

	if changed {
		s.notify()
	}
}

// Update writes a batch of keys and notifies at most once, and only if
// at least one key actually changed value.
func (s *Store) Update(changes map[string]any) {
	s.mu.Lock()
	changed := false
	for k, v := range changes {
		if !valuesEqual(s.values[k], v) {
			s.values[k] = v
			changed = true
		}
	}
	s.mu.Unlock()

	if changed {
		s.notify()
	}
}

// Subscribe registers a callback fired after every effective write. It
// returns an idempotent unsubscribe.
func (s *Store) Subscribe(fn func()) func() {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	s.nextID++
	sub := &subscription{id: s.nextID, fn: fn}
	s.subs = append(s.subs, sub)
	s.mu.Unlock()

	removed := false
	return func() {
		if removed {
			return
		}
		removed = true
		s.mu.Lock()
		for i, existing := range s.subs {
			if existing.id == sub.id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				break
			}
		}
		s.mu.Unlock()
	}
}

// notify invokes subscribers in subscription order. Uses copy-before-
// notify so callbacks may subscribe or unsubscribe freely.
func (s *Store) notify() {
	s.mu.RLock()
	subs := make([]*subscription, len(s.subs))
	copy(subs, s.subs)
	s.mu.RUnlock()

	for _, sub := range subs {
		sub.fn()
	}
}
