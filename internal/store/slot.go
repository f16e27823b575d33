package store

import (
	"sync"
	"time"
)

// State is a snapshot of a Slot. Value is meaningful only when HasValue.
type State[T any] struct {
	Value     T         `json:"value"`
	HasValue  bool      `json:"has_value"`
	Loading   bool      `json:"loading"`
	Error     string    `json:"error,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Slot holds the latest result of one kind of generation plus its loading
// and error flags. Every transition replaces the whole state under the lock,
// so readers never see a half-applied update. Concurrent generations are not
// coordinated: the last transition wins.
type Slot[T any] struct {
	mu    sync.RWMutex
	state State[T]
	clone func(T) T
	now   func() time.Time
}

// NewSlot returns an empty slot. clone deep-copies values crossing the slot
// boundary; nil means T is copied by value.
func NewSlot[T any](clone func(T) T) *Slot[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &Slot[T]{clone: clone, now: time.Now}
}

// Get returns a copy of the current state.
func (s *Slot[T]) Get() State[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.state
	if out.HasValue {
		out.Value = s.clone(out.Value)
	}
	return out
}

// Value returns the stored value, if any.
func (s *Slot[T]) Value() (T, bool) {
	st := s.Get()
	return st.Value, st.HasValue
}

// Begin marks a request in flight and clears the previous error. The stored
// value is kept so a view can keep showing it.
func (s *Slot[T]) Begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state
	next.Loading = true
	next.Error = ""
	s.state = next
}

// Succeed replaces the value and clears loading and error.
func (s *Slot[T]) Succeed(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State[T]{Value: s.clone(v), HasValue: true, UpdatedAt: s.now()}
}

// Fail records msg and clears loading. The previous value survives.
func (s *Slot[T]) Fail(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state
	next.Loading = false
	next.Error = msg
	s.state = next
}

// Clear empties the slot.
func (s *Slot[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State[T]{}
}
