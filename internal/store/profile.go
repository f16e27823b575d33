package store

import (
	"sync"

	"github.com/yungbote/gymcoach/internal/domain/profile"
)

// ProfileStore holds at most one validated profile.
type ProfileStore struct {
	mu      sync.RWMutex
	profile *profile.UserProfile
}

func NewProfileStore() *ProfileStore {
	return &ProfileStore{}
}

// Set validates p and replaces the stored profile wholesale.
func (s *ProfileStore) Set(p profile.UserProfile) error {
	p = p.Normalized()
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = &p
	return nil
}

// Get returns a copy of the profile, or nil when none is set.
func (s *ProfileStore) Get() *profile.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return nil
	}
	c := s.profile.Clone()
	return &c
}

func (s *ProfileStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = nil
}
