package session

import (
	"errors"
	"sync"
	"time"

	"github.com/yungbote/gymcoach/internal/observability"
	"github.com/yungbote/gymcoach/internal/platform/logger"
)

var ErrNotFound = errors.New("session not found")

// Registry keeps live sessions keyed by id.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	gw   Gateway
	opts Options
	log  *logger.Logger
}

func NewRegistry(gw Gateway, log *logger.Logger, opts Options) *Registry {
	if log == nil {
		log = logger.Nop()
	}
	return &Registry{
		sessions: make(map[string]*Session),
		gw:       gw,
		opts:     opts,
		log:      log.With("component", "SessionRegistry"),
	}
}

func (r *Registry) Create() *Session {
	s := New(r.gw, r.log, r.opts)
	r.mu.Lock()
	r.sessions[s.ID] = s
	n := len(r.sessions)
	r.mu.Unlock()
	observability.Current().SetSessions(n)
	r.log.Debug("session created", "session_id", s.ID, "live", n)
	return s
}

// Get returns the session and marks it as used now.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	s.Touch(time.Now())
	return s, nil
}

func (r *Registry) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return false
	}
	delete(r.sessions, id)
	observability.Current().SetSessions(len(r.sessions))
	return true
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Prune drops sessions last used before cutoff and returns how many went.
func (r *Registry) Prune(cutoff time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, s := range r.sessions {
		if s.LastSeen().Before(cutoff) {
			delete(r.sessions, id)
			n++
		}
	}
	observability.Current().SetSessions(len(r.sessions))
	return n
}
