// ABOUTME: Toast notifications with expiry for the terminal UI
// ABOUTME: Safe for concurrent producers; List prunes expired entries

package toast

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind selects toast styling.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
)

// DefaultDuration is how long a toast stays visible.
const DefaultDuration = 4 * time.Second

type Toast struct {
	ID        string
	Message   string
	Kind      Kind
	Duration  time.Duration
	CreatedAt time.Time
}

func (t Toast) expired(now time.Time) bool {
	return t.Duration > 0 && now.After(t.CreatedAt.Add(t.Duration))
}

// Store holds the toasts of one UI session.
type Store struct {
	mu       sync.Mutex
	toasts   []Toast
	now      func() time.Time
	onChange func()
}

// NewStore returns an empty store. onChange may be nil.
func NewStore(onChange func()) *Store {
	if onChange == nil {
		onChange = func() {}
	}
	return &Store{now: time.Now, onChange: onChange}
}

// Add records t, filling ID, CreatedAt and Duration when unset.
func (s *Store) Add(t Toast) string {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	s.mu.Lock()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = s.now()
	}
	s.toasts = append(s.toasts, t)
	s.mu.Unlock()
	s.onChange()
	return t.ID
}

func (s *Store) Success(msg string) string {
	return s.Add(Toast{Message: msg, Kind: KindSuccess, Duration: DefaultDuration})
}

func (s *Store) Error(msg string) string {
	return s.Add(Toast{Message: msg, Kind: KindError, Duration: DefaultDuration})
}

func (s *Store) Info(msg string) string {
	return s.Add(Toast{Message: msg, Kind: KindInfo, Duration: DefaultDuration})
}

// List returns active toasts, oldest first, dropping expired ones.
func (s *Store) List() []Toast {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	active := s.toasts[:0]
	for _, t := range s.toasts {
		if t.expired(now) {
			continue
		}
		active = append(active, t)
	}
	s.toasts = active
	if len(active) == 0 {
		return nil
	}
	out := make([]Toast, len(active))
	copy(out, active)
	return out
}

// Remove drops the toast with id.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	next := s.toasts[:0]
	removed := false
	for _, t := range s.toasts {
		if t.ID == id {
			removed = true
			continue
		}
		next = append(next, t)
	}
	s.toasts = next
	s.mu.Unlock()
	if removed {
		s.onChange()
	}
}
