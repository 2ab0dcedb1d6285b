package core

import (
	"sync"
	"time"
)

// DefaultHistoryLimit bounds per-session turn retention when no explicit
// limit is configured.
const DefaultHistoryLimit = 100

// Turn is one conversational exchange entry: the user request or the
// handler response recorded against a session.
type Turn struct {
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	Handler   string    `json:"handler,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Session tracks bounded conversation history for one caller. It is the only
// mutable state the system retains between requests; ownership belongs to the
// session store, never to the router or executor, which only exchange
// immutable request and outcome data. Safe for concurrent access.
type Session struct {
	ID      string    `json:"id"`
	Created time.Time `json:"created"`
	Updated time.Time `json:"updated"`

	mu    sync.RWMutex
	turns []Turn
	limit int
}

// NewSession creates an empty session with the default history limit.
func NewSession(id string) *Session {
	return NewSessionWithLimit(id, DefaultHistoryLimit)
}

// NewSessionWithLimit creates an empty session retaining at most limit turns.
func NewSessionWithLimit(id string, limit int) *Session {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	now := time.Now()
	return &Session{ID: id, Created: now, Updated: now, limit: limit}
}

// AddTurn appends a turn, evicting the oldest entries beyond the limit.
func (s *Session) AddTurn(turn Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if turn.Timestamp.IsZero() {
		turn.Timestamp = time.Now()
	}
	s.turns = append(s.turns, turn)
	if len(s.turns) > s.limit {
		s.turns = s.turns[len(s.turns)-s.limit:]
	}
	s.Updated = time.Now()
}

// Recent returns up to n most recent turns in chronological order.
func (s *Session) Recent(n int) []Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n <= 0 || n > len(s.turns) {
		n = len(s.turns)
	}
	out := make([]Turn, n)
	copy(out, s.turns[len(s.turns)-n:])
	return out
}

// Len returns the number of retained turns.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.turns)
}

// Clone returns a deep copy of the session safe for independent mutation.
func (s *Session) Clone() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	clone := &Session{ID: s.ID, Created: s.Created, Updated: s.Updated, limit: s.limit}
	clone.turns = make([]Turn, len(s.turns))
	copy(clone.turns, s.turns)
	return clone
}

// SessionStore persists sessions and their turn history between requests.
type SessionStore interface {
	Create(id string) (*Session, error)
	Get(id string) (*Session, error)
	AppendTurn(sessionID string, turn Turn) error
}
