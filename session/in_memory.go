package session

import (
	"fmt"
	"sync"

	"github.com/hupe1980/taskmesh/core"
)

// Options holds configuration for the in-memory store.
type Options struct {
	// HistoryLimit bounds how many turns each session retains. Defaults to
	// core.DefaultHistoryLimit.
	HistoryLimit int
}

// InMemoryStore is a volatile SessionStore implementation storing sessions
// in a process local map. It is safe for concurrent access and best suited
// for tests or ephemeral demo servers. Sessions returned by Get are cloned
// to prevent external mutation of internal state.
type InMemoryStore struct {
	mu           sync.RWMutex
	sessions     map[string]*core.Session
	historyLimit int
}

// NewInMemoryStore constructs an empty in-memory session store.
func NewInMemoryStore(optFns ...func(o *Options)) *InMemoryStore {
	opts := Options{HistoryLimit: core.DefaultHistoryLimit}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &InMemoryStore{
		sessions:     make(map[string]*core.Session),
		historyLimit: opts.HistoryLimit,
	}
}

// Create adds a new empty session. Creating an existing id is an error.
func (s *InMemoryStore) Create(id string) (*core.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; ok {
		return nil, fmt.Errorf("session %q already exists", id)
	}
	session := core.NewSessionWithLimit(id, s.historyLimit)
	s.sessions[id] = session
	return session.Clone(), nil
}

// Get returns a clone of an existing session, or creates one lazily when the
// id is unknown.
func (s *InMemoryStore) Get(id string) (*core.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		session = core.NewSessionWithLimit(id, s.historyLimit)
		s.sessions[id] = session
	}
	return session.Clone(), nil
}

// AppendTurn records a turn against a session, creating the session lazily
// when the id is unknown.
func (s *InMemoryStore) AppendTurn(sessionID string, turn core.Turn) error {
	s.mu.Lock()
	session, ok := s.sessions[sessionID]
	if !ok {
		session = core.NewSessionWithLimit(sessionID, s.historyLimit)
		s.sessions[sessionID] = session
	}
	s.mu.Unlock()

	session.AddTurn(turn)
	return nil
}

// Len returns the number of stored sessions.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
