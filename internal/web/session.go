package web

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tmccall/shallowblue/internal/chess"
)

// Session binds one engine instance to a game ID. The engine is not safe for
// concurrent use, so every call goes through the session mutex: one exclusive
// owner per game.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu     sync.Mutex
	engine *chess.Engine
}

// Do runs fn with exclusive access to the session's engine.
func (s *Session) Do(fn func(e *chess.Engine)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.engine)
}

// Registry is the in-memory store of active game sessions.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

// Create starts a fresh game session with the given automated-opponent
// setting and registers it under a new ID.
func (r *Registry) Create(autoOpponent bool) *Session {
	engine := chess.NewEngine()
	engine.SetAutomatedOpponent(autoOpponent)

	s := &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		engine:    engine,
	}

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	return s
}

// Get looks up a session by ID.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Len returns the number of registered sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
