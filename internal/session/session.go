package session

import (
	"sync"
	"time"
)

// Role constants for conversation turns.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is a single conversation turn.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Session is one conversation thread: an ordered, append-only sequence of
// turns. The zero value is not useful; sessions are created by the Store.
type Session struct {
	id string

	mu    sync.RWMutex
	turns []Turn
}

// New creates an empty session with the given identifier.
func New(id string) *Session {
	return &Session{id: id}
}

// ID returns the caller-chosen session identifier.
func (s *Session) ID() string {
	return s.id
}

// Turns returns a copy of all turns in append order.
func (s *Session) Turns() []Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Len returns the number of turns.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.turns)
}

// AppendExchange appends a user turn and the assistant's reply in a single
// critical section. This is the only mutation point for session state;
// callers invoke it only after generation succeeds, which keeps the
// append all-or-nothing per generate call and keeps concurrent exchanges
// adjacent in the transcript.
func (s *Session) AppendExchange(userContent, assistantContent string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns,
		Turn{Role: RoleUser, Content: userContent},
		Turn{Role: RoleAssistant, Content: assistantContent},
	)
}

// now is a test seam for eviction-order timestamps.
var now = time.Now
