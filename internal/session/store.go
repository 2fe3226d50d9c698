package session

import (
	"container/list"
	"log/slog"
	"sync"
	"time"
)

// DefaultMaxSessions bounds the store when no explicit capacity is given.
const DefaultMaxSessions = 1000

// Store maps session IDs to sessions for the process lifetime. It is owned
// by the serving layer and passed into the pipeline by reference, never a
// package-level singleton.
//
// The store holds at most maxSessions sessions; inserting past the bound
// evicts the least recently used session. Store is safe for concurrent use.
type Store struct {
	mu          sync.Mutex
	sessions    map[string]*entry
	order       *list.List // front = most recently used
	maxSessions int
	logger      *slog.Logger
}

type entry struct {
	session  *Session
	elem     *list.Element
	lastUsed time.Time
}

// NewStore creates a Store bounded to maxSessions. Values < 1 fall back to
// DefaultMaxSessions.
func NewStore(maxSessions int, logger *slog.Logger) *Store {
	if maxSessions < 1 {
		maxSessions = DefaultMaxSessions
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		sessions:    make(map[string]*entry),
		order:       list.New(),
		maxSessions: maxSessions,
		logger:      logger,
	}
}

// GetOrCreate returns the session for id, creating an empty one if absent.
// The insert-if-absent is atomic; concurrent callers with the same id get
// the same *Session.
func (st *Store) GetOrCreate(id string) (*Session, error) {
	if id == "" {
		return nil, ErrEmptySessionID
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if e, ok := st.sessions[id]; ok {
		st.touch(e)
		return e.session, nil
	}

	sess := New(id)
	e := &entry{session: sess, lastUsed: now()}
	e.elem = st.order.PushFront(id)
	st.sessions[id] = e

	if len(st.sessions) > st.maxSessions {
		st.evictOldest()
	}

	return sess, nil
}

// Get returns the session for id, or ErrSessionNotFound.
// Lookup does not refresh eviction order; only activity through
// GetOrCreate does.
func (st *Store) Get(id string) (*Session, error) {
	if id == "" {
		return nil, ErrEmptySessionID
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	e, ok := st.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return e.session, nil
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// touch marks an entry as most recently used. Caller holds st.mu.
func (st *Store) touch(e *entry) {
	e.lastUsed = now()
	st.order.MoveToFront(e.elem)
}

// evictOldest removes the least recently used session. Caller holds st.mu.
func (st *Store) evictOldest() {
	back := st.order.Back()
	if back == nil {
		return
	}
	id := back.Value.(string)
	st.order.Remove(back)
	delete(st.sessions, id)
	st.logger.Debug("evicted session", "id", id, "live", len(st.sessions))
}
