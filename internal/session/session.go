// Package session provides the explicit session-scoped data context the
// pipeline runs against. Each browser session owns its loaded tables; a
// render pass reads through the session, loading a dataset on first use and
// reusing it until invalidated. Nothing is ever written back to disk.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// idleTTL matches the session cookie lifetime; a session untouched this long
// is pruned from the store on the next Get.
const idleTTL = 24 * time.Hour

// Session holds the datasets loaded for one dashboard session. The mutex
// guards the table map against net/http's request parallelism; each render
// pass itself is a single synchronous pipeline run. lastSeen is owned by the
// store and guarded by its mutex.
type Session struct {
	ID string

	mu     sync.Mutex
	tables map[string]interface{}

	lastSeen time.Time
}

// Load returns the cached table for key, calling load to populate it on
// first use. A load error is returned as-is and nothing is cached, so the
// next request retries cleanly.
func (s *Session) Load(key string, load func() (interface{}, error)) (interface{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.tables[key]; ok {
		return t, nil
	}
	t, err := load()
	if err != nil {
		return nil, err
	}
	s.tables[key] = t
	return t, nil
}

// Invalidate drops the cached table for key; the next Load re-reads the
// source file.
func (s *Session) Invalidate(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tables, key)
}

// Store owns all live sessions, keyed by the session cookie value.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Get returns the session for a server-issued id, or a fresh session with a
// new uuid when id is empty or unknown. Client-supplied values never become
// store keys, so a forged cookie cannot grow the store; the middleware sets
// the fresh id as the cookie. Idle sessions are pruned on the way.
func (st *Store) Get(id string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := time.Now()
	for key, s := range st.sessions {
		if now.Sub(s.lastSeen) > idleTTL {
			delete(st.sessions, key)
		}
	}

	if id != "" {
		if s, ok := st.sessions[id]; ok {
			s.lastSeen = now
			return s
		}
	}
	s := &Session{ID: uuid.NewString(), tables: make(map[string]interface{}), lastSeen: now}
	st.sessions[s.ID] = s
	return s
}

// Len reports the number of live sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}
