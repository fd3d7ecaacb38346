// Package session provides the in-memory store that owns authenticated
// session lifetime. Sessions are referenced by an opaque token delivered in an
// HTTP-only cookie and expire after a fixed TTL with no sliding window.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is the server-side record of an authenticated identity.
type Session struct {
	Token     string    `json:"token"`
	UserID    int64     `json:"userId"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Store holds sessions keyed by token. Reads and writes are guarded by a
// RWMutex; concurrent requests for the same session are last-write-wins.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration

	now func() time.Time // overridable for tests
}

// NewStore creates a session store with the given fixed session lifetime.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create establishes a new session bound to the given identity and returns it.
func (s *Store) Create(userID int64, username string) *Session {
	now := s.now()
	sess := &Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		Username:  username,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.Token] = sess
	return sess
}

// Get returns the session for a token, or false when the token is unknown or
// the session has expired. Expired sessions are removed lazily by the janitor.
func (s *Store) Get(token string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[token]
	if !ok {
		return nil, false
	}
	if s.now().After(sess.ExpiresAt) {
		return nil, false
	}
	return sess, true
}

// Delete destroys a session. Deleting an unknown token is a no-op, which keeps
// logout idempotent from the caller's perspective.
func (s *Store) Delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

// PurgeExpired removes all expired sessions and reports how many were dropped.
func (s *Store) PurgeExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	purged := 0
	for token, sess := range s.sessions {
		if now.After(sess.ExpiresAt) {
			delete(s.sessions, token)
			purged++
		}
	}
	return purged
}

// Len returns the number of live entries, expired included until purged.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// StartJanitor purges expired sessions at the given interval until stop is
// closed.
func (s *Store) StartJanitor(interval time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.PurgeExpired()
			case <-stop:
				return
			}
		}
	}()
}
