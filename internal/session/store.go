package session

import (
	"sync"
	"time"

	"github.com/mbms-project/mbms-gateway/internal/user"
	"github.com/mbms-project/mbms-gateway/pkg/middleware"
)

// Session is the per-login state the gateway keeps. Ledger data is never
// cached here: every read goes back to the store, so the only thing worth
// holding between requests is who the token belongs to.
type Session struct {
	Token     string
	User      *user.User
	CreatedAt time.Time
	LastSeen  time.Time
}

// Store is an in-memory session registry keyed by the store-issued bearer
// token. Entries expire after the configured TTL of inactivity.
type Store struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[string]*Session
	done     chan struct{}
}

// NewStore creates a session store. A TTL of zero disables expiry.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:      ttl,
		sessions: make(map[string]*Session),
		done:     make(chan struct{}),
	}
}

// StartJanitor launches a background sweep that evicts expired sessions.
func (s *Store) StartJanitor(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.evictExpired(time.Now())
			case <-s.done:
				return
			}
		}
	}()
}

// Close stops the janitor goroutine.
func (s *Store) Close() {
	close(s.done)
}

// Put registers a session for the given token, replacing any previous one.
func (s *Store) Put(token string, u *user.User) {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = &Session{
		Token:     token,
		User:      u,
		CreatedAt: now,
		LastSeen:  now,
	}
}

// Drop removes the session for the given token.
func (s *Store) Drop(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

// Get returns the live session for a token, refreshing its activity stamp.
func (s *Store) Get(token string) (*Session, bool) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return nil, false
	}
	if s.expired(sess, now) {
		delete(s.sessions, token)
		return nil, false
	}

	sess.LastSeen = now
	return sess, true
}

// Resolve implements middleware.Resolver: it maps a bearer token to the
// principal that logged in with it.
func (s *Store) Resolve(token string) (middleware.Principal, bool) {
	sess, ok := s.Get(token)
	if !ok {
		return middleware.Principal{}, false
	}
	return middleware.Principal{
		Name:    sess.User.Name,
		IsAdmin: sess.User.IsAdmin,
	}, true
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Store) expired(sess *Session, now time.Time) bool {
	return s.ttl > 0 && now.Sub(sess.LastSeen) > s.ttl
}

func (s *Store) evictExpired(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, token)
		}
	}
}
