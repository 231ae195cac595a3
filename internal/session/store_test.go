package session

import (
	"testing"
	"time"

	"github.com/mbms-project/mbms-gateway/internal/user"
)

func TestPutGetDrop(t *testing.T) {
	s := NewStore(time.Hour)

	s.Put("tok-1", &user.User{Name: "Alice"})

	sess, ok := s.Get("tok-1")
	if !ok {
		t.Fatal("session not found after Put")
	}
	if sess.User.Name != "Alice" {
		t.Errorf("user: got %q, want Alice", sess.User.Name)
	}

	s.Drop("tok-1")
	if _, ok := s.Get("tok-1"); ok {
		t.Error("session still resolvable after Drop")
	}
}

func TestResolvePrincipal(t *testing.T) {
	s := NewStore(time.Hour)
	s.Put("tok-admin", &user.User{Name: "Boss", IsAdmin: true})
	s.Put("tok-user", &user.User{Name: "Alice"})

	p, ok := s.Resolve("tok-admin")
	if !ok || !p.IsAdmin || p.Name != "Boss" {
		t.Errorf("admin principal: %+v ok=%v", p, ok)
	}

	p, ok = s.Resolve("tok-user")
	if !ok || p.IsAdmin {
		t.Errorf("user principal: %+v ok=%v", p, ok)
	}

	if _, ok := s.Resolve("unknown"); ok {
		t.Error("unknown token resolved")
	}
}

func TestExpiry(t *testing.T) {
	s := NewStore(time.Minute)
	s.Put("tok-1", &user.User{Name: "Alice"})

	// Age the session past the TTL by hand.
	s.mu.Lock()
	s.sessions["tok-1"].LastSeen = time.Now().Add(-2 * time.Minute)
	s.mu.Unlock()

	if _, ok := s.Get("tok-1"); ok {
		t.Error("expired session resolved")
	}
	if s.Len() != 0 {
		t.Errorf("expired session not evicted: len=%d", s.Len())
	}
}

func TestEvictExpired(t *testing.T) {
	s := NewStore(time.Minute)
	s.Put("fresh", &user.User{Name: "A"})
	s.Put("stale", &user.User{Name: "B"})

	s.mu.Lock()
	s.sessions["stale"].LastSeen = time.Now().Add(-time.Hour)
	s.mu.Unlock()

	s.evictExpired(time.Now())

	if s.Len() != 1 {
		t.Errorf("len: got %d, want 1", s.Len())
	}
	if _, ok := s.Get("fresh"); !ok {
		t.Error("fresh session evicted")
	}
}

func TestZeroTTLNeverExpires(t *testing.T) {
	s := NewStore(0)
	s.Put("tok-1", &user.User{Name: "Alice"})

	s.mu.Lock()
	s.sessions["tok-1"].LastSeen = time.Now().Add(-24 * time.Hour)
	s.mu.Unlock()

	if _, ok := s.Get("tok-1"); !ok {
		t.Error("session expired despite zero TTL")
	}
}
