package server

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/abhisek/intervue/internal/interview"
)

// liveSession guards one interview session. busy serializes the operations
// that call the LLM; mu protects the committed state so reads never wait on
// a slow LLM call.
type liveSession struct {
	busy sync.Mutex

	mu      sync.RWMutex
	session *interview.Session
}

func (l *liveSession) snapshot() *interview.Session {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.session.Clone()
}

func (l *liveSession) commit(s *interview.Session) {
	l.mu.Lock()
	l.session = s
	l.mu.Unlock()
}

// sessionRegistry holds live sessions with a sliding expiry.
type sessionRegistry struct {
	c *cache.Cache
}

func newSessionRegistry(ttl time.Duration) *sessionRegistry {
	cleanup := ttl / 2
	if cleanup < time.Second {
		cleanup = time.Second
	}
	return &sessionRegistry{c: cache.New(ttl, cleanup)}
}

func (r *sessionRegistry) add(s *interview.Session) *liveSession {
	l := &liveSession{session: s}
	r.c.SetDefault(s.ID, l)
	return l
}

// get returns the session and pushes its expiry out by the registry TTL.
func (r *sessionRegistry) get(id string) (*liveSession, bool) {
	v, ok := r.c.Get(id)
	if !ok {
		return nil, false
	}
	r.c.SetDefault(id, v)
	return v.(*liveSession), true
}

func (r *sessionRegistry) remove(id string) bool {
	if _, ok := r.c.Get(id); !ok {
		return false
	}
	r.c.Delete(id)
	return true
}

func (r *sessionRegistry) count() int {
	return r.c.ItemCount()
}
