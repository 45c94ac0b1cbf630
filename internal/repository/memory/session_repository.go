package memory

import (
	"time"

	"postcare-ai-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// SessionRepository keeps live conversation state in memory. Sessions are
// evicted after the idle timeout; an evicted session simply starts over in
// the intake state on next contact.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository(idleTimeout time.Duration) *SessionRepository {
	if idleTimeout <= 0 {
		idleTimeout = 1 * time.Hour
	}
	c := cache.New(idleTimeout, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(session *store.Session) {
	r.cache.Set(session.ID, session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionID string) (*store.Session, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.Session), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
