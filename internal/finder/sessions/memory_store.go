package sessions

import (
	"context"
	"errors"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/voice-finder/server/internal/finder/model"
)

// MemoryStore keeps sessions in process. A zero TTL never expires them.
type MemoryStore struct {
	cache *cache.Cache
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		return &MemoryStore{cache: cache.New(cache.NoExpiration, 0)}
	}
	return &MemoryStore{cache: cache.New(ttl, ttl)}
}

func (m *MemoryStore) Get(_ context.Context, threadID string) (*model.Session, bool, error) {
	v, ok := m.cache.Get(threadID)
	if !ok {
		return nil, false, nil
	}
	return clone(v.(*model.Session)), true, nil
}

func (m *MemoryStore) Put(_ context.Context, s *model.Session) error {
	if s == nil || s.ThreadID == "" {
		return errors.New("session without thread id")
	}
	m.cache.SetDefault(s.ThreadID, clone(s))
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, threadID string) error {
	m.cache.Delete(threadID)
	return nil
}

var _ Store = (*MemoryStore)(nil)
