package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/csvchat/csvchat-go/internal/domain"
)

// MemoryStore keeps sessions in process memory with a fixed TTL. Expired
// entries are dropped lazily on Get and swept opportunistically on Put, so
// the map never outgrows the set of recently active uploads.
type MemoryStore struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]entry
}

type entry struct {
	session   domain.Session
	expiresAt time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		entries: make(map[string]entry),
	}
}

func (s *MemoryStore) Get(_ context.Context, id string) (domain.Session, error) {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()

	if !ok {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	if !time.Now().After(e.expiresAt) {
		return e.session, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// A concurrent Put may have replaced the entry since the read.
	e, ok = s.entries[id]
	if !ok {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	if time.Now().After(e.expiresAt) {
		delete(s.entries, id)
		return domain.Session{}, domain.ErrSessionNotFound
	}
	return e.session, nil
}

// Put stores the session, replacing any table a previous upload left there.
func (s *MemoryStore) Put(_ context.Context, session domain.Session) error {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, id)
		}
	}
	s.entries[session.ID] = entry{session: session, expiresAt: now.Add(s.ttl)}
	return nil
}
