package repository

import (
	"sync"
	"time"

	inputerrors "pillziy/internal/phoneinput/errors"
	"pillziy/pkg/phoneinput"
)

// Session is one mounted phone input. Callers hold Lock while driving Input;
// an Input is never used from two goroutines at once.
type Session struct {
	sync.Mutex

	ID        string
	Input     *phoneinput.Input
	CreatedAt time.Time

	lastSeen time.Time
}

type SessionStore interface {
	Create(session *Session) error
	Get(id string) (*Session, error)
	Delete(id string) error
	ExpiresAt(session *Session) time.Time
	Len() int
	Stop() // stops the sweeper
}

type InMemorySessionStore struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	ttl         time.Duration
	maxSessions int
	now         func() time.Time
	stopCh      chan struct{}
	stopOnce    sync.Once
}

func NewInMemorySessionStore(ttl time.Duration, maxSessions int) *InMemorySessionStore {
	store := &InMemorySessionStore{
		sessions:    make(map[string]*Session),
		ttl:         ttl,
		maxSessions: maxSessions,
		now:         time.Now,
		stopCh:      make(chan struct{}),
	}

	go store.cleanup()

	return store
}

func (s *InMemorySessionStore) Create(session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if len(s.sessions) >= s.maxSessions {
		s.evictExpiredLocked(now)
		if len(s.sessions) >= s.maxSessions {
			return inputerrors.ErrSessionLimit
		}
	}

	session.CreatedAt = now
	session.lastSeen = now
	s.sessions[session.ID] = session
	return nil
}

// Get returns a live session and extends its lifetime.
func (s *InMemorySessionStore) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, exists := s.sessions[id]
	if !exists {
		return nil, inputerrors.ErrSessionNotFound
	}

	now := s.now()
	if now.Sub(session.lastSeen) > s.ttl {
		delete(s.sessions, id)
		return nil, inputerrors.ErrSessionNotFound
	}

	session.lastSeen = now
	return session, nil
}

func (s *InMemorySessionStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[id]; !exists {
		return inputerrors.ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

func (s *InMemorySessionStore) ExpiresAt(session *Session) time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return session.lastSeen.Add(s.ttl)
}

func (s *InMemorySessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *InMemorySessionStore) cleanup() {
	ticker := time.NewTicker(s.sweepInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.mu.Lock()
			s.evictExpiredLocked(s.now())
			s.mu.Unlock()
		case <-s.stopCh:
			return
		}
	}
}

func (s *InMemorySessionStore) evictExpiredLocked(now time.Time) {
	for id, session := range s.sessions {
		if now.Sub(session.lastSeen) > s.ttl {
			delete(s.sessions, id)
		}
	}
}

func (s *InMemorySessionStore) sweepInterval() time.Duration {
	if interval := s.ttl / 2; interval > time.Second {
		return interval
	}
	return time.Second
}

func (s *InMemorySessionStore) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
}
