package memory

import (
	"context"
	"sync"

	"github.com/bidhaus/auction-backend/internal/usecase"
	"github.com/bidhaus/auction-backend/pkg/e"
)

// SessionStore хранит сессии в памяти, без TTL.
type SessionStore struct {
	mu    sync.RWMutex
	items map[string]*usecase.Session
}

var _ usecase.SessionStore = (*SessionStore)(nil)

func NewSessionStore() *SessionStore {
	return &SessionStore{
		items: make(map[string]*usecase.Session),
	}
}

func (s *SessionStore) Save(_ context.Context, session *usecase.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *session
	s.items[session.Token] = &copied

	return nil
}

func (s *SessionStore) Get(_ context.Context, token string) (*usecase.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.items[token]
	if !ok {
		return nil, e.ErrSessionNotFound
	}
	copied := *session

	return &copied, nil
}

func (s *SessionStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[token]; !ok {
		return e.ErrSessionNotFound
	}
	delete(s.items, token)

	return nil
}
