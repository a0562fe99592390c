// Package memory holds a session for the lifetime of the process only.
package memory

import (
	"context"
	"sync"

	"storefront-admin/console/internal/session/domain"
	"storefront-admin/console/internal/session/store"
)

// Store is the tab-scoped analog: sessions written here vanish with the
// process.
type Store struct {
	mu sync.Mutex
	s  *domain.Session
}

// New returns an empty in-memory store.
func New() *Store {
	return &Store{}
}

func (m *Store) Save(ctx context.Context, s *domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.s = &cp
	return nil
}

func (m *Store) Load(ctx context.Context) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.s == nil {
		return nil, store.ErrNoSession
	}
	cp := *m.s
	return &cp, nil
}

func (m *Store) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s = nil
	return nil
}
