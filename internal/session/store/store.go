// Package store defines where a session record is persisted. The durable
// scope survives process restarts (remember me); the memory scope is lost
// when the process exits, the way a tab-scoped browser store is lost with
// its tab.
package store

import (
	"context"
	"errors"

	"storefront-admin/console/internal/session/domain"
)

// ErrNoSession is returned by Load when the scope holds no session.
var ErrNoSession = errors.New("no stored session")

// Store persists at most one session record per scope.
type Store interface {
	Save(ctx context.Context, s *domain.Session) error
	Load(ctx context.Context) (*domain.Session, error)
	Clear(ctx context.Context) error
}
