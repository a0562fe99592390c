// Package sqlite is the durable session scope backed by a single-row
// SQLite table under the console's state directory.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"storefront-admin/console/internal/session/domain"
	"storefront-admin/console/internal/session/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS admin_session (
	id           INTEGER PRIMARY KEY CHECK (id = 1),
	token        TEXT NOT NULL,
	login_at     TIMESTAMP NOT NULL,
	expires_at   TIMESTAMP NOT NULL,
	session_id   TEXT NOT NULL,
	admin_name   TEXT NOT NULL DEFAULT '',
	admin_email  TEXT NOT NULL DEFAULT '',
	remember_me  INTEGER NOT NULL DEFAULT 0
)`

type sessionRow struct {
	Token      string    `db:"token"`
	LoginAt    time.Time `db:"login_at"`
	ExpiresAt  time.Time `db:"expires_at"`
	SessionID  string    `db:"session_id"`
	AdminName  string    `db:"admin_name"`
	AdminEmail string    `db:"admin_email"`
	RememberMe bool      `db:"remember_me"`
}

// Store persists the session in <dir>/session.db.
type Store struct {
	db *sqlx.DB
}

// Open creates the state directory and the session table if needed.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	db, err := sqlx.Open("sqlite3", filepath.Join(dir, "session.db"))
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create session table: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Save(ctx context.Context, sess *domain.Session) error {
	const q = `
		INSERT INTO admin_session (id, token, login_at, expires_at, session_id, admin_name, admin_email, remember_me)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			token = excluded.token,
			login_at = excluded.login_at,
			expires_at = excluded.expires_at,
			session_id = excluded.session_id,
			admin_name = excluded.admin_name,
			admin_email = excluded.admin_email,
			remember_me = excluded.remember_me`
	_, err := s.db.ExecContext(ctx, q,
		sess.Token, sess.LoginAt.UTC(), sess.ExpiresAt.UTC(), sess.SessionID,
		sess.AdminName, sess.AdminEmail, sess.RememberMe,
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *Store) Load(ctx context.Context) (*domain.Session, error) {
	var row sessionRow
	const q = `SELECT token, login_at, expires_at, session_id, admin_name, admin_email, remember_me
		FROM admin_session WHERE id = 1`
	if err := s.db.GetContext(ctx, &row, q); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNoSession
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	return &domain.Session{
		Token:      row.Token,
		LoginAt:    row.LoginAt,
		ExpiresAt:  row.ExpiresAt,
		SessionID:  row.SessionID,
		AdminName:  row.AdminName,
		AdminEmail: row.AdminEmail,
		RememberMe: row.RememberMe,
	}, nil
}

func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM admin_session WHERE id = 1`); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
