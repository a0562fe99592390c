// Package service implements the client-side session lifecycle: login,
// fail-closed authentication checks, opportunistic server revalidation, and
// timer-driven auto-logout.
package service

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"storefront-admin/console/internal/api"
	"storefront-admin/console/internal/session/domain"
	"storefront-admin/console/internal/session/store"
	"storefront-admin/console/internal/session/token"
)

// ErrNotAuthenticated is returned by operations that require a live session.
var ErrNotAuthenticated = errors.New("not authenticated")

// Options tune the session lifecycle. Zero values fall back to defaults.
type Options struct {
	// AuthEndpoint is the path of the backend login endpoint.
	AuthEndpoint string
	// MaxAge is the absolute session cap measured from login (default 24h).
	MaxAge time.Duration
	// RevalidateEvery is the cadence of the periodic client-side recheck
	// (default 5m).
	RevalidateEvery time.Duration
	// RevalidateProbability is the chance a periodic tick also performs a
	// server round-trip (default 0.2). The server is never polled on every
	// tick.
	RevalidateProbability float64
}

func (o *Options) withDefaults() Options {
	out := *o
	if out.AuthEndpoint == "" {
		out.AuthEndpoint = "/api/admin/login"
	}
	if out.MaxAge <= 0 {
		out.MaxAge = 24 * time.Hour
	}
	if out.RevalidateEvery <= 0 {
		out.RevalidateEvery = 5 * time.Minute
	}
	if out.RevalidateProbability <= 0 {
		out.RevalidateProbability = 0.2
	}
	return out
}

// Manager owns the stored session and the auto-logout timer. All state
// mutations happen under one mutex; the timer callback goes through the
// same lock, so a stale timer can never kill a session it did not arm.
type Manager struct {
	client  *api.Client
	durable store.Store
	tab     store.Store
	opts    Options

	onLogout func(reason string)

	mu          sync.Mutex
	logoutTimer *time.Timer
	timerGen    uint64

	now  func() time.Time
	rand func() float64
}

// NewManager wires a Manager to its API client and the two storage scopes.
// The client's token source and unauthorized hook are installed here: any
// 401 anywhere in the dashboard clears session state exactly like a
// client-detected expiry.
func NewManager(client *api.Client, durable, tab store.Store, opts Options) *Manager {
	m := &Manager{
		client:  client,
		durable: durable,
		tab:     tab,
		opts:    opts.withDefaults(),
		now:     time.Now,
		rand:    rand.Float64,
	}
	client.SetTokenSource(m.currentToken)
	client.SetOnUnauthorized(func() { m.clearAll(context.Background()) })
	return m
}

// SetOnLogout installs the hook invoked after Logout clears state; the CLI
// uses it to steer the admin back to the login entry point.
func (m *Manager) SetOnLogout(fn func(reason string)) { m.onLogout = fn }

// Login authenticates and establishes a fresh session in the scope selected
// by rememberMe (durable when true, process-scoped when false). Any
// pre-existing session in either scope is cleared first so stale sessions
// never stack. Exactly one auto-logout timer is left armed.
func (m *Manager) Login(ctx context.Context, email, password string, rememberMe bool) (*domain.Session, error) {
	m.clearAll(ctx)

	res, err := m.client.Login(ctx, m.opts.AuthEndpoint, email, password)
	if err != nil {
		return nil, err
	}

	now := m.now()
	expiresAt := now.Add(m.opts.MaxAge)
	if hint, ok := token.ExpiryHint(res.Token); ok {
		expiresAt = hint
	}

	sess := &domain.Session{
		Token:      res.Token,
		LoginAt:    now,
		ExpiresAt:  expiresAt,
		SessionID:  uuid.NewString(),
		RememberMe: rememberMe,
	}
	if res.Admin != nil {
		sess.AdminName = res.Admin.Name
		sess.AdminEmail = res.Admin.Email
	}

	scope := m.tab
	if rememberMe {
		scope = m.durable
	}
	if err := scope.Save(ctx, sess); err != nil {
		return nil, err
	}
	m.client.MirrorCookie(sess.Token)

	m.mu.Lock()
	m.armTimerLocked(sess.Remaining(now, m.opts.MaxAge))
	m.mu.Unlock()

	return sess, nil
}

// IsAuthenticated runs the client-side validity check: the session must be
// complete, the token structurally plausible, and neither expiry condition
// violated. Every false outcome clears session data as a side effect, so a
// rejected session can never be observed twice.
func (m *Manager) IsAuthenticated(ctx context.Context) bool {
	sess, err := m.load(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrNoSession) {
			log.Printf("session: storage read failed: %v", err)
			m.clearAll(ctx)
		}
		return false
	}
	if !sess.Complete() {
		m.clearAll(ctx)
		return false
	}
	if err := token.Validate(sess.Token); err != nil {
		m.clearAll(ctx)
		return false
	}
	if sess.Expired(m.now(), m.opts.MaxAge) {
		m.clearAll(ctx)
		return false
	}
	return true
}

// Current returns the stored session for display purposes, or nil when
// there is none. It does not run the validity check.
func (m *Manager) Current(ctx context.Context) *domain.Session {
	sess, err := m.load(ctx)
	if err != nil {
		return nil
	}
	return sess
}

// ValidateWithAPI confirms the token server-side with a lightweight list
// request. Only an explicit 401/403 invalidates the session (the client's
// unauthorized hook clears it); a network error or 5xx means "could not
// confirm" and leaves the session alone, so the report stays true.
func (m *Manager) ValidateWithAPI(ctx context.Context) bool {
	if m.currentToken() == "" {
		return false
	}
	err := m.client.Ping(ctx)
	switch {
	case err == nil:
		return true
	case errors.Is(err, api.ErrUnauthorized):
		return false
	default:
		log.Printf("session: revalidation inconclusive: %v", err)
		return true
	}
}

// Logout cancels the auto-logout timer, clears every storage scope and the
// cookie mirror, and hands control to the logout hook.
func (m *Manager) Logout(ctx context.Context, reason string) {
	m.mu.Lock()
	m.clearAllLocked(ctx)
	m.mu.Unlock()
	if m.onLogout != nil {
		m.onLogout(reason)
	}
}

// ExtendSession restarts the 24-hour window for a currently valid session:
// LoginAt moves to now, the expiry is recomputed, and the auto-logout timer
// is replaced. Returns false when there is no valid session to extend.
func (m *Manager) ExtendSession(ctx context.Context) bool {
	if !m.IsAuthenticated(ctx) {
		return false
	}
	sess, err := m.load(ctx)
	if err != nil {
		return false
	}

	now := m.now()
	sess.LoginAt = now
	sess.ExpiresAt = now.Add(m.opts.MaxAge)

	scope := m.tab
	if sess.RememberMe {
		scope = m.durable
	}
	if err := scope.Save(ctx, sess); err != nil {
		log.Printf("session: extend failed to persist: %v", err)
		return false
	}

	m.mu.Lock()
	m.armTimerLocked(sess.Remaining(now, m.opts.MaxAge))
	m.mu.Unlock()
	return true
}

// StartRevalidation runs the periodic recheck until ctx is cancelled. Every
// tick re-runs the client-side check, logging out if expiry was reached in
// the meantime; a random subset of ticks also confirms the token
// server-side.
func (m *Manager) StartRevalidation(ctx context.Context) {
	ticker := time.NewTicker(m.opts.RevalidateEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !m.IsAuthenticated(ctx) {
				m.Logout(ctx, "Session expired")
				return
			}
			if m.rand() < m.opts.RevalidateProbability {
				if !m.ValidateWithAPI(ctx) {
					m.Logout(ctx, "Session invalid")
					return
				}
			}
		}
	}
}

// load reads the session from whichever scope holds one, process scope
// first.
func (m *Manager) load(ctx context.Context) (*domain.Session, error) {
	sess, err := m.tab.Load(ctx)
	if err == nil {
		return sess, nil
	}
	if !errors.Is(err, store.ErrNoSession) {
		return nil, err
	}
	return m.durable.Load(ctx)
}

func (m *Manager) currentToken() string {
	sess, err := m.load(context.Background())
	if err != nil || !sess.Complete() {
		return ""
	}
	return sess.Token
}

// clearAll wipes both storage scopes, the cookie mirror, and the pending
// timer. Storage failures are logged, never propagated; the caller is
// already treating the session as gone.
func (m *Manager) clearAll(ctx context.Context) {
	m.mu.Lock()
	m.clearAllLocked(ctx)
	m.mu.Unlock()
}

// clearAllLocked is the clearing core. mu must be held: the timer callback
// relies on its staleness check and the clear forming one critical section,
// so a replaced timer can never wipe a session armed after it.
func (m *Manager) clearAllLocked(ctx context.Context) {
	m.stopTimerLocked()

	if err := m.tab.Clear(ctx); err != nil {
		log.Printf("session: clear process scope: %v", err)
	}
	if err := m.durable.Clear(ctx); err != nil {
		log.Printf("session: clear durable scope: %v", err)
	}
	m.client.ClearCookie()
}

// armTimerLocked replaces the outstanding auto-logout timer. The generation
// counter ensures a timer that fires after being replaced does nothing. mu
// must be held.
func (m *Manager) armTimerLocked(d time.Duration) {
	m.stopTimerLocked()
	if d < 0 {
		d = 0
	}
	m.timerGen++
	gen := m.timerGen
	m.logoutTimer = time.AfterFunc(d, func() {
		m.mu.Lock()
		if gen != m.timerGen {
			m.mu.Unlock()
			return
		}
		m.clearAllLocked(context.Background())
		m.mu.Unlock()
		if m.onLogout != nil {
			m.onLogout("Session expired")
		}
	})
}

// stopTimerLocked cancels the pending timer and advances the generation so
// an already-fired callback finds itself stale. mu must be held.
func (m *Manager) stopTimerLocked() {
	m.timerGen++
	if m.logoutTimer != nil {
		m.logoutTimer.Stop()
		m.logoutTimer = nil
	}
}
