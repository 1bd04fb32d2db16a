// Package session manages the user_id session cookie. The cookie is a
// client-visible cache of the server session identity, never an authority:
// every server endpoint re-verifies the caller on its own.
package session

import (
	"context"
	"time"

	"github.com/Dsnks-19/Task-management-system/storage"
)

// CookieName is the session cookie written on login and registration.
const CookieName = "user_id"

// Default cookie lifetimes. Login applies the one-hour TTL while the
// interaction heartbeat re-writes the cookie with the one-day TTL. The two
// values intentionally differ to match the deployed behavior; both are
// options so a deployment can unify them.
const (
	DefaultLoginTTL     = time.Hour
	DefaultHeartbeatTTL = 24 * time.Hour
)

// Manager owns the session cookie lifecycle against an injected store.
type Manager struct {
	store        storage.KV
	loginTTL     time.Duration
	heartbeatTTL time.Duration
}

// Option configures a Manager.
type Option func(*Manager)

// WithLoginTTL overrides the TTL applied on Establish.
func WithLoginTTL(ttl time.Duration) Option {
	return func(m *Manager) { m.loginTTL = ttl }
}

// WithHeartbeatTTL overrides the TTL applied on Heartbeat.
func WithHeartbeatTTL(ttl time.Duration) Option {
	return func(m *Manager) { m.heartbeatTTL = ttl }
}

// NewManager creates a session manager over the given store.
func NewManager(store storage.KV, opts ...Option) *Manager {
	m := &Manager{
		store:        store,
		loginTTL:     DefaultLoginTTL,
		heartbeatTTL: DefaultHeartbeatTTL,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Establish writes the session cookie for the given user with the login TTL.
func (m *Manager) Establish(ctx context.Context, userID string) error {
	return m.store.SetTTL(ctx, CookieName, userID, m.loginTTL)
}

// Current returns the signed-in user id, if a live cookie is present.
func (m *Manager) Current(ctx context.Context) (string, bool, error) {
	return m.store.Get(ctx, CookieName)
}

// Heartbeat re-writes the cookie with the heartbeat TTL when a session is
// present. Called on every page interaction; a missing cookie is a no-op.
func (m *Manager) Heartbeat(ctx context.Context) error {
	userID, ok, err := m.store.Get(ctx, CookieName)
	if err != nil || !ok {
		return err
	}
	return m.store.SetTTL(ctx, CookieName, userID, m.heartbeatTTL)
}

// Clear deletes the session cookie.
func (m *Manager) Clear(ctx context.Context) error {
	return m.store.Delete(ctx, CookieName)
}

// TTL reports the remaining cookie lifetime. ok is false when no session
// cookie exists.
func (m *Manager) TTL(ctx context.Context) (time.Duration, bool, error) {
	return m.store.TTL(ctx, CookieName)
}
