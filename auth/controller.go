// Package auth orchestrates login, registration, and logout against the
// external identity provider and mirrors the resulting identity into the
// session cookie the server consumes. None of this is a security boundary:
// the server verifies identity on every request it handles.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/Dsnks-19/Task-management-system/domain"
	"github.com/Dsnks-19/Task-management-system/identity"
	"github.com/Dsnks-19/Task-management-system/session"
)

// Page paths the auth flows redirect between.
const (
	EntryPath    = "/"
	RegisterPath = "/register"
	BoardsPath   = "/boards"
)

// IdentityService is the slice of the provider wrapper the controller needs.
type IdentityService interface {
	SignIn(ctx context.Context, email, password string) (identity.Account, error)
	SignUp(ctx context.Context, email, password string) (identity.Account, error)
	UpdateDisplayName(ctx context.Context, idToken, name string) error
	DeleteAccount(ctx context.Context, idToken string) error
	SignOut()
}

// ProfileCreator materializes the user profile on the application server.
type ProfileCreator interface {
	CreateUser(ctx context.Context, profile domain.UserProfile) error
}

// Controller wires the provider, the server API, and the session cookie.
type Controller struct {
	ids      IdentityService
	profiles ProfileCreator
	sessions *session.Manager
	log      *log.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger overrides the controller's logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *Controller) { c.log = logger }
}

// New creates an auth controller.
func New(ids IdentityService, profiles ProfileCreator, sessions *session.Manager, opts ...Option) *Controller {
	c := &Controller{ids: ids, profiles: profiles, sessions: sessions, log: log.StandardLogger()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Login authenticates against the provider, establishes the session cookie,
// and returns the path to redirect to.
func (c *Controller) Login(ctx context.Context, email, password string) (string, error) {
	acct, err := c.ids.SignIn(ctx, email, password)
	if err != nil {
		c.log.WithFields(log.Fields{"email": email, "error": err.Error()}).Warn("login failed")
		return "", err
	}
	if err := c.sessions.Establish(ctx, acct.UID); err != nil {
		return "", fmt.Errorf("establish session: %w", err)
	}
	return BoardsPath, nil
}

// Register creates the provider account, pushes the display name when one
// was given, and materializes the profile on the server. If the profile call
// fails the provider account is deleted again so a retry starts clean,
// rather than leaving an identity with no profile behind.
func (c *Controller) Register(ctx context.Context, email, password, displayName string) (string, error) {
	acct, err := c.ids.SignUp(ctx, email, password)
	if err != nil {
		c.log.WithFields(log.Fields{"email": email, "error": err.Error()}).Warn("registration failed")
		return "", err
	}

	name := strings.TrimSpace(displayName)
	if name != "" {
		if err := c.ids.UpdateDisplayName(ctx, acct.IDToken, name); err != nil {
			c.rollback(ctx, acct)
			return "", err
		}
	} else {
		name = localPart(email)
	}

	profile := domain.UserProfile{UID: acct.UID, Email: acct.Email, DisplayName: name}
	if err := c.profiles.CreateUser(ctx, profile); err != nil {
		c.rollback(ctx, acct)
		return "", fmt.Errorf("create user profile: %w", err)
	}

	if err := c.sessions.Establish(ctx, acct.UID); err != nil {
		return "", fmt.Errorf("establish session: %w", err)
	}
	return BoardsPath, nil
}

func (c *Controller) rollback(ctx context.Context, acct identity.Account) {
	if err := c.ids.DeleteAccount(ctx, acct.IDToken); err != nil {
		// The account survives without a profile; registration can be
		// retried with the same email once the provider entry is cleaned up.
		c.log.WithFields(log.Fields{"uid": acct.UID, "error": err.Error()}).
			Error("rollback of provider account failed")
	}
}

// Logout signs out of the provider, clears the session cookie, and returns
// the entry path to redirect to.
func (c *Controller) Logout(ctx context.Context) (string, error) {
	c.ids.SignOut()
	if err := c.sessions.Clear(ctx); err != nil {
		return "", fmt.Errorf("clear session: %w", err)
	}
	return EntryPath, nil
}

// Heartbeat refreshes the session cookie on page interaction.
func (c *Controller) Heartbeat(ctx context.Context) error {
	return c.sessions.Heartbeat(ctx)
}

// GateRedirect decides whether the current page should redirect based on the
// auth state: signed-in users are moved off the entry and registration
// pages, signed-out users are moved back to the entry page.
func GateRedirect(signedIn bool, path string) (string, bool) {
	onEntry := path == EntryPath || path == RegisterPath
	if signedIn && onEntry {
		return BoardsPath, true
	}
	if !signedIn && !onEntry {
		return EntryPath, true
	}
	return "", false
}

// UserMessage maps an auth-flow failure to the copy shown to the user.
func UserMessage(err error) string {
	var perr *identity.ProviderError
	if errors.As(err, &perr) {
		return perr.UserMessage()
	}
	return identity.GenericAuthMessage
}

func localPart(email string) string {
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}
