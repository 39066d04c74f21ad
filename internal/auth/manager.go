package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jornaltgi/backend/internal/models"
)

var (
	// ErrInvalidCredentials indicates the supplied username/password pair does not
	// match the seeded administrative account.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrSessionNotFound indicates the provided token does not map to an active session.
	ErrSessionNotFound = errors.New("session not found")
)

// Session represents an opaque token issued to the administrative user.
type Session struct {
	Token     string
	Username  string
	ExpiresAt time.Time
}

// UserSource resolves stored accounts for credential verification.
type UserSource interface {
	FindByUsername(ctx context.Context, username string) (models.User, error)
}

// SessionStore persists issued session tokens. The default in-memory
// implementation means a process restart invalidates every session.
type SessionStore interface {
	Save(ctx context.Context, session Session) error
	Find(ctx context.Context, token string) (Session, error)
	Delete(ctx context.Context, token string) error
}

// Manager verifies credentials and manages the lifecycle of session tokens.
type Manager struct {
	ttl   time.Duration
	users UserSource
	store SessionStore

	// NowFunc allows tests to control the clock. Defaults to time.Now.
	NowFunc func() time.Time
}

// NewManager constructs a Manager issuing tokens with the provided TTL.
func NewManager(ttl time.Duration, users UserSource, store SessionStore) *Manager {
	if users == nil {
		panic("auth: user source must not be nil")
	}
	if store == nil {
		panic("auth: session store must not be nil")
	}
	return &Manager{
		ttl:   ttl,
		users: users,
		store: store,
	}
}

// Login verifies the username/password pair against the stored account and, on
// success, mints a new random session token. Any lookup or comparison failure
// collapses into ErrInvalidCredentials so callers cannot distinguish an unknown
// username from a wrong password.
func (m *Manager) Login(ctx context.Context, username, password string) (Session, error) {
	if username == "" || password == "" {
		return Session{}, ErrInvalidCredentials
	}

	user, err := m.users.FindByUsername(ctx, username)
	if err != nil {
		return Session{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return Session{}, ErrInvalidCredentials
	}

	token, err := randomToken()
	if err != nil {
		return Session{}, err
	}

	session := Session{
		Token:     token,
		Username:  user.Username,
		ExpiresAt: m.now().Add(m.ttl),
	}

	if err := m.store.Save(ctx, session); err != nil {
		return Session{}, err
	}

	return session, nil
}

// Check reports whether the token identifies an active session. Expired
// sessions are deleted lazily. A missing or unknown token is not an error.
func (m *Manager) Check(ctx context.Context, token string) (string, bool) {
	if token == "" {
		return "", false
	}

	session, err := m.store.Find(ctx, token)
	if err != nil {
		return "", false
	}

	if m.now().After(session.ExpiresAt) {
		_ = m.store.Delete(ctx, token)
		return "", false
	}

	return session.Username, true
}

// Logout revokes the token. Revoking a token that is absent is not an error.
func (m *Manager) Logout(ctx context.Context, token string) {
	if token == "" {
		return
	}
	_ = m.store.Delete(ctx, token)
}

func (m *Manager) now() time.Time {
	if m.NowFunc != nil {
		return m.NowFunc().UTC()
	}
	return time.Now().UTC()
}

func randomToken() (string, error) {
	const size = 32
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
