package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/geocoder89/portfolio/internal/auth"
	"github.com/geocoder89/portfolio/internal/domain/user"
	"github.com/google/uuid"
)

// TokenIssuer is the part of *auth.Manager the session manager needs.
type TokenIssuer interface {
	IssueSessionToken(sessionID, username string) (string, time.Time, error)
	VerifySessionToken(token string) (*auth.Claims, error)
}

// Manager moves a browser between LoggedOut and LoggedIn.
type Manager struct {
	store  Store
	tokens TokenIssuer
	now    func() time.Time
}

func NewManager(store Store, tokens TokenIssuer) *Manager {
	return &Manager{store: store, tokens: tokens, now: time.Now}
}

// Login issues a fresh session for u. Credentials must already be verified.
// A new id is minted on every login so a pre-login token can never be promoted.
func (m *Manager) Login(ctx context.Context, u user.User) (string, Session, error) {
	id := uuid.NewString()

	raw, expiresAt, err := m.tokens.IssueSessionToken(id, u.Username)

	if err != nil {
		return "", Session{}, fmt.Errorf("issue session token: %w", err)
	}

	sess := Session{
		ID:        id,
		UserID:    u.ID,
		Username:  u.Username,
		LoggedIn:  true,
		CreatedAt: m.now().UTC(),
		ExpiresAt: expiresAt,
	}

	err = m.store.Save(ctx, sess)

	if err != nil {
		return "", Session{}, err
	}

	return raw, sess, nil
}

// Authenticate resolves a cookie token to a LoggedIn session.
func (m *Manager) Authenticate(ctx context.Context, token string) (Session, error) {
	if token == "" {
		return Session{}, ErrNotFound
	}

	claims, err := m.tokens.VerifySessionToken(token)

	if err != nil {
		return Session{}, err
	}

	sess, err := m.store.Get(ctx, claims.SessionID)

	if err != nil {
		return Session{}, err
	}

	if !sess.LoggedIn || sess.Expired(m.now()) {
		return Session{}, ErrExpired
	}

	return sess, nil
}

// Logout drops the server-side session named by token. Unknown or invalid
// tokens are not an error: the browser ends up LoggedOut either way.
func (m *Manager) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	claims, err := m.tokens.VerifySessionToken(token)

	if err != nil {
		return nil
	}

	err = m.store.Delete(ctx, claims.SessionID)

	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}

	return nil
}
