package core

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrBadCredentials = errors.New("bad credentials")
)

// Session is the result of a successful authentication. It is returned to
// the client and never stored server-side.
type Session struct {
	Username  string    `json:"username"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Authenticator verifies username/password pairs against the user store and
// issues bearer tokens. It is the only entry point that accepts raw
// passwords; passwords are never logged or echoed back.
type Authenticator struct {
	users    UserStore
	secret   []byte
	tokenTTL time.Duration
}

type AuthenticatorOption func(*Authenticator)

func WithTokenTTL(ttl time.Duration) AuthenticatorOption {
	return func(a *Authenticator) {
		a.tokenTTL = ttl
	}
}

func NewAuthenticator(users UserStore, secret []byte, opts ...AuthenticatorOption) *Authenticator {
	auth := &Authenticator{
		users:    users,
		secret:   secret,
		tokenTTL: DefaultTokenTTL,
	}
	for _, opt := range opts {
		opt(auth)
	}
	return auth
}

// Authenticate returns a session for the given credentials. A missing user
// and a wrong password both fail with ErrBadCredentials so the two cases are
// indistinguishable to the caller. Store failures are surfaced as
// ErrBadCredentials as well, never retried.
func (a *Authenticator) Authenticate(ctx context.Context, username, password string) (*Session, error) {
	user, err := a.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%w: looking up user: %v", ErrBadCredentials, err)
	}
	if user == nil {
		return nil, ErrBadCredentials
	}

	ok, err := a.users.ComparePassword(ctx, username, password)
	if err != nil {
		return nil, fmt.Errorf("%w: comparing password: %v", ErrBadCredentials, err)
	}
	if !ok {
		return nil, ErrBadCredentials
	}

	token, exp, err := NewToken(user.Username, a.tokenTTL, a.secret)
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}

	return &Session{
		Username:  user.Username,
		Token:     token,
		ExpiresAt: exp,
	}, nil
}
