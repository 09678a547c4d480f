package core

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenSignature = errors.New("token signature invalid")
)

// DefaultTokenTTL is the fixed validity window of issued tokens.
const DefaultTokenTTL = 10 * time.Hour

type AuthClaims struct {
	jwt.RegisteredClaims
}

// NewToken issues a signed bearer token for the given subject. The token
// embeds the issue time and expires exactly ttl after it. Tokens are never
// persisted server-side; validity is fully determined by the signature and
// the embedded expiry at verification time.
func NewToken(subject string, ttl time.Duration, secret []byte) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(ttl)
	claims := &AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, exp, nil
}

// VerifyToken parses the token, recomputes the signature under secret and
// validates the embedded expiry. The claims are only returned when the
// signature verifies; an unverified payload is never trusted.
func VerifyToken(token string, secret []byte) (*AuthClaims, error) {
	claims := &AuthClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))

	switch {
	case err == nil && parsed.Valid:
		return claims, nil
	case errors.Is(err, jwt.ErrTokenMalformed):
		return nil, ErrTokenMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return nil, ErrTokenSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrTokenExpired
	default:
		return nil, ErrTokenMalformed
	}
}
