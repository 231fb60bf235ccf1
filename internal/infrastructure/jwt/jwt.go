package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNoToken      = errors.New("no token configured")
	ErrInvalidToken = errors.New("invalid token")
)

// Claims mirrors what the records API puts into its access tokens.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Token is a pre-issued bearer token. The client cannot verify the signature
// (it has no secret), it only reads claims to warn about expiry.
type Token struct {
	raw string
}

func New(raw string) *Token { return &Token{raw: raw} }

func (t *Token) Empty() bool { return t == nil || t.raw == "" }

func (t *Token) AuthorizationHeader() string {
	if t.Empty() {
		return ""
	}
	return "Bearer " + t.raw
}

func (t *Token) Claims() (*Claims, error) {
	if t.Empty() {
		return nil, ErrNoToken
	}

	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(t.raw, claims); err != nil {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// ExpiresIn returns the time left until expiry. ok is false when the token
// carries no exp claim or cannot be read.
func (t *Token) ExpiresIn(now time.Time) (left time.Duration, ok bool) {
	claims, err := t.Claims()
	if err != nil || claims.ExpiresAt == nil {
		return 0, false
	}
	return claims.ExpiresAt.Time.Sub(now), true
}
