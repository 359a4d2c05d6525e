package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
)

// TokenTTL is the fixed validity window of issued tokens. There is no
// refresh mechanism; rotating the signing key invalidates everything
// outstanding.
const TokenTTL = 24 * time.Hour

// Claims carried by an issued token.
type Claims struct {
	jwt.RegisteredClaims
	UserRoles string `json:"roles,omitempty"`
}

// UserID returns the subject identifier.
func (c *Claims) UserID() string {
	return c.RegisteredClaims.Subject
}

// Roles returns the role claim as a set.
func (c *Claims) Roles() RoleSet {
	return ParseRoles(c.UserRoles)
}

// TokenService signs and verifies the compact bearer tokens used as
// sessions. The signing key is process-wide configuration, read-only
// after startup.
type TokenService struct {
	signingKey []byte
	logger     Logger
	nowFn      func() time.Time
}

// NewTokenService creates a new TokenService instance
func NewTokenService(signingKey []byte) *TokenService {
	return &TokenService{
		signingKey: signingKey,
		logger:     defLogger{},
		nowFn:      time.Now,
	}
}

func (ts *TokenService) WithLogger(logger Logger) *TokenService {
	if logger != nil {
		ts.logger = logger
	}
	return ts
}

// WithTimeFunc overrides the clock used for issuance and expiry checks.
func (ts *TokenService) WithTimeFunc(now func() time.Time) *TokenService {
	if now != nil {
		ts.nowFn = now
	}
	return ts
}

// Issue signs a token asserting the subject and its roles for the next
// TokenTTL.
func (ts *TokenService) Issue(userID string, roles RoleSet) (string, error) {
	now := ts.nowFn()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
		UserRoles: roles.String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign JWT")
	}
	return signed, nil
}

// Verify checks signature and expiry and extracts the claims. Every
// failure collapses to ErrInvalidToken so callers cannot tell a forged
// token from an expired or garbled one.
func (ts *TokenService) Verify(raw string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	}, jwt.WithTimeFunc(ts.nowFn))

	if err != nil || !token.Valid {
		ts.logger.Debug("token verification failed: %v", err)
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
