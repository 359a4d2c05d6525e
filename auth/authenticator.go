package auth

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
)

// Authenticator verifies submitted credentials and issues sessions.
type Authenticator struct {
	users  UserStore
	tokens *TokenService
	logger Logger
}

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(users UserStore, tokens *TokenService) *Authenticator {
	return &Authenticator{
		users:  users,
		tokens: tokens,
		logger: defLogger{},
	}
}

func (a *Authenticator) WithLogger(logger Logger) *Authenticator {
	if logger != nil {
		a.logger = logger
	}
	return a
}

// Login verifies the password against the stored digest and returns a
// session. An unknown userId, a partially written record, and a wrong
// password all surface as the same ErrBadCredentials so the endpoint
// cannot be used to enumerate accounts.
func (a *Authenticator) Login(ctx context.Context, userID, password string) (*Session, error) {
	user, err := a.users.Get(ctx, userID)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return nil, ErrBadCredentials
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to fetch user")
	}

	if user == nil || user.UserID == "" {
		// a record without its key field is a partial write, not an identity
		a.logger.Error("login found malformed user record for %s", userID)
		return nil, ErrBadCredentials
	}

	if err := ComparePasswordAndHash(password, user.Password); err != nil {
		if goerrors.Is(err, ErrMismatchedHashAndPassword) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}

	signed, err := a.tokens.Issue(user.UserID, user.Roles)
	if err != nil {
		return nil, err
	}

	return NewSession(user, signed), nil
}
