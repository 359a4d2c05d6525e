package auth

import "github.com/goliatone/go-errors"

const (
	TextCodeUserIDTaken        = "user_id_taken"
	TextCodeActivationNotFound = "activation_token_invalid"
	TextCodeActivationExpired  = "activation_token_expired"
	TextCodeBadCredentials     = "bad_credentials"
	TextCodeTokenInvalid       = "token_invalid"
	TextCodeValidationFailed   = "validation_failed"
)

// ErrUserIDTaken is returned when a registration reuses an existing userId.
var ErrUserIDTaken = errors.New("UserId already taken", errors.CategoryConflict).
	WithTextCode(TextCodeUserIDTaken).
	WithCode(errors.CodeConflict)

// ErrActivationNotFound is returned when no pending registration matches
// the presented activation token.
var ErrActivationNotFound = errors.New("Activation Token not valid", errors.CategoryNotFound).
	WithTextCode(TextCodeActivationNotFound).
	WithCode(errors.CodeNotFound)

// ErrActivationExpired is returned when the pending registration's expiry
// is already in the past at activation time.
var ErrActivationExpired = errors.New("Activation Token has expired", errors.CategoryBadInput).
	WithTextCode(TextCodeActivationExpired).
	WithCode(errors.CodeBadRequest)

// ErrBadCredentials covers both an unknown userId and a wrong password.
// Login must not reveal which of the two failed.
var ErrBadCredentials = errors.New("The credentials do not match.", errors.CategoryAuth).
	WithTextCode(TextCodeBadCredentials).
	WithCode(errors.CodeUnauthorized)

// ErrInvalidToken is the single verification failure: bad signature,
// expired, and malformed tokens are indistinguishable to callers.
var ErrInvalidToken = errors.New("invalid token", errors.CategoryAuth).
	WithTextCode(TextCodeTokenInvalid).
	WithCode(errors.CodeUnauthorized)

// ErrMismatchedHashAndPassword is the sentinel for a failed bcrypt compare.
var ErrMismatchedHashAndPassword = errors.New("mismatched hash and password", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized)

// ErrNoEmptyString rejects hashing an empty password.
var ErrNoEmptyString = errors.New("password must not be empty", errors.CategoryBadInput).
	WithCode(errors.CodeBadRequest)
