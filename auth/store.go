package auth

import "context"

// UserStore is the durable Users collection, keyed by userId.
// Implementations return a CategoryNotFound error (goerrors.IsNotFound)
// for absent records; Put overwrites unconditionally, last write wins.
type UserStore interface {
	Get(ctx context.Context, userID string) (*User, error)
	Put(ctx context.Context, user *User) error
}

// RegistrationStore is the pending-registrations collection, keyed by
// activation token.
type RegistrationStore interface {
	Get(ctx context.Context, token string) (*PendingRegistration, error)
	Put(ctx context.Context, reg *PendingRegistration) error
	Delete(ctx context.Context, token string) error
}
