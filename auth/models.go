package auth

import "time"

// User is the durable identity record, keyed by its immutable userId.
// It is created only by a successful activation, never directly by
// registration, and this package never deletes it.
type User struct {
	UserID   string  `json:"userId"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"-"` // bcrypt digest
	Roles    RoleSet `json:"roles"`
}

// PendingRegistration is an in-flight signup, keyed by its single-use
// activation token. It exists only between submission and activation or
// expiry; nothing ever updates it in place.
type PendingRegistration struct {
	Token      string `json:"token"`
	UserID     string `json:"userId"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"-"` // bcrypt digest
	Expiration int64  `json:"expiration"` // milliseconds since epoch
}

// ExpiresAt converts the stored millisecond expiry horizon.
func (r *PendingRegistration) ExpiresAt() time.Time {
	return time.UnixMilli(r.Expiration)
}

// Session is the response returned to a client after login or a
// successful activation.
type Session struct {
	Auth   bool    `json:"auth"`
	Token  string  `json:"token"`
	UserID string  `json:"userId"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Roles  RoleSet `json:"roles"`
}

// NewSession pairs a signed token with the user's profile snapshot.
func NewSession(user *User, token string) *Session {
	return &Session{
		Auth:   true,
		Token:  token,
		UserID: user.UserID,
		Name:   user.Name,
		Email:  user.Email,
		Roles:  user.Roles,
	}
}
