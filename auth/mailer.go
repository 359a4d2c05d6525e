package auth

import (
	"context"
	"fmt"
)

// ActivationMail carries everything a delivery backend needs to send the
// activation link. The link is the only path to the activation token.
type ActivationMail struct {
	UserID string
	To     string
	Link   string
}

// Subject of the activation email.
func (m ActivationMail) Subject() string {
	return "Activate your parking account"
}

// Body is the plain-text activation message.
func (m ActivationMail) Body() string {
	return fmt.Sprintf("Hello %s, activate here %s", m.UserID, m.Link)
}

// Mailer sends a single transactional email. No retries happen here; a
// delivery failure surfaces to the caller.
type Mailer interface {
	SendActivation(ctx context.Context, mail ActivationMail) error
}
