package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// ActivationTTL is how long an activation link stays usable. Expiry is
// only checked lazily when the link is followed; nothing reaps stale
// pending registrations in the background.
const ActivationTTL = 24 * time.Hour

// requiredEmailDomain restricts signups to company addresses.
const requiredEmailDomain = "@cgi.com"

const (
	msgPasswordTooShort = "Password needs to be longer than 8 characters"
	msgUserIDTooShort   = "Username needs to longer than 5 characters"
	msgEmailInvalid     = "Email is not valid"
)

// RegisterInput is the registration submission payload.
type RegisterInput struct {
	UserID   string `json:"userId"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate runs the registration shape rules. The reported message is
// the first failure in submission-check order.
func (r RegisterInput) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.Password,
			validation.Required.Error(msgPasswordTooShort),
			validation.Length(7, 0).Error(msgPasswordTooShort),
		),
		validation.Field(&r.UserID,
			validation.Required.Error(msgUserIDTooShort),
			validation.Length(6, 0).Error(msgUserIDTooShort),
		),
		validation.Field(&r.Email,
			validation.Required.Error(msgEmailInvalid),
			validation.By(companyEmail),
		),
	)
	return firstValidationError(err, "password", "userId", "email")
}

func companyEmail(value any) error {
	s, _ := value.(string)
	if !strings.HasSuffix(s, requiredEmailDomain) {
		return errors.New(msgEmailInvalid)
	}
	return nil
}

// firstValidationError converts an ozzo error map into a single
// client-facing validation error, honoring the given field precedence.
func firstValidationError(err error, order ...string) error {
	if err == nil {
		return nil
	}

	fields, ok := err.(validation.Errors)
	if !ok {
		return goerrors.Wrap(err, goerrors.CategoryValidation, err.Error()).
			WithTextCode(TextCodeValidationFailed).
			WithCode(goerrors.CodeBadRequest)
	}

	for _, field := range order {
		if ferr, found := fields[field]; found {
			return goerrors.New(ferr.Error(), goerrors.CategoryValidation).
				WithTextCode(TextCodeValidationFailed).
				WithCode(goerrors.CodeBadRequest).
				WithMetadata(map[string]any{"field": field})
		}
	}

	return goerrors.New(err.Error(), goerrors.CategoryValidation).
		WithTextCode(TextCodeValidationFailed).
		WithCode(goerrors.CodeBadRequest)
}

// Registrar drives the Submitted -> PendingActivation -> Activated flow.
type Registrar struct {
	users     UserStore
	pending   RegistrationStore
	mailer    Mailer
	tokens    *TokenService
	deployURL string
	logger    Logger
	nowFn     func() time.Time
	tokenFn   func() string
}

// NewRegistrar wires the registration workflow with its collaborators.
// deployURL is the public base the activation deep link is built on.
func NewRegistrar(users UserStore, pending RegistrationStore, mailer Mailer, tokens *TokenService, deployURL string) *Registrar {
	return &Registrar{
		users:     users,
		pending:   pending,
		mailer:    mailer,
		tokens:    tokens,
		deployURL: strings.TrimRight(deployURL, "/"),
		logger:    defLogger{},
		nowFn:     time.Now,
		tokenFn:   uuid.NewString,
	}
}

func (r *Registrar) WithLogger(logger Logger) *Registrar {
	if logger != nil {
		r.logger = logger
	}
	return r
}

// WithTimeFunc overrides the clock used to stamp activation expiry.
func (r *Registrar) WithTimeFunc(now func() time.Time) *Registrar {
	if now != nil {
		r.nowFn = now
	}
	return r
}

// Register validates the candidate, persists a pending registration
// keyed by a fresh single-use activation token, and emails the link.
// Registration never authenticates the caller; the response carries no
// session.
//
// The conflict check consults durable users only: a pending registration
// does not reserve its userId. Two signups for the same id can both go
// out, and the first to activate wins the id; a repeat submission before
// activation is therefore NOT a conflict.
//
// The existence check and the later write are two separate store calls
// with no isolation: two racing registrations for the same userId can
// both pass the check, and the store's last write wins. A conditional
// put would close the gap if the store ever grows one.
func (r *Registrar) Register(ctx context.Context, input RegisterInput) error {
	if err := input.Validate(); err != nil {
		return err
	}

	_, err := r.users.Get(ctx, input.UserID)
	switch {
	case err == nil:
		return ErrUserIDTaken
	case !goerrors.IsNotFound(err):
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check for existing user")
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return err
	}

	token := r.tokenFn()
	reg := &PendingRegistration{
		Token:      token,
		UserID:     input.UserID,
		Name:       input.Name,
		Email:      input.Email,
		Password:   hash,
		Expiration: r.nowFn().Add(ActivationTTL).UnixMilli(),
	}

	// The record must exist before the mail goes out: the email is the
	// only path to the token. If delivery fails the record stays behind
	// and the caller sees the failure.
	if err := r.pending.Put(ctx, reg); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to persist registration")
	}

	mail := ActivationMail{
		UserID: input.UserID,
		To:     input.Email,
		Link:   r.deployURL + "/activation/" + token,
	}
	if err := r.mailer.SendActivation(ctx, mail); err != nil {
		r.logger.Error("activation mail delivery failed for %s: %v", input.UserID, err)
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to send activation email")
	}

	r.logger.Info("registration pending for %s", input.UserID)
	return nil
}

// Activate promotes a pending registration into a durable user and
// returns a session for it. The stored expiry being in the past fails
// the attempt; now after expiry means expired.
//
// Promotion and pending-record deletion are two writes with no
// transaction. If the delete fails the user already exists, so a retried
// activation just overwrites the same record and succeeds again; that is
// treated as success, unlike the conflict at registration time.
func (r *Registrar) Activate(ctx context.Context, token string) (*Session, error) {
	reg, err := r.pending.Get(ctx, token)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return nil, ErrActivationNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to look up registration")
	}

	if r.nowFn().After(reg.ExpiresAt()) {
		return nil, ErrActivationExpired
	}

	user := &User{
		UserID:   reg.UserID,
		Name:     reg.Name,
		Email:    reg.Email,
		Password: reg.Password,
		Roles:    NewRoleSet(RoleMember),
	}
	if err := r.users.Put(ctx, user); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create user")
	}

	if err := r.pending.Delete(ctx, token); err != nil {
		// User exists already; the orphaned pending record only means a
		// retried activation will succeed once more.
		r.logger.Error("failed to delete pending registration %s: %v", token, err)
	}

	signed, err := r.tokens.Issue(user.UserID, user.Roles)
	if err != nil {
		return nil, err
	}

	r.logger.Info("user %s activated", user.UserID)
	return NewSession(user, signed), nil
}
