// Package tokenauth is the front-door gateway middleware: it extracts
// the bearer token from each inbound request, asks the authorizer for a
// verdict, and attaches the resulting role context for downstream
// handlers. It never checks roles itself.
package tokenauth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"

	"github.com/cgibeparking/parking-api/auth"
)

// DefaultContextKey is where the role context lands in request locals.
const DefaultContextKey = "roleContext"

// ErrUnauthorized is handed to the ErrorHandler on a Deny verdict.
var ErrUnauthorized = errors.New("Unauthorized", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized)

type Config struct {
	// Filter skips the middleware when it returns true.
	Filter func(*fiber.Ctx) bool

	// ErrorHandler renders a Deny. Defaults to 401 {"error":"Unauthorized"}.
	ErrorHandler func(*fiber.Ctx, error) error

	// Authorizer produces the verdict. Required.
	Authorizer *auth.Authorizer

	// ContextKey is the locals key for the attached RoleContext.
	ContextKey string

	// AuthScheme is the expected Authorization scheme prefix. A bare
	// token without the prefix is accepted too.
	AuthScheme string
}

func configDefault(config ...Config) Config {
	var cfg Config
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.Authorizer == nil {
		panic("tokenauth: Config.Authorizer is required")
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
		}
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = DefaultContextKey
	}

	if cfg.AuthScheme == "" {
		cfg.AuthScheme = "Bearer"
	}

	return cfg
}

// New builds the gateway middleware.
func New(config ...Config) fiber.Handler {
	cfg := configDefault(config...)

	return func(c *fiber.Ctx) error {
		if cfg.Filter != nil && cfg.Filter(c) {
			return c.Next()
		}

		raw := extractToken(c, cfg.AuthScheme)
		verdict := cfg.Authorizer.Decide(raw, c.Method()+" "+c.Path())

		allow, ok := verdict.(auth.Allow)
		if !ok {
			return cfg.ErrorHandler(c, ErrUnauthorized)
		}

		c.Locals(cfg.ContextKey, allow.RoleContext())
		return c.Next()
	}
}

// FromContext retrieves the role context a previous Allow attached.
func FromContext(c *fiber.Ctx, key string) (auth.RoleContext, bool) {
	if key == "" {
		key = DefaultContextKey
	}
	rc, ok := c.Locals(key).(auth.RoleContext)
	return rc, ok
}

func extractToken(c *fiber.Ctx, scheme string) string {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return ""
	}
	if rest, found := strings.CutPrefix(header, scheme+" "); found {
		return strings.TrimSpace(rest)
	}
	return strings.TrimSpace(header)
}
