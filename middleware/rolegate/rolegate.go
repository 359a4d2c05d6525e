// Package rolegate rejects requests whose caller lacks a required role
// before they reach a resource handler. It consumes the role context the
// gateway middleware attached after an Allow verdict.
package rolegate

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"

	"github.com/cgibeparking/parking-api/auth"
	"github.com/cgibeparking/parking-api/middleware/tokenauth"
)

// ErrForbidden is handed to the ErrorHandler when the role test fails.
var ErrForbidden = errors.New("Unauthorized", errors.CategoryAuthz).
	WithCode(errors.CodeForbidden)

type Config struct {
	// Required is the role the caller's set must contain. Required.
	Required string

	// ContextKey is the locals key the gateway stored the RoleContext
	// under. Defaults to the tokenauth key.
	ContextKey string

	// ErrorHandler renders the rejection. Defaults to 403
	// {"error":"Unauthorized"}; a denial is final, never retried.
	ErrorHandler func(*fiber.Ctx, error) error
}

func configDefault(config ...Config) Config {
	var cfg Config
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.Required == "" {
		panic("rolegate: Config.Required is required")
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = tokenauth.DefaultContextKey
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Unauthorized"})
		}
	}

	return cfg
}

// New builds a middleware requiring membership of the configured role.
func New(config ...Config) fiber.Handler {
	cfg := configDefault(config...)

	return func(c *fiber.Ctx) error {
		rc, ok := c.Locals(cfg.ContextKey).(auth.RoleContext)
		if !ok || !rc.Roles.Has(cfg.Required) {
			return cfg.ErrorHandler(c, ErrForbidden)
		}
		return c.Next()
	}
}
