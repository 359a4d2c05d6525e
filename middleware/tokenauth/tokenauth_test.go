package tokenauth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cgibeparking/parking-api/auth"
	"github.com/cgibeparking/parking-api/middleware/tokenauth"
)

func newGatedApp(t *testing.T, cfg tokenauth.Config) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Get("/protected", tokenauth.New(cfg), func(c *fiber.Ctx) error {
		rc, ok := tokenauth.FromContext(c, cfg.ContextKey)
		require.True(t, ok)
		return c.JSON(fiber.Map{"principal": rc.PrincipalID})
	})
	return app
}

func TestGatewayPassesValidToken(t *testing.T) {
	ts := auth.NewTokenService([]byte("test-key"))
	token, err := ts.Issue("alice1", auth.NewRoleSet(auth.RoleMember))
	require.NoError(t, err)

	app := newGatedApp(t, tokenauth.Config{Authorizer: auth.NewAuthorizer(ts)})

	tests := []struct {
		name   string
		header string
	}{
		{name: "Bearer scheme", header: "Bearer " + token},
		{name: "Bare token", header: token},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodGet, "/protected", nil)
			req.Header.Set(fiber.HeaderAuthorization, tt.header)
			res, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, res.StatusCode)
		})
	}
}

func TestGatewayRejects(t *testing.T) {
	ts := auth.NewTokenService([]byte("test-key"))
	forged, err := auth.NewTokenService([]byte("other-key")).Issue("alice1", auth.NewRoleSet(auth.RoleMember))
	require.NoError(t, err)

	app := newGatedApp(t, tokenauth.Config{Authorizer: auth.NewAuthorizer(ts)})

	tests := []struct {
		name   string
		header string
	}{
		{name: "No header"},
		{name: "Empty bearer", header: "Bearer "},
		{name: "Forged token", header: "Bearer " + forged},
		{name: "Garbage", header: "Bearer not.a.jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tt.header)
			}
			res, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
		})
	}
}

func TestGatewayFilterSkips(t *testing.T) {
	ts := auth.NewTokenService([]byte("test-key"))
	app := fiber.New()
	app.Get("/health", tokenauth.New(tokenauth.Config{
		Authorizer: auth.NewAuthorizer(ts),
		Filter:     func(c *fiber.Ctx) bool { return c.Path() == "/health" },
	}), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	res, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestGatewayCustomErrorHandler(t *testing.T) {
	ts := auth.NewTokenService([]byte("test-key"))
	app := fiber.New()
	app.Get("/protected", tokenauth.New(tokenauth.Config{
		Authorizer: auth.NewAuthorizer(ts),
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusTeapot).SendString(err.Error())
		},
	}), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	res, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/protected", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, res.StatusCode)
}

func TestNewPanicsWithoutAuthorizer(t *testing.T) {
	assert.Panics(t, func() { tokenauth.New() })
}
