package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cgibeparking/parking-api/httpapi"
)

// Controller exposes the registration, activation, and login endpoints.
// All three are public; the gateway middleware never fronts them.
type Controller struct {
	Registrar *Registrar
	Auther    *Authenticator
	Logger    Logger
}

// NewController wires the auth HTTP surface.
func NewController(registrar *Registrar, auther *Authenticator) *Controller {
	return &Controller{
		Registrar: registrar,
		Auther:    auther,
		Logger:    defLogger{},
	}
}

func (c *Controller) WithLogger(logger Logger) *Controller {
	if logger != nil {
		c.Logger = logger
	}
	return c
}

// RegisterRoutes binds the auth endpoints onto the app.
func RegisterRoutes(app fiber.Router, c *Controller) {
	app.Post("/register", c.Register)
	app.Get("/register/activate/:token", c.Activate)
	app.Post("/login", c.Login)
}

// Register handles POST /register.
func (c *Controller) Register(ctx *fiber.Ctx) error {
	payload := new(RegisterInput)
	if err := ctx.BodyParser(payload); err != nil {
		c.Logger.Error("register parse payload: %v", err)
		return httpapi.BadRequest(ctx, err)
	}

	if err := c.Registrar.Register(ctx.Context(), *payload); err != nil {
		c.Logger.Error("register %s: %v", payload.UserID, err)
		return httpapi.Error(ctx, err)
	}

	return ctx.JSON(fiber.Map{"success": true})
}

// Activate handles GET /register/activate/:token.
func (c *Controller) Activate(ctx *fiber.Ctx) error {
	session, err := c.Registrar.Activate(ctx.Context(), ctx.Params("token"))
	if err != nil {
		c.Logger.Error("activate: %v", err)
		return httpapi.Error(ctx, err)
	}

	return ctx.JSON(session)
}

// LoginRequest payload
type LoginRequest struct {
	UserID   string `json:"userId"`
	Password string `json:"password"`
}

// Login handles POST /login.
func (c *Controller) Login(ctx *fiber.Ctx) error {
	payload := new(LoginRequest)
	if err := ctx.BodyParser(payload); err != nil {
		c.Logger.Error("login parse payload: %v", err)
		return httpapi.BadRequest(ctx, err)
	}

	session, err := c.Auther.Login(ctx.Context(), payload.UserID, payload.Password)
	if err != nil {
		c.Logger.Error("login %s: %v", payload.UserID, err)
		return httpapi.Error(ctx, err)
	}

	return ctx.JSON(session)
}
