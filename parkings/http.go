package parkings

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cgibeparking/parking-api/auth"
	"github.com/cgibeparking/parking-api/httpapi"
)

// Controller exposes the parking catalog endpoints.
type Controller struct {
	Service *Service
	Logger  auth.Logger
}

func NewController(service *Service) *Controller {
	return &Controller{Service: service, Logger: noopLogger{}}
}

func (c *Controller) WithLogger(logger auth.Logger) *Controller {
	if logger != nil {
		c.Logger = logger
	}
	return c
}

// RegisterRoutes binds the catalog endpoints behind the gateway.
func RegisterRoutes(app fiber.Router, c *Controller, gateway fiber.Handler) {
	app.Get("/parkings", gateway, c.List)
	app.Post("/parkings", gateway, c.Add)
}

// List handles GET /parkings.
func (c *Controller) List(ctx *fiber.Ctx) error {
	items, err := c.Service.List(ctx.Context())
	if err != nil {
		c.Logger.Error("list parkings: %v", err)
		return httpapi.Error(ctx, err)
	}
	return ctx.JSON(items)
}

// Add handles POST /parkings.
func (c *Controller) Add(ctx *fiber.Ctx) error {
	payload := new(Parking)
	if err := ctx.BodyParser(payload); err != nil {
		c.Logger.Error("add parking parse payload: %v", err)
		return httpapi.BadRequest(ctx, err)
	}

	parking, err := c.Service.Add(ctx.Context(), *payload)
	if err != nil {
		c.Logger.Error("add parking %s: %v", payload.ParkingID, err)
		return httpapi.Error(ctx, err)
	}
	return ctx.JSON(parking)
}
