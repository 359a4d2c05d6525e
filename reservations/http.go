package reservations

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cgibeparking/parking-api/auth"
	"github.com/cgibeparking/parking-api/httpapi"
	"github.com/cgibeparking/parking-api/middleware/tokenauth"
)

// Controller exposes the reservation endpoints.
type Controller struct {
	Service    *Service
	Logger     auth.Logger
	ContextKey string // locals key for the gateway's RoleContext
}

func NewController(service *Service) *Controller {
	return &Controller{
		Service:    service,
		Logger:     noopLogger{},
		ContextKey: tokenauth.DefaultContextKey,
	}
}

func (c *Controller) WithLogger(logger auth.Logger) *Controller {
	if logger != nil {
		c.Logger = logger
	}
	return c
}

// RegisterRoutes binds the endpoints: the overview behind the gateway,
// mutations additionally behind the admin gate.
func RegisterRoutes(app fiber.Router, c *Controller, gateway, adminGate fiber.Handler) {
	app.Get("/reservations/:date", gateway, c.ListByDate)
	app.Post("/reservations", gateway, adminGate, c.Add)
	app.Delete("/reservations/:parking/:date", gateway, adminGate, c.Delete)
}

// ListByDate handles GET /reservations/:date.
func (c *Controller) ListByDate(ctx *fiber.Ctx) error {
	items, err := c.Service.ListByDate(ctx.Context(), ctx.Params("date"))
	if err != nil {
		c.Logger.Error("list reservations: %v", err)
		return httpapi.Error(ctx, err)
	}
	return ctx.JSON(items)
}

// Add handles POST /reservations. A payload without an owner is stamped
// with the authenticated caller's identity.
func (c *Controller) Add(ctx *fiber.Ctx) error {
	payload := new(Reservation)
	if err := ctx.BodyParser(payload); err != nil {
		c.Logger.Error("add reservation parse payload: %v", err)
		return httpapi.BadRequest(ctx, err)
	}

	if payload.UserID == "" {
		if rc, ok := tokenauth.FromContext(ctx, c.ContextKey); ok {
			payload.UserID = rc.PrincipalID
		}
	}

	reservation, err := c.Service.Add(ctx.Context(), *payload)
	if err != nil {
		c.Logger.Error("add reservation %s/%s: %v", payload.ParkingID, payload.ReservationDate, err)
		return httpapi.Error(ctx, err)
	}
	return ctx.JSON(reservation)
}

// Delete handles DELETE /reservations/:parking/:date.
func (c *Controller) Delete(ctx *fiber.Ctx) error {
	parking := ctx.Params("parking")
	date := ctx.Params("date")

	if err := c.Service.Delete(ctx.Context(), parking, date); err != nil {
		c.Logger.Error("delete reservation %s/%s: %v", parking, date, err)
		return httpapi.Error(ctx, err)
	}
	return ctx.JSON(fiber.Map{"success": true})
}
