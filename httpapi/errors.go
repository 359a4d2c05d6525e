// Package httpapi holds the request-boundary glue shared by the JSON
// controllers: one place where workflow errors become a status and an
// {"error": message} body.
package httpapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

// Error converts any workflow failure into the client-visible response.
// Rich errors keep their category-derived status and message; anything
// else is reported as a generic server error. Nothing is swallowed: the
// caller logs before handing the error here.
func Error(c *fiber.Ctx, err error) error {
	var rich *errors.Error
	if !errors.As(err, &rich) {
		rich = errors.Wrap(err, errors.CategoryInternal, "An unexpected server error occurred").
			WithCode(errors.CodeInternal)
	}

	status := rich.Code
	if status < fiber.StatusContinue {
		status = fiber.StatusInternalServerError
	}

	return c.Status(status).JSON(fiber.Map{"error": rich.Message})
}

// BadRequest reports a body that could not be parsed at all.
func BadRequest(c *fiber.Ctx, err error) error {
	return Error(c, errors.Wrap(err, errors.CategoryBadInput, "Error parsing body").
		WithCode(errors.CodeBadRequest))
}
