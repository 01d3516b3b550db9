package handlers

import (
	"errors"
	"log"

	"perfumery/internal/middleware"
	"perfumery/internal/negotiate"
	"perfumery/internal/services"

	"github.com/gofiber/fiber/v2"
)

// chain appends handler to the route guards.
func chain(guards []fiber.Handler, handler fiber.Handler) []fiber.Handler {
	handlers := make([]fiber.Handler, 0, len(guards)+1)
	handlers = append(handlers, guards...)
	return append(handlers, handler)
}

// scopeOf builds the owner scope of the request from the session identity and
// the :userId path segment.
func scopeOf(c *fiber.Ctx) services.Scope {
	id, _ := middleware.CurrentIdentity(c)
	return services.Scope{Identity: id, OwnerID: c.Params("userId")}
}

// render renders an HTML page, exposing the signed-in user to the template.
func render(c *fiber.Ctx, name string, bind fiber.Map) error {
	if id, ok := middleware.CurrentIdentity(c); ok {
		bind["user"] = id
	}
	return c.Render(name, bind)
}

// message answers with a status and a short text, as {"error": text} for
// JSON clients and as plain text otherwise.
func message(c *fiber.Ctx, status int, text string) error {
	if negotiate.JSON(c) {
		return c.Status(status).JSON(fiber.Map{"error": text})
	}
	return c.Status(status).SendString(text)
}

// writeError maps a service error onto a response. Unexpected errors are
// logged and answered with the generic failure text only.
func writeError(c *fiber.Ctx, err error, notFound, failure string) error {
	var verr *services.ValidationError
	switch {
	case errors.Is(err, services.ErrForbidden):
		return message(c, fiber.StatusForbidden, "Unauthorized")
	case errors.Is(err, services.ErrNotFound):
		return message(c, fiber.StatusNotFound, notFound)
	case errors.As(err, &verr):
		return message(c, fiber.StatusBadRequest, verr.Message)
	default:
		log.Printf("%s: %v", failure, err)
		return message(c, fiber.StatusInternalServerError, failure)
	}
}

// parseBody binds a JSON or form body into out.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		log.Printf("Error parsing request body for %s %s: %v", c.Method(), c.Path(), err)
		return message(c, fiber.StatusBadRequest, "Invalid request body")
	}
	return nil
}
