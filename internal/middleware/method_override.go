package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// MethodOverrideField is the form or query field that carries the intended
// method of a tunneled request.
const MethodOverrideField = "_method"

var overridable = map[string]bool{
	fiber.MethodPut:    true,
	fiber.MethodPatch:  true,
	fiber.MethodDelete: true,
}

// MethodOverride lets browser forms send PUT, PATCH and DELETE requests as
// POST. The intended method is taken from the X-HTTP-Method-Override header,
// the _method query parameter or the _method body field, in that order, and
// routing restarts with it. It must be registered before any other handler.
func MethodOverride() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodPost {
			return c.Next()
		}
		method := c.Get("X-HTTP-Method-Override")
		if method == "" {
			method = c.Query(MethodOverrideField)
		}
		if method == "" {
			method = c.FormValue(MethodOverrideField)
		}
		if method == "" {
			method = jsonMethodField(c)
		}
		method = strings.ToUpper(strings.TrimSpace(method))
		if !overridable[method] {
			return c.Next()
		}
		c.Method(method)
		return c.RestartRouting()
	}
}

// jsonMethodField reads _method from a JSON body.
func jsonMethodField(c *fiber.Ctx) string {
	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		return ""
	}
	var body struct {
		Method string `json:"_method"`
	}
	if err := c.BodyParser(&body); err != nil {
		return ""
	}
	return body.Method
}
