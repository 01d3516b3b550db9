// Package negotiate decides once per request whether a client is served JSON
// or the human-oriented HTML responses.
package negotiate

import "github.com/gofiber/fiber/v2"

// Preference is the response style chosen for a request.
type Preference int

const (
	// PrefersHTML is chosen unless the client accepts JSON and not HTML.
	PrefersHTML Preference = iota
	// PrefersJSON is chosen when the client accepts JSON but not HTML.
	PrefersJSON
)

const localsKey = "negotiate.preference"

func (p Preference) String() string {
	if p == PrefersJSON {
		return "json"
	}
	return "html"
}

// Decide computes the preference from the request's Accept header. A missing
// header or a wildcard accepts both and therefore yields PrefersHTML.
func Decide(c *fiber.Ctx) Preference {
	if c.Accepts(fiber.MIMEApplicationJSON) != "" && c.Accepts(fiber.MIMETextHTML) == "" {
		return PrefersJSON
	}
	return PrefersHTML
}

// New returns a middleware that stores the request's preference for From.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(localsKey, Decide(c))
		return c.Next()
	}
}

// From returns the preference stored by the middleware, deciding on the spot
// when the middleware did not run.
func From(c *fiber.Ctx) Preference {
	if p, ok := c.Locals(localsKey).(Preference); ok {
		return p
	}
	return Decide(c)
}

// JSON reports whether the request prefers JSON.
func JSON(c *fiber.Ctx) bool {
	return From(c) == PrefersJSON
}
