package middleware

import (
	"context"
	"log"

	"perfumery/internal/models"
	"perfumery/internal/negotiate"
	"perfumery/internal/services"
	"perfumery/internal/session"

	"github.com/gofiber/fiber/v2"
)

const identityKey = "identity"

// SignInPath is where unauthenticated browser clients are sent.
const SignInPath = "/auth/sign-in"

// IdentityResolver confirms that a session identity still names a stored
// user. Implemented by services.AuthService.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, id models.Identity) (models.Identity, bool, error)
}

// LoadIdentity resolves the session identity of every request and stores it
// for CurrentIdentity. A session that cannot be read is treated as signed out,
// and a session whose user no longer exists is destroyed.
func LoadIdentity(sessions *session.Manager, users IdentityResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := sessions.Identity(c)
		if err != nil {
			log.Printf("Error resolving session identity: %v", err)
		}
		if !ok {
			return c.Next()
		}

		id, ok, err = users.ResolveIdentity(c.UserContext(), id)
		switch {
		case err != nil:
			log.Printf("Error resolving session user: %v", err)
		case !ok:
			if err := sessions.Destroy(c); err != nil {
				log.Printf("Error destroying session of removed user: %v", err)
			}
		default:
			c.Locals(identityKey, id)
		}
		return c.Next()
	}
}

// CurrentIdentity returns the identity stored by LoadIdentity.
func CurrentIdentity(c *fiber.Ctx) (models.Identity, bool) {
	id, ok := c.Locals(identityKey).(models.Identity)
	return id, ok
}

// SignedIn rejects requests without a signed-in session. Browser clients are
// redirected to the sign-in page; JSON clients get 401.
func SignedIn() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := CurrentIdentity(c); ok {
			return c.Next()
		}
		if negotiate.JSON(c) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Sign in required",
			})
		}
		return c.Redirect(SignInPath)
	}
}

// OwnerRequired rejects requests whose session identity is not the user named
// by the :userId path segment. Nothing about the addressed resource is read
// before this check passes.
func OwnerRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, _ := CurrentIdentity(c)
		if err := services.Authorize(id, c.Params("userId")); err != nil {
			if negotiate.JSON(c) {
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
					"error": "Unauthorized",
				})
			}
			return c.Status(fiber.StatusForbidden).SendString("Unauthorized")
		}
		return c.Next()
	}
}
