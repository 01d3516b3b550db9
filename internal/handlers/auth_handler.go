package handlers

import (
	"errors"
	"log"

	"perfumery/internal/middleware"
	"perfumery/internal/negotiate"
	"perfumery/internal/services"
	"perfumery/internal/session"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	sessions    *session.Manager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Get("/sign-up", h.HandleSignUpForm)
	authRoutes.Post("/sign-up", h.HandleSignUp)
	authRoutes.Get("/sign-in", h.HandleSignInForm)
	authRoutes.Post("/sign-in", h.HandleSignIn)
	authRoutes.Get("/sign-out", h.HandleSignOut)
	authRoutes.Get("/me", h.HandleMe)
}

// HandleSignUpForm renders the sign-up form.
func (h *AuthHandler) HandleSignUpForm(c *fiber.Ctx) error {
	if negotiate.JSON(c) {
		return c.JSON(fiber.Map{
			"message": "POST /auth/sign-up with { username, password, confirmPassword } to sign up.",
		})
	}
	return render(c, "auth/sign-up", fiber.Map{"title": "Sign Up"})
}

// HandleSignUp registers a user and signs them in. Rejected sign-ups answer
// with a plain message and status 200 for every client.
func (h *AuthHandler) HandleSignUp(c *fiber.Ctx) error {
	var in services.SignUpInput
	if err := parseBody(c, &in); err != nil {
		return err
	}

	identity, err := h.authService.SignUp(c.UserContext(), in)
	if err != nil {
		var verr *services.ValidationError
		switch {
		case errors.Is(err, services.ErrDuplicateUsername):
			return c.SendString(services.MsgInvalidCredentials)
		case errors.Is(err, services.ErrPasswordMismatch):
			return c.SendString(services.MsgPasswordMismatch)
		case errors.As(err, &verr):
			return c.SendString(verr.Message)
		}
		log.Printf("Error signing up user %s: %v", in.Username, err)
		return message(c, fiber.StatusInternalServerError, "Error signing up")
	}

	if err := h.sessions.Establish(c, identity); err != nil {
		log.Printf("Error creating session for user %s: %v", identity.Username, err)
		return message(c, fiber.StatusInternalServerError, "Error signing up")
	}

	if negotiate.JSON(c) {
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": identity})
	}
	return c.Redirect("/")
}

// HandleSignInForm renders the sign-in form, or tells JSON clients how to
// sign in.
func (h *AuthHandler) HandleSignInForm(c *fiber.Ctx) error {
	if negotiate.JSON(c) {
		return c.JSON(fiber.Map{
			"message": "POST /auth/sign-in with { username, password } to sign in.",
		})
	}
	return render(c, "auth/sign-in", fiber.Map{"title": "Sign In"})
}

// HandleSignIn verifies credentials and signs the user in.
func (h *AuthHandler) HandleSignIn(c *fiber.Ctx) error {
	var in services.SignInInput
	if err := parseBody(c, &in); err != nil {
		return err
	}

	identity, err := h.authService.SignIn(c.UserContext(), in)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			if negotiate.JSON(c) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": services.MsgInvalidCredentials,
				})
			}
			return c.SendString(services.MsgInvalidCredentials)
		}
		log.Printf("Error during sign-in for user %s: %v", in.Username, err)
		return message(c, fiber.StatusInternalServerError, "Error signing in")
	}

	if err := h.sessions.Establish(c, identity); err != nil {
		log.Printf("Error creating session for user %s: %v", identity.Username, err)
		return message(c, fiber.StatusInternalServerError, "Error signing in")
	}

	if negotiate.JSON(c) {
		return c.JSON(fiber.Map{"user": identity})
	}
	return c.Redirect("/")
}

// HandleSignOut destroys the current session, if any.
func (h *AuthHandler) HandleSignOut(c *fiber.Ctx) error {
	if err := h.sessions.Destroy(c); err != nil {
		log.Printf("Error destroying session: %v", err)
		return message(c, fiber.StatusInternalServerError, "Error signing out")
	}
	if negotiate.JSON(c) {
		return c.JSON(fiber.Map{"ok": true})
	}
	return c.Redirect("/")
}

// HandleMe reports the signed-in identity as JSON.
func (h *AuthHandler) HandleMe(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"user": nil})
	}
	return c.JSON(fiber.Map{"user": identity})
}
