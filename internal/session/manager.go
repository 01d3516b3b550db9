// Package session keeps the signed-in identity in a server-side session
// referenced by an opaque cookie.
package session

import (
	"fmt"
	"time"

	"perfumery/internal/models"

	"github.com/gofiber/fiber/v2"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"
)

// CookieName is the cookie that carries the session id.
const CookieName = "perfumery_session"

const (
	keyUserID   = "user_id"
	keyUsername = "username"
)

// Config controls session lifetime and cookie attributes.
type Config struct {
	Expiration   time.Duration
	CookieSecure bool
}

// Manager creates, resolves and destroys sessions.
type Manager struct {
	store *fibersession.Store
}

// NewManager creates a Manager persisting sessions in storage.
func NewManager(storage fiber.Storage, cfg Config) *Manager {
	return &Manager{
		store: fibersession.New(fibersession.Config{
			Storage:        storage,
			Expiration:     cfg.Expiration,
			KeyLookup:      "cookie:" + CookieName,
			CookiePath:     "/",
			CookieHTTPOnly: true,
			CookieSecure:   cfg.CookieSecure,
			CookieSameSite: fiber.CookieSameSiteLaxMode,
		}),
	}
}

// Establish starts a new session holding id. The session id is rotated and
// the payload is written to storage before Establish returns, so the
// response can announce a session the client is able to present.
func (m *Manager) Establish(c *fiber.Ctx, id models.Identity) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if err := sess.Regenerate(); err != nil {
		return fmt.Errorf("failed to rotate session id: %w", err)
	}
	sess.Set(keyUserID, id.UserID)
	sess.Set(keyUsername, id.Username)
	if err := sess.Save(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Identity returns the identity held by the request's session. The boolean
// is false when there is no signed-in session.
func (m *Manager) Identity(c *fiber.Ctx) (models.Identity, bool, error) {
	sess, err := m.store.Get(c)
	if err != nil {
		return models.Identity{}, false, fmt.Errorf("failed to load session: %w", err)
	}
	userID, _ := sess.Get(keyUserID).(string)
	username, _ := sess.Get(keyUsername).(string)
	if userID == "" {
		return models.Identity{}, false, nil
	}
	return models.Identity{Username: username, UserID: userID}, true, nil
}

// Destroy ends the request's session. It succeeds when there is none.
func (m *Manager) Destroy(c *fiber.Ctx) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if err := sess.Destroy(); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}
