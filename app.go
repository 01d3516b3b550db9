package main

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"log"
	"time"

	"perfumery/internal/config"
	"perfumery/internal/handlers"
	"perfumery/internal/middleware"
	"perfumery/internal/negotiate"
	"perfumery/internal/repositories"
	"perfumery/internal/services"
	"perfumery/internal/session"
	"perfumery/internal/views"
	"perfumery/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// NewApp wires the database, services, sessions and routes described by cfg.
// The returned close function releases the database and broker connections.
func NewApp(cfg config.Config) (*fiber.App, func() error, error) {
	// --- Database ---
	db, err := repositories.Open(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	closers := []func() error{sqlDB.Close}

	// --- Domain events (optional) ---
	var events services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Printf("Warning: domain events disabled: %v", err)
		} else {
			events = mqClient
			closers = append(closers, mqClient.Close)
		}
	}
	closeAll := func() error {
		var firstErr error
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		return firstErr
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	brandRepo := repositories.NewGORMBrandRepository(db)
	reviewRepo := repositories.NewGORMReviewRepository(db)
	sessionStorage := repositories.NewGORMSessionStorage(db)

	// --- Services ---
	authService := services.NewAuthService(userRepo)
	brandService := services.NewBrandService(brandRepo, reviewRepo, events)
	reviewService := services.NewReviewService(reviewRepo, brandRepo, events)
	sessions := session.NewManager(sessionStorage, session.Config{
		Expiration:   cfg.SessionTTL,
		CookieSecure: cfg.CookieSecure,
	})

	// --- Views ---
	engine := views.New()
	if err := engine.Load(); err != nil {
		_ = closeAll()
		return nil, nil, err
	}

	app := fiber.New(fiber.Config{
		Views:        engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	})

	// --- Middleware ---
	// MethodOverride restarts routing, so it has to run first.
	app.Use(middleware.MethodOverride())
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(encryptcookie.New(encryptcookie.Config{Key: cookieKey(cfg.SessionSecret)}))
	app.Use(negotiate.New())
	app.Use(middleware.LoadIdentity(sessions, authService))

	// --- Routes ---
	handlers.NewPublicHandler(brandService, reviewService).RegisterRoutes(app)
	handlers.NewAuthHandler(authService, sessions).RegisterRoutes(app)
	guards := []fiber.Handler{middleware.SignedIn(), middleware.OwnerRequired()}
	handlers.NewBrandHandler(brandService).RegisterRoutes(app, guards...)
	handlers.NewReviewHandler(reviewService).RegisterRoutes(app, guards...)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
			"events": events != nil,
		})
	})

	return app, closeAll, nil
}

// cookieKey derives the 32-byte cookie encryption key from the session secret.
func cookieKey(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return base64.StdEncoding.EncodeToString(sum[:])
}
