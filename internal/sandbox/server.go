package sandbox

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/productbazar/bazaaradmin/pkg/logger"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

// NewApp wires the sandbox routes: the current-user endpoint and the admin
// role endpoints under /api/v1.
func NewApp(db *gorm.DB, tokens *Tokens) *fiber.App {
	authHandler := NewAuthHandler(db)
	adminHandler := NewAdminHandler(db)
	authMiddleware := NewAuthMiddleware(db, tokens)

	app := fiber.New(fiber.Config{
		AppName:               "bazaaradmin-sandbox",
		DisableStartupMessage: true,
	})
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(CORS())
	app.Use(RequestLogger())
	app.Use(SecurityLogger())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")
	v1.Get("/auth/me", authMiddleware.RequireAuth, authHandler.Me)

	adminRoutes := v1.Group("/admin", authMiddleware.RequireAuth, AdminOnly)
	adminRoutes.Get("/users/all", adminHandler.ListAll)
	adminRoutes.Put("/users/:id/role", adminHandler.UpdateRole)
	adminRoutes.Put("/users/:id/secondary-roles", adminHandler.UpdateSecondaryRoles)

	return app
}

// Serve runs app on ln until ctx is cancelled, then shuts it down.
func Serve(ctx context.Context, app *fiber.App, ln net.Listener) error {
	logger.Info("server_starting", map[string]interface{}{
		"address": ln.Addr().String(),
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listener(ln)
	}()

	select {
	case <-ctx.Done():
		logger.Info("server_stopping", map[string]interface{}{"reason": ctx.Err().Error()})
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		return err
	}
}
