package api

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// NewApp builds the Fiber application with the standard middleware
// chain and all API routes mounted. rl may be nil to disable rate
// limiting (tests use this).
func NewApp(h *Handler, rl *RateLimiter) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "travelmate",
		ServerHeader: "travelmate",
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())
	if rl != nil {
		app.Use(rl.Handler())
	}

	h.Register(app)
	return app
}
