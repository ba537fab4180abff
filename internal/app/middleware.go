package app

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/xid"

	u "invoice-generator/internal/utils"
)

// RegisterMiddleware attaches global middleware to the app
func RegisterMiddleware(app *fiber.App, log *u.Logger) {
	app.Use(recover.New())

	app.Use(cors.New())

	app.Use(requestid.New(requestid.Config{
		Generator: func() string {
			return xid.New().String()
		},
	}))

	app.Use(healthcheck.New())

	app.Use(func(c *fiber.Ctx) error {
		log.Info("Incoming request", "method", c.Method(), "path", c.Path(), "request_id", requestID(c))
		return c.Next()
	})
}
