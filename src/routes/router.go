package routes

import (
	"github.com/gofiber/fiber/v2"
)

func InitRoutes(app *fiber.App) {
	authRoutes(app)
	formRoutes(app)
	responseRoutes(app)
	uploadRoutes(app)

	// health check
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("API is running...")
	})
}
