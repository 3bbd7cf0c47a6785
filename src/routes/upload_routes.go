package routes

import (
	"Backend-FormCraft/src/controllers"
	"Backend-FormCraft/src/middleware"

	"github.com/gofiber/fiber/v2"
)

func uploadRoutes(app *fiber.App) {
	uploads := app.Group("/uploads")

	uploads.Post("/", middleware.OptionalAuthJWT, controllers.RegisterUpload)
	uploads.Get("/:token", controllers.GetUpload)
}
