package routes

import (
	"Backend-FormCraft/src/controllers"
	"Backend-FormCraft/src/middleware"

	"github.com/gofiber/fiber/v2"
)

func responseRoutes(app *fiber.App) {
	app.Post("/forms/:id/responses", middleware.OptionalAuthJWT, controllers.SubmitResponse)
	app.Get("/forms/:id/responses", middleware.AuthJWT, controllers.GetFormResponses)

	responses := app.Group("/responses")
	responses.Get("/:id", middleware.AuthJWT, controllers.GetResponseByID)
	responses.Delete("/:id", middleware.AuthJWT, controllers.DeleteResponse)
}
