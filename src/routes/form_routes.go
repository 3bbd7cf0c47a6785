package routes

import (
	"Backend-FormCraft/src/controllers"
	"Backend-FormCraft/src/middleware"

	"github.com/gofiber/fiber/v2"
)

func formRoutes(app *fiber.App) {
	forms := app.Group("/forms")

	// reading a single form is open so public forms can be rendered; the
	// controller enforces access on private ones
	forms.Get("/:id", middleware.OptionalAuthJWT, controllers.GetFormByID)

	forms.Post("/", middleware.AuthJWT, controllers.CreateForm)
	forms.Get("/", middleware.AuthJWT, controllers.GetForms)
	forms.Put("/:id", middleware.AuthJWT, controllers.UpdateForm)
	forms.Delete("/:id", middleware.AuthJWT, controllers.DeleteForm)
	forms.Patch("/:id/status", middleware.AuthJWT, controllers.UpdateFormStatus)
	forms.Post("/:id/duplicate", middleware.AuthJWT, controllers.DuplicateForm)

	forms.Post("/:id/collaborators", middleware.AuthJWT, controllers.AddCollaborator)
	forms.Put("/:id/collaborators/:userId", middleware.AuthJWT, controllers.UpdateCollaboratorRole)
	forms.Delete("/:id/collaborators/:userId", middleware.AuthJWT, controllers.RemoveCollaborator)

	forms.Get("/:id/analytics", middleware.AuthJWT, controllers.GetFormAnalytics)
}
