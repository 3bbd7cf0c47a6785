package controllers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Backend-FormCraft/src/services/analytics"
	"Backend-FormCraft/src/services/forms"
)

// GetFormAnalytics handles GET /forms/:id/analytics
func GetFormAnalytics(c *fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authentication required"})
	}
	formID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid form ID"})
	}

	form, err := forms.GetFormByID(c.Context(), formID)
	if err != nil {
		return formError(c, err)
	}
	if !forms.CanViewResponses(form, userID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Access denied"})
	}

	result, err := analytics.GetFormAnalytics(c.Context(), formID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(result)
}
