package controllers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Backend-FormCraft/src/models"
	"Backend-FormCraft/src/services/forms"
)

// CreateForm handles POST /forms
func CreateForm(c *fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authentication required"})
	}

	var req forms.CreateFormRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input: " + err.Error()})
	}

	form, err := forms.CreateForm(c.Context(), userID, &req)
	if err != nil {
		return formError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(form)
}

// GetForms handles GET /forms
func GetForms(c *fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authentication required"})
	}

	result, err := forms.GetForms(c.Context(), userID, paginationFromQuery(c), c.Query("status"))
	if err != nil {
		return formError(c, err)
	}
	return c.JSON(result)
}

// GetFormByID handles GET /forms/:id. Public forms are readable by anyone;
// private forms only by the creator and collaborators.
func GetFormByID(c *fiber.Ctx) error {
	formID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid form ID"})
	}

	form, err := forms.GetFormByID(c.Context(), formID)
	if err != nil {
		return formError(c, err)
	}

	if !form.Settings.IsPublic {
		userID := currentUserID(c)
		if userID == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authentication required"})
		}
		if form.Creator != *userID && !form.HasCollaborator(*userID) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Access denied"})
		}
	}

	return c.JSON(form)
}

// UpdateForm handles PUT /forms/:id
func UpdateForm(c *fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authentication required"})
	}
	formID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid form ID"})
	}

	var req forms.CreateFormRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input: " + err.Error()})
	}

	form, err := forms.UpdateForm(c.Context(), formID, userID, &req)
	if err != nil {
		return formError(c, err)
	}
	return c.JSON(form)
}

// DeleteForm handles DELETE /forms/:id
func DeleteForm(c *fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authentication required"})
	}
	formID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid form ID"})
	}

	if err := forms.DeleteForm(c.Context(), formID, userID); err != nil {
		return formError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Form deleted successfully"})
}

// UpdateFormStatus handles PATCH /forms/:id/status
func UpdateFormStatus(c *fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authentication required"})
	}
	formID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid form ID"})
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	form, err := forms.UpdateStatus(c.Context(), formID, userID, req.Status)
	if err != nil {
		return formError(c, err)
	}
	return c.JSON(form)
}

// DuplicateForm handles POST /forms/:id/duplicate
func DuplicateForm(c *fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authentication required"})
	}
	formID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid form ID"})
	}

	form, err := forms.DuplicateForm(c.Context(), formID, userID)
	if err != nil {
		return formError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(form)
}

// AddCollaborator handles POST /forms/:id/collaborators
func AddCollaborator(c *fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authentication required"})
	}
	formID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid form ID"})
	}

	var req struct {
		UserID string `json:"userId"`
		Role   string `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	collabID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID"})
	}
	if req.Role == "" {
		req.Role = models.RoleViewer
	}

	form, err := forms.AddCollaborator(c.Context(), formID, userID, collabID, req.Role)
	if err != nil {
		return formError(c, err)
	}
	return c.JSON(form)
}

// UpdateCollaboratorRole handles PUT /forms/:id/collaborators/:userId
func UpdateCollaboratorRole(c *fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authentication required"})
	}
	formID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid form ID"})
	}
	collabID, err := primitive.ObjectIDFromHex(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	var req struct {
		Role string `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	form, err := forms.UpdateCollaboratorRole(c.Context(), formID, userID, collabID, req.Role)
	if err != nil {
		return formError(c, err)
	}
	return c.JSON(form)
}

// RemoveCollaborator handles DELETE /forms/:id/collaborators/:userId
func RemoveCollaborator(c *fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authentication required"})
	}
	formID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid form ID"})
	}
	collabID, err := primitive.ObjectIDFromHex(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	form, err := forms.RemoveCollaborator(c.Context(), formID, userID, collabID)
	if err != nil {
		return formError(c, err)
	}
	return c.JSON(form)
}

// formError maps forms service errors to HTTP statuses.
func formError(c *fiber.Ctx, err error) error {
	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err, forms.ErrFormNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Form not found"})
	case errors.Is(err, forms.ErrAccessDenied):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Access denied"})
	case errors.Is(err, forms.ErrCollaboratorExists):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, forms.ErrCollaboratorNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &verrs):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": verrs.Error()})
	}

	// field-definition problems are client errors with descriptive messages
	if msg := err.Error(); msg != "" && isSchemaError(msg) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}

func isSchemaError(msg string) bool {
	for _, prefix := range []string{"unknown field type", "duplicate field name", "options are required", "invalid pattern", "invalid status", "invalid role"} {
		if len(msg) >= len(prefix) && msg[:len(prefix)] == prefix {
			return true
		}
	}
	return false
}
