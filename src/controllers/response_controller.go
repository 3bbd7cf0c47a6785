package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Backend-FormCraft/src/models"
	"Backend-FormCraft/src/services/forms"
	"Backend-FormCraft/src/services/responses"
)

type submitRequest struct {
	Values           map[string]any `json:"values"`
	SubmittedByEmail string         `json:"submittedByEmail,omitempty"`
	DurationSeconds  int            `json:"durationSeconds,omitempty"`
}

// SubmitResponse handles POST /forms/:id/responses. Anonymous callers are
// allowed when the form settings permit it.
func SubmitResponse(c *fiber.Ctx) error {
	formID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid form ID"})
	}

	var req submitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input: " + err.Error()})
	}
	if req.Values == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "values is required"})
	}

	identity := models.SubmitterIdentity{UserID: currentUserID(c), Email: req.SubmittedByEmail}
	if email, ok := c.Locals("email").(string); ok && email != "" {
		identity.Email = email
	}

	meta := models.SubmissionMeta{
		IPAddress:       c.IP(),
		UserAgent:       c.Get("User-Agent"),
		DurationSeconds: req.DurationSeconds,
	}

	result, gateErr, fieldErrs := responses.Submit(c.Context(), formID, identity, req.Values, meta)
	if gateErr != nil {
		return gateErrorJSON(c, gateErr)
	}
	if len(fieldErrs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":       "validation_failed",
			"fieldErrors": fieldErrs,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Response submitted successfully",
		"responseId": result.ResponseID,
	})
}

// GetFormResponses handles GET /forms/:id/responses
func GetFormResponses(c *fiber.Ctx) error {
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

	result, err := responses.GetResponsesByForm(c.Context(), formID, paginationFromQuery(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(result)
}

// GetResponseByID handles GET /responses/:id
func GetResponseByID(c *fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authentication required"})
	}
	responseID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid response ID"})
	}

	response, err := responses.GetResponseByID(c.Context(), responseID)
	if err != nil {
		return responseError(c, err)
	}
	form, err := forms.GetFormByID(c.Context(), response.FormID)
	if err != nil {
		return formError(c, err)
	}
	if !forms.CanViewResponses(form, userID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Access denied"})
	}
	return c.JSON(response)
}

// DeleteResponse handles DELETE /responses/:id
func DeleteResponse(c *fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authentication required"})
	}
	responseID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid response ID"})
	}

	response, err := responses.GetResponseByID(c.Context(), responseID)
	if err != nil {
		return responseError(c, err)
	}
	form, err := forms.GetFormByID(c.Context(), response.FormID)
	if err != nil {
		return formError(c, err)
	}
	// only the form creator may destroy stored responses
	if form.Creator != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Access denied"})
	}

	if err := responses.DeleteResponse(c.Context(), responseID); err != nil {
		return responseError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Response deleted successfully"})
}

func responseError(c *fiber.Ctx, err error) error {
	if errors.Is(err, responses.ErrResponseNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Response not found"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}

func gateErrorJSON(c *fiber.Ctx, gateErr *forms.GateError) error {
	status := fiber.StatusBadRequest
	switch gateErr.Code {
	case forms.ErrFormNotFound.Code:
		status = fiber.StatusNotFound
	case forms.ErrAuthRequired.Code:
		status = fiber.StatusUnauthorized
	case forms.ErrStorageUnavailable.Code:
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(fiber.Map{
		"error":   gateErr.Code,
		"message": gateErr.Message,
	})
}
