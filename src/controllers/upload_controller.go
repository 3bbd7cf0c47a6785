package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"Backend-FormCraft/src/models"
	"Backend-FormCraft/src/services/uploads"
	"Backend-FormCraft/src/utils"
)

// RegisterUpload handles POST /uploads. The caller registers file metadata
// and gets back an opaque token to reference in file-type answers.
func RegisterUpload(c *fiber.Ctx) error {
	var req struct {
		Filename     string `json:"filename"`
		OriginalName string `json:"originalName"`
		MimeType     string `json:"mimeType"`
		Size         int64  `json:"size"`
		URL          string `json:"url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if req.Filename == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "filename is required"})
	}

	upload := &models.Upload{
		Filename:     req.Filename,
		OriginalName: req.OriginalName,
		MimeType:     req.MimeType,
		Size:         req.Size,
		URL:          req.URL,
		UploadedBy:   currentUserID(c),
	}

	result, err := uploads.RegisterUpload(c.Context(), upload)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// GetUpload handles GET /uploads/:token
func GetUpload(c *fiber.Ctx) error {
	token := c.Params("token")
	if token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid upload token"})
	}

	upload, err := uploads.GetByToken(c.Context(), token)
	if err != nil {
		if errors.Is(err, uploads.ErrTokenNotFound) {
			return utils.HandleError(c, fiber.StatusNotFound, "Upload not found")
		}
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(upload)
}
