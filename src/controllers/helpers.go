package controllers

import (
	"strconv"

	"Backend-FormCraft/src/models"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// currentUserID reads the authenticated user id set by the auth middleware.
// Returns nil for anonymous requests.
func currentUserID(c *fiber.Ctx) *primitive.ObjectID {
	raw, ok := c.Locals("userId").(string)
	if !ok || raw == "" {
		return nil
	}
	oid, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return nil
	}
	return &oid
}

func requireUserID(c *fiber.Ctx) (primitive.ObjectID, bool) {
	oid := currentUserID(c)
	if oid == nil {
		return primitive.NilObjectID, false
	}
	return *oid, true
}

func paginationFromQuery(c *fiber.Ctx) models.PaginationParams {
	params := models.DefaultPagination()
	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
		params.Page = page
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 {
		params.Limit = limit
	}
	params.Search = c.Query("search")
	return params
}
