package middleware

import (
	"Backend-FormCraft/src/utils"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// AuthJWT requires a valid bearer token and puts the caller's identity into
// the request locals.
func AuthJWT(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing or invalid Authorization header"})
	}

	tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

	if blacklisted, _ := utils.IsTokenBlacklisted(tokenStr); blacklisted {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token has been revoked"})
	}

	claims, err := utils.ParseJWT(tokenStr)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
	}

	c.Locals("userId", claims.UserID)
	c.Locals("email", claims.Email)

	return c.Next()
}

// OptionalAuthJWT resolves the identity when a valid token is present but
// lets the request continue anonymously otherwise. Used on submission
// endpoints where forms may allow anonymous responses.
func OptionalAuthJWT(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return c.Next()
	}

	tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
	if blacklisted, _ := utils.IsTokenBlacklisted(tokenStr); blacklisted {
		return c.Next()
	}

	claims, err := utils.ParseJWT(tokenStr)
	if err != nil {
		// invalid token, continue as anonymous
		return c.Next()
	}

	c.Locals("userId", claims.UserID)
	c.Locals("email", claims.Email)

	return c.Next()
}
