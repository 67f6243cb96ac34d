package middleware

import (
	"fmt"
	"log"
	"strings"

	"udaanhub/internal/models"
	"udaanhub/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UserContextKey is the Locals key the authenticated user is stored under.
const UserContextKey = "user"

// AuthRequired is a Fiber middleware that verifies the Bearer token and
// attaches the resolved user (password hash excluded) to the request.
// A missing or malformed Authorization header and a token that fails
// verification are distinct 401 branches.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var tokenString string
		authHeader := c.Get("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Not authorized, no token",
			})
		}

		userID, err := authService.VerifyToken(tokenString)
		if err != nil {
			log.Printf("Token verification failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Not authorized, token failed",
			})
		}

		user, err := authService.GetUserByID(userID)
		if err != nil {
			log.Printf("Token user lookup failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Not authorized, token failed",
			})
		}

		c.Locals(UserContextKey, user)
		return c.Next()
	}
}

// RoleRequired gates a route to the given roles. It expects AuthRequired to
// have run first; without an attached user it responds 401, and with a user
// of the wrong role it responds 403 naming both the required and the actual
// role.
func RoleRequired(roles ...string) fiber.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *fiber.Ctx) error {
		user, ok := c.Locals(UserContextKey).(*models.User)
		if !ok || user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Not authenticated",
			})
		}

		if !allowed[user.Role] {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": fmt.Sprintf("Access denied. Required role: %s. Your role: %s",
					strings.Join(roles, " or "), user.Role),
			})
		}

		return c.Next()
	}
}

// CurrentUser returns the authenticated user attached by AuthRequired.
func CurrentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(UserContextKey).(*models.User)
	return user, ok && user != nil
}
