package api

import (
	"strings"

	"github.com/example/task-manager-api/modules/auth"
	"github.com/gofiber/fiber/v2"
)

// UserIDKey is the fiber Locals key holding the authenticated user id.
const UserIDKey = "userID"

// AuthMiddleware resolves the session token to a user id. Both
// "Bearer <token>" and a bare token are accepted.
func AuthMiddleware(authPort auth.AuthPort) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractToken(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			return forbidden(c, msgNoToken)
		}

		userID, err := authPort.VerifyToken(c.UserContext(), token)
		if err != nil || userID == "" {
			return forbidden(c, msgTokenRejected)
		}

		c.Locals(UserIDKey, userID)
		return c.Next()
	}
}

func extractToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > len("Bearer ") && strings.EqualFold(header[:len("Bearer ")], "Bearer ") {
		return strings.TrimSpace(header[len("Bearer "):])
	}
	return header
}

// currentUserID returns the id stored by AuthMiddleware.
func currentUserID(c *fiber.Ctx) string {
	userID, _ := c.Locals(UserIDKey).(string)
	return userID
}
