package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/MithilaShegaji/ExamIDE-Coding-Platform-for-Placement-Tests/internal/utils"
)

// RequireRole blocks callers whose role, as bound by the JWT middleware, is
// not in the allowed set. Authoring routes require "admin".
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("user_role").(string)
		role = strings.ToLower(strings.TrimSpace(role))

		for _, allowed := range roles {
			if role != "" && role == strings.ToLower(strings.TrimSpace(allowed)) {
				return c.Next()
			}
		}

		return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
	}
}
