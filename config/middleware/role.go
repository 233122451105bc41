package middleware

import (
	"github.com/gofiber/fiber/v2"

	"attendance-tracker/models"
)

func requireRole(role, denied string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals("user").(*models.Claims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authorized"})
		}
		if claims.Role != role {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": denied})
		}
		return c.Next()
	}
}

func ManagerOnly() fiber.Handler {
	return requireRole(models.RoleManager, "Access denied. Manager role required.")
}

func EmployeeOnly() fiber.Handler {
	return requireRole(models.RoleEmployee, "Access denied. Employee role required.")
}
