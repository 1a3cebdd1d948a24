package middleware

import (
	"slices"

	"github.com/gofiber/fiber/v2"
)

// Role admits callers whose token role is one of allowed. Must run after Auth.
func Role(allowed ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := CallerRole(c)
		if role == "" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Acceso denegado: rol inválido"})
		}
		if !slices.Contains(allowed, role) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Acceso denegado: permisos insuficientes"})
		}
		return c.Next()
	}
}
