package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Auth validates the bearer token issued by the web login and stores its
// claims in c.Locals. Extra parser options are appended to the HS256 check.
func Auth(secret []byte, opts ...jwt.ParserOption) fiber.Handler {
	opts = append([]jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}, opts...)
	return func(c *fiber.Ctx) error {
		// 1. Token from the Authorization header
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token no encontrado"})
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		// 2. Parse and validate
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.ErrUnauthorized
			}
			return secret, nil
		}, opts...)
		if err != nil || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token inválido o expirado"})
		}

		// 3. Claims into the request context
		claims := token.Claims.(jwt.MapClaims)
		orgID, ok := claims["organization_id"].(float64)
		if !ok || orgID <= 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token sin municipalidad"})
		}
		c.Locals("user_id", claims["user_id"])
		c.Locals("organization_id", orgID)
		c.Locals("role", claims["role"])
		c.Locals("email", claims["email"])

		return c.Next()
	}
}

// OrganizationID returns the organization of the authenticated caller, or 0.
func OrganizationID(c *fiber.Ctx) uint {
	if id, ok := c.Locals("organization_id").(float64); ok && id > 0 {
		return uint(id)
	}
	return 0
}

// UserID returns the authenticated web user, or 0.
func UserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals("user_id").(float64); ok && id > 0 {
		return uint(id)
	}
	return 0
}

// CallerRole returns the role claim of the authenticated caller, or "".
func CallerRole(c *fiber.Ctx) string {
	role, _ := c.Locals("role").(string)
	return role
}
