package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/taller-pro/internal/application/dto"
	pkgjwt "github.com/tu-usuario/taller-pro/pkg/jwt"
)

// Claves de locals cargadas por AuthMiddleware.
const (
	localUserID = "user_id"
	localRol    = "rol"
)

// AuthMiddleware valida el Bearer token y carga user_id y rol en locals.
// El user_id autenticado es el actor de auditoría de todos los comandos.
func AuthMiddleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "falta el header Authorization"})
		}
		token := strings.TrimPrefix(header, "Bearer ")
		if token == header {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato esperado: Bearer <token>"})
		}

		userID, rol, err := pkgjwt.Parse(secret, token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}

		c.Locals(localUserID, userID)
		c.Locals(localRol, rol)
		return c.Next()
	}
}

// RequireRol autoriza solo a los roles indicados. Debe ir después de AuthMiddleware.
func RequireRol(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rol := GetRol(c)
		if rol == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no incluye rol"})
		}
		for _, permitido := range roles {
			if rol == permitido {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin acceso a este recurso"})
	}
}

// GetUserID devuelve el id del usuario autenticado (actor de auditoría).
func GetUserID(c *fiber.Ctx) string {
	if v, ok := c.Locals(localUserID).(string); ok {
		return v
	}
	return ""
}

// GetRol devuelve el rol del usuario autenticado.
func GetRol(c *fiber.Ctx) string {
	if v, ok := c.Locals(localRol).(string); ok {
		return v
	}
	return ""
}
