package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/taller-pro/internal/application/dto"
	"github.com/tu-usuario/taller-pro/internal/application/identidad"
)

// UsuarioHandler comandos sobre cuentas de acceso.
type UsuarioHandler struct {
	gestor *identidad.GestorTrabajadores
}

// NewUsuarioHandler construye el handler.
func NewUsuarioHandler(gestor *identidad.GestorTrabajadores) *UsuarioHandler {
	return &UsuarioHandler{gestor: gestor}
}

// ResetCredenciales godoc
// @Summary      Resetear credenciales de una cuenta
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "id del usuario"
// @Param        body  body  dto.ResetCredencialesRequest  true  "opciones de reset"
// @Success      200   {object}  dto.ResetCredencialesResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/usuarios/{id}/reset-credenciales [post]
func (h *UsuarioHandler) ResetCredenciales(c *fiber.Ctx) error {
	var in dto.ResetCredencialesRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.gestor.ResetCredenciales(c.Context(), c.Params("id"), in, GetUserID(c))
	if err != nil {
		return respuestaError(c, err)
	}
	return c.JSON(out)
}
