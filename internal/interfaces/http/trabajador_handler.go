package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/taller-pro/internal/application/dto"
	"github.com/tu-usuario/taller-pro/internal/application/identidad"
)

// TrabajadorHandler comandos del ciclo de vida de trabajadores.
type TrabajadorHandler struct {
	gestor *identidad.GestorTrabajadores
	coord  *identidad.CoordinadorEstados
}

// NewTrabajadorHandler construye el handler.
func NewTrabajadorHandler(gestor *identidad.GestorTrabajadores, coord *identidad.CoordinadorEstados) *TrabajadorHandler {
	return &TrabajadorHandler{gestor: gestor, coord: coord}
}

// Create godoc
// @Summary      Crear trabajador (con cuenta opcional)
// @Tags         trabajadores
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CrearTrabajadorRequest  true  "datos del trabajador"
// @Success      201   {object}  dto.TrabajadorConCredenciales
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/trabajadores [post]
func (h *TrabajadorHandler) Create(c *fiber.Ctx) error {
	var in dto.CrearTrabajadorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.gestor.CrearTrabajador(c.Context(), in, GetUserID(c))
	if err != nil {
		return respuestaError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar trabajador (parcial)
// @Tags         trabajadores
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "id del trabajador"
// @Param        body  body  dto.ActualizarTrabajadorRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.TrabajadorConCredenciales
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/trabajadores/{id} [put]
func (h *TrabajadorHandler) Update(c *fiber.Ctx) error {
	var in dto.ActualizarTrabajadorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.gestor.ActualizarTrabajador(c.Context(), c.Params("id"), in, GetUserID(c))
	if err != nil {
		return respuestaError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar trabajadores
// @Tags         trabajadores
// @Produce      json
// @Success      200  {array}  dto.TrabajadorResponse
// @Router       /api/trabajadores [get]
func (h *TrabajadorHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	page.DefaultPage()
	out, err := h.gestor.Listar(page.Limit, page.Offset)
	if err != nil {
		return respuestaError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener trabajador por id
// @Tags         trabajadores
// @Produce      json
// @Param        id  path  string  true  "id del trabajador"
// @Success      200  {object}  dto.TrabajadorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/trabajadores/{id} [get]
func (h *TrabajadorHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.gestor.Obtener(c.Params("id"))
	if err != nil {
		return respuestaError(c, err)
	}
	return c.JSON(out)
}

// CambiarEstado godoc
// @Summary      Habilitar o deshabilitar un trabajador
// @Tags         trabajadores
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "id del trabajador"
// @Param        body  body  dto.CambiarEstadoRequest  true  "activo deseado y motivo"
// @Success      200   {object}  dto.TrabajadorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/trabajadores/{id}/estado [patch]
func (h *TrabajadorHandler) CambiarEstado(c *fiber.Ctx) error {
	var in dto.CambiarEstadoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if _, err := h.coord.CambiarEstado(c.Context(), c.Params("id"), in.Activo, in.Motivo, GetUserID(c)); err != nil {
		return respuestaError(c, err)
	}
	out, err := h.gestor.Obtener(c.Params("id"))
	if err != nil {
		return respuestaError(c, err)
	}
	return c.JSON(out)
}

// Eliminar godoc
// @Summary      Baja lógica de un trabajador
// @Tags         trabajadores
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "id del trabajador"
// @Param        body  body  dto.EliminarRequest  false  "motivo"
// @Success      200   {object}  dto.TrabajadorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/trabajadores/{id} [delete]
func (h *TrabajadorHandler) Eliminar(c *fiber.Ctx) error {
	var in dto.EliminarRequest
	// El body es opcional en DELETE.
	_ = c.BodyParser(&in)
	if _, err := h.coord.MarcarEliminado(c.Context(), c.Params("id"), in.Motivo, GetUserID(c)); err != nil {
		return respuestaError(c, err)
	}
	out, err := h.gestor.Obtener(c.Params("id"))
	if err != nil {
		return respuestaError(c, err)
	}
	return c.JSON(out)
}

// Restaurar godoc
// @Summary      Restaurar un trabajador eliminado
// @Tags         trabajadores
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "id del trabajador"
// @Param        body  body  dto.RestaurarRequest  false  "activo deseado"
// @Success      200   {object}  dto.TrabajadorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/trabajadores/{id}/restaurar [post]
func (h *TrabajadorHandler) Restaurar(c *fiber.Ctx) error {
	var in dto.RestaurarRequest
	_ = c.BodyParser(&in)
	if _, err := h.coord.Restaurar(c.Context(), c.Params("id"), in.Activo, GetUserID(c)); err != nil {
		return respuestaError(c, err)
	}
	out, err := h.gestor.Obtener(c.Params("id"))
	if err != nil {
		return respuestaError(c, err)
	}
	return c.JSON(out)
}

// EnviarCredenciales godoc
// @Summary      Reenviar credenciales por correo (emite password temporal nuevo)
// @Tags         trabajadores
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "id del trabajador"
// @Param        body  body  dto.EnviarCredencialesRequest  false  "mensaje extra"
// @Success      200   {object}  dto.CredencialesEntrega
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/trabajadores/{id}/enviar-credenciales [post]
func (h *TrabajadorHandler) EnviarCredenciales(c *fiber.Ctx) error {
	var in dto.EnviarCredencialesRequest
	_ = c.BodyParser(&in)
	out, err := h.gestor.EnviarCredenciales(c.Context(), c.Params("id"), in.MensajeExtra, GetUserID(c))
	if err != nil {
		return respuestaError(c, err)
	}
	return c.JSON(out)
}
