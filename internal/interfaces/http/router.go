package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/taller-pro/internal/application/auth"
	"github.com/tu-usuario/taller-pro/internal/application/identidad"
	"github.com/tu-usuario/taller-pro/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Gestor    *identidad.GestorTrabajadores
	Coord     *identidad.CoordinadorEstados
	AuthUC    *auth.AuthUseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/cambiar-password", authHandler.CambiarPassword)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Trabajadores (protegido, solo roles de gestión)
	soloGestion := RequireRol(entity.RolAdministrador, entity.RolJefeTaller)
	trabajadores := protected.Group("/trabajadores", soloGestion)
	trabajadorHandler := NewTrabajadorHandler(deps.Gestor, deps.Coord)
	trabajadores.Post("/", trabajadorHandler.Create)
	trabajadores.Get("/", trabajadorHandler.List)
	trabajadores.Get("/:id", trabajadorHandler.GetByID)
	trabajadores.Put("/:id", trabajadorHandler.Update)
	trabajadores.Patch("/:id/estado", trabajadorHandler.CambiarEstado)
	trabajadores.Delete("/:id", trabajadorHandler.Eliminar)
	trabajadores.Post("/:id/restaurar", trabajadorHandler.Restaurar)
	trabajadores.Post("/:id/enviar-credenciales", trabajadorHandler.EnviarCredenciales)

	// Usuarios (protegido)
	usuarios := protected.Group("/usuarios", soloGestion)
	usuarioHandler := NewUsuarioHandler(deps.Gestor)
	usuarios.Post("/:id/reset-credenciales", usuarioHandler.ResetCredenciales)
}
