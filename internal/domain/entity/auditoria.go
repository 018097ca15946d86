package entity

import "time"

// Códigos de acción para auditoría.
const (
	AccionCrearTrabajador      = "CREAR_TRABAJADOR"
	AccionActualizarTrabajador = "ACTUALIZAR_TRABAJADOR"
	AccionCambiarEstado        = "CAMBIAR_ESTADO"
	AccionEliminarTrabajador   = "ELIMINAR_TRABAJADOR"
	AccionRestaurarTrabajador  = "RESTAURAR_TRABAJADOR"
	AccionResetCredenciales    = "RESET_CREDENCIALES"
	AccionEnviarCredenciales   = "ENVIAR_CREDENCIALES"
	AccionLogin                = "LOGIN"
)

// EventoAuditoria registro inmutable de una acción administrativa.
type EventoAuditoria struct {
	ID          string
	ActorID     string
	Accion      string
	Descripcion string
	Tabla       string
	CreatedAt   time.Time
}
