package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados derivados de los flags Activo/Eliminado.
const (
	EstadoActivo    = "ACTIVO"
	EstadoInactivo  = "INACTIVO"
	EstadoEliminado = "ELIMINADO"
)

// Trabajador empleado del taller. Puede existir sin cuenta de acceso
// (UsuarioID vacío). Nunca se borra físicamente: órdenes y tareas históricas
// apuntan a su ID.
type Trabajador struct {
	ID        string
	PersonaID string
	UsuarioID string // referencia débil, opcional

	Codigo           string // secuencial legible: EMP-0001
	Cargo            string
	Especialidad     string
	NivelExperiencia string
	FechaIngreso     time.Time
	SalarioMensual   decimal.Decimal

	Activo    bool
	Eliminado bool // invariante: Eliminado implica !Activo

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EstadoActual estado legible derivado de los flags.
func (t *Trabajador) EstadoActual() string {
	switch {
	case t.Eliminado:
		return EstadoEliminado
	case t.Activo:
		return EstadoActivo
	default:
		return EstadoInactivo
	}
}

// TieneUsuario la cuenta de acceso ya fue aprovisionada.
func (t *Trabajador) TieneUsuario() bool {
	return t.UsuarioID != ""
}
