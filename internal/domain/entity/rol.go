package entity

import "time"

// Nombres canónicos del catálogo de roles. El catálogo vive en la DB;
// estas constantes solo evitan strings sueltos en resolución y seeds.
const (
	RolAdministrador = "Administrador"
	RolJefeTaller    = "Jefe de Taller"
	RolMecanico      = "Mecánico"
	RolRecepcionista = "Recepcionista"
)

// Rol nivel de acceso asignable a una cuenta. Catálogo estable, rara vez mutado.
type Rol struct {
	ID          string
	Nombre      string // único
	Descripcion string
	CreatedAt   time.Time
}
