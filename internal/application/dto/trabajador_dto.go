package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CrearTrabajadorRequest entrada para crear un trabajador (fechas en formato YYYY-MM-DD).
// Si CrearUsuario es true, Username, Password y Email son obligatorios.
type CrearTrabajadorRequest struct {
	Nombres         string `json:"nombres" validate:"required,min=1,max=100"`
	Apellidos       string `json:"apellidos" validate:"required,min=1,max=100"`
	TipoDocumento   string `json:"tipo_documento" validate:"required,oneof=DNI CE PASAPORTE"`
	NumeroDocumento string `json:"numero_documento" validate:"required"`
	Email           string `json:"email" validate:"omitempty,email"`
	Telefono        string `json:"telefono" validate:"omitempty"`
	Direccion       string `json:"direccion" validate:"omitempty,max=200"`
	FechaNacimiento string `json:"fecha_nacimiento" validate:"required"`

	Cargo            string          `json:"cargo" validate:"required,min=1,max=100"`
	Especialidad     string          `json:"especialidad" validate:"omitempty,max=100"`
	NivelExperiencia string          `json:"nivel_experiencia" validate:"omitempty,max=50"`
	FechaIngreso     string          `json:"fecha_ingreso" validate:"omitempty"`
	SalarioMensual   decimal.Decimal `json:"salario_mensual" validate:"omitempty"`

	CrearUsuario    bool   `json:"crear_usuario"`
	Username        string `json:"username" validate:"omitempty,min=3,max=60"`
	Password        string `json:"password" validate:"omitempty,min=8"`
	RolPreferido    string `json:"rol_preferido" validate:"omitempty,max=60"`
	ExpiracionHoras int    `json:"expiracion_horas" validate:"omitempty,min=1,max=336"`
}

// ActualizarTrabajadorRequest actualización parcial: los campos nil conservan su valor.
type ActualizarTrabajadorRequest struct {
	Nombres         *string `json:"nombres"`
	Apellidos       *string `json:"apellidos"`
	TipoDocumento   *string `json:"tipo_documento"`
	NumeroDocumento *string `json:"numero_documento"`
	Email           *string `json:"email"`
	Telefono        *string `json:"telefono"`
	Direccion       *string `json:"direccion"`
	FechaNacimiento *string `json:"fecha_nacimiento"`

	Cargo            *string          `json:"cargo"`
	Especialidad     *string          `json:"especialidad"`
	NivelExperiencia *string          `json:"nivel_experiencia"`
	FechaIngreso     *string          `json:"fecha_ingreso"`
	SalarioMensual   *decimal.Decimal `json:"salario_mensual"`

	// Cuenta: crear si no existe, o cambiar username / emitir nuevo password.
	CrearUsuario    bool    `json:"crear_usuario"`
	Username        *string `json:"username"`
	Password        *string `json:"password"`
	RolPreferido    *string `json:"rol_preferido"`
	ExpiracionHoras int     `json:"expiracion_horas"`
}

// CambiarEstadoRequest habilitar/deshabilitar un trabajador.
// Si Activo es nil se invierte el estado actual.
type CambiarEstadoRequest struct {
	Activo *bool  `json:"activo"`
	Motivo string `json:"motivo"`
}

// EliminarRequest baja lógica con motivo opcional.
type EliminarRequest struct {
	Motivo string `json:"motivo"`
}

// RestaurarRequest saca al trabajador del estado eliminado.
// Si Activo es nil se restaura como activo.
type RestaurarRequest struct {
	Activo *bool `json:"activo"`
}

// EnviarCredencialesRequest reenvío manual de credenciales (emite un password temporal nuevo).
type EnviarCredencialesRequest struct {
	MensajeExtra string `json:"mensaje_extra"`
}

// CredencialesEntrega resultado del intento de envío por correo. El estado de
// identidad ya quedó confirmado cuando este resultado se reporta.
type CredencialesEntrega struct {
	Enviadas bool   `json:"enviadas"`
	Error    string `json:"error,omitempty"`
}

// TrabajadorResponse salida de un trabajador con sus datos de persona.
type TrabajadorResponse struct {
	ID               string          `json:"id"`
	Codigo           string          `json:"codigo"`
	Nombres          string          `json:"nombres"`
	Apellidos        string          `json:"apellidos"`
	TipoDocumento    string          `json:"tipo_documento"`
	NumeroDocumento  string          `json:"numero_documento"`
	Email            string          `json:"email,omitempty"`
	Telefono         string          `json:"telefono,omitempty"`
	Cargo            string          `json:"cargo"`
	Especialidad     string          `json:"especialidad,omitempty"`
	NivelExperiencia string          `json:"nivel_experiencia,omitempty"`
	FechaIngreso     time.Time       `json:"fecha_ingreso"`
	SalarioMensual   decimal.Decimal `json:"salario_mensual"`
	Estado           string          `json:"estado"` // ACTIVO, INACTIVO, ELIMINADO
	Username         string          `json:"username,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// TrabajadorConCredenciales respuesta de create/update: el trabajador persistido
// más el resultado del envío de credenciales (nil si no se emitieron).
type TrabajadorConCredenciales struct {
	Trabajador   TrabajadorResponse   `json:"trabajador"`
	Credenciales *CredencialesEntrega `json:"credenciales,omitempty"`
}
