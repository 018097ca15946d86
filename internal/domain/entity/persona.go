package entity

import "time"

// Tipos de documento de identidad.
const (
	DocumentoDNI       = "DNI"
	DocumentoCarnet    = "CE"
	DocumentoPasaporte = "PASAPORTE"
)

// Persona datos de identidad y contacto compartidos entre Trabajador y Usuario.
// Es un agregado propio: ni el trabajador ni la cuenta la duplican.
type Persona struct {
	ID              string
	Nombres         string
	Apellidos       string
	TipoDocumento   string // DNI, CE, PASAPORTE
	NumeroDocumento string // único en el sistema
	Email           string
	Telefono        string
	Direccion       string
	FechaNacimiento time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NombreCompleto nombres + apellidos para correos y auditoría.
func (p *Persona) NombreCompleto() string {
	if p.Apellidos == "" {
		return p.Nombres
	}
	return p.Nombres + " " + p.Apellidos
}

// Edad años cumplidos a la fecha indicada.
func (p *Persona) Edad(en time.Time) int {
	edad := en.Year() - p.FechaNacimiento.Year()
	aniversario := p.FechaNacimiento.AddDate(edad, 0, 0)
	if aniversario.After(en) {
		edad--
	}
	return edad
}
