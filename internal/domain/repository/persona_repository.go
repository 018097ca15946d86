package repository

import "github.com/tu-usuario/taller-pro/internal/domain/entity"

// PersonaRepository puerto de persistencia para Persona (DIP).
type PersonaRepository interface {
	Create(p *entity.Persona) error
	Update(p *entity.Persona) error
	GetByID(id string) (*entity.Persona, error)
	GetByDocumento(numero string) (*entity.Persona, error)
}
