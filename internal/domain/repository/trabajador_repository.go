package repository

import "github.com/tu-usuario/taller-pro/internal/domain/entity"

// TrabajadorRepository puerto de persistencia para Trabajador.
type TrabajadorRepository interface {
	Create(t *entity.Trabajador) error
	Update(t *entity.Trabajador) error
	GetByID(id string) (*entity.Trabajador, error)
	// GetUltimo devuelve el trabajador con el código secuencial más alto
	// (para generar el siguiente EMP-XXXX). Nil si no hay ninguno.
	GetUltimo() (*entity.Trabajador, error)
	List(limit, offset int) ([]*entity.Trabajador, error)
}
