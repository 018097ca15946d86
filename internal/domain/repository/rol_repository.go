package repository

import "github.com/tu-usuario/taller-pro/internal/domain/entity"

// RolRepository puerto de lectura del catálogo de roles.
type RolRepository interface {
	GetByID(id string) (*entity.Rol, error)
	GetByNombre(nombre string) (*entity.Rol, error)
	List() ([]*entity.Rol, error)
}
