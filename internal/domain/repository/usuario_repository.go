package repository

import "github.com/tu-usuario/taller-pro/internal/domain/entity"

// UsuarioRepository puerto de persistencia para Usuario (cuentas de acceso).
type UsuarioRepository interface {
	Create(u *entity.Usuario) error
	Update(u *entity.Usuario) error
	GetByID(id string) (*entity.Usuario, error)
	// GetByUsername busca por username ya normalizado (trim + NFC + minúsculas).
	GetByUsername(username string) (*entity.Usuario, error)
	GetByTrabajador(trabajadorID string) (*entity.Usuario, error)
}
