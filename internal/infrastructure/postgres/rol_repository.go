package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/taller-pro/internal/domain/entity"
	"github.com/tu-usuario/taller-pro/internal/domain/repository"
)

var _ repository.RolRepository = (*RolRepo)(nil)

// RolRepo acceso al catálogo de roles (usable con pool o tx).
type RolRepo struct {
	q Querier
}

// NewRolRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRolRepository(q Querier) *RolRepo {
	return &RolRepo{q: q}
}

// GetByID obtiene un rol por ID. Nil si no existe.
func (r *RolRepo) GetByID(id string) (*entity.Rol, error) {
	query := `SELECT id, nombre, descripcion, created_at FROM roles WHERE id = $1`
	return r.escanear(r.q.QueryRow(context.Background(), query, id), "get rol by id")
}

// GetByNombre obtiene un rol por nombre exacto. Nil si no existe.
func (r *RolRepo) GetByNombre(nombre string) (*entity.Rol, error) {
	query := `SELECT id, nombre, descripcion, created_at FROM roles WHERE nombre = $1`
	return r.escanear(r.q.QueryRow(context.Background(), query, nombre), "get rol by nombre")
}

// List devuelve el catálogo completo ordenado por nombre.
func (r *RolRepo) List() ([]*entity.Rol, error) {
	query := `SELECT id, nombre, descripcion, created_at FROM roles ORDER BY nombre`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()

	var roles []*entity.Rol
	for rows.Next() {
		var rol entity.Rol
		if err := rows.Scan(&rol.ID, &rol.Nombre, &rol.Descripcion, &rol.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan rol: %w", err)
		}
		roles = append(roles, &rol)
	}
	return roles, rows.Err()
}

func (r *RolRepo) escanear(row pgx.Row, op string) (*entity.Rol, error) {
	var rol entity.Rol
	err := row.Scan(&rol.ID, &rol.Nombre, &rol.Descripcion, &rol.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &rol, nil
}
