package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/taller-pro/internal/domain/entity"
	"github.com/tu-usuario/taller-pro/internal/domain/repository"
)

var _ repository.TrabajadorRepository = (*TrabajadorRepo)(nil)

// TrabajadorRepo implementación sobre PostgreSQL (usable con pool o tx).
type TrabajadorRepo struct {
	q Querier
}

// NewTrabajadorRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTrabajadorRepository(q Querier) *TrabajadorRepo {
	return &TrabajadorRepo{q: q}
}

const columnasTrabajador = `id, persona_id, usuario_id, codigo, cargo, especialidad,
	nivel_experiencia, fecha_ingreso, salario_mensual, activo, eliminado, created_at, updated_at`

// Create persiste un nuevo trabajador.
func (r *TrabajadorRepo) Create(t *entity.Trabajador) error {
	query := `
		INSERT INTO trabajadores (` + columnasTrabajador + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.PersonaID, nullSiVacio(t.UsuarioID), t.Codigo, t.Cargo, t.Especialidad,
		t.NivelExperiencia, t.FechaIngreso, t.SalarioMensual, t.Activo, t.Eliminado,
		t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert trabajador: %w", err)
	}
	return nil
}

// Update actualiza un trabajador.
func (r *TrabajadorRepo) Update(t *entity.Trabajador) error {
	query := `
		UPDATE trabajadores
		SET usuario_id = $2, cargo = $3, especialidad = $4, nivel_experiencia = $5,
		    fecha_ingreso = $6, salario_mensual = $7, activo = $8, eliminado = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, nullSiVacio(t.UsuarioID), t.Cargo, t.Especialidad, t.NivelExperiencia,
		t.FechaIngreso, t.SalarioMensual, t.Activo, t.Eliminado, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update trabajador: %w", err)
	}
	return nil
}

// GetByID obtiene un trabajador por ID. Nil si no existe.
func (r *TrabajadorRepo) GetByID(id string) (*entity.Trabajador, error) {
	query := `SELECT ` + columnasTrabajador + ` FROM trabajadores WHERE id = $1`
	return r.escanear(r.q.QueryRow(context.Background(), query, id), "get trabajador by id")
}

// GetUltimo devuelve el trabajador con el código más alto (para el siguiente
// EMP-XXXX). El padding a 4 dígitos hace que el orden lexicográfico coincida
// con el numérico. Nil si la tabla está vacía.
func (r *TrabajadorRepo) GetUltimo() (*entity.Trabajador, error) {
	query := `SELECT ` + columnasTrabajador + ` FROM trabajadores ORDER BY codigo DESC LIMIT 1`
	return r.escanear(r.q.QueryRow(context.Background(), query), "get ultimo trabajador")
}

// List trabajadores paginados, más recientes primero.
func (r *TrabajadorRepo) List(limit, offset int) ([]*entity.Trabajador, error) {
	query := `SELECT ` + columnasTrabajador + ` FROM trabajadores
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list trabajadores: %w", err)
	}
	defer rows.Close()

	var out []*entity.Trabajador
	for rows.Next() {
		t, err := escanearTrabajador(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TrabajadorRepo) escanear(row pgx.Row, op string) (*entity.Trabajador, error) {
	t, err := escanearTrabajador(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return t, nil
}

func escanearTrabajador(row pgx.Row) (*entity.Trabajador, error) {
	var t entity.Trabajador
	var usuarioID *string
	err := row.Scan(
		&t.ID, &t.PersonaID, &usuarioID, &t.Codigo, &t.Cargo, &t.Especialidad,
		&t.NivelExperiencia, &t.FechaIngreso, &t.SalarioMensual, &t.Activo, &t.Eliminado,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if usuarioID != nil {
		t.UsuarioID = *usuarioID
	}
	return &t, nil
}

// nullSiVacio strings vacíos se guardan como NULL (FKs opcionales).
func nullSiVacio(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
