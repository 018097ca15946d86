package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/taller-pro/internal/domain"
	"github.com/tu-usuario/taller-pro/internal/domain/entity"
	"github.com/tu-usuario/taller-pro/internal/domain/repository"
)

var _ repository.PersonaRepository = (*PersonaRepo)(nil)

// PersonaRepo implementación sobre PostgreSQL (usable con pool o tx).
type PersonaRepo struct {
	q Querier
}

// NewPersonaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPersonaRepository(q Querier) *PersonaRepo {
	return &PersonaRepo{q: q}
}

const columnasPersona = `id, nombres, apellidos, tipo_documento, numero_documento,
	email, telefono, direccion, fecha_nacimiento, created_at, updated_at`

// Create persiste una nueva persona.
func (r *PersonaRepo) Create(p *entity.Persona) error {
	query := `
		INSERT INTO personas (` + columnasPersona + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Nombres, p.Apellidos, p.TipoDocumento, p.NumeroDocumento,
		p.Email, p.Telefono, p.Direccion, p.FechaNacimiento, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDocumentoDuplicado
		}
		return fmt.Errorf("insert persona: %w", err)
	}
	return nil
}

// Update actualiza una persona.
func (r *PersonaRepo) Update(p *entity.Persona) error {
	query := `
		UPDATE personas
		SET nombres = $2, apellidos = $3, tipo_documento = $4, numero_documento = $5,
		    email = $6, telefono = $7, direccion = $8, fecha_nacimiento = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Nombres, p.Apellidos, p.TipoDocumento, p.NumeroDocumento,
		p.Email, p.Telefono, p.Direccion, p.FechaNacimiento, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDocumentoDuplicado
		}
		return fmt.Errorf("update persona: %w", err)
	}
	return nil
}

// GetByID obtiene una persona por ID. Nil si no existe.
func (r *PersonaRepo) GetByID(id string) (*entity.Persona, error) {
	query := `SELECT ` + columnasPersona + ` FROM personas WHERE id = $1`
	return r.escanear(r.q.QueryRow(context.Background(), query, id), "get persona by id")
}

// GetByDocumento obtiene una persona por número de documento. Nil si no existe.
func (r *PersonaRepo) GetByDocumento(numero string) (*entity.Persona, error) {
	query := `SELECT ` + columnasPersona + ` FROM personas WHERE numero_documento = $1`
	return r.escanear(r.q.QueryRow(context.Background(), query, numero), "get persona by documento")
}

func (r *PersonaRepo) escanear(row pgx.Row, op string) (*entity.Persona, error) {
	var p entity.Persona
	err := row.Scan(
		&p.ID, &p.Nombres, &p.Apellidos, &p.TipoDocumento, &p.NumeroDocumento,
		&p.Email, &p.Telefono, &p.Direccion, &p.FechaNacimiento, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}
