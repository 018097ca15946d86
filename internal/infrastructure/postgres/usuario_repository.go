package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/taller-pro/internal/domain"
	"github.com/tu-usuario/taller-pro/internal/domain/entity"
	"github.com/tu-usuario/taller-pro/internal/domain/repository"
)

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

// UsuarioRepo implementación sobre PostgreSQL (usable con pool o tx).
//
// La credencial se guarda en columnas paralelas: password_hash siempre tiene
// un hash (permanente o placeholder) y password_temporal_hash/expira solo
// existen mientras hay una temporal pendiente. El mapeo reconstruye el tipo
// suma de entity.Credencial al leer.
type UsuarioRepo struct {
	q Querier
}

// NewUsuarioRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUsuarioRepository(q Querier) *UsuarioRepo {
	return &UsuarioRepo{q: q}
}

const columnasUsuario = `id, persona_id, trabajador_id, rol_id, username,
	password_hash, password_temporal_hash, password_temporal_expira,
	requiere_cambio_password, estado, estatus, bloqueado_en, motivo_bloqueo,
	entrega_pendiente, ultimo_envio_en, ultimo_error_envio, created_at, updated_at`

// Create persiste una nueva cuenta.
func (r *UsuarioRepo) Create(u *entity.Usuario) error {
	hash, tmpHash, tmpExpira := descomponerCredencial(u.Credencial)
	query := `
		INSERT INTO usuarios (` + columnasUsuario + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(context.Background(), query,
		u.ID, u.PersonaID, nullSiVacio(u.TrabajadorID), u.RolID, u.Username,
		hash, tmpHash, tmpExpira,
		u.RequiereCambioPassword, u.Estado, u.Estatus, u.BloqueadoEn, u.MotivoBloqueo,
		u.EntregaPendiente, u.UltimoEnvioEn, u.UltimoErrorEnvio, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameDuplicado
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

// Update actualiza una cuenta.
func (r *UsuarioRepo) Update(u *entity.Usuario) error {
	hash, tmpHash, tmpExpira := descomponerCredencial(u.Credencial)
	query := `
		UPDATE usuarios
		SET trabajador_id = $2, rol_id = $3, username = $4,
		    password_hash = $5, password_temporal_hash = $6, password_temporal_expira = $7,
		    requiere_cambio_password = $8, estado = $9, estatus = $10,
		    bloqueado_en = $11, motivo_bloqueo = $12,
		    entrega_pendiente = $13, ultimo_envio_en = $14, ultimo_error_envio = $15,
		    updated_at = $16
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		u.ID, nullSiVacio(u.TrabajadorID), u.RolID, u.Username,
		hash, tmpHash, tmpExpira,
		u.RequiereCambioPassword, u.Estado, u.Estatus,
		u.BloqueadoEn, u.MotivoBloqueo,
		u.EntregaPendiente, u.UltimoEnvioEn, u.UltimoErrorEnvio, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameDuplicado
		}
		return fmt.Errorf("update usuario: %w", err)
	}
	return nil
}

// GetByID obtiene una cuenta por ID. Nil si no existe.
func (r *UsuarioRepo) GetByID(id string) (*entity.Usuario, error) {
	query := `SELECT ` + columnasUsuario + ` FROM usuarios WHERE id = $1`
	return r.escanear(r.q.QueryRow(context.Background(), query, id), "get usuario by id")
}

// GetByUsername busca por username ya normalizado. Nil si no existe.
func (r *UsuarioRepo) GetByUsername(username string) (*entity.Usuario, error) {
	query := `SELECT ` + columnasUsuario + ` FROM usuarios WHERE username = $1`
	return r.escanear(r.q.QueryRow(context.Background(), query, username), "get usuario by username")
}

// GetByTrabajador obtiene la cuenta ligada a un trabajador. Nil si no hay.
func (r *UsuarioRepo) GetByTrabajador(trabajadorID string) (*entity.Usuario, error) {
	query := `SELECT ` + columnasUsuario + ` FROM usuarios WHERE trabajador_id = $1`
	return r.escanear(r.q.QueryRow(context.Background(), query, trabajadorID), "get usuario by trabajador")
}

func (r *UsuarioRepo) escanear(row pgx.Row, op string) (*entity.Usuario, error) {
	var (
		u          entity.Usuario
		trabajador *string
		hash       string
		tmpHash    *string
		tmpExpira  *time.Time
	)
	err := row.Scan(
		&u.ID, &u.PersonaID, &trabajador, &u.RolID, &u.Username,
		&hash, &tmpHash, &tmpExpira,
		&u.RequiereCambioPassword, &u.Estado, &u.Estatus, &u.BloqueadoEn, &u.MotivoBloqueo,
		&u.EntregaPendiente, &u.UltimoEnvioEn, &u.UltimoErrorEnvio, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if trabajador != nil {
		u.TrabajadorID = *trabajador
	}
	u.Credencial = componerCredencial(hash, tmpHash, tmpExpira)
	return &u, nil
}

// descomponerCredencial tipo suma -> columnas. El slot permanente nunca queda
// vacío: con una temporal pendiente lleva el placeholder.
func descomponerCredencial(c entity.Credencial) (hash string, tmpHash *string, tmpExpira *time.Time) {
	switch cred := c.(type) {
	case entity.CredencialTemporal:
		return cred.Placeholder, &cred.Hash, &cred.ExpiraEn
	case entity.CredencialPermanente:
		return cred.Hash, nil, nil
	default:
		return "", nil, nil
	}
}

// componerCredencial columnas -> tipo suma.
func componerCredencial(hash string, tmpHash *string, tmpExpira *time.Time) entity.Credencial {
	if tmpHash != nil && tmpExpira != nil {
		return entity.CredencialTemporal{Hash: *tmpHash, Placeholder: hash, ExpiraEn: *tmpExpira}
	}
	return entity.CredencialPermanente{Hash: hash}
}
