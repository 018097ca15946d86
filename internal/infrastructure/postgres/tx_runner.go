package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/taller-pro/internal/application/identidad"
	"github.com/tu-usuario/taller-pro/internal/domain/repository"
)

// Ensure TxRunner implements identidad.TxRunner.
var _ identidad.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	personaRepo repository.PersonaRepository,
	usuarioRepo repository.UsuarioRepository,
	trabajadorRepo repository.TrabajadorRepository,
	rolRepo repository.RolRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	personaRepo := NewPersonaRepository(tx)
	usuarioRepo := NewUsuarioRepository(tx)
	trabajadorRepo := NewTrabajadorRepository(tx)
	rolRepo := NewRolRepository(tx)

	if err := fn(personaRepo, usuarioRepo, trabajadorRepo, rolRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
