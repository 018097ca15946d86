package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/taller-pro/internal/domain/entity"
	"github.com/tu-usuario/taller-pro/internal/domain/repository"
)

var _ repository.AuditoriaRepository = (*AuditoriaRepo)(nil)

// AuditoriaRepo sumidero append-only de eventos (usable con pool o tx).
type AuditoriaRepo struct {
	q Querier
}

// NewAuditoriaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditoriaRepository(q Querier) *AuditoriaRepo {
	return &AuditoriaRepo{q: q}
}

// Create inserta un evento. Los eventos nunca se actualizan ni borran.
func (r *AuditoriaRepo) Create(e *entity.EventoAuditoria) error {
	query := `
		INSERT INTO auditoria (id, actor_id, accion, descripcion, tabla, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.ActorID, e.Accion, e.Descripcion, e.Tabla, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert evento auditoria: %w", err)
	}
	return nil
}
