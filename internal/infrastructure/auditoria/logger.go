package auditoria

import (
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/taller-pro/internal/application/identidad"
	"github.com/tu-usuario/taller-pro/internal/domain/entity"
	"github.com/tu-usuario/taller-pro/internal/domain/repository"
	"github.com/tu-usuario/taller-pro/pkg/logger"
)

var _ identidad.AuditLogger = (*Registro)(nil)

// Registro AuditLogger sobre el repo de auditoría. Síncrono pero aislado:
// un fallo del insert se registra como warning y nunca llega al caller.
type Registro struct {
	repo repository.AuditoriaRepository
	log  *logger.Logger
}

// NewRegistro construye el logger de auditoría.
func NewRegistro(repo repository.AuditoriaRepository, log *logger.Logger) *Registro {
	return &Registro{repo: repo, log: log}
}

// Record persiste el evento, completando ID y timestamp si faltan.
func (r *Registro) Record(e *entity.EventoAuditoria) {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	if err := r.repo.Create(e); err != nil {
		r.log.Warn().Err(err).
			Str("accion", e.Accion).
			Str("actor", e.ActorID).
			Msg("no se pudo registrar evento de auditoría")
	}
}
