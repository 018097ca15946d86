package repository

import "github.com/tu-usuario/taller-pro/internal/domain/entity"

// AuditoriaRepository sumidero append-only de eventos de auditoría.
type AuditoriaRepository interface {
	Create(e *entity.EventoAuditoria) error
}
