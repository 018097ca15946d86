package identidad

import (
	"context"

	"github.com/tu-usuario/taller-pro/internal/domain/entity"
	"github.com/tu-usuario/taller-pro/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una unidad atómica con repos atados a la
// transacción. Si fn retorna error, nada de lo escrito se conserva.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		personaRepo repository.PersonaRepository,
		usuarioRepo repository.UsuarioRepository,
		trabajadorRepo repository.TrabajadorRepository,
		rolRepo repository.RolRepository,
	) error) error
}

// Mailer canal best-effort de entrega de credenciales. El núcleo nunca
// reintenta automáticamente; el reenvío es una acción explícita del caller.
type Mailer interface {
	Send(ctx context.Context, to, subject, html string) error
}

// AuditLogger sumidero de eventos de auditoría. Los fallos se registran como
// warning y jamás se propagan al caller.
type AuditLogger interface {
	Record(evento *entity.EventoAuditoria)
}
