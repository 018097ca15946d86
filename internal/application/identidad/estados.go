package identidad

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/taller-pro/internal/domain"
	"github.com/tu-usuario/taller-pro/internal/domain/entity"
	"github.com/tu-usuario/taller-pro/internal/domain/repository"
)

// Motivos por defecto cuando el caller no da uno.
const (
	motivoDeshabilitado      = "Deshabilitado por administración"
	motivoEliminado          = "Baja del trabajador"
	motivoRestauradoInactivo = "Restaurado como inactivo"
)

// CoordinadorEstados máquina de estados del trabajador
// (ACTIVO / INACTIVO / ELIMINADO) con cascadas hacia la cuenta ligada.
// Solo este coordinador muta ambos registros: ni Trabajador ni Usuario
// cascadean por su cuenta. Cada transición es una unidad atómica seguida de
// un evento de auditoría.
type CoordinadorEstados struct {
	tx             TxRunner
	trabajadorRepo repository.TrabajadorRepository
	auditoria      AuditLogger
	ahora          func() time.Time
}

// NewCoordinadorEstados construye el coordinador.
func NewCoordinadorEstados(tx TxRunner, trabajadorRepo repository.TrabajadorRepository, auditoria AuditLogger) *CoordinadorEstados {
	return &CoordinadorEstados{
		tx:             tx,
		trabajadorRepo: trabajadorRepo,
		auditoria:      auditoria,
		ahora:          time.Now,
	}
}

// CambiarEstado habilita o deshabilita un trabajador. Ilegal desde ELIMINADO.
// deseado en nil invierte el estado actual. Deshabilitar cascadea a la cuenta:
// estado=false, sello y motivo de bloqueo, y limpia la entrega pendiente (un
// correo a una cuenta deshabilitada no sirve de nada). Habilitar limpia el
// bloqueo sin tocar las credenciales guardadas.
func (c *CoordinadorEstados) CambiarEstado(ctx context.Context, id string, deseado *bool, motivo, actorID string) (*entity.Trabajador, error) {
	trabajador, err := c.cargar(id)
	if err != nil {
		return nil, err
	}
	if trabajador.Eliminado {
		return nil, fmt.Errorf("%w: el trabajador %s está eliminado", domain.ErrEstadoInvalido, trabajador.Codigo)
	}

	nuevoActivo := !trabajador.Activo
	if deseado != nil {
		nuevoActivo = *deseado
	}
	if motivo == "" {
		motivo = motivoDeshabilitado
	}
	now := c.ahora()

	err = c.tx.Run(ctx, func(
		_ repository.PersonaRepository,
		usuarioRepo repository.UsuarioRepository,
		trabajadorRepo repository.TrabajadorRepository,
		_ repository.RolRepository,
	) error {
		trabajador.Activo = nuevoActivo
		trabajador.UpdatedAt = now
		if err := trabajadorRepo.Update(trabajador); err != nil {
			return err
		}

		return c.cascadaCuenta(usuarioRepo, trabajador, func(u *entity.Usuario) {
			if nuevoActivo {
				u.Estado = true
				u.BloqueadoEn = nil
				u.MotivoBloqueo = ""
			} else {
				u.Estado = false
				u.BloqueadoEn = &now
				u.MotivoBloqueo = motivo
				u.EntregaPendiente = false
			}
			u.UpdatedAt = now
		})
	})
	if err != nil {
		return nil, err
	}

	descripcion := fmt.Sprintf("Trabajador %s habilitado", trabajador.Codigo)
	if !nuevoActivo {
		descripcion = fmt.Sprintf("Trabajador %s deshabilitado: %s", trabajador.Codigo, motivo)
	}
	c.auditoria.Record(&entity.EventoAuditoria{
		ActorID:     actorID,
		Accion:      entity.AccionCambiarEstado,
		Descripcion: descripcion,
		Tabla:       "trabajadores",
	})
	return trabajador, nil
}

// MarcarEliminado baja lógica. Ilegal si ya está eliminado. Cascadea a la
// cuenta: estado=false, estatus=false, descarta el material temporal y el
// cambio forzado, sella el bloqueo. El registro nunca se borra físicamente.
func (c *CoordinadorEstados) MarcarEliminado(ctx context.Context, id, motivo, actorID string) (*entity.Trabajador, error) {
	trabajador, err := c.cargar(id)
	if err != nil {
		return nil, err
	}
	if trabajador.Eliminado {
		return nil, fmt.Errorf("%w: el trabajador %s ya está eliminado", domain.ErrEstadoInvalido, trabajador.Codigo)
	}
	if motivo == "" {
		motivo = motivoEliminado
	}
	now := c.ahora()

	err = c.tx.Run(ctx, func(
		_ repository.PersonaRepository,
		usuarioRepo repository.UsuarioRepository,
		trabajadorRepo repository.TrabajadorRepository,
		_ repository.RolRepository,
	) error {
		trabajador.Eliminado = true
		trabajador.Activo = false
		trabajador.UpdatedAt = now
		if err := trabajadorRepo.Update(trabajador); err != nil {
			return err
		}

		return c.cascadaCuenta(usuarioRepo, trabajador, func(u *entity.Usuario) {
			u.Estado = false
			u.Estatus = false
			// Descartar el material temporal: queda solo el placeholder,
			// que nadie conoce.
			if tmp, ok := u.Credencial.(entity.CredencialTemporal); ok {
				u.Credencial = entity.CredencialPermanente{Hash: tmp.Placeholder}
			}
			u.RequiereCambioPassword = false
			u.BloqueadoEn = &now
			u.MotivoBloqueo = motivo
			u.EntregaPendiente = false
			u.UpdatedAt = now
		})
	})
	if err != nil {
		return nil, err
	}

	c.auditoria.Record(&entity.EventoAuditoria{
		ActorID:     actorID,
		Accion:      entity.AccionEliminarTrabajador,
		Descripcion: fmt.Sprintf("Trabajador %s eliminado: %s", trabajador.Codigo, motivo),
		Tabla:       "trabajadores",
	})
	return trabajador, nil
}

// Restaurar única transición de salida de ELIMINADO. deseadoActivo decide si
// vuelve como ACTIVO o INACTIVO; la cuenta recupera estatus=true siempre y
// estado más metadatos de bloqueo según deseadoActivo.
func (c *CoordinadorEstados) Restaurar(ctx context.Context, id string, deseadoActivo *bool, actorID string) (*entity.Trabajador, error) {
	trabajador, err := c.cargar(id)
	if err != nil {
		return nil, err
	}
	if !trabajador.Eliminado {
		return nil, fmt.Errorf("%w: el trabajador %s no está eliminado", domain.ErrEstadoInvalido, trabajador.Codigo)
	}

	activo := true
	if deseadoActivo != nil {
		activo = *deseadoActivo
	}
	now := c.ahora()

	err = c.tx.Run(ctx, func(
		_ repository.PersonaRepository,
		usuarioRepo repository.UsuarioRepository,
		trabajadorRepo repository.TrabajadorRepository,
		_ repository.RolRepository,
	) error {
		trabajador.Eliminado = false
		trabajador.Activo = activo
		trabajador.UpdatedAt = now
		if err := trabajadorRepo.Update(trabajador); err != nil {
			return err
		}

		return c.cascadaCuenta(usuarioRepo, trabajador, func(u *entity.Usuario) {
			u.Estatus = true
			if activo {
				u.Estado = true
				u.BloqueadoEn = nil
				u.MotivoBloqueo = ""
			} else {
				u.Estado = false
				u.BloqueadoEn = &now
				u.MotivoBloqueo = motivoRestauradoInactivo
			}
			u.UpdatedAt = now
		})
	})
	if err != nil {
		return nil, err
	}

	c.auditoria.Record(&entity.EventoAuditoria{
		ActorID:     actorID,
		Accion:      entity.AccionRestaurarTrabajador,
		Descripcion: fmt.Sprintf("Trabajador %s restaurado (%s)", trabajador.Codigo, trabajador.EstadoActual()),
		Tabla:       "trabajadores",
	})
	return trabajador, nil
}

func (c *CoordinadorEstados) cargar(id string) (*entity.Trabajador, error) {
	trabajador, err := c.trabajadorRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if trabajador == nil {
		return nil, fmt.Errorf("%w: trabajador %s", domain.ErrNotFound, id)
	}
	return trabajador, nil
}

// cascadaCuenta aplica mutar sobre la cuenta ligada dentro de la transacción.
// Un trabajador sin cuenta transiciona sin cascada.
func (c *CoordinadorEstados) cascadaCuenta(usuarioRepo repository.UsuarioRepository, trabajador *entity.Trabajador, mutar func(*entity.Usuario)) error {
	if !trabajador.TieneUsuario() {
		return nil
	}
	usuario, err := usuarioRepo.GetByID(trabajador.UsuarioID)
	if err != nil {
		return err
	}
	if usuario == nil {
		return fmt.Errorf("%w: cuenta %s del trabajador %s", domain.ErrNotFound, trabajador.UsuarioID, trabajador.Codigo)
	}
	mutar(usuario)
	return usuarioRepo.Update(usuario)
}
