package identidad

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/taller-pro/internal/application/dto"
	"github.com/tu-usuario/taller-pro/internal/domain"
	"github.com/tu-usuario/taller-pro/internal/domain/entity"
	"github.com/tu-usuario/taller-pro/internal/domain/repository"
	"github.com/tu-usuario/taller-pro/pkg/logger"
)

const prefijoCodigo = "EMP-"

// GestorTrabajadores orquesta el alta y actualización de trabajadores:
// Persona + Rol + Cuenta + Trabajador en una sola transacción, seguido de
// auditoría y entrega de credenciales fuera de ella. El envío de correo nunca
// revierte lo confirmado: su resultado se reporta aparte.
type GestorTrabajadores struct {
	tx             TxRunner
	personaRepo    repository.PersonaRepository
	usuarioRepo    repository.UsuarioRepository
	trabajadorRepo repository.TrabajadorRepository
	resolver       *RolResolver
	emisor         *EmisorCredenciales
	aprovisionador *AprovisionadorCuentas
	mailer         Mailer
	auditoria      AuditLogger
	log            *logger.Logger
	ahora          func() time.Time
}

// NewGestorTrabajadores construye el gestor. Los repos recibidos aquí van
// atados al pool y se usan para lecturas previas y bookkeeping post-commit;
// las escrituras del ciclo de vida pasan por el TxRunner.
func NewGestorTrabajadores(
	tx TxRunner,
	personaRepo repository.PersonaRepository,
	usuarioRepo repository.UsuarioRepository,
	trabajadorRepo repository.TrabajadorRepository,
	resolver *RolResolver,
	emisor *EmisorCredenciales,
	aprovisionador *AprovisionadorCuentas,
	mailer Mailer,
	auditoria AuditLogger,
	log *logger.Logger,
) *GestorTrabajadores {
	return &GestorTrabajadores{
		tx:             tx,
		personaRepo:    personaRepo,
		usuarioRepo:    usuarioRepo,
		trabajadorRepo: trabajadorRepo,
		resolver:       resolver,
		emisor:         emisor,
		aprovisionador: aprovisionador,
		mailer:         mailer,
		auditoria:      auditoria,
		log:            log,
		ahora:          time.Now,
	}
}

// CrearTrabajador valida la entrada, persiste Persona + Trabajador (+ cuenta
// opcional) atómicamente y después audita y entrega credenciales por correo.
func (g *GestorTrabajadores) CrearTrabajador(ctx context.Context, in dto.CrearTrabajadorRequest, actorID string) (*dto.TrabajadorConCredenciales, error) {
	now := g.ahora()

	nacimiento, err := parseFecha("fecha_nacimiento", in.FechaNacimiento)
	if err != nil {
		return nil, err
	}
	if err := validarMayorDeEdad(nacimiento, now); err != nil {
		return nil, err
	}
	if err := validarDocumento(in.TipoDocumento, in.NumeroDocumento); err != nil {
		return nil, err
	}
	if err := validarTelefono(in.Telefono); err != nil {
		return nil, err
	}
	if err := validarEmail(in.Email); err != nil {
		return nil, err
	}
	if in.CrearUsuario && (in.Username == "" || in.Password == "" || in.Email == "") {
		return nil, fmt.Errorf("%w: username, password y email son requeridos para crear la cuenta", domain.ErrValidacion)
	}

	ingreso := now
	if in.FechaIngreso != "" {
		if ingreso, err = parseFecha("fecha_ingreso", in.FechaIngreso); err != nil {
			return nil, err
		}
	}

	// Pre-chequeos de unicidad; la constraint única de la DB revalida al escribir.
	if existente, err := g.personaRepo.GetByDocumento(in.NumeroDocumento); err != nil {
		return nil, err
	} else if existente != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrDocumentoDuplicado, in.NumeroDocumento)
	}
	if in.CrearUsuario {
		if err := g.aprovisionador.VerificarUsernameDisponible(g.usuarioRepo, in.Username, ""); err != nil {
			return nil, err
		}
	}

	// Emitir antes de abrir la transacción: bcrypt es costoso.
	var emitidas *CredencialesEmitidas
	if in.CrearUsuario {
		if emitidas, err = g.emisor.Emitir(in.Password, in.ExpiracionHoras); err != nil {
			return nil, err
		}
	}

	var (
		persona    *entity.Persona
		trabajador *entity.Trabajador
		usuario    *entity.Usuario
	)
	err = g.tx.Run(ctx, func(
		personaRepo repository.PersonaRepository,
		usuarioRepo repository.UsuarioRepository,
		trabajadorRepo repository.TrabajadorRepository,
		rolRepo repository.RolRepository,
	) error {
		persona = &entity.Persona{
			ID:              uuid.New().String(),
			Nombres:         in.Nombres,
			Apellidos:       in.Apellidos,
			TipoDocumento:   in.TipoDocumento,
			NumeroDocumento: in.NumeroDocumento,
			Email:           in.Email,
			Telefono:        in.Telefono,
			Direccion:       in.Direccion,
			FechaNacimiento: nacimiento,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := personaRepo.Create(persona); err != nil {
			return err
		}

		ultimo, err := trabajadorRepo.GetUltimo()
		if err != nil {
			return err
		}
		trabajador = &entity.Trabajador{
			ID:               uuid.New().String(),
			PersonaID:        persona.ID,
			Codigo:           siguienteCodigo(ultimo),
			Cargo:            in.Cargo,
			Especialidad:     in.Especialidad,
			NivelExperiencia: in.NivelExperiencia,
			FechaIngreso:     ingreso,
			SalarioMensual:   in.SalarioMensual,
			Activo:           true,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if err := trabajadorRepo.Create(trabajador); err != nil {
			return err
		}

		if in.CrearUsuario {
			rol, err := g.resolver.Resolver(rolRepo, in.Cargo, in.RolPreferido)
			if err != nil {
				return err
			}
			if usuario, err = g.aprovisionador.Crear(usuarioRepo, trabajador, in.Username, rol.ID, emitidas); err != nil {
				return err
			}
			trabajador.UsuarioID = usuario.ID
			if err := trabajadorRepo.Update(trabajador); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	g.auditoria.Record(&entity.EventoAuditoria{
		ActorID:     actorID,
		Accion:      entity.AccionCrearTrabajador,
		Descripcion: fmt.Sprintf("Trabajador %s creado (%s)", trabajador.Codigo, persona.NombreCompleto()),
		Tabla:       "trabajadores",
	})

	out := &dto.TrabajadorConCredenciales{Trabajador: *respuestaTrabajador(trabajador, persona, usuario)}
	if usuario != nil && emitidas != nil {
		out.Credenciales = g.entregarCredenciales(ctx, usuario, persona, emitidas, "")
	}
	return out, nil
}

// ActualizarTrabajador actualización parcial: los campos omitidos conservan su
// valor. Cambiar username o fijar password nuevo dispara la misma entrega que
// la creación; cambiar cargo o preferencia de rol re-ejecuta el resolver.
func (g *GestorTrabajadores) ActualizarTrabajador(ctx context.Context, id string, in dto.ActualizarTrabajadorRequest, actorID string) (*dto.TrabajadorConCredenciales, error) {
	trabajador, err := g.trabajadorRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if trabajador == nil {
		return nil, fmt.Errorf("%w: trabajador %s", domain.ErrNotFound, id)
	}
	persona, err := g.personaRepo.GetByID(trabajador.PersonaID)
	if err != nil {
		return nil, err
	}
	if persona == nil {
		return nil, fmt.Errorf("%w: persona del trabajador %s", domain.ErrNotFound, trabajador.Codigo)
	}
	var usuario *entity.Usuario
	if trabajador.TieneUsuario() {
		if usuario, err = g.usuarioRepo.GetByID(trabajador.UsuarioID); err != nil {
			return nil, err
		}
	}

	now := g.ahora()

	// Aplicar parciales sobre las entidades cargadas.
	if in.Nombres != nil {
		persona.Nombres = *in.Nombres
	}
	if in.Apellidos != nil {
		persona.Apellidos = *in.Apellidos
	}
	if in.TipoDocumento != nil {
		persona.TipoDocumento = *in.TipoDocumento
	}
	if in.NumeroDocumento != nil {
		persona.NumeroDocumento = *in.NumeroDocumento
	}
	if in.Email != nil {
		persona.Email = *in.Email
	}
	if in.Telefono != nil {
		persona.Telefono = *in.Telefono
	}
	if in.Direccion != nil {
		persona.Direccion = *in.Direccion
	}
	if in.FechaNacimiento != nil {
		nacimiento, err := parseFecha("fecha_nacimiento", *in.FechaNacimiento)
		if err != nil {
			return nil, err
		}
		persona.FechaNacimiento = nacimiento
	}

	cargoCambiado := in.Cargo != nil && *in.Cargo != trabajador.Cargo
	if in.Cargo != nil {
		trabajador.Cargo = *in.Cargo
	}
	if in.Especialidad != nil {
		trabajador.Especialidad = *in.Especialidad
	}
	if in.NivelExperiencia != nil {
		trabajador.NivelExperiencia = *in.NivelExperiencia
	}
	if in.FechaIngreso != nil {
		ingreso, err := parseFecha("fecha_ingreso", *in.FechaIngreso)
		if err != nil {
			return nil, err
		}
		trabajador.FechaIngreso = ingreso
	}
	if in.SalarioMensual != nil {
		trabajador.SalarioMensual = *in.SalarioMensual
	}

	if err := validarMayorDeEdad(persona.FechaNacimiento, now); err != nil {
		return nil, err
	}
	if err := validarDocumento(persona.TipoDocumento, persona.NumeroDocumento); err != nil {
		return nil, err
	}
	if err := validarTelefono(persona.Telefono); err != nil {
		return nil, err
	}
	if err := validarEmail(persona.Email); err != nil {
		return nil, err
	}

	if in.NumeroDocumento != nil {
		otro, err := g.personaRepo.GetByDocumento(persona.NumeroDocumento)
		if err != nil {
			return nil, err
		}
		if otro != nil && otro.ID != persona.ID {
			return nil, fmt.Errorf("%w: %s", domain.ErrDocumentoDuplicado, persona.NumeroDocumento)
		}
	}

	crearCuenta := in.CrearUsuario && usuario == nil
	if crearCuenta {
		if in.Username == nil || *in.Username == "" || in.Password == nil || *in.Password == "" || persona.Email == "" {
			return nil, fmt.Errorf("%w: username, password y email son requeridos para crear la cuenta", domain.ErrValidacion)
		}
	}
	cambioUsername := usuario != nil && in.Username != nil && NormalizarUsername(*in.Username) != usuario.Username
	nuevoPassword := usuario != nil && in.Password != nil && *in.Password != ""
	rolPreferido := ""
	if in.RolPreferido != nil {
		rolPreferido = *in.RolPreferido
	}
	reResolverRol := usuario != nil && (cargoCambiado || in.RolPreferido != nil)

	if crearCuenta || cambioUsername {
		excluir := ""
		if usuario != nil {
			excluir = usuario.ID
		}
		if err := g.aprovisionador.VerificarUsernameDisponible(g.usuarioRepo, *in.Username, excluir); err != nil {
			return nil, err
		}
	}

	// Username nuevo o password nuevo: credencial temporal fresca y la misma
	// entrega por correo que en la creación.
	var emitidas *CredencialesEmitidas
	if crearCuenta || cambioUsername || nuevoPassword {
		pw := ""
		if in.Password != nil {
			pw = *in.Password
		}
		if emitidas, err = g.emisor.Emitir(pw, in.ExpiracionHoras); err != nil {
			return nil, err
		}
	}

	err = g.tx.Run(ctx, func(
		personaRepo repository.PersonaRepository,
		usuarioRepo repository.UsuarioRepository,
		trabajadorRepo repository.TrabajadorRepository,
		rolRepo repository.RolRepository,
	) error {
		persona.UpdatedAt = now
		if err := personaRepo.Update(persona); err != nil {
			return err
		}

		if crearCuenta {
			rol, err := g.resolver.Resolver(rolRepo, trabajador.Cargo, rolPreferido)
			if err != nil {
				return err
			}
			if usuario, err = g.aprovisionador.Crear(usuarioRepo, trabajador, *in.Username, rol.ID, emitidas); err != nil {
				return err
			}
			trabajador.UsuarioID = usuario.ID
		} else if usuario != nil {
			if reResolverRol {
				rol, err := g.resolver.Resolver(rolRepo, trabajador.Cargo, rolPreferido)
				if err != nil {
					return err
				}
				usuario.RolID = rol.ID
			}
			if cambioUsername {
				usuario.Username = NormalizarUsername(*in.Username)
			}
			if emitidas != nil {
				usuario.Credencial = entity.CredencialTemporal{
					Hash:        emitidas.HashTemporal,
					Placeholder: emitidas.HashPlaceholder,
					ExpiraEn:    emitidas.ExpiraEn,
				}
				usuario.RequiereCambioPassword = true
				usuario.EntregaPendiente = true
				usuario.UltimoErrorEnvio = ""
			}
			usuario.UpdatedAt = now
			if err := usuarioRepo.Update(usuario); err != nil {
				return err
			}
		}

		trabajador.UpdatedAt = now
		return trabajadorRepo.Update(trabajador)
	})
	if err != nil {
		return nil, err
	}

	g.auditoria.Record(&entity.EventoAuditoria{
		ActorID:     actorID,
		Accion:      entity.AccionActualizarTrabajador,
		Descripcion: fmt.Sprintf("Trabajador %s actualizado", trabajador.Codigo),
		Tabla:       "trabajadores",
	})

	out := &dto.TrabajadorConCredenciales{Trabajador: *respuestaTrabajador(trabajador, persona, usuario)}
	if usuario != nil && emitidas != nil {
		out.Credenciales = g.entregarCredenciales(ctx, usuario, persona, emitidas, "")
	}
	return out, nil
}

// ResetCredenciales reemplaza ambos hashes y la expiración de una cuenta con
// un password temporal aleatorio nuevo. El envío por correo es opcional.
func (g *GestorTrabajadores) ResetCredenciales(ctx context.Context, usuarioID string, in dto.ResetCredencialesRequest, actorID string) (*dto.ResetCredencialesResponse, error) {
	usuario, err := g.usuarioRepo.GetByID(usuarioID)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, fmt.Errorf("%w: usuario %s", domain.ErrNotFound, usuarioID)
	}
	if !usuario.Estatus {
		return nil, fmt.Errorf("%w: la cuenta %s está eliminada", domain.ErrConflicto, usuario.Username)
	}
	persona, err := g.personaRepo.GetByID(usuario.PersonaID)
	if err != nil {
		return nil, err
	}

	emitidas, err := g.emisor.Emitir("", in.ExpiracionHoras)
	if err != nil {
		return nil, err
	}

	err = g.tx.Run(ctx, func(
		_ repository.PersonaRepository,
		usuarioRepo repository.UsuarioRepository,
		_ repository.TrabajadorRepository,
		_ repository.RolRepository,
	) error {
		usuario.Credencial = entity.CredencialTemporal{
			Hash:        emitidas.HashTemporal,
			Placeholder: emitidas.HashPlaceholder,
			ExpiraEn:    emitidas.ExpiraEn,
		}
		usuario.RequiereCambioPassword = true
		usuario.EntregaPendiente = true
		usuario.UltimoErrorEnvio = ""
		usuario.UpdatedAt = g.ahora()
		return usuarioRepo.Update(usuario)
	})
	if err != nil {
		return nil, err
	}

	g.auditoria.Record(&entity.EventoAuditoria{
		ActorID:     actorID,
		Accion:      entity.AccionResetCredenciales,
		Descripcion: fmt.Sprintf("Credenciales de %s reseteadas", usuario.Username),
		Tabla:       "usuarios",
	})

	out := &dto.ResetCredencialesResponse{UsuarioID: usuario.ID}
	if in.EnviarEmail {
		if persona == nil || persona.Email == "" {
			out.Entrega = &dto.CredencialesEntrega{Enviadas: false, Error: "la persona no tiene email registrado"}
		} else {
			out.Entrega = g.entregarCredenciales(ctx, usuario, persona, emitidas, "")
		}
	}
	return out, nil
}

// EnviarCredenciales reenvío manual: emite un password temporal fresco y lo
// envía al correo del trabajador. No hay reintento automático en ningún punto;
// este comando es el único camino de reintento.
func (g *GestorTrabajadores) EnviarCredenciales(ctx context.Context, trabajadorID, mensajeExtra, actorID string) (*dto.CredencialesEntrega, error) {
	trabajador, err := g.trabajadorRepo.GetByID(trabajadorID)
	if err != nil {
		return nil, err
	}
	if trabajador == nil {
		return nil, fmt.Errorf("%w: trabajador %s", domain.ErrNotFound, trabajadorID)
	}
	if !trabajador.TieneUsuario() {
		return nil, fmt.Errorf("%w: el trabajador %s no tiene cuenta", domain.ErrConflicto, trabajador.Codigo)
	}
	usuario, err := g.usuarioRepo.GetByID(trabajador.UsuarioID)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, fmt.Errorf("%w: cuenta del trabajador %s", domain.ErrNotFound, trabajador.Codigo)
	}
	if !usuario.PuedeAutenticar() {
		return nil, fmt.Errorf("%w: la cuenta %s está deshabilitada", domain.ErrConflicto, usuario.Username)
	}
	persona, err := g.personaRepo.GetByID(usuario.PersonaID)
	if err != nil {
		return nil, err
	}
	if persona == nil || persona.Email == "" {
		return nil, fmt.Errorf("%w: el trabajador %s no tiene email registrado", domain.ErrValidacion, trabajador.Codigo)
	}

	emitidas, err := g.emisor.Emitir("", 0)
	if err != nil {
		return nil, err
	}

	err = g.tx.Run(ctx, func(
		_ repository.PersonaRepository,
		usuarioRepo repository.UsuarioRepository,
		_ repository.TrabajadorRepository,
		_ repository.RolRepository,
	) error {
		usuario.Credencial = entity.CredencialTemporal{
			Hash:        emitidas.HashTemporal,
			Placeholder: emitidas.HashPlaceholder,
			ExpiraEn:    emitidas.ExpiraEn,
		}
		usuario.RequiereCambioPassword = true
		usuario.EntregaPendiente = true
		usuario.UltimoErrorEnvio = ""
		usuario.UpdatedAt = g.ahora()
		return usuarioRepo.Update(usuario)
	})
	if err != nil {
		return nil, err
	}

	g.auditoria.Record(&entity.EventoAuditoria{
		ActorID:     actorID,
		Accion:      entity.AccionEnviarCredenciales,
		Descripcion: fmt.Sprintf("Credenciales reenviadas a %s (%s)", usuario.Username, trabajador.Codigo),
		Tabla:       "usuarios",
	})

	return g.entregarCredenciales(ctx, usuario, persona, emitidas, mensajeExtra), nil
}

// Obtener lee un trabajador con sus datos de persona y username.
func (g *GestorTrabajadores) Obtener(id string) (*dto.TrabajadorResponse, error) {
	trabajador, err := g.trabajadorRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if trabajador == nil {
		return nil, fmt.Errorf("%w: trabajador %s", domain.ErrNotFound, id)
	}
	return g.armarRespuesta(trabajador)
}

// Listar trabajadores paginados.
func (g *GestorTrabajadores) Listar(limit, offset int) ([]*dto.TrabajadorResponse, error) {
	trabajadores, err := g.trabajadorRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.TrabajadorResponse, 0, len(trabajadores))
	for _, t := range trabajadores {
		resp, err := g.armarRespuesta(t)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

func (g *GestorTrabajadores) armarRespuesta(trabajador *entity.Trabajador) (*dto.TrabajadorResponse, error) {
	persona, err := g.personaRepo.GetByID(trabajador.PersonaID)
	if err != nil {
		return nil, err
	}
	var usuario *entity.Usuario
	if trabajador.TieneUsuario() {
		if usuario, err = g.usuarioRepo.GetByID(trabajador.UsuarioID); err != nil {
			return nil, err
		}
	}
	return respuestaTrabajador(trabajador, persona, usuario), nil
}

// entregarCredenciales intento de envío post-commit. El fallo se degrada a
// {enviadas:false, error} y se anota en la cuenta; el éxito limpia la entrega
// pendiente. El bookkeeping usa el repo del pool: la transacción ya cerró.
func (g *GestorTrabajadores) entregarCredenciales(ctx context.Context, usuario *entity.Usuario, persona *entity.Persona, emitidas *CredencialesEmitidas, mensajeExtra string) *dto.CredencialesEntrega {
	html, err := cuerpoCredenciales(persona.NombreCompleto(), usuario.Username, emitidas.PasswordPlano, emitidas.ExpiraEn, mensajeExtra)
	if err == nil {
		err = g.mailer.Send(ctx, persona.Email, AsuntoCredenciales, html)
	}

	now := g.ahora()
	usuario.UltimoEnvioEn = &now
	entrega := &dto.CredencialesEntrega{Enviadas: err == nil}
	if err != nil {
		entrega.Error = err.Error()
		usuario.UltimoErrorEnvio = err.Error()
		g.log.Warn().Err(err).Str("usuario", usuario.Username).Msg("entrega de credenciales falló")
	} else {
		usuario.EntregaPendiente = false
		usuario.UltimoErrorEnvio = ""
	}
	usuario.UpdatedAt = now
	if uerr := g.usuarioRepo.Update(usuario); uerr != nil {
		g.log.Warn().Err(uerr).Str("usuario", usuario.Username).Msg("no se pudo anotar el resultado de la entrega")
	}
	return entrega
}

// siguienteCodigo EMP-NNNN: sufijo más alto existente + 1, cero-padded a 4.
func siguienteCodigo(ultimo *entity.Trabajador) string {
	n := 0
	if ultimo != nil {
		if v, err := strconv.Atoi(strings.TrimPrefix(ultimo.Codigo, prefijoCodigo)); err == nil {
			n = v
		}
	}
	return fmt.Sprintf("%s%04d", prefijoCodigo, n+1)
}

func respuestaTrabajador(t *entity.Trabajador, p *entity.Persona, u *entity.Usuario) *dto.TrabajadorResponse {
	resp := &dto.TrabajadorResponse{
		ID:               t.ID,
		Codigo:           t.Codigo,
		Cargo:            t.Cargo,
		Especialidad:     t.Especialidad,
		NivelExperiencia: t.NivelExperiencia,
		FechaIngreso:     t.FechaIngreso,
		SalarioMensual:   t.SalarioMensual,
		Estado:           t.EstadoActual(),
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
	if p != nil {
		resp.Nombres = p.Nombres
		resp.Apellidos = p.Apellidos
		resp.TipoDocumento = p.TipoDocumento
		resp.NumeroDocumento = p.NumeroDocumento
		resp.Email = p.Email
		resp.Telefono = p.Telefono
	}
	if u != nil {
		resp.Username = u.Username
	}
	return resp
}
