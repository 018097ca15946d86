package identidad

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/taller-pro/internal/domain/entity"
	"github.com/tu-usuario/taller-pro/internal/domain/repository"
	"github.com/tu-usuario/taller-pro/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repos en memoria. Replican el contrato de los repos reales: nil, nil cuando
// no hay fila, y copias defensivas para que mutar una entidad devuelta no
// altere lo "persistido" hasta el siguiente Update.
// ──────────────────────────────────────────────────────────────────────────────

type memPersonas struct {
	porID map[string]entity.Persona
}

func newMemPersonas() *memPersonas {
	return &memPersonas{porID: make(map[string]entity.Persona)}
}

func (m *memPersonas) Create(p *entity.Persona) error {
	m.porID[p.ID] = *p
	return nil
}

func (m *memPersonas) Update(p *entity.Persona) error {
	m.porID[p.ID] = *p
	return nil
}

func (m *memPersonas) GetByID(id string) (*entity.Persona, error) {
	if p, ok := m.porID[id]; ok {
		copia := p
		return &copia, nil
	}
	return nil, nil
}

func (m *memPersonas) GetByDocumento(numero string) (*entity.Persona, error) {
	for _, p := range m.porID {
		if p.NumeroDocumento == numero {
			copia := p
			return &copia, nil
		}
	}
	return nil, nil
}

type memRoles struct {
	porID map[string]entity.Rol
}

func newMemRoles(nombres ...string) *memRoles {
	m := &memRoles{porID: make(map[string]entity.Rol)}
	for _, nombre := range nombres {
		id := uuid.New().String()
		m.porID[id] = entity.Rol{ID: id, Nombre: nombre}
	}
	return m
}

func (m *memRoles) GetByID(id string) (*entity.Rol, error) {
	if r, ok := m.porID[id]; ok {
		copia := r
		return &copia, nil
	}
	return nil, nil
}

func (m *memRoles) GetByNombre(nombre string) (*entity.Rol, error) {
	for _, r := range m.porID {
		if r.Nombre == nombre {
			copia := r
			return &copia, nil
		}
	}
	return nil, nil
}

func (m *memRoles) List() ([]*entity.Rol, error) {
	out := make([]*entity.Rol, 0, len(m.porID))
	for _, r := range m.porID {
		copia := r
		out = append(out, &copia)
	}
	return out, nil
}

type memTrabajadores struct {
	porID map[string]entity.Trabajador
}

func newMemTrabajadores() *memTrabajadores {
	return &memTrabajadores{porID: make(map[string]entity.Trabajador)}
}

func (m *memTrabajadores) Create(t *entity.Trabajador) error {
	m.porID[t.ID] = *t
	return nil
}

func (m *memTrabajadores) Update(t *entity.Trabajador) error {
	m.porID[t.ID] = *t
	return nil
}

func (m *memTrabajadores) GetByID(id string) (*entity.Trabajador, error) {
	if t, ok := m.porID[id]; ok {
		copia := t
		return &copia, nil
	}
	return nil, nil
}

func (m *memTrabajadores) GetUltimo() (*entity.Trabajador, error) {
	var ultimo *entity.Trabajador
	for _, t := range m.porID {
		if ultimo == nil || t.Codigo > ultimo.Codigo {
			copia := t
			ultimo = &copia
		}
	}
	return ultimo, nil
}

func (m *memTrabajadores) List(limit, offset int) ([]*entity.Trabajador, error) {
	out := make([]*entity.Trabajador, 0, len(m.porID))
	for _, t := range m.porID {
		copia := t
		out = append(out, &copia)
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

type memUsuarios struct {
	porID map[string]entity.Usuario
}

func newMemUsuarios() *memUsuarios {
	return &memUsuarios{porID: make(map[string]entity.Usuario)}
}

func (m *memUsuarios) Create(u *entity.Usuario) error {
	m.porID[u.ID] = *u
	return nil
}

func (m *memUsuarios) Update(u *entity.Usuario) error {
	m.porID[u.ID] = *u
	return nil
}

func (m *memUsuarios) GetByID(id string) (*entity.Usuario, error) {
	if u, ok := m.porID[id]; ok {
		copia := u
		return &copia, nil
	}
	return nil, nil
}

func (m *memUsuarios) GetByUsername(username string) (*entity.Usuario, error) {
	for _, u := range m.porID {
		if u.Username == username {
			copia := u
			return &copia, nil
		}
	}
	return nil, nil
}

func (m *memUsuarios) GetByTrabajador(trabajadorID string) (*entity.Usuario, error) {
	for _, u := range m.porID {
		if u.TrabajadorID == trabajadorID {
			copia := u
			return &copia, nil
		}
	}
	return nil, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// TxRunner, Mailer y AuditLogger de prueba
// ──────────────────────────────────────────────────────────────────────────────

// memTx ejecuta fn sobre los mismos repos en memoria. Si fn falla, restaura
// el snapshot previo para emular el rollback de la transacción real.
type memTx struct {
	personas     *memPersonas
	usuarios     *memUsuarios
	trabajadores *memTrabajadores
	roles        *memRoles
}

func (tx *memTx) Run(_ context.Context, fn func(
	repository.PersonaRepository,
	repository.UsuarioRepository,
	repository.TrabajadorRepository,
	repository.RolRepository,
) error) error {
	snapPersonas := clonar(tx.personas.porID)
	snapUsuarios := clonar(tx.usuarios.porID)
	snapTrabajadores := clonar(tx.trabajadores.porID)

	if err := fn(tx.personas, tx.usuarios, tx.trabajadores, tx.roles); err != nil {
		tx.personas.porID = snapPersonas
		tx.usuarios.porID = snapUsuarios
		tx.trabajadores.porID = snapTrabajadores
		return err
	}
	return nil
}

func clonar[V any](src map[string]V) map[string]V {
	dst := make(map[string]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// fakeMailer registra los envíos y puede forzarse a fallar.
type fakeMailer struct {
	falla    bool
	enviados []struct{ To, Subject, HTML string }
}

func (f *fakeMailer) Send(_ context.Context, to, subject, html string) error {
	if f.falla {
		return errors.New("smtp: conexión rechazada")
	}
	f.enviados = append(f.enviados, struct{ To, Subject, HTML string }{to, subject, html})
	return nil
}

// fakeAuditoria acumula los eventos registrados.
type fakeAuditoria struct {
	eventos []entity.EventoAuditoria
}

func (f *fakeAuditoria) Record(e *entity.EventoAuditoria) {
	f.eventos = append(f.eventos, *e)
}

func (f *fakeAuditoria) acciones() []string {
	out := make([]string, len(f.eventos))
	for i, e := range f.eventos {
		out[i] = e.Accion
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Entorno de pruebas completo
// ──────────────────────────────────────────────────────────────────────────────

type entorno struct {
	personas     *memPersonas
	usuarios     *memUsuarios
	trabajadores *memTrabajadores
	roles        *memRoles
	mailer       *fakeMailer
	auditoria    *fakeAuditoria
	gestor       *GestorTrabajadores
	coord        *CoordinadorEstados
}

// nuevoEntorno arma un gestor y un coordinador contra repos en memoria, con
// el catálogo de roles completo ya sembrado y reloj fijo.
func nuevoEntorno() *entorno {
	e := &entorno{
		personas:     newMemPersonas(),
		usuarios:     newMemUsuarios(),
		trabajadores: newMemTrabajadores(),
		roles: newMemRoles(
			entity.RolAdministrador,
			entity.RolJefeTaller,
			entity.RolMecanico,
			entity.RolRecepcionista,
		),
		mailer:    &fakeMailer{},
		auditoria: &fakeAuditoria{},
	}
	tx := &memTx{
		personas:     e.personas,
		usuarios:     e.usuarios,
		trabajadores: e.trabajadores,
		roles:        e.roles,
	}
	e.gestor = NewGestorTrabajadores(
		tx, e.personas, e.usuarios, e.trabajadores,
		NewRolResolver(TablaSinonimosPorDefecto(), FallbacksPorDefecto()),
		NewEmisorCredenciales(72),
		NewAprovisionadorCuentas(),
		e.mailer, e.auditoria, logger.Nop(),
	)
	e.gestor.ahora = relojFijo
	e.coord = NewCoordinadorEstados(tx, e.trabajadores, e.auditoria)
	e.coord.ahora = relojFijo
	return e
}

func relojFijo() time.Time {
	return time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
}
