package identidad

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/tu-usuario/taller-pro/internal/domain"
	"github.com/tu-usuario/taller-pro/internal/domain/entity"
	"github.com/tu-usuario/taller-pro/internal/domain/repository"
)

// NormalizarUsername trim + NFC + minúsculas. Se aplica antes de cualquier
// chequeo de unicidad y antes de guardar: las colisiones son case-insensitive.
func NormalizarUsername(s string) string {
	return strings.ToLower(norm.NFC.String(strings.TrimSpace(s)))
}

// AprovisionadorCuentas crea cuentas de acceso para trabajadores manteniendo
// la invariante de una cuenta por trabajador.
type AprovisionadorCuentas struct {
	ahora func() time.Time
}

// NewAprovisionadorCuentas construye el aprovisionador.
func NewAprovisionadorCuentas() *AprovisionadorCuentas {
	return &AprovisionadorCuentas{ahora: time.Now}
}

// VerificarUsernameDisponible falla con ErrUsernameDuplicado si el username
// normalizado ya pertenece a otra cuenta. excluirID permite omitir la propia
// cuenta en actualizaciones.
func (a *AprovisionadorCuentas) VerificarUsernameDisponible(usuarioRepo repository.UsuarioRepository, username, excluirID string) error {
	existente, err := usuarioRepo.GetByUsername(NormalizarUsername(username))
	if err != nil {
		return err
	}
	if existente != nil && existente.ID != excluirID {
		return fmt.Errorf("%w: %q", domain.ErrUsernameDuplicado, username)
	}
	return nil
}

// Crear aprovisiona la cuenta de un trabajador con una credencial temporal.
// Precondiciones: el trabajador no tiene cuenta, está activo y no eliminado.
// La cuenta nace con cambio de password forzado y entrega pendiente.
func (a *AprovisionadorCuentas) Crear(
	usuarioRepo repository.UsuarioRepository,
	trabajador *entity.Trabajador,
	username, rolID string,
	emitidas *CredencialesEmitidas,
) (*entity.Usuario, error) {
	if trabajador.TieneUsuario() {
		return nil, fmt.Errorf("%w: el trabajador %s ya tiene una cuenta", domain.ErrConflicto, trabajador.Codigo)
	}
	if trabajador.Eliminado {
		return nil, fmt.Errorf("%w: el trabajador %s está eliminado", domain.ErrConflicto, trabajador.Codigo)
	}
	if !trabajador.Activo {
		return nil, fmt.Errorf("%w: el trabajador %s está inactivo", domain.ErrConflicto, trabajador.Codigo)
	}

	username = NormalizarUsername(username)
	if err := a.VerificarUsernameDisponible(usuarioRepo, username, ""); err != nil {
		return nil, err
	}

	now := a.ahora()
	usuario := &entity.Usuario{
		ID:           uuid.New().String(),
		PersonaID:    trabajador.PersonaID,
		TrabajadorID: trabajador.ID,
		RolID:        rolID,
		Username:     username,
		Credencial: entity.CredencialTemporal{
			Hash:        emitidas.HashTemporal,
			Placeholder: emitidas.HashPlaceholder,
			ExpiraEn:    emitidas.ExpiraEn,
		},
		RequiereCambioPassword: true,
		Estado:                 true,
		Estatus:                true,
		EntregaPendiente:       true,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	if err := usuarioRepo.Create(usuario); err != nil {
		return nil, err
	}
	return usuario, nil
}
