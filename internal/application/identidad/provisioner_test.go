package identidad

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/taller-pro/internal/domain"
	"github.com/tu-usuario/taller-pro/internal/domain/entity"
)

func trabajadorDePrueba() *entity.Trabajador {
	return &entity.Trabajador{
		ID:        uuid.New().String(),
		PersonaID: uuid.New().String(),
		Codigo:    "EMP-0001",
		Cargo:     "Mecánico",
		Activo:    true,
	}
}

func emitidasDePrueba(t *testing.T) *CredencialesEmitidas {
	t.Helper()
	emitidas, err := NewEmisorCredenciales(72).Emitir("", 0)
	require.NoError(t, err)
	return emitidas
}

func TestNormalizarUsername(t *testing.T) {
	assert.Equal(t, "juan.perez", NormalizarUsername("  Juan.Perez  "))
	assert.Equal(t, "maría.lópez", NormalizarUsername("MARÍA.LÓPEZ"))
}

func TestCrear_CuentaNaceConCambioForzadoYEntregaPendiente(t *testing.T) {
	usuarios := newMemUsuarios()
	a := NewAprovisionadorCuentas()
	a.ahora = relojFijo
	trabajador := trabajadorDePrueba()
	emitidas := emitidasDePrueba(t)

	usuario, err := a.Crear(usuarios, trabajador, "Juan.Perez", "rol-1", emitidas)
	require.NoError(t, err)

	assert.Equal(t, "juan.perez", usuario.Username, "el username se guarda normalizado")
	assert.Equal(t, trabajador.ID, usuario.TrabajadorID)
	assert.Equal(t, trabajador.PersonaID, usuario.PersonaID)
	assert.True(t, usuario.RequiereCambioPassword)
	assert.True(t, usuario.Estado)
	assert.True(t, usuario.Estatus)
	assert.True(t, usuario.EntregaPendiente)

	cred, ok := usuario.Credencial.(entity.CredencialTemporal)
	require.True(t, ok, "la cuenta nace con credencial temporal")
	assert.Equal(t, emitidas.HashTemporal, cred.Hash)
	assert.Equal(t, emitidas.HashPlaceholder, cred.Placeholder)
}

func TestCrear_UsernameDuplicadoCaseInsensitive(t *testing.T) {
	usuarios := newMemUsuarios()
	a := NewAprovisionadorCuentas()

	_, err := a.Crear(usuarios, trabajadorDePrueba(), "juan.perez", "rol-1", emitidasDePrueba(t))
	require.NoError(t, err)

	// Mismo username con otra capitalización: colisión.
	_, err = a.Crear(usuarios, trabajadorDePrueba(), "Juan.Perez", "rol-1", emitidasDePrueba(t))
	assert.ErrorIs(t, err, domain.ErrUsernameDuplicado)
}

func TestVerificarUsernameDisponible_ExcluyeLaPropiaCuenta(t *testing.T) {
	usuarios := newMemUsuarios()
	a := NewAprovisionadorCuentas()

	usuario, err := a.Crear(usuarios, trabajadorDePrueba(), "juan.perez", "rol-1", emitidasDePrueba(t))
	require.NoError(t, err)

	// La propia cuenta no colisiona consigo misma; otra sí.
	assert.NoError(t, a.VerificarUsernameDisponible(usuarios, "juan.perez", usuario.ID))
	assert.ErrorIs(t, a.VerificarUsernameDisponible(usuarios, "juan.perez", ""), domain.ErrUsernameDuplicado)
}

func TestCrear_UnTrabajadorUnaCuenta(t *testing.T) {
	usuarios := newMemUsuarios()
	a := NewAprovisionadorCuentas()
	trabajador := trabajadorDePrueba()

	usuario, err := a.Crear(usuarios, trabajador, "juan.perez", "rol-1", emitidasDePrueba(t))
	require.NoError(t, err)
	trabajador.UsuarioID = usuario.ID

	_, err = a.Crear(usuarios, trabajador, "otro.username", "rol-1", emitidasDePrueba(t))
	assert.ErrorIs(t, err, domain.ErrConflicto)
}

func TestCrear_RechazaTrabajadorInactivoOEliminado(t *testing.T) {
	usuarios := newMemUsuarios()
	a := NewAprovisionadorCuentas()

	inactivo := trabajadorDePrueba()
	inactivo.Activo = false
	_, err := a.Crear(usuarios, inactivo, "user.inactivo", "rol-1", emitidasDePrueba(t))
	assert.ErrorIs(t, err, domain.ErrConflicto)

	eliminado := trabajadorDePrueba()
	eliminado.Activo = false
	eliminado.Eliminado = true
	_, err = a.Crear(usuarios, eliminado, "user.eliminado", "rol-1", emitidasDePrueba(t))
	assert.ErrorIs(t, err, domain.ErrConflicto)
}
