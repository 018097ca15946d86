package identidad

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/taller-pro/internal/domain"
	"github.com/tu-usuario/taller-pro/internal/domain/entity"
)

// altaConCuenta crea un trabajador con cuenta y devuelve sus IDs.
func altaConCuenta(t *testing.T, e *entorno) (trabajadorID, usuarioID string) {
	t.Helper()
	creado, err := e.gestor.CrearTrabajador(context.Background(), solicitudConCuenta(), actorPrueba)
	require.NoError(t, err)
	usuario, err := e.usuarios.GetByUsername("juan.perez")
	require.NoError(t, err)
	require.NotNil(t, usuario)
	return creado.Trabajador.ID, usuario.ID
}

// verificarInvariante eliminado implica inactivo, siempre.
func verificarInvariante(t *testing.T, e *entorno, trabajadorID string) {
	t.Helper()
	trabajador, err := e.trabajadores.GetByID(trabajadorID)
	require.NoError(t, err)
	require.NotNil(t, trabajador)
	if trabajador.Eliminado {
		assert.False(t, trabajador.Activo, "un trabajador eliminado jamás queda activo")
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// CambiarEstado
// ──────────────────────────────────────────────────────────────────────────────

func TestCambiarEstado_DeshabilitarCascadeaALaCuenta(t *testing.T) {
	e := nuevoEntorno()
	trabajadorID, usuarioID := altaConCuenta(t, e)

	inactivo := false
	trabajador, err := e.coord.CambiarEstado(context.Background(), trabajadorID, &inactivo, "Licencia médica", actorPrueba)
	require.NoError(t, err)
	assert.Equal(t, entity.EstadoInactivo, trabajador.EstadoActual())
	verificarInvariante(t, e, trabajadorID)

	usuario, err := e.usuarios.GetByID(usuarioID)
	require.NoError(t, err)
	assert.False(t, usuario.Estado, "la cuenta queda sin poder autenticar")
	assert.True(t, usuario.Estatus, "deshabilitar no es eliminar")
	require.NotNil(t, usuario.BloqueadoEn)
	assert.Equal(t, relojFijo(), *usuario.BloqueadoEn)
	assert.Equal(t, "Licencia médica", usuario.MotivoBloqueo)
	assert.False(t, usuario.EntregaPendiente, "un correo a una cuenta deshabilitada no sirve")

	assert.Contains(t, e.auditoria.acciones(), entity.AccionCambiarEstado)
}

func TestCambiarEstado_MotivoPorDefecto(t *testing.T) {
	e := nuevoEntorno()
	trabajadorID, usuarioID := altaConCuenta(t, e)

	inactivo := false
	_, err := e.coord.CambiarEstado(context.Background(), trabajadorID, &inactivo, "", actorPrueba)
	require.NoError(t, err)

	usuario, err := e.usuarios.GetByID(usuarioID)
	require.NoError(t, err)
	assert.Equal(t, motivoDeshabilitado, usuario.MotivoBloqueo)
}

func TestCambiarEstado_HabilitarLimpiaElBloqueo(t *testing.T) {
	e := nuevoEntorno()
	trabajadorID, usuarioID := altaConCuenta(t, e)

	inactivo := false
	_, err := e.coord.CambiarEstado(context.Background(), trabajadorID, &inactivo, "", actorPrueba)
	require.NoError(t, err)

	activo := true
	trabajador, err := e.coord.CambiarEstado(context.Background(), trabajadorID, &activo, "", actorPrueba)
	require.NoError(t, err)
	assert.Equal(t, entity.EstadoActivo, trabajador.EstadoActual())

	usuario, err := e.usuarios.GetByID(usuarioID)
	require.NoError(t, err)
	assert.True(t, usuario.Estado)
	assert.Nil(t, usuario.BloqueadoEn)
	assert.Empty(t, usuario.MotivoBloqueo)

	// Las credenciales guardadas no se tocaron al rehabilitar.
	_, esTemporal := usuario.Credencial.(entity.CredencialTemporal)
	assert.True(t, esTemporal)
}

func TestCambiarEstado_NilInvierteElEstado(t *testing.T) {
	e := nuevoEntorno()
	trabajadorID, _ := altaConCuenta(t, e)

	trabajador, err := e.coord.CambiarEstado(context.Background(), trabajadorID, nil, "", actorPrueba)
	require.NoError(t, err)
	assert.Equal(t, entity.EstadoInactivo, trabajador.EstadoActual())

	trabajador, err = e.coord.CambiarEstado(context.Background(), trabajadorID, nil, "", actorPrueba)
	require.NoError(t, err)
	assert.Equal(t, entity.EstadoActivo, trabajador.EstadoActual())
}

func TestCambiarEstado_IlegalDesdeEliminado(t *testing.T) {
	e := nuevoEntorno()
	trabajadorID, _ := altaConCuenta(t, e)

	_, err := e.coord.MarcarEliminado(context.Background(), trabajadorID, "", actorPrueba)
	require.NoError(t, err)

	activo := true
	_, err = e.coord.CambiarEstado(context.Background(), trabajadorID, &activo, "", actorPrueba)
	assert.ErrorIs(t, err, domain.ErrEstadoInvalido)
	_, err = e.coord.CambiarEstado(context.Background(), trabajadorID, nil, "", actorPrueba)
	assert.ErrorIs(t, err, domain.ErrEstadoInvalido)
}

func TestCambiarEstado_SinCuentaTransicionaSinCascada(t *testing.T) {
	e := nuevoEntorno()
	creado, err := e.gestor.CrearTrabajador(context.Background(), solicitudBase(), actorPrueba)
	require.NoError(t, err)

	inactivo := false
	trabajador, err := e.coord.CambiarEstado(context.Background(), creado.Trabajador.ID, &inactivo, "", actorPrueba)
	require.NoError(t, err)
	assert.Equal(t, entity.EstadoInactivo, trabajador.EstadoActual())
	assert.Empty(t, e.usuarios.porID)
}

// ──────────────────────────────────────────────────────────────────────────────
// MarcarEliminado
// ──────────────────────────────────────────────────────────────────────────────

func TestMarcarEliminado_CascadaCompleta(t *testing.T) {
	e := nuevoEntorno()
	trabajadorID, usuarioID := altaConCuenta(t, e)

	trabajador, err := e.coord.MarcarEliminado(context.Background(), trabajadorID, "Renuncia", actorPrueba)
	require.NoError(t, err)
	assert.Equal(t, entity.EstadoEliminado, trabajador.EstadoActual())
	verificarInvariante(t, e, trabajadorID)

	usuario, err := e.usuarios.GetByID(usuarioID)
	require.NoError(t, err)
	assert.False(t, usuario.Estado)
	assert.False(t, usuario.Estatus)
	assert.False(t, usuario.RequiereCambioPassword)
	assert.Equal(t, "Renuncia", usuario.MotivoBloqueo)
	require.NotNil(t, usuario.BloqueadoEn)

	// El material temporal se descartó: queda solo el placeholder, que nadie
	// conoce, en el slot permanente.
	cred, ok := usuario.Credencial.(entity.CredencialPermanente)
	require.True(t, ok, "la credencial temporal debe descartarse al eliminar")
	assert.NotEmpty(t, cred.Hash)

	assert.Contains(t, e.auditoria.acciones(), entity.AccionEliminarTrabajador)
}

func TestMarcarEliminado_YaEliminado(t *testing.T) {
	e := nuevoEntorno()
	trabajadorID, _ := altaConCuenta(t, e)

	_, err := e.coord.MarcarEliminado(context.Background(), trabajadorID, "", actorPrueba)
	require.NoError(t, err)

	_, err = e.coord.MarcarEliminado(context.Background(), trabajadorID, "", actorPrueba)
	assert.ErrorIs(t, err, domain.ErrEstadoInvalido)
}

func TestMarcarEliminado_NoExiste(t *testing.T) {
	e := nuevoEntorno()
	_, err := e.coord.MarcarEliminado(context.Background(), "no-existe", "", actorPrueba)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Restaurar
// ──────────────────────────────────────────────────────────────────────────────

func TestRestaurar_ComoActivo(t *testing.T) {
	e := nuevoEntorno()
	trabajadorID, usuarioID := altaConCuenta(t, e)

	_, err := e.coord.MarcarEliminado(context.Background(), trabajadorID, "", actorPrueba)
	require.NoError(t, err)

	trabajador, err := e.coord.Restaurar(context.Background(), trabajadorID, nil, actorPrueba)
	require.NoError(t, err)
	assert.Equal(t, entity.EstadoActivo, trabajador.EstadoActual(), "sin deseado explícito restaura como activo")
	verificarInvariante(t, e, trabajadorID)

	usuario, err := e.usuarios.GetByID(usuarioID)
	require.NoError(t, err)
	assert.True(t, usuario.Estatus, "la cuenta sale de la eliminación lógica")
	assert.True(t, usuario.Estado)
	assert.Nil(t, usuario.BloqueadoEn)
	assert.Empty(t, usuario.MotivoBloqueo)

	assert.Contains(t, e.auditoria.acciones(), entity.AccionRestaurarTrabajador)
}

func TestRestaurar_ComoInactivo(t *testing.T) {
	e := nuevoEntorno()
	trabajadorID, usuarioID := altaConCuenta(t, e)

	_, err := e.coord.MarcarEliminado(context.Background(), trabajadorID, "", actorPrueba)
	require.NoError(t, err)

	inactivo := false
	trabajador, err := e.coord.Restaurar(context.Background(), trabajadorID, &inactivo, actorPrueba)
	require.NoError(t, err)
	assert.Equal(t, entity.EstadoInactivo, trabajador.EstadoActual())
	verificarInvariante(t, e, trabajadorID)

	usuario, err := e.usuarios.GetByID(usuarioID)
	require.NoError(t, err)
	assert.True(t, usuario.Estatus)
	assert.False(t, usuario.Estado, "restaurado como inactivo sigue sin poder autenticar")
	require.NotNil(t, usuario.BloqueadoEn)
	assert.Equal(t, motivoRestauradoInactivo, usuario.MotivoBloqueo)
}

func TestRestaurar_SoloDesdeEliminado(t *testing.T) {
	e := nuevoEntorno()
	trabajadorID, _ := altaConCuenta(t, e)

	_, err := e.coord.Restaurar(context.Background(), trabajadorID, nil, actorPrueba)
	assert.ErrorIs(t, err, domain.ErrEstadoInvalido)
}

// El ciclo completo de transiciones preserva la invariante en cada paso.
func TestCicloDeVidaCompleto(t *testing.T) {
	e := nuevoEntorno()
	trabajadorID, _ := altaConCuenta(t, e)
	ctx := context.Background()

	inactivo := false
	_, err := e.coord.CambiarEstado(ctx, trabajadorID, &inactivo, "", actorPrueba)
	require.NoError(t, err)
	verificarInvariante(t, e, trabajadorID)

	activo := true
	_, err = e.coord.CambiarEstado(ctx, trabajadorID, &activo, "", actorPrueba)
	require.NoError(t, err)
	verificarInvariante(t, e, trabajadorID)

	_, err = e.coord.MarcarEliminado(ctx, trabajadorID, "", actorPrueba)
	require.NoError(t, err)
	verificarInvariante(t, e, trabajadorID)

	_, err = e.coord.Restaurar(ctx, trabajadorID, nil, actorPrueba)
	require.NoError(t, err)
	verificarInvariante(t, e, trabajadorID)

	trabajador, err := e.trabajadores.GetByID(trabajadorID)
	require.NoError(t, err)
	assert.Equal(t, entity.EstadoActivo, trabajador.EstadoActual())
}
