package domain

import "errors"

// Errores de dominio (sin dependencias externas). Se envuelven con
// fmt.Errorf("%w: detalle") para agregar contexto sin perder el sentinel.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrValidacion         = errors.New("entrada inválida")
	ErrConflicto          = errors.New("conflicto con el estado actual")
	ErrEstadoInvalido     = errors.New("transición de estado ilegal")
	ErrNoAutorizado       = errors.New("no autorizado")
	ErrProhibido          = errors.New("acceso denegado")
	ErrEntrega            = errors.New("fallo al entregar credenciales")
	ErrConfiguracion      = errors.New("configuración del sistema incompleta")
	ErrDocumentoDuplicado = errors.New("el número de documento ya está registrado")
	ErrUsernameDuplicado  = errors.New("el nombre de usuario ya está registrado")
)
