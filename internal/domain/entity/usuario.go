package entity

import "time"

// Usuario cuenta de acceso al sistema. Referencia débil hacia Trabajador:
// borrar el vínculo desde el trabajador no borra la cuenta ni al revés;
// toda cascada pasa por el coordinador de estados.
type Usuario struct {
	ID           string
	PersonaID    string
	TrabajadorID string // vacío si la cuenta no está ligada a un trabajador
	RolID        string
	Username     string // normalizado: trim + NFC + minúsculas, único
	Credencial   Credencial

	RequiereCambioPassword bool

	Estado  bool // puede autenticarse
	Estatus bool // false = eliminado lógicamente

	BloqueadoEn   *time.Time
	MotivoBloqueo string

	// Bookkeeping de entrega de credenciales por correo.
	EntregaPendiente bool
	UltimoEnvioEn    *time.Time
	UltimoErrorEnvio string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HashVerificable devuelve el hash contra el que comparar un password en el
// instante dado y si proviene de una credencial temporal vigente. Una temporal
// expirada deja como único hash el placeholder, que nadie conoce: la cuenta
// queda inutilizable hasta el próximo reset.
func (u *Usuario) HashVerificable(en time.Time) (hash string, temporal bool) {
	switch c := u.Credencial.(type) {
	case CredencialTemporal:
		if c.Vigente(en) {
			return c.Hash, true
		}
		return c.Placeholder, false
	case CredencialPermanente:
		return c.Hash, false
	default:
		return "", false
	}
}

// PuedeAutenticar la cuenta está habilitada y no eliminada.
func (u *Usuario) PuedeAutenticar() bool {
	return u.Estado && u.Estatus
}
