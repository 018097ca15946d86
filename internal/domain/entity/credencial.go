package entity

import "time"

// Credencial estado de autenticación de una cuenta. Exactamente un secreto es
// utilizable a la vez: mientras exista una credencial temporal no expirada,
// esa manda; el slot permanente guarda un relleno aleatorio irrecuperable.
type Credencial interface {
	esCredencial()
}

// CredencialPermanente password definitivo elegido por el usuario.
type CredencialPermanente struct {
	Hash string
}

// CredencialTemporal password de corta vida emitido en creación o reset.
// Placeholder ocupa el slot permanente mientras la temporal está pendiente:
// no se devuelve a nadie y no puede reconstruirse desde la temporal.
type CredencialTemporal struct {
	Hash        string
	Placeholder string
	ExpiraEn    time.Time
}

func (CredencialPermanente) esCredencial() {}
func (CredencialTemporal) esCredencial()   {}

// Vigente indica si la temporal aún puede usarse. La expiración se evalúa
// de forma perezosa en el momento de verificar; nada la borra proactivamente.
func (c CredencialTemporal) Vigente(en time.Time) bool {
	return en.Before(c.ExpiraEn)
}
