package dto

// LoginRequest entrada para login (username + password).
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT y flags de la cuenta.
type LoginResponse struct {
	Token                  string `json:"token"`
	UsuarioID              string `json:"usuario_id"`
	Username               string `json:"username"`
	Rol                    string `json:"rol"`
	RequiereCambioPassword bool   `json:"requiere_cambio_password"`
}

// CambiarPasswordRequest consume la credencial vigente y fija una permanente.
type CambiarPasswordRequest struct {
	Username       string `json:"username" validate:"required"`
	PasswordActual string `json:"password_actual" validate:"required"`
	PasswordNuevo  string `json:"password_nuevo" validate:"required,min=8"`
}
