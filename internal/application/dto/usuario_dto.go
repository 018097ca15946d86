package dto

// ResetCredencialesRequest emite un nuevo password temporal para una cuenta.
// ExpiracionHoras en cero usa el valor por defecto de configuración.
type ResetCredencialesRequest struct {
	EnviarEmail     bool `json:"enviar_email"`
	ExpiracionHoras int  `json:"expiracion_horas" validate:"omitempty,min=1,max=336"`
}

// ResetCredencialesResponse el reset ya quedó confirmado; Entrega reporta el correo.
type ResetCredencialesResponse struct {
	UsuarioID string               `json:"usuario_id"`
	Entrega   *CredencialesEntrega `json:"entrega,omitempty"`
}
