package identidad

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/taller-pro/internal/domain"
)

// Límites de vigencia de un password temporal.
const (
	MinExpiracionHoras = 1
	MaxExpiracionHoras = 336 // 14 días
)

// Longitudes mínimas de los secretos generados.
const (
	largoTemporal    = 12
	largoPlaceholder = 24
)

// Alfabeto de generación: alfanumérico sin caracteres ambiguos (0/O, 1/l/I)
// para evitar problemas de transcripción en la entrega por correo.
const alfabetoPassword = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnpqrstuvwxyz23456789"

// CredencialesEmitidas el par de secretos de una emisión: el temporal en claro
// (solo para entrega inmediata) con su hash y expiración, más el hash del
// relleno que ocupa el slot permanente. El relleno en claro se descarta.
type CredencialesEmitidas struct {
	PasswordPlano   string
	HashTemporal    string
	HashPlaceholder string
	ExpiraEn        time.Time
}

// EmisorCredenciales genera passwords temporales y su relleno permanente.
type EmisorCredenciales struct {
	horasPorDefecto int
	ahora           func() time.Time
}

// NewEmisorCredenciales construye el emisor. horasPorDefecto se aplica cuando
// el caller pasa cero.
func NewEmisorCredenciales(horasPorDefecto int) *EmisorCredenciales {
	if horasPorDefecto <= 0 {
		horasPorDefecto = 72
	}
	return &EmisorCredenciales{horasPorDefecto: horasPorDefecto, ahora: time.Now}
}

// Emitir genera el par temporal + placeholder. Si passwordExplicito no es
// vacío se usa como secreto temporal; si no, se genera uno aleatorio de
// origen criptográfico. Una reemisión siempre produce hashes nuevos.
func (e *EmisorCredenciales) Emitir(passwordExplicito string, horas int) (*CredencialesEmitidas, error) {
	if horas == 0 {
		horas = e.horasPorDefecto
	}
	if horas < MinExpiracionHoras || horas > MaxExpiracionHoras {
		return nil, fmt.Errorf("%w: expiración de %d horas fuera de rango [%d, %d]",
			domain.ErrValidacion, horas, MinExpiracionHoras, MaxExpiracionHoras)
	}

	temporal := passwordExplicito
	if temporal == "" {
		generado, err := generarAlfanumerico(largoTemporal)
		if err != nil {
			return nil, err
		}
		temporal = generado
	}

	// El placeholder es independiente del temporal: no puede reconstruirse
	// desde él y garantiza que el slot permanente nunca queda vacío ni
	// adivinable mientras la temporal está pendiente.
	placeholder, err := generarAlfanumerico(largoPlaceholder)
	if err != nil {
		return nil, err
	}

	hashTemporal, err := bcrypt.GenerateFromPassword([]byte(temporal), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashear password temporal: %w", err)
	}
	hashPlaceholder, err := bcrypt.GenerateFromPassword([]byte(placeholder), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashear placeholder: %w", err)
	}

	return &CredencialesEmitidas{
		PasswordPlano:   temporal,
		HashTemporal:    string(hashTemporal),
		HashPlaceholder: string(hashPlaceholder),
		ExpiraEn:        e.ahora().Add(time.Duration(horas) * time.Hour),
	}, nil
}

// generarAlfanumerico n caracteres del alfabeto seguro usando crypto/rand.
func generarAlfanumerico(n int) (string, error) {
	max := big.NewInt(int64(len(alfabetoPassword)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generar password: %w", err)
		}
		b[i] = alfabetoPassword[idx.Int64()]
	}
	return string(b), nil
}
