package identidad

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/tu-usuario/taller-pro/internal/domain"
	"github.com/tu-usuario/taller-pro/internal/domain/entity"
)

const edadMinima = 18

// Formatos fijos: celular peruano de 9 dígitos, DNI de 8 dígitos.
var (
	reTelefono = regexp.MustCompile(`^\d{9}$`)
	reDNI      = regexp.MustCompile(`^\d{8}$`)
	reEmail    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

func validarTelefono(telefono string) error {
	if telefono == "" {
		return nil
	}
	if !reTelefono.MatchString(telefono) {
		return fmt.Errorf("%w: el teléfono debe tener 9 dígitos", domain.ErrValidacion)
	}
	return nil
}

func validarDocumento(tipo, numero string) error {
	if strings.TrimSpace(numero) == "" {
		return fmt.Errorf("%w: número de documento requerido", domain.ErrValidacion)
	}
	if tipo == entity.DocumentoDNI && !reDNI.MatchString(numero) {
		return fmt.Errorf("%w: el DNI debe tener 8 dígitos", domain.ErrValidacion)
	}
	return nil
}

func validarEmail(email string) error {
	if email == "" {
		return nil
	}
	if !reEmail.MatchString(email) {
		return fmt.Errorf("%w: email con formato inválido", domain.ErrValidacion)
	}
	return nil
}

func validarMayorDeEdad(nacimiento, en time.Time) error {
	p := entity.Persona{FechaNacimiento: nacimiento}
	if p.Edad(en) < edadMinima {
		return fmt.Errorf("%w: el trabajador debe ser mayor de %d años", domain.ErrValidacion, edadMinima)
	}
	return nil
}

// parseFecha fechas de entrada en formato YYYY-MM-DD.
func parseFecha(campo, valor string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", valor)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s debe tener formato YYYY-MM-DD", domain.ErrValidacion, campo)
	}
	return t, nil
}
