package identidad

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/tu-usuario/taller-pro/internal/domain"
	"github.com/tu-usuario/taller-pro/internal/domain/entity"
	"github.com/tu-usuario/taller-pro/internal/domain/repository"
)

// TablaSinonimos mapea variantes de cargo (minúsculas, sin acentos) al nombre
// canónico de un rol del catálogo. Se inyecta para que el mapeo sea testeable
// y reemplazable sin tocar código.
type TablaSinonimos map[string]string

// TablaSinonimosPorDefecto el mapeo cargo → rol del taller.
func TablaSinonimosPorDefecto() TablaSinonimos {
	return TablaSinonimos{
		"mecanico":         entity.RolMecanico,
		"tecnico":          entity.RolMecanico,
		"tecnico mecanico": entity.RolMecanico,
		"electricista":     entity.RolMecanico,
		"supervisor":       entity.RolJefeTaller,
		"jefe de taller":   entity.RolJefeTaller,
		"recepcionista":    entity.RolRecepcionista,
		"cajero":           entity.RolRecepcionista,
		"asistente":        entity.RolRecepcionista,
		"administrador":    entity.RolAdministrador,
		"gerente":          entity.RolAdministrador,
	}
}

// FallbacksPorDefecto roles a intentar, en orden, cuando ni el cargo ni sus
// sinónimos existen en el catálogo.
func FallbacksPorDefecto() []string {
	return []string{entity.RolMecanico, entity.RolRecepcionista}
}

var quitarAcentos = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizarCargo trim + minúsculas + sin marcas diacríticas, para que
// "Mecánico", "mecanico" y "MECANICO" caigan en la misma entrada.
func normalizarCargo(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	plano, _, err := transform.String(quitarAcentos, s)
	if err != nil {
		return s
	}
	return plano
}

// RolResolver resuelve el rol de acceso a partir del cargo organizacional y
// una preferencia explícita opcional.
type RolResolver struct {
	sinonimos TablaSinonimos
	fallbacks []string
}

// NewRolResolver construye el resolver con la tabla de sinónimos y la cadena
// de fallback inyectadas.
func NewRolResolver(sinonimos TablaSinonimos, fallbacks []string) *RolResolver {
	return &RolResolver{sinonimos: sinonimos, fallbacks: fallbacks}
}

// Resolver aplica la cadena de resolución:
//  1. Preferencia explícita no vacía: debe existir por nombre exacto, si no ErrNotFound.
//     Una preferencia explícita nunca se sustituye en silencio.
//  2. Cargo normalizado contra la tabla de sinónimos; si el nombre mapeado no
//     está en el catálogo, reintento con el cargo crudo (solo trim).
//  3. Lista ordenada de roles por defecto: el primero que exista.
//  4. Si ningún fallback existe, ErrConfiguracion: al catálogo le falta seed.
//
// Recibe el repo como parámetro para poder resolver dentro de una transacción.
func (r *RolResolver) Resolver(rolRepo repository.RolRepository, cargo, preferido string) (*entity.Rol, error) {
	if strings.TrimSpace(preferido) != "" {
		rol, err := rolRepo.GetByNombre(strings.TrimSpace(preferido))
		if err != nil {
			return nil, err
		}
		if rol == nil {
			return nil, fmt.Errorf("%w: rol preferido %q no existe", domain.ErrNotFound, preferido)
		}
		return rol, nil
	}

	if canonico, ok := r.sinonimos[normalizarCargo(cargo)]; ok {
		rol, err := rolRepo.GetByNombre(canonico)
		if err != nil {
			return nil, err
		}
		if rol != nil {
			return rol, nil
		}
	}

	// El sinónimo no resolvió: probar el cargo crudo como nombre de rol.
	if crudo := strings.TrimSpace(cargo); crudo != "" {
		rol, err := rolRepo.GetByNombre(crudo)
		if err != nil {
			return nil, err
		}
		if rol != nil {
			return rol, nil
		}
	}

	for _, nombre := range r.fallbacks {
		rol, err := rolRepo.GetByNombre(nombre)
		if err != nil {
			return nil, err
		}
		if rol != nil {
			return rol, nil
		}
	}

	return nil, fmt.Errorf("%w: el catálogo de roles no tiene ninguno de los roles por defecto", domain.ErrConfiguracion)
}
