// seed inserta el catálogo base de roles del taller. Es idempotente:
// los roles ya existentes se dejan intactos (ON CONFLICT DO NOTHING)
// para no perder ajustes hechos en producción.
//
// Uso: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/tu-usuario/taller-pro/internal/domain/entity"
	"github.com/tu-usuario/taller-pro/internal/infrastructure/postgres"
	"github.com/tu-usuario/taller-pro/pkg/config"
)

var roles = []struct {
	nombre      string
	descripcion string
}{
	{entity.RolAdministrador, "Acceso total al sistema y a la gestión de cuentas"},
	{entity.RolJefeTaller, "Supervisión de trabajos y asignación de mecánicos"},
	{entity.RolMecanico, "Registro y ejecución de órdenes de reparación"},
	{entity.RolRecepcionista, "Atención al cliente y recepción de vehículos"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	insertados := 0
	for _, r := range roles {
		tag, err := pool.Exec(ctx, `
			INSERT INTO roles (id, nombre, descripcion)
			VALUES ($1, $2, $3)
			ON CONFLICT (nombre) DO NOTHING`,
			uuid.NewString(), r.nombre, r.descripcion,
		)
		if err != nil {
			fmt.Fprintf(os.Stderr, "insertar rol %q: %v\n", r.nombre, err)
			os.Exit(1)
		}
		insertados += int(tag.RowsAffected())
	}

	fmt.Printf("Catálogo de roles: %d insertados, %d ya existían\n", insertados, len(roles)-insertados)
}
