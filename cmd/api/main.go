package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/tu-usuario/taller-pro/internal/application/auth"
	"github.com/tu-usuario/taller-pro/internal/application/identidad"
	infraauditoria "github.com/tu-usuario/taller-pro/internal/infrastructure/auditoria"
	"github.com/tu-usuario/taller-pro/internal/infrastructure/email"
	"github.com/tu-usuario/taller-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/taller-pro/internal/interfaces/http"
	"github.com/tu-usuario/taller-pro/pkg/config"
	"github.com/tu-usuario/taller-pro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	personaRepo := postgres.NewPersonaRepository(pool)
	rolRepo := postgres.NewRolRepository(pool)
	trabajadorRepo := postgres.NewTrabajadorRepository(pool)
	usuarioRepo := postgres.NewUsuarioRepository(pool)
	auditoriaRepo := postgres.NewAuditoriaRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	mailer, err := email.NewService(cfg.Email, log)
	if err != nil {
		log.Fatal().Err(err).Msg("canal de correo")
	}
	auditoria := infraauditoria.NewRegistro(auditoriaRepo, log)

	resolver := identidad.NewRolResolver(identidad.TablaSinonimosPorDefecto(), identidad.FallbacksPorDefecto())
	emisor := identidad.NewEmisorCredenciales(cfg.Credenciales.ExpiracionHoras)
	aprovisionador := identidad.NewAprovisionadorCuentas()

	gestor := identidad.NewGestorTrabajadores(
		txRunner, personaRepo, usuarioRepo, trabajadorRepo,
		resolver, emisor, aprovisionador,
		mailer, auditoria, log,
	)
	coord := identidad.NewCoordinadorEstados(txRunner, trabajadorRepo, auditoria)
	authUC := auth.NewAuthUseCase(usuarioRepo, rolRepo, auditoria, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Taller Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Gestor:    gestor,
		Coord:     coord,
		AuthUC:    authUC,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
