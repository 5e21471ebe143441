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
	"github.com/jhoicas/contactbook-api/docs"
	"github.com/jhoicas/contactbook-api/internal/application/usecase"
	"github.com/jhoicas/contactbook-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/contactbook-api/internal/interfaces/http"
	"github.com/jhoicas/contactbook-api/pkg/config"
	"github.com/jhoicas/contactbook-api/pkg/logger"
)

// @title       Contact Book API
// @version     1.0
// @description Agendas, empresas y contactos sobre PostgreSQL.
// @BasePath    /
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
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

	// El esquema debe estar al día antes de aceptar peticiones.
	migrations, err := postgres.DefaultMigrations()
	if err != nil {
		log.Fatal().Err(err).Msg("cargar migraciones")
	}
	applied, err := postgres.NewMigrator(pool, migrations, log).Up(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("aplicar migraciones")
	}
	log.Info().Int("applied", applied).Int("total", len(migrations)).Msg("esquema actualizado")

	contactBookRepo := postgres.NewContactBookRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	contactRepo := postgres.NewContactRepository(pool)

	contactBookUC := usecase.NewContactBookUseCase(contactBookRepo, companyRepo, contactRepo)
	companyUC := usecase.NewCompanyUseCase(companyRepo, contactBookRepo, contactRepo)
	contactUC := usecase.NewContactUseCase(contactRepo, contactBookRepo, companyRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI fuera de producción: http://localhost:<port>/docs
	if !cfg.App.IsProduction() && cfg.App.DocsPath != "" {
		if _, err := os.Stat(cfg.App.DocsPath); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.App.DocsPath,
				Path:     "docs",
				Title:    docs.SwaggerInfo.Title,
			}))
		} else {
			log.Warn().Str("path", cfg.App.DocsPath).Msg("swagger.json no encontrado, /docs deshabilitado")
		}
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		ContactBookUC: contactBookUC,
		CompanyUC:     companyUC,
		ContactUC:     contactUC,
		DB:            pool,
		Logger:        log,
		AppName:       cfg.App.Name,
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
