package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	_ "github.com/jhoicas/leads-api/docs"
	"github.com/jhoicas/leads-api/internal/application/leads"
	"github.com/jhoicas/leads-api/internal/domain/repository"
	"github.com/jhoicas/leads-api/internal/infrastructure/memory"
	"github.com/jhoicas/leads-api/internal/infrastructure/metrics"
	"github.com/jhoicas/leads-api/internal/infrastructure/postgres"
	"github.com/jhoicas/leads-api/internal/infrastructure/scoring"
	httpRouter "github.com/jhoicas/leads-api/internal/interfaces/http"
	"github.com/jhoicas/leads-api/pkg/config"
	"github.com/jhoicas/leads-api/pkg/logger"
)

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
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		txRunner leads.TxRunner
		leadRepo repository.LeadRepository
		saleRepo repository.SaleRepository
	)
	switch cfg.DB.Driver {
	case config.DriverMemory:
		store := memory.NewStore()
		txRunner, leadRepo, saleRepo = store, store.Leads(), store.Sales()
		log.Warn().Msg("persistencia en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				log.Fatal().Err(err).Msg("migración del esquema")
			}
		}
		txRunner = postgres.NewTxRunner(pool)
		leadRepo = postgres.NewLeadRepository(pool)
		saleRepo = postgres.NewSaleRepository(pool)
	}

	scorer, err := scoring.New(cfg.Scorer.Kind)
	if err != nil {
		log.Fatal().Err(err).Msg("SCORER_KIND")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(reg)

	leadUC := leads.NewLeadUseCase(txRunner, leadRepo, saleRepo, scorer, collector, log.Component("leads"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestMiddleware(log.Component("http"), collector))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Leads API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(collector.Handler()))

	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: API sin autenticación")
	}
	httpRouter.Router(app, httpRouter.RouterDeps{
		LeadUC:    leadUC,
		JWTSecret: cfg.JWT.Secret,
		Log:       log.Component("http"),
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
