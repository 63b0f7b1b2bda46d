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

	"github.com/htconfort/myconfort-facturation/internal/application/auth"
	"github.com/htconfort/myconfort-facturation/internal/application/directory"
	"github.com/htconfort/myconfort-facturation/internal/application/export"
	"github.com/htconfort/myconfort-facturation/internal/application/invoicing"
	infraemail "github.com/htconfort/myconfort-facturation/internal/infrastructure/email"
	infrapdf "github.com/htconfort/myconfort-facturation/internal/infrastructure/pdf"
	"github.com/htconfort/myconfort-facturation/internal/infrastructure/postgres"
	"github.com/htconfort/myconfort-facturation/internal/infrastructure/webhook"
	httpRouter "github.com/htconfort/myconfort-facturation/internal/interfaces/http"
	"github.com/htconfort/myconfort-facturation/pkg/config"
	"github.com/htconfort/myconfort-facturation/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("charger la configuration : " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("démarrage de l'application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connexion à PostgreSQL")
	}
	defer pool.Close()

	invoiceRepo := postgres.NewInvoiceRepository(pool)
	sequenceRepo := postgres.NewSequenceRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	catalogRepo := postgres.NewCatalogRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	invoiceUC := invoicing.NewUseCase(invoiceRepo, sequenceRepo, cfg.Societe.ConseillerParDefaut, nil)
	clientUC := directory.NewClientUseCase(clientRepo)
	catalogUC := directory.NewCatalogUseCase(catalogRepo)
	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Export : rendu PDF Maroto → payload assaini et validé → webhook n8n.
	pdfGenerator := infrapdf.NewMarotoGenerator(cfg.Societe)
	dispatcher := webhook.NewDispatcher(cfg.Webhook.URL, time.Duration(cfg.Webhook.TimeoutSeconds)*time.Second, log)
	mailer := infraemail.NewMailer(cfg.SMTP, log)
	exportUC := export.NewUseCase(invoiceRepo, pdfGenerator, dispatcher, mailer, log, nil)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local : http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "MYCONFORT Facturation API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		InvoiceUC: invoiceUC,
		ExportUC:  exportUC,
		ClientUC:  clientUC,
		CatalogUC: catalogUC,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("serveur HTTP terminé")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("signal d'arrêt reçu, fermeture du serveur...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("arrêt du serveur")
	}

	log.Info().Msg("application arrêtée")
}
