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
	"github.com/jhoicas/b2b-storefront-api/internal/application/usecase"
	"github.com/jhoicas/b2b-storefront-api/internal/domain/entity"
	"github.com/jhoicas/b2b-storefront-api/internal/infrastructure/shopify"
	httpRouter "github.com/jhoicas/b2b-storefront-api/internal/interfaces/http"
	"github.com/jhoicas/b2b-storefront-api/pkg/config"
	"github.com/jhoicas/b2b-storefront-api/pkg/logger"
)

// swaggerSpecPath spec generado que sirve el middleware de Swagger UI.
const swaggerSpecPath = "./docs/swagger.json"

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
		Str("api_version", cfg.Shopify.APIVersion).
		Msg("iniciando aplicación")

	adminAPI := shopify.NewClient(cfg.Shopify)

	// Mapa modo -> ubicación destino, armado una sola vez desde la configuración
	locations := map[entity.FulfillmentMode]string{
		entity.ModeBooking:   cfg.Locations.Booking,
		entity.ModeImmediate: cfg.Locations.Immediate,
	}

	assignmentUC := usecase.NewCompanyAssignmentUseCase(adminAPI, log)
	routingUC := usecase.NewOrderRoutingUseCase(adminAPI, locations, log)

	// Verificador de webhooks: HMAC en producción, confianza directa solo en
	// development. Se decide aquí una única vez; nada en los handlers ni en
	// los casos de uso vuelve a preguntar por el entorno.
	var verifier shopify.WebhookVerifier
	if cfg.App.Env == "development" {
		verifier = shopify.NewTrustedVerifier()
		log.Warn().Msg("webhooks sin verificación de firma (modo development)")
	} else {
		verifier = shopify.NewHMACVerifier(cfg.Shopify.WebhookSecret)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	// El middleware hace stat del archivo al registrarse y entra en pánico si
	// no existe, así que solo se monta cuando el spec está presente.
	if _, err := os.Stat(swaggerSpecPath); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerSpecPath,
			Path:     "docs",
			Title:    "B2B Storefront API",
		}))
	} else {
		log.Warn().Str("path", swaggerSpecPath).Msg("spec de swagger no encontrado, UI deshabilitada")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Assignment: assignmentUC,
		Routing:    routingUC,
		Verifier:   verifier,
		Log:        log,
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
