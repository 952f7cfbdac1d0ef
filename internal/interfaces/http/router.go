package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/b2b-storefront-api/internal/application/usecase"
	"github.com/jhoicas/b2b-storefront-api/internal/infrastructure/shopify"
	"github.com/jhoicas/b2b-storefront-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Assignment *usecase.CompanyAssignmentUseCase
	Routing    *usecase.OrderRoutingUseCase
	Verifier   shopify.WebhookVerifier
	Log        *logger.Logger
}

// Router registra las rutas del servicio.
func Router(app *fiber.App, deps RouterDeps) {
	// App proxy del storefront (mismo origen desde el punto de vista del widget)
	proxy := app.Group("/apps/proxy")
	proxyHandler := NewProxyHandler(deps.Assignment, deps.Log)
	proxy.Get("/", proxyHandler.Health)
	proxy.Post("/", proxyHandler.Action)

	// Webhooks de Shopify
	webhooks := app.Group("/webhooks")
	webhookHandler := NewWebhookHandler(deps.Verifier, deps.Routing, deps.Log)
	webhooks.Post("/orders-create", webhookHandler.OrdersCreate)
}
