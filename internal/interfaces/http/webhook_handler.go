package http

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/b2b-storefront-api/internal/application/usecase"
	"github.com/jhoicas/b2b-storefront-api/internal/domain/entity"
	"github.com/jhoicas/b2b-storefront-api/internal/infrastructure/shopify"
	"github.com/jhoicas/b2b-storefront-api/pkg/logger"
)

// WebhookHandler atiende las entregas de webhooks de Shopify.
// Responde texto plano: Shopify solo mira el status (un no-2xx provoca
// reintento de la entrega, por eso los no-op responden 200).
type WebhookHandler struct {
	verifier shopify.WebhookVerifier
	routing  *usecase.OrderRoutingUseCase
	log      *logger.Logger
}

// NewWebhookHandler construye el handler con el verificador seleccionado en el arranque.
func NewWebhookHandler(verifier shopify.WebhookVerifier, routing *usecase.OrderRoutingUseCase, log *logger.Logger) *WebhookHandler {
	return &WebhookHandler{verifier: verifier, routing: routing, log: log}
}

// OrdersCreate godoc
// @Summary      Webhook orders/create: enruta fulfillment orders por fulfillment_mode
// @Tags         webhooks
// @Accept       json
// @Produce      plain
// @Success      200  {string}  string  "OK"
// @Failure      400  {string}  string  "No shop"
// @Failure      401  {string}  string  "Invalid signature"
// @Failure      500  {string}  string  "Error"
// @Router       /webhooks/orders-create [post]
func (h *WebhookHandler) OrdersCreate(c *fiber.Ctx) error {
	body := c.Body()

	shop, err := h.verifier.Verify(body, func(name string) string { return c.Get(name) })
	if err != nil {
		h.log.Warn().Err(err).
			Str("topic", c.Get(shopify.HeaderWebhookTopic)).
			Msg("entrega de webhook rechazada")
		return c.Status(fiber.StatusUnauthorized).SendString("Invalid signature")
	}
	if shop == "" {
		return c.Status(fiber.StatusBadRequest).SendString("No shop")
	}

	var order entity.OrderCreatePayload
	if err := json.Unmarshal(body, &order); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid payload")
	}

	res, err := h.routing.RouteOrder(c.UserContext(), shop, order)
	if err != nil {
		h.log.Error().Err(err).
			Str("shop", shop).
			Msg("fallo al enrutar el pedido")
		// Shopify reintentará la entrega; los movimientos ya hechos se
		// saltarán por idempotencia en el siguiente intento.
		return c.Status(fiber.StatusInternalServerError).SendString("Error")
	}

	if res.NoOp() {
		h.log.Debug().Str("shop", shop).Msg("pedido sin enrutamiento pendiente")
	} else {
		h.log.Info().
			Str("shop", shop).
			Str("mode", string(res.Mode)).
			Int("moved", res.Moved).
			Int("skipped", res.Skipped).
			Msg("fulfillment orders enrutados")
	}
	return c.SendString("OK")
}
