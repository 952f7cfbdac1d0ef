package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/b2b-storefront-api/internal/application/ports"
	"github.com/jhoicas/b2b-storefront-api/internal/domain/entity"
	"github.com/jhoicas/b2b-storefront-api/pkg/logger"
)

// OrderRoutingUseCase enruta los fulfillment orders de un pedido recién creado
// hacia la ubicación que indica su note attribute fulfillment_mode.
type OrderRoutingUseCase struct {
	api       ports.AdminAPI
	locations map[entity.FulfillmentMode]string // modo -> GID de ubicación destino
	log       *logger.Logger
}

// NewOrderRoutingUseCase construye el caso de uso. El mapa de ubicaciones se
// arma una sola vez en main desde la configuración; aquí no se lee entorno.
func NewOrderRoutingUseCase(api ports.AdminAPI, locations map[entity.FulfillmentMode]string, log *logger.Logger) *OrderRoutingUseCase {
	return &OrderRoutingUseCase{api: api, locations: locations, log: log}
}

// RoutingResult resumen de una invocación, para el log del webhook.
type RoutingResult struct {
	Mode    entity.FulfillmentMode
	Target  string
	Moved   int
	Skipped int
}

// NoOp indica que el pedido no requería enrutamiento.
func (r RoutingResult) NoOp() bool { return r.Target == "" }

// RouteOrder procesa un pedido del webhook orders/create.
//
// Pedido sin id, sin atributo fulfillment_mode o con un valor no reconocido:
// no hay nada que hacer y se responde éxito para que Shopify no reintente.
// Los fulfillment orders que ya están en la ubicación destino se saltan, así
// una reentrega tras un éxito parcial no vuelve a mover lo ya reubicado.
// Un rechazo de negocio (userErrors) al mover se registra y el bucle continúa;
// un fallo de transporte se intenta en los demás movimientos pero la
// invocación termina con error, para que Shopify reentregue y el salto por
// idempotencia retome solo lo pendiente.
func (uc *OrderRoutingUseCase) RouteOrder(ctx context.Context, shop string, order entity.OrderCreatePayload) (RoutingResult, error) {
	var res RoutingResult

	orderGID := order.GID()
	if orderGID == "" {
		return res, nil
	}

	raw := entity.FindNoteAttribute(order.NoteAttributes, entity.NoteAttrFulfillmentMode)
	mode, ok := entity.ParseFulfillmentMode(raw)
	if !ok {
		return res, nil
	}
	target, ok := uc.locations[mode]
	if !ok || target == "" {
		uc.log.Warn().Str("mode", string(mode)).Msg("modo sin ubicación configurada")
		return res, nil
	}
	res.Mode = mode
	res.Target = target

	fulfillmentOrders, err := uc.api.OrderFulfillmentOrders(ctx, shop, orderGID)
	if err != nil {
		return res, fmt.Errorf("listar fulfillment orders: %w", err)
	}

	var moveErr error
	for _, fo := range fulfillmentOrders {
		if fo.LocationID == target {
			res.Skipped++
			continue
		}
		userErrs, err := uc.api.MoveFulfillmentOrder(ctx, shop, fo.ID, target)
		if err != nil {
			uc.log.Error().Err(err).
				Str("order_id", orderGID).
				Str("fulfillment_order_id", fo.ID).
				Msg("fallo al mover fulfillment order")
			if moveErr == nil {
				moveErr = fmt.Errorf("mover fulfillment order %s: %w", fo.ID, err)
			}
			continue
		}
		if len(userErrs) > 0 {
			uc.log.Warn().
				Str("order_id", orderGID).
				Str("fulfillment_order_id", fo.ID).
				Str("user_error", userErrs[0]).
				Msg("Shopify rechazó el movimiento")
			continue
		}
		res.Moved++
	}

	return res, moveErr
}
