package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/b2b-storefront-api/internal/application/dto"
	"github.com/jhoicas/b2b-storefront-api/internal/application/usecase"
	"github.com/jhoicas/b2b-storefront-api/pkg/logger"
)

// ProxyHandler atiende el endpoint del app proxy que consume el widget del
// storefront. Una sola ruta multiplexa las tres acciones por actionType;
// el conjunto es cerrado y toda validación ocurre antes de llamar a Shopify.
type ProxyHandler struct {
	uc  *usecase.CompanyAssignmentUseCase
	log *logger.Logger
}

// NewProxyHandler construye el handler inyectando el caso de uso.
func NewProxyHandler(uc *usecase.CompanyAssignmentUseCase, log *logger.Logger) *ProxyHandler {
	return &ProxyHandler{uc: uc, log: log}
}

// Health godoc
// @Summary      Health check del proxy
// @Tags         proxy
// @Produce      json
// @Success      200  {object}  map[string]bool
// @Router       /apps/proxy [get]
func (h *ProxyHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"ok": true})
}

// Action godoc
// @Summary      Despacha una acción del widget B2B
// @Description  Acciones: fetchCompany, fetchRepCompanies, assignCompany
// @Tags         proxy
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProxyActionRequest  true  "Acción y sus campos"
// @Success      200   {object}  dto.FetchCompanyResponse
// @Failure      400   {object}  dto.ProxyErrorResponse
// @Failure      500   {object}  dto.ProxyErrorResponse
// @Router       /apps/proxy [post]
func (h *ProxyHandler) Action(c *fiber.Ctx) error {
	var in dto.ProxyActionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ProxyErrorResponse{Error: "Invalid JSON body"})
	}

	// Los mensajes de error son contrato con el widget: no traducir.
	switch in.ActionType {
	case "":
		return c.Status(fiber.StatusBadRequest).JSON(dto.ProxyErrorResponse{Error: "Missing actionType"})

	case dto.ActionFetchCompany:
		if in.CustomerID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ProxyErrorResponse{Error: "Missing customerId"})
		}
		out, err := h.uc.FetchCompany(c.UserContext(), in.CustomerID)
		if err != nil {
			return h.internalError(c, err)
		}
		return c.JSON(out)

	case dto.ActionFetchRepCompanies:
		// repCode vacío no es un error: lista vacía sin llamada remota.
		out, err := h.uc.FetchRepCompanies(c.UserContext(), in.RepCode)
		if err != nil {
			return h.internalError(c, err)
		}
		return c.JSON(out)

	case dto.ActionAssignCompany:
		if in.CustomerID == "" || in.CompanyID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ProxyErrorResponse{Error: "Missing customerId or companyId"})
		}
		out, err := h.uc.AssignCompany(c.UserContext(), in.CustomerID, in.CompanyID)
		if err != nil {
			return h.internalError(c, err)
		}
		if out.Error != "" {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ProxyErrorResponse{Error: out.Error, Removed: out.Removed})
		}
		return c.JSON(out)

	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ProxyErrorResponse{Error: "Invalid actionType"})
	}
}

// internalError registra el detalle para el operador y responde un 500 opaco.
func (h *ProxyHandler) internalError(c *fiber.Ctx, err error) error {
	h.log.Error().Err(err).
		Str("path", c.Path()).
		Msg("error no controlado en el proxy")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ProxyErrorResponse{Error: "Internal server error"})
}
