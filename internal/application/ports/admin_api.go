package ports

import (
	"context"

	"github.com/jhoicas/b2b-storefront-api/internal/domain/entity"
)

// AdminAPI define el puerto de salida hacia la Admin API GraphQL de Shopify.
// Cualquier adaptador (cliente HTTP real, stub de test) debe implementar esta
// interfaz. Siguiendo el principio de inversión de dependencias (DIP), los
// casos de uso solo conocen este contrato, no el transporte GraphQL.
//
// Convención de errores: un error no-nil indica fallo de transporte o de la
// propia API (campo errors de nivel superior). Los userErrors de negocio que
// Shopify devuelve dentro de un HTTP 200 se exponen como valores, no como
// error, porque cada flujo los trata distinto (el proxy los devuelve al
// cliente, el webhook los registra y continúa).
type AdminAPI interface {
	// CustomerCompanyProfile resuelve el metafield custom.rep_code del cliente
	// y sus perfiles de contacto de empresa con id y nombre.
	// Devuelve nil (sin error) si el cliente no existe.
	CustomerCompanyProfile(ctx context.Context, customerGID string) (*entity.CustomerProfile, error)

	// SearchCompaniesByRepCode busca empresas cuyo metafield custom.rep_codes
	// contiene el código dado. Una sola página de hasta 250 resultados
	// (techo de escala conocido, sin paginación).
	SearchCompaniesByRepCode(ctx context.Context, repCode string) ([]entity.Company, error)

	// CustomerContactProfiles lista solo los ids de los perfiles de contacto
	// actuales del cliente (proyección mínima para la reasignación).
	CustomerContactProfiles(ctx context.Context, customerGID string) ([]entity.CompanyContactProfile, error)

	// RemoveCompanyContact elimina un perfil de contacto (desvincula al
	// cliente de esa empresa).
	RemoveCompanyContact(ctx context.Context, profileID string) error

	// AssignCustomerToCompany vincula al cliente con la empresa. Devuelve los
	// mensajes de userErrors del mutation (vacío = éxito de negocio).
	AssignCustomerToCompany(ctx context.Context, companyGID, customerGID string) ([]string, error)

	// OrderFulfillmentOrders lista los fulfillment orders del pedido con su
	// ubicación asignada. Primeros 10 (techo de escala conocido).
	// shop es el dominio verificado de la entrega del webhook.
	OrderFulfillmentOrders(ctx context.Context, shop, orderGID string) ([]entity.FulfillmentOrder, error)

	// MoveFulfillmentOrder reubica un fulfillment order en la ubicación dada.
	// Devuelve los userErrors del mutation como valores.
	MoveFulfillmentOrder(ctx context.Context, shop, fulfillmentOrderID, locationGID string) ([]string, error)
}
