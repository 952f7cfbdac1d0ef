package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jhoicas/b2b-storefront-api/internal/application/ports"
	"github.com/jhoicas/b2b-storefront-api/internal/domain/entity"
	"github.com/jhoicas/b2b-storefront-api/pkg/config"
)

// Verificar en tiempo de compilación que Client implementa AdminAPI.
var _ ports.AdminAPI = (*Client)(nil)

// Client adaptador que implementa AdminAPI contra la Admin API GraphQL de
// Shopify. Usa net/http de la librería estándar; no requiere SDK oficial.
//
// Las llamadas del proxy van siempre contra la tienda configurada; las del
// webhook usan el dominio verificado de la entrega.
type Client struct {
	storeDomain string
	token       string
	apiVersion  string
	httpClient  *http.Client
}

// NewClient construye el adaptador desde la configuración de Shopify.
func NewClient(cfg config.ShopifyConfig) *Client {
	return &Client{
		storeDomain: cfg.StoreDomain,
		token:       cfg.AdminToken,
		apiVersion:  cfg.APIVersion,
		httpClient: &http.Client{
			// Timeout de red: una llamada colgada no debe colgar el request entero.
			Timeout: 15 * time.Second,
		},
	}
}

// ── Protocolo GraphQL ─────────────────────────────────────────────────────────

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// graphqlEnvelope sobre de respuesta: data + errors de nivel superior.
// Los userErrors de negocio viajan dentro de data, por mutation.
type graphqlEnvelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

type userError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

func messages(errs []userError) []string {
	if len(errs) == 0 {
		return nil
	}
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Message)
	}
	return out
}

// do ejecuta una operación GraphQL contra la tienda dada y deserializa el
// campo data en out. Un error no-nil es fallo de transporte o de la API
// (HTTP no-2xx, JSON inválido o errors de nivel superior).
func (c *Client) do(ctx context.Context, shop, query string, variables map[string]any, out any) error {
	if shop == "" {
		shop = c.storeDomain
	}
	if shop == "" {
		return fmt.Errorf("shopify: dominio de tienda no configurado")
	}
	if c.token == "" {
		return fmt.Errorf("shopify: SHOPIFY_ADMIN_TOKEN no configurado")
	}

	body, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("shopify: serializar request: %w", err)
	}

	url := fmt.Sprintf("https://%s/admin/api/%s/graphql.json", shop, c.apiVersion)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("shopify: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("shopify: timeout o cancelación: %w", ctx.Err())
		}
		return fmt.Errorf("shopify: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("shopify: leer respuesta: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("shopify: HTTP %d: %s", resp.StatusCode, string(rawBody))
	}

	var envelope graphqlEnvelope
	if err := json.Unmarshal(rawBody, &envelope); err != nil {
		return fmt.Errorf("shopify: deserializar respuesta: %w", err)
	}
	if len(envelope.Errors) > 0 {
		return fmt.Errorf("shopify: GraphQL error: %s", envelope.Errors[0].Message)
	}

	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("shopify: deserializar data: %w", err)
		}
	}
	return nil
}

// ── Operaciones del flujo de asignación de empresa ────────────────────────────

const customerCompanyProfileQuery = `
query ($id: ID!) {
  customer(id: $id) {
    metafield(namespace: "custom", key: "rep_code") {
      value
    }
    companyContactProfiles {
      id
      company {
        id
        name
      }
    }
  }
}`

// CustomerCompanyProfile resuelve el rep code y los perfiles de empresa del cliente.
func (c *Client) CustomerCompanyProfile(ctx context.Context, customerGID string) (*entity.CustomerProfile, error) {
	var data struct {
		Customer *struct {
			Metafield *struct {
				Value string `json:"value"`
			} `json:"metafield"`
			CompanyContactProfiles []struct {
				ID      string `json:"id"`
				Company *struct {
					ID   string `json:"id"`
					Name string `json:"name"`
				} `json:"company"`
			} `json:"companyContactProfiles"`
		} `json:"customer"`
	}
	err := c.do(ctx, "", customerCompanyProfileQuery, map[string]any{"id": customerGID}, &data)
	if err != nil {
		return nil, err
	}
	if data.Customer == nil {
		return nil, nil
	}

	profile := &entity.CustomerProfile{}
	if data.Customer.Metafield != nil {
		profile.RepCode = data.Customer.Metafield.Value
	}
	for _, p := range data.Customer.CompanyContactProfiles {
		contact := entity.CompanyContactProfile{ID: p.ID}
		if p.Company != nil {
			contact.Company = &entity.Company{ID: p.Company.ID, Name: p.Company.Name}
		}
		profile.Profiles = append(profile.Profiles, contact)
	}
	return profile, nil
}

const companiesByRepCodeQuery = `
query ($query: String!) {
  companies(first: 250, query: $query) {
    edges {
      node {
        id
        name
      }
    }
  }
}`

// SearchCompaniesByRepCode busca empresas por el metafield custom.rep_codes.
// Una sola página de 250; más allá de eso no se pagina (techo conocido).
func (c *Client) SearchCompaniesByRepCode(ctx context.Context, repCode string) ([]entity.Company, error) {
	var data struct {
		Companies struct {
			Edges []struct {
				Node struct {
					ID   string `json:"id"`
					Name string `json:"name"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"companies"`
	}
	filter := fmt.Sprintf("metafields.custom.rep_codes:%q", repCode)
	err := c.do(ctx, "", companiesByRepCodeQuery, map[string]any{"query": filter}, &data)
	if err != nil {
		return nil, err
	}

	companies := make([]entity.Company, 0, len(data.Companies.Edges))
	for _, e := range data.Companies.Edges {
		companies = append(companies, entity.Company{ID: e.Node.ID, Name: e.Node.Name})
	}
	return companies, nil
}

const customerContactProfilesQuery = `
query ($id: ID!) {
  customer(id: $id) {
    companyContactProfiles {
      id
    }
  }
}`

// CustomerContactProfiles lista solo los ids de perfil (proyección mínima para la reasignación).
func (c *Client) CustomerContactProfiles(ctx context.Context, customerGID string) ([]entity.CompanyContactProfile, error) {
	var data struct {
		Customer *struct {
			CompanyContactProfiles []struct {
				ID string `json:"id"`
			} `json:"companyContactProfiles"`
		} `json:"customer"`
	}
	err := c.do(ctx, "", customerContactProfilesQuery, map[string]any{"id": customerGID}, &data)
	if err != nil {
		return nil, err
	}
	if data.Customer == nil {
		return nil, nil
	}

	profiles := make([]entity.CompanyContactProfile, 0, len(data.Customer.CompanyContactProfiles))
	for _, p := range data.Customer.CompanyContactProfiles {
		profiles = append(profiles, entity.CompanyContactProfile{ID: p.ID})
	}
	return profiles, nil
}

const removeCompanyContactMutation = `
mutation ($id: ID!) {
  companyContactRemoveFromCompany(companyContactId: $id) {
    removedCompanyContactId
  }
}`

// RemoveCompanyContact desvincula al cliente de una empresa.
func (c *Client) RemoveCompanyContact(ctx context.Context, profileID string) error {
	return c.do(ctx, "", removeCompanyContactMutation, map[string]any{"id": profileID}, nil)
}

const assignCustomerMutation = `
mutation ($companyId: ID!, $customerId: ID!) {
  companyAssignCustomerAsContact(
    companyId: $companyId
    customerId: $customerId
  ) {
    userErrors {
      message
    }
  }
}`

// AssignCustomerToCompany vincula al cliente con la empresa y devuelve los
// mensajes de userErrors (un HTTP 200 con userErrors no es éxito de negocio).
func (c *Client) AssignCustomerToCompany(ctx context.Context, companyGID, customerGID string) ([]string, error) {
	var data struct {
		CompanyAssignCustomerAsContact struct {
			UserErrors []userError `json:"userErrors"`
		} `json:"companyAssignCustomerAsContact"`
	}
	vars := map[string]any{"companyId": companyGID, "customerId": customerGID}
	if err := c.do(ctx, "", assignCustomerMutation, vars, &data); err != nil {
		return nil, err
	}
	return messages(data.CompanyAssignCustomerAsContact.UserErrors), nil
}

// ── Operaciones del webhook de enrutamiento ───────────────────────────────────

const orderFulfillmentOrdersQuery = `
query ($orderId: ID!) {
  order(id: $orderId) {
    fulfillmentOrders(first: 10) {
      edges {
        node {
          id
          assignedLocation {
            location {
              id
            }
          }
        }
      }
    }
  }
}`

// OrderFulfillmentOrders lista los fulfillment orders del pedido (primeros 10)
// con la ubicación asignada actual de cada uno.
func (c *Client) OrderFulfillmentOrders(ctx context.Context, shop, orderGID string) ([]entity.FulfillmentOrder, error) {
	var data struct {
		Order *struct {
			FulfillmentOrders struct {
				Edges []struct {
					Node struct {
						ID               string `json:"id"`
						AssignedLocation *struct {
							Location *struct {
								ID string `json:"id"`
							} `json:"location"`
						} `json:"assignedLocation"`
					} `json:"node"`
				} `json:"edges"`
			} `json:"fulfillmentOrders"`
		} `json:"order"`
	}
	err := c.do(ctx, shop, orderFulfillmentOrdersQuery, map[string]any{"orderId": orderGID}, &data)
	if err != nil {
		return nil, err
	}
	if data.Order == nil {
		return nil, nil
	}

	orders := make([]entity.FulfillmentOrder, 0, len(data.Order.FulfillmentOrders.Edges))
	for _, e := range data.Order.FulfillmentOrders.Edges {
		fo := entity.FulfillmentOrder{ID: e.Node.ID}
		if e.Node.AssignedLocation != nil && e.Node.AssignedLocation.Location != nil {
			fo.LocationID = e.Node.AssignedLocation.Location.ID
		}
		orders = append(orders, fo)
	}
	return orders, nil
}

const moveFulfillmentOrderMutation = `
mutation ($id: ID!, $locationId: ID!) {
  fulfillmentOrderMove(
    id: $id
    newLocationId: $locationId
  ) {
    movedFulfillmentOrder {
      id
    }
    userErrors {
      field
      message
    }
  }
}`

// MoveFulfillmentOrder reubica un fulfillment order en la ubicación destino.
func (c *Client) MoveFulfillmentOrder(ctx context.Context, shop, fulfillmentOrderID, locationGID string) ([]string, error) {
	var data struct {
		FulfillmentOrderMove struct {
			UserErrors []userError `json:"userErrors"`
		} `json:"fulfillmentOrderMove"`
	}
	vars := map[string]any{"id": fulfillmentOrderID, "locationId": locationGID}
	if err := c.do(ctx, shop, moveFulfillmentOrderMutation, vars, &data); err != nil {
		return nil, err
	}
	return messages(data.FulfillmentOrderMove.UserErrors), nil
}
