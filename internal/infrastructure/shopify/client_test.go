package shopify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/b2b-storefront-api/pkg/config"
)

// roundTripperFunc permite interceptar las peticiones del cliente sin red.
type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// capture última petición enviada por el cliente, con su cuerpo ya leído
// (hay que leerlo dentro del RoundTripper, antes de que el cliente lo cierre).
type capture struct {
	req  *http.Request
	body []byte
}

// testClient construye un Client cuyo transporte responde siempre con el JSON dado.
func testClient(status int, body string, cap *capture) *Client {
	c := NewClient(config.ShopifyConfig{
		StoreDomain: "mi-tienda.myshopify.com",
		AdminToken:  "shpat_token",
		APIVersion:  "2026-04",
	})
	c.httpClient = &http.Client{
		Transport: roundTripperFunc(func(r *http.Request) (*http.Response, error) {
			if cap != nil {
				cap.req = r
				cap.body, _ = io.ReadAll(r.Body)
			}
			return &http.Response{
				StatusCode: status,
				Body:       io.NopCloser(strings.NewReader(body)),
				Header:     http.Header{"Content-Type": []string{"application/json"}},
			}, nil
		}),
	}
	return c
}

func TestClient_ConstruyeURLVersionadaYHeaders(t *testing.T) {
	var cap capture
	c := testClient(http.StatusOK, `{"data":{"customer":null}}`, &cap)

	_, err := c.CustomerCompanyProfile(context.Background(), "gid://shopify/Customer/1")

	require.NoError(t, err)
	require.NotNil(t, cap.req)
	assert.Equal(t, "https://mi-tienda.myshopify.com/admin/api/2026-04/graphql.json", cap.req.URL.String())
	assert.Equal(t, "shpat_token", cap.req.Header.Get("X-Shopify-Access-Token"))
	assert.Equal(t, "application/json", cap.req.Header.Get("Content-Type"))
}

func TestClient_WebhookUsaLaTiendaDeLaEntrega(t *testing.T) {
	var cap capture
	c := testClient(http.StatusOK, `{"data":{"order":null}}`, &cap)

	_, err := c.OrderFulfillmentOrders(context.Background(), "otra-tienda.myshopify.com", "gid://shopify/Order/1")

	require.NoError(t, err)
	assert.Equal(t, "otra-tienda.myshopify.com", cap.req.URL.Host)
}

func TestClient_ClienteInexistente_DevuelveNil(t *testing.T) {
	c := testClient(http.StatusOK, `{"data":{"customer":null}}`, nil)

	profile, err := c.CustomerCompanyProfile(context.Background(), "gid://shopify/Customer/1")

	require.NoError(t, err)
	assert.Nil(t, profile)
}

func TestClient_DecodificaPerfilDelCliente(t *testing.T) {
	c := testClient(http.StatusOK, `{
		"data": {
			"customer": {
				"metafield": {"value": "REP-7"},
				"companyContactProfiles": [
					{"id": "cc_1", "company": {"id": "comp_1", "name": "Acme"}}
				]
			}
		}
	}`, nil)

	profile, err := c.CustomerCompanyProfile(context.Background(), "gid://shopify/Customer/1")

	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "REP-7", profile.RepCode)
	require.Len(t, profile.Profiles, 1)
	require.NotNil(t, profile.Profiles[0].Company)
	assert.Equal(t, "Acme", profile.Profiles[0].Company.Name)
}

func TestClient_SearchCompanies_FiltraPorRepCode(t *testing.T) {
	var cap capture
	c := testClient(http.StatusOK, `{
		"data": {"companies": {"edges": [
			{"node": {"id": "comp_1", "name": "Acme"}},
			{"node": {"id": "comp_2", "name": "Globex"}}
		]}}
	}`, &cap)

	companies, err := c.SearchCompaniesByRepCode(context.Background(), "REP-7")

	require.NoError(t, err)
	require.Len(t, companies, 2)
	assert.Equal(t, "Globex", companies[1].Name)

	// El filtro viaja en las variables del request GraphQL.
	var sent graphqlRequest
	require.NoError(t, json.Unmarshal(cap.body, &sent))
	assert.Equal(t, `metafields.custom.rep_codes:"REP-7"`, sent.Variables["query"])
	assert.Contains(t, sent.Query, "first: 250")
}

func TestClient_AssignDevuelveUserErrors(t *testing.T) {
	c := testClient(http.StatusOK, `{
		"data": {"companyAssignCustomerAsContact": {"userErrors": [
			{"field": ["customerId"], "message": "Customer is disabled"}
		]}}
	}`, nil)

	userErrs, err := c.AssignCustomerToCompany(context.Background(), "comp_1", "gid://shopify/Customer/1")

	require.NoError(t, err, "HTTP 200 con userErrors no es error de transporte")
	assert.Equal(t, []string{"Customer is disabled"}, userErrs)
}

func TestClient_ErroresDeNivelSuperior_SonError(t *testing.T) {
	c := testClient(http.StatusOK, `{"errors":[{"message":"Throttled"}]}`, nil)

	_, err := c.SearchCompaniesByRepCode(context.Background(), "REP-7")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Throttled")
}

func TestClient_HTTPNo2xx_EsError(t *testing.T) {
	c := testClient(http.StatusUnauthorized, `{"errors":"[API] Invalid API key"}`, nil)

	_, err := c.SearchCompaniesByRepCode(context.Background(), "REP-7")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestClient_JSONInvalido_EsError(t *testing.T) {
	c := testClient(http.StatusOK, `<html>upstream error</html>`, nil)

	_, err := c.SearchCompaniesByRepCode(context.Background(), "REP-7")

	require.Error(t, err)
}

func TestClient_DecodificaFulfillmentOrders(t *testing.T) {
	c := testClient(http.StatusOK, `{
		"data": {"order": {"fulfillmentOrders": {"edges": [
			{"node": {"id": "fo_1", "assignedLocation": {"location": {"id": "loc_1"}}}},
			{"node": {"id": "fo_2", "assignedLocation": null}}
		]}}}
	}`, nil)

	orders, err := c.OrderFulfillmentOrders(context.Background(), "", "gid://shopify/Order/1")

	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "loc_1", orders[0].LocationID)
	assert.Empty(t, orders[1].LocationID, "ubicación ausente queda vacía, nunca panic")
}
