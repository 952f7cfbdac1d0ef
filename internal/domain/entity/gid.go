package entity

import "strings"

// Prefijos GID de la Admin API. El widget envía ids numéricos planos;
// la API GraphQL espera identificadores globales gid://shopify/<Tipo>/<id>.
const (
	gidPrefix         = "gid://shopify/"
	customerGIDPrefix = gidPrefix + "Customer/"
	orderGIDPrefix    = gidPrefix + "Order/"
)

// CustomerGID normaliza un id de cliente al formato GID.
// Los valores que ya son GID se devuelven tal cual.
func CustomerGID(id string) string {
	if strings.HasPrefix(id, gidPrefix) {
		return id
	}
	return customerGIDPrefix + id
}

// OrderGID normaliza un id de pedido al formato GID.
func OrderGID(id string) string {
	if strings.HasPrefix(id, gidPrefix) {
		return id
	}
	return orderGIDPrefix + id
}
