package entity

import "encoding/json"

// FulfillmentMode valor reconocido del note attribute fulfillment_mode.
type FulfillmentMode string

const (
	ModeBooking   FulfillmentMode = "booking"
	ModeImmediate FulfillmentMode = "immediate"

	// NoteAttrFulfillmentMode nombre del note attribute que decide el enrutamiento.
	NoteAttrFulfillmentMode = "fulfillment_mode"
)

// ParseFulfillmentMode valida el valor del atributo. Cualquier otro valor
// (o el vacío) no es un error: el webhook simplemente no hace nada.
func ParseFulfillmentMode(s string) (FulfillmentMode, bool) {
	switch FulfillmentMode(s) {
	case ModeBooking, ModeImmediate:
		return FulfillmentMode(s), true
	default:
		return "", false
	}
}

// NoteAttribute par nombre/valor adjunto al pedido en su creación.
type NoteAttribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// FindNoteAttribute devuelve el valor del atributo con ese nombre, o "" si no existe.
func FindNoteAttribute(attrs []NoteAttribute, name string) string {
	for _, a := range attrs {
		if a.Name == name {
			return a.Value
		}
	}
	return ""
}

// OrderCreatePayload campos del webhook orders/create que usa el router.
// El id llega como número en el payload REST; admin_graphql_api_id tiene prioridad.
type OrderCreatePayload struct {
	ID                json.Number     `json:"id"`
	AdminGraphqlAPIID string          `json:"admin_graphql_api_id"`
	ShopDomain        string          `json:"shop_domain"`
	NoteAttributes    []NoteAttribute `json:"note_attributes"`
}

// GID devuelve el id GraphQL del pedido, construyéndolo desde el id numérico
// si el payload no trae admin_graphql_api_id. Vacío si no hay id alguno.
func (o OrderCreatePayload) GID() string {
	if o.AdminGraphqlAPIID != "" {
		return o.AdminGraphqlAPIID
	}
	if o.ID.String() != "" {
		return OrderGID(o.ID.String())
	}
	return ""
}

// FulfillmentOrder unidad de despacho de un pedido y su ubicación asignada.
type FulfillmentOrder struct {
	ID         string // gid://shopify/FulfillmentOrder/...
	LocationID string // ubicación asignada actual; puede ser vacío
}
