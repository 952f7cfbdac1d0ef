package dto

// Acciones reconocidas por el endpoint proxy. El discriminador es un conjunto
// cerrado: cualquier otro valor se rechaza con 400 antes de tocar la API remota.
const (
	ActionFetchCompany      = "fetchCompany"
	ActionFetchRepCompanies = "fetchRepCompanies"
	ActionAssignCompany     = "assignCompany"
)

// ProxyActionRequest cuerpo del POST /apps/proxy que envía el widget.
// Los nombres de campo son contrato con el storefront: no renombrar.
type ProxyActionRequest struct {
	ActionType string `json:"actionType"`
	CustomerID string `json:"customerId"`
	RepCode    string `json:"repCode"`
	CompanyID  string `json:"companyId"`
}

// CompanyDTO empresa en el formato que consume el widget.
type CompanyDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FetchCompanyResponse respuesta de fetchCompany.
// Company es null cuando el cliente no tiene empresa asignada.
type FetchCompanyResponse struct {
	Company *CompanyDTO `json:"company"`
	RepCode string      `json:"repCode"`
}

// RepCompaniesResponse respuesta de fetchRepCompanies.
type RepCompaniesResponse struct {
	Companies []CompanyDTO `json:"companies"`
}

// AssignCompanyResponse respuesta de assignCompany.
// Removed lista los perfiles de contacto eliminados antes del alta: la
// secuencia no tiene rollback, así que ante un fallo a mitad de camino el
// operador puede ver qué desvinculaciones ya se aplicaron. El campo es
// aditivo y el widget existente lo ignora.
type AssignCompanyResponse struct {
	Success bool     `json:"success"`
	Removed []string `json:"removed"`
	// Error primer mensaje de userErrors del alta. No viaja en la respuesta de
	// éxito: el handler lo convierte en un 400 con ProxyErrorResponse.
	Error string `json:"-"`
}

// ProxyErrorResponse cuerpo de error del proxy ({"error": "..."}).
type ProxyErrorResponse struct {
	Error   string   `json:"error"`
	Removed []string `json:"removed,omitempty"`
}
