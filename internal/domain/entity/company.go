package entity

// Company representa una empresa B2B de Shopify a la que un cliente puede estar afiliado.
// Es una vista transitoria del registro remoto: no se persiste nada localmente.
type Company struct {
	ID   string // gid://shopify/Company/...
	Name string
}

// CompanyContactProfile vincula a un cliente con una empresa.
// En la reasignación se eliminan todos los perfiles previos antes de crear el nuevo.
type CompanyContactProfile struct {
	ID      string   // gid://shopify/CompanyContact/...
	Company *Company // nil cuando la proyección solo pide el id del perfil
}

// CustomerProfile proyección del cliente usada por el widget:
// su código de representante (metafield custom.rep_code) y sus perfiles de contacto.
type CustomerProfile struct {
	RepCode  string
	Profiles []CompanyContactProfile
}

// CurrentCompany devuelve la empresa del primer perfil de contacto, o nil si no hay.
// Si el cliente tuviera varios perfiles simultáneos (no debería, la asignación es
// exclusiva) se toma el primero en el orden que entrega la API.
func (p *CustomerProfile) CurrentCompany() *Company {
	if p == nil || len(p.Profiles) == 0 {
		return nil
	}
	return p.Profiles[0].Company
}
