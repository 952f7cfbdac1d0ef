package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/b2b-storefront-api/internal/application/dto"
	"github.com/jhoicas/b2b-storefront-api/internal/application/ports"
	"github.com/jhoicas/b2b-storefront-api/internal/domain"
	"github.com/jhoicas/b2b-storefront-api/internal/domain/entity"
	"github.com/jhoicas/b2b-storefront-api/pkg/logger"
)

// CompanyAssignmentUseCase flujos del widget B2B: consultar la empresa actual
// del cliente, listar las empresas de su código de representante y reasignarlo.
type CompanyAssignmentUseCase struct {
	api ports.AdminAPI
	log *logger.Logger
}

// NewCompanyAssignmentUseCase construye el caso de uso con el puerto de la Admin API.
func NewCompanyAssignmentUseCase(api ports.AdminAPI, log *logger.Logger) *CompanyAssignmentUseCase {
	return &CompanyAssignmentUseCase{api: api, log: log}
}

// FetchCompany devuelve la empresa actual del cliente y su rep code.
// customerID vacío -> domain.ErrMissingInput sin llamada remota.
// Cliente inexistente o sin perfil -> company null con rep code vacío.
// Si hubiera varios perfiles simultáneos se toma el primero en el orden de la API.
func (uc *CompanyAssignmentUseCase) FetchCompany(ctx context.Context, customerID string) (*dto.FetchCompanyResponse, error) {
	if customerID == "" {
		return nil, fmt.Errorf("customerId: %w", domain.ErrMissingInput)
	}

	profile, err := uc.api.CustomerCompanyProfile(ctx, entity.CustomerGID(customerID))
	if err != nil {
		return nil, fmt.Errorf("consultar perfil del cliente: %w", err)
	}

	out := &dto.FetchCompanyResponse{Company: nil, RepCode: ""}
	if profile == nil {
		return out, nil
	}
	out.RepCode = profile.RepCode
	if company := profile.CurrentCompany(); company != nil {
		out.Company = &dto.CompanyDTO{ID: company.ID, Name: company.Name}
	}
	return out, nil
}

// FetchRepCompanies lista las empresas asociadas a un rep code.
// Un código vacío devuelve lista vacía sin consultar la API remota: evita una
// búsqueda sin filtro y es el caso normal de un cliente sin metafield.
func (uc *CompanyAssignmentUseCase) FetchRepCompanies(ctx context.Context, repCode string) (*dto.RepCompaniesResponse, error) {
	out := &dto.RepCompaniesResponse{Companies: make([]dto.CompanyDTO, 0)}
	if repCode == "" {
		return out, nil
	}

	companies, err := uc.api.SearchCompaniesByRepCode(ctx, repCode)
	if err != nil {
		return nil, fmt.Errorf("buscar empresas del rep code: %w", err)
	}
	for _, c := range companies {
		out.Companies = append(out.Companies, dto.CompanyDTO{ID: c.ID, Name: c.Name})
	}
	return out, nil
}

// AssignCompany reasigna al cliente: elimina cada perfil de contacto previo
// (una llamada por perfil, secuencial, sin transacción) y luego crea la
// vinculación con la empresa pedida. Si el alta devuelve userErrors se
// devuelve el primer mensaje; Removed siempre refleja las desvinculaciones
// ya aplicadas, también en el camino de error, porque no hay rollback.
func (uc *CompanyAssignmentUseCase) AssignCompany(ctx context.Context, customerID, companyID string) (*dto.AssignCompanyResponse, error) {
	if customerID == "" || companyID == "" {
		return nil, fmt.Errorf("customerId y companyId: %w", domain.ErrMissingInput)
	}

	customerGID := entity.CustomerGID(customerID)
	out := &dto.AssignCompanyResponse{Removed: make([]string, 0)}

	profiles, err := uc.api.CustomerContactProfiles(ctx, customerGID)
	if err != nil {
		return nil, fmt.Errorf("listar perfiles previos: %w", err)
	}

	for _, p := range profiles {
		if err := uc.api.RemoveCompanyContact(ctx, p.ID); err != nil {
			// Ventana de fallo parcial: las desvinculaciones previas quedaron aplicadas.
			uc.log.Error().Err(err).
				Str("customer_id", customerGID).
				Str("profile_id", p.ID).
				Strs("removed", out.Removed).
				Msg("fallo al desvincular perfil previo")
			return out, fmt.Errorf("desvincular perfil %s: %w", p.ID, err)
		}
		out.Removed = append(out.Removed, p.ID)
	}

	userErrs, err := uc.api.AssignCustomerToCompany(ctx, companyID, customerGID)
	if err != nil {
		uc.log.Error().Err(err).
			Str("customer_id", customerGID).
			Str("company_id", companyID).
			Strs("removed", out.Removed).
			Msg("fallo al vincular con la empresa")
		return out, fmt.Errorf("vincular con la empresa: %w", err)
	}
	if len(userErrs) > 0 {
		// HTTP 200 con userErrors: fallo de negocio, no de transporte. Se
		// expone el primer mensaje y el handler lo convierte en 400.
		out.Error = userErrs[0]
		return out, nil
	}

	out.Success = true
	return out, nil
}
