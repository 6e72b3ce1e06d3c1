package packages

import (
	"context"
	"fmt"

	"salesdesk_backend/internal/leads/domain"
	"salesdesk_backend/internal/leads/store"
	"salesdesk_backend/platform/apperr"
	"salesdesk_backend/platform/logger"
)

// ApplyRequest is the package the operator assembled in the builder.
type ApplyRequest struct {
	TariffID          string                    `json:"tariffId" validate:"required"`
	Commissions       []domain.Commission       `json:"commissions" validate:"omitempty,dive"`
	AdditionalCharges []domain.AdditionalCharge `json:"additionalCharges" validate:"omitempty,dive"`
	Assets            []domain.Asset            `json:"assets" validate:"omitempty,dive"`
	MarkCompleted     bool                      `json:"markCompleted"`
}

// Service applies builder output to leads.
type Service struct {
	catalog *Catalog
	store   *store.Store
	log     *logger.Logger
}

// NewService wires the packages service.
func NewService(catalog *Catalog, s *store.Store, log *logger.Logger) *Service {
	return &Service{catalog: catalog, store: s, log: log}
}

// Catalog returns the builder inventory.
func (s *Service) Catalog(ctx context.Context) *Catalog {
	return s.catalog
}

// Apply validates the tariff against the catalog and writes the package
// configuration. Commissions default to the tariff's rates when the
// builder sends none. MarkCompleted also stamps the package-builder
// stage, which has no derivable completion rule of its own.
func (s *Service) Apply(ctx context.Context, leadID string, req ApplyRequest) (*domain.Lead, error) {
	tariff, ok := s.catalog.Tariff(req.TariffID)
	if !ok {
		return nil, apperr.Validation(fmt.Sprintf("unknown tariff %q", req.TariffID))
	}

	commissions := req.Commissions
	if len(commissions) == 0 {
		commissions = tariff.Commissions
	}

	config := &domain.PackageConfiguration{
		TariffID:          tariff.ID,
		Commissions:       commissions,
		AdditionalCharges: req.AdditionalCharges,
		Assets:            req.Assets,
	}

	if !s.store.UpdatePackageConfiguration(leadID, config) {
		return nil, apperr.NotFound("lead not found")
	}
	if req.MarkCompleted {
		s.store.UpdateStageStatus(leadID, domain.StagePackageBuilder, domain.StageCompleted)
		s.log.StageEvent(leadID, string(domain.StagePackageBuilder), string(domain.StageCompleted))
	}

	lead, _ := s.store.GetLead(leadID)
	return lead, nil
}
