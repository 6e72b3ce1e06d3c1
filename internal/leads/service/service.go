// Package service orchestrates lead operations: store mutations, stage
// bookkeeping, event publication, follow-up scheduling, and snapshots.
package service

import (
	"context"
	"fmt"

	"salesdesk_backend/internal/events"
	"salesdesk_backend/internal/leads/domain"
	"salesdesk_backend/internal/leads/metrics"
	"salesdesk_backend/internal/leads/scoring"
	"salesdesk_backend/internal/leads/store"
	"salesdesk_backend/internal/leads/transport"
	"salesdesk_backend/platform/apperr"
	"salesdesk_backend/platform/logger"
	"salesdesk_backend/platform/phone"
	"salesdesk_backend/platform/sanitize"
)

// FollowUpScheduler queues a reminder after a status change. Nil-able:
// scheduling is skipped when Redis is not configured.
type FollowUpScheduler interface {
	ScheduleFollowUp(ctx context.Context, leadID string, status string) error
}

// SnapshotSaver persists the full store after mutations. Nil-able.
type SnapshotSaver interface {
	Save(ctx context.Context, leads []*domain.Lead) error
}

// Service is the lead orchestration layer above the record store.
type Service struct {
	store     *store.Store
	bus       events.Bus
	log       *logger.Logger
	calc      *metrics.Calculator
	scorer    *scoring.Service
	scheduler FollowUpScheduler
	snapshot  SnapshotSaver
}

// New wires the leads service.
func New(s *store.Store, bus events.Bus, calc *metrics.Calculator, scorer *scoring.Service, scheduler FollowUpScheduler, snapshot SnapshotSaver, log *logger.Logger) *Service {
	return &Service{
		store:     s,
		bus:       bus,
		log:       log,
		calc:      calc,
		scorer:    scorer,
		scheduler: scheduler,
		snapshot:  snapshot,
	}
}

// CreateLead runs intake: sanitize free text, normalize the phone number,
// create the record with defaults, and announce it.
func (s *Service) CreateLead(ctx context.Context, req transport.CreateLeadRequest) (*domain.Lead, error) {
	contacts := make([]domain.Contact, 0, len(req.Contacts))
	for _, c := range req.Contacts {
		contacts = append(contacts, domain.Contact{
			ID:    c.ID,
			Name:  sanitize.Text(c.Name),
			Role:  c.Role,
			Phone: phone.NormalizeE164(c.Phone),
			Email: c.Email,
		})
	}

	input := store.AddLeadInput{
		CompanyName:  sanitize.Text(req.CompanyName),
		ContactName:  sanitize.Text(req.ContactName),
		Phone:        phone.NormalizeE164(req.Phone),
		Email:        req.Email,
		Address:      sanitize.Text(req.Address),
		BusinessType: req.BusinessType,
		Rating:       req.Rating,
		RatingsTotal: req.RatingsTotal,
		Priority:     req.Priority,
		Value:        req.Value,
		PlaceID:      req.PlaceID,
		Website:      req.Website,
		Contacts:     contacts,
		OpeningHours: req.OpeningHours,
	}
	if input.Priority == "" {
		input.Priority = domain.PriorityMedium
	}

	lead := s.store.AddLead(input)

	source := "manual"
	if lead.PlaceID != "" {
		source = "place_search"
	}
	s.bus.Publish(ctx, events.LeadCreated{
		BaseEvent:   events.NewBaseEvent(),
		LeadID:      lead.ID,
		CompanyName: lead.CompanyName,
		Source:      source,
	})
	s.saveSnapshot(ctx)
	return lead, nil
}

// ListLeads returns all leads in intake order.
func (s *Service) ListLeads(ctx context.Context) []*domain.Lead {
	return s.store.ListLeads()
}

// GetLead returns one lead or a not-found error.
func (s *Service) GetLead(ctx context.Context, id string) (*domain.Lead, error) {
	lead, ok := s.store.GetLead(id)
	if !ok {
		return nil, apperr.NotFound("lead not found")
	}
	return lead, nil
}

// UpdateStatus moves a lead between kanban columns and schedules a
// follow-up reminder for the new column.
func (s *Service) UpdateStatus(ctx context.Context, id string, status domain.PipelineStatus) (*domain.Lead, error) {
	if !domain.IsValidStatus(status) {
		return nil, apperr.Validation(fmt.Sprintf("unknown status %q", status))
	}

	before, ok := s.store.GetLead(id)
	if !ok {
		return nil, apperr.NotFound("lead not found")
	}
	s.store.UpdateLeadStatus(id, status)

	s.bus.Publish(ctx, events.LeadStatusChanged{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    id,
		OldStatus: string(before.Status),
		NewStatus: string(status),
	})

	if s.scheduler != nil && !status.Closed() {
		if err := s.scheduler.ScheduleFollowUp(ctx, id, string(status)); err != nil {
			s.log.Warn("follow-up scheduling failed", "lead_id", id, "error", err.Error())
		}
	}

	s.saveSnapshot(ctx)
	return s.GetLead(ctx, id)
}

// UpdateContacts replaces the contact list. Leaving no Primary contact is
// legal but strands the cached contact name, so it is logged loudly.
func (s *Service) UpdateContacts(ctx context.Context, id string, reqs []transport.ContactRequest) (*domain.Lead, error) {
	contacts := make([]domain.Contact, 0, len(reqs))
	for _, c := range reqs {
		contacts = append(contacts, domain.Contact{
			ID:    c.ID,
			Name:  sanitize.Text(c.Name),
			Role:  c.Role,
			Phone: phone.NormalizeE164(c.Phone),
			Email: c.Email,
		})
	}

	if !s.store.UpdateContacts(id, contacts) {
		return nil, apperr.NotFound("lead not found")
	}

	lead, _ := s.store.GetLead(id)
	if lead.ContactName == "" {
		s.log.Warn("contact list left without a primary contact", "lead_id", id)
	}
	s.saveSnapshot(ctx)
	return lead, nil
}

// UpdatePrimaryContact renames or reassigns the primary contact.
func (s *Service) UpdatePrimaryContact(ctx context.Context, id, name string, useOwnerAsContact bool) (*domain.Lead, error) {
	if !s.store.UpdatePrimaryContact(id, sanitize.Text(name), useOwnerAsContact) {
		return nil, apperr.NotFound("lead not found")
	}
	s.saveSnapshot(ctx)
	return s.GetLead(ctx, id)
}

// UpdateOpeningHours replaces the weekly schedule.
func (s *Service) UpdateOpeningHours(ctx context.Context, id string, hours domain.OpeningHours) (*domain.Lead, error) {
	if !s.store.UpdateOpeningHours(id, hours) {
		return nil, apperr.NotFound("lead not found")
	}
	s.saveSnapshot(ctx)
	return s.GetLead(ctx, id)
}

// UpdateBankDetails merges settlement fields.
func (s *Service) UpdateBankDetails(ctx context.Context, id string, req transport.UpdateBankDetailsRequest) (*domain.Lead, error) {
	patch := store.BankDetailsPatch{
		IBAN:             req.IBAN,
		AccountOwnerName: req.AccountOwnerName,
		BankName:         req.BankName,
		SwiftCode:        req.SwiftCode,
	}
	if !s.store.UpdateBankDetails(id, patch) {
		return nil, apperr.NotFound("lead not found")
	}
	s.saveSnapshot(ctx)
	return s.GetLead(ctx, id)
}

// UpdateLegalIdentity is the manual-entry fallback for extraction fields.
func (s *Service) UpdateLegalIdentity(ctx context.Context, id string, req transport.UpdateLegalIdentityRequest) (*domain.Lead, error) {
	ok := s.store.UpdateLegalIdentity(id,
		sanitize.Text(req.OfficialLegalName), req.CRNumber, req.TaxNumber, req.LegalForm)
	if !ok {
		return nil, apperr.NotFound("lead not found")
	}
	s.saveSnapshot(ctx)
	return s.GetLead(ctx, id)
}

// UpdateMenu replaces the menu wholesale.
func (s *Service) UpdateMenu(ctx context.Context, id string, menu domain.Menu) (*domain.Lead, error) {
	if !s.store.UpdateMenu(id, menu) {
		return nil, apperr.NotFound("lead not found")
	}
	s.saveSnapshot(ctx)
	return s.GetLead(ctx, id)
}

// UpdatePackageConfiguration stores the assembled package.
func (s *Service) UpdatePackageConfiguration(ctx context.Context, id string, config *domain.PackageConfiguration) (*domain.Lead, error) {
	if !s.store.UpdatePackageConfiguration(id, config) {
		return nil, apperr.NotFound("lead not found")
	}
	s.saveSnapshot(ctx)
	return s.GetLead(ctx, id)
}

// saveSnapshot persists the store best-effort; failures only log.
func (s *Service) saveSnapshot(ctx context.Context) {
	if s.snapshot == nil {
		return
	}
	if err := s.snapshot.Save(ctx, s.store.Snapshot()); err != nil {
		s.log.Warn("store snapshot failed", "error", err.Error())
	}
}
