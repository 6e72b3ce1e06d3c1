package contracts

import (
	"context"
	"fmt"
	"time"

	"salesdesk_backend/internal/events"
	"salesdesk_backend/internal/leads/domain"
	"salesdesk_backend/internal/leads/stagegate"
	"salesdesk_backend/internal/leads/store"
	"salesdesk_backend/platform/apperr"
	"salesdesk_backend/platform/logger"

	qrcode "github.com/skip2/go-qrcode"
)

const qrCodeSize = 256

// Service builds and dispatches the activation contract.
type Service struct {
	store          *store.Store
	sender         Sender
	bus            events.Bus
	log            *logger.Logger
	signingBaseURL string
	now            func() time.Time
}

// NewService wires the contract service. sender may be nil when email
// delivery is not configured.
func NewService(s *store.Store, sender Sender, bus events.Bus, log *logger.Logger, signingBaseURL string) *Service {
	return &Service{
		store:          s,
		sender:         sender,
		bus:            bus,
		log:            log,
		signingBaseURL: signingBaseURL,
		now:            time.Now,
	}
}

// Preview returns the contract payload without sending anything.
func (s *Service) Preview(ctx context.Context, leadID string) (*Payload, error) {
	lead, ok := s.store.GetLead(leadID)
	if !ok {
		return nil, apperr.NotFound("lead not found")
	}
	payload := BuildPayload(lead, s.now())
	return &payload, nil
}

// SendContract renders the signing email with a QR code of the signing
// link, delivers it, and moves the lead to "Awaiting Signature". The
// final stage must be reachable: every earlier stage complete.
func (s *Service) SendContract(ctx context.Context, leadID string) (*Payload, error) {
	lead, ok := s.store.GetLead(leadID)
	if !ok {
		return nil, apperr.NotFound("lead not found")
	}
	if !stagegate.CanAccessStage(lead, domain.StageFinalizeSign) {
		return nil, apperr.Forbidden("complete the previous stages before finalizing")
	}
	if s.sender == nil {
		return nil, apperr.Unavailable("contract email delivery is not configured")
	}

	payload := BuildPayload(lead, s.now())
	if payload.ContactEmail == "" {
		return nil, apperr.Validation("lead has no contact email to send the contract to")
	}

	signingURL := fmt.Sprintf("%s/sign/%s", s.signingBaseURL, lead.ID)
	qrPNG, err := qrcode.Encode(signingURL, qrcode.Medium, qrCodeSize)
	if err != nil {
		return nil, apperr.Internal("could not encode signing QR code")
	}

	data := contractEmailData{
		Title:             "Activation contract",
		Heading:           "Your contract is ready",
		CTALabel:          "Review and sign",
		CTAURL:            signingURL,
		ContactName:       payload.ContactName,
		CompanyName:       payload.CompanyName,
		OfficialLegalName: payload.OfficialLegalName,
		CRNumber:          payload.CRNumber,
		TaxNumber:         payload.TaxNumber,
		MenuCategories:    payload.MenuCategories,
		MenuItems:         payload.MenuItems,
	}
	if payload.Package != nil {
		data.TariffID = payload.Package.TariffID
	}

	html, err := renderContractEmail(data)
	if err != nil {
		return nil, apperr.Internal("could not render contract email")
	}

	subject := fmt.Sprintf(subjectContractFmt, payload.CompanyName)
	attachment := Attachment{FileName: "signing-link.png", Content: qrPNG}
	if err := s.sender.SendContractEmail(ctx, payload.ContactEmail, subject, html, attachment); err != nil {
		s.log.Error("contract email delivery failed", "lead_id", leadID, "error", err.Error())
		return nil, apperr.Unavailable("contract email could not be delivered")
	}

	s.store.UpdateLeadStatus(leadID, domain.StatusAwaitingSignature)
	s.store.UpdateStageStatus(leadID, domain.StageFinalizeSign, domain.StageInProgress)
	s.log.StageEvent(leadID, string(domain.StageFinalizeSign), "contract_sent")
	s.bus.Publish(ctx, events.ContractSent{
		BaseEvent:   events.NewBaseEvent(),
		LeadID:      leadID,
		CompanyName: payload.CompanyName,
		Recipient:   payload.ContactEmail,
	})

	return &payload, nil
}
