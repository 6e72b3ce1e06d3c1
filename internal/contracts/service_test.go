package contracts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"salesdesk_backend/internal/leads/domain"
	"salesdesk_backend/internal/leads/store"
	"salesdesk_backend/platform/apperr"
	"salesdesk_backend/platform/events"
	"salesdesk_backend/platform/logger"
)

type fakeSender struct {
	err         error
	calls       int
	to          string
	subject     string
	html        string
	attachments []Attachment
}

func (f *fakeSender) SendContractEmail(ctx context.Context, toEmail, subject, htmlContent string, attachments ...Attachment) error {
	f.calls++
	f.to = toEmail
	f.subject = subject
	f.html = htmlContent
	f.attachments = attachments
	return f.err
}

// signReadyLead satisfies every stage gate before finalize-sign.
func signReadyLead() *domain.Lead {
	lead := &domain.Lead{
		ID:                "lead-1",
		CompanyName:       "Acme",
		ContactName:       "Sara",
		Phone:             "0555555555",
		Email:             "owner@acme.example",
		Address:           "1 Main St",
		OfficialLegalName: "Acme Trading Co",
		CRNumber:          "1010101010",
		TaxNumber:         "300000000000003",
		LegalForm:         "LLC",
		Status:            domain.StatusProposalSent,
		OpeningHours:      domain.DefaultOpeningHours(),
		Contacts: []domain.Contact{
			{ID: "c1", Name: "Sara", Role: domain.RolePrimary, Email: "sara@acme.example"},
		},
		BankDetails: &domain.BankDetails{
			IBAN:             "SA0380000000608010167519",
			AccountOwnerName: "Acme Trading Co",
			BankName:         "Al Rajhi Bank",
			SwiftCode:        "RJHISARI",
		},
		StageStatus: domain.NewStageStatusMap(),
		PackageConfig: &domain.PackageConfiguration{
			TariffID: "growth",
		},
	}
	items := make([]domain.MenuItem, 15)
	for i := range items {
		items[i] = domain.MenuItem{
			Name:        fmt.Sprintf("Item %d", i+1),
			Price:       25,
			Description: "House specialty",
			HasPhoto:    true,
		}
	}
	lead.Menu = domain.Menu{"Mains": items}
	for _, docType := range domain.DocumentTypes {
		lead.Documents.Set(docType, domain.DocVerified)
	}
	lead.StageStatus[domain.StagePackageBuilder] = domain.StageCompleted
	return lead
}

func newTestService(t *testing.T, lead *domain.Lead, sender Sender) (*Service, *store.Store, *events.InMemoryBus) {
	t.Helper()
	s := store.New()
	if lead != nil {
		s.Restore([]*domain.Lead{lead})
	}
	bus := events.NewInMemoryBus(nil)
	svc := NewService(s, sender, bus, logger.New("development"), "https://app.example.com")
	return svc, s, bus
}

func TestSendContractDeliversAndFlipsStatus(t *testing.T) {
	sender := &fakeSender{}
	svc, s, bus := newTestService(t, signReadyLead(), sender)

	payload, err := svc.SendContract(context.Background(), "lead-1")
	if err != nil {
		t.Fatalf("SendContract() error = %v", err)
	}
	bus.Wait()

	if sender.calls != 1 {
		t.Fatalf("expected 1 delivery, got %d", sender.calls)
	}
	if sender.to != "sara@acme.example" {
		t.Errorf("sent to %q, want primary contact email", sender.to)
	}
	if len(sender.attachments) != 1 || sender.attachments[0].FileName != "signing-link.png" {
		t.Fatalf("expected a signing-link.png attachment, got %+v", sender.attachments)
	}
	if len(sender.attachments[0].Content) == 0 {
		t.Error("QR attachment is empty")
	}
	if !strings.Contains(sender.html, "https://app.example.com/sign/lead-1") {
		t.Error("email body does not contain the signing link")
	}
	if payload.Package == nil || payload.Package.TariffID != "growth" {
		t.Errorf("payload package = %+v, want tariff growth", payload.Package)
	}

	lead, _ := s.GetLead("lead-1")
	if lead.Status != domain.StatusAwaitingSignature {
		t.Errorf("status = %q, want %q", lead.Status, domain.StatusAwaitingSignature)
	}
	if lead.StageStatus[domain.StageFinalizeSign] != domain.StageInProgress {
		t.Errorf("finalize-sign stage = %q, want in-progress", lead.StageStatus[domain.StageFinalizeSign])
	}
}

func TestSendContractBlockedUntilStagesComplete(t *testing.T) {
	lead := signReadyLead()
	lead.CRNumber = "" // legal-identity incomplete
	sender := &fakeSender{}
	svc, s, _ := newTestService(t, lead, sender)

	_, err := svc.SendContract(context.Background(), "lead-1")
	if apperr.GetKind(err) != apperr.KindForbidden {
		t.Fatalf("error kind = %v, want forbidden", apperr.GetKind(err))
	}
	if sender.calls != 0 {
		t.Errorf("expected no delivery attempt, got %d", sender.calls)
	}

	got, _ := s.GetLead("lead-1")
	if got.Status != domain.StatusProposalSent {
		t.Errorf("status changed to %q on a blocked send", got.Status)
	}
}

func TestSendContractWithoutRecipientEmail(t *testing.T) {
	lead := signReadyLead()
	lead.Email = ""
	lead.Contacts[0].Email = ""
	svc, _, _ := newTestService(t, lead, &fakeSender{})

	_, err := svc.SendContract(context.Background(), "lead-1")
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("error kind = %v, want validation", apperr.GetKind(err))
	}
}

func TestSendContractDeliveryFailureKeepsStatus(t *testing.T) {
	sender := &fakeSender{err: errors.New("smtp down")}
	svc, s, _ := newTestService(t, signReadyLead(), sender)

	_, err := svc.SendContract(context.Background(), "lead-1")
	if apperr.GetKind(err) != apperr.KindUnavailable {
		t.Fatalf("error kind = %v, want unavailable", apperr.GetKind(err))
	}

	lead, _ := s.GetLead("lead-1")
	if lead.Status != domain.StatusProposalSent {
		t.Errorf("status = %q, want unchanged after failed delivery", lead.Status)
	}
}

func TestSendContractUnknownLead(t *testing.T) {
	svc, _, _ := newTestService(t, nil, &fakeSender{})

	_, err := svc.SendContract(context.Background(), "nope")
	if apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("error kind = %v, want not found", apperr.GetKind(err))
	}
}

func TestSendContractWithoutSenderConfigured(t *testing.T) {
	svc, _, _ := newTestService(t, signReadyLead(), nil)

	_, err := svc.SendContract(context.Background(), "lead-1")
	if apperr.GetKind(err) != apperr.KindUnavailable {
		t.Fatalf("error kind = %v, want unavailable", apperr.GetKind(err))
	}
}

func TestBuildPayloadFallsBackToFlatFields(t *testing.T) {
	lead := signReadyLead()
	lead.Contacts = nil // no primary contact left

	payload := BuildPayload(lead, time.Now())
	if payload.ContactName != "Sara" {
		t.Errorf("ContactName = %q, want flat field fallback", payload.ContactName)
	}
	if payload.ContactEmail != "owner@acme.example" {
		t.Errorf("ContactEmail = %q, want flat field fallback", payload.ContactEmail)
	}
	if payload.MenuItems != 15 || payload.MenuCategories != 1 {
		t.Errorf("menu summary = %d items / %d categories, want 15/1", payload.MenuItems, payload.MenuCategories)
	}
}
