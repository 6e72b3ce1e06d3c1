package stagegate

import (
	"fmt"
	"testing"

	"salesdesk_backend/internal/leads/domain"
	"salesdesk_backend/internal/leads/metrics"
	"salesdesk_backend/internal/leads/store"
)

// qualifiedLead builds a lead that satisfies every stage up to and
// including package-builder. Tests knock individual fields out.
func qualifiedLead() *domain.Lead {
	lead := &domain.Lead{
		ID:                "lead-1",
		CompanyName:       "Acme",
		ContactName:       "Sara",
		Phone:             "0555555555",
		Address:           "1 Main St",
		OfficialLegalName: "Acme Trading Co",
		CRNumber:          "1010101010",
		TaxNumber:         "300000000000003",
		LegalForm:         "LLC",
		Status:            domain.StatusProposalSent,
		OpeningHours:      domain.DefaultOpeningHours(),
		Contacts: []domain.Contact{
			{ID: "c1", Name: "Sara", Role: domain.RolePrimary},
		},
		BankDetails: &domain.BankDetails{
			IBAN:             "SA03 8000 0000 6080 1016 7519",
			AccountOwnerName: "Acme Trading Co",
			BankName:         "Al Rajhi Bank",
			SwiftCode:        "RJHISARI",
		},
		Menu:        domain.Menu{"Mains": menuItems(15, 15, 8)},
		StageStatus: domain.NewStageStatusMap(),
	}
	for _, docType := range domain.DocumentTypes {
		lead.Documents.Set(docType, domain.DocVerified)
	}
	lead.StageStatus[domain.StagePackageBuilder] = domain.StageCompleted
	return lead
}

// menuItems builds n items, withDesc of them described and withPhoto of
// them carrying hasPhoto. All priced above zero.
func menuItems(n, withDesc, withPhoto int) []domain.MenuItem {
	items := make([]domain.MenuItem, n)
	for i := range items {
		items[i] = domain.MenuItem{Name: fmt.Sprintf("Item %d", i+1), Price: 25}
		if i < withDesc {
			items[i].Description = "House specialty"
		}
		if i < withPhoto {
			items[i].HasPhoto = true
		}
	}
	return items
}

func TestVendorProfileComplete(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Lead)
		want   bool
	}{
		{"all present", func(l *domain.Lead) {}, true},
		{"missing company name", func(l *domain.Lead) { l.CompanyName = "" }, false},
		{"blank contact name", func(l *domain.Lead) { l.ContactName = "   " }, false},
		{"missing phone", func(l *domain.Lead) { l.Phone = "" }, false},
		{"missing address", func(l *domain.Lead) { l.Address = "" }, false},
		{"no opening hours", func(l *domain.Lead) { l.OpeningHours = nil }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lead := qualifiedLead()
			tt.mutate(lead)
			if got := IsStageComplete(lead, domain.StageVendorProfile); got != tt.want {
				t.Errorf("IsStageComplete(vendor-profile) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLegalIdentityComplete(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Lead)
		want   bool
	}{
		{"all present", func(l *domain.Lead) {}, true},
		{"cr not verified", func(l *domain.Lead) { l.Documents.CR = domain.DocNeedsReview }, false},
		{"iban still processing", func(l *domain.Lead) { l.Documents.IBAN = domain.DocProcessing }, false},
		{"missing official legal name", func(l *domain.Lead) { l.OfficialLegalName = "" }, false},
		{"missing cr number", func(l *domain.Lead) { l.CRNumber = "" }, false},
		{"no primary contact", func(l *domain.Lead) {
			l.Contacts[0].Role = domain.RoleOwner
		}, false},
		{"primary contact blank name", func(l *domain.Lead) {
			l.Contacts[0].Name = "  "
		}, false},
		{"bank details missing swift", func(l *domain.Lead) { l.BankDetails.SwiftCode = "" }, false},
		{"nil bank details", func(l *domain.Lead) { l.BankDetails = nil }, false},
		{"missing tax number", func(l *domain.Lead) { l.TaxNumber = "" }, false},
		{"missing legal form", func(l *domain.Lead) { l.LegalForm = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lead := qualifiedLead()
			tt.mutate(lead)
			if got := IsStageComplete(lead, domain.StageLegalIdentity); got != tt.want {
				t.Errorf("IsStageComplete(legal-identity) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStorefrontMenuComplete(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Lead)
		want   bool
	}{
		{"all present", func(l *domain.Lead) {}, true},
		{"logo not verified", func(l *domain.Lead) { l.Documents.Logo = domain.DocNone }, false},
		{"store photo needs review", func(l *domain.Lead) { l.Documents.StorePhoto = domain.DocNeedsReview }, false},
		{"empty menu", func(l *domain.Lead) { l.Menu = domain.Menu{} }, false},
		{"fewer than 15 items", func(l *domain.Lead) {
			l.Menu = domain.Menu{"Mains": menuItems(14, 14, 14)}
		}, false},
		{"description coverage below 80%", func(l *domain.Lead) {
			l.Menu = domain.Menu{"Mains": menuItems(20, 15, 20)}
		}, false},
		{"photo coverage below 50%", func(l *domain.Lead) {
			l.Menu = domain.Menu{"Mains": menuItems(20, 20, 9)}
		}, false},
		{"photo coverage exactly 50%", func(l *domain.Lead) {
			l.Menu = domain.Menu{"Mains": menuItems(20, 20, 10)}
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lead := qualifiedLead()
			tt.mutate(lead)
			if got := IsStageComplete(lead, domain.StageStorefrontMenu); got != tt.want {
				t.Errorf("IsStageComplete(storefront-menu) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStorefrontPhotoCountAcceptsPhotoURL(t *testing.T) {
	lead := qualifiedLead()
	items := menuItems(16, 16, 0)
	for i := 0; i < 8; i++ {
		items[i].PhotoURL = "https://cdn.example.com/item.jpg"
	}
	lead.Menu = domain.Menu{"Mains": items}

	if !IsStageComplete(lead, domain.StageStorefrontMenu) {
		t.Error("photoUrl-only items should satisfy the storefront photo ratio")
	}
}

func TestPackageBuilderIsExternallyAsserted(t *testing.T) {
	lead := qualifiedLead()
	lead.PackageConfig = &domain.PackageConfiguration{TariffID: "standard"}
	lead.StageStatus[domain.StagePackageBuilder] = domain.StageInProgress

	if IsStageComplete(lead, domain.StagePackageBuilder) {
		t.Error("package contents alone must not complete package-builder")
	}

	lead.StageStatus[domain.StagePackageBuilder] = domain.StageCompleted
	if !IsStageComplete(lead, domain.StagePackageBuilder) {
		t.Error("completed marker should complete package-builder")
	}
}

func TestFinalizeSignTracksStatus(t *testing.T) {
	lead := qualifiedLead()
	for status, want := range map[domain.PipelineStatus]bool{
		domain.StatusNewLeads:          false,
		domain.StatusProposalSent:      false,
		domain.StatusAwaitingSignature: true,
		domain.StatusClosedWon:         true,
		domain.StatusClosedLost:        false,
	} {
		lead.Status = status
		if got := IsStageComplete(lead, domain.StageFinalizeSign); got != want {
			t.Errorf("IsStageComplete(finalize-sign) with status %q = %v, want %v", status, got, want)
		}
	}
}

func TestCanAccessStagePermissiveExceptTerminal(t *testing.T) {
	// A completely empty lead may still wander into any non-terminal stage.
	empty := &domain.Lead{StageStatus: domain.NewStageStatusMap()}
	for _, stage := range domain.StageOrder[:len(domain.StageOrder)-1] {
		if !CanAccessStage(empty, stage) {
			t.Errorf("CanAccessStage(%s) = false, want permissive true", stage)
		}
	}
	if CanAccessStage(empty, domain.StageFinalizeSign) {
		t.Error("finalize-sign should be gated for an empty lead")
	}
}

func TestFinalizeSignGatedOnAllPriorStages(t *testing.T) {
	knockouts := map[string]func(*domain.Lead){
		"vendor-profile incomplete":  func(l *domain.Lead) { l.Address = "" },
		"legal-identity incomplete":  func(l *domain.Lead) { l.TaxNumber = "" },
		"storefront-menu incomplete": func(l *domain.Lead) { l.Menu = nil },
		"package-builder incomplete": func(l *domain.Lead) {
			l.StageStatus[domain.StagePackageBuilder] = domain.StagePending
		},
	}

	if !CanAccessStage(qualifiedLead(), domain.StageFinalizeSign) {
		t.Fatal("fully qualified lead should access finalize-sign")
	}
	for name, knockout := range knockouts {
		t.Run(name, func(t *testing.T) {
			lead := qualifiedLead()
			knockout(lead)
			if CanAccessStage(lead, domain.StageFinalizeSign) {
				t.Error("finalize-sign accessible with an incomplete prior stage")
			}
		})
	}
}

// End-to-end activation scenario: intake, verification, menu build-out.
func TestActivationScenario(t *testing.T) {
	s := store.New()
	lead := s.AddLead(store.AddLeadInput{
		CompanyName: "Acme",
		ContactName: "Sara",
		Phone:       "0555555555",
		Address:     "1 Main St",
	})

	got, _ := s.GetLead(lead.ID)
	if !IsStageComplete(got, domain.StageVendorProfile) {
		t.Fatal("vendor-profile should be complete right after intake with defaults")
	}
	if score := metrics.ActivationScore(got); score != 0 {
		t.Fatalf("ActivationScore = %d, want 0 before any verification", score)
	}

	for _, docType := range domain.DocumentTypes {
		s.UpdateDocumentStatus(lead.ID, docType, domain.DocVerified)
	}
	got, _ = s.GetLead(lead.ID)
	if score := metrics.ActivationScore(got); score != 100 {
		t.Fatalf("ActivationScore = %d, want 100 with all six verified", score)
	}

	// 15 items, all described and priced, 8 with photos.
	s.UpdateMenu(lead.ID, domain.Menu{"Mains": menuItems(15, 15, 8)})
	got, _ = s.GetLead(lead.ID)
	if !IsStageComplete(got, domain.StageStorefrontMenu) {
		t.Error("storefront-menu should be complete")
	}
	if health := metrics.MenuHealth(got); health.MenuHealth != 100 {
		t.Errorf("MenuHealth = %d, want 100", health.MenuHealth)
	}
}
