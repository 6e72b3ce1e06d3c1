package packages

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"salesdesk_backend/internal/leads/domain"
	"salesdesk_backend/internal/leads/store"
	"salesdesk_backend/platform/apperr"
	"salesdesk_backend/platform/logger"
)

const testCatalogYAML = `
tariffs:
  - id: starter
    name: Starter
    monthlyFee: 99
    commissions:
      - orderType: delivery
        rate: 0.25
  - id: growth
    name: Growth
    monthlyFee: 249
    commissions:
      - orderType: delivery
        rate: 0.22
assets:
  - name: Order tablet
    unitPrice: 350
charges:
  - name: Onboarding fee
    amount: 500
`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tariffs.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	return path
}

func TestLoadCatalog(t *testing.T) {
	catalog, err := LoadCatalog(writeCatalog(t, testCatalogYAML))
	if err != nil {
		t.Fatalf("LoadCatalog() error = %v", err)
	}

	if len(catalog.Tariffs) != 2 {
		t.Fatalf("got %d tariffs, want 2", len(catalog.Tariffs))
	}
	growth, ok := catalog.Tariff("growth")
	if !ok {
		t.Fatal("tariff growth not found")
	}
	if growth.MonthlyFee != 249 {
		t.Errorf("growth fee = %v, want 249", growth.MonthlyFee)
	}
	if len(catalog.Assets) != 1 || catalog.Assets[0].UnitPrice != 350 {
		t.Errorf("assets = %+v, want one tablet at 350", catalog.Assets)
	}
	if _, ok := catalog.Tariff("missing"); ok {
		t.Error("lookup of unknown tariff succeeded")
	}
}

func TestLoadCatalogRejectsBadFiles(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no tariffs", "tariffs: []\n"},
		{"tariff without id", "tariffs:\n  - name: Nameless\n"},
		{"not yaml", "{{{"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadCatalog(writeCatalog(t, tt.content)); err == nil {
				t.Error("LoadCatalog() succeeded, want error")
			}
		})
	}

	if _, err := LoadCatalog(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("LoadCatalog() succeeded on a missing file")
	}
}

func newTestPackagesService(t *testing.T) (*Service, *store.Store, string) {
	t.Helper()
	catalog, err := LoadCatalog(writeCatalog(t, testCatalogYAML))
	if err != nil {
		t.Fatalf("LoadCatalog() error = %v", err)
	}
	s := store.New()
	lead := s.AddLead(store.AddLeadInput{
		CompanyName: "Acme",
		ContactName: "Sara",
		Phone:       "0555555555",
		Address:     "1 Main St",
	})
	return NewService(catalog, s, logger.New("development")), s, lead.ID
}

func TestApplyWritesConfiguration(t *testing.T) {
	svc, s, leadID := newTestPackagesService(t)

	lead, err := svc.Apply(context.Background(), leadID, ApplyRequest{
		TariffID: "growth",
		Assets:   []domain.Asset{{Name: "Order tablet", Quantity: 2, UnitPrice: 350}},
	})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if lead.PackageConfig == nil || lead.PackageConfig.TariffID != "growth" {
		t.Fatalf("PackageConfig = %+v, want tariff growth", lead.PackageConfig)
	}
	// Tariff commissions fill in when the builder sends none.
	if len(lead.PackageConfig.Commissions) != 1 || lead.PackageConfig.Commissions[0].Rate != 0.22 {
		t.Errorf("commissions = %+v, want growth defaults", lead.PackageConfig.Commissions)
	}
	if lead.Package != "growth" {
		t.Errorf("Package = %q, want growth", lead.Package)
	}

	stored, _ := s.GetLead(leadID)
	if stored.StageStatus[domain.StagePackageBuilder] == domain.StageCompleted {
		t.Error("package-builder stage completed without markCompleted")
	}
}

func TestApplyMarkCompletedStampsStage(t *testing.T) {
	svc, s, leadID := newTestPackagesService(t)

	_, err := svc.Apply(context.Background(), leadID, ApplyRequest{
		TariffID:      "starter",
		MarkCompleted: true,
	})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	lead, _ := s.GetLead(leadID)
	if lead.StageStatus[domain.StagePackageBuilder] != domain.StageCompleted {
		t.Errorf("package-builder stage = %q, want completed", lead.StageStatus[domain.StagePackageBuilder])
	}
}

func TestApplyRejectsUnknownTariff(t *testing.T) {
	svc, _, leadID := newTestPackagesService(t)

	_, err := svc.Apply(context.Background(), leadID, ApplyRequest{TariffID: "platinum"})
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("error kind = %v, want validation", apperr.GetKind(err))
	}
}

func TestApplyUnknownLead(t *testing.T) {
	svc, _, _ := newTestPackagesService(t)

	_, err := svc.Apply(context.Background(), "nope", ApplyRequest{TariffID: "starter"})
	if apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("error kind = %v, want not found", apperr.GetKind(err))
	}
}
