// Package stagegate answers yes/no questions about activation stage
// completion and accessibility. It performs no transitions itself; the
// service layer drives those on operator actions.
package stagegate

import (
	"strings"

	"salesdesk_backend/internal/leads/domain"
)

// IsStageComplete evaluates the fixed checklist for the given stage
// against the current lead state. Missing data yields false, never an error.
func IsStageComplete(lead *domain.Lead, stage domain.Stage) bool {
	if lead == nil {
		return false
	}

	switch stage {
	case domain.StageVendorProfile:
		return vendorProfileComplete(lead)
	case domain.StageLegalIdentity:
		return legalIdentityComplete(lead)
	case domain.StageStorefrontMenu:
		return storefrontMenuComplete(lead)
	case domain.StagePackageBuilder:
		// Externally asserted by the operator once the package is
		// finalized, not derived from package contents.
		return lead.StageStatus[domain.StagePackageBuilder] == domain.StageCompleted
	case domain.StageFinalizeSign:
		return lead.Status == domain.StatusAwaitingSignature || lead.Status == domain.StatusClosedWon
	}
	return false
}

// CanAccessStage permits free navigation everywhere except the terminal
// finalize-sign stage, which requires all four prior stages complete.
func CanAccessStage(lead *domain.Lead, stage domain.Stage) bool {
	if stage != domain.StageFinalizeSign {
		return true
	}
	for _, prior := range domain.StageOrder[:len(domain.StageOrder)-1] {
		if !IsStageComplete(lead, prior) {
			return false
		}
	}
	return true
}

func vendorProfileComplete(lead *domain.Lead) bool {
	return filled(lead.CompanyName) &&
		filled(lead.ContactName) &&
		filled(lead.Phone) &&
		filled(lead.Address) &&
		len(lead.OpeningHours) > 0
}

func legalIdentityComplete(lead *domain.Lead) bool {
	if lead.Documents.CR != domain.DocVerified || lead.Documents.IBAN != domain.DocVerified {
		return false
	}
	if !filled(lead.OfficialLegalName) || !filled(lead.CRNumber) {
		return false
	}
	primary := lead.PrimaryContact()
	if primary == nil || !filled(primary.Name) {
		return false
	}
	if !lead.BankDetails.Complete() {
		return false
	}
	return filled(lead.TaxNumber) && filled(lead.LegalForm)
}

func storefrontMenuComplete(lead *domain.Lead) bool {
	docs := lead.Documents
	if docs.Logo != domain.DocVerified || docs.CoverPhoto != domain.DocVerified ||
		docs.StorePhoto != domain.DocVerified || docs.Menu != domain.DocVerified {
		return false
	}
	if len(lead.Menu) == 0 {
		return false
	}

	items := lead.Menu.Items()
	total := len(items)
	if total < 15 {
		return false
	}

	withDescription, withPhoto := 0, 0
	for _, item := range items {
		if filled(item.Description) {
			withDescription++
		}
		// Unlike the menu health score, a photoUrl counts here too.
		if item.HasPhoto || item.PhotoURL != "" {
			withPhoto++
		}
	}

	return float64(withDescription)/float64(total) >= 0.8 &&
		float64(withPhoto)/float64(total) >= 0.5
}

func filled(s string) bool {
	return strings.TrimSpace(s) != ""
}
