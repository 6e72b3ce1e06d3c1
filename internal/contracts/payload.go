// Package contracts assembles the activation contract from a finished
// lead and dispatches it for signing.
package contracts

import (
	"time"

	"salesdesk_backend/internal/leads/domain"
)

// Payload is the serialized contract content. It is rendered into the
// signing email and returned verbatim by the preview endpoint.
type Payload struct {
	LeadID            string                       `json:"leadId"`
	CompanyName       string                       `json:"companyName"`
	OfficialLegalName string                       `json:"officialLegalName"`
	CRNumber          string                       `json:"crNumber"`
	TaxNumber         string                       `json:"taxNumber"`
	LegalForm         string                       `json:"legalForm"`
	ContactName       string                       `json:"contactName"`
	ContactEmail      string                       `json:"contactEmail"`
	ContactPhone      string                       `json:"contactPhone"`
	Address           string                       `json:"address"`
	BankDetails       domain.BankDetails           `json:"bankDetails"`
	Package           *domain.PackageConfiguration `json:"package,omitempty"`
	MenuCategories    int                          `json:"menuCategories"`
	MenuItems         int                          `json:"menuItems"`
	GeneratedAt       time.Time                    `json:"generatedAt"`
}

// BuildPayload flattens the lead record into contract content.
func BuildPayload(lead *domain.Lead, now time.Time) Payload {
	payload := Payload{
		LeadID:            lead.ID,
		CompanyName:       lead.CompanyName,
		OfficialLegalName: lead.OfficialLegalName,
		CRNumber:          lead.CRNumber,
		TaxNumber:         lead.TaxNumber,
		LegalForm:         lead.LegalForm,
		Address:           lead.Address,
		Package:           lead.PackageConfig,
		MenuCategories:    len(lead.Menu),
		MenuItems:         len(lead.Menu.Items()),
		GeneratedAt:       now,
	}
	if lead.BankDetails != nil {
		payload.BankDetails = *lead.BankDetails
	}

	if contact := lead.PrimaryContact(); contact != nil {
		payload.ContactName = contact.Name
		payload.ContactEmail = contact.Email
		payload.ContactPhone = contact.Phone
	}
	if payload.ContactEmail == "" {
		payload.ContactEmail = lead.Email
	}
	if payload.ContactName == "" {
		payload.ContactName = lead.ContactName
	}
	if payload.ContactPhone == "" {
		payload.ContactPhone = lead.Phone
	}

	return payload
}
