// Package transport defines the request/response DTOs for the leads API.
package transport

import (
	"salesdesk_backend/internal/leads/domain"
)

// CreateLeadRequest is the intake payload. Contacts are optional; when
// absent the flat contactName/phone/email triple seeds the primary contact.
type CreateLeadRequest struct {
	CompanyName  string              `json:"companyName" validate:"required,min=2,max=200"`
	ContactName  string              `json:"contactName" validate:"omitempty,max=120"`
	Phone        string              `json:"phone" validate:"required,min=7,max=20"`
	Email        string              `json:"email" validate:"omitempty,email"`
	Address      string              `json:"address" validate:"required,max=300"`
	BusinessType domain.BusinessType `json:"businessType" validate:"omitempty,oneof=Restaurant Retail Services"`
	Rating       float64             `json:"rating" validate:"omitempty,gte=0,lte=5"`
	RatingsTotal int                 `json:"userRatingsTotal" validate:"omitempty,gte=0"`
	Priority     domain.Priority     `json:"priority" validate:"omitempty,oneof=High Medium Low"`
	Value        float64             `json:"value" validate:"omitempty,gte=0"`
	PlaceID      string              `json:"placeId" validate:"omitempty,max=200"`
	Website      string              `json:"website" validate:"omitempty,url"`
	Contacts     []ContactRequest    `json:"contacts" validate:"omitempty,dive"`
	OpeningHours domain.OpeningHours `json:"openingHours"`
}

// ContactRequest is one contact entry in a create or replace request.
type ContactRequest struct {
	ID    string             `json:"id" validate:"omitempty,max=64"`
	Name  string             `json:"name" validate:"required,max=120"`
	Role  domain.ContactRole `json:"role" validate:"required,oneof=Owner 'Decision Maker' Finance Primary"`
	Phone string             `json:"phone" validate:"omitempty,max=20"`
	Email string             `json:"email" validate:"omitempty,email"`
}

// UpdateStatusRequest moves a lead between kanban columns.
type UpdateStatusRequest struct {
	Status domain.PipelineStatus `json:"status" validate:"required"`
}

// UpdateContactsRequest replaces the contact list wholesale.
type UpdateContactsRequest struct {
	Contacts []ContactRequest `json:"contacts" validate:"required,dive"`
}

// UpdatePrimaryContactRequest renames or reassigns the primary contact.
type UpdatePrimaryContactRequest struct {
	Name              string `json:"name" validate:"omitempty,max=120"`
	UseOwnerAsContact bool   `json:"useOwnerAsContact"`
}

// UpdateOpeningHoursRequest replaces the weekly schedule.
type UpdateOpeningHoursRequest struct {
	OpeningHours domain.OpeningHours `json:"openingHours" validate:"required"`
}

// UpdateBankDetailsRequest merges settlement fields; absent fields are untouched.
type UpdateBankDetailsRequest struct {
	IBAN             *string `json:"iban" validate:"omitempty,max=50"`
	AccountOwnerName *string `json:"accountOwnerName" validate:"omitempty,max=200"`
	BankName         *string `json:"bankName" validate:"omitempty,max=120"`
	SwiftCode        *string `json:"swiftCode" validate:"omitempty,max=20"`
}

// UpdateLegalIdentityRequest is the manual-entry fallback for the fields
// the extraction path would have populated.
type UpdateLegalIdentityRequest struct {
	OfficialLegalName string `json:"officialLegalName" validate:"omitempty,max=200"`
	CRNumber          string `json:"crNumber" validate:"omitempty,max=30"`
	TaxNumber         string `json:"taxNumber" validate:"omitempty,max=30"`
	LegalForm         string `json:"legalForm" validate:"omitempty,max=60"`
}

// UpdateMenuRequest replaces the whole menu.
type UpdateMenuRequest struct {
	Menu domain.Menu `json:"menu" validate:"required"`
}

// UpdateStageStatusRequest sets one stage's progress marker.
type UpdateStageStatusRequest struct {
	Status domain.StageStatus `json:"status" validate:"required,oneof=pending in-progress completed needs-review"`
}

// StageStateResponse is the stepper view for one lead.
type StageStateResponse struct {
	CurrentStage domain.Stage      `json:"currentStage"`
	Stages       []StageEntry      `json:"stages"`
	StageStatus  map[string]string `json:"stageStatus"`
}

// StageEntry is one row in the stepper.
type StageEntry struct {
	Stage      domain.Stage       `json:"stage"`
	Status     domain.StageStatus `json:"status"`
	Complete   bool               `json:"complete"`
	Accessible bool               `json:"accessible"`
}
