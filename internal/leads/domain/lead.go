// Package domain contains the lead aggregate and its closed vocabularies.
// Status values keep their exact wire strings so serialized records stay
// compatible with the extraction backend and the frontend board.
package domain

import "time"

// BusinessType classifies the prospective business.
type BusinessType string

const (
	BusinessRestaurant BusinessType = "Restaurant"
	BusinessRetail     BusinessType = "Retail"
	BusinessServices   BusinessType = "Services"
)

// Priority is the sales priority bucket.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// PipelineStatus is the kanban column a lead sits in.
type PipelineStatus string

const (
	StatusNewLeads          PipelineStatus = "New Leads"
	StatusContacted         PipelineStatus = "Contacted"
	StatusProposalSent      PipelineStatus = "Proposal Sent"
	StatusAwaitingSignature PipelineStatus = "Awaiting Signature"
	StatusClosedWon         PipelineStatus = "Closed-Won"
	StatusClosedLost        PipelineStatus = "Closed-Lost"
)

// ValidStatuses lists every kanban column in board order.
var ValidStatuses = []PipelineStatus{
	StatusNewLeads,
	StatusContacted,
	StatusProposalSent,
	StatusAwaitingSignature,
	StatusClosedWon,
	StatusClosedLost,
}

// IsValidStatus reports whether s is a known kanban column.
func IsValidStatus(s PipelineStatus) bool {
	for _, valid := range ValidStatuses {
		if s == valid {
			return true
		}
	}
	return false
}

// Closed reports whether the lead left the active pipeline.
func (s PipelineStatus) Closed() bool {
	return s == StatusClosedWon || s == StatusClosedLost
}

// ContactRole is the role a contact person holds at the business.
type ContactRole string

const (
	RoleOwner         ContactRole = "Owner"
	RoleDecisionMaker ContactRole = "Decision Maker"
	RoleFinance       ContactRole = "Finance"
	RolePrimary       ContactRole = "Primary"
)

// Contact is a person attached to a lead. At most one contact holds
// RolePrimary; the store demotes the previous Primary on reassignment.
type Contact struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Role  ContactRole `json:"role"`
	Phone string      `json:"phone,omitempty"`
	Email string      `json:"email,omitempty"`
}

// DayHours is the opening window for a single weekday.
type DayHours struct {
	IsOpen    bool   `json:"isOpen"`
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
}

// OpeningHours maps weekday name to its hours.
type OpeningHours map[string]DayHours

// Weekdays in schedule display order.
var Weekdays = []string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// BankDetails holds settlement account data, usually populated from
// IBAN-letter extraction and completed manually.
type BankDetails struct {
	IBAN             string `json:"iban"`
	AccountOwnerName string `json:"accountOwnerName"`
	BankName         string `json:"bankName,omitempty"`
	SwiftCode        string `json:"swiftCode,omitempty"`
}

// Complete reports whether all four settlement fields are filled.
func (b *BankDetails) Complete() bool {
	if b == nil {
		return false
	}
	return b.IBAN != "" && b.AccountOwnerName != "" && b.BankName != "" && b.SwiftCode != ""
}

// CRExtraction is the raw commercial-registration extraction payload.
// Fields are pointers because the backend may return null per field.
type CRExtraction struct {
	OfficialBusinessName *string `json:"officialBusinessName"`
	OwnerName            *string `json:"ownerName"`
	TaxNumber            *string `json:"taxNumber"`
	LegalForm            *string `json:"legalForm"`
}

// IBANExtraction is the raw bank-letter extraction payload.
type IBANExtraction struct {
	AccountOwnerName string `json:"accountOwnerName"`
	IBANNumber       string `json:"ibanNumber"`
	BankName         string `json:"bankName"`
	SwiftCode        string `json:"swiftCode"`
}

// ExtractedData keeps raw extraction output alongside the normalized
// legal/bank fields so operators can audit what the backend returned.
type ExtractedData struct {
	CR   *CRExtraction   `json:"cr,omitempty"`
	IBAN *IBANExtraction `json:"iban,omitempty"`
}

// MenuItem is a single dish or product on the storefront menu.
type MenuItem struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
	HasPhoto    bool    `json:"hasPhoto,omitempty"`
	PhotoURL    string  `json:"photoUrl,omitempty"`
	Category    string  `json:"category,omitempty"`
}

// Menu maps category name to its items.
type Menu map[string][]MenuItem

// Items flattens the menu across categories.
func (m Menu) Items() []MenuItem {
	var items []MenuItem
	for _, categoryItems := range m {
		items = append(items, categoryItems...)
	}
	return items
}

// Commission is a per-order-type commission rate in the signed package.
type Commission struct {
	OrderType string  `json:"orderType"`
	Rate      float64 `json:"rate"`
}

// AdditionalCharge is a one-off or recurring charge in the signed package.
type AdditionalCharge struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// Asset is hardware bundled with the package (printer, tablet, signage).
type Asset struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// PackageConfiguration is the commercial package assembled in the builder.
type PackageConfiguration struct {
	TariffID          string             `json:"tariffId"`
	Commissions       []Commission       `json:"commissions"`
	AdditionalCharges []AdditionalCharge `json:"additionalCharges"`
	Assets            []Asset            `json:"assets"`
}

// Lead is the central aggregate, one per prospective business.
type Lead struct {
	ID                string                `json:"id"`
	CompanyName       string                `json:"companyName"`
	OfficialLegalName string                `json:"officialLegalName,omitempty"`
	ContactName       string                `json:"contactName"`
	Phone             string                `json:"phone"`
	Email             string                `json:"email,omitempty"`
	Address           string                `json:"address"`
	BusinessType      BusinessType          `json:"businessType"`
	Rating            float64               `json:"rating,omitempty"`
	RatingsTotal      int                   `json:"userRatingsTotal,omitempty"`
	Priority          Priority              `json:"priority"`
	Value             float64               `json:"value"`
	PlaceID           string                `json:"placeId,omitempty"`
	Website           string                `json:"website,omitempty"`
	Status            PipelineStatus        `json:"status"`
	StatusUpdatedAt   *time.Time            `json:"statusUpdatedAt,omitempty"`
	CreatedAt         time.Time             `json:"createdAt"`
	LastContact       *time.Time            `json:"lastContact,omitempty"`
	Contacts          []Contact             `json:"contacts"`
	OpeningHours      OpeningHours          `json:"openingHours,omitempty"`
	CRNumber          string                `json:"crNumber,omitempty"`
	TaxNumber         string                `json:"taxNumber,omitempty"`
	LegalForm         string                `json:"legalForm,omitempty"`
	BankDetails       *BankDetails          `json:"bankDetails,omitempty"`
	ExtractedData     *ExtractedData        `json:"extractedData,omitempty"`
	Documents         DocumentSet           `json:"documents"`
	Menu              Menu                  `json:"menu,omitempty"`
	CurrentStage      Stage                 `json:"currentStage"`
	StageStatus       map[Stage]StageStatus `json:"stageStatus"`
	Package           string                `json:"package,omitempty"`
	PackageConfig     *PackageConfiguration `json:"packageConfiguration,omitempty"`
}

// PrimaryContact returns the contact holding RolePrimary, or nil.
func (l *Lead) PrimaryContact() *Contact {
	for i := range l.Contacts {
		if l.Contacts[i].Role == RolePrimary {
			return &l.Contacts[i]
		}
	}
	return nil
}

// DefaultOpeningHours returns the intake template: closed Sunday,
// 09:00-22:00 the rest of the week.
func DefaultOpeningHours() OpeningHours {
	hours := make(OpeningHours, len(Weekdays))
	for _, day := range Weekdays {
		if day == "Sunday" {
			hours[day] = DayHours{IsOpen: false, OpenTime: "09:00", CloseTime: "22:00"}
			continue
		}
		hours[day] = DayHours{IsOpen: true, OpenTime: "09:00", CloseTime: "22:00"}
	}
	return hours
}
