// Package store is the authoritative in-memory state container for leads
// and the selection cursor. Every mutation replaces the affected lead
// copy-on-write; other leads are never touched. The store owns all lead
// instances and only ever hands out clones.
package store

import (
	"strings"
	"sync"
	"time"

	"salesdesk_backend/internal/leads/domain"

	"github.com/google/uuid"
)

// Store holds all leads keyed by id, plus insertion order for stable
// listing and a single selected-lead cursor.
type Store struct {
	mu       sync.RWMutex
	leads    map[string]*domain.Lead
	order    []string
	selected string

	now   func() time.Time
	newID func() string
}

// New creates an empty store.
func New() *Store {
	return &Store{
		leads: make(map[string]*domain.Lead),
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// AddLeadInput is the intake payload. Either Contacts or the flat
// ContactName/Phone/Email triple seeds the contact list.
type AddLeadInput struct {
	CompanyName  string
	ContactName  string
	Phone        string
	Email        string
	Address      string
	BusinessType domain.BusinessType
	Rating       float64
	RatingsTotal int
	Priority     domain.Priority
	Value        float64
	PlaceID      string
	Website      string
	Contacts     []domain.Contact
	OpeningHours domain.OpeningHours
}

// AddLead creates a lead with intake defaults and returns a clone of it.
func (s *Store) AddLead(input AddLeadInput) *domain.Lead {
	s.mu.Lock()
	defer s.mu.Unlock()

	contacts := make([]domain.Contact, len(input.Contacts))
	copy(contacts, input.Contacts)
	contactName := input.ContactName
	if len(contacts) == 0 && input.ContactName != "" {
		contacts = append(contacts, domain.Contact{
			ID:    s.newID(),
			Name:  input.ContactName,
			Role:  domain.RolePrimary,
			Phone: input.Phone,
			Email: input.Email,
		})
	}
	if primary := primaryOf(contacts); primary != nil {
		contactName = primary.Name
	}

	hours := input.OpeningHours
	if hours == nil {
		hours = domain.DefaultOpeningHours()
	}

	lead := &domain.Lead{
		ID:           s.newID(),
		CompanyName:  input.CompanyName,
		ContactName:  contactName,
		Phone:        input.Phone,
		Email:        input.Email,
		Address:      input.Address,
		BusinessType: input.BusinessType,
		Rating:       input.Rating,
		RatingsTotal: input.RatingsTotal,
		Priority:     input.Priority,
		Value:        input.Value,
		PlaceID:      input.PlaceID,
		Website:      input.Website,
		Status:       domain.StatusNewLeads,
		CreatedAt:    s.now(),
		Contacts:     contacts,
		OpeningHours: hours,
		CurrentStage: domain.StageVendorProfile,
		StageStatus:  domain.NewStageStatusMap(),
	}

	s.leads[lead.ID] = lead
	s.order = append(s.order, lead.ID)
	return lead.Clone()
}

// mutate clones the lead, applies fn to the clone, and swaps it in.
// Returns false without side effects when the id is unknown.
func (s *Store) mutate(id string, fn func(*domain.Lead)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.leads[id]
	if !ok {
		return false
	}

	next := existing.Clone()
	fn(next)
	s.leads[id] = next
	return true
}

// UpdateLeadStatus moves the lead between kanban columns and stamps the
// status-change and last-contact timestamps.
func (s *Store) UpdateLeadStatus(id string, status domain.PipelineStatus) bool {
	return s.mutate(id, func(lead *domain.Lead) {
		now := s.now()
		lead.Status = status
		lead.StatusUpdatedAt = &now
		lead.LastContact = &now
	})
}

// UpdateDocumentStatus sets the status of a single document slot.
func (s *Store) UpdateDocumentStatus(id string, docType domain.DocumentType, status domain.DocumentStatus) bool {
	return s.mutate(id, func(lead *domain.Lead) {
		lead.Documents.Set(docType, status)
	})
}

// UpdateExtractedData stores raw extraction output for the cr or iban slot.
func (s *Store) UpdateExtractedData(id string, docType domain.DocumentType, cr *domain.CRExtraction, iban *domain.IBANExtraction) bool {
	return s.mutate(id, func(lead *domain.Lead) {
		if lead.ExtractedData == nil {
			lead.ExtractedData = &domain.ExtractedData{}
		}
		switch docType {
		case domain.DocCR:
			lead.ExtractedData.CR = cr
		case domain.DocIBAN:
			lead.ExtractedData.IBAN = iban
		}
	})
}

// UpdateLegalIdentity writes the normalized legal fields. Empty values
// leave the existing field untouched so manual entry can fill gaps.
func (s *Store) UpdateLegalIdentity(id, officialLegalName, crNumber, taxNumber, legalForm string) bool {
	return s.mutate(id, func(lead *domain.Lead) {
		if officialLegalName != "" {
			lead.OfficialLegalName = officialLegalName
		}
		if crNumber != "" {
			lead.CRNumber = crNumber
		}
		if taxNumber != "" {
			lead.TaxNumber = taxNumber
		}
		if legalForm != "" {
			lead.LegalForm = legalForm
		}
	})
}

// UpdateMenu replaces the whole menu.
func (s *Store) UpdateMenu(id string, menu domain.Menu) bool {
	return s.mutate(id, func(lead *domain.Lead) {
		lead.Menu = menu
	})
}

// UpdateOpeningHours replaces the whole schedule.
func (s *Store) UpdateOpeningHours(id string, hours domain.OpeningHours) bool {
	return s.mutate(id, func(lead *domain.Lead) {
		lead.OpeningHours = hours
	})
}

// UpdateStageStatus sets a single stage's progress marker.
func (s *Store) UpdateStageStatus(id string, stage domain.Stage, status domain.StageStatus) bool {
	return s.mutate(id, func(lead *domain.Lead) {
		if lead.StageStatus == nil {
			lead.StageStatus = domain.NewStageStatusMap()
		}
		lead.StageStatus[stage] = status
	})
}

// SetCurrentStage moves the stepper cursor.
func (s *Store) SetCurrentStage(id string, stage domain.Stage) bool {
	return s.mutate(id, func(lead *domain.Lead) {
		lead.CurrentStage = stage
	})
}

// UpdatePrimaryContact finds or creates the Primary contact, demoting any
// other Primary to Decision Maker, and refreshes the cached contactName.
// With useOwnerAsContact the Owner contact is promoted instead of renamed.
func (s *Store) UpdatePrimaryContact(id, name string, useOwnerAsContact bool) bool {
	return s.mutate(id, func(lead *domain.Lead) {
		if useOwnerAsContact {
			ownerIdx := -1
			for i := range lead.Contacts {
				if lead.Contacts[i].Role == domain.RoleOwner {
					ownerIdx = i
					break
				}
			}
			if ownerIdx >= 0 {
				demotePrimary(lead.Contacts)
				lead.Contacts[ownerIdx].Role = domain.RolePrimary
				if name != "" {
					lead.Contacts[ownerIdx].Name = name
				}
				lead.ContactName = lead.Contacts[ownerIdx].Name
				return
			}
		}

		for i := range lead.Contacts {
			if lead.Contacts[i].Role == domain.RolePrimary {
				lead.Contacts[i].Name = name
				lead.ContactName = name
				return
			}
		}

		demotePrimary(lead.Contacts)
		lead.Contacts = append(lead.Contacts, domain.Contact{
			ID:   s.newID(),
			Name: name,
			Role: domain.RolePrimary,
		})
		lead.ContactName = name
	})
}

// UpdateContacts replaces the contact list wholesale and recomputes the
// cached contactName from whichever contact holds Primary. If none does,
// contactName becomes empty; the service layer logs a warning for that.
func (s *Store) UpdateContacts(id string, contacts []domain.Contact) bool {
	return s.mutate(id, func(lead *domain.Lead) {
		replaced := make([]domain.Contact, len(contacts))
		copy(replaced, contacts)
		lead.Contacts = replaced

		lead.ContactName = ""
		if primary := primaryOf(replaced); primary != nil {
			lead.ContactName = primary.Name
		}
	})
}

// BankDetailsPatch carries the fields to merge; nil fields are left alone.
type BankDetailsPatch struct {
	IBAN             *string
	AccountOwnerName *string
	BankName         *string
	SwiftCode        *string
}

// UpdateBankDetails shallow-merges the patch into existing bank details,
// starting from an empty base when the lead has none yet.
func (s *Store) UpdateBankDetails(id string, patch BankDetailsPatch) bool {
	return s.mutate(id, func(lead *domain.Lead) {
		if lead.BankDetails == nil {
			lead.BankDetails = &domain.BankDetails{}
		}
		if patch.IBAN != nil {
			lead.BankDetails.IBAN = *patch.IBAN
		}
		if patch.AccountOwnerName != nil {
			lead.BankDetails.AccountOwnerName = *patch.AccountOwnerName
		}
		if patch.BankName != nil {
			lead.BankDetails.BankName = *patch.BankName
		}
		if patch.SwiftCode != nil {
			lead.BankDetails.SwiftCode = *patch.SwiftCode
		}
	})
}

// UpdatePackageConfiguration replaces the commercial package.
func (s *Store) UpdatePackageConfiguration(id string, config *domain.PackageConfiguration) bool {
	return s.mutate(id, func(lead *domain.Lead) {
		lead.PackageConfig = config
		if config != nil {
			lead.Package = config.TariffID
		}
	})
}

// GetLead returns a clone of the lead, false when unknown.
func (s *Store) GetLead(id string) (*domain.Lead, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lead, ok := s.leads[id]
	if !ok {
		return nil, false
	}
	return lead.Clone(), true
}

// ListLeads returns clones of all leads in insertion order.
func (s *Store) ListLeads() []*domain.Lead {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]*domain.Lead, 0, len(s.order))
	for _, id := range s.order {
		results = append(results, s.leads[id].Clone())
	}
	return results
}

// Snapshot is an alias of ListLeads used by metrics and persistence.
func (s *Store) Snapshot() []*domain.Lead {
	return s.ListLeads()
}

// Restore replaces the store contents from a persisted snapshot.
func (s *Store) Restore(leads []*domain.Lead) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.leads = make(map[string]*domain.Lead, len(leads))
	s.order = make([]string, 0, len(leads))
	s.selected = ""
	for _, lead := range leads {
		if lead == nil || lead.ID == "" {
			continue
		}
		s.leads[lead.ID] = lead.Clone()
		s.order = append(s.order, lead.ID)
	}
}

// Select opens a lead for detailed editing. Unknown ids are rejected.
func (s *Store) Select(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.leads[id]; !ok {
		return false
	}
	s.selected = id
	return true
}

// Selected returns a clone of the currently open lead, false when none.
func (s *Store) Selected() (*domain.Lead, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.selected == "" {
		return nil, false
	}
	lead, ok := s.leads[s.selected]
	if !ok {
		return nil, false
	}
	return lead.Clone(), true
}

// ClearSelection closes the detail editor.
func (s *Store) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = ""
}

func primaryOf(contacts []domain.Contact) *domain.Contact {
	for i := range contacts {
		if contacts[i].Role == domain.RolePrimary && strings.TrimSpace(contacts[i].Name) != "" {
			return &contacts[i]
		}
	}
	// A Primary with an empty name still wins the cache slot.
	for i := range contacts {
		if contacts[i].Role == domain.RolePrimary {
			return &contacts[i]
		}
	}
	return nil
}

func demotePrimary(contacts []domain.Contact) {
	for i := range contacts {
		if contacts[i].Role == domain.RolePrimary {
			contacts[i].Role = domain.RoleDecisionMaker
		}
	}
}
