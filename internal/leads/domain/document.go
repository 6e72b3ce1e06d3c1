package domain

// DocumentType identifies one of the six verification document slots.
type DocumentType string

const (
	DocCR         DocumentType = "cr"
	DocIBAN       DocumentType = "iban"
	DocLogo       DocumentType = "logo"
	DocCoverPhoto DocumentType = "coverPhoto"
	DocStorePhoto DocumentType = "storePhoto"
	DocMenu       DocumentType = "menu"
)

// DocumentTypes lists the six slots in checklist order.
var DocumentTypes = []DocumentType{
	DocCR, DocIBAN, DocLogo, DocCoverPhoto, DocStorePhoto, DocMenu,
}

// IsValidDocumentType reports whether t names one of the six slots.
func IsValidDocumentType(t DocumentType) bool {
	for _, dt := range DocumentTypes {
		if t == dt {
			return true
		}
	}
	return false
}

// DocumentStatus is the verification state of a document slot.
// DocNone renders as null on the wire: the slot has never been uploaded.
type DocumentStatus string

const (
	DocNone        DocumentStatus = ""
	DocProcessing  DocumentStatus = "Processing..."
	DocVerified    DocumentStatus = "Verified"
	DocNeedsReview DocumentStatus = "Needs Review"
)

// IsValidDocumentStatus reports whether s is one of the known states.
// DocNone is accepted so a slot can be reset.
func IsValidDocumentStatus(s DocumentStatus) bool {
	switch s {
	case DocNone, DocProcessing, DocVerified, DocNeedsReview:
		return true
	}
	return false
}

// DocumentSet holds the status of each of the six slots.
type DocumentSet struct {
	CR         DocumentStatus `json:"cr,omitempty"`
	IBAN       DocumentStatus `json:"iban,omitempty"`
	Logo       DocumentStatus `json:"logo,omitempty"`
	CoverPhoto DocumentStatus `json:"coverPhoto,omitempty"`
	StorePhoto DocumentStatus `json:"storePhoto,omitempty"`
	Menu       DocumentStatus `json:"menu,omitempty"`
}

// Get returns the status of the given slot, DocNone for unknown types.
func (d DocumentSet) Get(t DocumentType) DocumentStatus {
	switch t {
	case DocCR:
		return d.CR
	case DocIBAN:
		return d.IBAN
	case DocLogo:
		return d.Logo
	case DocCoverPhoto:
		return d.CoverPhoto
	case DocStorePhoto:
		return d.StorePhoto
	case DocMenu:
		return d.Menu
	}
	return DocNone
}

// Set writes the status of the given slot; unknown types are ignored.
func (d *DocumentSet) Set(t DocumentType, status DocumentStatus) {
	switch t {
	case DocCR:
		d.CR = status
	case DocIBAN:
		d.IBAN = status
	case DocLogo:
		d.Logo = status
	case DocCoverPhoto:
		d.CoverPhoto = status
	case DocStorePhoto:
		d.StorePhoto = status
	case DocMenu:
		d.Menu = status
	}
}

// VerifiedCount counts slots whose status is exactly Verified.
func (d DocumentSet) VerifiedCount() int {
	count := 0
	for _, t := range DocumentTypes {
		if d.Get(t) == DocVerified {
			count++
		}
	}
	return count
}
