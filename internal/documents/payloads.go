package documents

import (
	"encoding/json"
	"fmt"
	"strings"

	"salesdesk_backend/internal/leads/domain"
)

// PhotoCheck is the extraction verdict for logo and cover photo uploads.
type PhotoCheck struct {
	IsSuitable  bool     `json:"isSuitable"`
	Reason      string   `json:"reason"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// StorePhotoCheck is the verdict for storefront photos, matched against
// the company name on signage.
type StorePhotoCheck struct {
	IsMatch    bool    `json:"isMatch"`
	Reason     string  `json:"reason"`
	Confidence float64 `json:"confidence"`
}

// menuPayload mirrors the extraction shape for photographed menus.
type menuPayload map[string][]struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

// parseCRPayload decodes and checks a commercial-registration extraction.
func parseCRPayload(raw json.RawMessage) (*domain.CRExtraction, error) {
	var payload domain.CRExtraction
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode cr payload: %w", err)
	}
	if emptyPtr(payload.OfficialBusinessName) && emptyPtr(payload.TaxNumber) && emptyPtr(payload.LegalForm) {
		return nil, fmt.Errorf("cr extraction returned no usable fields")
	}
	return &payload, nil
}

// parseIBANPayload decodes and checks a bank-letter extraction.
func parseIBANPayload(raw json.RawMessage) (*domain.IBANExtraction, error) {
	var payload domain.IBANExtraction
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode iban payload: %w", err)
	}
	if strings.TrimSpace(payload.IBANNumber) == "" {
		return nil, fmt.Errorf("iban extraction returned no account number")
	}
	return &payload, nil
}

// parsePhotoCheck decodes a suitability verdict.
func parsePhotoCheck(raw json.RawMessage) (*PhotoCheck, error) {
	var payload PhotoCheck
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode photo verdict: %w", err)
	}
	return &payload, nil
}

// parseStorePhotoCheck decodes a storefront match verdict.
func parseStorePhotoCheck(raw json.RawMessage) (*StorePhotoCheck, error) {
	var payload StorePhotoCheck
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode store photo verdict: %w", err)
	}
	return &payload, nil
}

// parseMenuPayload decodes a photographed-menu extraction into a menu.
func parseMenuPayload(raw json.RawMessage) (domain.Menu, error) {
	var payload menuPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode menu payload: %w", err)
	}

	menu := make(domain.Menu, len(payload))
	for category, items := range payload {
		if strings.TrimSpace(category) == "" {
			continue
		}
		for _, item := range items {
			if strings.TrimSpace(item.Name) == "" {
				continue
			}
			menu[category] = append(menu[category], domain.MenuItem{
				Name:        item.Name,
				Price:       item.Price,
				Description: item.Description,
				Category:    category,
			})
		}
	}
	if len(menu) == 0 {
		return nil, fmt.Errorf("menu extraction returned no items")
	}
	return menu, nil
}

func emptyPtr(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}
