// Package packages serves the tariff catalog and applies the assembled
// package configuration to a lead.
package packages

import (
	"fmt"
	"os"

	"salesdesk_backend/internal/leads/domain"

	"gopkg.in/yaml.v3"
)

// Tariff is one sellable plan from the catalog.
type Tariff struct {
	ID          string              `yaml:"id" json:"id"`
	Name        string              `yaml:"name" json:"name"`
	Description string              `yaml:"description" json:"description,omitempty"`
	MonthlyFee  float64             `yaml:"monthlyFee" json:"monthlyFee"`
	Commissions []domain.Commission `yaml:"commissions" json:"commissions"`
}

// AssetOption is a hardware item the builder can bundle.
type AssetOption struct {
	Name      string  `yaml:"name" json:"name"`
	UnitPrice float64 `yaml:"unitPrice" json:"unitPrice"`
}

// ChargeOption is an optional charge the builder can add.
type ChargeOption struct {
	Name   string  `yaml:"name" json:"name"`
	Amount float64 `yaml:"amount" json:"amount"`
}

// Catalog is the full package-builder inventory, loaded once at boot.
type Catalog struct {
	Tariffs []Tariff       `yaml:"tariffs" json:"tariffs"`
	Assets  []AssetOption  `yaml:"assets" json:"assets"`
	Charges []ChargeOption `yaml:"charges" json:"charges"`
}

// Tariff looks up a plan by ID.
func (c *Catalog) Tariff(id string) (Tariff, bool) {
	for _, t := range c.Tariffs {
		if t.ID == id {
			return t, true
		}
	}
	return Tariff{}, false
}

// LoadCatalog reads and validates the YAML catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tariff catalog: %w", err)
	}

	var catalog Catalog
	if err := yaml.Unmarshal(raw, &catalog); err != nil {
		return nil, fmt.Errorf("parse tariff catalog: %w", err)
	}
	if len(catalog.Tariffs) == 0 {
		return nil, fmt.Errorf("tariff catalog %s contains no tariffs", path)
	}
	for _, t := range catalog.Tariffs {
		if t.ID == "" {
			return nil, fmt.Errorf("tariff catalog %s contains a tariff without an id", path)
		}
	}
	return &catalog, nil
}
