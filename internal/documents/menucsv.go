package documents

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"salesdesk_backend/internal/leads/domain"
	"salesdesk_backend/platform/sanitize"
)

// ParseMenuCSV parses a category,name,price,description spreadsheet into
// a menu. A header row is skipped when detected. Prices are stripped of
// currency symbols and thousands separators before parsing.
func ParseMenuCSV(data []byte) (domain.Menu, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv file has no rows")
	}

	if isHeaderRow(records[0]) {
		records = records[1:]
	}

	menu := make(domain.Menu)
	for i, record := range records {
		if len(record) < 3 {
			return nil, fmt.Errorf("row %d: expected at least category, name, price", i+1)
		}

		category := sanitize.Text(record[0])
		name := sanitize.Text(record[1])
		if category == "" || name == "" {
			return nil, fmt.Errorf("row %d: category and name are required", i+1)
		}

		item := domain.MenuItem{
			Name:     name,
			Price:    parsePrice(record[2]),
			Category: category,
		}
		if len(record) > 3 {
			item.Description = sanitize.Text(record[3])
		}
		menu[category] = append(menu[category], item)
	}

	if len(menu) == 0 {
		return nil, fmt.Errorf("csv file contains no menu items")
	}
	return menu, nil
}

func isHeaderRow(record []string) bool {
	if len(record) == 0 {
		return false
	}
	first := strings.ToLower(strings.TrimSpace(record[0]))
	return first == "category" || first == "categories"
}

// parsePrice strips every non-numeric rune (currency symbols, spaces,
// thousands separators) and parses what remains. Unparseable prices
// become zero rather than failing the whole upload.
func parsePrice(raw string) float64 {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	price, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return price
}
