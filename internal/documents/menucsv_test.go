package documents

import (
	"testing"
)

func TestParseMenuCSV(t *testing.T) {
	data := []byte(`category,name,price,description
Mains,Chicken Shawarma,SAR 28.50,Grilled chicken wrap
Mains,Mixed Grill,"1,250",Family platter
Drinks,Mint Lemonade,12,`)

	menu, err := ParseMenuCSV(data)
	if err != nil {
		t.Fatalf("ParseMenuCSV: %v", err)
	}

	if len(menu) != 2 {
		t.Fatalf("categories = %d, want 2", len(menu))
	}
	mains := menu["Mains"]
	if len(mains) != 2 {
		t.Fatalf("mains = %d items, want 2", len(mains))
	}
	if mains[0].Price != 28.50 {
		t.Errorf("price = %v, want 28.50 after stripping currency prefix", mains[0].Price)
	}
	if mains[1].Price != 1250 {
		t.Errorf("price = %v, want 1250 after stripping thousands separator", mains[1].Price)
	}
	if mains[0].Description != "Grilled chicken wrap" {
		t.Errorf("description = %q", mains[0].Description)
	}
	if menu["Drinks"][0].Description != "" {
		t.Errorf("empty description column should stay empty")
	}
}

func TestParseMenuCSVWithoutHeader(t *testing.T) {
	menu, err := ParseMenuCSV([]byte("Mains,Burger,35,Beef patty\n"))
	if err != nil {
		t.Fatalf("ParseMenuCSV: %v", err)
	}
	if len(menu["Mains"]) != 1 || menu["Mains"][0].Name != "Burger" {
		t.Errorf("menu = %+v, want one Mains item", menu)
	}
}

func TestParseMenuCSVStripsHTML(t *testing.T) {
	menu, err := ParseMenuCSV([]byte("Mains,<b>Burger</b>,35,<script>x</script>Tasty\n"))
	if err != nil {
		t.Fatalf("ParseMenuCSV: %v", err)
	}
	item := menu["Mains"][0]
	if item.Name != "Burger" {
		t.Errorf("name = %q, want HTML stripped", item.Name)
	}
	if item.Description != "xTasty" && item.Description != "Tasty" {
		t.Errorf("description = %q, want tags stripped", item.Description)
	}
}

func TestParseMenuCSVFailures(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty file", ""},
		{"header only", "category,name,price,description\n"},
		{"too few columns", "Mains,Burger\n"},
		{"missing name", "Mains,,35,Tasty\n"},
		{"unbalanced quotes", "Mains,\"Burger,35\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseMenuCSV([]byte(tt.data)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestParsePriceUnparseableIsZero(t *testing.T) {
	menu, err := ParseMenuCSV([]byte("Mains,Burger,market price,Fresh\n"))
	if err != nil {
		t.Fatalf("ParseMenuCSV: %v", err)
	}
	if got := menu["Mains"][0].Price; got != 0 {
		t.Errorf("price = %v, want 0 for unparseable price", got)
	}
}
