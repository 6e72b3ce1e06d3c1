package metrics

import (
	"fmt"
	"testing"
	"time"

	"salesdesk_backend/internal/leads/domain"
)

func testCalculator(goal float64, now time.Time) *Calculator {
	return &Calculator{monthlyGoal: goal, now: func() time.Time { return now }}
}

func TestActivationScoreBounds(t *testing.T) {
	// round(100k/6) for k verified slots.
	wantByCount := []int{0, 17, 33, 50, 67, 83, 100}

	for k, want := range wantByCount {
		t.Run(fmt.Sprintf("%d_verified", k), func(t *testing.T) {
			lead := &domain.Lead{}
			for i := 0; i < k; i++ {
				lead.Documents.Set(domain.DocumentTypes[i], domain.DocVerified)
			}
			got := ActivationScore(lead)
			if got != want {
				t.Errorf("ActivationScore = %d, want %d", got, want)
			}
			if got < 0 || got > 100 {
				t.Errorf("ActivationScore = %d, out of [0,100]", got)
			}
		})
	}
}

func TestActivationScoreIgnoresNonVerified(t *testing.T) {
	lead := &domain.Lead{}
	lead.Documents.CR = domain.DocProcessing
	lead.Documents.IBAN = domain.DocNeedsReview
	if got := ActivationScore(lead); got != 0 {
		t.Errorf("ActivationScore = %d, want 0 for no verified slots", got)
	}
	if got := ActivationScore(nil); got != 0 {
		t.Errorf("ActivationScore(nil) = %d, want 0", got)
	}
}

func TestMenuHealthEmptyMenuIsZero(t *testing.T) {
	for name, lead := range map[string]*domain.Lead{
		"nil lead":       nil,
		"nil menu":       {},
		"empty menu":     {Menu: domain.Menu{}},
		"empty category": {Menu: domain.Menu{"Mains": {}}},
	} {
		t.Run(name, func(t *testing.T) {
			got := MenuHealth(lead)
			if got != (MenuHealthScore{}) {
				t.Errorf("MenuHealth = %+v, want all zeroes", got)
			}
		})
	}
}

func TestMenuHealthCoverage(t *testing.T) {
	lead := &domain.Lead{Menu: domain.Menu{
		"Mains": {
			{Name: "Burger", Price: 35, Description: "Beef patty", HasPhoto: true},
			{Name: "Wrap", Price: 22, Description: "  "},
			{Name: "Salad", Price: 0, Description: "Fresh greens"},
		},
		"Drinks": {
			{Name: "Cola", Price: 8, HasPhoto: true},
		},
	}}

	got := MenuHealth(lead)
	if got.TotalItems != 4 {
		t.Errorf("TotalItems = %d, want 4", got.TotalItems)
	}
	if got.ItemsWithDescription != 2 {
		t.Errorf("ItemsWithDescription = %d, want 2 (whitespace-only does not count)", got.ItemsWithDescription)
	}
	if got.ItemsWithPhoto != 2 {
		t.Errorf("ItemsWithPhoto = %d, want 2", got.ItemsWithPhoto)
	}
	if got.ItemsWithPrice != 3 {
		t.Errorf("ItemsWithPrice = %d, want 3", got.ItemsWithPrice)
	}
	if got.ItemOptimization != 50 {
		t.Errorf("ItemOptimization = %d, want 50", got.ItemOptimization)
	}
	if got.PricingEfficiency != 75 {
		t.Errorf("PricingEfficiency = %d, want 75", got.PricingEfficiency)
	}
	if got.MenuHealth != 63 {
		t.Errorf("MenuHealth = %d, want 63", got.MenuHealth)
	}
}

func TestMenuHealthPhotoCountIgnoresPhotoURL(t *testing.T) {
	// Only hasPhoto counts here; photoUrl matters to the storefront stage
	// check, not to the health score.
	lead := &domain.Lead{Menu: domain.Menu{
		"Mains": {
			{Name: "Burger", Price: 35, PhotoURL: "https://cdn.example.com/burger.jpg"},
			{Name: "Wrap", Price: 22, HasPhoto: true},
		},
	}}

	if got := MenuHealth(lead); got.ItemsWithPhoto != 1 {
		t.Errorf("ItemsWithPhoto = %d, want 1 (photoUrl alone must not count)", got.ItemsWithPhoto)
	}
}

func TestPipelineValueExcludesClosedLeads(t *testing.T) {
	leads := []*domain.Lead{
		{Status: domain.StatusNewLeads, Value: 100},
		{Status: domain.StatusContacted, Value: 250},
		{Status: domain.StatusAwaitingSignature, Value: 400},
		{Status: domain.StatusClosedWon, Value: 1000},
		{Status: domain.StatusClosedLost, Value: 500},
	}

	if got := PipelineValue(leads); got != 750 {
		t.Errorf("PipelineValue = %v, want 750", got)
	}
}

func TestConversionRate(t *testing.T) {
	tests := []struct {
		name  string
		leads []*domain.Lead
		want  float64
	}{
		{"no leads", nil, 0},
		{
			"only new leads",
			[]*domain.Lead{{Status: domain.StatusNewLeads}, {Status: domain.StatusNewLeads}},
			0,
		},
		{
			"one of four engaged won",
			[]*domain.Lead{
				{Status: domain.StatusNewLeads},
				{Status: domain.StatusContacted},
				{Status: domain.StatusProposalSent},
				{Status: domain.StatusClosedLost},
				{Status: domain.StatusClosedWon},
			},
			25,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ConversionRate(tt.leads); got != tt.want {
				t.Errorf("ConversionRate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAvgCloseTimeFloorsDays(t *testing.T) {
	created := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	closedA := created.Add(3*24*time.Hour + 20*time.Hour) // 3.83 days -> 3
	closedB := created.Add(6 * 24 * time.Hour)            // exactly 6

	leads := []*domain.Lead{
		{Status: domain.StatusClosedWon, CreatedAt: created, StatusUpdatedAt: &closedA},
		{Status: domain.StatusClosedWon, CreatedAt: created, StatusUpdatedAt: &closedB},
		{Status: domain.StatusClosedWon, CreatedAt: created}, // no timestamp, skipped
		{Status: domain.StatusClosedLost, CreatedAt: created, StatusUpdatedAt: &closedB},
	}

	if got := AvgCloseTime(leads); got != 4.5 {
		t.Errorf("AvgCloseTime = %v, want 4.5", got)
	}
	if got := AvgCloseTime(nil); got != 0 {
		t.Errorf("AvgCloseTime(nil) = %v, want 0", got)
	}
}

func TestMonthlyProgress(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	thisMonth := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	lastMonth := time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC)
	calc := testCalculator(50000, now)

	leads := []*domain.Lead{
		{Status: domain.StatusClosedWon, Value: 20000, StatusUpdatedAt: &thisMonth},
		{Status: domain.StatusClosedWon, Value: 9000, StatusUpdatedAt: &lastMonth},
		{Status: domain.StatusClosedWon, Value: 5000, CreatedAt: thisMonth}, // falls back to createdAt
		{Status: domain.StatusContacted, Value: 99999, StatusUpdatedAt: &thisMonth},
	}

	got := calc.MonthlyProgress(leads)
	if got.Current != 25000 {
		t.Errorf("Current = %v, want 25000", got.Current)
	}
	if got.Target != 50000 {
		t.Errorf("Target = %v, want 50000", got.Target)
	}
	if got.Percentage != 50 {
		t.Errorf("Percentage = %v, want 50", got.Percentage)
	}
}

func TestMonthlyProgressClampsAt100(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	closed := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	calc := testCalculator(50000, now)

	leads := []*domain.Lead{
		{Status: domain.StatusClosedWon, Value: 120000, StatusUpdatedAt: &closed},
	}

	got := calc.MonthlyProgress(leads)
	if got.Percentage != 100 {
		t.Errorf("Percentage = %v, want exactly 100", got.Percentage)
	}
	if got.Current != 120000 {
		t.Errorf("Current = %v, want raw 120000", got.Current)
	}
}
