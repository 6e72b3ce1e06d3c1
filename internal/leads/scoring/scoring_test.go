package scoring

import (
	"testing"
	"time"

	"salesdesk_backend/internal/leads/domain"
)

func fixedService(now time.Time) *Service {
	return &Service{now: func() time.Time { return now }}
}

func TestScoreBounds(t *testing.T) {
	now := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)
	svc := fixedService(now)

	weak := &domain.Lead{
		Priority:  domain.PriorityLow,
		CreatedAt: now.AddDate(0, 0, -200),
	}
	strong := &domain.Lead{
		Value:        120000,
		Rating:       5,
		RatingsTotal: 2000,
		Priority:     domain.PriorityHigh,
		BusinessType: domain.BusinessRestaurant,
		CreatedAt:    now.AddDate(0, 0, -45),
	}
	for _, docType := range domain.DocumentTypes {
		strong.Documents.Set(docType, domain.DocVerified)
	}

	for name, lead := range map[string]*domain.Lead{"weak": weak, "strong": strong, "nil": nil} {
		score := svc.Score(lead)
		if score.Likelihood < 1 || score.Likelihood > 99 {
			t.Errorf("%s lead: likelihood = %d, want within [1,99]", name, score.Likelihood)
		}
	}

	if weakScore, strongScore := svc.Score(weak), svc.Score(strong); weakScore.Likelihood >= strongScore.Likelihood {
		t.Errorf("weak (%d) should score below strong (%d)", weakScore.Likelihood, strongScore.Likelihood)
	}
}

func TestVerifiedDocumentsRaiseScore(t *testing.T) {
	now := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)
	svc := fixedService(now)

	lead := &domain.Lead{Priority: domain.PriorityMedium, CreatedAt: now.AddDate(0, 0, -45)}
	before := svc.Score(lead).Likelihood

	for _, docType := range domain.DocumentTypes {
		lead.Documents.Set(docType, domain.DocVerified)
	}
	after := svc.Score(lead).Likelihood

	// Full verification carries a 25-point weight.
	if after-before != 25 {
		t.Errorf("verification lift = %d points, want 25", after-before)
	}
}

func TestPipelineAgeSweetSpot(t *testing.T) {
	now := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)
	svc := fixedService(now)

	atSpot := &domain.Lead{CreatedAt: now.AddDate(0, 0, -45)}
	stale := &domain.Lead{CreatedAt: now.AddDate(0, 0, -90)}

	if svc.Score(atSpot).Likelihood <= svc.Score(stale).Likelihood {
		t.Error("a lead at the 45-day sweet spot should outscore a 90-day-old lead")
	}
}

func TestFactorBreakdownSumsToLikelihood(t *testing.T) {
	now := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)
	svc := fixedService(now)

	lead := &domain.Lead{
		Value:        10000,
		Rating:       4.2,
		RatingsTotal: 150,
		Priority:     domain.PriorityHigh,
		BusinessType: domain.BusinessRetail,
		CreatedAt:    now.AddDate(0, 0, -30),
	}
	lead.Documents.CR = domain.DocVerified
	lead.Documents.IBAN = domain.DocVerified

	score := svc.Score(lead)
	sum := 0.10
	for _, factor := range score.Factors {
		sum += factor.Contribution
	}
	want := int(sum*100 + 0.5)
	if score.Likelihood != want {
		t.Errorf("likelihood = %d, factors sum to %d", score.Likelihood, want)
	}
}
