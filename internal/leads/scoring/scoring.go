// Package scoring estimates how likely a lead is to convert, using the
// same feature weights the sales team's historical model was trained on:
// deal value, reputation, verification progress, priority, business type,
// and time in pipeline.
package scoring

import (
	"math"
	"time"

	"salesdesk_backend/internal/leads/domain"
)

const (
	baseProbability = 0.10

	// Deal values above this cap contribute the full weight.
	dealValueCap = 50000
	// Review counts above this cap contribute the full weight.
	reviewCap = 1000

	// Pipeline age sweet spot in days; distance from it is penalized.
	pipelineSweetSpot = 45
)

// Factor is one named contribution to the likelihood.
type Factor struct {
	Name         string  `json:"name"`
	Contribution float64 `json:"contribution"`
}

// Score is the conversion likelihood with its factor breakdown.
type Score struct {
	Likelihood int      `json:"likelihood"` // 1..99
	Factors    []Factor `json:"factors"`
}

// Service computes conversion likelihood scores.
type Service struct {
	now func() time.Time
}

// NewService creates a scoring service.
func NewService() *Service {
	return &Service{now: time.Now}
}

// Score estimates the lead's conversion likelihood as a percentage.
func (s *Service) Score(lead *domain.Lead) Score {
	if lead == nil {
		return Score{Likelihood: int(baseProbability * 100)}
	}

	factors := []Factor{
		{"deal_value", math.Min(lead.Value/dealValueCap, 1) * 0.20},
		{"rating", (lead.Rating / 5.0) * 0.10},
		{"review_volume", math.Min(float64(lead.RatingsTotal)/reviewCap, 1) * 0.05},
		{"documents_verified", (float64(lead.Documents.VerifiedCount()) / 6.0) * 0.25},
		{"priority", priorityWeight(lead.Priority)},
		{"business_type", businessTypeWeight(lead.BusinessType)},
		{"time_in_pipeline", s.pipelineAgeWeight(lead)},
	}

	probability := baseProbability
	for _, factor := range factors {
		probability += factor.Contribution
	}
	probability = clamp(probability, 0.01, 0.99)

	return Score{
		Likelihood: int(math.Round(probability * 100)),
		Factors:    factors,
	}
}

func priorityWeight(priority domain.Priority) float64 {
	switch priority {
	case domain.PriorityHigh:
		return 0.15
	case domain.PriorityMedium:
		return 0.05
	case domain.PriorityLow:
		return -0.05
	}
	return 0
}

func businessTypeWeight(businessType domain.BusinessType) float64 {
	if businessType == domain.BusinessRestaurant {
		return 0.05
	}
	return 0
}

// pipelineAgeWeight penalizes distance from the 45-day sweet spot.
func (s *Service) pipelineAgeWeight(lead *domain.Lead) float64 {
	if lead.CreatedAt.IsZero() {
		return 0
	}
	days := s.now().Sub(lead.CreatedAt).Hours() / 24
	return -math.Abs((days-pipelineSweetSpot)/pipelineSweetSpot) * 0.05
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
