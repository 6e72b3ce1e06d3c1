// Package metrics computes derived scores over lead snapshots.
// Everything here is pure: missing or malformed data yields zeroes,
// never an error.
package metrics

import (
	"math"
	"strings"
	"time"

	"salesdesk_backend/internal/leads/domain"
	"salesdesk_backend/platform/config"
)

// Calculator evaluates dashboard metrics against a configured monthly goal.
type Calculator struct {
	monthlyGoal float64
	now         func() time.Time
}

// New creates a calculator using the configured monthly sales goal.
func New(cfg config.SalesConfig) *Calculator {
	return &Calculator{
		monthlyGoal: cfg.GetMonthlyGoal(),
		now:         time.Now,
	}
}

// ActivationScore is the percentage of the six document slots verified,
// rounded to the nearest integer. A nil lead scores 0.
func ActivationScore(lead *domain.Lead) int {
	if lead == nil {
		return 0
	}
	verified := lead.Documents.VerifiedCount()
	return int(math.Round(100 * float64(verified) / float64(len(domain.DocumentTypes))))
}

// MenuHealthScore breaks down menu completeness coverage.
type MenuHealthScore struct {
	TotalItems           int `json:"totalItems"`
	ItemsWithDescription int `json:"itemsWithDescription"`
	ItemsWithPhoto       int `json:"itemsWithPhoto"`
	ItemsWithPrice       int `json:"itemsWithPrice"`
	ItemOptimization     int `json:"itemOptimization"`
	PricingEfficiency    int `json:"pricingEfficiency"`
	MenuHealth           int `json:"menuHealth"`
}

// MenuHealth scores description, photo, and price coverage across all
// menu items. Photo coverage counts hasPhoto only; the storefront stage
// check in the stagegate package counts photoUrl too. The two counts are
// intentionally kept separate.
func MenuHealth(lead *domain.Lead) MenuHealthScore {
	var score MenuHealthScore
	if lead == nil || lead.Menu == nil {
		return score
	}

	for _, item := range lead.Menu.Items() {
		score.TotalItems++
		if strings.TrimSpace(item.Description) != "" {
			score.ItemsWithDescription++
		}
		if item.HasPhoto {
			score.ItemsWithPhoto++
		}
		if item.Price > 0 {
			score.ItemsWithPrice++
		}
	}

	if score.TotalItems == 0 {
		return score
	}

	score.ItemOptimization = roundPct(score.ItemsWithDescription, score.TotalItems)
	score.PricingEfficiency = roundPct(score.ItemsWithPrice, score.TotalItems)
	score.MenuHealth = int(math.Round(float64(score.ItemOptimization+score.PricingEfficiency) / 2))
	return score
}

// PipelineValue sums the estimated value of all open leads.
func PipelineValue(leads []*domain.Lead) float64 {
	var total float64
	for _, lead := range leads {
		if !lead.Status.Closed() {
			total += lead.Value
		}
	}
	return total
}

// ConversionRate is the percentage of engaged leads (anything past
// New Leads) that closed won. Zero when nothing is engaged yet.
func ConversionRate(leads []*domain.Lead) float64 {
	engaged, won := 0, 0
	for _, lead := range leads {
		if lead.Status == domain.StatusNewLeads {
			continue
		}
		engaged++
		if lead.Status == domain.StatusClosedWon {
			won++
		}
	}
	if engaged == 0 {
		return 0
	}
	return 100 * float64(won) / float64(engaged)
}

// AvgCloseTime is the mean whole-day age of Closed-Won leads at the time
// they were closed. Leads without a close timestamp are skipped.
func AvgCloseTime(leads []*domain.Lead) float64 {
	var totalDays, count float64
	for _, lead := range leads {
		if lead.Status != domain.StatusClosedWon || lead.StatusUpdatedAt == nil {
			continue
		}
		days := math.Floor(lead.StatusUpdatedAt.Sub(lead.CreatedAt).Hours() / 24)
		totalDays += days
		count++
	}
	if count == 0 {
		return 0
	}
	return totalDays / count
}

// MonthlyProgress tracks closed-won value against the monthly goal.
type MonthlyProgress struct {
	Current    float64 `json:"current"`
	Target     float64 `json:"target"`
	Percentage float64 `json:"percentage"`
}

// MonthlyProgress sums the value of leads closed won in the current
// calendar month. Percentage is clamped at 100.
func (c *Calculator) MonthlyProgress(leads []*domain.Lead) MonthlyProgress {
	now := c.now()
	year, month := now.Year(), now.Month()

	var current float64
	for _, lead := range leads {
		if lead.Status != domain.StatusClosedWon {
			continue
		}
		closedAt := lead.CreatedAt
		if lead.StatusUpdatedAt != nil {
			closedAt = *lead.StatusUpdatedAt
		}
		if closedAt.Year() == year && closedAt.Month() == month {
			current += lead.Value
		}
	}

	progress := MonthlyProgress{Current: current, Target: c.monthlyGoal}
	if c.monthlyGoal > 0 {
		progress.Percentage = math.Min(100, 100*current/c.monthlyGoal)
	}
	return progress
}

func roundPct(part, whole int) int {
	return int(math.Round(100 * float64(part) / float64(whole)))
}
