package tools

import (
	"math"
	"strings"
)

// Quote is the canonical insurance quote model returned by the quote tool.
type Quote struct {
	Provider       string                 `json:"provider"`
	PremiumMonthly float64                `json:"premium_monthly"`
	Coverage       string                 `json:"coverage"`
	Details        map[string]interface{} `json:"details,omitempty"`
}

// Monthly base premiums per coverage category. Unrecognized coverage
// strings fall through to the full-coverage base.
var basePremiums = map[string]float64{
	"liability":     50.0,
	"comprehensive": 120.0,
	"full":          180.0,
}

// GenerateQuotes produces three deterministic mock quotes for a
// vehicle. Pricing depends only on the coverage category; the vehicle
// fields identify the request but never affect the premium. It never
// fails, and identical inputs always yield identical output.
func GenerateQuotes(make, model string, year int, coverage string) []Quote {
	normalized := strings.ToLower(coverage)
	base, ok := basePremiums[normalized]
	if !ok {
		base = basePremiums["full"]
	}

	return []Quote{
		{
			Provider:       "SafeDrive Insurance",
			PremiumMonthly: roundCents(base * 0.90),
			Coverage:       normalized,
			Details: map[string]interface{}{
				"deductible":       500,
				"policy_limit":     100000,
				"special_features": []string{"Roadside assistance", "Rental car coverage"},
			},
		},
		{
			Provider:       "BudgetCover Insurance",
			PremiumMonthly: roundCents(base * 0.85),
			Coverage:       normalized,
			Details: map[string]interface{}{
				"deductible":       1000,
				"policy_limit":     50000,
				"special_features": []string{"Basic coverage"},
			},
		},
		{
			Provider:       "PremiumGuard Insurance",
			PremiumMonthly: roundCents(base * 1.10),
			Coverage:       normalized,
			Details: map[string]interface{}{
				"deductible":       250,
				"policy_limit":     250000,
				"special_features": []string{"24/7 support", "Accident forgiveness", "New car replacement"},
			},
		},
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
