package engine

import "sort"

// categoryLabels maps catalog category codes to display labels.
var categoryLabels = map[string]string{
	"home_energy":     "Home Energy",
	"housing":         "Housing",
	"housing_support": "Housing Support",
	"welfare":         "Welfare & Social",
	"business":        "Business",
	"education":       "Education",
	"health":          "Health",
	"family":          "Family",
	"disability":      "Disability",
	"carers":          "Carers",
	"transport":       "Transport",
	"farming":         "Farming",
	"community":       "Community",
	"tax_relief":      "Tax Relief",
	"employment":      "Employment",
}

// CategoryLabel returns the display label for a category code, falling back
// to the code itself for categories the table does not know.
func CategoryLabel(category string) string {
	if label, ok := categoryLabels[category]; ok {
		return label
	}
	return category
}

// GrantMatch pairs a classified match with its monetary estimate and
// claiming instructions.
type GrantMatch struct {
	Result     MatchResult
	Savings    Estimate
	HowToClaim string
}

// CategorySummary is one presentation bucket of matched grants.
type CategorySummary struct {
	Category   string
	Label      string
	Count      int
	TotalValue float64
	Matches    []GrantMatch
}

// ScanSummary is the assembled result of one full scan.
type ScanSummary struct {
	TotalFound int
	TotalValue float64
	Categories []CategorySummary
}

// Enrich attaches savings and claiming instructions to each ranked match.
// The matcher's ordering is preserved.
func Enrich(results []MatchResult, incomeBracket string, profile Profile) []GrantMatch {
	matches := make([]GrantMatch, 0, len(results))
	for _, r := range results {
		matches = append(matches, GrantMatch{
			Result:     r,
			Savings:    CalculateSavings(r.Slug, r.MaxAmount, r.AmountDescription, incomeBracket, profile),
			HowToClaim: HowToClaim(r.Slug),
		})
	}
	return matches
}

// Summarize buckets enriched matches by category, totals each bucket's
// maximum amounts, and orders the buckets by total value descending.
func Summarize(matches []GrantMatch) ScanSummary {
	summary := ScanSummary{TotalFound: len(matches)}

	buckets := make(map[string]*CategorySummary)
	var order []string
	for _, match := range matches {
		category := match.Result.Category
		bucket, ok := buckets[category]
		if !ok {
			bucket = &CategorySummary{Category: category, Label: CategoryLabel(category)}
			buckets[category] = bucket
			order = append(order, category)
		}
		bucket.Matches = append(bucket.Matches, match)
		bucket.Count++
		if match.Result.MaxAmount != nil {
			bucket.TotalValue += *match.Result.MaxAmount
			summary.TotalValue += *match.Result.MaxAmount
		}
	}

	summary.Categories = make([]CategorySummary, 0, len(order))
	for _, category := range order {
		summary.Categories = append(summary.Categories, *buckets[category])
	}
	sort.SliceStable(summary.Categories, func(i, j int) bool {
		return summary.Categories[i].TotalValue > summary.Categories[j].TotalValue
	})
	return summary
}
