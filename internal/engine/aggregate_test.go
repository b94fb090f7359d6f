package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func matchFor(slug, category string, maxAmount *float64) MatchResult {
	return MatchResult{
		GrantID:   slug,
		GrantName: slug,
		Slug:      slug,
		Category:  category,
		MaxAmount: maxAmount,
		MatchType: MatchEligible,
	}
}

func TestEnrichAttachesSavingsAndClaims(t *testing.T) {
	results := []MatchResult{
		matchFor("personal-tax-credit", "tax_relief", amount(2000)),
		matchFor("warmer-homes", "home_energy", nil),
	}
	profile := Profile{"marital_status": String("married")}

	matches := Enrich(results, "40-60k", profile)
	require.Len(t, matches, 2)

	assert.Equal(t, "personal-tax-credit", matches[0].Result.Slug)
	require.NotNil(t, matches[0].Savings.AnnualSaving)
	assert.Equal(t, 4000.0, *matches[0].Savings.AnnualSaving)
	assert.Contains(t, matches[0].HowToClaim, "Tax Credit Certificate")

	assert.Nil(t, matches[1].Savings.AnnualSaving)
	assert.Empty(t, matches[1].HowToClaim)
}

func TestSummarizeBucketsAndOrdersByValue(t *testing.T) {
	matches := Enrich([]MatchResult{
		matchFor("personal-tax-credit", "tax_relief", amount(2000)),
		matchFor("rent-tax-credit", "tax_relief", amount(1000)),
		matchFor("seai-solar-pv", "home_energy", amount(1800)),
		matchFor("help-to-buy", "housing", amount(30000)),
		matchFor("drug-payment", "health", nil),
	}, "", Profile{})

	summary := Summarize(matches)

	assert.Equal(t, 5, summary.TotalFound)
	assert.Equal(t, 34800.0, summary.TotalValue)
	require.Len(t, summary.Categories, 4)

	// Ordered by per-category total value, highest first.
	assert.Equal(t, "housing", summary.Categories[0].Category)
	assert.Equal(t, 30000.0, summary.Categories[0].TotalValue)
	assert.Equal(t, "tax_relief", summary.Categories[1].Category)
	assert.Equal(t, "Tax Relief", summary.Categories[1].Label)
	assert.Equal(t, 3000.0, summary.Categories[1].TotalValue)
	assert.Equal(t, 2, summary.Categories[1].Count)
	assert.Equal(t, "home_energy", summary.Categories[2].Category)
	assert.Equal(t, "health", summary.Categories[3].Category)
	assert.Equal(t, 0.0, summary.Categories[3].TotalValue)
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil)
	assert.Equal(t, 0, summary.TotalFound)
	assert.Equal(t, 0.0, summary.TotalValue)
	assert.Empty(t, summary.Categories)
}

func TestCategoryLabelFallback(t *testing.T) {
	assert.Equal(t, "Home Energy", CategoryLabel("home_energy"))
	assert.Equal(t, "something_else", CategoryLabel("something_else"))
}
