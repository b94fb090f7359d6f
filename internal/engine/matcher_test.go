package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGrant(name, slug string, maxAmount *float64, category string, rules ...Rule) Grant {
	return Grant{
		ID:               slug,
		Name:             name,
		Slug:             slug,
		Category:         category,
		ShortDescription: "Test grant: " + name,
		MaxAmount:        maxAmount,
		Rules:            rules,
	}
}

func testRule(group int, field, operator, value string) Rule {
	return Rule{
		Group:       group,
		Field:       field,
		Operator:    operator,
		Value:       value,
		Description: field + " " + operator + " " + value,
		Mandatory:   true,
	}
}

func amount(v float64) *float64 { return &v }

var solarPVGrant = testGrant("SEAI Solar PV Grant", "seai-solar-pv", amount(1800), "home_energy",
	testRule(0, "home_status", "in", "owner,landlord"),
	testRule(0, "home_year_built", "lt", "2021"),
	testRule(0, "has_solar_pv", "is_false", "true"),
)

var warmerHomesGrant = testGrant("Warmer Homes Scheme", "warmer-homes", nil, "home_energy",
	testRule(0, "home_status", "eq", "owner"),
	testRule(0, "welfare_payments", "contains", "fuel_allowance"),
	testRule(1, "home_status", "eq", "owner"),
	testRule(1, "welfare_payments", "contains", "disability_allowance"),
	testRule(2, "home_status", "eq", "owner"),
	testRule(2, "welfare_payments", "contains", "jobseekers_allowance"),
	testRule(2, "has_child_under_7", "is_true", "true"),
)

func TestSolarPVEligible(t *testing.T) {
	profile := Profile{
		"home_status":     String("owner"),
		"home_year_built": Number(2005),
		"has_solar_pv":    Bool(false),
	}
	results := NewMatcher().Match(profile, []Grant{solarPVGrant})
	require.Len(t, results, 1)
	assert.Equal(t, MatchEligible, results[0].MatchType)
	assert.Equal(t, 100.0, results[0].MatchScore)
	assert.Equal(t, "You appear to meet all eligibility criteria for this grant.", results[0].Notes)
}

func TestSolarPVNewHomeIsPossible(t *testing.T) {
	profile := Profile{
		"home_status":     String("owner"),
		"home_year_built": Number(2022),
		"has_solar_pv":    Bool(false),
	}
	results := NewMatcher().Match(profile, []Grant{solarPVGrant})
	require.Len(t, results, 1)
	assert.Equal(t, MatchPossible, results[0].MatchType)
	assert.InDelta(t, 66.7, results[0].MatchScore, 0.1)
	assert.Contains(t, results[0].Notes, "You may qualify")
	assert.Contains(t, results[0].FailedRules, "home_year_built lt 2021")
}

func TestSolarPVAlreadyInstalled(t *testing.T) {
	profile := Profile{
		"home_status":     String("owner"),
		"home_year_built": Number(1990),
		"has_solar_pv":    Bool(true),
	}
	results := NewMatcher().Match(profile, []Grant{solarPVGrant})
	require.Len(t, results, 1)
	assert.Equal(t, MatchPossible, results[0].MatchType)
}

func TestWarmerHomesORGroups(t *testing.T) {
	matcher := NewMatcher()

	// Any one group passing fully is eligible, whatever the others score.
	for _, payments := range [][]string{
		{"fuel_allowance"},
		{"disability_allowance"},
	} {
		profile := Profile{
			"home_status":      String("owner"),
			"welfare_payments": StringList(payments),
		}
		results := matcher.Match(profile, []Grant{warmerHomesGrant})
		require.Len(t, results, 1, "payments %v", payments)
		assert.Equal(t, MatchEligible, results[0].MatchType, "payments %v", payments)
	}

	// Group 2 needs the jobseeker payment plus a child under 7.
	profile := Profile{
		"home_status":       String("owner"),
		"welfare_payments":  StringList([]string{"jobseekers_allowance"}),
		"has_child_under_7": Bool(true),
	}
	results := matcher.Match(profile, []Grant{warmerHomesGrant})
	require.Len(t, results, 1)
	assert.Equal(t, MatchEligible, results[0].MatchType)
}

func TestWarmerHomesRenterIsPossible(t *testing.T) {
	profile := Profile{
		"home_status":      String("renter"),
		"welfare_payments": StringList([]string{"fuel_allowance"}),
	}
	results := NewMatcher().Match(profile, []Grant{warmerHomesGrant})
	require.Len(t, results, 1)
	assert.Equal(t, MatchPossible, results[0].MatchType)
	assert.Equal(t, 50.0, results[0].MatchScore)
}

func TestNoRulesMeansUniversal(t *testing.T) {
	universal := testGrant("Drug Payment Scheme", "drug-payment", nil, "health")
	results := NewMatcher().Match(Profile{}, []Grant{universal})
	require.Len(t, results, 1)
	assert.Equal(t, MatchEligible, results[0].MatchType)
	assert.Equal(t, 100.0, results[0].MatchScore)
	assert.Equal(t, "No specific eligibility criteria — available to all.", results[0].Notes)
}

func TestScoreThresholdsAreStrict(t *testing.T) {
	grant := testGrant("Four Rule Grant", "four-rule", nil, "welfare",
		testRule(0, "a", "is_true", "true"),
		testRule(0, "b", "is_true", "true"),
		testRule(0, "c", "is_true", "true"),
		testRule(0, "d", "is_true", "true"),
	)
	matcher := NewMatcher()

	// 3 of 4 = exactly 75% -> likely.
	results := matcher.Match(Profile{
		"a": Bool(true), "b": Bool(true), "c": Bool(true), "d": Bool(false),
	}, []Grant{grant})
	require.Len(t, results, 1)
	assert.Equal(t, MatchLikely, results[0].MatchType)
	assert.Equal(t, 75.0, results[0].MatchScore)

	// 2 of 4 = exactly 50% -> possible.
	results = matcher.Match(Profile{
		"a": Bool(true), "b": Bool(true), "c": Bool(false), "d": Bool(false),
	}, []Grant{grant})
	require.Len(t, results, 1)
	assert.Equal(t, MatchPossible, results[0].MatchType)
	assert.Equal(t, 50.0, results[0].MatchScore)

	// 1 of 4 is below 50% -> excluded entirely.
	results = matcher.Match(Profile{
		"a": Bool(true), "b": Bool(false), "c": Bool(false), "d": Bool(false),
	}, []Grant{grant})
	assert.Empty(t, results)
}

func TestNonMandatoryRulesExcludedFromScoring(t *testing.T) {
	informational := Rule{Group: 0, Field: "ber_rating", Operator: "eq", Value: "G", Mandatory: false}
	grant := testGrant("Insulation Grant", "insulation", amount(1500), "home_energy",
		testRule(0, "home_status", "eq", "owner"),
		informational,
	)
	profile := Profile{"home_status": String("owner"), "ber_rating": String("C1")}
	results := NewMatcher().Match(profile, []Grant{grant})
	require.Len(t, results, 1)
	assert.Equal(t, MatchEligible, results[0].MatchType)
	assert.Equal(t, 100.0, results[0].MatchScore)
}

func TestMissingFieldIsUnknownNotCrash(t *testing.T) {
	// home_year_built is missing; has_solar_pv is missing but is_false
	// evaluates absence itself (nothing is not solar).
	profile := Profile{"home_status": String("owner")}
	results := NewMatcher().Match(profile, []Grant{solarPVGrant})
	require.Len(t, results, 1)
	assert.Equal(t, MatchPossible, results[0].MatchType)
	assert.Contains(t, results[0].FailedRules, "home_year_built lt 2021")
}

func TestMissingFieldFallbackMessage(t *testing.T) {
	grant := testGrant("County Grant", "county-grant", nil, "community",
		Rule{Group: 0, Field: "county", Operator: "eq", Value: "Dublin", Mandatory: true},
		testRule(0, "age", "gte", "18"),
	)
	profile := Profile{"age": Number(30)}
	results := NewMatcher().Match(profile, []Grant{grant})
	require.Len(t, results, 1)
	assert.Contains(t, results[0].FailedRules, "We need to know your 'county'")
}

func TestUnknownOperatorCountsAsFailed(t *testing.T) {
	grant := testGrant("Odd Grant", "odd-grant", nil, "welfare",
		testRule(0, "age", "gte", "18"),
		Rule{Group: 0, Field: "county", Operator: "matches", Value: ".*", Mandatory: true},
	)
	profile := Profile{"age": Number(30), "county": String("Cork")}
	results := NewMatcher().Match(profile, []Grant{grant})
	require.Len(t, results, 1)
	assert.Equal(t, MatchPossible, results[0].MatchType)
	assert.Equal(t, 50.0, results[0].MatchScore)
}

func TestBetweenRange(t *testing.T) {
	grant := testGrant("Age-Restricted Grant", "age-grant", nil, "welfare",
		testRule(0, "age", "between", "18,66"),
	)
	matcher := NewMatcher()

	results := matcher.Match(Profile{"age": Number(35)}, []Grant{grant})
	require.Len(t, results, 1)
	assert.Equal(t, MatchEligible, results[0].MatchType)

	results = matcher.Match(Profile{"age": Number(70)}, []Grant{grant})
	assert.Empty(t, results)
}

func TestResultsSortedByTierThenScore(t *testing.T) {
	profile := Profile{
		"home_status":     String("owner"),
		"home_year_built": Number(2022), // fails the solar year rule -> possible
		"has_solar_pv":    Bool(false),
		"a":               Bool(true), "b": Bool(true), "c": Bool(true), "d": Bool(false),
	}
	likelyGrant := testGrant("Likely Grant", "likely-grant", nil, "welfare",
		testRule(0, "a", "is_true", "true"),
		testRule(0, "b", "is_true", "true"),
		testRule(0, "c", "is_true", "true"),
		testRule(0, "d", "is_true", "true"),
	)
	universal := testGrant("Universal Grant", "universal", nil, "health")

	results := NewMatcher().Match(profile, []Grant{solarPVGrant, likelyGrant, universal})
	require.Len(t, results, 3)
	assert.Equal(t, MatchEligible, results[0].MatchType)
	assert.Equal(t, MatchLikely, results[1].MatchType)
	assert.Equal(t, MatchPossible, results[2].MatchType)
}

func TestMatchIsDeterministic(t *testing.T) {
	profile := Profile{
		"home_status":      String("owner"),
		"welfare_payments": StringList([]string{"fuel_allowance"}),
		"home_year_built":  Number(2010),
	}
	grants := []Grant{solarPVGrant, warmerHomesGrant}

	first := NewMatcher().Match(profile, grants)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, NewMatcher().Match(profile, grants))
	}
}

func TestProfileFromMapNormalization(t *testing.T) {
	p := ProfileFromMap(map[string]any{
		"age":              float64(45),
		"home_status":      "owner",
		"has_solar_pv":     false,
		"welfare_payments": []any{"fuel_allowance", "state_pension"},
		"nested":           map[string]any{"x": 1},
		"nothing":          nil,
	})

	assert.Equal(t, Number(45), p.Get("age"))
	assert.Equal(t, String("owner"), p.Get("home_status"))
	assert.Equal(t, Bool(false), p.Get("has_solar_pv"))
	assert.Equal(t, StringList([]string{"fuel_allowance", "state_pension"}), p.Get("welfare_payments"))
	assert.True(t, p.Get("nested").IsAbsent())
	assert.True(t, p.Get("nothing").IsAbsent())
	assert.True(t, p.Get("never_submitted").IsAbsent())
}
