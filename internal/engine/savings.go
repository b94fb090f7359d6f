package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// Estimate is the monetary impact of one qualifying match. Either figure
// may be absent when it cannot be computed from the available inputs.
type Estimate struct {
	AnnualSaving    *float64
	BackdatedSaving *float64
	Note            string
}

type taxRates struct {
	Marginal  float64
	Effective float64
}

// Irish income tax bands, bucketed the way the questionnaire asks for them.
// Single: 20% on the first €42,000, 40% on the rest.
var incomeTaxRates = map[string]taxRates{
	"<20k":   {Marginal: 0.20, Effective: 0.20},
	"20-40k": {Marginal: 0.20, Effective: 0.20},
	"40-60k": {Marginal: 0.40, Effective: 0.30},
	"60-80k": {Marginal: 0.40, Effective: 0.35},
	"80k+":   {Marginal: 0.40, Effective: 0.38},
}

const defaultIncomeBracket = "40-60k"

// Credits and reliefs that Revenue allows claiming for prior years.
var backdatableYears = map[string]int{
	"dependent-relative-tax-credit":    4,
	"age-tax-credit":                   4,
	"blind-persons-tax-credit":         4,
	"widowed-person-tax-credit":        4,
	"widowed-parent-tax-credit":        4, // 5 years but decreasing
	"incapacitated-child-tax-credit":   4,
	"paye-tax-credit":                  4,
	"earned-income-tax-credit":         4,
	"rent-tax-credit":                  4, // available 2022-2028
	"home-carer-tax-credit":            4,
	"single-person-child-carer-credit": 4,
	"medical-expenses-tax-relief":      4,
	"nursing-home-expenses-tax-relief": 4,
	"remote-working-tax-relief":        4,
	"mortgage-interest-tax-credit":     3, // 2023-2026 only
}

type valuationKind uint8

const (
	// valuePerUnit: fixed unit amount times a profile-supplied count.
	valuePerUnit valuationKind = iota
	// valueMaritalTiered: higher fixed amount for jointly assessed couples.
	valueMaritalTiered
	// valueFixed: fixed annual credit regardless of profile.
	valueFixed
	// valueReliefRate: amount depends on unknown expenses, only a rate
	// note can be produced.
	valueReliefRate
)

// valuation is one grant's strategy for turning a match into money. Keyed
// by slug: monetary rules are program-specific and cannot be derived from
// the catalog's maxAmount alone.
type valuation struct {
	kind valuationKind

	unitAmount float64
	unitField  string
	unitLabel  string // note prefix, e.g. "€305" or "€140/month"
	nounOne    string
	nounMany   string

	marriedAmount float64
	singleAmount  float64
	marriedNote   string
	singleNote    string

	fixedAmount float64
	fixedNote   string

	reliefRate float64
	atMarginal bool
}

var valuations = map[string]valuation{
	"dependent-relative-tax-credit": {
		kind:       valuePerUnit,
		unitAmount: 305,
		unitField:  "num_dependent_relatives",
		unitLabel:  "€305",
		nounOne:    "dependent relative",
		nounMany:   "dependent relatives",
	},
	"child-benefit": {
		kind:       valuePerUnit,
		unitAmount: 1680,
		unitField:  "num_children",
		unitLabel:  "€140/month",
		nounOne:    "child",
		nounMany:   "children",
	},
	"personal-tax-credit": {
		kind:          valueMaritalTiered,
		marriedAmount: 4000,
		singleAmount:  2000,
		marriedNote:   "€4,000/year (married couple)",
		singleNote:    "€2,000/year",
	},
	"age-tax-credit": {
		kind:          valueMaritalTiered,
		marriedAmount: 490,
		singleAmount:  245,
		marriedNote:   "€490/year (married couple)",
		singleNote:    "€245/year",
	},
	"rent-tax-credit": {
		kind:          valueMaritalTiered,
		marriedAmount: 2000,
		singleAmount:  1000,
		marriedNote:   "€2,000/year (jointly assessed couple)",
		singleNote:    "€1,000/year (20% of rent up to this max)",
	},
	"blind-persons-tax-credit": {
		kind:        valueFixed,
		fixedAmount: 1950,
		fixedNote:   "€1,950/year direct tax reduction",
	},
	"incapacitated-child-tax-credit": {
		kind:        valueFixed,
		fixedAmount: 3800,
		fixedNote:   "€3,800/year per qualifying child",
	},
	"medical-expenses-tax-relief":      {kind: valueReliefRate, reliefRate: 0.20},
	"nursing-home-expenses-tax-relief": {kind: valueReliefRate, atMarginal: true},
	"remote-working-tax-relief":        {kind: valueReliefRate, reliefRate: 0.30},
	"tuition-fees-tax-relief":          {kind: valueReliefRate, reliefRate: 0.20},
}

// Below this a grant's maxAmount is taken to be a tax credit (a direct
// reduction) rather than a capital grant.
const taxCreditCeiling = 10000

// CalculateSavings estimates the annual and backdatable value of one
// qualifying grant. Absent inputs degrade to partial output; this never
// fails.
func CalculateSavings(slug string, maxAmount *float64, amountDescription, incomeBracket string, profile Profile) Estimate {
	rates, ok := incomeTaxRates[incomeBracket]
	if !ok {
		rates = incomeTaxRates[defaultIncomeBracket]
	}

	var estimate Estimate

	if v, ok := valuations[slug]; ok {
		estimate = v.apply(profile, rates)
	} else if maxAmount != nil && *maxAmount != 0 && *maxAmount < taxCreditCeiling {
		annual := *maxAmount
		estimate.AnnualSaving = &annual
		estimate.Note = fmt.Sprintf("€%s/year direct tax reduction", euro(annual))
	} else if maxAmount != nil && *maxAmount != 0 {
		annual := *maxAmount
		estimate.AnnualSaving = &annual
		if amountDescription != "" {
			estimate.Note = amountDescription
		} else {
			estimate.Note = fmt.Sprintf("Up to €%s", euro(annual))
		}
	}

	if years := backdatableYears[slug]; years > 0 && estimate.AnnualSaving != nil && *estimate.AnnualSaving != 0 {
		backdated := *estimate.AnnualSaving * float64(years)
		estimate.BackdatedSaving = &backdated
		estimate.Note += fmt.Sprintf(" — can be backdated %d years (up to €%s total)", years, euro(backdated))
	}

	return estimate
}

func (v valuation) apply(profile Profile, rates taxRates) Estimate {
	switch v.kind {
	case valuePerUnit:
		count := unitCount(profile, v.unitField)
		annual := v.unitAmount * float64(count)
		noun := v.nounOne
		if count > 1 {
			noun = v.nounMany
		}
		return Estimate{
			AnnualSaving: &annual,
			Note:         fmt.Sprintf("%s x %d %s = €%s/year", v.unitLabel, count, noun, euro(annual)),
		}
	case valueMaritalTiered:
		if profile.Get("marital_status").Text() == "married" {
			annual := v.marriedAmount
			return Estimate{AnnualSaving: &annual, Note: v.marriedNote}
		}
		annual := v.singleAmount
		return Estimate{AnnualSaving: &annual, Note: v.singleNote}
	case valueFixed:
		annual := v.fixedAmount
		return Estimate{AnnualSaving: &annual, Note: v.fixedNote}
	case valueReliefRate:
		// The exact amount needs expense figures the profile does not
		// carry, so only the rate is reported.
		rate := v.reliefRate
		if v.atMarginal {
			rate = rates.Marginal
			return Estimate{Note: fmt.Sprintf("Tax relief at your marginal rate (%.0f%%) on qualifying expenses", rate*100)}
		}
		return Estimate{Note: fmt.Sprintf("Tax relief at %.0f%% on qualifying expenses", rate*100)}
	}
	return Estimate{}
}

// unitCount reads a per-unit multiplier from the profile, defaulting to 1
// when the field is missing, non-numeric, or zero.
func unitCount(profile Profile, field string) int {
	n, err := profile.Get(field).Float()
	if err != nil || n == 0 {
		return 1
	}
	return int(n)
}

// euro formats a whole-euro amount with thousands separators.
func euro(amount float64) string {
	s := strconv.FormatFloat(amount, 'f', 0, 64)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, digit := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
