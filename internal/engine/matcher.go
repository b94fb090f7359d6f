package engine

import (
	"fmt"
	"sort"
	"strings"
)

// MatchType classifies how strongly a profile matches a grant.
type MatchType string

const (
	MatchEligible    MatchType = "eligible"     // all mandatory rules in at least one group pass
	MatchLikely      MatchType = "likely"       // >= 75% of mandatory rules pass
	MatchPossible    MatchType = "possible"     // >= 50% of mandatory rules pass
	MatchNotEligible MatchType = "not_eligible" // < 50%, excluded from results
)

var matchTypeRank = map[MatchType]int{
	MatchEligible:    0,
	MatchLikely:      1,
	MatchPossible:    2,
	MatchNotEligible: 3,
}

// MatchResult is the outcome of evaluating one grant against one profile.
type MatchResult struct {
	GrantID            string
	GrantName          string
	Slug               string
	Category           string
	ShortDescription   string
	MaxAmount          *float64
	AmountDescription  string
	SourceOrganisation string
	SourceURL          string
	ApplicationURL     string
	MatchType          MatchType
	MatchScore         float64
	FailedRules        []string
	Notes              string
}

// Matcher evaluates applicant profiles against the grant catalog.
//
// Per grant: rules are partitioned by group, each group is an independent
// path to eligibility, and the best-scoring group wins. A group's score is
// the percentage of its mandatory rules that pass. Missing or malformed
// profile data degrades the affected rule to failed; the matcher never
// errors, whatever the input.
type Matcher struct{}

func NewMatcher() *Matcher {
	return &Matcher{}
}

// Match evaluates the profile against every grant and returns the matches
// that are at least possible, strongest first: eligible, then likely, then
// possible, score descending within each tier.
func (m *Matcher) Match(profile Profile, grants []Grant) []MatchResult {
	var results []MatchResult
	for _, grant := range grants {
		result := m.evaluateGrant(profile, grant)
		if result.MatchType != MatchNotEligible {
			results = append(results, result)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		ri, rj := matchTypeRank[results[i].MatchType], matchTypeRank[results[j].MatchType]
		if ri != rj {
			return ri < rj
		}
		return results[i].MatchScore > results[j].MatchScore
	})
	return results
}

func (m *Matcher) evaluateGrant(profile Profile, grant Grant) MatchResult {
	result := MatchResult{
		GrantID:            grant.ID,
		GrantName:          grant.Name,
		Slug:               grant.Slug,
		Category:           grant.Category,
		ShortDescription:   grant.ShortDescription,
		MaxAmount:          grant.MaxAmount,
		AmountDescription:  grant.AmountDescription,
		SourceOrganisation: grant.SourceOrganisation,
		SourceURL:          grant.SourceURL,
		ApplicationURL:     grant.ApplicationURL,
	}

	// No rules means universally available.
	if len(grant.Rules) == 0 {
		result.MatchType = MatchEligible
		result.MatchScore = 100
		result.Notes = "No specific eligibility criteria — available to all."
		return result
	}

	// Partition by rule group, keeping first-seen group order so a score
	// tie is resolved by the earlier group.
	groups := make(map[int][]Rule)
	var groupOrder []int
	for _, rule := range grant.Rules {
		if _, seen := groups[rule.Group]; !seen {
			groupOrder = append(groupOrder, rule.Group)
		}
		groups[rule.Group] = append(groups[rule.Group], rule)
	}

	var (
		bestScore      float64
		bestFailed     []string
		anyGroupPassed bool
	)

	for _, groupID := range groupOrder {
		passed, total, failed := m.evaluateGroup(profile, groups[groupID])

		groupScore := 100.0
		if total > 0 {
			groupScore = float64(passed) / float64(total) * 100
		}
		if passed == total && total > 0 {
			anyGroupPassed = true
		}
		if groupScore > bestScore {
			bestScore = groupScore
			bestFailed = failed
		}
	}

	switch {
	case anyGroupPassed:
		result.MatchType = MatchEligible
		bestScore = 100
	case bestScore >= 75:
		result.MatchType = MatchLikely
	case bestScore >= 50:
		result.MatchType = MatchPossible
	default:
		result.MatchType = MatchNotEligible
	}

	result.MatchScore = bestScore
	result.FailedRules = bestFailed
	result.Notes = generateNotes(result.MatchType, bestFailed)
	return result
}

// evaluateGroup scores the mandatory rules of one group. Non-mandatory
// rules are informational and never counted.
func (m *Matcher) evaluateGroup(profile Profile, rules []Rule) (passed, total int, failed []string) {
	for _, rule := range rules {
		if !rule.Mandatory {
			continue
		}
		total++

		value := profile.Get(rule.Field)

		// A missing attribute is an unknown, not an outright failure, but
		// it scores the same. is_false and exists evaluate absence itself.
		if value.IsAbsent() && rule.Operator != "is_false" && rule.Operator != "exists" {
			failed = append(failed, failureMessage(rule, fmt.Sprintf("We need to know your '%s'", rule.Field)))
			continue
		}

		evaluator, ok := operators[rule.Operator]
		if !ok {
			failed = append(failed, failureMessage(rule, fmt.Sprintf("Could not evaluate: %s", rule.Field)))
			continue
		}
		if evaluator(value, rule.Value) {
			passed++
		} else {
			failed = append(failed, failureMessage(rule, fmt.Sprintf("Requirement: %s %s %s", rule.Field, rule.Operator, rule.Value)))
		}
	}
	return passed, total, failed
}

func failureMessage(rule Rule, fallback string) string {
	if rule.Description != "" {
		return rule.Description
	}
	return fallback
}

func generateNotes(matchType MatchType, failedRules []string) string {
	switch matchType {
	case MatchEligible:
		return "You appear to meet all eligibility criteria for this grant."
	case MatchLikely:
		return "You likely qualify, but should verify: " + strings.Join(truncate(failedRules, 2), "; ")
	case MatchPossible:
		return "You may qualify — check these requirements: " + strings.Join(truncate(failedRules, 3), "; ")
	default:
		return ""
	}
}

func truncate(list []string, n int) []string {
	if len(list) > n {
		return list[:n]
	}
	return list
}
