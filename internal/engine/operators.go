package engine

import (
	"strconv"
	"strings"
)

// An operatorFunc compares one profile attribute against one rule's literal
// operand. Operators are pure and never fail: a literal that cannot be
// parsed for the operator simply makes the rule fail.
type operatorFunc func(v Value, literal string) bool

var operators = map[string]operatorFunc{
	"eq":           opEq,
	"neq":          opNeq,
	"gt":           opGt,
	"gte":          opGte,
	"lt":           opLt,
	"lte":          opLte,
	"in":           opIn,
	"not_in":       opNotIn,
	"contains":     opContains,
	"not_contains": opNotContains,
	"is_true":      opIsTrue,
	"is_false":     opIsFalse,
	"exists":       opExists,
	"between":      opBetween,
}

func splitLiteralList(literal string) []string {
	parts := strings.Split(literal, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.ToLower(strings.TrimSpace(p)))
	}
	return out
}

func opEq(v Value, literal string) bool {
	return strings.EqualFold(v.Text(), literal)
}

func opNeq(v Value, literal string) bool {
	return !strings.EqualFold(v.Text(), literal)
}

func compareNumeric(v Value, literal string, cmp func(a, b float64) bool) bool {
	a, err := v.Float()
	if err != nil {
		return false
	}
	b, err := strconv.ParseFloat(strings.TrimSpace(literal), 64)
	if err != nil {
		return false
	}
	return cmp(a, b)
}

func opGt(v Value, literal string) bool {
	return compareNumeric(v, literal, func(a, b float64) bool { return a > b })
}

func opGte(v Value, literal string) bool {
	return compareNumeric(v, literal, func(a, b float64) bool { return a >= b })
}

func opLt(v Value, literal string) bool {
	return compareNumeric(v, literal, func(a, b float64) bool { return a < b })
}

func opLte(v Value, literal string) bool {
	return compareNumeric(v, literal, func(a, b float64) bool { return a <= b })
}

func opIn(v Value, literal string) bool {
	needle := strings.ToLower(v.Text())
	for _, member := range splitLiteralList(literal) {
		if member == needle {
			return true
		}
	}
	return false
}

func opNotIn(v Value, literal string) bool {
	return !opIn(v, literal)
}

func opContains(v Value, literal string) bool {
	list, ok := v.List()
	if !ok {
		return false
	}
	for _, item := range list {
		if strings.EqualFold(item, literal) {
			return true
		}
	}
	return false
}

// not_contains is satisfied by non-list values: an applicant with no
// welfare_payments list does not contain any payment.
func opNotContains(v Value, literal string) bool {
	list, ok := v.List()
	if !ok {
		return true
	}
	for _, item := range list {
		if strings.EqualFold(item, literal) {
			return false
		}
	}
	return true
}

func opIsTrue(v Value, _ string) bool {
	return v.Truthy()
}

func opIsFalse(v Value, _ string) bool {
	return !v.Truthy()
}

func opExists(v Value, _ string) bool {
	if v.IsAbsent() {
		return false
	}
	if v.Kind() == KindString && v.Text() == "" {
		return false
	}
	if list, ok := v.List(); ok && len(list) == 0 {
		return false
	}
	return true
}

func opBetween(v Value, literal string) bool {
	parts := strings.Split(literal, ",")
	if len(parts) < 2 {
		return false
	}
	lo, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return false
	}
	hi, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return false
	}
	n, err := v.Float()
	if err != nil {
		return false
	}
	return lo <= n && n <= hi
}
