package engine

import (
	"errors"
	"strconv"
	"strings"
)

// Kind identifies the concrete type held by a Value.
type Kind uint8

const (
	KindAbsent Kind = iota
	KindBool
	KindNumber
	KindString
	KindStringList
)

var errNotNumeric = errors.New("value is not numeric")

// Value is a tagged variant for a single profile attribute. Profiles are
// heterogeneous and partially filled, so every attribute is one of:
// absent, bool, number, string, or list of strings.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	list []string
}

// Absent is the zero Value, returned for attributes the profile does not have.
var Absent = Value{}

func Bool(b bool) Value              { return Value{kind: KindBool, b: b} }
func Number(n float64) Value         { return Value{kind: KindNumber, n: n} }
func String(s string) Value          { return Value{kind: KindString, s: s} }
func StringList(list []string) Value { return Value{kind: KindStringList, list: list} }

func (v Value) Kind() Kind     { return v.kind }
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// Text returns the canonical string form used for string comparisons.
func (v Value) Text() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber:
		return strconv.FormatFloat(v.n, 'f', -1, 64)
	case KindString:
		return v.s
	case KindStringList:
		return strings.Join(v.list, ",")
	default:
		return ""
	}
}

// Float coerces the value to a float64 for numeric operators. Booleans
// coerce to 1/0, numeric strings are parsed; anything else fails.
func (v Value) Float() (float64, error) {
	switch v.kind {
	case KindNumber:
		return v.n, nil
	case KindBool:
		if v.b {
			return 1, nil
		}
		return 0, nil
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.s), 64)
		if err != nil {
			return 0, errNotNumeric
		}
		return f, nil
	default:
		return 0, errNotNumeric
	}
}

// Truthy reports the boolean coercion of the value: absent and zero numbers
// are false, non-empty strings and non-empty lists are true.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return v.n != 0
	case KindString:
		return v.s != ""
	case KindStringList:
		return len(v.list) > 0
	default:
		return false
	}
}

// List returns the string list and whether the value actually is one.
func (v Value) List() ([]string, bool) {
	if v.kind != KindStringList {
		return nil, false
	}
	return v.list, true
}

// Profile is one applicant's attributes, keyed by the rule field vocabulary
// (age, home_status, welfare_payments, ...). It is read-only during a scan.
type Profile map[string]Value

// Get returns the attribute value, or Absent when the profile lacks it.
func (p Profile) Get(field string) Value {
	if v, ok := p[field]; ok {
		return v
	}
	return Absent
}

// ProfileFromMap normalizes a decoded-JSON object into a Profile at the
// intake boundary. Unsupported shapes (nested objects, mixed lists) are
// dropped rather than rejected: the matcher treats them as unknown.
func ProfileFromMap(m map[string]any) Profile {
	p := make(Profile, len(m))
	for key, raw := range m {
		if v, ok := valueFromAny(raw); ok {
			p[key] = v
		}
	}
	return p
}

func valueFromAny(raw any) (Value, bool) {
	switch t := raw.(type) {
	case nil:
		return Absent, false
	case bool:
		return Bool(t), true
	case float64:
		return Number(t), true
	case int:
		return Number(float64(t)), true
	case int64:
		return Number(float64(t)), true
	case string:
		return String(t), true
	case []string:
		return StringList(t), true
	case []any:
		list := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return Absent, false
			}
			list = append(list, s)
		}
		return StringList(list), true
	default:
		return Absent, false
	}
}
