package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringOperators(t *testing.T) {
	assert.True(t, opEq(String("Owner"), "owner"))
	assert.False(t, opEq(String("renter"), "owner"))
	assert.True(t, opEq(Bool(true), "true"))
	assert.True(t, opEq(Number(42), "42"))

	assert.True(t, opNeq(String("renter"), "owner"))
	assert.False(t, opNeq(String("OWNER"), "owner"))
}

func TestNumericOperators(t *testing.T) {
	assert.True(t, opGt(Number(10), "5"))
	assert.False(t, opGt(Number(5), "5"))
	assert.True(t, opGte(Number(5), "5"))
	assert.True(t, opLt(Number(2004), "2021"))
	assert.True(t, opLte(Number(5), "5"))
	assert.False(t, opLte(Number(6), "5"))

	// Numeric strings parse on both sides.
	assert.True(t, opGt(String("10"), " 5 "))

	// Malformed inputs fail the rule, they never error.
	assert.False(t, opGt(String("not a number"), "5"))
	assert.False(t, opGt(Number(10), "five"))
	assert.False(t, opLt(StringList([]string{"1"}), "5"))
}

func TestMembershipOperators(t *testing.T) {
	assert.True(t, opIn(String("owner"), "owner,landlord"))
	assert.True(t, opIn(String("Landlord"), "owner, landlord"))
	assert.False(t, opIn(String("renter"), "owner,landlord"))
	assert.True(t, opNotIn(String("renter"), "owner,landlord"))

	payments := StringList([]string{"fuel_allowance", "carers_allowance"})
	assert.True(t, opContains(payments, "fuel_allowance"))
	assert.True(t, opContains(payments, "Fuel_Allowance"))
	assert.False(t, opContains(payments, "state_pension"))
	assert.False(t, opContains(String("fuel_allowance"), "fuel_allowance"))

	assert.False(t, opNotContains(payments, "fuel_allowance"))
	assert.True(t, opNotContains(payments, "state_pension"))
	// Non-list values contain nothing.
	assert.True(t, opNotContains(String("whatever"), "fuel_allowance"))
	assert.True(t, opNotContains(Absent, "fuel_allowance"))
}

func TestBooleanOperators(t *testing.T) {
	assert.True(t, opIsTrue(Bool(true), "true"))
	assert.False(t, opIsTrue(Bool(false), "true"))
	assert.True(t, opIsFalse(Bool(false), "true"))

	// Coercion follows truthiness: non-zero numbers and non-empty strings
	// are true, absence is false.
	assert.True(t, opIsTrue(Number(3), ""))
	assert.False(t, opIsTrue(Number(0), ""))
	assert.True(t, opIsTrue(String("false"), ""))
	assert.True(t, opIsFalse(Absent, ""))
}

func TestExistsOperator(t *testing.T) {
	assert.True(t, opExists(String("Dublin"), ""))
	assert.True(t, opExists(Number(0), ""))
	assert.True(t, opExists(Bool(false), ""))
	assert.False(t, opExists(Absent, ""))
	assert.False(t, opExists(String(""), ""))
	assert.False(t, opExists(StringList(nil), ""))
	assert.True(t, opExists(StringList([]string{"x"}), ""))
}

func TestBetweenOperator(t *testing.T) {
	assert.True(t, opBetween(Number(35), "18,66"))
	assert.True(t, opBetween(Number(18), "18,66"))
	assert.True(t, opBetween(Number(66), "18,66"))
	assert.False(t, opBetween(Number(70), "18,66"))
	assert.False(t, opBetween(Number(17), "18,66"))

	// Malformed ranges fail.
	assert.False(t, opBetween(Number(35), "18"))
	assert.False(t, opBetween(Number(35), "lo,hi"))
	assert.False(t, opBetween(String("abc"), "18,66"))
}

func TestOperatorTableCoversContract(t *testing.T) {
	for _, name := range []string{
		"eq", "neq", "gt", "gte", "lt", "lte",
		"in", "not_in", "contains", "not_contains",
		"is_true", "is_false", "exists", "between",
	} {
		_, ok := operators[name]
		assert.True(t, ok, "missing operator %q", name)
	}
}
