package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBudgetUsage(t *testing.T) {
	// Half spent: percentage is exact, not a float artifact.
	st := BudgetUsage(Money{Cents: 20000}, Money{Cents: 10000})
	assert.Equal(t, int64(10000), st.Spent.Cents)
	assert.Equal(t, int64(10000), st.Remaining.Cents)
	assert.Equal(t, 50.0, st.Percentage)

	// Nothing spent.
	st = BudgetUsage(Money{Cents: 20000}, Money{})
	assert.Equal(t, int64(20000), st.Remaining.Cents)
	assert.Equal(t, 0.0, st.Percentage)
}

func TestBudgetUsageOverspend(t *testing.T) {
	// Remaining goes negative, but the percentage clamps at 100.
	st := BudgetUsage(Money{Cents: 10000}, Money{Cents: 15000})
	assert.Equal(t, int64(-5000), st.Remaining.Cents)
	assert.Equal(t, 100.0, st.Percentage)
}

func TestBudgetUsageZeroCeiling(t *testing.T) {
	st := BudgetUsage(Money{}, Money{Cents: 500})
	assert.Equal(t, 100.0, st.Percentage)
	assert.Equal(t, int64(-500), st.Remaining.Cents)
}
