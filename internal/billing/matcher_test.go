package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ptr(t time.Time) *time.Time { return &t }

func TestIsChargeSatisfiedExactDueDate(t *testing.T) {
	charge := day("2024-02-10")

	assert.True(t, IsChargeSatisfied(charge, []Payment{
		{DueDate: ptr(day("2024-02-10"))},
	}))
	assert.False(t, IsChargeSatisfied(charge, []Payment{
		{DueDate: ptr(day("2024-02-11"))},
	}))
}

func TestIsChargeSatisfiedMonthRefFallback(t *testing.T) {
	charge := day("2024-02-10")

	// No due date at all, only a month reference.
	assert.True(t, IsChargeSatisfied(charge, []Payment{
		{MonthRef: "2024-02"},
	}))
	assert.False(t, IsChargeSatisfied(charge, []Payment{
		{MonthRef: "2024-03"},
	}))
	assert.False(t, IsChargeSatisfied(charge, []Payment{
		{MonthRef: "2023-02"},
	}))
}

func TestIsChargeSatisfiedExactMatchWinsRegardlessOfMonthRef(t *testing.T) {
	charge := day("2024-02-10")

	assert.True(t, IsChargeSatisfied(charge, []Payment{
		{DueDate: ptr(day("2024-02-10")), MonthRef: "2019-09"},
	}))
}

func TestIsChargeSatisfiedIgnoresTimeComponent(t *testing.T) {
	charge := day("2024-02-10")
	paid := time.Date(2024, 2, 10, 18, 45, 0, 0, time.UTC)

	assert.True(t, IsChargeSatisfied(charge, []Payment{{DueDate: &paid}}))
}

func TestIsChargeSatisfiedMalformedMonthRef(t *testing.T) {
	charge := day("2024-02-10")

	assert.False(t, IsChargeSatisfied(charge, []Payment{
		{MonthRef: "February 2024"},
		{MonthRef: "2024/02"},
		{MonthRef: "  "},
	}))
}

func TestIsChargeSatisfiedEmptyPayments(t *testing.T) {
	assert.False(t, IsChargeSatisfied(day("2024-02-10"), nil))
}
