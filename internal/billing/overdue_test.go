package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsOverdueChargeDueTodayIsPending(t *testing.T) {
	sched := Schedule{StartDate: "2024-03-10", Frequency: FrequencyMonthly, DueDay: 10}

	// Evaluated the day before the charge: nothing due yet.
	assert.False(t, IsOverdue(sched, nil, day("2024-03-09")))
	// The day elapses: the unpaid charge becomes overdue.
	assert.True(t, IsOverdue(sched, nil, day("2024-03-10")))
	assert.True(t, IsOverdue(sched, nil, day("2024-03-11")))
}

func TestIsOverdueSatisfiedByExactPayment(t *testing.T) {
	sched := Schedule{StartDate: "2024-03-01", Frequency: FrequencyMonthly, DueDay: 10}

	payments := []Payment{{DueDate: ptr(day("2024-03-10"))}}
	assert.False(t, IsOverdue(sched, payments, day("2024-03-25")))
}

func TestIsOverdueSatisfiedByMonthRef(t *testing.T) {
	sched := Schedule{StartDate: "2024-03-01", Frequency: FrequencyMonthly, DueDay: 10}

	payments := []Payment{{MonthRef: "2024-03"}}
	assert.False(t, IsOverdue(sched, payments, day("2024-03-25")))
}

func TestIsOverdueWeeklyIgnoresMonthRef(t *testing.T) {
	sched := Schedule{StartDate: "2024-03-04", Frequency: FrequencyWeekly}

	payments := []Payment{{MonthRef: "2024-03"}}
	assert.True(t, IsOverdue(sched, payments, day("2024-03-05")))

	payments = []Payment{{DueDate: ptr(day("2024-03-04"))}}
	assert.False(t, IsOverdue(sched, payments, day("2024-03-05")))
}

func TestIsOverdueIgnoresChargesOlderThanLookback(t *testing.T) {
	// Monthly plan running for a year with only the recent charges paid:
	// the stale history outside the 90-day window must not flag the student.
	sched := Schedule{StartDate: "2023-06-10", Frequency: FrequencyMonthly, DueDay: 10}

	payments := []Payment{
		{MonthRef: "2024-04"},
		{MonthRef: "2024-05"},
		{MonthRef: "2024-06"},
	}
	assert.False(t, IsOverdue(sched, payments, day("2024-06-15")))

	// An unpaid charge inside the window still counts.
	assert.True(t, IsOverdue(sched, payments[:2], day("2024-06-15")))
}

func TestIsOverdueFallsBackToLastChargesWhenWindowEmpty(t *testing.T) {
	// Annual plan: the most recent charge is months outside the 90-day
	// window, so the last projected charges are used instead.
	sched := Schedule{StartDate: "2020-01-10", Frequency: FrequencyAnnual, DueDay: 10}

	assert.True(t, IsOverdue(sched, nil, day("2024-11-01")))

	payments := []Payment{
		{MonthRef: "2022-01"},
		{MonthRef: "2023-01"},
		{MonthRef: "2024-01"},
	}
	assert.False(t, IsOverdue(sched, payments, day("2024-11-01")))
}

func TestIsOverdueMalformedStartDate(t *testing.T) {
	sched := Schedule{StartDate: "corrupted", Frequency: FrequencyMonthly, DueDay: 10}

	// No charges can be projected, so nothing is overdue.
	assert.False(t, IsOverdue(sched, nil, day("2024-06-15")))
}

func TestIsOverdueFutureStart(t *testing.T) {
	sched := Schedule{StartDate: "2030-01-01", Frequency: FrequencyMonthly, DueDay: 5}
	assert.False(t, IsOverdue(sched, nil, day("2024-06-15")))
}
