package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func days(values ...string) []time.Time {
	out := make([]time.Time, 0, len(values))
	for _, v := range values {
		out = append(out, day(v))
	}
	return out
}

func TestProjectChargesMonthlyIncludesStartingMonth(t *testing.T) {
	// Start on the 20th with due day 10: the charge dated the 10th of the
	// starting month is still projected.
	charges := ProjectCharges(Schedule{
		StartDate: "2024-01-20",
		Frequency: FrequencyMonthly,
		DueDay:    10,
	}, day("2024-03-31"))

	assert.Equal(t, days("2024-01-10", "2024-02-10", "2024-03-10"), charges)
}

func TestProjectChargesWeekly(t *testing.T) {
	charges := ProjectCharges(Schedule{
		StartDate: "2024-01-01",
		Frequency: FrequencyWeekly,
	}, day("2024-01-22"))

	assert.Equal(t, days("2024-01-01", "2024-01-08", "2024-01-15", "2024-01-22"), charges)
}

func TestProjectChargesQuarterly(t *testing.T) {
	charges := ProjectCharges(Schedule{
		StartDate: "2024-01-15",
		Frequency: FrequencyQuarterly,
		DueDay:    15,
	}, day("2024-12-31"))

	assert.Equal(t, days("2024-01-15", "2024-04-15", "2024-07-15", "2024-10-15"), charges)
}

func TestProjectChargesClampsDueDayToMonthEnd(t *testing.T) {
	charges := ProjectCharges(Schedule{
		StartDate: "2024-01-05",
		Frequency: FrequencyMonthly,
		DueDay:    31,
	}, day("2024-04-30"))

	// February 2024 has 29 days, April has 30.
	assert.Equal(t, days("2024-01-31", "2024-02-29", "2024-03-31", "2024-04-30"), charges)
}

func TestProjectChargesOutOfRangeDueDay(t *testing.T) {
	for _, dueDay := range []int{0, -3, 32, 99} {
		charges := ProjectCharges(Schedule{
			StartDate: "2024-02-01",
			Frequency: FrequencyMonthly,
			DueDay:    dueDay,
		}, day("2024-03-31"))

		assert.Equal(t, days("2024-02-29", "2024-03-31"), charges, "due day %d", dueDay)
	}
}

func TestProjectChargesMalformedStartDate(t *testing.T) {
	for _, raw := range []string{"", "not-a-date", "2024-13-40", "20/01/2024"} {
		charges := ProjectCharges(Schedule{
			StartDate: raw,
			Frequency: FrequencyMonthly,
			DueDay:    10,
		}, day("2024-12-31"))

		assert.Empty(t, charges, "start date %q", raw)
	}
}

func TestProjectChargesAcceptsTimestampStartDate(t *testing.T) {
	charges := ProjectCharges(Schedule{
		StartDate: "2024-01-20T15:30:00Z",
		Frequency: FrequencyMonthly,
		DueDay:    10,
	}, day("2024-02-29"))

	assert.Equal(t, days("2024-01-10", "2024-02-10"), charges)
}

func TestProjectChargesFutureStart(t *testing.T) {
	charges := ProjectCharges(Schedule{
		StartDate: "2025-06-01",
		Frequency: FrequencyMonthly,
		DueDay:    5,
	}, day("2024-12-31"))

	assert.Empty(t, charges)
}

func TestProjectChargesIsIdempotent(t *testing.T) {
	sched := Schedule{StartDate: "2023-03-10", Frequency: FrequencyBimonthly, DueDay: 7}
	horizon := day("2024-03-31")

	first := ProjectCharges(sched, horizon)
	second := ProjectCharges(sched, horizon)

	require.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

func TestProjectChargesAscending(t *testing.T) {
	charges := ProjectCharges(Schedule{
		StartDate: "2020-01-01",
		Frequency: FrequencyWeekly,
	}, day("2021-01-01"))

	require.NotEmpty(t, charges)
	for i := 1; i < len(charges); i++ {
		assert.True(t, charges[i].After(charges[i-1]))
	}
}

func TestProjectChargesTruncatesAtStepCeiling(t *testing.T) {
	charges := ProjectCharges(Schedule{
		StartDate: "1900-01-01",
		Frequency: FrequencyWeekly,
	}, day("2100-01-01"))

	assert.Len(t, charges, maxProjectionSteps)
}

func TestParseFrequency(t *testing.T) {
	for raw, want := range map[string]Frequency{
		"weekly":     FrequencyWeekly,
		"Monthly":    FrequencyMonthly,
		" quarterly": FrequencyQuarterly,
		"SEMIANNUAL": FrequencySemiannual,
	} {
		got, ok := ParseFrequency(raw)
		require.True(t, ok, raw)
		assert.Equal(t, want, got)
	}

	_, ok := ParseFrequency("fortnightly")
	assert.False(t, ok)
}
