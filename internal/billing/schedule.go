// Package billing holds the charge projection and overdue classification
// logic shared by the finance overview and the plan-change guard. Everything
// here is a pure computation over already-fetched data; callers are
// responsible for loading plans, subscriptions and payments first.
package billing

import (
	"strings"
	"time"
)

// Frequency enumerates how often a plan charges.
type Frequency string

const (
	FrequencyWeekly     Frequency = "weekly"
	FrequencyMonthly    Frequency = "monthly"
	FrequencyBimonthly  Frequency = "bimonthly"
	FrequencyQuarterly  Frequency = "quarterly"
	FrequencySemiannual Frequency = "semiannual"
	FrequencyAnnual     Frequency = "annual"
)

// ParseFrequency normalizes a stored frequency string.
func ParseFrequency(raw string) (Frequency, bool) {
	switch Frequency(strings.ToLower(strings.TrimSpace(raw))) {
	case FrequencyWeekly:
		return FrequencyWeekly, true
	case FrequencyMonthly:
		return FrequencyMonthly, true
	case FrequencyBimonthly:
		return FrequencyBimonthly, true
	case FrequencyQuarterly:
		return FrequencyQuarterly, true
	case FrequencySemiannual:
		return FrequencySemiannual, true
	case FrequencyAnnual:
		return FrequencyAnnual, true
	default:
		return "", false
	}
}

// MonthInterval returns the number of months between charges, or 0 for weekly.
func (f Frequency) MonthInterval() int {
	switch f {
	case FrequencyMonthly:
		return 1
	case FrequencyBimonthly:
		return 2
	case FrequencyQuarterly:
		return 3
	case FrequencySemiannual:
		return 6
	case FrequencyAnnual:
		return 12
	default:
		return 0
	}
}

// Schedule describes a student's billing agreement: the raw start date as
// stored (possibly malformed), the plan frequency and the effective due day.
type Schedule struct {
	StartDate string
	Frequency Frequency
	DueDay    int
}

// Iteration ceiling guarding against malformed input causing runaway loops.
// Projection silently truncates past this point.
const maxProjectionSteps = 1000

// ProjectCharges returns every charge date the schedule produces through the
// horizon (inclusive of the horizon's calendar day), ascending. A start date
// that does not parse yields an empty sequence rather than an error; the
// persistence layer is not trusted to hold clean dates.
//
// For monthly-and-up frequencies one charge exists per interval month, dated
// on the due day of that month (clamped to the month's last day). The charge
// for the starting month is always included, even when the due day precedes
// the start date's day-of-month.
func ProjectCharges(s Schedule, horizon time.Time) []time.Time {
	start, err := ParseStartDate(s.StartDate)
	if err != nil {
		return nil
	}

	horizonDay := truncateToDay(horizon)

	if s.Frequency == FrequencyWeekly {
		return projectWeekly(start, horizonDay)
	}

	interval := s.Frequency.MonthInterval()
	if interval <= 0 {
		return nil
	}

	var charges []time.Time
	year, month := start.Year(), start.Month()
	for step := 0; step < maxProjectionSteps; step++ {
		monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, step*interval, 0)
		charge := chargeDateInMonth(monthStart, s.DueDay)
		if charge.After(horizonDay) {
			break
		}
		charges = append(charges, charge)
	}
	return charges
}

func projectWeekly(start, horizonDay time.Time) []time.Time {
	var charges []time.Time
	for step := 0; step < maxProjectionSteps; step++ {
		charge := start.AddDate(0, 0, 7*step)
		if charge.After(horizonDay) {
			break
		}
		charges = append(charges, charge)
	}
	return charges
}

// chargeDateInMonth pins the due day inside the month that begins at
// monthStart. Out-of-range due days clamp to the month's last valid day.
func chargeDateInMonth(monthStart time.Time, dueDay int) time.Time {
	last := lastDayOfMonth(monthStart)
	day := dueDay
	if day < 1 || day > 31 {
		day = last
	}
	if day > last {
		day = last
	}
	return time.Date(monthStart.Year(), monthStart.Month(), day, 0, 0, 0, 0, time.UTC)
}

func lastDayOfMonth(monthStart time.Time) int {
	return time.Date(monthStart.Year(), monthStart.Month(), 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, 1, -1).Day()
}

// ParseStartDate accepts a plain calendar date or an ISO timestamp and
// truncates to the calendar day in UTC.
func ParseStartDate(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)

	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return truncateToDay(t), nil
	}
	t, err := time.Parse("2006-01-02T15:04:05", value)
	if err != nil {
		return time.Time{}, err
	}
	return truncateToDay(t), nil
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
