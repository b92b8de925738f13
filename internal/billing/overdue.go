package billing

import "time"

// Charges older than this are ignored when classifying overdue, so students
// with long tenure and incomplete historical payment data are not flagged
// forever. When the window filters out everything, the last few charges are
// used instead.
const (
	overdueLookbackDays  = 90
	overdueFallbackCount = 3
)

// IsOverdue reports whether the schedule has any unpaid charge due on or
// before asOf. Callers pass yesterday's date as asOf: a charge due today is
// pending, not overdue, until the day fully elapses.
//
// The month-reference payment fallback only applies to monthly-and-up
// frequencies; weekly charges require an exact due-date match.
func IsOverdue(s Schedule, payments []Payment, asOf time.Time) bool {
	charges := ProjectCharges(s, asOf)
	if len(charges) == 0 {
		return false
	}

	cutoff := truncateToDay(asOf).AddDate(0, 0, -overdueLookbackDays)
	candidates := charges[:0:0]
	for _, charge := range charges {
		if !charge.Before(cutoff) {
			candidates = append(candidates, charge)
		}
	}
	if len(candidates) == 0 {
		first := len(charges) - overdueFallbackCount
		if first < 0 {
			first = 0
		}
		candidates = charges[first:]
	}

	allowMonthRef := s.Frequency != FrequencyWeekly
	for _, charge := range candidates {
		if !chargeSatisfied(charge, payments, allowMonthRef) {
			return true
		}
	}
	return false
}
