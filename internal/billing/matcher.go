package billing

import (
	"strings"
	"time"
)

// Payment is the slice of a payment record the matcher cares about. Older
// records may carry only a month reference instead of an exact due date, so
// neither field can be assumed populated.
type Payment struct {
	DueDate  *time.Time
	MonthRef string // YYYY-MM
}

// IsChargeSatisfied reports whether any payment covers the given charge date:
// an exact calendar-day match on the payment's due date, or a month reference
// in the same calendar month and year. Both paths are checked independently.
func IsChargeSatisfied(charge time.Time, payments []Payment) bool {
	return chargeSatisfied(charge, payments, true)
}

func chargeSatisfied(charge time.Time, payments []Payment, allowMonthRef bool) bool {
	chargeDay := truncateToDay(charge)
	for _, p := range payments {
		if p.DueDate != nil && truncateToDay(*p.DueDate).Equal(chargeDay) {
			return true
		}
		if allowMonthRef && monthRefMatches(p.MonthRef, chargeDay) {
			return true
		}
	}
	return false
}

func monthRefMatches(ref string, chargeDay time.Time) bool {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return false
	}
	t, err := time.Parse("2006-01", ref)
	if err != nil {
		return false
	}
	return t.Year() == chargeDay.Year() && t.Month() == chargeDay.Month()
}
