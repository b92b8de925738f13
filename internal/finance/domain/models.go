// Package domain defines the read-side finance views: projected charges,
// per-student payment status and the monthly overview. Nothing here is
// persisted; charges are recomputed from the subscription on every read.
package domain

import (
	"context"
	"errors"
	"time"
)

// ProjectedCharge is derived from a student's subscription and plan. It is
// never stored.
type ProjectedCharge struct {
	DueDate time.Time `json:"due_date"`
	Amount  float64   `json:"amount"`
	Paid    bool      `json:"paid"`
}

// StudentFinance is the payment status view for one student.
type StudentFinance struct {
	StudentID   string            `json:"student_id"`
	StudentName string            `json:"student_name"`
	PlanID      string            `json:"plan_id,omitempty"`
	PlanName    string            `json:"plan_name,omitempty"`
	Frequency   string            `json:"frequency,omitempty"`
	Charges     []ProjectedCharge `json:"charges"`
	Overdue     bool              `json:"overdue"`
}

// OverviewEntry is one student's row in the monthly financial overview.
type OverviewEntry struct {
	StudentID   string            `json:"student_id"`
	StudentName string            `json:"student_name"`
	PlanName    string            `json:"plan_name"`
	Charges     []ProjectedCharge `json:"charges"`
	Expected    float64           `json:"expected"`
	Received    float64           `json:"received"`
	Overdue     bool              `json:"overdue"`
}

// Overview aggregates expected versus received amounts for a month.
type Overview struct {
	Month        string          `json:"month"`
	Entries      []OverviewEntry `json:"entries"`
	Expected     float64         `json:"expected"`
	Received     float64         `json:"received"`
	OverdueCount int             `json:"overdue_count"`
}

type Service interface {
	StudentStatus(ctx context.Context, studentID string) (*StudentFinance, error)
	MonthlyOverview(ctx context.Context, month string) (*Overview, error)
}

var ErrInvalidMonth = errors.New("invalid_month")
