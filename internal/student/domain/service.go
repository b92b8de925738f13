package domain

import (
	"context"
	"errors"
)

type CreateStudentRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	BirthDate string `json:"birth_date"`
	Notes     string `json:"notes"`
}

type UpdateStudentRequest struct {
	StudentID string
	Name      *string `json:"name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	BirthDate *string `json:"birth_date,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

type ListStudentRequest struct {
	ActiveOnly bool
	PlanID     string
}

// AssignPlanRequest covers both first assignment and plan change. A change
// is refused while the student is overdue on the current plan.
type AssignPlanRequest struct {
	StudentID      string
	PlanID         string `json:"plan_id"`
	PlanStartDate  string `json:"plan_start_date"`
	DueDayOverride *int   `json:"due_day_override,omitempty"`
}

type Service interface {
	Create(ctx context.Context, req CreateStudentRequest) (*Student, error)
	Update(ctx context.Context, req UpdateStudentRequest) (*Student, error)
	List(ctx context.Context, req ListStudentRequest) ([]Student, error)
	GetByID(ctx context.Context, id string) (*Student, error)
	Deactivate(ctx context.Context, id string) error
	AssignPlan(ctx context.Context, req AssignPlanRequest) (*Student, error)
}

var (
	ErrNotFound         = errors.New("student_not_found")
	ErrInvalidName      = errors.New("invalid_name")
	ErrInvalidEmail     = errors.New("invalid_email")
	ErrInvalidBirthDate = errors.New("invalid_birth_date")
	ErrInvalidStartDate = errors.New("invalid_plan_start_date")
	ErrInvalidDueDay    = errors.New("invalid_due_day")
	ErrEmailTaken       = errors.New("email_taken")
	ErrStudentOverdue   = errors.New("student_overdue")
)
