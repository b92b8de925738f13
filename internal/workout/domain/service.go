package domain

import (
	"context"
	"errors"
)

type CreateProtocolRequest struct {
	Name      string     `json:"name"`
	Division  string     `json:"division"`
	Notes     string     `json:"notes"`
	Exercises []Exercise `json:"exercises"`
}

type UpdateProtocolRequest struct {
	ProtocolID string
	Name       *string    `json:"name,omitempty"`
	Division   *string    `json:"division,omitempty"`
	Notes      *string    `json:"notes,omitempty"`
	Exercises  []Exercise `json:"exercises,omitempty"`
}

type AssignRequest struct {
	ProtocolID string
	StudentID  string `json:"student_id"`
	StartDate  string `json:"start_date,omitempty"`
	EndDate    string `json:"end_date,omitempty"`
}

type Service interface {
	Create(ctx context.Context, req CreateProtocolRequest) (*WorkoutProtocol, error)
	Update(ctx context.Context, req UpdateProtocolRequest) (*WorkoutProtocol, error)
	List(ctx context.Context) ([]WorkoutProtocol, error)
	GetByID(ctx context.Context, id string) (*WorkoutProtocol, error)
	Delete(ctx context.Context, id string) error
	Assign(ctx context.Context, req AssignRequest) (*WorkoutAssignment, error)
	ListByStudent(ctx context.Context, studentID string) ([]WorkoutProtocol, error)
	// Exercises decodes the protocol's JSON exercise list.
	Exercises(protocol *WorkoutProtocol) ([]Exercise, error)
}

var (
	ErrNotFound       = errors.New("workout_not_found")
	ErrInvalidName    = errors.New("invalid_name")
	ErrInvalidStudent = errors.New("invalid_student")
	ErrInvalidPeriod  = errors.New("invalid_period")
)
