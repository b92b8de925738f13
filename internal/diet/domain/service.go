package domain

import (
	"context"
	"errors"
)

type CreateProtocolRequest struct {
	Name  string `json:"name"`
	Notes string `json:"notes"`
	Meals []Meal `json:"meals"`
}

type UpdateProtocolRequest struct {
	ProtocolID string
	Name       *string `json:"name,omitempty"`
	Notes      *string `json:"notes,omitempty"`
	Meals      []Meal  `json:"meals,omitempty"`
}

type AssignRequest struct {
	ProtocolID string
	StudentID  string `json:"student_id"`
	StartDate  string `json:"start_date,omitempty"`
	EndDate    string `json:"end_date,omitempty"`
}

type Service interface {
	Create(ctx context.Context, req CreateProtocolRequest) (*DietProtocol, error)
	Update(ctx context.Context, req UpdateProtocolRequest) (*DietProtocol, error)
	List(ctx context.Context) ([]DietProtocol, error)
	GetByID(ctx context.Context, id string) (*DietProtocol, error)
	Delete(ctx context.Context, id string) error
	Assign(ctx context.Context, req AssignRequest) (*DietAssignment, error)
	ListByStudent(ctx context.Context, studentID string) ([]DietProtocol, error)
}

var (
	ErrNotFound       = errors.New("diet_not_found")
	ErrInvalidName    = errors.New("invalid_name")
	ErrInvalidStudent = errors.New("invalid_student")
	ErrInvalidPeriod  = errors.New("invalid_period")
)
