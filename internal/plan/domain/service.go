package domain

import (
	"context"
	"errors"
)

type CreatePlanRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Frequency   string  `json:"frequency"`
	DueDay      int     `json:"due_day"`
}

type UpdatePlanRequest struct {
	PlanID      string
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Frequency   *string  `json:"frequency,omitempty"`
	DueDay      *int     `json:"due_day,omitempty"`
}

type ListPlanRequest struct {
	ActiveOnly bool
}

type Service interface {
	Create(ctx context.Context, req CreatePlanRequest) (*Plan, error)
	Update(ctx context.Context, req UpdatePlanRequest) (*Plan, error)
	List(ctx context.Context, req ListPlanRequest) ([]Plan, error)
	GetByID(ctx context.Context, id string) (*Plan, error)
	Deactivate(ctx context.Context, id string) error
}

var (
	ErrNotFound         = errors.New("plan_not_found")
	ErrInvalidName      = errors.New("invalid_name")
	ErrInvalidPrice     = errors.New("invalid_price")
	ErrInvalidFrequency = errors.New("invalid_frequency")
	ErrInvalidDueDay    = errors.New("invalid_due_day")
)
