package domain

import (
	"context"
	"errors"
)

type CreateModelRequest struct {
	Name      string     `json:"name"`
	Questions []Question `json:"questions"`
}

type UpdateModelRequest struct {
	ModelID   string
	Name      *string    `json:"name,omitempty"`
	Questions []Question `json:"questions,omitempty"`
}

type SubmitResponseRequest struct {
	ModelID   string         `json:"model_id"`
	StudentID string         `json:"student_id"`
	Answers   map[string]any `json:"answers"`
}

type Service interface {
	CreateModel(ctx context.Context, req CreateModelRequest) (*AnamnesisModel, error)
	UpdateModel(ctx context.Context, req UpdateModelRequest) (*AnamnesisModel, error)
	ListModels(ctx context.Context) ([]AnamnesisModel, error)
	GetModel(ctx context.Context, id string) (*AnamnesisModel, error)
	DeleteModel(ctx context.Context, id string) error
	SubmitResponse(ctx context.Context, req SubmitResponseRequest) (*AnamnesisResponse, error)
	ListResponses(ctx context.Context, studentID string) ([]AnamnesisResponse, error)
}

var (
	ErrModelNotFound  = errors.New("anamnesis_model_not_found")
	ErrInvalidName    = errors.New("invalid_name")
	ErrInvalidStudent = errors.New("invalid_student")
)
