package service

import (
	"context"
	"encoding/json"
	"strings"

	anamnesisdomain "github.com/TwinexTecnologia/bodybrothers/internal/anamnesis/domain"
	"github.com/TwinexTecnologia/bodybrothers/internal/clock"
	studentdomain "github.com/TwinexTecnologia/bodybrothers/internal/student/domain"
	"github.com/TwinexTecnologia/bodybrothers/pkg/db/option"
	"github.com/TwinexTecnologia/bodybrothers/pkg/repository"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Clock      clock.Clock
	Studentsvc studentdomain.Service
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	clock      clock.Clock
	studentsvc studentdomain.Service

	modelrepo    repository.Repository[anamnesisdomain.AnamnesisModel]
	responserepo repository.Repository[anamnesisdomain.AnamnesisResponse]
}

func NewService(p ServiceParam) anamnesisdomain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("anamnesis.service"),
		genID:      p.GenID,
		clock:      p.Clock,
		studentsvc: p.Studentsvc,

		modelrepo:    repository.ProvideStore[anamnesisdomain.AnamnesisModel](p.DB),
		responserepo: repository.ProvideStore[anamnesisdomain.AnamnesisResponse](p.DB),
	}
}

func (s *Service) CreateModel(ctx context.Context, req anamnesisdomain.CreateModelRequest) (*anamnesisdomain.AnamnesisModel, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, anamnesisdomain.ErrInvalidName
	}

	questions, err := encodeJSON(req.Questions)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	model := &anamnesisdomain.AnamnesisModel{
		ID:        s.genID.Generate(),
		Name:      name,
		Questions: questions,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.modelrepo.Create(ctx, model); err != nil {
		return nil, err
	}
	return model, nil
}

func (s *Service) UpdateModel(ctx context.Context, req anamnesisdomain.UpdateModelRequest) (*anamnesisdomain.AnamnesisModel, error) {
	model, err := s.GetModel(ctx, req.ModelID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, anamnesisdomain.ErrInvalidName
		}
		model.Name = name
	}
	if req.Questions != nil {
		questions, err := encodeJSON(req.Questions)
		if err != nil {
			return nil, err
		}
		model.Questions = questions
	}

	model.UpdatedAt = s.clock.Now()
	if err := s.db.WithContext(ctx).Save(model).Error; err != nil {
		return nil, err
	}
	return model, nil
}

func (s *Service) ListModels(ctx context.Context) ([]anamnesisdomain.AnamnesisModel, error) {
	rows, err := s.modelrepo.Find(ctx, &anamnesisdomain.AnamnesisModel{}, option.WithOrder("name ASC"))
	if err != nil {
		return nil, err
	}

	models := make([]anamnesisdomain.AnamnesisModel, 0, len(rows))
	for _, row := range rows {
		models = append(models, *row)
	}
	return models, nil
}

func (s *Service) GetModel(ctx context.Context, id string) (*anamnesisdomain.AnamnesisModel, error) {
	modelID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, anamnesisdomain.ErrModelNotFound
	}

	model, err := s.modelrepo.FindOne(ctx, &anamnesisdomain.AnamnesisModel{ID: modelID})
	if err != nil {
		return nil, err
	}
	if model == nil {
		return nil, anamnesisdomain.ErrModelNotFound
	}
	return model, nil
}

func (s *Service) DeleteModel(ctx context.Context, id string) error {
	model, err := s.GetModel(ctx, id)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("model_id = ?", model.ID).
			Delete(&anamnesisdomain.AnamnesisResponse{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", model.ID).
			Delete(&anamnesisdomain.AnamnesisModel{}).Error
	})
}

func (s *Service) SubmitResponse(ctx context.Context, req anamnesisdomain.SubmitResponseRequest) (*anamnesisdomain.AnamnesisResponse, error) {
	model, err := s.GetModel(ctx, req.ModelID)
	if err != nil {
		return nil, err
	}
	student, err := s.studentsvc.GetByID(ctx, req.StudentID)
	if err != nil {
		return nil, anamnesisdomain.ErrInvalidStudent
	}

	answers, err := encodeJSON(req.Answers)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()

	// One response per student and model: re-submitting replaces the blob.
	existing, err := s.responserepo.FindOne(ctx, &anamnesisdomain.AnamnesisResponse{
		ModelID:   model.ID,
		StudentID: student.ID,
	})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		existing.Answers = answers
		existing.FilledAt = now
		existing.UpdatedAt = now
		if err := s.db.WithContext(ctx).Save(existing).Error; err != nil {
			return nil, err
		}
		return existing, nil
	}

	response := &anamnesisdomain.AnamnesisResponse{
		ID:        s.genID.Generate(),
		ModelID:   model.ID,
		StudentID: student.ID,
		Answers:   answers,
		FilledAt:  now,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.responserepo.Create(ctx, response); err != nil {
		return nil, err
	}
	return response, nil
}

func (s *Service) ListResponses(ctx context.Context, studentID string) ([]anamnesisdomain.AnamnesisResponse, error) {
	student, err := s.studentsvc.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	rows, err := s.responserepo.Find(ctx,
		&anamnesisdomain.AnamnesisResponse{StudentID: student.ID},
		option.WithOrder("filled_at DESC"),
	)
	if err != nil {
		return nil, err
	}

	responses := make([]anamnesisdomain.AnamnesisResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, *row)
	}
	return responses, nil
}

func encodeJSON(value any) (datatypes.JSON, error) {
	encoded, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(encoded), nil
}
