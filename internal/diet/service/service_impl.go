package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/TwinexTecnologia/bodybrothers/internal/clock"
	dietdomain "github.com/TwinexTecnologia/bodybrothers/internal/diet/domain"
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

	protocolrepo   repository.Repository[dietdomain.DietProtocol]
	assignmentrepo repository.Repository[dietdomain.DietAssignment]
}

func NewService(p ServiceParam) dietdomain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("diet.service"),
		genID:      p.GenID,
		clock:      p.Clock,
		studentsvc: p.Studentsvc,

		protocolrepo:   repository.ProvideStore[dietdomain.DietProtocol](p.DB),
		assignmentrepo: repository.ProvideStore[dietdomain.DietAssignment](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, req dietdomain.CreateProtocolRequest) (*dietdomain.DietProtocol, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, dietdomain.ErrInvalidName
	}

	meals, err := encodeMeals(req.Meals)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	protocol := &dietdomain.DietProtocol{
		ID:        s.genID.Generate(),
		Name:      name,
		Notes:     req.Notes,
		Meals:     meals,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.protocolrepo.Create(ctx, protocol); err != nil {
		return nil, err
	}
	return protocol, nil
}

func (s *Service) Update(ctx context.Context, req dietdomain.UpdateProtocolRequest) (*dietdomain.DietProtocol, error) {
	protocol, err := s.GetByID(ctx, req.ProtocolID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, dietdomain.ErrInvalidName
		}
		protocol.Name = name
	}
	if req.Notes != nil {
		protocol.Notes = *req.Notes
	}
	if req.Meals != nil {
		meals, err := encodeMeals(req.Meals)
		if err != nil {
			return nil, err
		}
		protocol.Meals = meals
	}

	protocol.UpdatedAt = s.clock.Now()
	if err := s.db.WithContext(ctx).Save(protocol).Error; err != nil {
		return nil, err
	}
	return protocol, nil
}

func (s *Service) List(ctx context.Context) ([]dietdomain.DietProtocol, error) {
	rows, err := s.protocolrepo.Find(ctx, &dietdomain.DietProtocol{}, option.WithOrder("name ASC"))
	if err != nil {
		return nil, err
	}

	protocols := make([]dietdomain.DietProtocol, 0, len(rows))
	for _, row := range rows {
		protocols = append(protocols, *row)
	}
	return protocols, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*dietdomain.DietProtocol, error) {
	protocolID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, dietdomain.ErrNotFound
	}

	protocol, err := s.protocolrepo.FindOne(ctx, &dietdomain.DietProtocol{ID: protocolID})
	if err != nil {
		return nil, err
	}
	if protocol == nil {
		return nil, dietdomain.ErrNotFound
	}
	return protocol, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	protocol, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("protocol_id = ?", protocol.ID).
			Delete(&dietdomain.DietAssignment{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", protocol.ID).
			Delete(&dietdomain.DietProtocol{}).Error
	})
}

func (s *Service) Assign(ctx context.Context, req dietdomain.AssignRequest) (*dietdomain.DietAssignment, error) {
	protocol, err := s.GetByID(ctx, req.ProtocolID)
	if err != nil {
		return nil, err
	}
	student, err := s.studentsvc.GetByID(ctx, req.StudentID)
	if err != nil {
		return nil, dietdomain.ErrInvalidStudent
	}

	startDate, err := parseOptionalDate(req.StartDate)
	if err != nil {
		return nil, dietdomain.ErrInvalidPeriod
	}
	endDate, err := parseOptionalDate(req.EndDate)
	if err != nil {
		return nil, dietdomain.ErrInvalidPeriod
	}
	if startDate != nil && endDate != nil && endDate.Before(*startDate) {
		return nil, dietdomain.ErrInvalidPeriod
	}

	now := s.clock.Now()
	assignment := &dietdomain.DietAssignment{
		ID:         s.genID.Generate(),
		StudentID:  student.ID,
		ProtocolID: protocol.ID,
		StartDate:  startDate,
		EndDate:    endDate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.assignmentrepo.Create(ctx, assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

func (s *Service) ListByStudent(ctx context.Context, studentID string) ([]dietdomain.DietProtocol, error) {
	student, err := s.studentsvc.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	var protocols []dietdomain.DietProtocol
	err = s.db.WithContext(ctx).
		Joins("JOIN diet_assignments ON diet_assignments.protocol_id = diet_protocols.id").
		Where("diet_assignments.student_id = ?", student.ID).
		Order("diet_assignments.created_at DESC").
		Find(&protocols).Error
	return protocols, err
}

func encodeMeals(meals []dietdomain.Meal) (datatypes.JSON, error) {
	if meals == nil {
		meals = []dietdomain.Meal{}
	}
	encoded, err := json.Marshal(meals)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(encoded), nil
}

func parseOptionalDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
