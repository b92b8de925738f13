package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/TwinexTecnologia/bodybrothers/internal/clock"
	studentdomain "github.com/TwinexTecnologia/bodybrothers/internal/student/domain"
	workoutdomain "github.com/TwinexTecnologia/bodybrothers/internal/workout/domain"
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

	protocolrepo   repository.Repository[workoutdomain.WorkoutProtocol]
	assignmentrepo repository.Repository[workoutdomain.WorkoutAssignment]
}

func NewService(p ServiceParam) workoutdomain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("workout.service"),
		genID:      p.GenID,
		clock:      p.Clock,
		studentsvc: p.Studentsvc,

		protocolrepo:   repository.ProvideStore[workoutdomain.WorkoutProtocol](p.DB),
		assignmentrepo: repository.ProvideStore[workoutdomain.WorkoutAssignment](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, req workoutdomain.CreateProtocolRequest) (*workoutdomain.WorkoutProtocol, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, workoutdomain.ErrInvalidName
	}

	exercises, err := encodeExercises(req.Exercises)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	protocol := &workoutdomain.WorkoutProtocol{
		ID:        s.genID.Generate(),
		Name:      name,
		Division:  strings.TrimSpace(req.Division),
		Notes:     req.Notes,
		Exercises: exercises,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.protocolrepo.Create(ctx, protocol); err != nil {
		return nil, err
	}
	return protocol, nil
}

func (s *Service) Update(ctx context.Context, req workoutdomain.UpdateProtocolRequest) (*workoutdomain.WorkoutProtocol, error) {
	protocol, err := s.GetByID(ctx, req.ProtocolID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, workoutdomain.ErrInvalidName
		}
		protocol.Name = name
	}
	if req.Division != nil {
		protocol.Division = strings.TrimSpace(*req.Division)
	}
	if req.Notes != nil {
		protocol.Notes = *req.Notes
	}
	if req.Exercises != nil {
		exercises, err := encodeExercises(req.Exercises)
		if err != nil {
			return nil, err
		}
		protocol.Exercises = exercises
	}

	protocol.UpdatedAt = s.clock.Now()
	if err := s.db.WithContext(ctx).Save(protocol).Error; err != nil {
		return nil, err
	}
	return protocol, nil
}

func (s *Service) List(ctx context.Context) ([]workoutdomain.WorkoutProtocol, error) {
	rows, err := s.protocolrepo.Find(ctx, &workoutdomain.WorkoutProtocol{}, option.WithOrder("name ASC"))
	if err != nil {
		return nil, err
	}

	protocols := make([]workoutdomain.WorkoutProtocol, 0, len(rows))
	for _, row := range rows {
		protocols = append(protocols, *row)
	}
	return protocols, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*workoutdomain.WorkoutProtocol, error) {
	protocolID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, workoutdomain.ErrNotFound
	}

	protocol, err := s.protocolrepo.FindOne(ctx, &workoutdomain.WorkoutProtocol{ID: protocolID})
	if err != nil {
		return nil, err
	}
	if protocol == nil {
		return nil, workoutdomain.ErrNotFound
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
			Delete(&workoutdomain.WorkoutAssignment{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", protocol.ID).
			Delete(&workoutdomain.WorkoutProtocol{}).Error
	})
}

func (s *Service) Assign(ctx context.Context, req workoutdomain.AssignRequest) (*workoutdomain.WorkoutAssignment, error) {
	protocol, err := s.GetByID(ctx, req.ProtocolID)
	if err != nil {
		return nil, err
	}
	student, err := s.studentsvc.GetByID(ctx, req.StudentID)
	if err != nil {
		return nil, workoutdomain.ErrInvalidStudent
	}

	startDate, err := parseOptionalDate(req.StartDate)
	if err != nil {
		return nil, workoutdomain.ErrInvalidPeriod
	}
	endDate, err := parseOptionalDate(req.EndDate)
	if err != nil {
		return nil, workoutdomain.ErrInvalidPeriod
	}
	if startDate != nil && endDate != nil && endDate.Before(*startDate) {
		return nil, workoutdomain.ErrInvalidPeriod
	}

	now := s.clock.Now()
	assignment := &workoutdomain.WorkoutAssignment{
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

	s.log.Info("workout assigned",
		zap.String("student_id", student.ID.String()),
		zap.String("protocol_id", protocol.ID.String()),
	)
	return assignment, nil
}

func (s *Service) ListByStudent(ctx context.Context, studentID string) ([]workoutdomain.WorkoutProtocol, error) {
	student, err := s.studentsvc.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	var protocols []workoutdomain.WorkoutProtocol
	err = s.db.WithContext(ctx).
		Joins("JOIN workout_assignments ON workout_assignments.protocol_id = workout_protocols.id").
		Where("workout_assignments.student_id = ?", student.ID).
		Order("workout_assignments.created_at DESC").
		Find(&protocols).Error
	return protocols, err
}

func (s *Service) Exercises(protocol *workoutdomain.WorkoutProtocol) ([]workoutdomain.Exercise, error) {
	if protocol == nil || len(protocol.Exercises) == 0 {
		return nil, nil
	}
	var exercises []workoutdomain.Exercise
	if err := json.Unmarshal(protocol.Exercises, &exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}

func encodeExercises(exercises []workoutdomain.Exercise) (datatypes.JSON, error) {
	if exercises == nil {
		exercises = []workoutdomain.Exercise{}
	}
	encoded, err := json.Marshal(exercises)
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
