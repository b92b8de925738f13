package service

import (
	"context"
	"strings"
	"time"

	"github.com/TwinexTecnologia/bodybrothers/internal/billing"
	"github.com/TwinexTecnologia/bodybrothers/internal/clock"
	paymentdomain "github.com/TwinexTecnologia/bodybrothers/internal/payment/domain"
	plandomain "github.com/TwinexTecnologia/bodybrothers/internal/plan/domain"
	studentdomain "github.com/TwinexTecnologia/bodybrothers/internal/student/domain"
	"github.com/TwinexTecnologia/bodybrothers/pkg/db"
	"github.com/TwinexTecnologia/bodybrothers/pkg/db/option"
	"github.com/TwinexTecnologia/bodybrothers/pkg/repository"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Clock       clock.Clock
	Plansvc     plandomain.Service
	PaymentRepo paymentdomain.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	clock       clock.Clock
	plansvc     plandomain.Service
	paymentrepo paymentdomain.Repository

	studentrepo repository.Repository[studentdomain.Student]
}

func NewService(p ServiceParam) studentdomain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("student.service"),
		genID:       p.GenID,
		clock:       p.Clock,
		plansvc:     p.Plansvc,
		paymentrepo: p.PaymentRepo,

		studentrepo: repository.ProvideStore[studentdomain.Student](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, req studentdomain.CreateStudentRequest) (*studentdomain.Student, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, studentdomain.ErrInvalidName
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email != "" && !strings.Contains(email, "@") {
		return nil, studentdomain.ErrInvalidEmail
	}

	birthDate, err := parseOptionalDate(req.BirthDate)
	if err != nil {
		return nil, studentdomain.ErrInvalidBirthDate
	}

	now := s.clock.Now()
	student := &studentdomain.Student{
		ID:        s.genID.Generate(),
		Name:      name,
		Email:     email,
		Phone:     strings.TrimSpace(req.Phone),
		BirthDate: birthDate,
		Notes:     req.Notes,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.studentrepo.Create(ctx, student); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, studentdomain.ErrEmailTaken
		}
		return nil, err
	}

	s.log.Info("student created", zap.String("student_id", student.ID.String()))
	return student, nil
}

func (s *Service) Update(ctx context.Context, req studentdomain.UpdateStudentRequest) (*studentdomain.Student, error) {
	student, err := s.GetByID(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, studentdomain.ErrInvalidName
		}
		student.Name = name
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != "" && !strings.Contains(email, "@") {
			return nil, studentdomain.ErrInvalidEmail
		}
		student.Email = email
	}
	if req.Phone != nil {
		student.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.BirthDate != nil {
		birthDate, err := parseOptionalDate(*req.BirthDate)
		if err != nil {
			return nil, studentdomain.ErrInvalidBirthDate
		}
		student.BirthDate = birthDate
	}
	if req.Notes != nil {
		student.Notes = *req.Notes
	}

	student.UpdatedAt = s.clock.Now()
	if err := s.db.WithContext(ctx).Save(student).Error; err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, studentdomain.ErrEmailTaken
		}
		return nil, err
	}
	return student, nil
}

func (s *Service) List(ctx context.Context, req studentdomain.ListStudentRequest) ([]studentdomain.Student, error) {
	filter := &studentdomain.Student{}
	if req.ActiveOnly {
		filter.Active = true
	}
	if planID := strings.TrimSpace(req.PlanID); planID != "" {
		parsed, err := snowflake.ParseString(planID)
		if err != nil {
			return nil, plandomain.ErrNotFound
		}
		filter.PlanID = &parsed
	}

	rows, err := s.studentrepo.Find(ctx, filter, option.WithOrder("name ASC"))
	if err != nil {
		return nil, err
	}

	students := make([]studentdomain.Student, 0, len(rows))
	for _, row := range rows {
		students = append(students, *row)
	}
	return students, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*studentdomain.Student, error) {
	studentID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, studentdomain.ErrNotFound
	}

	student, err := s.studentrepo.FindOne(ctx, &studentdomain.Student{ID: studentID})
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, studentdomain.ErrNotFound
	}
	return student, nil
}

func (s *Service) Deactivate(ctx context.Context, id string) error {
	student, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Model(&studentdomain.Student{}).
		Where("id = ?", student.ID).
		Updates(map[string]any{"active": false, "updated_at": s.clock.Now()}).Error
}

// AssignPlan sets or replaces the student's billing plan. Replacing is
// refused while the student is overdue on the current plan: the financial
// history has to be resolved before switching.
func (s *Service) AssignPlan(ctx context.Context, req studentdomain.AssignPlanRequest) (*studentdomain.Student, error) {
	student, err := s.GetByID(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}

	newPlan, err := s.plansvc.GetByID(ctx, strings.TrimSpace(req.PlanID))
	if err != nil {
		return nil, err
	}

	startDate := strings.TrimSpace(req.PlanStartDate)
	if _, err := billing.ParseStartDate(startDate); err != nil {
		return nil, studentdomain.ErrInvalidStartDate
	}
	if req.DueDayOverride != nil && (*req.DueDayOverride < 1 || *req.DueDayOverride > 31) {
		return nil, studentdomain.ErrInvalidDueDay
	}

	if student.PlanID != nil {
		overdue, err := s.isOverdueOnCurrentPlan(ctx, student)
		if err != nil {
			return nil, err
		}
		if overdue {
			return nil, studentdomain.ErrStudentOverdue
		}
	}

	student.PlanID = &newPlan.ID
	student.PlanStartDate = startDate
	student.DueDayOverride = req.DueDayOverride
	student.UpdatedAt = s.clock.Now()

	if err := s.db.WithContext(ctx).Save(student).Error; err != nil {
		return nil, err
	}

	s.log.Info("plan assigned",
		zap.String("student_id", student.ID.String()),
		zap.String("plan_id", newPlan.ID.String()),
	)
	return student, nil
}

func (s *Service) isOverdueOnCurrentPlan(ctx context.Context, student *studentdomain.Student) (bool, error) {
	currentPlan, err := s.plansvc.GetByID(ctx, student.PlanID.String())
	if err != nil {
		return false, err
	}

	records, err := s.paymentrepo.ListByStudent(ctx, s.db, student.ID)
	if err != nil {
		return false, err
	}

	frequency, ok := billing.ParseFrequency(currentPlan.Frequency)
	if !ok {
		return false, nil
	}

	// Charges due today are pending, not overdue.
	asOf := s.clock.Now().AddDate(0, 0, -1)
	sched := billing.Schedule{
		StartDate: student.PlanStartDate,
		Frequency: frequency,
		DueDay:    student.EffectiveDueDay(currentPlan.DueDay),
	}
	return billing.IsOverdue(sched, paymentdomain.AsBillingPayments(records), asOf), nil
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
