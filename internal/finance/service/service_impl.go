package service

import (
	"context"
	"strings"
	"time"

	"github.com/TwinexTecnologia/bodybrothers/internal/billing"
	"github.com/TwinexTecnologia/bodybrothers/internal/clock"
	financedomain "github.com/TwinexTecnologia/bodybrothers/internal/finance/domain"
	paymentdomain "github.com/TwinexTecnologia/bodybrothers/internal/payment/domain"
	plandomain "github.com/TwinexTecnologia/bodybrothers/internal/plan/domain"
	studentdomain "github.com/TwinexTecnologia/bodybrothers/internal/student/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	Clock       clock.Clock
	Studentsvc  studentdomain.Service
	Plansvc     plandomain.Service
	PaymentRepo paymentdomain.Repository
}

// Service composes the charge projector, the payment matcher and the overdue
// classifier over already-fetched records. It performs no writes and
// tolerates stale or partial payment lists.
type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	clock       clock.Clock
	studentsvc  studentdomain.Service
	plansvc     plandomain.Service
	paymentrepo paymentdomain.Repository
}

func NewService(p ServiceParam) financedomain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("finance.service"),
		clock:       p.Clock,
		studentsvc:  p.Studentsvc,
		plansvc:     p.Plansvc,
		paymentrepo: p.PaymentRepo,
	}
}

func (s *Service) StudentStatus(ctx context.Context, studentID string) (*financedomain.StudentFinance, error) {
	student, err := s.studentsvc.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	status := &financedomain.StudentFinance{
		StudentID:   student.ID.String(),
		StudentName: student.Name,
		Charges:     []financedomain.ProjectedCharge{},
	}
	if student.PlanID == nil {
		return status, nil
	}

	plan, err := s.plansvc.GetByID(ctx, student.PlanID.String())
	if err != nil {
		return nil, err
	}
	records, err := s.paymentrepo.ListByStudent(ctx, s.db, student.ID)
	if err != nil {
		return nil, err
	}

	frequency, ok := billing.ParseFrequency(plan.Frequency)
	if !ok {
		return status, nil
	}
	sched := billing.Schedule{
		StartDate: student.PlanStartDate,
		Frequency: frequency,
		DueDay:    student.EffectiveDueDay(plan.DueDay),
	}

	now := s.clock.Now()
	payments := paymentdomain.AsBillingPayments(records)

	// Project through the end of the current month so the trainer sees the
	// upcoming charge alongside the history.
	horizon := endOfMonth(now)
	charges := billing.ProjectCharges(sched, horizon)
	if len(charges) == 0 && strings.TrimSpace(student.PlanStartDate) != "" {
		if _, err := billing.ParseStartDate(student.PlanStartDate); err != nil {
			// Preserved behavior: a corrupted start date degrades to "no
			// charges" for the caller, but leave a trace for diagnosis.
			s.log.Warn("unparseable plan start date",
				zap.String("student_id", student.ID.String()),
				zap.String("plan_start_date", student.PlanStartDate),
			)
		}
	}

	status.PlanID = plan.ID.String()
	status.PlanName = plan.Name
	status.Frequency = plan.Frequency
	for _, charge := range charges {
		status.Charges = append(status.Charges, financedomain.ProjectedCharge{
			DueDate: charge,
			Amount:  plan.Price,
			Paid:    billing.IsChargeSatisfied(charge, payments),
		})
	}
	status.Overdue = billing.IsOverdue(sched, payments, now.AddDate(0, 0, -1))

	return status, nil
}

func (s *Service) MonthlyOverview(ctx context.Context, month string) (*financedomain.Overview, error) {
	monthStart, err := parseMonth(month, s.clock.Now())
	if err != nil {
		return nil, err
	}
	monthEnd := monthStart.AddDate(0, 1, -1)

	students, err := s.studentsvc.List(ctx, studentdomain.ListStudentRequest{ActiveOnly: true})
	if err != nil {
		return nil, err
	}

	overview := &financedomain.Overview{
		Month:   monthStart.Format("2006-01"),
		Entries: []financedomain.OverviewEntry{},
	}

	asOf := s.clock.Now().AddDate(0, 0, -1)
	for _, student := range students {
		if student.PlanID == nil {
			continue
		}

		plan, err := s.plansvc.GetByID(ctx, student.PlanID.String())
		if err != nil {
			return nil, err
		}
		frequency, ok := billing.ParseFrequency(plan.Frequency)
		if !ok {
			continue
		}

		records, err := s.paymentrepo.ListByStudent(ctx, s.db, student.ID)
		if err != nil {
			return nil, err
		}
		payments := paymentdomain.AsBillingPayments(records)

		sched := billing.Schedule{
			StartDate: student.PlanStartDate,
			Frequency: frequency,
			DueDay:    student.EffectiveDueDay(plan.DueDay),
		}

		entry := financedomain.OverviewEntry{
			StudentID:   student.ID.String(),
			StudentName: student.Name,
			PlanName:    plan.Name,
			Charges:     []financedomain.ProjectedCharge{},
			Overdue:     billing.IsOverdue(sched, payments, asOf),
		}

		for _, charge := range billing.ProjectCharges(sched, monthEnd) {
			if charge.Before(monthStart) {
				continue
			}
			paid := billing.IsChargeSatisfied(charge, payments)
			entry.Charges = append(entry.Charges, financedomain.ProjectedCharge{
				DueDate: charge,
				Amount:  plan.Price,
				Paid:    paid,
			})
			entry.Expected += plan.Price
			if paid {
				entry.Received += plan.Price
			}
		}

		if entry.Overdue {
			overview.OverdueCount++
		}
		overview.Expected += entry.Expected
		overview.Received += entry.Received
		overview.Entries = append(overview.Entries, entry)
	}

	return overview, nil
}

func parseMonth(raw string, now time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	}
	parsed, err := time.Parse("2006-01", raw)
	if err != nil {
		return time.Time{}, financedomain.ErrInvalidMonth
	}
	return parsed, nil
}

func endOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1)
}
