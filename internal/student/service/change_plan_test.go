package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/TwinexTecnologia/bodybrothers/internal/clock"
	paymentdomain "github.com/TwinexTecnologia/bodybrothers/internal/payment/domain"
	plandomain "github.com/TwinexTecnologia/bodybrothers/internal/plan/domain"
	studentdomain "github.com/TwinexTecnologia/bodybrothers/internal/student/domain"
	"github.com/TwinexTecnologia/bodybrothers/pkg/db/option"
	"github.com/TwinexTecnologia/bodybrothers/pkg/repository"
)

// Manual Mocks

type mockPlanService struct {
	plans map[string]*plandomain.Plan
}

func (m *mockPlanService) Create(ctx context.Context, req plandomain.CreatePlanRequest) (*plandomain.Plan, error) {
	return nil, nil
}
func (m *mockPlanService) Update(ctx context.Context, req plandomain.UpdatePlanRequest) (*plandomain.Plan, error) {
	return nil, nil
}
func (m *mockPlanService) List(ctx context.Context, req plandomain.ListPlanRequest) ([]plandomain.Plan, error) {
	return nil, nil
}
func (m *mockPlanService) GetByID(ctx context.Context, id string) (*plandomain.Plan, error) {
	if p, ok := m.plans[id]; ok {
		return p, nil
	}
	return nil, plandomain.ErrNotFound
}
func (m *mockPlanService) Deactivate(ctx context.Context, id string) error { return nil }

type mockPaymentRepo struct {
	records []paymentdomain.PaymentRecord
}

func (m *mockPaymentRepo) Insert(ctx context.Context, db *gorm.DB, record *paymentdomain.PaymentRecord) error {
	m.records = append(m.records, *record)
	return nil
}
func (m *mockPaymentRepo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return nil
}
func (m *mockPaymentRepo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*paymentdomain.PaymentRecord, error) {
	return nil, nil
}
func (m *mockPaymentRepo) ListByStudent(ctx context.Context, db *gorm.DB, studentID snowflake.ID, opts ...option.QueryOption) ([]paymentdomain.PaymentRecord, error) {
	var out []paymentdomain.PaymentRecord
	for _, r := range m.records {
		if r.StudentID == studentID {
			out = append(out, r)
		}
	}
	return out, nil
}
func (m *mockPaymentRepo) ListAll(ctx context.Context, db *gorm.DB, opts ...option.QueryOption) ([]paymentdomain.PaymentRecord, error) {
	return m.records, nil
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&studentdomain.Student{}))
	return db
}

type fixture struct {
	svc      *Service
	plans    *mockPlanService
	payments *mockPaymentRepo
	clock    *clock.FakeClock
	node     *snowflake.Node
}

func setupService(t *testing.T, now time.Time) *fixture {
	t.Helper()

	db := setupTestDB(t)
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	plans := &mockPlanService{plans: map[string]*plandomain.Plan{}}
	payments := &mockPaymentRepo{}
	fake := clock.NewFakeClock(now)

	svc := &Service{
		db:          db,
		log:         zap.NewNop(),
		genID:       node,
		clock:       fake,
		plansvc:     plans,
		paymentrepo: payments,
		studentrepo: repository.ProvideStore[studentdomain.Student](db),
	}

	return &fixture{svc: svc, plans: plans, payments: payments, clock: fake, node: node}
}

func (f *fixture) addPlan(t *testing.T, frequency string, dueDay int) *plandomain.Plan {
	t.Helper()
	plan := &plandomain.Plan{
		ID:        f.node.Generate(),
		Name:      "Plan " + frequency,
		Price:     150,
		Frequency: frequency,
		DueDay:    dueDay,
		Active:    true,
	}
	f.plans.plans[plan.ID.String()] = plan
	return plan
}

func (f *fixture) addStudent(t *testing.T, plan *plandomain.Plan, startDate string) *studentdomain.Student {
	t.Helper()
	student := &studentdomain.Student{
		ID:     f.node.Generate(),
		Name:   "Ana",
		Active: true,
	}
	if plan != nil {
		student.PlanID = &plan.ID
		student.PlanStartDate = startDate
	}
	require.NoError(t, f.svc.db.Create(student).Error)
	return student
}

func (f *fixture) addPayment(studentID snowflake.ID, dueDate time.Time) {
	f.payments.records = append(f.payments.records, paymentdomain.PaymentRecord{
		ID:        f.node.Generate(),
		StudentID: studentID,
		Amount:    150,
		DueDate:   &dueDate,
		PaidAt:    dueDate,
		Status:    paymentdomain.PaymentStatusReceived,
	})
}

func TestAssignPlanFirstAssignment(t *testing.T) {
	f := setupService(t, time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC))
	plan := f.addPlan(t, "monthly", 10)
	student := f.addStudent(t, nil, "")

	updated, err := f.svc.AssignPlan(context.Background(), studentdomain.AssignPlanRequest{
		StudentID:     student.ID.String(),
		PlanID:        plan.ID.String(),
		PlanStartDate: "2024-03-15",
	})
	require.NoError(t, err)
	require.NotNil(t, updated.PlanID)
	require.Equal(t, plan.ID, *updated.PlanID)
	require.Equal(t, "2024-03-15", updated.PlanStartDate)
}

func TestChangePlanBlockedWhileOverdue(t *testing.T) {
	// Monthly plan started in January, due day 10. By mid March the
	// February and March charges exist and nothing was paid.
	f := setupService(t, time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC))
	oldPlan := f.addPlan(t, "monthly", 10)
	newPlan := f.addPlan(t, "monthly", 5)
	student := f.addStudent(t, oldPlan, "2024-01-10")

	_, err := f.svc.AssignPlan(context.Background(), studentdomain.AssignPlanRequest{
		StudentID:     student.ID.String(),
		PlanID:        newPlan.ID.String(),
		PlanStartDate: "2024-03-15",
	})
	require.True(t, errors.Is(err, studentdomain.ErrStudentOverdue))
}

func TestChangePlanAllowedWhenPaidUp(t *testing.T) {
	f := setupService(t, time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC))
	oldPlan := f.addPlan(t, "monthly", 10)
	newPlan := f.addPlan(t, "monthly", 5)
	student := f.addStudent(t, oldPlan, "2024-01-10")

	f.addPayment(student.ID, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))
	f.addPayment(student.ID, time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC))
	f.addPayment(student.ID, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))

	updated, err := f.svc.AssignPlan(context.Background(), studentdomain.AssignPlanRequest{
		StudentID:     student.ID.String(),
		PlanID:        newPlan.ID.String(),
		PlanStartDate: "2024-03-15",
	})
	require.NoError(t, err)
	require.Equal(t, newPlan.ID, *updated.PlanID)
}

func TestChangePlanAllowedWhenChargeDueToday(t *testing.T) {
	// The charge due on the change day itself is pending, not overdue.
	f := setupService(t, time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC))
	oldPlan := f.addPlan(t, "monthly", 10)
	newPlan := f.addPlan(t, "monthly", 5)
	student := f.addStudent(t, oldPlan, "2024-02-10")

	f.addPayment(student.ID, time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC))

	updated, err := f.svc.AssignPlan(context.Background(), studentdomain.AssignPlanRequest{
		StudentID:     student.ID.String(),
		PlanID:        newPlan.ID.String(),
		PlanStartDate: "2024-03-10",
	})
	require.NoError(t, err)
	require.Equal(t, newPlan.ID, *updated.PlanID)
}

func TestAssignPlanRejectsMalformedStartDate(t *testing.T) {
	f := setupService(t, time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC))
	plan := f.addPlan(t, "monthly", 10)
	student := f.addStudent(t, nil, "")

	_, err := f.svc.AssignPlan(context.Background(), studentdomain.AssignPlanRequest{
		StudentID:     student.ID.String(),
		PlanID:        plan.ID.String(),
		PlanStartDate: "15/03/2024",
	})
	require.True(t, errors.Is(err, studentdomain.ErrInvalidStartDate))
}

func TestAssignPlanRejectsOutOfRangeDueDayOverride(t *testing.T) {
	f := setupService(t, time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC))
	plan := f.addPlan(t, "monthly", 10)
	student := f.addStudent(t, nil, "")

	override := 32
	_, err := f.svc.AssignPlan(context.Background(), studentdomain.AssignPlanRequest{
		StudentID:      student.ID.String(),
		PlanID:         plan.ID.String(),
		PlanStartDate:  "2024-03-15",
		DueDayOverride: &override,
	})
	require.True(t, errors.Is(err, studentdomain.ErrInvalidDueDay))
}
