package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/TwinexTecnologia/bodybrothers/internal/clock"
	financedomain "github.com/TwinexTecnologia/bodybrothers/internal/finance/domain"
	paymentdomain "github.com/TwinexTecnologia/bodybrothers/internal/payment/domain"
	plandomain "github.com/TwinexTecnologia/bodybrothers/internal/plan/domain"
	studentdomain "github.com/TwinexTecnologia/bodybrothers/internal/student/domain"
	"github.com/TwinexTecnologia/bodybrothers/pkg/db/option"
)

// Manual Mocks

type mockStudentService struct {
	students []studentdomain.Student
}

func (m *mockStudentService) Create(ctx context.Context, req studentdomain.CreateStudentRequest) (*studentdomain.Student, error) {
	return nil, nil
}
func (m *mockStudentService) Update(ctx context.Context, req studentdomain.UpdateStudentRequest) (*studentdomain.Student, error) {
	return nil, nil
}
func (m *mockStudentService) List(ctx context.Context, req studentdomain.ListStudentRequest) ([]studentdomain.Student, error) {
	return m.students, nil
}
func (m *mockStudentService) GetByID(ctx context.Context, id string) (*studentdomain.Student, error) {
	for i := range m.students {
		if m.students[i].ID.String() == id {
			return &m.students[i], nil
		}
	}
	return nil, studentdomain.ErrNotFound
}
func (m *mockStudentService) Deactivate(ctx context.Context, id string) error { return nil }
func (m *mockStudentService) AssignPlan(ctx context.Context, req studentdomain.AssignPlanRequest) (*studentdomain.Student, error) {
	return nil, nil
}

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

type fixture struct {
	svc      *Service
	students *mockStudentService
	plans    *mockPlanService
	payments *mockPaymentRepo
	node     *snowflake.Node
}

func setupService(t *testing.T, now time.Time) *fixture {
	t.Helper()

	node, err := snowflake.NewNode(2)
	require.NoError(t, err)

	students := &mockStudentService{}
	plans := &mockPlanService{plans: map[string]*plandomain.Plan{}}
	payments := &mockPaymentRepo{}

	svc := &Service{
		log:         zap.NewNop(),
		clock:       clock.NewFakeClock(now),
		studentsvc:  students,
		plansvc:     plans,
		paymentrepo: payments,
	}

	return &fixture{svc: svc, students: students, plans: plans, payments: payments, node: node}
}

func (f *fixture) addPlan(frequency string, dueDay int, price float64) *plandomain.Plan {
	plan := &plandomain.Plan{
		ID:        f.node.Generate(),
		Name:      "Plan " + frequency,
		Price:     price,
		Frequency: frequency,
		DueDay:    dueDay,
		Active:    true,
	}
	f.plans.plans[plan.ID.String()] = plan
	return plan
}

func (f *fixture) addStudent(name string, plan *plandomain.Plan, startDate string) studentdomain.Student {
	student := studentdomain.Student{
		ID:     f.node.Generate(),
		Name:   name,
		Active: true,
	}
	if plan != nil {
		student.PlanID = &plan.ID
		student.PlanStartDate = startDate
	}
	f.students.students = append(f.students.students, student)
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

func TestStudentStatusWithoutPlan(t *testing.T) {
	f := setupService(t, time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC))
	student := f.addStudent("Ana", nil, "")

	status, err := f.svc.StudentStatus(context.Background(), student.ID.String())
	require.NoError(t, err)
	require.Empty(t, status.Charges)
	require.False(t, status.Overdue)
	require.Empty(t, status.PlanID)
}

func TestStudentStatusMarksPaidCharges(t *testing.T) {
	f := setupService(t, time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC))
	plan := f.addPlan("monthly", 10, 150)
	student := f.addStudent("Ana", plan, "2024-01-10")

	f.addPayment(student.ID, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))
	f.addPayment(student.ID, time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC))

	status, err := f.svc.StudentStatus(context.Background(), student.ID.String())
	require.NoError(t, err)
	require.Len(t, status.Charges, 3)
	require.True(t, status.Charges[0].Paid)
	require.True(t, status.Charges[1].Paid)
	require.False(t, status.Charges[2].Paid)
	require.True(t, status.Overdue, "march 10 charge is unpaid and past due")
}

func TestStudentStatusMonthRefPaymentCountsAsPaid(t *testing.T) {
	f := setupService(t, time.Date(2024, 2, 20, 12, 0, 0, 0, time.UTC))
	plan := f.addPlan("monthly", 10, 150)
	student := f.addStudent("Ana", plan, "2024-01-10")

	f.addPayment(student.ID, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))
	f.payments.records = append(f.payments.records, paymentdomain.PaymentRecord{
		ID:        f.node.Generate(),
		StudentID: student.ID,
		Amount:    150,
		MonthRef:  "2024-02",
		PaidAt:    time.Date(2024, 2, 12, 0, 0, 0, 0, time.UTC),
		Status:    paymentdomain.PaymentStatusReceived,
	})

	status, err := f.svc.StudentStatus(context.Background(), student.ID.String())
	require.NoError(t, err)
	require.Len(t, status.Charges, 2)
	require.True(t, status.Charges[1].Paid, "month-ref payment should satisfy the february charge")
	require.False(t, status.Overdue)
}

func TestStudentStatusMalformedStartDateDegradesToEmpty(t *testing.T) {
	f := setupService(t, time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC))
	plan := f.addPlan("monthly", 10, 150)
	student := f.addStudent("Ana", plan, "10/01/2024")

	status, err := f.svc.StudentStatus(context.Background(), student.ID.String())
	require.NoError(t, err)
	require.Empty(t, status.Charges)
	require.False(t, status.Overdue)
}

func TestMonthlyOverviewTotals(t *testing.T) {
	f := setupService(t, time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC))
	plan := f.addPlan("monthly", 10, 150)

	paid := f.addStudent("Ana", plan, "2024-01-10")
	f.addStudent("Bia", plan, "2024-01-10")
	f.addStudent("Carla", nil, "")

	f.addPayment(paid.ID, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))
	f.addPayment(paid.ID, time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC))
	f.addPayment(paid.ID, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))

	overview, err := f.svc.MonthlyOverview(context.Background(), "2024-03")
	require.NoError(t, err)
	require.Equal(t, "2024-03", overview.Month)
	require.Len(t, overview.Entries, 2, "students without a plan are skipped")
	require.Equal(t, 300.0, overview.Expected)
	require.Equal(t, 150.0, overview.Received)
	require.Equal(t, 1, overview.OverdueCount)
}

func TestMonthlyOverviewDefaultsToCurrentMonth(t *testing.T) {
	f := setupService(t, time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC))

	overview, err := f.svc.MonthlyOverview(context.Background(), "")
	require.NoError(t, err)
	require.Equal(t, "2024-03", overview.Month)
}

func TestMonthlyOverviewRejectsMalformedMonth(t *testing.T) {
	f := setupService(t, time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC))

	_, err := f.svc.MonthlyOverview(context.Background(), "March 2024")
	require.True(t, errors.Is(err, financedomain.ErrInvalidMonth))
}
