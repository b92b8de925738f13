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
	paymentrepo "github.com/TwinexTecnologia/bodybrothers/internal/payment/repository"
	studentdomain "github.com/TwinexTecnologia/bodybrothers/internal/student/domain"
)

type fixture struct {
	svc  *Service
	db   *gorm.DB
	node *snowflake.Node
}

func setupService(t *testing.T, now time.Time) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&studentdomain.Student{}, &paymentdomain.PaymentRecord{}))

	node, err := snowflake.NewNode(3)
	require.NoError(t, err)

	svc := &Service{
		db:    db,
		log:   zap.NewNop(),
		genID: node,
		clock: clock.NewFakeClock(now),
		repo:  paymentrepo.Provide(),
	}
	return &fixture{svc: svc, db: db, node: node}
}

func (f *fixture) addStudent(t *testing.T, name string) studentdomain.Student {
	t.Helper()
	student := studentdomain.Student{
		ID:     f.node.Generate(),
		Name:   name,
		Active: true,
	}
	require.NoError(t, f.db.Create(&student).Error)
	return student
}

func TestCreatePaymentWithDueDate(t *testing.T) {
	now := time.Date(2024, 3, 12, 10, 0, 0, 0, time.UTC)
	f := setupService(t, now)
	student := f.addStudent(t, "Ana")

	record, err := f.svc.Create(context.Background(), paymentdomain.CreatePaymentRequest{
		StudentID: student.ID.String(),
		Amount:    150,
		DueDate:   "2024-03-10",
		Method:    "pix",
	})
	require.NoError(t, err)
	require.NotNil(t, record.DueDate)
	require.Equal(t, "2024-03-10", record.DueDate.Format("2006-01-02"))
	require.Equal(t, now, record.PaidAt)
	require.Equal(t, paymentdomain.PaymentStatusReceived, record.Status)
	require.Equal(t, "pix", record.Method)
}

func TestCreatePaymentWithMonthRef(t *testing.T) {
	f := setupService(t, time.Date(2024, 3, 12, 10, 0, 0, 0, time.UTC))
	student := f.addStudent(t, "Ana")

	record, err := f.svc.Create(context.Background(), paymentdomain.CreatePaymentRequest{
		StudentID: student.ID.String(),
		Amount:    150,
		MonthRef:  "2024-03",
	})
	require.NoError(t, err)
	require.Nil(t, record.DueDate)
	require.Equal(t, "2024-03", record.MonthRef)
}

func TestCreatePaymentRequiresChargeReference(t *testing.T) {
	f := setupService(t, time.Date(2024, 3, 12, 10, 0, 0, 0, time.UTC))
	student := f.addStudent(t, "Ana")

	_, err := f.svc.Create(context.Background(), paymentdomain.CreatePaymentRequest{
		StudentID: student.ID.String(),
		Amount:    150,
	})
	require.True(t, errors.Is(err, paymentdomain.ErrMissingChargeRef))
}

func TestCreatePaymentRejectsMalformedReferences(t *testing.T) {
	f := setupService(t, time.Date(2024, 3, 12, 10, 0, 0, 0, time.UTC))
	student := f.addStudent(t, "Ana")

	_, err := f.svc.Create(context.Background(), paymentdomain.CreatePaymentRequest{
		StudentID: student.ID.String(),
		Amount:    150,
		DueDate:   "10/03/2024",
	})
	require.True(t, errors.Is(err, paymentdomain.ErrInvalidDueDate))

	_, err = f.svc.Create(context.Background(), paymentdomain.CreatePaymentRequest{
		StudentID: student.ID.String(),
		Amount:    150,
		MonthRef:  "March 2024",
	})
	require.True(t, errors.Is(err, paymentdomain.ErrInvalidMonthRef))
}

func TestCreatePaymentRejectsNegativeAmount(t *testing.T) {
	f := setupService(t, time.Date(2024, 3, 12, 10, 0, 0, 0, time.UTC))
	student := f.addStudent(t, "Ana")

	_, err := f.svc.Create(context.Background(), paymentdomain.CreatePaymentRequest{
		StudentID: student.ID.String(),
		Amount:    -1,
		MonthRef:  "2024-03",
	})
	require.True(t, errors.Is(err, paymentdomain.ErrInvalidAmount))
}

func TestCreatePaymentRejectsUnknownStudent(t *testing.T) {
	f := setupService(t, time.Date(2024, 3, 12, 10, 0, 0, 0, time.UTC))

	_, err := f.svc.Create(context.Background(), paymentdomain.CreatePaymentRequest{
		StudentID: f.node.Generate().String(),
		Amount:    150,
		MonthRef:  "2024-03",
	})
	require.True(t, errors.Is(err, paymentdomain.ErrInvalidStudent))
}

func TestUndoHardDeletesRecord(t *testing.T) {
	f := setupService(t, time.Date(2024, 3, 12, 10, 0, 0, 0, time.UTC))
	student := f.addStudent(t, "Ana")

	record, err := f.svc.Create(context.Background(), paymentdomain.CreatePaymentRequest{
		StudentID: student.ID.String(),
		Amount:    150,
		MonthRef:  "2024-03",
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.Undo(context.Background(), record.ID.String()))

	_, err = f.svc.GetByID(context.Background(), record.ID.String())
	require.True(t, errors.Is(err, paymentdomain.ErrNotFound))

	var count int64
	require.NoError(t, f.db.Model(&paymentdomain.PaymentRecord{}).Count(&count).Error)
	require.Zero(t, count, "undo removes the row entirely")
}

func TestUndoUnknownPayment(t *testing.T) {
	f := setupService(t, time.Date(2024, 3, 12, 10, 0, 0, 0, time.UTC))

	err := f.svc.Undo(context.Background(), f.node.Generate().String())
	require.True(t, errors.Is(err, paymentdomain.ErrNotFound))
}

func TestListFiltersByStudent(t *testing.T) {
	f := setupService(t, time.Date(2024, 3, 12, 10, 0, 0, 0, time.UTC))
	ana := f.addStudent(t, "Ana")
	bia := f.addStudent(t, "Bia")

	for _, studentID := range []string{ana.ID.String(), ana.ID.String(), bia.ID.String()} {
		_, err := f.svc.Create(context.Background(), paymentdomain.CreatePaymentRequest{
			StudentID: studentID,
			Amount:    150,
			MonthRef:  "2024-03",
		})
		require.NoError(t, err)
	}

	page, err := f.svc.List(context.Background(), paymentdomain.ListPaymentRequest{StudentID: ana.ID.String()})
	require.NoError(t, err)
	require.Len(t, page.Records, 2)
	require.False(t, page.PageInfo.HasMore)

	page, err = f.svc.List(context.Background(), paymentdomain.ListPaymentRequest{})
	require.NoError(t, err)
	require.Len(t, page.Records, 3)
}

func TestListPagesThroughHistory(t *testing.T) {
	f := setupService(t, time.Date(2024, 3, 12, 10, 0, 0, 0, time.UTC))
	student := f.addStudent(t, "Ana")

	for month := 1; month <= 5; month++ {
		_, err := f.svc.Create(context.Background(), paymentdomain.CreatePaymentRequest{
			StudentID: student.ID.String(),
			Amount:    150,
			MonthRef:  time.Date(2024, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format("2006-01"),
		})
		require.NoError(t, err)
	}

	first, err := f.svc.List(context.Background(), paymentdomain.ListPaymentRequest{PageSize: 2})
	require.NoError(t, err)
	require.Len(t, first.Records, 2)
	require.True(t, first.PageInfo.HasMore)
	require.Equal(t, "2024-05", first.Records[0].MonthRef, "newest record comes first")

	second, err := f.svc.List(context.Background(), paymentdomain.ListPaymentRequest{
		PageSize:  2,
		PageToken: first.PageInfo.NextPageToken,
	})
	require.NoError(t, err)
	require.Len(t, second.Records, 2)
	require.True(t, second.PageInfo.HasMore)

	third, err := f.svc.List(context.Background(), paymentdomain.ListPaymentRequest{
		PageSize:  2,
		PageToken: second.PageInfo.NextPageToken,
	})
	require.NoError(t, err)
	require.Len(t, third.Records, 1)
	require.False(t, third.PageInfo.HasMore)
	require.Equal(t, "2024-01", third.Records[0].MonthRef)
}

func TestListRejectsMalformedPageToken(t *testing.T) {
	f := setupService(t, time.Date(2024, 3, 12, 10, 0, 0, 0, time.UTC))

	_, err := f.svc.List(context.Background(), paymentdomain.ListPaymentRequest{PageToken: "not-a-cursor"})
	require.True(t, errors.Is(err, paymentdomain.ErrInvalidPageToken))
}
