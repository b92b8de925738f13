package service

import (
	"context"
	"strings"
	"time"

	"github.com/TwinexTecnologia/bodybrothers/internal/clock"
	paymentdomain "github.com/TwinexTecnologia/bodybrothers/internal/payment/domain"
	studentdomain "github.com/TwinexTecnologia/bodybrothers/internal/student/domain"
	"github.com/TwinexTecnologia/bodybrothers/pkg/db/option"
	"github.com/TwinexTecnologia/bodybrothers/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 25
	maxPageSize     = 250
)

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  paymentdomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  paymentdomain.Repository
}

func NewService(p ServiceParam) paymentdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("payment.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req paymentdomain.CreatePaymentRequest) (*paymentdomain.PaymentRecord, error) {
	studentID, err := snowflake.ParseString(strings.TrimSpace(req.StudentID))
	if err != nil {
		return nil, paymentdomain.ErrInvalidStudent
	}
	if req.Amount < 0 {
		return nil, paymentdomain.ErrInvalidAmount
	}

	var student studentdomain.Student
	if err := s.db.WithContext(ctx).Where("id = ?", studentID).First(&student).Error; err != nil {
		return nil, paymentdomain.ErrInvalidStudent
	}

	dueDate, monthRef, err := parseChargeReference(req.DueDate, req.MonthRef)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	record := &paymentdomain.PaymentRecord{
		ID:        s.genID.Generate(),
		StudentID: studentID,
		Amount:    req.Amount,
		DueDate:   dueDate,
		MonthRef:  monthRef,
		PaidAt:    now,
		Method:    strings.TrimSpace(req.Method),
		Status:    paymentdomain.PaymentStatusReceived,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, s.db, record); err != nil {
		return nil, err
	}

	s.log.Info("payment received",
		zap.String("payment_id", record.ID.String()),
		zap.String("student_id", studentID.String()),
		zap.Float64("amount", record.Amount),
	)
	return record, nil
}

func (s *Service) Undo(ctx context.Context, id string) error {
	record, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, s.db, record.ID); err != nil {
		return err
	}

	// Hard delete: the record is gone for good once the trainer undoes it.
	s.log.Warn("payment undone",
		zap.String("payment_id", record.ID.String()),
		zap.String("student_id", record.StudentID.String()),
		zap.Float64("amount", record.Amount),
	)
	return nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*paymentdomain.PaymentRecord, error) {
	paymentID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, paymentdomain.ErrNotFound
	}

	record, err := s.repo.FindByID(ctx, s.db, paymentID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, paymentdomain.ErrNotFound
	}
	return record, nil
}

func (s *Service) List(ctx context.Context, req paymentdomain.ListPaymentRequest) (*paymentdomain.PaymentPage, error) {
	size := req.PageSize
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	// Snowflake IDs are creation-ordered, so paging on the ID keeps the
	// history stable when new payments land between requests.
	opts := []option.QueryOption{
		option.WithOrder("id DESC"),
		option.WithLimit(size + 1),
	}
	if token := strings.TrimSpace(req.PageToken); token != "" {
		cursor, err := pagination.DecodeCursor(token)
		if err != nil {
			return nil, paymentdomain.ErrInvalidPageToken
		}
		cursorID, err := snowflake.ParseString(cursor.ID)
		if err != nil {
			return nil, paymentdomain.ErrInvalidPageToken
		}
		opts = append(opts, option.WithCondition("id < ?", cursorID))
	}

	var (
		records []paymentdomain.PaymentRecord
		err     error
	)
	if strings.TrimSpace(req.StudentID) == "" {
		records, err = s.repo.ListAll(ctx, s.db, opts...)
	} else {
		studentID, perr := snowflake.ParseString(strings.TrimSpace(req.StudentID))
		if perr != nil {
			return nil, paymentdomain.ErrInvalidStudent
		}
		records, err = s.repo.ListByStudent(ctx, s.db, studentID, opts...)
	}
	if err != nil {
		return nil, err
	}

	page := &paymentdomain.PaymentPage{Records: records}
	if len(records) > size {
		page.Records = records[:size]
		last := page.Records[len(page.Records)-1]
		token, err := pagination.EncodeCursor(pagination.Cursor{ID: last.ID.String()})
		if err != nil {
			return nil, err
		}
		page.PageInfo = pagination.PageInfo{NextPageToken: token, HasMore: true}
	}
	return page, nil
}

// parseChargeReference validates that the request points at a specific charge
// either by exact due date or by month reference.
func parseChargeReference(rawDueDate, rawMonthRef string) (*time.Time, string, error) {
	rawDueDate = strings.TrimSpace(rawDueDate)
	rawMonthRef = strings.TrimSpace(rawMonthRef)

	if rawDueDate == "" && rawMonthRef == "" {
		return nil, "", paymentdomain.ErrMissingChargeRef
	}

	var dueDate *time.Time
	if rawDueDate != "" {
		parsed, err := time.Parse("2006-01-02", rawDueDate)
		if err != nil {
			return nil, "", paymentdomain.ErrInvalidDueDate
		}
		dueDate = &parsed
	}

	if rawMonthRef != "" {
		if _, err := time.Parse("2006-01", rawMonthRef); err != nil {
			return nil, "", paymentdomain.ErrInvalidMonthRef
		}
	}

	return dueDate, rawMonthRef, nil
}
