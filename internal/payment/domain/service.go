package domain

import (
	"context"
	"errors"

	"github.com/TwinexTecnologia/bodybrothers/pkg/db/pagination"
)

// CreatePaymentRequest marks a charge as received. Either DueDate (exact
// charge day) or MonthRef (YYYY-MM) must be present.
type CreatePaymentRequest struct {
	StudentID string  `json:"student_id"`
	Amount    float64 `json:"amount"`
	DueDate   string  `json:"due_date,omitempty"`
	MonthRef  string  `json:"month_ref,omitempty"`
	Method    string  `json:"method,omitempty"`
}

type ListPaymentRequest struct {
	StudentID string
	PageToken string
	PageSize  int
}

// PaymentPage is one cursor-paged slice of the payment history, newest
// records first.
type PaymentPage struct {
	Records  []PaymentRecord     `json:"records"`
	PageInfo pagination.PageInfo `json:"page_info"`
}

type Service interface {
	Create(ctx context.Context, req CreatePaymentRequest) (*PaymentRecord, error)
	// Undo permanently deletes the record. There is no soft-cancel: undoing
	// a payment is destructive and irreversible.
	Undo(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*PaymentRecord, error)
	List(ctx context.Context, req ListPaymentRequest) (*PaymentPage, error)
}

var (
	ErrNotFound         = errors.New("payment_not_found")
	ErrInvalidStudent   = errors.New("invalid_student")
	ErrInvalidAmount    = errors.New("invalid_amount")
	ErrInvalidDueDate   = errors.New("invalid_due_date")
	ErrInvalidMonthRef  = errors.New("invalid_month_ref")
	ErrMissingChargeRef = errors.New("missing_charge_reference")
	ErrInvalidPageToken = errors.New("invalid_page_token")
)
