// Package domain contains persistence models for payment records.
package domain

import (
	"time"

	"github.com/TwinexTecnologia/bodybrothers/internal/billing"
	"github.com/bwmarrin/snowflake"
)

type PaymentStatus string

const (
	PaymentStatusReceived PaymentStatus = "RECEIVED"
)

// PaymentRecord is created when the trainer marks a charge as received.
// Records entered through the previous backend may carry only a month
// reference instead of an exact due date; both shapes must keep matching
// projected charges.
type PaymentRecord struct {
	ID        snowflake.ID  `gorm:"primaryKey" json:"id"`
	StudentID snowflake.ID  `gorm:"not null;index" json:"student_id"`
	Amount    float64       `gorm:"not null" json:"amount"`
	DueDate   *time.Time    `gorm:"" json:"due_date,omitempty"`
	MonthRef  string        `gorm:"type:text" json:"month_ref,omitempty"`
	PaidAt    time.Time     `gorm:"not null" json:"paid_at"`
	Method    string        `gorm:"type:text" json:"method,omitempty"`
	Status    PaymentStatus `gorm:"type:text;not null" json:"status"`
	CreatedAt time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (PaymentRecord) TableName() string { return "payment_records" }

// AsBillingPayment projects the record onto the matcher's view of a payment.
func (p PaymentRecord) AsBillingPayment() billing.Payment {
	return billing.Payment{
		DueDate:  p.DueDate,
		MonthRef: p.MonthRef,
	}
}

// AsBillingPayments converts a batch of records.
func AsBillingPayments(records []PaymentRecord) []billing.Payment {
	out := make([]billing.Payment, 0, len(records))
	for _, record := range records {
		out = append(out, record.AsBillingPayment())
	}
	return out
}
