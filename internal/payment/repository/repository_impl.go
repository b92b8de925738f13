package repository

import (
	"context"
	"errors"

	paymentdomain "github.com/TwinexTecnologia/bodybrothers/internal/payment/domain"
	"github.com/TwinexTecnologia/bodybrothers/pkg/db/option"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repository struct{}

func Provide() paymentdomain.Repository {
	return &repository{}
}

func (r *repository) Insert(ctx context.Context, db *gorm.DB, record *paymentdomain.PaymentRecord) error {
	return db.WithContext(ctx).Create(record).Error
}

func (r *repository) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&paymentdomain.PaymentRecord{}).Error
}

func (r *repository) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*paymentdomain.PaymentRecord, error) {
	var record paymentdomain.PaymentRecord
	err := db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *repository) ListByStudent(ctx context.Context, db *gorm.DB, studentID snowflake.ID, opts ...option.QueryOption) ([]paymentdomain.PaymentRecord, error) {
	var records []paymentdomain.PaymentRecord
	query := db.WithContext(ctx).Where("student_id = ?", studentID)
	for _, opt := range opts {
		query = opt.Apply(query)
	}
	err := query.Find(&records).Error
	return records, err
}

func (r *repository) ListAll(ctx context.Context, db *gorm.DB, opts ...option.QueryOption) ([]paymentdomain.PaymentRecord, error) {
	var records []paymentdomain.PaymentRecord
	query := db.WithContext(ctx)
	for _, opt := range opts {
		query = opt.Apply(query)
	}
	err := query.Find(&records).Error
	return records, err
}
