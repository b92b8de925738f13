package domain

import (
	"context"

	"github.com/TwinexTecnologia/bodybrothers/pkg/db/option"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, record *PaymentRecord) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*PaymentRecord, error)
	ListByStudent(ctx context.Context, db *gorm.DB, studentID snowflake.ID, opts ...option.QueryOption) ([]PaymentRecord, error)
	ListAll(ctx context.Context, db *gorm.DB, opts ...option.QueryOption) ([]PaymentRecord, error)
}
