// Package domain contains persistence models for trainer authentication.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Trainer is an admin-panel account.
type Trainer struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	Name         string       `gorm:"type:text" json:"name"`
	Email        string       `gorm:"type:text;not null;uniqueIndex" json:"email"`
	PasswordHash string       `gorm:"type:text;not null" json:"-"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Trainer) TableName() string { return "trainers" }

// Session is a DB-backed login session referenced by an opaque token.
type Session struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	TrainerID snowflake.ID `gorm:"not null;index" json:"trainer_id"`
	Token     string       `gorm:"type:text;not null;uniqueIndex" json:"-"`
	ExpiresAt time.Time    `gorm:"not null" json:"expires_at"`
	RevokedAt *time.Time   `gorm:"" json:"revoked_at,omitempty"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Session) TableName() string { return "sessions" }
