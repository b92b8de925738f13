// Package domain contains persistence models for billing plans.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Plan is a billing plan a trainer offers. Editing a plan never rewrites
// billing history: charge dates are recomputed from the student's own start
// date on every read and never persisted.
type Plan struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	Name        string       `gorm:"type:text;not null" json:"name"`
	Description string       `gorm:"type:text" json:"description"`
	Price       float64      `gorm:"not null" json:"price"`
	Frequency   string       `gorm:"type:text;not null" json:"frequency"`
	DueDay      int          `gorm:"not null;default:5" json:"due_day"`
	Active      bool         `gorm:"not null;default:true" json:"active"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Plan) TableName() string { return "plans" }
