// Package domain contains persistence models for students and their plan
// subscription. A student holds at most one plan at a time; when the plan
// changes, only actual payment records survive from the previous agreement.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Student struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Name      string       `gorm:"type:text;not null" json:"name"`
	Email     string       `gorm:"type:text;uniqueIndex" json:"email"`
	Phone     string       `gorm:"type:text" json:"phone"`
	BirthDate *time.Time   `gorm:"" json:"birth_date,omitempty"`
	Notes     string       `gorm:"type:text" json:"notes"`
	Active    bool         `gorm:"not null;default:true" json:"active"`

	// Plan subscription. PlanStartDate is stored as raw text because rows
	// migrated from the previous backend carry both plain dates and full
	// timestamps, some of them malformed.
	PlanID         *snowflake.ID `gorm:"index" json:"plan_id,omitempty"`
	PlanStartDate  string        `gorm:"type:text" json:"plan_start_date,omitempty"`
	DueDayOverride *int          `gorm:"" json:"due_day_override,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Student) TableName() string { return "students" }

// EffectiveDueDay resolves the due day used for charge projection.
func (s Student) EffectiveDueDay(planDueDay int) int {
	if s.DueDayOverride != nil {
		return *s.DueDayOverride
	}
	return planDueDay
}
