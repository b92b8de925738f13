// Package domain contains persistence models for diet protocols.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// DietProtocol mirrors the workout protocol shape: the meal plan is a JSON
// blob, last write wins.
type DietProtocol struct {
	ID        snowflake.ID   `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"type:text;not null" json:"name"`
	Notes     string         `gorm:"type:text" json:"notes"`
	Meals     datatypes.JSON `gorm:"type:jsonb" json:"meals"`
	CreatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (DietProtocol) TableName() string { return "diet_protocols" }

// Meal is the JSON shape stored in DietProtocol.Meals.
type Meal struct {
	Time  string   `json:"time"`
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

// DietAssignment links a diet protocol to a student.
type DietAssignment struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	StudentID  snowflake.ID `gorm:"not null;index" json:"student_id"`
	ProtocolID snowflake.ID `gorm:"not null;index" json:"protocol_id"`
	StartDate  *time.Time   `gorm:"" json:"start_date,omitempty"`
	EndDate    *time.Time   `gorm:"" json:"end_date,omitempty"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (DietAssignment) TableName() string { return "diet_assignments" }
