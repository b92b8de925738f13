// Package domain contains persistence models for workout protocols.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// WorkoutProtocol is a reusable training protocol. Exercises live in a JSON
// column; last write wins, there is no per-exercise versioning.
type WorkoutProtocol struct {
	ID        snowflake.ID   `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"type:text;not null" json:"name"`
	Division  string         `gorm:"type:text" json:"division"`
	Notes     string         `gorm:"type:text" json:"notes"`
	Exercises datatypes.JSON `gorm:"type:jsonb" json:"exercises"`
	CreatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (WorkoutProtocol) TableName() string { return "workout_protocols" }

// Exercise is the JSON shape stored in WorkoutProtocol.Exercises.
type Exercise struct {
	Name      string `json:"name"`
	Sets      int    `json:"sets"`
	Reps      string `json:"reps"`
	Load      string `json:"load,omitempty"`
	RestSec   int    `json:"rest_sec,omitempty"`
	Technique string `json:"technique,omitempty"`
}

// WorkoutAssignment links a protocol to a student for a period.
type WorkoutAssignment struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	StudentID  snowflake.ID `gorm:"not null;index" json:"student_id"`
	ProtocolID snowflake.ID `gorm:"not null;index" json:"protocol_id"`
	StartDate  *time.Time   `gorm:"" json:"start_date,omitempty"`
	EndDate    *time.Time   `gorm:"" json:"end_date,omitempty"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (WorkoutAssignment) TableName() string { return "workout_assignments" }
