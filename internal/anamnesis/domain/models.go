// Package domain contains persistence models for anamnesis questionnaires.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// AnamnesisModel is a questionnaire template the trainer builds once and
// sends to students. Questions are a JSON array; answers reference them by
// position.
type AnamnesisModel struct {
	ID        snowflake.ID   `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"type:text;not null" json:"name"`
	Questions datatypes.JSON `gorm:"type:jsonb" json:"questions"`
	CreatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (AnamnesisModel) TableName() string { return "anamnesis_models" }

// Question is the JSON shape stored in AnamnesisModel.Questions.
type Question struct {
	Text     string   `json:"text"`
	Type     string   `json:"type"` // text, boolean, choice
	Options  []string `json:"options,omitempty"`
	Required bool     `json:"required,omitempty"`
}

// AnamnesisResponse is a student's filled questionnaire. Re-submitting
// replaces the answers blob; last write wins.
type AnamnesisResponse struct {
	ID        snowflake.ID   `gorm:"primaryKey" json:"id"`
	ModelID   snowflake.ID   `gorm:"not null;index" json:"model_id"`
	StudentID snowflake.ID   `gorm:"not null;index" json:"student_id"`
	Answers   datatypes.JSON `gorm:"type:jsonb" json:"answers"`
	FilledAt  time.Time      `gorm:"not null" json:"filled_at"`
	CreatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (AnamnesisResponse) TableName() string { return "anamnesis_responses" }
