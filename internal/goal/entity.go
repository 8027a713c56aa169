package goal

import (
	"time"

	"github.com/google/uuid"
)

type Goal struct {
	ID              uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID     `gorm:"type:uuid;not null;index" json:"userId"`
	TemplateID      *uuid.UUID    `gorm:"type:uuid" json:"templateId,omitempty"`
	Template        *Template     `gorm:"foreignKey:TemplateID" json:"template,omitempty"`
	Name            string        `gorm:"size:100;not null" json:"name"`
	Description     *string       `gorm:"size:500" json:"description,omitempty"`
	Period          Period        `gorm:"type:varchar(16);not null" json:"period"`
	TargetCount     int           `gorm:"not null" json:"targetCount"`
	TargetDays      *int          `json:"targetDays,omitempty"`
	Category        *string       `json:"category,omitempty"`
	Status          Status        `gorm:"type:varchar(16);not null;index" json:"status"`
	StartDate       time.Time     `gorm:"not null" json:"startDate"`
	EndDate         *time.Time    `json:"endDate,omitempty"`
	CurrentProgress int           `gorm:"not null;default:0" json:"currentProgress"`
	ProgressLogs    []ProgressLog `gorm:"foreignKey:GoalID" json:"progressLogs,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

// ProgressLog accumulates progress for one period bucket of a goal.
type ProgressLog struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	GoalID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_goal_period" json:"goalId"`
	PeriodStart   time.Time `gorm:"not null;uniqueIndex:idx_goal_period" json:"periodStart"`
	PeriodEnd     time.Time `gorm:"not null" json:"periodEnd"`
	TargetCount   int       `gorm:"not null" json:"targetCount"`
	AchievedCount int       `gorm:"not null;default:0" json:"achievedCount"`
	IsCompleted   bool      `gorm:"not null;default:false" json:"isCompleted"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (ProgressLog) TableName() string { return "goal_progress" }

type Template struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Slug        string    `gorm:"size:100;not null;uniqueIndex" json:"slug"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description string    `gorm:"size:500" json:"description"`
	TargetDays  int       `gorm:"not null" json:"targetDays"`
	Period      Period    `gorm:"type:varchar(16);not null" json:"period"`
	TargetCount int       `gorm:"not null" json:"targetCount"`
	Category    string    `gorm:"index" json:"category"`
	Icon        string    `json:"icon"`
	IsActive    bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Template) TableName() string { return "goal_templates" }
