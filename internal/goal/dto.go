package goal

import (
	"github.com/google/uuid"

	util "github.com/saulo-duarte/streaker/internal/utils"
)

type CreateGoalDTO struct {
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	Period      Period     `json:"period"`
	TargetCount int        `json:"targetCount"`
	TargetDays  *int       `json:"targetDays"`
	Category    *string    `json:"category"`
	StartDate   util.Date  `json:"startDate"`
	EndDate     *util.Date `json:"endDate"`
}

type UpdateGoalDTO struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Period      *Period    `json:"period"`
	TargetCount *int       `json:"targetCount"`
	TargetDays  *int       `json:"targetDays"`
	Category    *string    `json:"category"`
	Status      *Status    `json:"status"`
	EndDate     *util.Date `json:"endDate"`
}

type CreateFromTemplateDTO struct {
	TemplateID uuid.UUID `json:"templateId"`
	StartDate  util.Date `json:"startDate"`
}

type ProgressDTO struct {
	IncrementBy *int `json:"incrementBy"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
