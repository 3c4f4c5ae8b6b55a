package dto

import "github.com/noah-isme/studyplan-api/internal/models"

// AllocateMinutesRequest asks for a continuous split of today's study
// budget across the stored courses.
type AllocateMinutesRequest struct {
	TotalMinutes float64  `json:"totalMinutes" validate:"required,gt=0"`
	MinPerCourse float64  `json:"minPerCourse" validate:"omitempty,min=0"`
	MaxPerCourse *float64 `json:"maxPerCourse" validate:"omitempty,min=0"`
	RoundTo      int      `json:"roundTo" validate:"omitempty,min=0"`
	Today        string   `json:"today" validate:"omitempty,datetime=2006-01-02"`
}

// MinutePlanResponse returns the allocation ordered by score.
type MinutePlanResponse struct {
	TotalMinutes float64                `json:"totalMinutes"`
	RoundedTotal float64                `json:"roundedTotal"`
	Allocation   []models.CourseMinutes `json:"allocation"`
}

// AssignBlocksRequest asks for a block assignment over an evening window.
type AssignBlocksRequest struct {
	StartTime          string `json:"startTime" validate:"required,datetime=15:04"`
	EndTime            string `json:"endTime" validate:"required,datetime=15:04"`
	BlockMinutes       int    `json:"blockMinutes" validate:"omitempty,gt=0"`
	MinBlocksPerCourse int    `json:"minBlocksPerCourse" validate:"omitempty,min=0"`
	MaxBlocksPerCourse *int   `json:"maxBlocksPerCourse" validate:"omitempty,min=0"`
	Today              string `json:"today" validate:"omitempty,datetime=2006-01-02"`
}

// BlockPlanResponse returns the assigned blocks plus the plan handle used
// by exports and reminders.
type BlockPlanResponse struct {
	PlanID string                 `json:"planId"`
	Blocks []models.AssignedBlock `json:"blocks"`
}
