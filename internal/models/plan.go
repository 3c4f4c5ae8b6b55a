package models

import "time"

// TimeBlock is one fixed-duration study slot.
type TimeBlock struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// CourseMinutes is one row of a minute allocation. Minutes carries the
// rounded value surfaced to callers; RawMinutes keeps the exact solver
// value so the budget equality stays observable after rounding.
type CourseMinutes struct {
	Course     string  `json:"course"`
	Minutes    float64 `json:"minutes"`
	RawMinutes float64 `json:"rawMinutes"`
	Weight     float64 `json:"weight"`
	Score      float64 `json:"score"`
}

// AssignedBlock pairs a time block with the course that won it. Blocks
// that stayed unassigned are not represented.
type AssignedBlock struct {
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Course string    `json:"course"`
}

// BlockPlan is a stored block assignment addressable by ID for exports
// and reminders.
type BlockPlan struct {
	ID        string          `json:"id"`
	Blocks    []AssignedBlock `json:"blocks"`
	CreatedAt time.Time       `json:"createdAt"`
}
