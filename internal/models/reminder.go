package models

import "time"

// ReminderState tracks a reminder through its lifecycle.
type ReminderState string

const (
	ReminderPending ReminderState = "PENDING"
	ReminderFired   ReminderState = "FIRED"
)

// Reminder is one armed study-session notification.
type Reminder struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	Course   string        `json:"course"`
	DueAt    time.Time     `json:"dueAt"`
	Snooze   time.Duration `json:"-"`
	State    ReminderState `json:"state"`
	FiredAt  *time.Time    `json:"firedAt,omitempty"`
	ArmedAt  time.Time     `json:"armedAt"`
	PlanID   string        `json:"planId,omitempty"`
	Attempts int           `json:"-"`
}

// ReminderEvent is delivered to the notifier queue when a reminder
// comes due.
type ReminderEvent struct {
	ReminderID string
	Title      string
	Course     string
	DueAt      time.Time
}
