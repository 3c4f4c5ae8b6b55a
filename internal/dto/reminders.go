package dto

// StartRemindersRequest arms reminders for every block of a stored plan.
type StartRemindersRequest struct {
	PlanID string `json:"planId" validate:"required"`
}

// StartRemindersResponse reports how many reminders were armed.
type StartRemindersResponse struct {
	Armed int `json:"armed"`
}
