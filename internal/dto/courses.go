package dto

// TimetableRowPayload is one timetable slot submitted by the client.
type TimetableRowPayload struct {
	Day        string  `json:"day"`
	Period     string  `json:"period"`
	CourseName string  `json:"courseName" validate:"required"`
	Credit     float64 `json:"credit" validate:"omitempty,min=0"`
	Type       string  `json:"type"`
	Sweet      float64 `json:"sweet" validate:"omitempty,min=0,max=10"`
	Cool       float64 `json:"cool" validate:"omitempty,min=0,max=10"`
	ExamDate   string  `json:"examDate"`
}

// SaveTimetableRequest replaces the stored timetable.
type SaveTimetableRequest struct {
	Rows []TimetableRowPayload `json:"rows" validate:"required,dive"`
}
