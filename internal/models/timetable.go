package models

// TimetableRow is one raw timetable slot as persisted in the courses CSV.
// A course occupying several weekly slots appears once per slot; the
// aggregation into per-course records happens in the course service.
type TimetableRow struct {
	Day        string  `csv:"day" json:"day"`
	Period     string  `csv:"period" json:"period"`
	CourseName string  `csv:"course_name" json:"courseName"`
	Credit     float64 `csv:"credit" json:"credit"`
	Type       string  `csv:"type" json:"type"`
	Sweet      float64 `csv:"sweet" json:"sweet"`
	Cool       float64 `csv:"cool" json:"cool"`
	ExamDate   string  `csv:"exam_date" json:"examDate,omitempty"`
}
