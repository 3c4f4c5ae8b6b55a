package models

// Course category labels understood by the weight model. Anything else
// falls back to a neutral coefficient.
const (
	CategoryRequired   = "required"
	CategoryElective   = "elective"
	CategoryGeneralEdu = "general-education"
	CategoryLab        = "lab"
)

// Course is one study subject in a snapshot handed to the planner.
// Name is the unique key within a snapshot.
type Course struct {
	Name       string  `json:"name"`
	Credits    float64 `json:"credits"`
	Difficulty float64 `json:"difficulty"`
	Category   string  `json:"category"`
	ExamDate   string  `json:"examDate,omitempty"`
}
