// Package optimizer is the planning engine: a course weight model plus two
// allocation formulations, one continuous (minutes of a daily budget) and
// one discrete (fixed-length blocks). Every operation is a pure function of
// its inputs and is safe to call from concurrent requests.
package optimizer

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/noah-isme/studyplan-api/internal/models"
	appErrors "github.com/noah-isme/studyplan-api/pkg/errors"
)

// Weight model defaults.
const (
	DefaultBeta        = 0.10
	DefaultGamma       = 0.80
	DefaultHorizonDays = 21
)

// DefaultCategoryCoefs maps course categories to their importance
// coefficient. Unknown categories resolve to 1.0.
func DefaultCategoryCoefs() map[string]float64 {
	return map[string]float64{
		models.CategoryRequired:   1.30,
		models.CategoryElective:   1.00,
		models.CategoryGeneralEdu: 0.85,
		models.CategoryLab:        1.10,
	}
}

// WeightParams tunes the course weight model.
type WeightParams struct {
	Beta          float64
	Gamma         float64
	HorizonDays   int
	CategoryCoefs map[string]float64
}

// DefaultWeightParams returns the stock model parameters.
func DefaultWeightParams() WeightParams {
	return WeightParams{
		Beta:          DefaultBeta,
		Gamma:         DefaultGamma,
		HorizonDays:   DefaultHorizonDays,
		CategoryCoefs: DefaultCategoryCoefs(),
	}
}

func (p WeightParams) withDefaults() WeightParams {
	if p.HorizonDays <= 0 {
		p.HorizonDays = DefaultHorizonDays
	}
	if p.CategoryCoefs == nil {
		p.CategoryCoefs = DefaultCategoryCoefs()
	}
	return p
}

// Weight computes the priority weight of a course for the given day:
//
//	credits × categoryCoef × (1 + beta·difficulty) + examBoost
//
// where examBoost = gamma × max(0, 1 − daysUntilExam/horizon) for exams
// that have not passed yet. Unparseable exam dates degrade to zero boost.
func (p WeightParams) Weight(course models.Course, today time.Time) float64 {
	p = p.withDefaults()

	coef, ok := p.CategoryCoefs[strings.TrimSpace(course.Category)]
	if !ok {
		coef = 1.0
	}
	base := course.Credits * coef * (1.0 + p.Beta*course.Difficulty)

	boost := 0.0
	if exam, ok := parseExamDate(course.ExamDate); ok {
		days := daysBetween(today, exam)
		if days >= 0 {
			boost = p.Gamma * math.Max(0, 1.0-float64(days)/float64(p.HorizonDays))
		}
	}
	return base + boost
}

// examDateLayouts are the human date formats accepted for exam dates,
// tried in order.
var examDateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006.01.02",
	"01/02/2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	"January 2, 2006",
	time.RFC3339,
}

// parseExamDate is fail-soft: anything unparseable reads as "no exam".
func parseExamDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range examDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// daysBetween counts whole calendar days from a to b, negative when b is
// in the past.
func daysBetween(a, b time.Time) int {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// validateSnapshot enforces the per-course invariants shared by both
// allocators: non-empty unique names and positive credits.
func validateSnapshot(courses []models.Course) error {
	seen := make(map[string]struct{}, len(courses))
	for _, c := range courses {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return appErrors.Clone(appErrors.ErrValidation, "course name must not be empty")
		}
		if _, dup := seen[name]; dup {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("duplicate course name %q", name))
		}
		seen[name] = struct{}{}
		if c.Credits <= 0 {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("course %q credits must be positive", name))
		}
	}
	return nil
}

// weights computes the weight of every course in snapshot order.
func (p WeightParams) weights(courses []models.Course, today time.Time) []float64 {
	out := make([]float64, len(courses))
	for i, c := range courses {
		out[i] = p.Weight(c, today)
	}
	return out
}
