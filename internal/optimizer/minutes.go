package optimizer

import (
	"errors"
	"math"
	"sort"
	"time"

	"github.com/noah-isme/studyplan-api/internal/models"
	"github.com/noah-isme/studyplan-api/internal/solver"
	appErrors "github.com/noah-isme/studyplan-api/pkg/errors"
)

// MinuteRequest parameterizes a continuous minute allocation.
type MinuteRequest struct {
	TotalMinutes float64
	MinPerCourse float64
	MaxPerCourse *float64
	RoundTo      int
	Today        time.Time
}

// AllocateMinutes distributes TotalMinutes across the courses by solving
//
//	maximize Σ weight_c · m_c
//	s.t.     Σ m_c = TotalMinutes,  MinPerCourse ≤ m_c ≤ MaxPerCourse
//
// with continuous non-negative variables. When the bounds make the budget
// equality unsatisfiable the call fails with an infeasibility error rather
// than returning a clamped plan.
//
// Rounding to the nearest multiple of RoundTo (when > 1) is a lossy
// post-process: the rounded totals may drift from the budget, which is why
// each row also keeps the exact solver value. Rows are ordered by score
// descending, ties broken by course name.
func AllocateMinutes(courses []models.Course, req MinuteRequest, params WeightParams) ([]models.CourseMinutes, error) {
	if req.TotalMinutes <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "totalMinutes must be positive")
	}
	if req.MinPerCourse < 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "minPerCourse must not be negative")
	}
	if req.MaxPerCourse != nil && *req.MaxPerCourse < 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "maxPerCourse must not be negative")
	}
	if len(courses) == 0 {
		return nil, appErrors.ErrEmptyInput
	}
	if err := validateSnapshot(courses); err != nil {
		return nil, err
	}

	weights := params.weights(courses, req.Today)

	p := solver.NewProblem(len(courses))
	budget := make([]solver.Term, len(courses))
	for i, w := range weights {
		p.SetObjective(i, w)
		upper := math.Inf(1)
		if req.MaxPerCourse != nil {
			upper = *req.MaxPerCourse
		}
		p.SetBounds(i, req.MinPerCourse, upper)
		budget[i] = solver.Term{Var: i, Coef: 1}
	}
	p.AddConstraint(budget, solver.Equal, req.TotalMinutes)

	sol, err := p.Solve()
	if err != nil {
		return nil, translateSolveError(err)
	}

	out := make([]models.CourseMinutes, len(courses))
	for i, c := range courses {
		raw := math.Max(0, sol.Values[i])
		minutes := raw
		if req.RoundTo > 1 {
			minutes = math.Round(raw/float64(req.RoundTo)) * float64(req.RoundTo)
		}
		out[i] = models.CourseMinutes{
			Course:     c.Name,
			Minutes:    minutes,
			RawMinutes: raw,
			Weight:     weights[i],
			Score:      minutes * weights[i],
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Course < out[j].Course
	})
	return out, nil
}

func translateSolveError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, solver.ErrInfeasible):
		return appErrors.ErrInfeasible
	default:
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "solve failed")
	}
}
