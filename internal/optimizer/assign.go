package optimizer

import (
	"sort"
	"time"

	"github.com/noah-isme/studyplan-api/internal/models"
	"github.com/noah-isme/studyplan-api/internal/solver"
	appErrors "github.com/noah-isme/studyplan-api/pkg/errors"
)

// AssignRequest parameterizes a block assignment.
type AssignRequest struct {
	MinBlocksPerCourse int
	MaxBlocksPerCourse *int
	Today              time.Time
}

// AssignBlocks gives each block to at most one course via the binary
// program
//
//	maximize Σ weight_c · x[c,b]
//	s.t.     Σ_c x[c,b] ≤ 1 for every block b
//	         MinBlocks ≤ Σ_b x[c,b] ≤ MaxBlocks for every course c
//
// Blocks may stay unassigned; unassigned blocks are absent from the
// result, which is ordered by block start time. Minimum demands that
// collectively exceed the available blocks make the program infeasible.
func AssignBlocks(courses []models.Course, blocks []models.TimeBlock, req AssignRequest, params WeightParams) ([]models.AssignedBlock, error) {
	if req.MinBlocksPerCourse < 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "minBlocksPerCourse must not be negative")
	}
	if req.MaxBlocksPerCourse != nil && *req.MaxBlocksPerCourse < 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "maxBlocksPerCourse must not be negative")
	}
	if len(courses) == 0 {
		return nil, appErrors.ErrEmptyInput
	}
	if err := validateSnapshot(courses); err != nil {
		return nil, err
	}
	if req.MinBlocksPerCourse*len(courses) > len(blocks) {
		return nil, appErrors.Clone(appErrors.ErrInfeasible, "minimum block demands exceed the available blocks")
	}
	if len(blocks) == 0 {
		return []models.AssignedBlock{}, nil
	}

	weights := params.weights(courses, req.Today)

	nc, nb := len(courses), len(blocks)
	idx := func(c, b int) int { return c*nb + b }

	p := solver.NewProblem(nc * nb)
	for c := 0; c < nc; c++ {
		for b := 0; b < nb; b++ {
			v := idx(c, b)
			p.SetObjective(v, weights[c])
			p.SetBounds(v, 0, 1)
			p.MarkInteger(v)
		}
	}

	// One course per block at most.
	for b := 0; b < nb; b++ {
		terms := make([]solver.Term, nc)
		for c := 0; c < nc; c++ {
			terms[c] = solver.Term{Var: idx(c, b), Coef: 1}
		}
		p.AddConstraint(terms, solver.LessEq, 1)
	}

	// Per-course block count bounds.
	for c := 0; c < nc; c++ {
		terms := make([]solver.Term, nb)
		for b := 0; b < nb; b++ {
			terms[b] = solver.Term{Var: idx(c, b), Coef: 1}
		}
		if req.MinBlocksPerCourse > 0 {
			p.AddConstraint(terms, solver.GreaterEq, float64(req.MinBlocksPerCourse))
		}
		if req.MaxBlocksPerCourse != nil {
			p.AddConstraint(terms, solver.LessEq, float64(*req.MaxBlocksPerCourse))
		}
	}

	sol, err := p.Solve()
	if err != nil {
		return nil, translateSolveError(err)
	}

	assigned := make([]models.AssignedBlock, 0, nb)
	for c := 0; c < nc; c++ {
		for b := 0; b < nb; b++ {
			if sol.Values[idx(c, b)] > 0.5 {
				assigned = append(assigned, models.AssignedBlock{
					Start:  blocks[b].Start,
					End:    blocks[b].End,
					Course: courses[c].Name,
				})
			}
		}
	}
	sort.Slice(assigned, func(i, j int) bool {
		if !assigned[i].Start.Equal(assigned[j].Start) {
			return assigned[i].Start.Before(assigned[j].Start)
		}
		return assigned[i].Course < assigned[j].Course
	})
	return assigned, nil
}
