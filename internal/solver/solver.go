// Package solver exposes a small linear-programming capability behind a
// vendor-neutral Problem interface. Continuous relaxations are handed to
// gonum's simplex implementation; integrality is recovered by depth-first
// branch and bound on fractional variables.
package solver

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// Tagged solve outcomes. Callers translate these into their own error domain.
var (
	ErrInfeasible = errors.New("solver: constraints admit no feasible point")
	ErrUnbounded  = errors.New("solver: objective is unbounded")
)

// intTol is the integrality tolerance used when deciding whether a
// relaxation value counts as integral.
const intTol = 1e-6

// Relation is the comparison operator of a constraint row.
type Relation int

const (
	LessEq Relation = iota
	GreaterEq
	Equal
)

// Term is a single coefficient of a constraint row.
type Term struct {
	Var  int
	Coef float64
}

type constraint struct {
	terms []Term
	rel   Relation
	rhs   float64
}

// Problem is a maximization program over non-negative variables.
// Variables default to bounds [0, +Inf) and a zero objective coefficient.
type Problem struct {
	n       int
	obj     []float64
	lower   []float64
	upper   []float64
	integer []bool
	cons    []constraint
}

// NewProblem allocates a problem with n decision variables.
func NewProblem(n int) *Problem {
	p := &Problem{
		n:       n,
		obj:     make([]float64, n),
		lower:   make([]float64, n),
		upper:   make([]float64, n),
		integer: make([]bool, n),
	}
	for i := range p.upper {
		p.upper[i] = math.Inf(1)
	}
	return p
}

// SetObjective sets the maximization coefficient of variable i.
func (p *Problem) SetObjective(i int, coef float64) {
	p.obj[i] = coef
}

// SetBounds constrains variable i to [lo, hi]. Use math.Inf(1) for no
// upper bound.
func (p *Problem) SetBounds(i int, lo, hi float64) {
	p.lower[i] = lo
	p.upper[i] = hi
}

// MarkInteger requires variable i to take an integral value.
func (p *Problem) MarkInteger(i int) {
	p.integer[i] = true
}

// AddConstraint appends the row Σ terms rel rhs.
func (p *Problem) AddConstraint(terms []Term, rel Relation, rhs float64) {
	p.cons = append(p.cons, constraint{terms: terms, rel: rel, rhs: rhs})
}

// Solution holds the optimal assignment of a solved problem.
type Solution struct {
	Objective float64
	Values    []float64
}

// Solve maximizes the objective. It returns ErrInfeasible when the
// constraint set has no feasible point and ErrUnbounded when the objective
// can grow without limit.
func (p *Problem) Solve() (*Solution, error) {
	if p.n == 0 {
		return &Solution{}, nil
	}

	lower := append([]float64(nil), p.lower...)
	upper := append([]float64(nil), p.upper...)

	hasInteger := false
	for _, flag := range p.integer {
		if flag {
			hasInteger = true
			break
		}
	}
	if !hasInteger {
		return p.solveRelaxation(lower, upper)
	}

	var best *Solution
	var walk func(lower, upper []float64) error
	walk = func(lower, upper []float64) error {
		sol, err := p.solveRelaxation(lower, upper)
		if err != nil {
			if errors.Is(err, ErrInfeasible) {
				return nil // prune
			}
			return err
		}
		if best != nil && sol.Objective <= best.Objective+intTol {
			return nil // bound
		}

		branch := -1
		for i, isInt := range p.integer {
			if !isInt {
				continue
			}
			v := sol.Values[i]
			if v-math.Floor(v) > intTol && math.Ceil(v)-v > intTol {
				branch = i
				break
			}
		}
		if branch < 0 {
			for i, isInt := range p.integer {
				if isInt {
					sol.Values[i] = math.Round(sol.Values[i])
				}
			}
			best = sol
			return nil
		}

		v := sol.Values[branch]
		down := append([]float64(nil), upper...)
		down[branch] = math.Floor(v)
		if err := walk(lower, down); err != nil {
			return err
		}
		up := append([]float64(nil), lower...)
		up[branch] = math.Ceil(v)
		return walk(up, upper)
	}

	if err := walk(lower, upper); err != nil {
		return nil, err
	}
	if best == nil {
		return nil, ErrInfeasible
	}
	return best, nil
}

// solveRelaxation solves the continuous problem under the given variable
// bounds via simplex on the converted standard form.
func (p *Problem) solveRelaxation(lower, upper []float64) (*Solution, error) {
	var gRows [][]float64
	var h []float64
	var aRows [][]float64
	var b []float64

	dense := func(terms []Term, scale float64) []float64 {
		row := make([]float64, p.n)
		for _, t := range terms {
			row[t.Var] += scale * t.Coef
		}
		return row
	}

	for _, c := range p.cons {
		switch c.rel {
		case LessEq:
			gRows = append(gRows, dense(c.terms, 1))
			h = append(h, c.rhs)
		case GreaterEq:
			gRows = append(gRows, dense(c.terms, -1))
			h = append(h, -c.rhs)
		case Equal:
			aRows = append(aRows, dense(c.terms, 1))
			b = append(b, c.rhs)
		}
	}

	// Convert treats variables as free, so every finite bound becomes a row.
	for i := 0; i < p.n; i++ {
		if upper[i] < lower[i] {
			return nil, ErrInfeasible
		}
		if !math.IsInf(lower[i], -1) {
			row := make([]float64, p.n)
			row[i] = -1
			gRows = append(gRows, row)
			h = append(h, -lower[i])
		}
		if !math.IsInf(upper[i], 1) {
			row := make([]float64, p.n)
			row[i] = 1
			gRows = append(gRows, row)
			h = append(h, upper[i])
		}
	}

	negObj := make([]float64, p.n)
	for i, c := range p.obj {
		negObj[i] = -c
	}

	var g mat.Matrix
	if len(gRows) > 0 {
		g = mat.NewDense(len(gRows), p.n, flatten(gRows))
	}
	var a mat.Matrix
	if len(aRows) > 0 {
		a = mat.NewDense(len(aRows), p.n, flatten(aRows))
	}

	cStd, aStd, bStd := lp.Convert(negObj, g, h, a, b)
	optF, optX, err := lp.Simplex(cStd, aStd, bStd, 1e-10, nil)
	if err != nil {
		switch {
		case errors.Is(err, lp.ErrInfeasible):
			return nil, ErrInfeasible
		case errors.Is(err, lp.ErrUnbounded):
			return nil, ErrUnbounded
		default:
			return nil, fmt.Errorf("solver: simplex failed: %w", err)
		}
	}

	// Standard form splits each free variable into a positive pair.
	values := make([]float64, p.n)
	for i := 0; i < p.n; i++ {
		values[i] = optX[i] - optX[p.n+i]
	}
	return &Solution{Objective: -optF, Values: values}, nil
}

func flatten(rows [][]float64) []float64 {
	if len(rows) == 0 {
		return nil
	}
	flat := make([]float64, 0, len(rows)*len(rows[0]))
	for _, r := range rows {
		flat = append(flat, r...)
	}
	return flat
}
