package solver

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveContinuousSplitsBudget(t *testing.T) {
	// maximize 2x + y  s.t.  x + y = 10, x <= 6
	p := NewProblem(2)
	p.SetObjective(0, 2)
	p.SetObjective(1, 1)
	p.AddConstraint([]Term{{Var: 0, Coef: 1}, {Var: 1, Coef: 1}}, Equal, 10)
	p.AddConstraint([]Term{{Var: 0, Coef: 1}}, LessEq, 6)

	sol, err := p.Solve()
	require.NoError(t, err)
	assert.InDelta(t, 16, sol.Objective, 1e-8)
	assert.InDelta(t, 6, sol.Values[0], 1e-8)
	assert.InDelta(t, 4, sol.Values[1], 1e-8)
}

func TestSolveLowerBoundsViaSetBounds(t *testing.T) {
	// maximize x + 3y  s.t.  x + y = 8, x >= 2, y <= 5
	p := NewProblem(2)
	p.SetObjective(0, 1)
	p.SetObjective(1, 3)
	p.SetBounds(0, 2, math.Inf(1))
	p.SetBounds(1, 0, 5)
	p.AddConstraint([]Term{{Var: 0, Coef: 1}, {Var: 1, Coef: 1}}, Equal, 8)

	sol, err := p.Solve()
	require.NoError(t, err)
	assert.InDelta(t, 3, sol.Values[0], 1e-8)
	assert.InDelta(t, 5, sol.Values[1], 1e-8)
}

func TestSolveInfeasibleBounds(t *testing.T) {
	p := NewProblem(1)
	p.SetObjective(0, 1)
	p.AddConstraint([]Term{{Var: 0, Coef: 1}}, GreaterEq, 5)
	p.AddConstraint([]Term{{Var: 0, Coef: 1}}, LessEq, 3)

	_, err := p.Solve()
	assert.ErrorIs(t, err, ErrInfeasible)
}

func TestSolveUnbounded(t *testing.T) {
	p := NewProblem(1)
	p.SetObjective(0, 1)

	_, err := p.Solve()
	assert.ErrorIs(t, err, ErrUnbounded)
}

func TestSolveIntegerRoundsDown(t *testing.T) {
	// maximize x  s.t.  2x <= 5, x integer
	p := NewProblem(1)
	p.SetObjective(0, 1)
	p.MarkInteger(0)
	p.AddConstraint([]Term{{Var: 0, Coef: 2}}, LessEq, 5)

	sol, err := p.Solve()
	require.NoError(t, err)
	assert.InDelta(t, 2, sol.Values[0], 1e-8)
}

func TestSolveBinaryAssignment(t *testing.T) {
	// maximize 3a + 2b  s.t.  a + b <= 1, a,b binary
	p := NewProblem(2)
	p.SetObjective(0, 3)
	p.SetObjective(1, 2)
	for i := 0; i < 2; i++ {
		p.SetBounds(i, 0, 1)
		p.MarkInteger(i)
	}
	p.AddConstraint([]Term{{Var: 0, Coef: 1}, {Var: 1, Coef: 1}}, LessEq, 1)

	sol, err := p.Solve()
	require.NoError(t, err)
	assert.InDelta(t, 3, sol.Objective, 1e-8)
	assert.InDelta(t, 1, sol.Values[0], 1e-8)
	assert.InDelta(t, 0, sol.Values[1], 1e-8)
}

func TestSolveIntegerInfeasible(t *testing.T) {
	// 0.4 <= x <= 0.6 has no integral point.
	p := NewProblem(1)
	p.SetObjective(0, 1)
	p.MarkInteger(0)
	p.SetBounds(0, 0.4, 0.6)

	_, err := p.Solve()
	assert.ErrorIs(t, err, ErrInfeasible)
}

func TestSolveEmptyProblem(t *testing.T) {
	p := NewProblem(0)
	sol, err := p.Solve()
	require.NoError(t, err)
	assert.Zero(t, sol.Objective)
}
