package sat

import (
	"context"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

const (
	satisfiable   = 1
	unsatisfiable = -1
)

// giniSolver runs gini in-process. Its failed-assumption set (Why) is the unsatisfiable core.
type giniSolver struct{}

func NewGiniSolver() SATSolver {
	return &giniSolver{}
}

func (solver *giniSolver) Solve(ctx context.Context, sat SAT, assumptions []int64) (Outcome, error) {
	g := gini.New()
	for _, clause := range sat.Clauses {
		for _, literal := range clause {
			g.Add(z.Dimacs2Lit(int(literal)))
		}
		g.Add(z.LitNull) // Terminates the clause
	}

	g.Assume(lo.Map(assumptions, func(literal int64, _ int) z.Lit { return z.Dimacs2Lit(int(literal)) })...)

	switch g.Solve() {
	case satisfiable:
		maxVar := uint64(g.MaxVar())
		solution := make(SATSolution, 0, sat.Variables)
		for variable := uint64(1); variable <= sat.Variables; variable++ {
			// Variables gini never saw are unconstrained and reported as false
			if variable <= maxVar && g.Value(z.Dimacs2Lit(int(variable))) {
				solution = append(solution, int64(variable))
			} else {
				solution = append(solution, -int64(variable))
			}
		}
		return Outcome{Satisfiable: true, Solution: solution}, nil
	case unsatisfiable:
		core := lo.Map(g.Why(nil), func(literal z.Lit, _ int) int64 { return int64(literal.Dimacs()) })
		return Outcome{Core: core}, nil
	default:
		return Outcome{}, errors.New("gini finished without deciding the instance")
	}
}
