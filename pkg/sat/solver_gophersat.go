package sat

import (
	"context"

	"github.com/crillab/gophersat/solver"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// gophersatSolver runs gophersat in-process. Assumptions become unit clauses, so an
// unsatisfiable outcome carries no core.
type gophersatSolver struct{}

func NewGophersatSolver() SATSolver {
	return &gophersatSolver{}
}

func (s *gophersatSolver) Solve(ctx context.Context, sat SAT, assumptions []int64) (Outcome, error) {
	clauses := make([][]int, 0, len(sat.Clauses)+len(assumptions))
	for _, clause := range sat.Clauses {
		clauses = append(clauses, lo.Map(clause, func(literal int64, _ int) int { return int(literal) }))
	}
	for _, assumption := range assumptions {
		clauses = append(clauses, []int{int(assumption)})
	}

	// Without any clause every assignment is a model
	if len(clauses) == 0 {
		return Outcome{Satisfiable: true, Solution: falseAssignment(sat.Variables)}, nil
	}

	engine := solver.New(solver.ParseSlice(clauses))
	switch engine.Solve() {
	case solver.Sat:
		model := engine.Model()
		solution := falseAssignment(sat.Variables)
		for i, value := range model {
			if value && uint64(i) < sat.Variables {
				solution[i] = int64(i + 1)
			}
		}
		return Outcome{Satisfiable: true, Solution: solution}, nil
	case solver.Unsat:
		return Outcome{}, nil
	default:
		return Outcome{}, errors.New("gophersat finished without deciding the instance")
	}
}

func falseAssignment(variables uint64) SATSolution {
	solution := make(SATSolution, variables)
	for i := range solution {
		solution[i] = -int64(i + 1)
	}
	return solution
}
