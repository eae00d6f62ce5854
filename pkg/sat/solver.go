package sat

import (
	"context"
	"slices"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Outcome is what a SATSolver reports for a single instance
type Outcome struct {
	Satisfiable bool
	Solution    SATSolution // Set only when satisfiable
	Core        []int64     // Failed assumptions when unsatisfiable; nil if the engine cannot extract a core
}

type SATSolver interface {
	// Solve decides the instance under the given assumed-true literals. An unsatisfiable
	// instance is a valid outcome, not an error.
	Solve(ctx context.Context, sat SAT, assumptions []int64) (Outcome, error)
}

// SolverFactory builds the engine registered under name; executablePaths overrides the binary
// looked up for external engines. NewSolver is the factory for the built-in engines.
type SolverFactory func(name string, executablePaths map[string]string) (SATSolver, error)

var ErrUnknownSolver = errors.New("unknown SAT solver")

const DefaultSolver = "gini"

// Solvers lists every engine name NewSolver accepts
var Solvers = []string{"gini", "gophersat", "kissat", "cadical", "cryptominisat", "minisat", "glucosesimp"}

func NewSolver(name string, executablePaths map[string]string) (SATSolver, error) {
	if !slices.Contains(Solvers, name) {
		return nil, errors.Wrapf(ErrUnknownSolver, "%q (allowed: %v)", name, Solvers)
	}

	path := lo.ValueOr(executablePaths, name, "")
	switch name {
	case "gini":
		return NewGiniSolver(), nil
	case "gophersat":
		return NewGophersatSolver(), nil
	case "kissat":
		return NewKissatSolver(path), nil
	case "cadical":
		return NewCadicalSolver(path), nil
	case "cryptominisat":
		return NewCryptominisatSolver(path), nil
	case "minisat":
		return NewMinisatSolver(path), nil
	default:
		return NewGlucoseSimpSolver(path), nil
	}
}

