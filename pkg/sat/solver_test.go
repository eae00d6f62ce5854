package sat

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGini(t *testing.T) {
	solver := NewGiniSolver()
	t.Run("Random instances", func(t *testing.T) {
		randomExecution(t, solver)
	})
	t.Run("Unsatisfiable core", func(t *testing.T) {
		unsatisfiableCoreExecution(t, solver)
	})
}

func TestGophersat(t *testing.T) {
	solver := NewGophersatSolver()
	t.Run("Random instances", func(t *testing.T) {
		randomExecution(t, solver)
	})

	t.Run("Unsatisfiable without core", func(t *testing.T) {
		guarded, assumptions := contradiction().WithSelectors()
		outcome, err := solver.Solve(context.Background(), guarded, assumptions)

		require.NoError(t, err)
		assert.False(t, outcome.Satisfiable)
		assert.Nil(t, outcome.Core)
	})

	t.Run("Empty instance", func(t *testing.T) {
		outcome, err := solver.Solve(context.Background(), SAT{Variables: 2}, nil)

		require.NoError(t, err)
		assert.True(t, outcome.Satisfiable)
		assert.Equal(t, SATSolution{-1, -2}, outcome.Solution)
	})
}

func TestKissat(t *testing.T) {
	externalExecution(t, "kissat")
}

func TestCadical(t *testing.T) {
	externalExecution(t, "cadical")
}

func TestMinisat(t *testing.T) {
	externalExecution(t, "minisat")
}

func TestNewSolverRejectsUnknownNames(t *testing.T) {
	_, err := NewSolver("glucose", nil)
	assert.ErrorIs(t, err, ErrUnknownSolver)
}

func externalExecution(t *testing.T, name string) {
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%v is not installed", name)
	}
	solver, err := NewSolver(name, nil)
	require.NoError(t, err)

	t.Run("Random instances", func(t *testing.T) {
		randomExecution(t, solver)
	})
}

// The selector-guarded instance must agree with the plain one: every model satisfies the
// original clauses and assumptions never turn a satisfiable instance unsatisfiable
func randomExecution(t *testing.T, solver SATSolver) {
	for range 10 {
		//** Arrange
		instance := GenerateSATInstance(30, 60)
		guarded, assumptions := instance.WithSelectors()

		//** Act
		plain, err := solver.Solve(context.Background(), instance, nil)
		require.NoError(t, err)
		selected, err := solver.Solve(context.Background(), guarded, assumptions)
		require.NoError(t, err)

		//** Assert
		assert.Equal(t, plain.Satisfiable, selected.Satisfiable)
		if plain.Satisfiable {
			assert.True(t, assertSATSolution(instance, plain.Solution), "wrong answer")
			assert.True(t, assertSATSolution(guarded, selected.Solution), "wrong answer under selectors")
			assert.Len(t, selected.Solution, int(guarded.Variables))
		}
	}
}

func unsatisfiableCoreExecution(t *testing.T, solver SATSolver) {
	//** Arrange
	instance := contradiction()
	guarded, assumptions := instance.WithSelectors()

	//** Act
	outcome, err := solver.Solve(context.Background(), guarded, assumptions)

	//** Assert
	require.NoError(t, err)
	require.False(t, outcome.Satisfiable)
	core := CoreClauses(outcome.Core, instance.Variables, len(instance.Clauses))
	require.NotEmpty(t, core)

	// The clauses named by the core must be unsatisfiable on their own
	subset := SAT{Variables: instance.Variables}
	for _, index := range core {
		subset.Clauses = append(subset.Clauses, instance.Clauses[index])
	}
	check, err := solver.Solve(context.Background(), subset, nil)
	require.NoError(t, err)
	assert.False(t, check.Satisfiable)
}

// x1 and not x1, padded with satisfiable clauses
func contradiction() SAT {
	return SAT{Variables: 3, Clauses: [][]int64{{2, 3}, {1}, {-2, 3}, {-1}, {-3, 2}}}
}
