package sat

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// parseSolution collects the literals of every "v" line of a SAT-competition style output
func parseSolution(solverOutput string) (SATSolution, error) {
	values := lo.Reduce(
		lo.Filter(strings.Split(solverOutput, "\n"), func(line string, _ int) bool {
			return len(line) > 0 && line[0] == 'v'
		}),
		func(values []string, line string, _ int) []string {
			return append(values, strings.Fields(line[1:])...)
		},
		[]string{},
	)
	return parseLiterals(values)
}

// parseResultFile reads the minisat result file: a status line followed by the model
func parseResultFile(solverOutput string) (SATSolution, error) {
	lines := strings.Split(strings.TrimSpace(solverOutput), "\n")
	if len(lines) < 2 || strings.TrimSpace(lines[0]) != "SAT" {
		return nil, errors.Errorf("expected a SAT result followed by a model: %q", solverOutput)
	}
	return parseLiterals(strings.Fields(lines[1]))
}

func parseLiterals(values []string) (SATSolution, error) {
	solution := make(SATSolution, 0, len(values))
	for _, valueStr := range values {
		value, err := strconv.ParseInt(valueStr, 10, 64)
		if err != nil {
			return nil, errors.Wrap(err, "invalid literal in solver output")
		}
		// The model is terminated by 0
		if value == 0 {
			break
		}
		solution = append(solution, value)
	}
	return solution, nil
}
