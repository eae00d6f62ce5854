package sat

import (
	"bytes"
	"context"
	"os"
	"os/exec"

	"github.com/pkg/errors"
)

// Exit-code of 10 stands for satisfiable and exit-code 20 stands for unsatisfiable
const (
	exitSatisfiable   = 10
	exitUnsatisfiable = 20
)

// externalSolver drives a SAT-competition style binary. Assumptions are appended as unit
// clauses since the DIMACS interface has no notion of them, so no core is ever reported.
type externalSolver struct {
	name string
	path string
	args []string
	// The minisat family writes its model to a result file instead of "v" lines on stdout
	resultFile bool
}

func newExternalSolver(name, path string, resultFile bool, args ...string) SATSolver {
	if path == "" {
		path = name
	}
	return &externalSolver{name: name, path: path, args: args, resultFile: resultFile}
}

func NewKissatSolver(path string) SATSolver {
	return newExternalSolver("kissat", path, false, "-q", "--relaxed")
}

func NewCadicalSolver(path string) SATSolver {
	return newExternalSolver("cadical", path, false, "-q")
}

func NewCryptominisatSolver(path string) SATSolver {
	return newExternalSolver("cryptominisat5", path, false, "--verb", "0")
}

func NewMinisatSolver(path string) SATSolver {
	return newExternalSolver("minisat", path, true, "-verb=0")
}

func NewGlucoseSimpSolver(path string) SATSolver {
	return newExternalSolver("glucose-simp", path, true, "-verb=0")
}

func (solver *externalSolver) Solve(ctx context.Context, sat SAT, assumptions []int64) (Outcome, error) {
	// Assumptions hold as unit clauses
	extended := SAT{Variables: sat.Variables, Clauses: append([][]int64{}, sat.Clauses...)}
	for _, assumption := range assumptions {
		extended.Clauses = append(extended.Clauses, []int64{assumption})
	}

	// Create a temporary file to hold the DIMACS content
	inputTempFile, err := os.CreateTemp("", "dimacs-*.cnf")
	if err != nil {
		return Outcome{}, errors.Wrap(err, "failed to create temporary file")
	}
	defer os.Remove(inputTempFile.Name())

	if err := extended.WriteDIMACS(inputTempFile); err != nil {
		inputTempFile.Close()
		return Outcome{}, errors.Wrap(err, "failed to write DIMACS to temporary file")
	}
	if err := inputTempFile.Close(); err != nil {
		return Outcome{}, errors.Wrap(err, "failed to close temporary file")
	}

	args := append(append([]string{}, solver.args...), inputTempFile.Name())
	var outputPath string
	if solver.resultFile {
		outputTempFile, err := os.CreateTemp("", solver.name+"_output-*.txt")
		if err != nil {
			return Outcome{}, errors.Wrap(err, "failed to create temporary file")
		}
		outputTempFile.Close()
		outputPath = outputTempFile.Name()
		defer os.Remove(outputPath)
		args = append(args, outputPath)
	}

	cmd := exec.CommandContext(ctx, solver.path, args...)
	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err = cmd.Run()
	exitCode := -1
	if cmd.ProcessState != nil {
		exitCode = cmd.ProcessState.ExitCode()
	}
	if exitCode == exitUnsatisfiable {
		return Outcome{}, nil
	} else if exitCode != exitSatisfiable {
		return Outcome{}, errors.Errorf("an error occurred during %v execution: %v : %v", solver.name, err, stderr.String())
	}

	var solution SATSolution
	if solver.resultFile {
		output, err := os.ReadFile(outputPath)
		if err != nil {
			return Outcome{}, errors.Wrap(err, "failed to read output file")
		}
		solution, err = parseResultFile(string(output))
		if err != nil {
			return Outcome{}, errors.Wrapf(err, "invalid %v output", solver.name)
		}
	} else {
		solution, err = parseSolution(stdOut.String())
		if err != nil {
			return Outcome{}, errors.Wrapf(err, "invalid %v output", solver.name)
		}
	}

	return Outcome{Satisfiable: true, Solution: solution}, nil
}
