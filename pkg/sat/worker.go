package sat

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"runtime/debug"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// WorkerRequest is written once to the worker's standard input
type WorkerRequest struct {
	Solver     string `json:"solver"`
	DimacsPath string `json:"dimacs_path"`
	Variables  uint64 `json:"variables"`
	Clauses    int    `json:"clauses"`
	// ExecutablePaths overrides the binaries used by external engines
	ExecutablePaths map[string]string `json:"executable_paths,omitempty"`
}

// WorkerResponse is written once to the worker's standard output
type WorkerResponse struct {
	Status   string      `json:"status"` // "SAT", "UNSAT" or "ERROR"
	Solution SATSolution `json:"solution,omitempty"`
	Core     []int64     `json:"core"` // Failed selector literals; null when the engine provides none
	Error    string      `json:"error,omitempty"`
}

// ServeWorker is the body of the isolated solving unit: it reads one request, loads the
// instance from the DIMACS artifact, guards each clause with a selector, solves under the
// selectors as assumptions and writes one response. Every failure, panics included, is turned
// into an ERROR response so the spawning side always receives a value.
func ServeWorker(ctx context.Context, in io.Reader, out io.Writer, factory SolverFactory, logger logrus.FieldLogger) error {
	var request WorkerRequest
	if err := json.NewDecoder(in).Decode(&request); err != nil {
		return writeResponse(out, WorkerResponse{Status: StatusError.String(), Error: fmt.Sprintf("invalid worker request: %v", err)})
	}
	logger = logger.WithFields(logrus.Fields{"solver": request.Solver, "dimacs": request.DimacsPath})

	response := serve(ctx, request, factory, logger)
	return writeResponse(out, response)
}

func serve(ctx context.Context, request WorkerRequest, factory SolverFactory, logger logrus.FieldLogger) (response WorkerResponse) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("solver panicked: %v", r)
			response = WorkerResponse{Status: StatusError.String(), Error: fmt.Sprintf("panic: %v\n%s", r, debug.Stack())}
		}
	}()

	instance, err := ReadDIMACSFile(request.DimacsPath)
	if err != nil {
		return WorkerResponse{Status: StatusError.String(), Error: err.Error()}
	}
	if instance.Variables != request.Variables || len(instance.Clauses) != request.Clauses {
		err := errors.Errorf("artifact %v holds %d variables and %d clauses, expected %d and %d",
			request.DimacsPath, instance.Variables, len(instance.Clauses), request.Variables, request.Clauses)
		return WorkerResponse{Status: StatusError.String(), Error: err.Error()}
	}

	solver, err := factory(request.Solver, request.ExecutablePaths)
	if err != nil {
		return WorkerResponse{Status: StatusError.String(), Error: err.Error()}
	}

	guarded, assumptions := instance.WithSelectors()
	logger.Debugf("solving %d variables and %d clauses under %d selectors", instance.Variables, len(instance.Clauses), len(assumptions))

	outcome, err := solver.Solve(ctx, guarded, assumptions)
	if err != nil {
		return WorkerResponse{Status: StatusError.String(), Error: err.Error()}
	}
	if outcome.Satisfiable {
		return WorkerResponse{Status: StatusSat.String(), Solution: outcome.Solution}
	}
	return WorkerResponse{Status: StatusUnsat.String(), Core: outcome.Core}
}

func writeResponse(out io.Writer, response WorkerResponse) error {
	return errors.Wrap(json.NewEncoder(out).Encode(response), "cannot write worker response")
}
