package sat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// TimeoutMessage is the diagnostic carried by a result whose deadline expired
const TimeoutMessage = "Timeout expired"

// WorkerCommand is the CLI subcommand that turns the executable into a solving unit
const WorkerCommand = "worker"

type Status int

const (
	StatusSat Status = iota
	StatusUnsat
	StatusError
)

func (status Status) String() string {
	switch status {
	case StatusSat:
		return "SAT"
	case StatusUnsat:
		return "UNSAT"
	default:
		return "ERROR"
	}
}

func parseStatus(value string) (Status, error) {
	switch value {
	case "SAT":
		return StatusSat, nil
	case "UNSAT":
		return StatusUnsat, nil
	case "ERROR":
		return StatusError, nil
	}
	return StatusError, errors.Errorf("unknown status %q", value)
}

// State tracks a single solve invocation: pending -> running -> sat | unsat | timeout | failed
type State int

const (
	StatePending State = iota
	StateRunning
	StateSat
	StateUnsat
	StateTimeout
	StateFailed
)

func (state State) String() string {
	return [...]string{"pending", "running", "sat", "unsat", "timeout", "failed"}[state]
}

// Result of one bounded solve. Exactly one of Solution (SAT), Core (UNSAT) or Error (ERROR) is meaningful.
type Result struct {
	Status  Status
	Elapsed time.Duration
	// Solution is the engine's full assignment, selector variables included
	Solution SATSolution
	// Core holds 0-based clause indices; nil means no core was available and every clause is implicated
	Core     []int
	Error    string
	TimedOut bool
}

func (result Result) State() State {
	switch {
	case result.Status == StatusSat:
		return StateSat
	case result.Status == StatusUnsat:
		return StateUnsat
	case result.TimedOut:
		return StateTimeout
	default:
		return StateFailed
	}
}

// Runner solves instances in a separate, forcibly killable process so that a deadline can be
// enforced on engines that cannot be interrupted. One Runner solves one instance at a time.
type Runner struct {
	Solver          string
	ExecutablePaths map[string]string
	// Command launches the worker (argv); defaults to "<this executable> worker"
	Command []string
	// Env is appended to the current environment of the worker
	Env    []string
	Logger logrus.FieldLogger
}

func NewRunner(solver string, executablePaths map[string]string, logger logrus.FieldLogger) (*Runner, error) {
	executable, err := os.Executable()
	if err != nil {
		return nil, errors.Wrap(err, "cannot determine executable path")
	}
	return &Runner{
		Solver:          solver,
		ExecutablePaths: executablePaths,
		Command:         []string{executable, WorkerCommand},
		Logger:          logger,
	}, nil
}

// Solve runs the DIMACS artifact at dimacsPath, which must hold instance, through the worker.
// A non-positive timeout means no deadline. Every failure is reported as an ERROR result.
func (runner *Runner) Solve(ctx context.Context, dimacsPath string, instance SAT, timeout time.Duration) Result {
	logger := runner.logger().WithFields(logrus.Fields{"solver": runner.Solver, "dimacs": dimacsPath})
	state := StatePending
	transition := func(next State, elapsed time.Duration) {
		logger.WithField("elapsed", elapsed).Debugf("solve %v -> %v", state, next)
		state = next
	}

	request, err := json.Marshal(WorkerRequest{
		Solver:          runner.Solver,
		DimacsPath:      dimacsPath,
		Variables:       instance.Variables,
		Clauses:         len(instance.Clauses),
		ExecutablePaths: runner.ExecutablePaths,
	})
	if err != nil {
		transition(StateFailed, 0)
		return Result{Status: StatusError, Error: fmt.Sprintf("cannot encode worker request: %v", err)}
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, runner.Command[0], runner.Command[1:]...)
	cmd.Env = append(os.Environ(), runner.Env...)
	cmd.Stdin = bytes.NewReader(request)
	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	killProcessTree(cmd)
	cmd.WaitDelay = time.Second

	start := time.Now()
	transition(StateRunning, 0)
	err = cmd.Run() // Returns once the worker exited or was killed and reaped
	elapsed := time.Since(start)

	result := runner.interpret(ctx, err, stdOut.Bytes(), stderr.String(), instance)
	result.Elapsed = elapsed
	transition(result.State(), elapsed)

	if result.Status == StatusError {
		logger.WithField("elapsed", elapsed).Warnf("solve failed: %v", firstLine(result.Error))
	} else {
		logger.WithField("elapsed", elapsed).Infof("solve finished: %v", result.Status)
	}
	return result
}

func (runner *Runner) interpret(ctx context.Context, runErr error, stdOut []byte, stderr string, instance SAT) Result {
	// Anything a killed worker produced is discarded
	if runErr != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return Result{Status: StatusError, Error: TimeoutMessage, TimedOut: true}
	}
	if runErr != nil && ctx.Err() != nil {
		return Result{Status: StatusError, Error: fmt.Sprintf("solve cancelled: %v", ctx.Err())}
	}

	var response WorkerResponse
	if err := json.Unmarshal(stdOut, &response); err != nil {
		return Result{Status: StatusError, Error: fmt.Sprintf("worker exited without a valid response (%v): %v", runErr, strings.TrimSpace(stderr))}
	}
	status, err := parseStatus(response.Status)
	if err != nil {
		return Result{Status: StatusError, Error: err.Error()}
	}

	switch status {
	case StatusSat:
		return Result{Status: StatusSat, Solution: response.Solution}
	case StatusUnsat:
		return Result{Status: StatusUnsat, Core: CoreClauses(response.Core, instance.Variables, len(instance.Clauses))}
	default:
		return Result{Status: StatusError, Error: response.Error}
	}
}

func (runner *Runner) logger() logrus.FieldLogger {
	if runner.Logger == nil {
		return logrus.StandardLogger()
	}
	return runner.Logger
}

func firstLine(message string) string {
	line, _, _ := strings.Cut(message, "\n")
	return line
}
