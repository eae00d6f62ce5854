package experiment

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/limaJavier/minorembed/pkg/embedding"
	"github.com/limaJavier/minorembed/pkg/graph"
	"github.com/limaJavier/minorembed/pkg/sat"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// SolverProvider returns the bounded solver running the given engine
type SolverProvider func(engine string) (embedding.BoundedSolver, error)

// WorkerSolvers provides solvers that run every engine in a separate worker process
func WorkerSolvers(executablePaths map[string]string, logger logrus.FieldLogger) SolverProvider {
	return func(engine string) (embedding.BoundedSolver, error) {
		runner, err := sat.NewRunner(engine, executablePaths, logger)
		if err != nil {
			return nil, err
		}
		return runner, nil
	}
}

// Runner processes the experiments of a batch one after the other. A failing experiment is
// reported and the batch moves on.
type Runner struct {
	config  Config
	solvers SolverProvider
	metrics *Metrics
	logger  logrus.FieldLogger
	runID   string
}

func NewRunner(config Config, solvers SolverProvider, logger logrus.FieldLogger) *Runner {
	runID := uuid.NewString()
	return &Runner{
		config:  config,
		solvers: solvers,
		metrics: NewMetrics(),
		logger:  logger.WithField("run", runID),
		runID:   runID,
	}
}

func (runner *Runner) RunID() string {
	return runner.runID
}

// Run executes every experiment and writes the per-experiment reports, the CSV summary and,
// if configured, the metrics file. Only failures to write batch-level outputs are returned.
func (runner *Runner) Run(ctx context.Context) ([]Report, error) {
	if err := os.MkdirAll(runner.config.OutputDir, 0755); err != nil {
		return nil, errors.Wrap(err, "cannot create output directory")
	}

	reports := make([]Report, 0, len(runner.config.Experiments))
	for _, experiment := range runner.config.Experiments {
		if ctx.Err() != nil {
			runner.logger.Warnf("batch interrupted: %v", ctx.Err())
			break
		}
		reports = append(reports, runner.runExperiment(ctx, experiment))
	}

	if err := WriteSummary(filepath.Join(runner.config.OutputDir, SummaryFileName), reports); err != nil {
		return reports, err
	}
	if runner.config.MetricsFile != "" {
		if err := runner.metrics.WriteFile(runner.config.MetricsFile); err != nil {
			return reports, err
		}
	}
	return reports, nil
}

func (runner *Runner) runExperiment(ctx context.Context, experiment Experiment) Report {
	logger := runner.logger.WithFields(logrus.Fields{"experiment": experiment.ID, "engine": experiment.Engine})
	dir := filepath.Join(runner.config.OutputDir, strconv.Itoa(experiment.ID))

	var logical, physical *graph.Graph
	var attempt embedding.Attempt
	failure := os.MkdirAll(dir, 0755)
	if failure == nil {
		logical, physical, attempt, failure = runner.embed(ctx, experiment, dir)
	}
	report := NewReport(runner.runID, experiment, logical, physical, attempt, failure)

	state := attempt.Result.State().String()
	if failure != nil {
		state = sat.StateFailed.String()
		logger.Errorf("experiment failed: %v", failure)
	} else {
		logger.WithField("elapsed", attempt.Result.Elapsed).Infof("experiment finished: %v", report.Solver.Status)
	}
	runner.metrics.Observe(experiment, attempt, state)

	path, err := WriteReport(dir, report)
	if err != nil {
		logger.Errorf("cannot save report: %v", err)
	} else {
		logger.Debugf("report saved to %v", path)
	}
	return report
}

func (runner *Runner) embed(ctx context.Context, experiment Experiment, dir string) (logical, physical *graph.Graph, attempt embedding.Attempt, err error) {
	if logical, err = graph.ReadFile(experiment.LogicalGraph); err != nil {
		return nil, nil, attempt, errors.Wrap(err, "cannot load logical graph")
	}
	if physical, err = graph.ReadFile(experiment.PhysicalGraph); err != nil {
		return logical, nil, attempt, errors.Wrap(err, "cannot load physical graph")
	}

	solver, err := runner.solvers(experiment.Engine)
	if err != nil {
		return logical, physical, attempt, errors.Wrap(err, "cannot prepare solver")
	}

	dimacsPath := filepath.Join(dir, fmt.Sprintf("exp_%d.cnf", experiment.ID))
	embedder := embedding.NewEmbedder(solver, experiment.AllowSharedPhysicalQubits)
	attempt, err = embedder.Embed(ctx, logical, physical, dimacsPath, experiment.Timeout())
	return logical, physical, attempt, err
}
