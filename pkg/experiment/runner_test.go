package experiment

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/limaJavier/minorembed/pkg/embedding"
	"github.com/limaJavier/minorembed/pkg/graph"
	"github.com/limaJavier/minorembed/pkg/sat"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const workerEnv = "MINOREMBED_EXPERIMENT_TEST_WORKER"

func TestMain(m *testing.M) {
	if os.Getenv(workerEnv) == "1" {
		if err := sat.ServeWorker(context.Background(), os.Stdin, os.Stdout, sat.NewSolver, logrus.New()); err != nil {
			os.Exit(1)
		}
		os.Exit(0)
	}
	os.Exit(m.Run())
}

func testSolvers(t *testing.T) SolverProvider {
	executable, err := os.Executable()
	require.NoError(t, err)
	return func(engine string) (embedding.BoundedSolver, error) {
		return &sat.Runner{
			Solver:  engine,
			Command: []string{executable},
			Env:     []string{workerEnv + "=1"},
			Logger:  logrus.New(),
		}, nil
	}
}

func writeGraph(t *testing.T, dir, name string, g *graph.Graph) string {
	path := filepath.Join(dir, name)
	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()
	require.NoError(t, graph.Write(file, g))
	return path
}

func readReport(t *testing.T, path string) map[string]any {
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	var report map[string]any
	require.NoError(t, json.Unmarshal(content, &report))
	return report
}

func TestRunBatch(t *testing.T) {
	RegisterTestingT(t)

	//** Arrange
	dir := t.TempDir()
	edge := writeGraph(t, dir, "edge.txt", graph.Path(2))
	triangle := writeGraph(t, dir, "triangle.txt", graph.Complete(3))
	grid := writeGraph(t, dir, "grid.txt", graph.Grid2D(2, 3))
	config := Config{
		OutputDir:   filepath.Join(dir, "outputs"),
		MetricsFile: filepath.Join(dir, "metrics.prom"),
		Experiments: []Experiment{
			{ID: 1, LogicalGraph: edge, PhysicalGraph: grid, TimeoutSeconds: 30, Engine: "gini"},
			{ID: 2, LogicalGraph: filepath.Join(dir, "missing.txt"), PhysicalGraph: grid, Engine: "gini"},
			{ID: 3, LogicalGraph: triangle, PhysicalGraph: edge, TimeoutSeconds: 30, Engine: "gophersat"},
		},
	}
	runner := NewRunner(config, testSolvers(t), logrus.New())

	//** Act
	reports, err := runner.Run(context.Background())

	//** Assert
	require.NoError(t, err)
	Expect(reports).To(HaveLen(3))
	Expect(reports[0].Solver.Status).To(Equal("SAT"))
	Expect(reports[1].Solver.Status).To(Equal("ERROR"))
	Expect(reports[2].Solver.Status).To(Equal("UNSAT"))
	_, err = uuid.Parse(runner.RunID())
	Expect(err).NotTo(HaveOccurred())

	// Satisfiable experiment
	Expect(filepath.Join(config.OutputDir, "1", "exp_1.cnf")).To(BeARegularFile())
	satisfiable := readReport(t, filepath.Join(config.OutputDir, "1", "experiment_001.json"))
	Expect(satisfiable["experiment_id"]).To(BeEquivalentTo(1))
	Expect(satisfiable["run_id"]).To(Equal(runner.RunID()))
	Expect(satisfiable["solution"]).To(HaveLen(2))
	Expect(satisfiable["solution"]).To(HaveKey("0"))
	Expect(satisfiable["sat_encoding"]).To(HaveKeyWithValue("encoding_type", "pairwise"))
	Expect(satisfiable["sat_encoding"]).To(HaveKeyWithValue("num_variables", BeEquivalentTo(12)))

	// Failing experiment
	failed := readReport(t, filepath.Join(config.OutputDir, "2", "experiment_002.json"))
	Expect(failed["solver"]).To(HaveKeyWithValue("error", ContainSubstring("cannot load logical graph")))
	Expect(failed).NotTo(HaveKey("solution"))

	// Unsatisfiable experiment, gophersat gives no core
	unsat := readReport(t, filepath.Join(config.OutputDir, "3", "experiment_003.json"))
	Expect(unsat["solver"]).To(HaveKeyWithValue("core_fallback", true))
	Expect(unsat["solver"]).To(HaveKeyWithValue("unsat_clauses", HaveLen(reports[2].SATEncoding.NumClauses)))
	Expect(unsat["solver"]).To(HaveKeyWithValue("unsat_clauses", ContainElement("[1, 2, at_least_one]")))

	// Summary
	file, err := os.Open(filepath.Join(config.OutputDir, SummaryFileName))
	require.NoError(t, err)
	defer file.Close()
	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 4)
	assert.Equal(t, summaryHeader, records[0])
	assert.Equal(t, []string{"SAT", "ERROR", "UNSAT"}, []string{records[1][11], records[2][11], records[3][11]})

	// Metrics
	assert.Equal(t, 1.0, testutil.ToFloat64(runner.metrics.experiments.WithLabelValues("gini", "sat", "false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(runner.metrics.experiments.WithLabelValues("gini", "failed", "false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(runner.metrics.experiments.WithLabelValues("gophersat", "unsat", "false")))
	// Two logical nodes in the first experiment, three in the last
	assert.Equal(t, 5.0, testutil.ToFloat64(runner.metrics.clauses.WithLabelValues("at_least_one")))
	metrics, err := os.ReadFile(config.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), "minorembed_experiments_total")
}

type timeoutSolver struct{}

func (timeoutSolver) Solve(context.Context, string, sat.SAT, time.Duration) sat.Result {
	return sat.Result{Status: sat.StatusError, Error: sat.TimeoutMessage, TimedOut: true, Elapsed: time.Second}
}

func TestRunBatchContinuesAfterTimeout(t *testing.T) {
	//** Arrange
	dir := t.TempDir()
	edge := writeGraph(t, dir, "edge.txt", graph.Path(2))
	config := Config{
		OutputDir: filepath.Join(dir, "outputs"),
		Experiments: []Experiment{
			{ID: 1, LogicalGraph: edge, PhysicalGraph: edge, TimeoutSeconds: 1, Engine: "gini"},
			{ID: 2, LogicalGraph: edge, PhysicalGraph: edge, TimeoutSeconds: 1, Engine: "gini"},
		},
	}
	calls := 0
	solvers := func(string) (embedding.BoundedSolver, error) {
		calls++
		return timeoutSolver{}, nil
	}

	//** Act
	reports, err := NewRunner(config, solvers, logrus.New()).Run(context.Background())

	//** Assert
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	for _, report := range reports {
		assert.Equal(t, "ERROR", report.Solver.Status)
		assert.Equal(t, sat.TimeoutMessage, report.Solver.Error)
		assert.True(t, report.Solver.TimedOut)
		assert.Nil(t, report.Solution)
	}
}

func TestRunBatchStopsWhenCancelled(t *testing.T) {
	dir := t.TempDir()
	edge := writeGraph(t, dir, "edge.txt", graph.Path(2))
	config := Config{
		OutputDir:   filepath.Join(dir, "outputs"),
		Experiments: []Experiment{{ID: 1, LogicalGraph: edge, PhysicalGraph: edge, Engine: "gini"}},
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reports, err := NewRunner(config, testSolvers(t), logrus.New()).Run(ctx)

	require.NoError(t, err)
	assert.Empty(t, reports)
	summary, err := os.ReadFile(filepath.Join(config.OutputDir, SummaryFileName))
	require.NoError(t, err)
	assert.Equal(t, strings.Join(summaryHeader, ",")+"\n", string(summary))
}
