package experiment

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/limaJavier/minorembed/pkg/embedding"
	"github.com/limaJavier/minorembed/pkg/graph"
	"github.com/limaJavier/minorembed/pkg/sat"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// EncodingType names the at-most-one encoding used by the clause encoder
const EncodingType = "pairwise"

type GraphSize struct {
	NumVertices int `json:"num_vertices"`
	NumEdges    int `json:"num_edges"`
}

type EncodingReport struct {
	NumVariables uint64         `json:"num_variables"`
	NumClauses   int            `json:"num_clauses"`
	EncodingType string         `json:"encoding_type"`
	ClauseCounts map[string]int `json:"clause_counts,omitempty"`
}

type SolverReport struct {
	Name              string  `json:"name"`
	Status            string  `json:"status"`
	TimeCNFGeneration float64 `json:"time_cnf_generation"`
	TimeSATSolve      float64 `json:"time_sat_solve"`
	TimeTotal         float64 `json:"time_total"`
	Error             string  `json:"error,omitempty"`
	TimedOut          bool    `json:"timed_out,omitempty"`
	// UnsatClauses renders each implicated clause as "[lit, ..., kind]"
	UnsatClauses []string `json:"unsat_clauses,omitempty"`
	// CoreFallback is set when the engine gave no core and UnsatClauses lists every clause
	CoreFallback bool `json:"core_fallback,omitempty"`
}

// Report is the JSON document written for every experiment
type Report struct {
	ExperimentID  int                   `json:"experiment_id"`
	RunID         string                `json:"run_id"`
	Timestamp     time.Time             `json:"timestamp"`
	Config        Experiment            `json:"config"`
	LogicalGraph  GraphSize             `json:"logical_graph"`
	PhysicalGraph GraphSize             `json:"physical_graph"`
	SATEncoding   EncodingReport        `json:"sat_encoding"`
	Solver        SolverReport          `json:"solver"`
	Solution      map[string]graph.Node `json:"solution,omitempty"`
}

func graphSize(g *graph.Graph) GraphSize {
	if g == nil {
		return GraphSize{}
	}
	return GraphSize{NumVertices: g.NumNodes(), NumEdges: g.NumEdges()}
}

// NewReport summarizes an attempt. logical, physical and attempt.Instance may be nil when the
// experiment failed early, in which case failure carries the reason.
func NewReport(runID string, experiment Experiment, logical, physical *graph.Graph, attempt embedding.Attempt, failure error) Report {
	report := Report{
		ExperimentID:  experiment.ID,
		RunID:         runID,
		Timestamp:     time.Now(),
		Config:        experiment,
		LogicalGraph:  graphSize(logical),
		PhysicalGraph: graphSize(physical),
		SATEncoding:   EncodingReport{EncodingType: EncodingType},
		Solver: SolverReport{
			Name:              experiment.Engine,
			Status:            attempt.Result.Status.String(),
			TimeCNFGeneration: attempt.EncodingTime.Seconds(),
			TimeSATSolve:      attempt.Result.Elapsed.Seconds(),
			TimeTotal:         (attempt.EncodingTime + attempt.Result.Elapsed).Seconds(),
			Error:             attempt.Result.Error,
			TimedOut:          attempt.Result.TimedOut,
		},
	}

	if failure != nil {
		report.Solver.Status = sat.StatusError.String()
		report.Solver.Error = failure.Error()
	}

	if attempt.Instance != nil {
		report.SATEncoding.NumVariables = attempt.Instance.Variables()
		report.SATEncoding.NumClauses = len(attempt.Instance.Clauses)
		report.SATEncoding.ClauseCounts = lo.MapKeys(attempt.Instance.KindCounts(), func(_ int, kind embedding.Kind) string { return kind.String() })
	}

	if attempt.Embedding != nil {
		report.Solution = lo.MapKeys(attempt.Embedding, func(_ graph.Node, logical graph.Node) string { return logical.String() })
	}

	if attempt.Core != nil {
		report.Solver.UnsatClauses = lo.Map(attempt.Core, func(clause embedding.CoreClause, _ int) string { return clause.Clause.String() })
		report.Solver.CoreFallback = attempt.CoreFallback
	}

	return report
}

// ReportFileName is the report's name inside the experiment directory
func ReportFileName(id int) string {
	return fmt.Sprintf("experiment_%03d.json", id)
}

// WriteReport writes report into dir and returns the file's path
func WriteReport(dir string, report Report) (string, error) {
	content, err := json.MarshalIndent(report, "", "    ")
	if err != nil {
		return "", errors.Wrap(err, "cannot encode report")
	}

	path := filepath.Join(dir, ReportFileName(report.ExperimentID))
	if err := os.WriteFile(path, content, 0666); err != nil {
		return "", errors.Wrap(err, "cannot write report")
	}
	return path, nil
}
