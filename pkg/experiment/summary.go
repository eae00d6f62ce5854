package experiment

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/pkg/errors"
)

const SummaryFileName = "summary.csv"

var summaryHeader = []string{"Experiment", "Engine", "Shared", "Logical(V)", "Logical(E)", "Physical(V)", "Physical(E)", "Variables", "Clauses", "Encoding(ms)", "Solve(ms)", "Status", "Error"}

// WriteSummary writes one CSV row per report
func WriteSummary(path string, reports []Report) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "cannot create summary file")
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(summaryHeader); err != nil {
		return errors.Wrap(err, "cannot write summary header")
	}

	for _, report := range reports {
		record := []string{
			fmt.Sprintf("%d", report.ExperimentID),
			report.Solver.Name,
			fmt.Sprintf("%v", report.Config.AllowSharedPhysicalQubits),
			fmt.Sprintf("%d", report.LogicalGraph.NumVertices),
			fmt.Sprintf("%d", report.LogicalGraph.NumEdges),
			fmt.Sprintf("%d", report.PhysicalGraph.NumVertices),
			fmt.Sprintf("%d", report.PhysicalGraph.NumEdges),
			fmt.Sprintf("%d", report.SATEncoding.NumVariables),
			fmt.Sprintf("%d", report.SATEncoding.NumClauses),
			fmt.Sprintf("%.3f", report.Solver.TimeCNFGeneration*1000),
			fmt.Sprintf("%.3f", report.Solver.TimeSATSolve*1000),
			report.Solver.Status,
			report.Solver.Error,
		}
		if err := writer.Write(record); err != nil {
			return errors.Wrap(err, "cannot write summary record")
		}
	}

	writer.Flush()
	return errors.Wrap(writer.Error(), "cannot flush summary")
}
