package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/limaJavier/minorembed/pkg/embedding"
	"github.com/limaJavier/minorembed/pkg/graph"
	"github.com/limaJavier/minorembed/pkg/sat"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

type solveOptions struct {
	logicalFile  string
	physicalFile string
	logicalGen   string
	physicalGen  string
	solver       string
	executable   string
	timeout      time.Duration
	allowShared  bool
	dimacsPath   string
	outFile      string
}

var solveOpts solveOptions

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Embed a single logical graph into a physical graph",
	Long: `Embed a single logical graph into a physical graph. Graphs are read from edge-list files or
generated from a description such as "complete:4" or "grid:2x3".

Exits with 10 and prints the placement as JSON when an embedding exists, exits with 20 and lists
the clauses involved when none exists.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logical, err := loadGraph(solveOpts.logicalFile, solveOpts.logicalGen)
		if err != nil {
			return errors.Wrap(err, "logical graph")
		}
		physical, err := loadGraph(solveOpts.physicalFile, solveOpts.physicalGen)
		if err != nil {
			return errors.Wrap(err, "physical graph")
		}

		dimacsPath := solveOpts.dimacsPath
		if dimacsPath == "" {
			dir, err := os.MkdirTemp("", "minorembed-*")
			if err != nil {
				return errors.Wrap(err, "cannot create temporary directory")
			}
			defer os.RemoveAll(dir)
			dimacsPath = filepath.Join(dir, "instance.cnf")
		}

		executablePaths := map[string]string{}
		if solveOpts.executable != "" {
			executablePaths[solveOpts.solver] = solveOpts.executable
		}
		runner, err := sat.NewRunner(solveOpts.solver, executablePaths, logger)
		if err != nil {
			return err
		}

		attempt, err := embedding.NewEmbedder(runner, solveOpts.allowShared).Embed(cmd.Context(), logical, physical, dimacsPath, solveOpts.timeout)
		if err != nil {
			return err
		}

		fmt.Printf("Variables: %v\n", attempt.Instance.Variables())
		fmt.Printf("Clauses: %v\n", len(attempt.Instance.Clauses))

		switch attempt.Result.Status {
		case sat.StatusSat:
			if err := writeEmbedding(attempt.Embedding, solveOpts.outFile); err != nil {
				return err
			}
			return exitCodeError(exitSat)
		case sat.StatusUnsat:
			writeCore(os.Stdout, attempt)
			return exitCodeError(exitUnsat)
		default:
			return errors.New(attempt.Result.Error)
		}
	},
}

func init() {
	flags := solveCmd.Flags()
	flags.StringVar(&solveOpts.logicalFile, "logical", "", "Edge-list file of the logical graph")
	flags.StringVar(&solveOpts.physicalFile, "physical", "", "Edge-list file of the physical graph")
	flags.StringVar(&solveOpts.logicalGen, "logical-gen", "", `Generate the logical graph, e.g. "cycle:5"`)
	flags.StringVar(&solveOpts.physicalGen, "physical-gen", "", `Generate the physical graph, e.g. "grid:3x3"`)
	flags.StringVarP(&solveOpts.solver, "solver", "s", sat.DefaultSolver, fmt.Sprintf("SAT engine, one of %v", sat.Solvers))
	flags.StringVar(&solveOpts.executable, "executable", "", "Binary of an external engine; looked up in PATH when empty")
	flags.DurationVarP(&solveOpts.timeout, "timeout", "t", 0, "Solve deadline; zero means none")
	flags.BoolVar(&solveOpts.allowShared, "allow-shared", false, "Allow several logical nodes on one physical node")
	flags.StringVar(&solveOpts.dimacsPath, "dimacs", "", "Keep the DIMACS artifact at this path")
	flags.StringVarP(&solveOpts.outFile, "out", "o", "", "Write the placement to this file instead of the standard output")

	solveCmd.MarkFlagsMutuallyExclusive("logical", "logical-gen")
	solveCmd.MarkFlagsMutuallyExclusive("physical", "physical-gen")
	solveCmd.MarkFlagsOneRequired("logical", "logical-gen")
	solveCmd.MarkFlagsOneRequired("physical", "physical-gen")
}

func loadGraph(file, description string) (*graph.Graph, error) {
	if file != "" {
		return graph.ReadFile(file)
	}
	return graph.Generate(description)
}

func writeEmbedding(placement embedding.Embedding, outFile string) error {
	output := lo.MapKeys(placement, func(_ graph.Node, logical graph.Node) string { return logical.String() })
	content, err := json.Marshal(output)
	if err != nil {
		return errors.Wrap(err, "cannot build output json")
	}

	if outFile == "" {
		fmt.Println(string(content))
		return nil
	}
	return errors.Wrap(os.WriteFile(outFile, content, 0666), "cannot write output file")
}

func writeCore(w io.Writer, attempt embedding.Attempt) {
	if attempt.CoreFallback {
		fmt.Fprintf(w, "The engine gave no core: all %d clauses are reported\n", len(attempt.Core))
	} else {
		fmt.Fprintf(w, "Core: %d of %d clauses\n", len(attempt.Core), len(attempt.Instance.Clauses))
	}
	for _, clause := range attempt.Core {
		fmt.Fprintf(w, "c id %d %v %v\n", clause.ID(), clause.Clause, clause.Describe(attempt.Instance.Scheme))
	}
}
