package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/limaJavier/minorembed/pkg/sat"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Exit codes follow the SAT competition convention
const (
	exitSat   = 10
	exitUnsat = 20
	exitError = 1
)

var (
	verbose bool
	logger  = logrus.New()
)

var rootCmd = &cobra.Command{
	Use:   "minorembed",
	Short: "Embed a logical graph into a physical qubit graph through SAT",
	Long: `minorembed encodes the embedding of a logical graph into a physical hardware graph as a
CNF formula, solves it with a bounded SAT engine and reports either the node placement or the
clauses responsible for unsatisfiability.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logger.SetLevel(logrus.DebugLevel)
		}
	},
}

// workerCmd turns the executable into the isolated solving unit used by sat.Runner
var workerCmd = &cobra.Command{
	Use:    sat.WorkerCommand,
	Short:  "Solve one DIMACS artifact described on stdin",
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return sat.ServeWorker(cmd.Context(), os.Stdin, os.Stdout, sat.NewSolver, logger)
	},
}

func init() {
	// stdout belongs to results and to the worker protocol
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.AddCommand(runCmd, solveCmd, workerCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if code, ok := err.(exitCodeError); ok {
			os.Exit(int(code))
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitError)
	}
}

// exitCodeError ends the process with a specific exit code and no further message
type exitCodeError int

func (code exitCodeError) Error() string {
	return fmt.Sprintf("exit status %d", int(code))
}
