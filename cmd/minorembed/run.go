package main

import (
	"github.com/limaJavier/minorembed/pkg/experiment"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var configPath string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the batch of experiments described by a YAML config",
	Long: `Run every experiment of the config in order. Each experiment writes its DIMACS artifact and
a JSON report under <output_dir>/<id>/; a CSV summary is written to <output_dir>/summary.csv.
A failing or timed-out experiment is reported and the batch continues.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := experiment.LoadConfigFile(configPath)
		if err != nil {
			return err
		}

		runner := experiment.NewRunner(config, experiment.WorkerSolvers(config.Engines, logger), logger)
		logger.WithField("run", runner.RunID()).Infof("running %d experiments", len(config.Experiments))

		reports, err := runner.Run(cmd.Context())
		if err != nil {
			return errors.Wrap(err, "batch failed")
		}
		if len(reports) < len(config.Experiments) {
			return errors.Errorf("batch interrupted after %d of %d experiments", len(reports), len(config.Experiments))
		}
		return nil
	},
}

func init() {
	runCmd.Flags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to the batch config")
}
