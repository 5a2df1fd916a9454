package cmd

import (
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/vialsim/vialsim/sim"
)

var (
	// CLI flags for the sweep
	configPath string  // Path to the YAML sweep configuration
	logLevel   string  // Log verbosity level
	numVials   int     // Vials to consume per trial
	vialVolume float64 // Volume (mL) of each vial
	step       float64 // Dose-rate grid increment (mL/day)
	outcomes   int     // How many top outcomes to print
	workers    int     // Parallel trial runners
	jsonOut    string  // Optional JSON export path
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "vialsim",
	Short: "Multi-dose vial waste simulator",
}

// runCmd sweeps the configured dosage parameter space and reports the least
// wasteful schedules.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the vial consumption sweep",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if configPath == "" {
			logrus.Fatalf("No sweep configuration provided. Exiting simulation.")
		}
		file, err := GetSweepFile(configPath)
		if err != nil {
			logrus.Fatalf("Unusable sweep configuration: %v", err)
		}

		// Flag defaults seed the config; file values win over those, and
		// explicitly set flags win over the file.
		cfg := sim.SweepConfig{
			NumVials:   numVials,
			VialVolume: decimal.NewFromFloat(vialVolume),
			Step:       decimal.NewFromFloat(step),
			Outcomes:   outcomes,
			Workers:    workers,
		}
		if file.Vials != nil && !cmd.Flags().Changed("vials") {
			cfg.NumVials = *file.Vials
		}
		if file.VialVolume > 0 && !cmd.Flags().Changed("vial-volume") {
			cfg.VialVolume = decimal.NewFromFloat(file.VialVolume)
		}
		if file.Step > 0 && !cmd.Flags().Changed("step") {
			cfg.Step = decimal.NewFromFloat(file.Step)
		}
		if file.Outcomes > 0 && !cmd.Flags().Changed("outcomes") {
			cfg.Outcomes = file.Outcomes
		}

		logrus.Infof("Starting sweep: %d people, %d vials of %s mL, step %s",
			len(file.People), cfg.NumVials, cfg.VialVolume, cfg.Step)
		startTime := time.Now()

		summary, err := sim.NewSweep(cfg, file.Ranges()).Run()
		if err != nil {
			logrus.Fatalf("Sweep failed: %v", err)
		}

		summary.Print(file.Names(), cfg.Outcomes)
		if jsonOut != "" {
			if err := summary.WriteJSON(jsonOut, cfg.Outcomes); err != nil {
				logrus.Fatalf("Could not export summary: %v", err)
			}
			logrus.Infof("Summary written to %s", jsonOut)
		}

		logrus.Infof("Sweep complete in %v.", time.Since(startTime))
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVar(&configPath, "config", "", "Path to the YAML sweep configuration")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	// Sweep parameters (the config file wins unless these are set explicitly)
	runCmd.Flags().IntVar(&numVials, "vials", 20, "Number of vials to consume per trial")
	runCmd.Flags().Float64Var(&vialVolume, "vial-volume", 5.0, "Volume (mL) of each medication vial")
	runCmd.Flags().Float64Var(&step, "step", 0.001, "Dose-rate increment (mL/day) between trials")
	runCmd.Flags().IntVar(&outcomes, "outcomes", 5, "How many top outcomes to print")
	runCmd.Flags().IntVar(&workers, "workers", 1, "Parallel trial runners")
	runCmd.Flags().StringVar(&jsonOut, "json-out", "", "Write the sweep summary to this JSON file")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
