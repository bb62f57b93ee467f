package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/warehouse-sim/sim"
	"github.com/inference-sim/warehouse-sim/sim/cluster"
	"github.com/inference-sim/warehouse-sim/sim/report"
	"github.com/inference-sim/warehouse-sim/sim/trace"
)

var (
	logLevel    string // Log verbosity level
	configPath  string // YAML config file; defaults apply when empty
	traceLevel  string // Decision trace level: none or decisions
	metricsFile string // Prometheus textfile output path
	outputDir   string // Directory for JSON/CSV/YAML reports

	// Config overrides, applied only when set on the command line
	seed        int64   // Seed for workload generation
	days        int     // Simulated days
	size        string  // Warehouse tier
	minClusters int     // Minimum live clusters
	maxClusters int     // Maximum live clusters
	unitRate    float64 // $ per compute unit
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "warehouse-sim",
	Short: "Discrete-event cost simulator for elastic SQL warehouses",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// runCmd executes a single simulation and prints its summary
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one warehouse simulation",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Invalid --trace %q; valid: none, decisions", traceLevel)
		}
		if err := runSimulation(os.Stdout, cfg, trace.TraceLevel(traceLevel), outputDir, metricsFile); err != nil {
			logrus.Fatalf("%v", err)
		}
		logrus.Info("Simulation complete.")
	},
}

// runSimulation runs cfg once, prints the summary to w and writes any
// requested report files.
func runSimulation(w io.Writer, cfg sim.Config, level trace.TraceLevel, dir, promPath string) error {
	s, err := cluster.NewSimulator(cfg, cluster.Options{Trace: trace.TraceConfig{Level: level}})
	if err != nil {
		return err
	}
	startTime := time.Now()
	m := s.Run()
	logrus.Infof("Simulated %d days in %s", cfg.Simulation.Days, time.Since(startTime).Round(time.Millisecond))

	report.PrintSummary(w, cfg, m)
	if s.Trace() != nil {
		report.PrintTraceSummary(w, trace.Summarize(s.Trace()))
	}
	if dir != "" {
		if err := report.WriteAll(dir, cfg, m); err != nil {
			return fmt.Errorf("saving reports: %w", err)
		}
	}
	if promPath != "" {
		if err := report.WritePrometheusTextfile(promPath, m); err != nil {
			return err
		}
		logrus.Infof("Wrote metrics to %s", promPath)
	}
	return nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")

	addConfigFlags(runCmd)
	runCmd.Flags().StringVar(&traceLevel, "trace", string(trace.TraceLevelNone), "Decision trace level (none, decisions)")
	runCmd.Flags().StringVar(&outputDir, "output-dir", "", "Directory for the JSON summary, state history CSV and effective config")
	runCmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write headline gauges in Prometheus text format to this file")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(validateCmd)
}
