package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// validateCmd checks a config without simulating
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a config file and print the derived warehouse parameters",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		w := cfg.Warehouse
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Configuration OK")
		fmt.Fprintf(out, "  Simulation: %d days, step %gs, seed %d\n",
			cfg.Simulation.Days, cfg.Simulation.TimeStepSeconds, cfg.Simulation.Seed)
		fmt.Fprintf(out, "  Scheduled: %d items (%d refreshes/day)\n", cfg.Scheduled.Count, cfg.Scheduled.RefreshesPerDay)
		fmt.Fprintf(out, "  Concurrent Users: %d-%d peak\n", cfg.Interactive.MinConcurrentUsers, cfg.Interactive.MaxConcurrentUsers)
		fmt.Fprintf(out, "  Warehouse: %s (%g units/hour), clusters %d-%d\n", w.Size, w.UnitsPerHour(), w.MinClusters, w.MaxClusters)
		fmt.Fprintf(out, "  Performance multiplier: %.3f, effective concurrency: %d/cluster\n",
			w.PerformanceMultiplier(), w.EffectiveConcurrency())
		fmt.Fprintf(out, "  Unit Rate: $%g/unit\n", cfg.Pricing.UnitRate)
	},
}

func init() {
	addConfigFlags(validateCmd)
}
