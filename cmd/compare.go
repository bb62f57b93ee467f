package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/warehouse-sim/sim/cluster"
	"github.com/inference-sim/warehouse-sim/sim/report"
)

var compareSizes []string // Tiers to sweep

// compareCmd runs the same workload across several warehouse sizes
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare cost and wait times across warehouse sizes",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		results, err := cluster.CompareSizes(cfg, compareSizes)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		report.PrintComparison(cmd.OutOrStdout(), results)
	},
}

func init() {
	addConfigFlags(compareCmd)
	compareCmd.Flags().StringSliceVar(&compareSizes, "sizes", cluster.DefaultComparisonSizes, "Comma-separated warehouse sizes to compare")
}
