package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/warehouse-sim/sim"
)

// addConfigFlags registers --config and the per-field overrides on c.
func addConfigFlags(c *cobra.Command) {
	c.Flags().StringVar(&configPath, "config", "", "Path to a YAML config file (defaults when omitted)")
	c.Flags().Int64Var(&seed, "seed", 42, "Seed for workload generation")
	c.Flags().IntVar(&days, "days", 7, "Number of simulated days")
	c.Flags().StringVar(&size, "size", "Medium", "Warehouse size (tier name)")
	c.Flags().IntVar(&minClusters, "min-clusters", 1, "Minimum live clusters (0 enables scale-to-zero)")
	c.Flags().IntVar(&maxClusters, "max-clusters", 10, "Maximum live clusters")
	c.Flags().Float64Var(&unitRate, "rate", 0.70, "Price in $ per compute unit")
}

// loadConfig reads --config (or the defaults) and applies explicitly set
// overrides, then validates the result.
func loadConfig(c *cobra.Command) (sim.Config, error) {
	cfg := sim.DefaultConfig()
	if configPath != "" {
		loaded, err := sim.LoadConfig(configPath)
		if err != nil {
			return sim.Config{}, err
		}
		cfg = loaded
		logrus.Infof("Loaded config from %s", configPath)
	}
	applyOverrides(c, &cfg)
	if err := cfg.Validate(); err != nil {
		return sim.Config{}, fmt.Errorf("after CLI overrides: %w", err)
	}
	return cfg, nil
}

// applyOverrides copies a flag into cfg only when the user set it, so a
// config file value is never replaced by a flag default.
func applyOverrides(c *cobra.Command, cfg *sim.Config) {
	flags := c.Flags()
	if flags.Changed("seed") {
		logrus.Infof("--seed overrides config seed %d -> %d", cfg.Simulation.Seed, seed)
		cfg.Simulation.Seed = seed
	}
	if flags.Changed("days") {
		cfg.Simulation.Days = days
	}
	if flags.Changed("size") {
		cfg.Warehouse.Size = size
	}
	if flags.Changed("min-clusters") {
		cfg.Warehouse.MinClusters = minClusters
	}
	if flags.Changed("max-clusters") {
		cfg.Warehouse.MaxClusters = maxClusters
	}
	if flags.Changed("rate") {
		cfg.Pricing.UnitRate = unitRate
	}
}
