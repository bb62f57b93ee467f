package testutil

import "github.com/inference-sim/warehouse-sim/sim"

// LightLoadConfig returns a sparse workload: a handful of dashboards refreshed
// every six hours and at most two interactive users at two queries per hour.
// The warehouse scales between 0 and 3 clusters.
func LightLoadConfig(size string, days int) sim.Config {
	cfg := sim.DefaultConfig()
	cfg.Simulation.Days = days
	cfg.Scheduled.Count = 5
	cfg.Scheduled.RefreshesPerDay = 4
	cfg.Scheduled.OverlapFactor = 0
	cfg.Interactive.MinConcurrentUsers = 0
	cfg.Interactive.MaxConcurrentUsers = 2
	cfg.Interactive.QueriesPerUserPerHour = 2
	cfg.Interactive.AIFunctionFraction = 0
	cfg.Warehouse.Size = size
	cfg.Warehouse.MinClusters = 0
	cfg.Warehouse.MaxClusters = 3
	return cfg
}

// AlwaysOnConfig pins the warehouse to a fixed number of clusters.
func AlwaysOnConfig(size string, days, clusters int) sim.Config {
	cfg := LightLoadConfig(size, days)
	cfg.Warehouse.MinClusters = clusters
	cfg.Warehouse.MaxClusters = clusters
	return cfg
}

// IdleConfig generates no queries at all.
func IdleConfig(size string, days int) sim.Config {
	cfg := LightLoadConfig(size, days)
	cfg.Scheduled.Count = 0
	cfg.Interactive.MaxConcurrentUsers = 0
	return cfg
}
