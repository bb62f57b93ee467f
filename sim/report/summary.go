// Package report renders a finished run for people and other tools: a JSON
// headline summary, the state history as CSV, a console summary, a tier
// comparison table and a Prometheus textfile.
//
// Nothing here feeds back into the simulation.
package report

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/inference-sim/warehouse-sim/sim/cluster"
)

// File names written by WriteAll.
const (
	SummaryFileName    = "metrics_summary.json"
	HistoryFileName    = "warehouse_state_history.csv"
	ConfigFileName     = "config_used.yaml"
	PrometheusFileName = "warehouse.prom"
)

// Summary holds the headline numbers of a run.
type Summary struct {
	SimulationDays int    `json:"simulation_days"`
	WarehouseSize  string `json:"warehouse_size"`

	TotalUnits   float64 `json:"total_units"`
	ComputeUnits float64 `json:"compute_units"`
	AIUnits      float64 `json:"ai_units"`
	TotalCost    float64 `json:"total_cost"`
	DailyCost    float64 `json:"daily_cost"`
	MonthlyCost  float64 `json:"monthly_cost"`
	AnnualCost   float64 `json:"annual_cost"`

	TotalQueries       int `json:"total_queries"`
	ScheduledQueries   int `json:"scheduled_queries"`
	InteractiveQueries int `json:"interactive_queries"`
	AIQueries          int `json:"ai_queries"`

	InteractiveAvgWait float64 `json:"interactive_avg_wait_time"`
	InteractiveP50Wait float64 `json:"interactive_p50_wait_time"`
	InteractiveP95Wait float64 `json:"interactive_p95_wait_time"`
	InteractiveP99Wait float64 `json:"interactive_p99_wait_time"`
	ScheduledAvgWait   float64 `json:"scheduled_avg_wait_time"`
	ScheduledP95Wait   float64 `json:"scheduled_p95_wait_time"`

	AvgClusters    float64 `json:"avg_clusters"`
	MaxClusters    int     `json:"max_clusters"`
	AvgUtilization float64 `json:"avg_utilization"`
	MaxQueueDepth  int     `json:"max_queue_depth"`

	Truncated bool     `json:"truncated"`
	Warnings  []string `json:"warnings"`
}

// NewSummary extracts the headline numbers from m.
func NewSummary(m *cluster.Metrics) Summary {
	warnings := m.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	return Summary{
		SimulationDays:     m.Days,
		WarehouseSize:      m.Size,
		TotalUnits:         m.TotalUnits,
		ComputeUnits:       m.ComputeUnits,
		AIUnits:            m.AIUnits,
		TotalCost:          m.TotalCost,
		DailyCost:          m.DailyCost,
		MonthlyCost:        m.MonthlyCost,
		AnnualCost:         m.AnnualCost,
		TotalQueries:       m.TotalQueries,
		ScheduledQueries:   m.ScheduledQueries,
		InteractiveQueries: m.InteractiveQueries,
		AIQueries:          m.AIQueries,
		InteractiveAvgWait: m.InteractiveWait.Mean,
		InteractiveP50Wait: m.InteractiveWait.P50,
		InteractiveP95Wait: m.InteractiveWait.P95,
		InteractiveP99Wait: m.InteractiveWait.P99,
		ScheduledAvgWait:   m.ScheduledWait.Mean,
		ScheduledP95Wait:   m.ScheduledWait.P95,
		AvgClusters:        m.MeanClusters,
		MaxClusters:        m.MaxClusters,
		AvgUtilization:     m.MeanUtilization,
		MaxQueueDepth:      m.MaxQueueDepth,
		Truncated:          m.Truncated,
		Warnings:           warnings,
	}
}

// WriteSummaryJSON writes the headline summary as indented JSON.
func WriteSummaryJSON(path string, m *cluster.Metrics) error {
	data, err := json.MarshalIndent(NewSummary(m), "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}
