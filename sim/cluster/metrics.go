package cluster

import (
	"github.com/inference-sim/warehouse-sim/sim"
)

const (
	daysPerMonth = 30
	daysPerYear  = 365
)

// Usage is billable consumption split by category.
type Usage struct {
	ComputeUnits float64 // cluster-hours × units/hour
	AIUnits      float64 // auxiliary per-call units
}

// Metrics is the final aggregate of one run. Read-only once built.
type Metrics struct {
	Size                  string
	UnitsPerHour          float64
	Days                  int
	PerformanceMultiplier float64
	EffectiveConcurrency  int

	ComputeUnits float64
	AIUnits      float64
	TotalUnits   float64
	ComputeCost  float64
	AICost       float64
	TotalCost    float64
	DailyCost    float64
	MonthlyCost  float64
	AnnualCost   float64

	UnitsPerQuery float64
	CostPerQuery  float64

	GeneratedQueries   int // produced by the workload generator
	TotalQueries       int // admitted at least once
	ScheduledQueries   int
	InteractiveQueries int
	AIQueries          int
	CompletedQueries   int
	UnadmittedQueries  int // still queued or never reached when the ceiling hit
	RunningAtEnd       int // admitted but unfinished when the ceiling hit

	Wait            sim.Distribution
	InteractiveWait sim.Distribution
	ScheduledWait   sim.Distribution

	MeanClusters    float64
	MaxClusters     int
	MeanUtilization float64 // over snapshots with nonzero capacity, in [0,1]
	MaxQueueDepth   int

	Resumes    int
	ScaleUps   int
	ScaleDowns int
	Evictions  int

	EndTime   float64 // simulated time the loop stopped
	Truncated bool    // the hard ceiling stopped the run with work outstanding
	Warnings  []string

	StateHistory         []WarehouseState
	WaitTimes            []float64
	InteractiveWaitTimes []float64
	ScheduledWaitTimes   []float64
}

// ComputeMetrics is a pure post-pass over finished executions and the state history.
// Executions without a completion time count toward totals but not wait statistics.
func ComputeMetrics(cfg sim.Config, executions []*sim.QueryExecution, history []WarehouseState, usage Usage) *Metrics {
	m := &Metrics{
		Size:                  cfg.Warehouse.Size,
		UnitsPerHour:          cfg.Warehouse.UnitsPerHour(),
		Days:                  cfg.Simulation.Days,
		PerformanceMultiplier: cfg.Warehouse.PerformanceMultiplier(),
		EffectiveConcurrency:  cfg.Warehouse.EffectiveConcurrency(),
		StateHistory:          history,
	}

	m.ComputeUnits = usage.ComputeUnits
	m.AIUnits = usage.AIUnits
	m.TotalUnits = usage.ComputeUnits + usage.AIUnits
	m.ComputeCost = usage.ComputeUnits * cfg.Pricing.UnitRate
	m.AICost = usage.AIUnits * cfg.Pricing.AIUnitRate
	m.TotalCost = m.ComputeCost + m.AICost
	m.DailyCost = m.TotalCost / float64(cfg.Simulation.Days)
	m.MonthlyCost = m.DailyCost * daysPerMonth
	m.AnnualCost = m.DailyCost * daysPerYear

	m.WaitTimes = make([]float64, 0, len(executions))
	for _, e := range executions {
		m.TotalQueries++
		switch e.Query.Class {
		case sim.ClassScheduled:
			m.ScheduledQueries++
		case sim.ClassInteractive:
			m.InteractiveQueries++
		}
		if e.Query.UsesAIFunction {
			m.AIQueries++
		}
		if !e.Completed {
			continue
		}
		m.CompletedQueries++
		wait := e.WaitTime()
		m.WaitTimes = append(m.WaitTimes, wait)
		if e.Query.Class == sim.ClassInteractive {
			m.InteractiveWaitTimes = append(m.InteractiveWaitTimes, wait)
		} else {
			m.ScheduledWaitTimes = append(m.ScheduledWaitTimes, wait)
		}
	}
	m.Wait = sim.NewDistribution(m.WaitTimes)
	m.InteractiveWait = sim.NewDistribution(m.InteractiveWaitTimes)
	m.ScheduledWait = sim.NewDistribution(m.ScheduledWaitTimes)

	if m.TotalQueries > 0 {
		m.UnitsPerQuery = m.TotalUnits / float64(m.TotalQueries)
		m.CostPerQuery = m.TotalCost / float64(m.TotalQueries)
	}

	clusters := make([]float64, len(history))
	var utilizations []float64
	for i, s := range history {
		clusters[i] = float64(s.Clusters)
		m.MaxClusters = max(m.MaxClusters, s.Clusters)
		m.MaxQueueDepth = max(m.MaxQueueDepth, s.QueuedQueries)
		if s.Capacity > 0 {
			utilizations = append(utilizations, s.Utilization())
		}
	}
	m.MeanClusters = sim.Mean(clusters)
	m.MeanUtilization = sim.Mean(utilizations)

	return m
}
