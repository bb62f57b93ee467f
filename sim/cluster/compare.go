package cluster

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/warehouse-sim/sim"
)

// DefaultComparisonSizes is the tier sweep used when none is given.
var DefaultComparisonSizes = []string{"2XSmall", "XSmall", "Small", "Medium", "Large", "XLarge"}

// TradeOff thresholds on monthly cost ($) and interactive p95 wait (s).
const (
	cheapMonthlyCost     = 1500.0
	expensiveMonthlyCost = 5000.0
	slowP95Wait          = 10.0
	fastP95Wait          = 2.0
	balancedP95Wait      = 5.0
)

// Comparison is one tier's outcome under a shared workload.
type Comparison struct {
	Size            string
	UnitsPerHour    float64
	SpeedVsBaseline float64 // >1 means faster than the baseline tier
	TradeOff        string
	Metrics         *Metrics
}

// CompareSizes runs the same configuration once per tier. Only the size
// changes between runs; the seed, workload and scaling policy are shared.
func CompareSizes(cfg sim.Config, sizes []string) ([]Comparison, error) {
	if len(sizes) == 0 {
		sizes = DefaultComparisonSizes
	}
	results := make([]Comparison, 0, len(sizes))
	for _, size := range sizes {
		run := cfg
		run.Warehouse.Size = size
		s, err := NewSimulator(run, Options{})
		if err != nil {
			return nil, fmt.Errorf("size %s: %w", size, err)
		}
		logrus.Infof("Comparing size %s", size)
		m := s.Run()
		results = append(results, Comparison{
			Size:            size,
			UnitsPerHour:    m.UnitsPerHour,
			SpeedVsBaseline: 1 / m.PerformanceMultiplier,
			TradeOff:        ClassifyTradeOff(m.MonthlyCost, m.InteractiveWait.P95),
			Metrics:         m,
		})
	}
	return results, nil
}

// ClassifyTradeOff labels a tier by its monthly cost and interactive p95 wait.
func ClassifyTradeOff(monthlyCost, p95Wait float64) string {
	switch {
	case monthlyCost < cheapMonthlyCost && p95Wait > slowP95Wait:
		return "cheap but slow"
	case monthlyCost > expensiveMonthlyCost && p95Wait < fastP95Wait:
		return "fast but expensive"
	case p95Wait < balancedP95Wait:
		return "good balance"
	default:
		return "consider adjusting"
	}
}
