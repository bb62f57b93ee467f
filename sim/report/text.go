package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/inference-sim/warehouse-sim/sim"
	"github.com/inference-sim/warehouse-sim/sim/cluster"
)

const (
	lineWidth = 80

	p95WarnSeconds   = 5.0
	p95NoticeSeconds = 2.0
	lowUtilization   = 0.3
	highUtilization  = 0.8
	deepQueue        = 10
)

// Advisories returns the operator hints for a run, most severe first within
// each topic. An empty slice means nothing stood out.
func Advisories(m *cluster.Metrics) []string {
	var out []string
	switch p95 := m.InteractiveWait.P95; {
	case p95 > p95WarnSeconds:
		out = append(out, "WARNING: interactive p95 wait exceeds 5s, consider scaling up")
	case p95 > p95NoticeSeconds:
		out = append(out, "NOTICE: interactive p95 wait exceeds 2s, monitor user experience")
	}
	switch {
	case m.MeanUtilization < lowUtilization:
		out = append(out, "TIP: low utilization, consider a smaller warehouse size")
	case m.MeanUtilization > highUtilization:
		out = append(out, "TIP: high utilization, the warehouse is right-sized or may benefit from a larger size")
	}
	if m.MaxQueueDepth > deepQueue {
		out = append(out, "WARNING: significant queuing detected, consider a larger warehouse or more clusters")
	}
	return out
}

// PrintSummary writes the console report for one run.
func PrintSummary(w io.Writer, cfg sim.Config, m *cluster.Metrics) {
	rule := strings.Repeat("=", lineWidth)
	fmt.Fprintf(w, "\n%s\nSQL WAREHOUSE COST SIMULATION RESULTS\n%s\n", rule, rule)

	section(w, "SIMULATION PARAMETERS")
	fmt.Fprintf(w, "  Duration: %d days\n", cfg.Simulation.Days)
	fmt.Fprintf(w, "  Warehouse Size: %s (%s units/hour/cluster)\n", m.Size, num(m.UnitsPerHour))
	fmt.Fprintf(w, "  Target Concurrency: %d queries/cluster (effective %d)\n",
		cfg.Warehouse.TargetConcurrency, m.EffectiveConcurrency)
	fmt.Fprintf(w, "  Performance Multiplier: %.2fx\n", m.PerformanceMultiplier)
	fmt.Fprintf(w, "  Clusters: min=%d, max=%d\n", cfg.Warehouse.MinClusters, cfg.Warehouse.MaxClusters)
	fmt.Fprintf(w, "  Scheduled Items: %d (%d refreshes/day)\n", cfg.Scheduled.Count, cfg.Scheduled.RefreshesPerDay)
	fmt.Fprintf(w, "  Concurrent Users: %d-%d\n", cfg.Interactive.MinConcurrentUsers, cfg.Interactive.MaxConcurrentUsers)
	fmt.Fprintf(w, "  Queries/User/Hour: %s\n", num(cfg.Interactive.QueriesPerUserPerHour))

	section(w, "COST ANALYSIS")
	fmt.Fprintf(w, "  Total Units Consumed: %s\n", num(m.TotalUnits))
	fmt.Fprintf(w, "    - Compute Units: %s\n", num(m.ComputeUnits))
	fmt.Fprintf(w, "    - AI Function Units: %s\n", num(m.AIUnits))
	fmt.Fprintf(w, "  Total Cost: $%s\n", num(m.TotalCost))
	fmt.Fprintf(w, "    - Compute Cost: $%s (@ $%g/unit)\n", num(m.ComputeCost), cfg.Pricing.UnitRate)
	fmt.Fprintf(w, "    - AI Function Cost: $%s (@ $%g/unit)\n", num(m.AICost), cfg.Pricing.AIUnitRate)
	fmt.Fprintf(w, "  Daily Average Cost: $%s\n", num(m.DailyCost))
	fmt.Fprintf(w, "  Monthly Projected Cost (30 days): $%s\n", num(m.MonthlyCost))
	fmt.Fprintf(w, "  Annual Projected Cost (365 days): $%s\n", num(m.AnnualCost))

	section(w, "WORKLOAD ANALYSIS")
	fmt.Fprintf(w, "  Total Queries Executed: %s\n", humanize.Comma(int64(m.TotalQueries)))
	if m.TotalQueries > 0 {
		fmt.Fprintf(w, "    - Scheduled: %s (%.1f%%)\n", humanize.Comma(int64(m.ScheduledQueries)), share(m.ScheduledQueries, m.TotalQueries))
		fmt.Fprintf(w, "    - Interactive: %s (%.1f%%)\n", humanize.Comma(int64(m.InteractiveQueries)), share(m.InteractiveQueries, m.TotalQueries))
		fmt.Fprintf(w, "    - AI Function: %s (%.1f%%)\n", humanize.Comma(int64(m.AIQueries)), share(m.AIQueries, m.TotalQueries))
		fmt.Fprintf(w, "  Queries per Day: %s\n", humanize.Comma(int64(float64(m.TotalQueries)/float64(cfg.Simulation.Days))))
		fmt.Fprintf(w, "  Average Units per Query: %.4f\n", m.UnitsPerQuery)
		fmt.Fprintf(w, "  Average Cost per Query: $%.4f\n", m.CostPerQuery)
	} else {
		fmt.Fprintln(w, "  WARNING: no queries were executed")
	}

	section(w, "INTERACTIVE WAIT TIMES")
	fmt.Fprintf(w, "  Average: %.2fs  P50: %.2fs  P95: %.2fs  P99: %.2fs  Max: %.2fs\n",
		m.InteractiveWait.Mean, m.InteractiveWait.P50, m.InteractiveWait.P95, m.InteractiveWait.P99, m.InteractiveWait.Max)

	section(w, "SCHEDULED WAIT TIMES")
	fmt.Fprintf(w, "  Average: %.2fs  P95: %.2fs\n", m.ScheduledWait.Mean, m.ScheduledWait.P95)

	section(w, "WAREHOUSE SCALING BEHAVIOR")
	fmt.Fprintf(w, "  Average Active Clusters: %.2f\n", m.MeanClusters)
	fmt.Fprintf(w, "  Peak Clusters: %d\n", m.MaxClusters)
	fmt.Fprintf(w, "  Average Utilization: %.1f%%\n", m.MeanUtilization*100)
	fmt.Fprintf(w, "  Max Queue Depth: %d\n", m.MaxQueueDepth)
	fmt.Fprintf(w, "  Resumes: %d  Scale-ups: %d  Scale-downs: %d  Idle evictions: %d\n",
		m.Resumes, m.ScaleUps, m.ScaleDowns, m.Evictions)

	if notes := Advisories(m); len(notes) > 0 || len(m.Warnings) > 0 || m.Truncated {
		section(w, "NOTES")
		for _, n := range notes {
			fmt.Fprintf(w, "  %s\n", n)
		}
		for _, warning := range m.Warnings {
			fmt.Fprintf(w, "  WARNING: %s\n", warning)
		}
		if m.Truncated {
			fmt.Fprintf(w, "  Run truncated at t=%.0fs: %d queries never admitted, %d still running\n",
				m.EndTime, m.UnadmittedQueries, m.RunningAtEnd)
		}
	}
	fmt.Fprintf(w, "\n%s\n\n", rule)
}

func section(w io.Writer, title string) {
	pad := lineWidth - len(title) - 2
	left := pad / 2
	fmt.Fprintf(w, "\n%s %s %s\n", strings.Repeat("-", left), title, strings.Repeat("-", pad-left))
}

func num(v float64) string {
	return humanize.FormatFloat("#,###.##", v)
}

func share(part, total int) float64 {
	return float64(part) / float64(total) * 100
}
