package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/inference-sim/warehouse-sim/sim/cluster"
)

// PrintComparison writes one row per tier in the order given.
func PrintComparison(w io.Writer, results []cluster.Comparison) {
	rule := strings.Repeat("=", lineWidth)
	fmt.Fprintf(w, "\n%s\nWAREHOUSE SIZE COMPARISON\n%s\n\n", rule, rule)
	fmt.Fprintf(w, "%-9s %10s %14s %10s %8s %9s  %s\n",
		"Size", "Units/h", "Monthly ($)", "P95 (s)", "Speed", "Clusters", "Trade-off")
	fmt.Fprintln(w, strings.Repeat("-", lineWidth))
	for _, r := range results {
		fmt.Fprintf(w, "%-9s %10s %14s %10.2f %7.2fx %9.2f  %s\n",
			r.Size,
			humanize.Ftoa(r.UnitsPerHour),
			num(r.Metrics.MonthlyCost),
			r.Metrics.InteractiveWait.P95,
			r.SpeedVsBaseline,
			r.Metrics.MeanClusters,
			r.TradeOff)
	}
	if best, ok := CheapestAcceptable(results); ok {
		fmt.Fprintf(w, "\nCheapest size with interactive p95 under %.0fs: %s ($%s/month)\n",
			p95WarnSeconds, best.Size, num(best.Metrics.MonthlyCost))
	}
	fmt.Fprintln(w)
}

// CheapestAcceptable returns the lowest monthly cost tier whose interactive
// p95 wait stays at or under the warning threshold.
func CheapestAcceptable(results []cluster.Comparison) (cluster.Comparison, bool) {
	var best cluster.Comparison
	found := false
	for _, r := range results {
		if r.Metrics.InteractiveWait.P95 > p95WarnSeconds {
			continue
		}
		if !found || r.Metrics.MonthlyCost < best.Metrics.MonthlyCost {
			best, found = r, true
		}
	}
	return best, found
}
