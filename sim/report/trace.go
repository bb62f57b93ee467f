package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/inference-sim/warehouse-sim/sim/trace"
)

// PrintTraceSummary writes the decision-trace reduction.
func PrintTraceSummary(w io.Writer, s *trace.TraceSummary) {
	fmt.Fprintln(w, "=== Decision Trace Summary ===")
	fmt.Fprintf(w, "Admissions           : %d\n", s.TotalAdmissions)
	fmt.Fprintf(w, "  Immediate          : %d\n", s.ImmediateCount)
	fmt.Fprintf(w, "  From queue         : %d\n", s.QueuedCount)
	if s.QueuedCount > 0 {
		fmt.Fprintf(w, "  Mean queued wait   : %.2fs\n", s.MeanQueuedWait)
		fmt.Fprintf(w, "  Max queued wait    : %.2fs\n", s.MaxQueuedWait)
	}
	fmt.Fprintf(w, "Clusters used        : %d\n", s.UniqueClustersUsed)

	actions := make([]string, 0, len(s.ActionCounts))
	for a := range s.ActionCounts {
		actions = append(actions, string(a))
	}
	sort.Strings(actions)
	for _, a := range actions {
		fmt.Fprintf(w, "  %-19s: %d\n", a, s.ActionCounts[trace.ScalingAction(a)])
	}
}
