package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalAdmissions    int
	ImmediateCount     int
	QueuedCount        int
	MeanQueuedWait     float64
	MaxQueuedWait      float64
	ActionCounts       map[ScalingAction]int
	ClusterPlacements  map[int]int // cluster ID → admissions served
	UniqueClustersUsed int
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		ActionCounts:      make(map[ScalingAction]int),
		ClusterPlacements: make(map[int]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalAdmissions = len(st.Admissions)
	totalWait := 0.0
	for _, a := range st.Admissions {
		summary.ClusterPlacements[a.ClusterID]++
		if a.Immediate {
			summary.ImmediateCount++
			continue
		}
		summary.QueuedCount++
		totalWait += a.Wait
		if a.Wait > summary.MaxQueuedWait {
			summary.MaxQueuedWait = a.Wait
		}
	}
	if summary.QueuedCount > 0 {
		summary.MeanQueuedWait = totalWait / float64(summary.QueuedCount)
	}

	for _, s := range st.Scalings {
		summary.ActionCounts[s.Action]++
	}
	summary.UniqueClustersUsed = len(summary.ClusterPlacements)

	return summary
}
