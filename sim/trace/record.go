// Package trace provides decision-trace recording for warehouse scaling analysis.
// It has no dependencies on sim/ or sim/cluster/ and stores plain data types.
package trace

// AdmissionRecord captures where and when a query was placed.
type AdmissionRecord struct {
	QueryID   int
	Clock     float64
	Immediate bool // false when the query waited in the pending queue first
	ClusterID int
	Wait      float64
}

// ScalingAction names a pool lifecycle decision.
type ScalingAction string

const (
	ActionResume    ScalingAction = "resume"     // first cluster started from zero
	ActionScaleUp   ScalingAction = "scale_up"   // additional cluster for load
	ActionScaleDown ScalingAction = "scale_down" // idle cluster scheduled for shutdown
	ActionEvict     ScalingAction = "evict"      // idle-expired cluster removed
	ActionRetain    ScalingAction = "retain"     // expired cluster kept for min_clusters
)

// ScalingRecord captures a single pool scaling decision.
type ScalingRecord struct {
	Clock         float64
	Action        ScalingAction
	ClusterID     int
	ClustersNow   int     // live count after the action
	Utilization   float64 // aggregate utilization when the decision was made
	ActiveQueries int     // active queries across the pool at decision time
}
