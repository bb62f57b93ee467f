package sim

// QueryClass distinguishes the two workload streams.
type QueryClass string

const (
	ClassScheduled   QueryClass = "scheduled"
	ClassInteractive QueryClass = "interactive"
)

// Query is an immutable unit of work produced by the workload generator.
// Duration already includes the tier performance multiplier.
type Query struct {
	ID             int
	Class          QueryClass
	ArrivalTime    float64 // seconds from simulation start
	Duration       float64 // service seconds
	UsesAIFunction bool
}

// QueryExecution binds a Query to its outcome. Owned by the engine.
type QueryExecution struct {
	Query         Query
	ClusterID     int
	AssignedTime  float64
	CompletedTime float64
	Completed     bool
}

// WaitTime is the time spent queued before admission.
func (e *QueryExecution) WaitTime() float64 {
	return e.AssignedTime - e.Query.ArrivalTime
}

// FinishTime is the simulated time at which service ends.
func (e *QueryExecution) FinishTime() float64 {
	return e.AssignedTime + e.Query.Duration
}
