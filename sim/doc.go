// Package sim provides the shared model for the warehouse cost simulator.
//
// # Reading Guide
//
// Start with these files:
//   - config.go: typed configuration sections, tier scaling and validation
//   - query.go: Query (immutable intent) and QueryExecution (runtime outcome)
//   - rng.go: per-stream deterministic randomness
//
// # Architecture
//
// The sim package holds data types and helpers; behavior lives in sub-packages:
//   - sim/workload/: scheduled and interactive arrival streams
//   - sim/cluster/: elastic warehouse pool, fixed-step engine, metrics aggregation
//   - sim/trace/: admission and scaling decision trace
//   - sim/report/: text, JSON, CSV and Prometheus outputs
//
// A run is a pure function of its Config: the same seed reproduces the same
// queries, the same scaling decisions and the same bill.
package sim
