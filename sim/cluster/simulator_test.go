package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/warehouse-sim/sim"
	"github.com/inference-sim/warehouse-sim/sim/internal/testutil"
	"github.com/inference-sim/warehouse-sim/sim/trace"
)

func mustSimulator(t *testing.T, cfg sim.Config) *Simulator {
	t.Helper()
	s, err := NewSimulator(cfg, Options{})
	require.NoError(t, err)
	return s
}

func run(t *testing.T, cfg sim.Config) *Metrics {
	t.Helper()
	return mustSimulator(t, cfg).Run()
}

// pinnedReplayConfig is one always-on Medium cluster with concurrency 2.
func pinnedReplayConfig() sim.Config {
	cfg := testutil.IdleConfig("Medium", 1)
	cfg.Warehouse.MinClusters = 1
	cfg.Warehouse.MaxClusters = 1
	cfg.Warehouse.TargetConcurrency = 2
	return cfg
}

func TestSimulator_GoldenAlwaysOnCost(t *testing.T) {
	dataset := testutil.LoadGoldenDataset(t)
	require.NotEmpty(t, dataset.Tests)
	for _, tc := range dataset.Tests {
		t.Run(tc.Name, func(t *testing.T) {
			// GIVEN a warehouse pinned at a fixed cluster count
			cfg := testutil.AlwaysOnConfig(tc.Size, tc.Days, tc.Clusters)
			if !tc.LightLoad {
				cfg = testutil.IdleConfig(tc.Size, tc.Days)
				cfg.Warehouse.MinClusters = tc.Clusters
				cfg.Warehouse.MaxClusters = tc.Clusters
			}
			cfg.Pricing.UnitRate = tc.UnitRate
			cfg.Simulation.Seed = tc.Seed

			// WHEN simulated
			m := run(t, cfg)

			// THEN usage is rate × clusters × 24h × days regardless of load
			testutil.AssertFloat64Equal(t, "total_units", tc.TotalUnits, m.TotalUnits, 1e-3)
			testutil.AssertFloat64Equal(t, "total_cost", tc.TotalCost, m.TotalCost, 1e-3)
			testutil.AssertFloat64Equal(t, "monthly_cost", tc.MonthlyCost, m.MonthlyCost, 1e-3)
			assert.False(t, m.Truncated)
		})
	}
}

func TestSimulator_AlwaysOnXSmallWeek(t *testing.T) {
	cfg := testutil.AlwaysOnConfig("XSmall", 7, 1)
	m := run(t, cfg)
	assert.InDelta(t, 705.60, m.TotalCost, 1.0)
	assert.Equal(t, 1, m.MaxClusters)
	assert.InDelta(t, 1.0, m.MeanClusters, 1e-12)
}

func TestSimulator_LinearTierScaling(t *testing.T) {
	// GIVEN the same load on pinned single clusters of increasing size
	sizes := []string{"2XSmall", "XSmall", "Small", "Medium"}
	costs := make([]float64, len(sizes))
	for i, size := range sizes {
		costs[i] = run(t, testutil.AlwaysOnConfig(size, 1, 1)).TotalCost
	}

	// THEN cost is proportional to units/hour (4:6:12:24)
	for i, want := range []float64{1, 1.5, 3, 6} {
		testutil.AssertFloat64Equal(t, sizes[i], want, costs[i]/costs[0], 1e-3)
	}
}

func TestSimulator_AutoSuspendSavings(t *testing.T) {
	// GIVEN the same light workload with and without scale-to-zero
	suspend := run(t, testutil.LightLoadConfig("Medium", 2))
	cfg := testutil.LightLoadConfig("Medium", 2)
	cfg.Warehouse.MinClusters = 1
	alwaysOn := run(t, cfg)

	// THEN scale-to-zero lowers both live clusters and cost by more than 20%
	assert.Less(t, suspend.MeanClusters, alwaysOn.MeanClusters)
	assert.Less(t, suspend.TotalCost, 0.8*alwaysOn.TotalCost)
	assert.Equal(t, suspend.TotalQueries, alwaysOn.TotalQueries)
}

func TestSimulator_ScaleToZeroReachable(t *testing.T) {
	// GIVEN a sparse workload and min_clusters=0
	m := run(t, testutil.LightLoadConfig("Medium", 1))

	// THEN some snapshots show zero live clusters and the mean is below one
	zero := 0
	for _, s := range m.StateHistory {
		if s.Clusters == 0 {
			zero++
		}
	}
	assert.Positive(t, zero)
	assert.Less(t, m.MeanClusters, 1.0)
	assert.Positive(t, m.Resumes)
	assert.Positive(t, m.TotalQueries)
}

func TestSimulator_RateLinearity(t *testing.T) {
	cfg := testutil.LightLoadConfig("Small", 1)
	base := run(t, cfg)
	cfg.Pricing.UnitRate *= 2
	cfg.Pricing.AIUnitRate *= 2
	doubled := run(t, cfg)

	assert.Equal(t, base.TotalUnits, doubled.TotalUnits)
	assert.InDelta(t, 2*base.TotalCost, doubled.TotalCost, 1e-9)
}

func TestSimulator_DefaultRunInvariants(t *testing.T) {
	cfg := sim.DefaultConfig()
	cfg.Simulation.Days = 1
	m := run(t, cfg)

	require.Positive(t, m.TotalQueries)
	assert.Equal(t, m.GeneratedQueries, m.TotalQueries)
	assert.Equal(t, m.TotalQueries, m.CompletedQueries)
	assert.Equal(t, m.ScheduledQueries+m.InteractiveQueries, m.TotalQueries)
	assert.False(t, m.Truncated)
	assert.Empty(t, m.Warnings)

	for _, d := range []sim.Distribution{m.Wait, m.InteractiveWait, m.ScheduledWait} {
		assert.LessOrEqual(t, d.P50, d.P95)
		assert.LessOrEqual(t, d.P95, d.P99)
		assert.LessOrEqual(t, d.P99, d.Max)
		assert.GreaterOrEqual(t, d.Mean, 0.0)
		assert.LessOrEqual(t, d.Mean, d.Max)
	}
	for _, w := range m.WaitTimes {
		require.GreaterOrEqual(t, w, 0.0)
	}
	assert.LessOrEqual(t, m.MaxClusters, cfg.Warehouse.MaxClusters)
	assert.GreaterOrEqual(t, m.MeanUtilization, 0.0)
	assert.LessOrEqual(t, m.MeanUtilization, 1.0)
	assert.Positive(t, m.AIUnits)
}

func TestSimulator_Deterministic(t *testing.T) {
	cfg := sim.DefaultConfig()
	cfg.Simulation.Days = 1
	assert.Equal(t, run(t, cfg), run(t, cfg))
}

func TestSimulator_SnapshotCadence(t *testing.T) {
	// GIVEN an idle one-day run sampled every minute
	m := run(t, testutil.IdleConfig("Medium", 1))

	// THEN snapshots start at t=0 and cover the window once per interval
	require.Len(t, m.StateHistory, 1440)
	assert.Equal(t, 0.0, m.StateHistory[0].Time)
	assert.Equal(t, 60.0, m.StateHistory[1].Time)
	assert.Equal(t, 86340.0, m.StateHistory[1439].Time)
}

func TestSimulator_NoQueriesWarns(t *testing.T) {
	m := run(t, testutil.IdleConfig("Medium", 1))
	assert.Equal(t, 0, m.TotalQueries)
	assert.Equal(t, sim.Distribution{}, m.Wait)
	require.NotEmpty(t, m.Warnings)
	assert.Contains(t, m.Warnings[0], "no queries")
}

func TestSimulator_FIFOQueueFairness(t *testing.T) {
	// GIVEN one cluster with two slots, both taken, and two queries waiting
	s := mustSimulator(t, pinnedReplayConfig())
	queries := []sim.Query{
		{ID: 0, Class: sim.ClassScheduled, ArrivalTime: 0, Duration: 100},
		{ID: 1, Class: sim.ClassScheduled, ArrivalTime: 0, Duration: 1000},
		{ID: 2, Class: sim.ClassInteractive, ArrivalTime: 10, Duration: 5},
		{ID: 3, Class: sim.ClassInteractive, ArrivalTime: 20, Duration: 5},
	}

	// WHEN capacity frees for exactly one query at t=100
	m := s.Replay(queries)

	// THEN the earlier-queued query is admitted first
	assigned := make(map[int]float64)
	for _, e := range s.Executions() {
		assigned[e.Query.ID] = e.AssignedTime
	}
	assert.Equal(t, 100.0, assigned[2])
	assert.Equal(t, 110.0, assigned[3])
	assert.Equal(t, 4, m.CompletedQueries)
	assert.Equal(t, 2, m.MaxQueueDepth)
}

func TestSimulator_CompletionMeasuredFromAssignment(t *testing.T) {
	// GIVEN a query admitted at t=0 running 25s
	s := mustSimulator(t, pinnedReplayConfig())
	s.Replay([]sim.Query{{ID: 0, Class: sim.ClassInteractive, ArrivalTime: 0, Duration: 25}})

	// THEN it completes at the first step with assigned+duration <= t
	exec := s.Executions()[0]
	assert.True(t, exec.Completed)
	assert.Equal(t, 30.0, exec.CompletedTime)
	assert.Equal(t, 0.0, exec.WaitTime())
}

func TestSimulator_AIUnitsAccruedOnCompletion(t *testing.T) {
	cfg := pinnedReplayConfig()
	s := mustSimulator(t, cfg)
	m := s.Replay([]sim.Query{
		{ID: 0, Class: sim.ClassInteractive, ArrivalTime: 0, Duration: 1, UsesAIFunction: true},
		{ID: 1, Class: sim.ClassInteractive, ArrivalTime: 0, Duration: 1, UsesAIFunction: true},
		{ID: 2, Class: sim.ClassInteractive, ArrivalTime: 5, Duration: 1},
	})
	assert.InDelta(t, 2*cfg.Interactive.AIUnitsPerCall, m.AIUnits, 1e-12)
	assert.InDelta(t, m.AIUnits*cfg.Pricing.AIUnitRate, m.AICost, 1e-12)
	assert.Equal(t, 2, m.AIQueries)
}

func TestSimulator_CeilingTruncatesRun(t *testing.T) {
	// GIVEN no grace window and work that cannot finish in the window
	cfg := pinnedReplayConfig()
	cfg.Simulation.GraceSeconds = 0
	s := mustSimulator(t, cfg)

	// WHEN replayed
	m := s.Replay([]sim.Query{
		{ID: 0, ArrivalTime: 0, Duration: 1e6},
		{ID: 1, ArrivalTime: 0, Duration: 1e6},
		{ID: 2, ArrivalTime: 0, Duration: 1e6},
	})

	// THEN the run stops at the ceiling and the shortfall is observable
	assert.True(t, m.Truncated)
	assert.Equal(t, 3, m.GeneratedQueries)
	assert.Equal(t, 2, m.TotalQueries)
	assert.Equal(t, 0, m.CompletedQueries)
	assert.Equal(t, 1, m.UnadmittedQueries)
	assert.Equal(t, 2, m.RunningAtEnd)
	assert.Equal(t, 0, m.Wait.Count)
	require.NotEmpty(t, m.Warnings)
	assert.Contains(t, m.Warnings[len(m.Warnings)-1], "ceiling")
	testutil.AssertFloat64Equal(t, "units", 24*24, m.ComputeUnits, 1e-9)
}

func TestSimulator_DrainsPastWindow(t *testing.T) {
	// GIVEN a query still running when the window closes
	cfg := pinnedReplayConfig()
	s := mustSimulator(t, cfg)
	m := s.Replay([]sim.Query{{ID: 0, ArrivalTime: 86390, Duration: 100}})

	// THEN the loop keeps stepping until it finishes, within the grace window
	assert.False(t, m.Truncated)
	assert.Equal(t, 1, m.CompletedQueries)
	assert.Equal(t, 86490.0, s.Executions()[0].CompletedTime)
	assert.Greater(t, m.ComputeUnits, 24.0*24)
}

func TestSimulator_TraceRecordsDecisions(t *testing.T) {
	cfg := testutil.LightLoadConfig("Medium", 1)
	s, err := NewSimulator(cfg, Options{Trace: trace.TraceConfig{Level: trace.TraceLevelDecisions}})
	require.NoError(t, err)

	m := s.Run()

	require.NotNil(t, s.Trace())
	summary := trace.Summarize(s.Trace())
	assert.Equal(t, m.TotalQueries, summary.TotalAdmissions)
	assert.Equal(t, m.Resumes, summary.ActionCounts[trace.ActionResume])
	assert.Equal(t, m.Evictions, summary.ActionCounts[trace.ActionEvict])
}

func TestSimulator_TraceOffByDefault(t *testing.T) {
	s := mustSimulator(t, testutil.IdleConfig("Medium", 1))
	assert.Nil(t, s.Trace())
}

func TestNewSimulator_RejectsInvalidConfig(t *testing.T) {
	cfg := sim.DefaultConfig()
	cfg.Warehouse.Size = "Gigantic"
	_, err := NewSimulator(cfg, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Gigantic")
}

func TestSimulator_RunsOnce(t *testing.T) {
	s := mustSimulator(t, testutil.IdleConfig("Medium", 1))
	s.Replay(nil)
	assert.Panics(t, func() { s.Replay(nil) })
}
