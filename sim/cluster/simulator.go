package cluster

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/warehouse-sim/sim"
	"github.com/inference-sim/warehouse-sim/sim/trace"
	"github.com/inference-sim/warehouse-sim/sim/workload"
)

// Options tune a run without changing its semantics.
type Options struct {
	Trace trace.TraceConfig
}

// Simulator is the fixed-timestep discrete-event engine. Each step at time t:
// admit arrivals with ArrivalTime <= t, complete executions finishing by t,
// retry the pending queue in FIFO order, tick the pool, accrue usage for
// [t, t+step), and sample pool state on its own cadence.
//
// Single-threaded; a Simulator runs exactly once.
type Simulator struct {
	cfg       sim.Config
	warehouse *Warehouse
	generator *workload.Generator
	queue     WaitQueue
	trace     *trace.SimulationTrace

	executions []*sim.QueryExecution
	running    []*sim.QueryExecution // admission order
	usage      Usage
	clock      float64
	ran        bool
}

// NewSimulator validates cfg and builds the pool and workload generator.
func NewSimulator(cfg sim.Config, opts Options) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var tr *trace.SimulationTrace
	if opts.Trace.Level == trace.TraceLevelDecisions {
		tr = trace.NewSimulationTrace(opts.Trace)
	}
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(cfg.Simulation.Seed))
	return &Simulator{
		cfg:       cfg,
		warehouse: NewWarehouse(cfg.Warehouse, tr),
		generator: workload.NewGenerator(cfg, rng),
		trace:     tr,
	}, nil
}

// Trace returns the decision trace, or nil when tracing is off.
func (s *Simulator) Trace() *trace.SimulationTrace { return s.trace }

// Warehouse exposes the pool for inspection after a run.
func (s *Simulator) Warehouse() *Warehouse { return s.warehouse }

// Executions returns the execution records in admission order.
func (s *Simulator) Executions() []*sim.QueryExecution { return s.executions }

// Clock returns the simulated time of the last processed step.
func (s *Simulator) Clock() float64 { return s.clock }

// Run generates the workload and simulates it.
func (s *Simulator) Run() *Metrics {
	w := s.cfg.Warehouse
	mult := s.generator.PerformanceMultiplier()
	logrus.Infof("Starting simulation: %d days, size %s (%.0f units/hour/cluster), %d-%d clusters, concurrency %d/cluster",
		s.cfg.Simulation.Days, w.Size, w.UnitsPerHour(), w.MinClusters, w.MaxClusters, w.EffectiveConcurrency())
	switch {
	case mult < 1:
		logrus.Infof("Performance: %.2fx faster than the baseline tier", 1/mult)
	case mult > 1:
		logrus.Infof("Performance: %.2fx slower than the baseline tier", mult)
	default:
		logrus.Infof("Performance: baseline tier")
	}

	scheduled, interactive := s.generator.GenerateAll()
	logrus.Infof("Generated %d scheduled and %d interactive queries", len(scheduled), len(interactive))
	return s.Replay(workload.Merge(scheduled, interactive))
}

// Replay simulates a prepared, arrival-sorted query list.
func (s *Simulator) Replay(queries []sim.Query) *Metrics {
	if s.ran {
		panic("Replay: a Simulator runs exactly once")
	}
	s.ran = true

	step := s.cfg.Simulation.TimeStepSeconds
	interval := s.cfg.Simulation.SampleIntervalSeconds
	total := s.cfg.TotalSeconds()
	ceiling := total + s.cfg.Simulation.GraceSeconds
	windowSteps := s.cfg.NumSteps()
	stepsPerDay := int(math.Round(86400 / step))

	next := 0
	nextSample := 0
	truncated := false
	for i := 0; ; i++ {
		t := float64(i) * step
		drained := next == len(queries) && len(s.running) == 0 && s.queue.Len() == 0
		if i >= windowSteps && drained {
			break
		}
		if t >= ceiling {
			truncated = !drained
			break
		}
		s.clock = t

		for next < len(queries) && queries[next].ArrivalTime <= t {
			q := queries[next]
			if !s.admit(q, t, true) {
				s.queue.Enqueue(q)
			}
			next++
		}
		s.completeDue(t)
		s.queue.Retry(func(q sim.Query) bool { return s.admit(q, t, false) })
		s.warehouse.Tick(t)

		dt := step
		if t < total && t+step > total {
			dt = total - t
		}
		s.usage.ComputeUnits += s.warehouse.Usage(dt)

		if t >= float64(nextSample)*interval {
			s.warehouse.RecordState(t, s.queue.Len(), s.usage.ComputeUnits, s.usage.AIUnits)
			nextSample = int(t/interval) + 1
		}

		if stepsPerDay > 0 && (i+1)%stepsPerDay == 0 && i < windowSteps {
			logrus.Infof("Completed day %d/%d", (i+1)/stepsPerDay, s.cfg.Simulation.Days)
		}
	}

	m := ComputeMetrics(s.cfg, s.executions, s.warehouse.History(), s.usage)
	m.GeneratedQueries = len(queries)
	m.UnadmittedQueries = s.queue.Len() + len(queries) - next
	m.RunningAtEnd = len(s.running)
	m.EndTime = s.clock
	m.Truncated = truncated
	m.Resumes, m.ScaleUps, m.ScaleDowns, m.Evictions = s.warehouse.ScalingCounts()

	if len(queries) == 0 {
		m.Warnings = append(m.Warnings, "no queries were generated for this configuration")
	}
	if truncated {
		m.Warnings = append(m.Warnings, fmt.Sprintf(
			"run stopped at the %.0fs ceiling with %d queries never admitted and %d still running",
			ceiling, m.UnadmittedQueries, m.RunningAtEnd))
	}
	for _, msg := range m.Warnings {
		logrus.Warn(msg)
	}
	logrus.Infof("Simulation complete at t=%.0fs: %d queries, %.2f units, $%.2f",
		s.clock, m.TotalQueries, m.TotalUnits, m.TotalCost)
	return m
}

// admit places q on a cluster at now and opens its execution record.
func (s *Simulator) admit(q sim.Query, now float64, immediate bool) bool {
	id, ok := s.warehouse.Admit(now)
	if !ok {
		return false
	}
	exec := &sim.QueryExecution{Query: q, ClusterID: id, AssignedTime: now}
	s.executions = append(s.executions, exec)
	s.running = append(s.running, exec)
	if s.trace != nil {
		s.trace.RecordAdmission(trace.AdmissionRecord{
			QueryID:   q.ID,
			Clock:     now,
			Immediate: immediate,
			ClusterID: id,
			Wait:      exec.WaitTime(),
		})
	}
	return true
}

// completeDue finishes every running execution whose service ended by now.
func (s *Simulator) completeDue(now float64) {
	remaining := s.running[:0]
	for _, exec := range s.running {
		if exec.FinishTime() > now {
			remaining = append(remaining, exec)
			continue
		}
		s.warehouse.Release(exec.ClusterID, now)
		exec.CompletedTime = now
		exec.Completed = true
		if exec.Query.UsesAIFunction {
			s.usage.AIUnits += s.cfg.Interactive.AIUnitsPerCall
		}
	}
	clear(s.running[len(remaining):])
	s.running = remaining
}
