package workload

import (
	"sort"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/inference-sim/warehouse-sim/sim"
)

const (
	// interactiveWindowSeconds is the sub-window over which Poisson arrivals are drawn.
	interactiveWindowSeconds = 60.0

	// minInteractiveDuration floors interactive Gaussian draws.
	minInteractiveDuration = 0.1
)

// Generator produces the scheduled and interactive query streams for one run.
// It is deterministic given the config and the PartitionedRNG key.
type Generator struct {
	cfg        sim.Config
	rng        *sim.PartitionedRNG
	multiplier float64
	nextID     int
}

// NewGenerator creates a generator. The performance multiplier is computed
// once here and applied to both streams.
func NewGenerator(cfg sim.Config, rng *sim.PartitionedRNG) *Generator {
	return &Generator{
		cfg:        cfg,
		rng:        rng,
		multiplier: cfg.Warehouse.PerformanceMultiplier(),
	}
}

// PerformanceMultiplier returns the duration scale applied to every query.
func (g *Generator) PerformanceMultiplier() float64 {
	return g.multiplier
}

// GenerateAll produces both streams, each sorted by arrival time.
// IDs are assigned scheduled first, then interactive.
func (g *Generator) GenerateAll() (scheduled, interactive []sim.Query) {
	scheduled = g.GenerateScheduled()
	interactive = g.GenerateInteractive()
	logrus.Debugf("generated %d scheduled and %d interactive queries (multiplier %.3f)",
		len(scheduled), len(interactive), g.multiplier)
	return scheduled, interactive
}

// GenerateScheduled produces periodic refreshes for every scheduled item.
// Base offsets stagger items evenly across one period; Gaussian jitter with
// sigma = period*overlap clusters them. A refresh whose jittered start falls
// outside [0, total) is dropped, not rescheduled.
func (g *Generator) GenerateScheduled() []sim.Query {
	sc := g.cfg.Scheduled
	if sc.Count == 0 {
		return nil
	}
	src := g.rng.ForSubsystem(sim.SubsystemScheduled)
	total := g.cfg.TotalSeconds()
	period := 86400.0 / float64(sc.RefreshesPerDay)
	refreshes := sc.RefreshesPerDay * g.cfg.Simulation.Days

	jitter := distuv.Normal{Mu: 0, Sigma: period * sc.OverlapFactor, Src: src}
	runtime := NewClampedGaussianSampler(sc.MeanRuntimeSeconds, sc.RuntimeStdDevSeconds,
		sc.MinRuntimeSeconds, sc.MaxRuntimeSeconds, src)

	queries := make([]sim.Query, 0, sc.Count*refreshes)
	for item := 0; item < sc.Count; item++ {
		baseOffset := float64(item) * (period / float64(sc.Count))
		for r := 0; r < refreshes; r++ {
			t := float64(r)*period + baseOffset
			if sc.OverlapFactor > 0 {
				t += jitter.Rand()
			}
			if t < 0 || t >= total {
				continue
			}
			queries = append(queries, sim.Query{
				ID:          g.allocID(),
				Class:       sim.ClassScheduled,
				ArrivalTime: t,
				Duration:    runtime.Sample() * g.multiplier,
			})
		}
	}
	sortByArrival(queries)
	return queries
}

// GenerateInteractive produces user-driven arrivals. Each 60-second window
// draws Poisson(users*rate/3600*60) arrivals placed uniformly in the window.
func (g *Generator) GenerateInteractive() []sim.Query {
	ic := g.cfg.Interactive
	src := g.rng.ForSubsystem(sim.SubsystemInteractive)
	total := g.cfg.TotalSeconds()
	curve := NewActivityCurve(ic)

	offset := distuv.Uniform{Min: 0, Max: interactiveWindowSeconds, Src: src}
	durations := NewCacheMixSampler(ic.CacheHitRate,
		NewFlooredGaussianSampler(ic.CacheHitMeanSeconds, ic.CacheHitStdDevSeconds, minInteractiveDuration, src),
		NewFlooredGaussianSampler(ic.CacheMissMeanSeconds, ic.CacheMissStdDevSeconds, minInteractiveDuration, src),
		src)
	usesAI := distuv.Bernoulli{P: ic.AIFunctionFraction, Src: src}

	var queries []sim.Query
	for w := 0; ; w++ {
		windowStart := float64(w) * interactiveWindowSeconds
		if windowStart >= total {
			break
		}
		users := curve.Users(windowStart)
		expected := float64(users) * ic.QueriesPerUserPerHour / 3600 * interactiveWindowSeconds
		if expected <= 0 {
			continue
		}
		n := int(distuv.Poisson{Lambda: expected, Src: src}.Rand())
		for i := 0; i < n; i++ {
			t := windowStart + offset.Rand()
			if t >= total {
				break
			}
			d := durations.Sample() * g.multiplier
			queries = append(queries, sim.Query{
				ID:             g.allocID(),
				Class:          sim.ClassInteractive,
				ArrivalTime:    t,
				Duration:       d,
				UsesAIFunction: usesAI.Rand() == 1,
			})
		}
	}
	sortByArrival(queries)
	return queries
}

// Merge interleaves two arrival-sorted streams into one, stable on ties.
func Merge(a, b []sim.Query) []sim.Query {
	all := make([]sim.Query, 0, len(a)+len(b))
	all = append(all, a...)
	all = append(all, b...)
	sortByArrival(all)
	return all
}

func (g *Generator) allocID() int {
	id := g.nextID
	g.nextID++
	return id
}

func sortByArrival(queries []sim.Query) {
	sort.SliceStable(queries, func(i, j int) bool {
		return queries[i].ArrivalTime < queries[j].ArrivalTime
	})
}
