package cluster

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/warehouse-sim/sim"
	"github.com/inference-sim/warehouse-sim/sim/trace"
)

// ClusterState is one elastic compute unit in the warehouse.
// Invariant: ActiveQueries >= 0; a cluster with running queries is always live.
type ClusterState struct {
	ID            int
	ActiveQueries int
	StartupTime   float64
	LastQueryEnd  float64
	HasCompleted  bool // LastQueryEnd is meaningful
	ShutdownAt    float64
	ShuttingDown  bool // ShutdownAt is meaningful
	retained      bool // kept past expiry to honor MinClusters
}

// idleSince is the reference point for the idle timer.
func (c *ClusterState) idleSince() float64 {
	if c.HasCompleted {
		return c.LastQueryEnd
	}
	return c.StartupTime
}

// IsActive reports whether the cluster is still live at now.
func (c *ClusterState) IsActive(now, idleTimeout float64) bool {
	if c.ShuttingDown && now >= c.ShutdownAt {
		return false
	}
	if c.ActiveQueries > 0 {
		return true
	}
	return now-c.idleSince() < idleTimeout
}

// acceptsWork reports whether the cluster can take one more query at now.
func (c *ClusterState) acceptsWork(now float64, concurrency int) bool {
	if c.ActiveQueries >= concurrency {
		return false
	}
	return !c.ShuttingDown || now < c.ShutdownAt
}

// WarehouseState is an immutable point-in-time snapshot of the pool.
type WarehouseState struct {
	Time            float64
	Clusters        int
	ActiveQueries   int
	QueuedQueries   int
	Capacity        int
	CumulativeUnits float64 // compute units billed so far
	AIUnits         float64 // auxiliary units accrued so far
}

// Utilization is active/capacity, or 0 when no capacity is live.
func (s WarehouseState) Utilization() float64 {
	if s.Capacity == 0 {
		return 0
	}
	return float64(s.ActiveQueries) / float64(s.Capacity)
}

// Warehouse is the elastic cluster pool. It owns its cluster collection and
// the state-history buffer; callers refer to clusters by ID only.
//
// Not thread-safe: driven by the engine's single call sequence per step.
type Warehouse struct {
	cfg          sim.WarehouseConfig
	unitsPerHour float64
	concurrency  int

	clusters []*ClusterState // ordered by creation
	nextID   int
	lastUp   float64
	lastDown float64
	history  []WarehouseState
	trace    *trace.SimulationTrace // nil when tracing is off

	resumes    int
	scaleUps   int
	scaleDowns int
	evictions  int
}

// NewWarehouse creates the pool with MinClusters clusters started at t=0.
// tr may be nil.
func NewWarehouse(cfg sim.WarehouseConfig, tr *trace.SimulationTrace) *Warehouse {
	w := &Warehouse{
		cfg:          cfg,
		unitsPerHour: cfg.UnitsPerHour(),
		concurrency:  cfg.EffectiveConcurrency(),
		trace:        tr,
	}
	for i := 0; i < cfg.MinClusters; i++ {
		w.addCluster(0)
	}
	return w
}

func (w *Warehouse) addCluster(now float64) *ClusterState {
	c := &ClusterState{ID: w.nextID, StartupTime: now}
	w.nextID++
	w.clusters = append(w.clusters, c)
	return c
}

func (w *Warehouse) find(id int) *ClusterState {
	for _, c := range w.clusters {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// EffectiveConcurrency is the per-cluster query capacity.
func (w *Warehouse) EffectiveConcurrency() int { return w.concurrency }

// ClusterCount returns the live cluster count.
func (w *Warehouse) ClusterCount() int { return len(w.clusters) }

// Capacity is ClusterCount × EffectiveConcurrency.
func (w *Warehouse) Capacity() int { return len(w.clusters) * w.concurrency }

// ActiveQueries sums running queries across live clusters.
func (w *Warehouse) ActiveQueries() int {
	n := 0
	for _, c := range w.clusters {
		n += c.ActiveQueries
	}
	return n
}

// Utilization is the aggregate active/capacity ratio, 0 with no clusters.
func (w *Warehouse) Utilization() float64 {
	capacity := w.Capacity()
	if capacity == 0 {
		return 0
	}
	return float64(w.ActiveQueries()) / float64(capacity)
}

// Clusters returns a copy of the live clusters.
func (w *Warehouse) Clusters() []ClusterState {
	out := make([]ClusterState, len(w.clusters))
	for i, c := range w.clusters {
		out[i] = *c
	}
	return out
}

// ScalingCounts returns how many resumes, scale-ups, scale-downs and idle
// evictions the pool has performed.
func (w *Warehouse) ScalingCounts() (resumes, scaleUps, scaleDowns, evictions int) {
	return w.resumes, w.scaleUps, w.scaleDowns, w.evictions
}

func (w *Warehouse) shouldScaleUp(now float64) bool {
	n := len(w.clusters)
	if n >= w.cfg.MaxClusters {
		return false
	}
	if n == 0 {
		return true
	}
	if now-w.lastUp < w.cfg.ScaleUpDelaySeconds {
		return false
	}
	return w.Utilization() >= w.cfg.ScaleUpThreshold
}

func (w *Warehouse) shouldScaleDown(now float64) bool {
	if len(w.clusters) <= w.cfg.MinClusters {
		return false
	}
	if now-w.lastDown < w.cfg.ScaleDownDelaySeconds {
		return false
	}
	return w.Utilization() <= w.cfg.ScaleDownThreshold
}

// Admit places one query. Scale-up is evaluated first; then the live cluster
// with spare capacity and the fewest active queries (first found on ties)
// takes the query. Returns ok=false when every cluster is full; the caller
// queues the query.
func (w *Warehouse) Admit(now float64) (clusterID int, ok bool) {
	if w.shouldScaleUp(now) {
		action := trace.ActionScaleUp
		if len(w.clusters) == 0 {
			action = trace.ActionResume
			w.resumes++
		} else {
			w.scaleUps++
		}
		util := w.Utilization()
		c := w.addCluster(now)
		w.lastUp = now
		logrus.Debugf("[t=%.0f] %s: cluster %d started (%d live, utilization %.2f)",
			now, action, c.ID, len(w.clusters), util)
		w.recordScaling(now, action, c.ID, util)
	}

	var best *ClusterState
	for _, c := range w.clusters {
		if !c.acceptsWork(now, w.concurrency) {
			continue
		}
		if best == nil || c.ActiveQueries < best.ActiveQueries {
			best = c
		}
	}
	if best == nil {
		return 0, false
	}
	best.ActiveQueries++
	best.retained = false
	return best.ID, true
}

// Release frees one slot on the cluster and restarts its idle timer.
// Unknown IDs are ignored.
func (w *Warehouse) Release(clusterID int, now float64) {
	c := w.find(clusterID)
	if c == nil {
		return
	}
	c.ActiveQueries = max(0, c.ActiveQueries-1)
	c.LastQueryEnd = now
	c.HasCompleted = true
}

// Tick runs once per step: evict idle-expired clusters, then evaluate scale-down.
func (w *Warehouse) Tick(now float64) {
	w.evictIdle(now)
	if w.shouldScaleDown(now) {
		w.scaleDownOne(now)
	}
}

// evictIdle removes expired clusters. When that would leave fewer than
// MinClusters, the least overdue expired clusters are retained, clusters
// with a passed shutdown timestamp last.
func (w *Warehouse) evictIdle(now float64) {
	timeout := w.cfg.IdleShutdownSeconds
	live := make([]*ClusterState, 0, len(w.clusters))
	var expired []*ClusterState
	for _, c := range w.clusters {
		if c.IsActive(now, timeout) {
			live = append(live, c)
		} else {
			expired = append(expired, c)
		}
	}
	if len(expired) == 0 {
		return
	}

	if need := w.cfg.MinClusters - len(live); need > 0 {
		sort.SliceStable(expired, func(i, j int) bool {
			a, b := expired[i], expired[j]
			if a.ShuttingDown != b.ShuttingDown {
				return !a.ShuttingDown
			}
			return a.idleSince() > b.idleSince()
		})
		need = min(need, len(expired))
		for _, c := range expired[:need] {
			c.ShuttingDown = false
			if !c.retained {
				c.retained = true
				w.recordScaling(now, trace.ActionRetain, c.ID, w.Utilization())
			}
		}
		live = append(live, expired[:need]...)
		expired = expired[need:]
		sort.Slice(live, func(i, j int) bool { return live[i].ID < live[j].ID })
	}

	w.clusters = live
	for _, c := range expired {
		w.evictions++
		logrus.Debugf("[t=%.0f] evict: cluster %d idle since %.0f (%d live)", now, c.ID, c.idleSince(), len(w.clusters))
		w.recordScaling(now, trace.ActionEvict, c.ID, w.Utilization())
	}
}

// scaleDownOne schedules shutdown of the least busy cluster, only if it is idle.
// Clusters already shutting down are not candidates.
func (w *Warehouse) scaleDownOne(now float64) {
	var least *ClusterState
	for _, c := range w.clusters {
		if c.ShuttingDown {
			continue
		}
		if least == nil || c.ActiveQueries < least.ActiveQueries {
			least = c
		}
	}
	if least == nil || least.ActiveQueries != 0 {
		return
	}
	least.ShuttingDown = true
	least.ShutdownAt = now
	w.lastDown = now
	w.scaleDowns++
	logrus.Debugf("[t=%.0f] scale_down: cluster %d scheduled for shutdown (%d live)", now, least.ID, len(w.clusters))
	w.recordScaling(now, trace.ActionScaleDown, least.ID, w.Utilization())
}

// Usage returns billable units for dt seconds at the current live count.
func (w *Warehouse) Usage(dt float64) float64 {
	return w.unitsPerHour * float64(len(w.clusters)) * dt / 3600
}

// Snapshot builds a WarehouseState for now without recording it.
func (w *Warehouse) Snapshot(now float64, queued int, cumulativeUnits, aiUnits float64) WarehouseState {
	return WarehouseState{
		Time:            now,
		Clusters:        len(w.clusters),
		ActiveQueries:   w.ActiveQueries(),
		QueuedQueries:   queued,
		Capacity:        w.Capacity(),
		CumulativeUnits: cumulativeUnits,
		AIUnits:         aiUnits,
	}
}

// RecordState appends a snapshot to the history.
func (w *Warehouse) RecordState(now float64, queued int, cumulativeUnits, aiUnits float64) {
	w.history = append(w.history, w.Snapshot(now, queued, cumulativeUnits, aiUnits))
}

// History returns the recorded snapshots in time order.
func (w *Warehouse) History() []WarehouseState {
	return w.history
}

func (w *Warehouse) recordScaling(now float64, action trace.ScalingAction, id int, util float64) {
	if w.trace == nil {
		return
	}
	w.trace.RecordScaling(trace.ScalingRecord{
		Clock:         now,
		Action:        action,
		ClusterID:     id,
		ClustersNow:   len(w.clusters),
		Utilization:   util,
		ActiveQueries: w.ActiveQueries(),
	})
}
