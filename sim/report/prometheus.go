package report

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/inference-sim/warehouse-sim/sim/cluster"
)

// runGauges are the headline metrics exported for one run.
type runGauges struct {
	totalUnits   prometheus.Gauge
	totalCost    prometheus.Gauge
	monthlyCost  prometheus.Gauge
	queries      *prometheus.GaugeVec
	waitSeconds  *prometheus.GaugeVec
	meanClusters prometheus.Gauge
	maxClusters  prometheus.Gauge
	utilization  prometheus.Gauge
	queueDepth   prometheus.Gauge
	truncated    prometheus.Gauge
}

func newRunGauges(size string) runGauges {
	labels := prometheus.Labels{"size": size}
	return runGauges{
		totalUnits: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "warehouse_total_units",
			Help:        "Billable units consumed over the run (compute plus AI function)",
			ConstLabels: labels,
		}),
		totalCost: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "warehouse_total_cost_dollars",
			Help:        "Total cost of the run in dollars",
			ConstLabels: labels,
		}),
		monthlyCost: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "warehouse_monthly_cost_dollars",
			Help:        "Projected 30-day cost in dollars",
			ConstLabels: labels,
		}),
		queries: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "warehouse_queries",
			Help:        "Queries admitted during the run, by class",
			ConstLabels: labels,
		}, []string{"class"}),
		waitSeconds: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "warehouse_wait_seconds",
			Help:        "Queue wait statistics, by class and statistic",
			ConstLabels: labels,
		}, []string{"class", "stat"}),
		meanClusters: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "warehouse_mean_clusters",
			Help:        "Mean live cluster count over snapshots",
			ConstLabels: labels,
		}),
		maxClusters: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "warehouse_max_clusters",
			Help:        "Peak live cluster count",
			ConstLabels: labels,
		}),
		utilization: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "warehouse_mean_utilization_ratio",
			Help:        "Mean active/capacity ratio over snapshots with live capacity",
			ConstLabels: labels,
		}),
		queueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "warehouse_max_queue_depth",
			Help:        "Largest wait-queue depth observed in a snapshot",
			ConstLabels: labels,
		}),
		truncated: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "warehouse_run_truncated",
			Help:        "1 if the run hit the time ceiling with work outstanding",
			ConstLabels: labels,
		}),
	}
}

func (g runGauges) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		g.totalUnits, g.totalCost, g.monthlyCost, g.queries, g.waitSeconds,
		g.meanClusters, g.maxClusters, g.utilization, g.queueDepth, g.truncated,
	}
}

func (g runGauges) update(m *cluster.Metrics) {
	g.totalUnits.Set(m.TotalUnits)
	g.totalCost.Set(m.TotalCost)
	g.monthlyCost.Set(m.MonthlyCost)
	g.queries.WithLabelValues("scheduled").Set(float64(m.ScheduledQueries))
	g.queries.WithLabelValues("interactive").Set(float64(m.InteractiveQueries))
	g.queries.WithLabelValues("ai_function").Set(float64(m.AIQueries))
	for class, d := range map[string]struct{ mean, p50, p95, p99 float64 }{
		"all":         {m.Wait.Mean, m.Wait.P50, m.Wait.P95, m.Wait.P99},
		"interactive": {m.InteractiveWait.Mean, m.InteractiveWait.P50, m.InteractiveWait.P95, m.InteractiveWait.P99},
		"scheduled":   {m.ScheduledWait.Mean, m.ScheduledWait.P50, m.ScheduledWait.P95, m.ScheduledWait.P99},
	} {
		g.waitSeconds.WithLabelValues(class, "mean").Set(d.mean)
		g.waitSeconds.WithLabelValues(class, "p50").Set(d.p50)
		g.waitSeconds.WithLabelValues(class, "p95").Set(d.p95)
		g.waitSeconds.WithLabelValues(class, "p99").Set(d.p99)
	}
	g.meanClusters.Set(m.MeanClusters)
	g.maxClusters.Set(float64(m.MaxClusters))
	g.utilization.Set(m.MeanUtilization)
	g.queueDepth.Set(float64(m.MaxQueueDepth))
	if m.Truncated {
		g.truncated.Set(1)
	} else {
		g.truncated.Set(0)
	}
}

// WritePrometheusTextfile writes the run's headline gauges in the text
// exposition format, suitable for a node_exporter textfile collector.
// Each call uses its own registry.
func WritePrometheusTextfile(path string, m *cluster.Metrics) error {
	reg := prometheus.NewRegistry()
	g := newRunGauges(m.Size)
	if err := registerAll(reg, g.collectors()); err != nil {
		return err
	}
	g.update(m)
	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return fmt.Errorf("writing prometheus textfile: %w", err)
	}
	return nil
}

func registerAll(reg *prometheus.Registry, cs []prometheus.Collector) error {
	for _, c := range cs {
		if err := reg.Register(c); err != nil {
			return fmt.Errorf("registering collector: %w", err)
		}
	}
	return nil
}
