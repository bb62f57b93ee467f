package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/inference-sim/warehouse-sim/sim"
	"github.com/inference-sim/warehouse-sim/sim/cluster"
)

var historyColumns = []string{
	"Time (s)",
	"Time (hours)",
	"Clusters",
	"Active Queries",
	"Queued Queries",
	"Capacity",
	"Utilization (%)",
	"Cumulative Units",
	"Cumulative Cost ($)",
}

// WriteStateHistoryCSV writes one row per snapshot. Cumulative cost prices
// compute and auxiliary units separately.
func WriteStateHistoryCSV(path string, history []cluster.WarehouseState, pricing sim.PricingConfig) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating state history file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)

	if err := writer.Write(historyColumns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for i, s := range history {
		if err := writer.Write(historyRow(s, pricing)); err != nil {
			return fmt.Errorf("writing CSV row %d: %w", i, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flushing state history: %w", err)
	}
	return nil
}

func historyRow(s cluster.WarehouseState, pricing sim.PricingConfig) []string {
	cost := s.CumulativeUnits*pricing.UnitRate + s.AIUnits*pricing.AIUnitRate
	return []string{
		formatFloat(s.Time),
		formatFloat(s.Time / 3600),
		strconv.Itoa(s.Clusters),
		strconv.Itoa(s.ActiveQueries),
		strconv.Itoa(s.QueuedQueries),
		strconv.Itoa(s.Capacity),
		formatFloat(s.Utilization() * 100),
		formatFloat(s.CumulativeUnits + s.AIUnits),
		formatFloat(cost),
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
