package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/warehouse-sim/sim"
	"github.com/inference-sim/warehouse-sim/sim/cluster"
)

// WriteAll writes the summary JSON, state history CSV, effective config and
// Prometheus textfile into dir, creating it if needed.
func WriteAll(dir string, cfg sim.Config, m *cluster.Metrics) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	if err := WriteSummaryJSON(filepath.Join(dir, SummaryFileName), m); err != nil {
		return err
	}
	if err := WriteStateHistoryCSV(filepath.Join(dir, HistoryFileName), m.StateHistory, cfg.Pricing); err != nil {
		return err
	}
	if err := WriteConfigYAML(filepath.Join(dir, ConfigFileName), cfg); err != nil {
		return err
	}
	if err := WritePrometheusTextfile(filepath.Join(dir, PrometheusFileName), m); err != nil {
		return err
	}
	logrus.Infof("Saved reports to %s", dir)
	return nil
}
