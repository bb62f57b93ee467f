package report

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/warehouse-sim/sim"
)

// WriteConfigYAML records the effective configuration (defaults and CLI
// overrides applied) next to the results so a run can be reproduced.
func WriteConfigYAML(path string, cfg sim.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
