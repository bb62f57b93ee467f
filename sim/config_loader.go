package sim

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultTiers maps each warehouse size to its per-cluster rate in units/hour.
func DefaultTiers() map[string]float64 {
	return map[string]float64{
		"2XSmall": 4,
		"XSmall":  6,
		"Small":   12,
		"Medium":  24,
		"Large":   40,
		"XLarge":  80,
		"2XLarge": 144,
		"3XLarge": 272,
		"4XLarge": 528,
	}
}

// DefaultConfig returns the loader defaults: 50 hourly dashboards, 15-30 users
// during business hours, a Medium warehouse scaling between 1 and 10 clusters.
func DefaultConfig() Config {
	return Config{
		Simulation: SimulationConfig{
			Days:                  7,
			TimeStepSeconds:       10,
			Seed:                  42,
			SampleIntervalSeconds: 60,
			GraceSeconds:          3600,
		},
		Scheduled: ScheduledConfig{
			Count:                50,
			RefreshesPerDay:      24,
			MeanRuntimeSeconds:   30,
			RuntimeStdDevSeconds: 10,
			MinRuntimeSeconds:    5,
			MaxRuntimeSeconds:    120,
			OverlapFactor:        0.3,
		},
		Interactive: InteractiveConfig{
			MinConcurrentUsers:     15,
			MaxConcurrentUsers:     30,
			QueriesPerUserPerHour:  6,
			CacheHitRate:           0.4,
			CacheHitMeanSeconds:    2,
			CacheHitStdDevSeconds:  0.5,
			CacheMissMeanSeconds:   8,
			CacheMissStdDevSeconds: 3,
			BusinessHoursStart:     8,
			BusinessHoursEnd:       18,
			AIFunctionFraction:     0.1,
			AIUnitsPerCall:         0.05,
		},
		Warehouse: WarehouseConfig{
			Size:                  "Medium",
			Tiers:                 DefaultTiers(),
			TargetConcurrency:     4,
			ScaleUpThreshold:      0.8,
			ScaleDownThreshold:    0.3,
			ScaleUpDelaySeconds:   10,
			ScaleDownDelaySeconds: 60,
			MinClusters:           1,
			MaxClusters:           10,
			IdleShutdownSeconds:   120,
		},
		Pricing: PricingConfig{
			UnitRate:   0.70,
			AIUnitRate: 0.70,
		},
	}
}

// ParseConfig decodes YAML over DefaultConfig and validates the result.
// Unknown keys are rejected. Tier entries merge with the default table.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parsing config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and validates a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
