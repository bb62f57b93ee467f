package sim

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// BaselineUnitsPerHour is the per-cluster rate of the reference tier (Medium).
// Query durations are expressed relative to this tier.
const BaselineUnitsPerHour = 24.0

const (
	secondsPerHour = 3600.0
	secondsPerDay  = 86400.0
)

// Config is the full simulation configuration. Sections mirror the YAML layout.
type Config struct {
	Simulation  SimulationConfig  `yaml:"simulation"`
	Scheduled   ScheduledConfig   `yaml:"scheduled"`
	Interactive InteractiveConfig `yaml:"interactive"`
	Warehouse   WarehouseConfig   `yaml:"warehouse"`
	Pricing     PricingConfig     `yaml:"pricing"`
}

// SimulationConfig groups run-length and clock parameters.
type SimulationConfig struct {
	Days                  int     `yaml:"days" validate:"gt=0"`
	TimeStepSeconds       float64 `yaml:"time_step_seconds" validate:"gt=0"`
	Seed                  int64   `yaml:"seed"`
	SampleIntervalSeconds float64 `yaml:"sample_interval_seconds" validate:"gt=0"` // state snapshot cadence
	GraceSeconds          float64 `yaml:"grace_seconds" validate:"gte=0"`           // drain window past the configured duration
}

// ScheduledConfig describes the periodic dashboard-refresh workload.
type ScheduledConfig struct {
	Count                int     `yaml:"count" validate:"gte=0"`
	RefreshesPerDay      int     `yaml:"refreshes_per_day" validate:"gt=0"`
	MeanRuntimeSeconds   float64 `yaml:"mean_runtime_seconds" validate:"gt=0"`
	RuntimeStdDevSeconds float64 `yaml:"runtime_std_dev_seconds" validate:"gte=0"`
	MinRuntimeSeconds    float64 `yaml:"min_runtime_seconds" validate:"gt=0"`
	MaxRuntimeSeconds    float64 `yaml:"max_runtime_seconds" validate:"gtefield=MinRuntimeSeconds"`
	OverlapFactor        float64 `yaml:"overlap_factor" validate:"gte=0,lte=1"` // 0 = evenly spread, 1 = maximal clustering
}

// InteractiveConfig describes the user-driven ad-hoc query workload.
type InteractiveConfig struct {
	MinConcurrentUsers     int     `yaml:"min_concurrent_users" validate:"gte=0"`
	MaxConcurrentUsers     int     `yaml:"max_concurrent_users" validate:"gtefield=MinConcurrentUsers"`
	QueriesPerUserPerHour  float64 `yaml:"queries_per_user_per_hour" validate:"gte=0"`
	CacheHitRate           float64 `yaml:"cache_hit_rate" validate:"gte=0,lte=1"`
	CacheHitMeanSeconds    float64 `yaml:"cache_hit_mean_seconds" validate:"gt=0"`
	CacheHitStdDevSeconds  float64 `yaml:"cache_hit_std_dev_seconds" validate:"gte=0"`
	CacheMissMeanSeconds   float64 `yaml:"cache_miss_mean_seconds" validate:"gt=0"`
	CacheMissStdDevSeconds float64 `yaml:"cache_miss_std_dev_seconds" validate:"gte=0"`
	BusinessHoursStart     int     `yaml:"business_hours_start" validate:"gte=0,lt=24"`
	BusinessHoursEnd       int     `yaml:"business_hours_end" validate:"gtfield=BusinessHoursStart,lte=24"`
	AIFunctionFraction     float64 `yaml:"ai_function_fraction" validate:"gte=0,lte=1"`
	AIUnitsPerCall         float64 `yaml:"ai_units_per_call" validate:"gte=0"`
}

// WarehouseConfig describes the elastic resource pool.
type WarehouseConfig struct {
	Size                  string             `yaml:"size" validate:"required"`
	Tiers                 map[string]float64 `yaml:"tiers" validate:"required,dive,gt=0"` // size -> units/hour/cluster
	TargetConcurrency     int                `yaml:"target_concurrency" validate:"gt=0"`
	ScaleUpThreshold      float64            `yaml:"scale_up_threshold" validate:"gte=0,lte=1"`
	ScaleDownThreshold    float64            `yaml:"scale_down_threshold" validate:"gte=0,ltefield=ScaleUpThreshold"`
	ScaleUpDelaySeconds   float64            `yaml:"scale_up_delay_seconds" validate:"gte=0"`
	ScaleDownDelaySeconds float64            `yaml:"scale_down_delay_seconds" validate:"gte=0"`
	MinClusters           int                `yaml:"min_clusters" validate:"gte=0"`
	MaxClusters           int                `yaml:"max_clusters" validate:"gt=0,gtefield=MinClusters"`
	IdleShutdownSeconds   float64            `yaml:"idle_shutdown_seconds" validate:"gt=0"`
}

// PricingConfig holds per-unit prices.
type PricingConfig struct {
	UnitRate   float64 `yaml:"unit_rate" validate:"gt=0"`    // $ per compute unit
	AIUnitRate float64 `yaml:"ai_unit_rate" validate:"gt=0"` // $ per auxiliary (AI function) unit
}

// TotalSeconds returns the configured simulation window length.
func (c *Config) TotalSeconds() float64 {
	return float64(c.Simulation.Days) * secondsPerDay
}

// NumSteps returns the number of fixed steps covering the configured window.
func (c *Config) NumSteps() int {
	return int(math.Ceil(c.TotalSeconds() / c.Simulation.TimeStepSeconds))
}

// UnitsPerHour returns the per-cluster billing rate of the configured tier.
// Returns 0 for an unknown tier; Validate rejects that case.
func (w *WarehouseConfig) UnitsPerHour() float64 {
	return w.Tiers[w.Size]
}

// PerformanceMultiplier scales every generated duration for the configured tier.
// Values below 1 mean faster than the baseline tier.
func (w *WarehouseConfig) PerformanceMultiplier() float64 {
	return PerformanceMultiplier(w.UnitsPerHour())
}

// EffectiveConcurrency is the per-cluster query capacity after tier scaling, floored at 2.
func (w *WarehouseConfig) EffectiveConcurrency() int {
	factor := math.Sqrt(w.UnitsPerHour() / BaselineUnitsPerHour)
	return max(2, int(float64(w.TargetConcurrency)*factor))
}

// PerformanceMultiplier computes sqrt(baseline / unitsPerHour).
func PerformanceMultiplier(unitsPerHour float64) float64 {
	return math.Sqrt(BaselineUnitsPerHour / unitsPerHour)
}

// TierNames returns the configured tier names ordered by units/hour.
func (w *WarehouseConfig) TierNames() []string {
	names := make([]string, 0, len(w.Tiers))
	for name := range w.Tiers {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if w.Tiers[names[i]] != w.Tiers[names[j]] {
			return w.Tiers[names[i]] < w.Tiers[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}

var configValidator = newConfigValidator()

func newConfigValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report YAML key names rather than Go field names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate checks every section and returns the first violation found.
// Values are never clamped: out-of-range input is an error.
func (c *Config) Validate() error {
	if err := configValidator.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return describeFieldError(verrs[0])
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, ok := c.Warehouse.Tiers[c.Warehouse.Size]; !ok {
		return fmt.Errorf("warehouse.size: unknown size %q; valid: %s",
			c.Warehouse.Size, strings.Join(c.Warehouse.TierNames(), ", "))
	}
	return nil
}

func describeFieldError(fe validator.FieldError) error {
	// Namespace is "Config.section.key"; drop the root type name.
	path := fe.Namespace()
	if i := strings.Index(path, "."); i >= 0 {
		path = path[i+1:]
	}
	rule := fe.Tag()
	switch rule {
	case "gt":
		rule = "greater than " + fe.Param()
	case "gte":
		rule = "at least " + fe.Param()
	case "lt":
		rule = "less than " + fe.Param()
	case "lte":
		rule = "at most " + fe.Param()
	case "gtfield":
		rule = "greater than " + fe.Param()
	case "gtefield":
		rule = "at least " + fe.Param()
	case "ltefield":
		rule = "at most " + fe.Param()
	case "required":
		rule = "set"
	}
	return fmt.Errorf("invalid config: %s must be %s, got %v", path, rule, fe.Value())
}
