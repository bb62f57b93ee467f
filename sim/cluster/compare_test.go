package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/warehouse-sim/sim/internal/testutil"
)

func TestCompareSizes_SharedWorkloadAcrossTiers(t *testing.T) {
	// GIVEN one light-load configuration
	cfg := testutil.LightLoadConfig("Medium", 1)

	// WHEN compared across two tiers
	results, err := CompareSizes(cfg, []string{"XSmall", "Medium"})

	// THEN each tier reports its own rate and speed
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "XSmall", results[0].Size)
	assert.Equal(t, 6.0, results[0].UnitsPerHour)
	assert.InDelta(t, 0.5, results[0].SpeedVsBaseline, 1e-12)
	assert.InDelta(t, 1.0, results[1].SpeedVsBaseline, 1e-12)
	assert.Equal(t, results[0].Metrics.GeneratedQueries, results[1].Metrics.GeneratedQueries)
	assert.NotEmpty(t, results[0].TradeOff)

	// AND the caller's config is untouched
	assert.Equal(t, "Medium", cfg.Warehouse.Size)
}

func TestCompareSizes_UnknownSize(t *testing.T) {
	_, err := CompareSizes(testutil.IdleConfig("Medium", 1), []string{"Medium", "Enormous"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Enormous")
}

func TestCompareSizes_DefaultSweep(t *testing.T) {
	results, err := CompareSizes(testutil.AlwaysOnConfig("Medium", 1, 1), nil)
	require.NoError(t, err)
	require.Len(t, results, len(DefaultComparisonSizes))
	for i := 1; i < len(results); i++ {
		assert.Greater(t, results[i].Metrics.TotalCost, results[i-1].Metrics.TotalCost)
	}
}

func TestClassifyTradeOff(t *testing.T) {
	tests := []struct {
		monthly, p95 float64
		want         string
	}{
		{1000, 12, "cheap but slow"},
		{8000, 1, "fast but expensive"},
		{3000, 3, "good balance"},
		{3000, 7, "consider adjusting"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyTradeOff(tt.monthly, tt.p95))
	}
}
