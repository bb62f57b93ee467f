package sim

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentile_LinearInterpolation(t *testing.T) {
	sorted := []float64{1, 2, 3, 4, 5}
	tests := []struct {
		p    float64
		want float64
	}{
		{0, 1},
		{50, 3},
		{25, 2},
		{90, 4.6},
		{100, 5},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Percentile(sorted, tt.p), 1e-12, "p%v", tt.p)
	}
}

func TestPercentile_EmptyAndSingle(t *testing.T) {
	assert.Equal(t, 0.0, Percentile(nil, 95))
	assert.Equal(t, 7.0, Percentile([]float64{7}, 99))
}

func TestNewDistribution_Empty_ReturnsZero(t *testing.T) {
	// GIVEN no samples (degenerate run)
	// WHEN a distribution is built
	d := NewDistribution(nil)

	// THEN every field is zero rather than NaN or a panic
	assert.Equal(t, Distribution{}, d)
}

func TestNewDistribution_DoesNotMutateInput(t *testing.T) {
	values := []float64{3, 1, 2}
	_ = NewDistribution(values)
	assert.Equal(t, []float64{3, 1, 2}, values)
}

func TestNewDistribution_Monotonic(t *testing.T) {
	// GIVEN an arbitrary non-negative sample
	rng := rand.New(rand.NewPCG(3, 4))
	values := make([]float64, 500)
	for i := range values {
		values[i] = rng.ExpFloat64() * 10
	}

	// WHEN summarized
	d := NewDistribution(values)

	// THEN p50 <= p95 <= p99 <= max and mean lies within [0, max]
	assert.LessOrEqual(t, d.P50, d.P95)
	assert.LessOrEqual(t, d.P95, d.P99)
	assert.LessOrEqual(t, d.P99, d.Max)
	assert.GreaterOrEqual(t, d.Mean, 0.0)
	assert.LessOrEqual(t, d.Mean, d.Max)
	assert.Equal(t, 500, d.Count)
}

func TestMeanMax_EmptyGuard(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 0.0, Max(nil))
	assert.Equal(t, 2.0, Mean([]float64{1, 3}))
	assert.Equal(t, 3.0, Max([]float64{1, 3}))
}
