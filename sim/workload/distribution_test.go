package workload

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampedGaussianSampler_StaysInBounds(t *testing.T) {
	s := NewClampedGaussianSampler(30, 100, 5, 120, rand.New(rand.NewPCG(1, 2)))
	for i := 0; i < 1000; i++ {
		v := s.Sample()
		assert.GreaterOrEqual(t, v, 5.0)
		assert.LessOrEqual(t, v, 120.0)
	}
}

func TestFlooredGaussianSampler_NeverBelowFloor(t *testing.T) {
	s := NewFlooredGaussianSampler(0.2, 5, 0.1, rand.New(rand.NewPCG(1, 2)))
	for i := 0; i < 1000; i++ {
		assert.GreaterOrEqual(t, s.Sample(), 0.1)
	}
}

type constSampler float64

func (c constSampler) Sample() float64 { return float64(c) }

func TestCacheMixSampler_HitRate(t *testing.T) {
	// GIVEN a 40% hit rate between constant hit and miss durations
	s := NewCacheMixSampler(0.4, constSampler(1), constSampler(10), rand.New(rand.NewPCG(5, 6)))

	// WHEN sampled many times
	hits := 0
	const n = 20000
	for i := 0; i < n; i++ {
		v := s.Sample()
		if s.LastWasHit() {
			hits++
			assert.Equal(t, 1.0, v)
		} else {
			assert.Equal(t, 10.0, v)
		}
	}

	// THEN the realized hit fraction approximates the configured rate
	assert.InDelta(t, 0.4, float64(hits)/n, 0.02)
}

func TestCacheMixSampler_Extremes(t *testing.T) {
	src := rand.New(rand.NewPCG(9, 9))
	always := NewCacheMixSampler(1, constSampler(1), constSampler(10), src)
	never := NewCacheMixSampler(0, constSampler(1), constSampler(10), src)
	for i := 0; i < 100; i++ {
		assert.Equal(t, 1.0, always.Sample())
		assert.Equal(t, 10.0, never.Sample())
	}
}
