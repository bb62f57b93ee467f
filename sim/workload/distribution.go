package workload

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// DurationSampler generates service durations in seconds at the baseline tier.
type DurationSampler interface {
	// Sample returns a positive duration.
	Sample() float64
}

// ClampedGaussianSampler draws a Gaussian and clamps it into [min, max].
type ClampedGaussianSampler struct {
	dist     distuv.Normal
	min, max float64
}

// NewClampedGaussianSampler returns a sampler drawing from src.
func NewClampedGaussianSampler(mean, stdDev, lo, hi float64, src rand.Source) *ClampedGaussianSampler {
	return &ClampedGaussianSampler{
		dist: distuv.Normal{Mu: mean, Sigma: stdDev, Src: src},
		min:  lo,
		max:  hi,
	}
}

func (s *ClampedGaussianSampler) Sample() float64 {
	return math.Min(s.max, math.Max(s.min, s.dist.Rand()))
}

// FlooredGaussianSampler draws a Gaussian floored at a small positive epsilon.
type FlooredGaussianSampler struct {
	dist  distuv.Normal
	floor float64
}

// NewFlooredGaussianSampler returns a sampler drawing from src.
func NewFlooredGaussianSampler(mean, stdDev, floor float64, src rand.Source) *FlooredGaussianSampler {
	return &FlooredGaussianSampler{
		dist:  distuv.Normal{Mu: mean, Sigma: stdDev, Src: src},
		floor: floor,
	}
}

func (s *FlooredGaussianSampler) Sample() float64 {
	return math.Max(s.floor, s.dist.Rand())
}

// CacheMixSampler picks the hit or miss sampler with a Bernoulli draw per query.
type CacheMixSampler struct {
	hit     distuv.Bernoulli
	onHit   DurationSampler
	onMiss  DurationSampler
	lastHit bool
}

// NewCacheMixSampler returns a sampler that hits with probability hitRate.
func NewCacheMixSampler(hitRate float64, onHit, onMiss DurationSampler, src rand.Source) *CacheMixSampler {
	return &CacheMixSampler{
		hit:    distuv.Bernoulli{P: hitRate, Src: src},
		onHit:  onHit,
		onMiss: onMiss,
	}
}

func (s *CacheMixSampler) Sample() float64 {
	s.lastHit = s.hit.Rand() == 1
	if s.lastHit {
		return s.onHit.Sample()
	}
	return s.onMiss.Sample()
}

// LastWasHit reports whether the most recent Sample was a cache hit.
func (s *CacheMixSampler) LastWasHit() bool {
	return s.lastHit
}
