package simulator

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strconv"
)

// knuth's multiplication method gets slow for large means
const poissonNormalThreshold = 30.0

// Distribution is a categorical distribution over outcomes. Weights are
// normalized once into a cumulative table; each draw is a binary search.
type Distribution[T any] struct {
	outcomes   []T
	cumulative []float64
}

func NewDistribution[T any](outcomes []T, weights []float64) (*Distribution[T], error) {
	if len(outcomes) == 0 || len(outcomes) != len(weights) {
		return nil, fmt.Errorf("distribution needs one weight per outcome, got %d outcomes and %d weights", len(outcomes), len(weights))
	}
	total := 0.0
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("invalid weight %v at index %d", w, i)
		}
		total += w
	}
	if total <= 0 {
		return nil, fmt.Errorf("distribution weights sum to %v", total)
	}

	cumulative := make([]float64, len(weights))
	running := 0.0
	for i, w := range weights {
		running += w / total
		cumulative[i] = running
	}
	cumulative[len(cumulative)-1] = 1.0

	return &Distribution[T]{
		outcomes:   append([]T(nil), outcomes...),
		cumulative: cumulative,
	}, nil
}

// NewStringDistribution builds a distribution from a weight map. Keys are
// sorted first so draws do not depend on map iteration order.
func NewStringDistribution(weights map[string]float64) (*Distribution[string], error) {
	keys := make([]string, 0, len(weights))
	for k := range weights {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	ws := make([]float64, len(keys))
	for i, k := range keys {
		ws[i] = weights[k]
	}
	return NewDistribution(keys, ws)
}

// NewIntDistribution parses integer keys ("1", "2", ...) from a weight map.
func NewIntDistribution(weights map[string]float64) (*Distribution[int], error) {
	values := make([]int, 0, len(weights))
	byValue := make(map[int]float64, len(weights))
	for k, w := range weights {
		v, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("invalid integer outcome %q: %w", k, err)
		}
		values = append(values, v)
		byValue[v] += w
	}
	sort.Ints(values)
	ws := make([]float64, len(values))
	for i, v := range values {
		ws[i] = byValue[v]
	}
	return NewDistribution(values, ws)
}

// Sample draws one outcome. Zero-weight outcomes are never returned.
func (d *Distribution[T]) Sample(rng *rand.Rand) T {
	u := rng.Float64()
	i := sort.Search(len(d.cumulative), func(i int) bool { return d.cumulative[i] > u })
	if i == len(d.cumulative) {
		i = len(d.cumulative) - 1
	}
	return d.outcomes[i]
}

func (d *Distribution[T]) Len() int { return len(d.outcomes) }

// samplePoisson draws from Poisson(lambda). Large means use the normal
// approximation with variance lambda.
func samplePoisson(rng *rand.Rand, lambda float64) int {
	if lambda <= 0 {
		return 0
	}
	if lambda >= poissonNormalThreshold {
		return clampCount(math.Round(lambda + math.Sqrt(lambda)*rng.NormFloat64()))
	}
	limit := math.Exp(-lambda)
	k := 0
	p := rng.Float64()
	for p > limit {
		k++
		p *= rng.Float64()
	}
	return k
}

// sampleRoundedNormal draws round(N(mean, stddev)) clamped at zero.
func sampleRoundedNormal(rng *rand.Rand, mean, stddev float64) int {
	if mean <= 0 {
		return 0
	}
	return clampCount(math.Round(sampleNormal(rng, mean, stddev)))
}

func sampleNormal(rng *rand.Rand, mean, stddev float64) float64 {
	return mean + stddev*rng.NormFloat64()
}

func sampleUniform(rng *rand.Rand, min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + rng.Float64()*(max-min)
}

func clampCount(v float64) int {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return int(v)
}

// roundMoney rounds to two decimal places.
func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
