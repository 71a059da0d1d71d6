// Package target generates target values and reflex delays.
package target

import (
	"math/rand"
	"time"
)

// Bands splits the 0-100 position range into 10% buckets for the
// weak-band statistics; BandOf maps a target value to its bucket.
const Bands = 10

// BandOf returns the 10% band index for a target value.
func BandOf(value float64) int {
	band := int(value / 10)
	if band < 0 {
		band = 0
	}
	if band >= Bands {
		band = Bands - 1
	}
	return band
}

// Generator produces randomized targets.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithRand(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewWithRand returns a Generator using the provided source, so tests
// can supply deterministic sequences.
func NewWithRand(rnd *rand.Rand) *Generator {
	return &Generator{rnd: rnd}
}

// Generate picks a target uniformly at random from [min, max].
func (g *Generator) Generate(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + g.rnd.Float64()*(max-min)
}

// GenerateWeighted picks a target with a bias toward weak bands: each
// band overlapping [min, max] gets weight 1, weak bands get 1+factor,
// then the target is uniform within the chosen band's overlap.
func (g *Generator) GenerateWeighted(min, max float64, weakBands map[int]struct{}, factor float64) float64 {
	type slice struct {
		lo, hi float64
		weight float64
	}
	slices := make([]slice, 0, Bands)
	total := 0.0
	for band := 0; band < Bands; band++ {
		lo := float64(band) * 10
		hi := lo + 10
		if lo < min {
			lo = min
		}
		if hi > max {
			hi = max
		}
		if hi <= lo {
			continue
		}
		w := 1.0
		if _, ok := weakBands[band]; ok {
			w += factor
		}
		slices = append(slices, slice{lo: lo, hi: hi, weight: w})
		total += w
	}
	if len(slices) == 0 || total <= 0 {
		return g.Generate(min, max)
	}
	r := g.rnd.Float64() * total
	acc := 0.0
	chosen := slices[len(slices)-1]
	for _, s := range slices {
		acc += s.weight
		if r <= acc {
			chosen = s
			break
		}
	}
	return chosen.lo + g.rnd.Float64()*(chosen.hi-chosen.lo)
}

// ReflexDelay draws a delay uniformly from [min, max].
func (g *Generator) ReflexDelay(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(g.rnd.Int63n(int64(max-min)))
}
