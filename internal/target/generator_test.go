package target

import (
	"math/rand"
	"testing"
	"time"
)

func TestBandOf(t *testing.T) {
	cases := []struct {
		value float64
		want  int
	}{
		{0, 0},
		{9.99, 0},
		{10, 1},
		{55, 5},
		{99.9, 9},
		{100, 9},
	}
	for _, tc := range cases {
		if got := BandOf(tc.value); got != tc.want {
			t.Errorf("BandOf(%v) = %d, want %d", tc.value, got, tc.want)
		}
	}
}

func TestGenerateStaysInRange(t *testing.T) {
	g := NewWithRand(rand.New(rand.NewSource(1)))
	for i := 0; i < 1000; i++ {
		v := g.Generate(10, 90)
		if v < 10 || v > 90 {
			t.Fatalf("Generate out of range: %v", v)
		}
	}
}

func TestGenerateDegenerateRange(t *testing.T) {
	g := NewWithRand(rand.New(rand.NewSource(1)))
	if v := g.Generate(50, 50); v != 50 {
		t.Fatalf("expected 50 for empty range, got %v", v)
	}
}

func TestGenerateWeightedStaysInRangeAndBiases(t *testing.T) {
	g := NewWithRand(rand.New(rand.NewSource(42)))
	weak := map[int]struct{}{3: {}}
	weakHits := 0
	const n = 5000
	for i := 0; i < n; i++ {
		v := g.GenerateWeighted(10, 90, weak, 8.0)
		if v < 10 || v > 90 {
			t.Fatalf("GenerateWeighted out of range: %v", v)
		}
		if BandOf(v) == 3 {
			weakHits++
		}
	}
	// Band 3 covers 1/8 of [10,90] unweighted; factor 8 should push it
	// well past that share.
	if float64(weakHits)/n < 0.25 {
		t.Fatalf("expected weighting toward band 3, got %d/%d hits", weakHits, n)
	}
}

func TestReflexDelayBounds(t *testing.T) {
	g := NewWithRand(rand.New(rand.NewSource(7)))
	min := 500 * time.Millisecond
	max := 2500 * time.Millisecond
	for i := 0; i < 1000; i++ {
		d := g.ReflexDelay(min, max)
		if d < min || d >= max {
			t.Fatalf("ReflexDelay out of bounds: %v", d)
		}
	}
	if d := g.ReflexDelay(max, max); d != max {
		t.Fatalf("expected min for empty range, got %v", d)
	}
}
