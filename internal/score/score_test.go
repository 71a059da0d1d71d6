package score

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/Scar2201/RPCG/internal/model"
)

func TestConsistencyBounds(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		n := 1 + rnd.Intn(20)
		reactions := make([]float64, n)
		precisions := make([]float64, n)
		for j := range reactions {
			reactions[j] = rnd.Float64() * 5000
			precisions[j] = rnd.Float64() * 10
		}
		got := Consistency(reactions, precisions)
		if got < 0 || got > 100 {
			t.Fatalf("consistency %d out of [0,100] for %v / %v", got, reactions, precisions)
		}
	}
}

func TestConsistencyZeroVariance(t *testing.T) {
	reactions := []float64{500, 500, 500}
	precisions := []float64{2, 2, 2}
	if got := Consistency(reactions, precisions); got != 100 {
		t.Fatalf("zero variance should score 100, got %d", got)
	}
}

func TestConsistencySingleElement(t *testing.T) {
	if got := Consistency([]float64{800}, []float64{3}); got != 100 {
		t.Fatalf("single-element arrays have zero variance, got %d", got)
	}
}

func TestConsistencyEmpty(t *testing.T) {
	if got := Consistency(nil, nil); got != 100 {
		t.Fatalf("empty input should default to 100, got %d", got)
	}
}

func TestOverallBounds(t *testing.T) {
	cases := []struct {
		name                               string
		seconds, reactionSec, precisionPct float64
		consistency                        int
	}{
		{"extreme slowness", 1000, 0.2, 2, 80},
		{"extreme reaction", 3, 60, 2, 80},
		{"extreme imprecision", 3, 0.2, 500, 80},
		{"perfect", 0, 0, 0, 100},
		{"everything extreme", 1e9, 1e9, 1e9, 0},
	}
	for _, tc := range cases {
		got := Overall(tc.seconds, tc.reactionSec, tc.precisionPct, tc.consistency)
		if got < 0 || got > 100 {
			t.Errorf("%s: overall %d out of [0,100]", tc.name, got)
		}
	}
	if got := Overall(1000, 0.2, 2, 80); got != int(math.Round(0.3*80+0.2*96+0.1*80)) {
		t.Errorf("time score did not clamp to 0: got %d", got)
	}
}

func TestOverallWeights(t *testing.T) {
	// 2s/target, 300ms reaction, 1.5% deviation, consistency 90:
	// 0.4*80 + 0.3*70 + 0.2*97 + 0.1*90 = 81.4 -> 81.
	if got := Overall(2, 0.3, 1.5, 90); got != 81 {
		t.Fatalf("overall = %d, want 81", got)
	}
}

func TestAggregateDegenerate(t *testing.T) {
	s := Aggregate(nil, nil, 5*time.Second, 2*time.Second)
	if s.Overall != 0 || s.Consistency != 0 || s.AvgReactionMs != 0 || s.AvgPrecision != 0 {
		t.Fatalf("expected zeroed scores for no records, got %+v", s)
	}
	if s.ElapsedMs != 5000 || s.GameTimeMs != 2000 {
		t.Fatalf("elapsed/game time not carried: %+v", s)
	}
}

func TestAggregateFromSamples(t *testing.T) {
	records := []model.TargetRecord{
		{TargetValue: 50, ReactionMs: 400, CompletionMs: 1400},
		{TargetValue: 70, ReactionMs: 600, CompletionMs: 1600},
	}
	samples := []model.Sample{
		{Position: 51, InTarget: true, HasTarget: true, TargetValue: 50},
		{Position: 49, InTarget: true, HasTarget: true, TargetValue: 50},
		{Position: 72, InTarget: true, HasTarget: true, TargetValue: 70},
		{Position: 70, InTarget: true, HasTarget: true, TargetValue: 70},
		// Out-of-band and transition samples are ignored.
		{Position: 30, InTarget: false, HasTarget: true, TargetValue: 70},
		{Position: 10, InTarget: false, HasTarget: false},
	}
	s := Aggregate(records, samples, 10*time.Second, 4*time.Second)
	if s.AvgReactionMs != 500 {
		t.Fatalf("avg reaction %v, want 500", s.AvgReactionMs)
	}
	if s.MinReactionMs != 400 || s.MaxReactionMs != 600 {
		t.Fatalf("min/max reaction %v/%v, want 400/600", s.MinReactionMs, s.MaxReactionMs)
	}
	// Target 50: deviations 1,1 -> 1.0. Target 70: 2,0 -> 1.0.
	if math.Abs(s.AvgPrecision-1.0) > 1e-9 {
		t.Fatalf("avg precision %v, want 1.0", s.AvgPrecision)
	}
	if s.Overall < 0 || s.Overall > 100 {
		t.Fatalf("overall %d out of range", s.Overall)
	}
}

func TestFillAccuracyFallsBackToRecord(t *testing.T) {
	records := []model.TargetRecord{{TargetValue: 40, Accuracy: 2.5}}
	precisions := FillAccuracy(records, nil) // samples evicted
	if precisions[0] != 2.5 {
		t.Fatalf("expected fallback to record accuracy, got %v", precisions[0])
	}
	if records[0].Accuracy != 2.5 {
		t.Fatalf("record accuracy mutated: %v", records[0].Accuracy)
	}
}
