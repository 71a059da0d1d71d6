package stats

import (
	"math"
	"testing"

	"github.com/Scar2201/RPCG/internal/model"
)

func TestSummarize(t *testing.T) {
	sessions := []model.SessionAggregate{
		{Overall: 60, AvgReactionMs: 400, AvgPrecision: 1.0, Consistency: 80},
		{Overall: 80, AvgReactionMs: 600, AvgPrecision: 3.0, Consistency: 90},
	}
	s := Summarize(sessions)
	if s.Sessions != 2 {
		t.Fatalf("expected 2 sessions, got %d", s.Sessions)
	}
	if math.Abs(s.AvgOverall-70) > 1e-9 {
		t.Fatalf("expected avg overall 70, got %f", s.AvgOverall)
	}
	if s.BestOverall != 80 {
		t.Fatalf("expected best overall 80, got %d", s.BestOverall)
	}
	if math.Abs(s.AvgReactionMs-500) > 1e-9 {
		t.Fatalf("expected avg reaction 500, got %f", s.AvgReactionMs)
	}
	if math.Abs(s.AvgPrecision-2.0) > 1e-9 {
		t.Fatalf("expected avg precision 2.0, got %f", s.AvgPrecision)
	}
	if math.Abs(s.AvgConsistency-85) > 1e-9 {
		t.Fatalf("expected avg consistency 85, got %f", s.AvgConsistency)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.Sessions != 0 || s.AvgOverall != 0 || s.BestOverall != 0 {
		t.Fatalf("expected zeroed summary, got %+v", s)
	}
}

func TestMovingAverage(t *testing.T) {
	values := []float64{2, 4, 6, 8}
	out := MovingAverage(values, 2)
	expected := []float64{2, 3, 5, 7}
	for i := range expected {
		if math.Abs(out[i]-expected[i]) > 1e-9 {
			t.Fatalf("index %d: expected %f, got %f", i, expected[i], out[i])
		}
	}
}

func TestMovingAverageWindowOne(t *testing.T) {
	values := []float64{1, 2, 3}
	out := MovingAverage(values, 1)
	for i := range values {
		if out[i] != values[i] {
			t.Fatalf("window 1 should copy values, got %v", out)
		}
	}
}

func TestSparklineFlat(t *testing.T) {
	out := Sparkline([]float64{5, 5, 5})
	if len(out) != 3 {
		t.Fatalf("expected 3 chars, got %q", out)
	}
	if out[0] != out[1] || out[1] != out[2] {
		t.Fatalf("flat series should produce uniform sparkline, got %q", out)
	}
}

func TestSparklineRange(t *testing.T) {
	out := Sparkline([]float64{0, 100})
	if len(out) != 2 {
		t.Fatalf("expected 2 chars, got %q", out)
	}
	if out[0] != sparkChars[0] || out[1] != sparkChars[len(sparkChars)-1] {
		t.Fatalf("expected extremes of the character ramp, got %q", out)
	}
}
