package telemetry

import (
	"math"
	"testing"
	"time"
)

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

func TestTickRequiresStart(t *testing.T) {
	r := NewRecorder(4)
	r.Tick(ms(0), 50, false)
	if r.Len() != 0 {
		t.Fatalf("expected ticks before Start to be dropped, got %d samples", r.Len())
	}
	r.Start()
	r.Tick(ms(10), 50, false)
	if r.Len() != 1 {
		t.Fatalf("expected 1 sample, got %d", r.Len())
	}
	r.Stop()
	r.Tick(ms(20), 60, false)
	if r.Len() != 1 {
		t.Fatalf("expected ticks after Stop to be dropped, got %d samples", r.Len())
	}
}

func TestBufferEvictsOldestFirst(t *testing.T) {
	const capacity = 8
	const extra = 5
	r := NewRecorder(capacity)
	r.Start()
	for i := 0; i < capacity+extra; i++ {
		r.Tick(ms(i*10), float64(i), false)
	}
	if r.Len() != capacity {
		t.Fatalf("expected buffer length %d, got %d", capacity, r.Len())
	}
	samples := r.Samples()
	for i, s := range samples {
		want := float64(extra + i)
		if s.Position != want {
			t.Fatalf("sample %d: position %v, want %v (oldest not evicted)", i, s.Position, want)
		}
	}
}

func TestRecentWindow(t *testing.T) {
	r := NewRecorder(16)
	r.Start()
	for i := 0; i < 10; i++ {
		r.Tick(ms(i*100), float64(i), false)
	}
	got := r.Recent(ms(900), ms(250))
	if len(got) != 3 {
		t.Fatalf("expected 3 samples in window, got %d", len(got))
	}
	if got[0].Time != ms(700) || got[2].Time != ms(900) {
		t.Fatalf("unexpected window bounds: %v .. %v", got[0].Time, got[2].Time)
	}
}

func TestRunningStatistics(t *testing.T) {
	r := NewRecorder(2) // smaller than the input so eviction happens
	r.Start()
	values := []float64{10, 20, 30, 40}
	for i, v := range values {
		r.Tick(ms(i), v, false)
	}
	st := r.Statistics()
	if st.Count != len(values) {
		t.Fatalf("count = %d, want %d", st.Count, len(values))
	}
	if st.Min != 10 || st.Max != 40 {
		t.Fatalf("min/max = %v/%v, want 10/40", st.Min, st.Max)
	}
	if math.Abs(st.Mean-25) > 1e-9 {
		t.Fatalf("mean = %v, want 25", st.Mean)
	}
}

func TestStatisticsEmpty(t *testing.T) {
	r := NewRecorder(4)
	st := r.Statistics()
	if st.Count != 0 || st.Min != 0 || st.Max != 0 || st.Mean != 0 {
		t.Fatalf("expected zeroed stats for empty recorder, got %+v", st)
	}
}

func TestMarkTargetAnnotatesRecentSamples(t *testing.T) {
	r := NewRecorder(16)
	r.Start()
	for i := 0; i < 8; i++ {
		r.Tick(ms(i), float64(i), true)
	}
	r.MarkTarget(42)
	samples := r.Samples()
	for i, s := range samples {
		annotated := i >= len(samples)-5
		if s.HasTarget != annotated {
			t.Fatalf("sample %d: HasTarget = %v, want %v", i, s.HasTarget, annotated)
		}
		if annotated && s.TargetValue != 42 {
			t.Fatalf("sample %d: TargetValue = %v, want 42", i, s.TargetValue)
		}
	}
}

func TestMarkInRangeAnnotatesLatestOnly(t *testing.T) {
	r := NewRecorder(4)
	r.MarkInRange() // empty buffer must not panic
	r.Start()
	r.Tick(ms(0), 10, false)
	r.Tick(ms(1), 20, false)
	r.MarkInRange()
	samples := r.Samples()
	if samples[0].InTarget {
		t.Fatalf("older sample unexpectedly marked in range")
	}
	if !samples[1].InTarget {
		t.Fatalf("latest sample not marked in range")
	}
}
