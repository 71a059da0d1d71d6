// Package telemetry records timestamped input samples in a ring buffer.
package telemetry

import (
	"math"
	"time"

	"github.com/Scar2201/RPCG/internal/model"
)

// markTargetDepth bounds how many recent samples MarkTarget annotates.
// The sequencer may decide a new target between two sampling instants,
// so the annotation is applied retroactively to the freshest samples.
const markTargetDepth = 5

// Stats holds running statistics over every recorded position.
type Stats struct {
	Min   float64
	Max   float64
	Mean  float64
	Count int
}

// Recorder keeps the most recent samples in a fixed-capacity FIFO
// buffer and maintains running position statistics incrementally.
type Recorder struct {
	buf     []model.Sample
	head    int
	size    int
	running bool
	stats   Stats
}

// NewRecorder returns a recorder holding at most capacity samples.
func NewRecorder(capacity int) *Recorder {
	if capacity < 1 {
		capacity = 1
	}
	return &Recorder{
		buf:   make([]model.Sample, capacity),
		stats: Stats{Min: math.Inf(1), Max: math.Inf(-1)},
	}
}

// Start enables sampling.
func (r *Recorder) Start() {
	r.running = true
}

// Stop disables sampling. Buffered samples remain readable.
func (r *Recorder) Stop() {
	r.running = false
}

// Tick records one sample. The oldest sample is evicted once the
// buffer is full. Ticks while stopped are dropped.
func (r *Recorder) Tick(t time.Duration, position float64, inTransition bool) {
	if !r.running {
		return
	}
	s := model.Sample{
		Time:         t,
		Position:     position,
		InTransition: inTransition,
	}
	idx := (r.head + r.size) % len(r.buf)
	if r.size == len(r.buf) {
		r.head = (r.head + 1) % len(r.buf)
		idx = (r.head + r.size - 1) % len(r.buf)
	} else {
		r.size++
	}
	r.buf[idx] = s

	r.stats.Count++
	if position < r.stats.Min {
		r.stats.Min = position
	}
	if position > r.stats.Max {
		r.stats.Max = position
	}
	// Running mean, never recomputed from the buffer.
	r.stats.Mean += (position - r.stats.Mean) / float64(r.stats.Count)
}

// MarkTarget annotates up to the markTargetDepth most recent samples
// with the active target value.
func (r *Recorder) MarkTarget(value float64) {
	n := r.size
	if n > markTargetDepth {
		n = markTargetDepth
	}
	for i := 0; i < n; i++ {
		idx := (r.head + r.size - 1 - i) % len(r.buf)
		r.buf[idx].TargetValue = value
		r.buf[idx].HasTarget = true
	}
}

// MarkInRange flags the latest sample as inside the target band.
func (r *Recorder) MarkInRange() {
	if r.size == 0 {
		return
	}
	idx := (r.head + r.size - 1) % len(r.buf)
	r.buf[idx].InTarget = true
}

// Len returns the number of buffered samples.
func (r *Recorder) Len() int {
	return r.size
}

// Samples returns all buffered samples in chronological order.
func (r *Recorder) Samples() []model.Sample {
	out := make([]model.Sample, 0, r.size)
	for i := 0; i < r.size; i++ {
		out = append(out, r.buf[(r.head+i)%len(r.buf)])
	}
	return out
}

// Recent returns the buffered samples newer than now-window, in
// chronological order. The slice is computed fresh on every call.
func (r *Recorder) Recent(now, window time.Duration) []model.Sample {
	cutoff := now - window
	out := make([]model.Sample, 0, r.size)
	for i := 0; i < r.size; i++ {
		s := r.buf[(r.head+i)%len(r.buf)]
		if s.Time >= cutoff {
			out = append(out, s)
		}
	}
	return out
}

// Statistics returns the running min/max/mean over all recorded
// samples, including ones already evicted from the buffer.
func (r *Recorder) Statistics() Stats {
	if r.stats.Count == 0 {
		return Stats{}
	}
	return r.stats
}
