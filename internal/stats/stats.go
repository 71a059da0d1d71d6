// Package stats contains statistics calculations and reporting.
package stats

import (
	"math"
	"strings"

	"github.com/Scar2201/RPCG/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Summary aggregates stored sessions for reporting.
type Summary struct {
	Sessions       int
	AvgOverall     float64
	BestOverall    int
	AvgReactionMs  float64
	AvgPrecision   float64
	AvgConsistency float64
}

// Summarize reduces session aggregates to a summary. An empty input
// yields a zeroed summary.
func Summarize(sessions []model.SessionAggregate) Summary {
	s := Summary{Sessions: len(sessions)}
	if len(sessions) == 0 {
		return s
	}
	for _, agg := range sessions {
		s.AvgOverall += float64(agg.Overall)
		s.AvgReactionMs += agg.AvgReactionMs
		s.AvgPrecision += agg.AvgPrecision
		s.AvgConsistency += float64(agg.Consistency)
		if agg.Overall > s.BestOverall {
			s.BestOverall = agg.Overall
		}
	}
	count := float64(len(sessions))
	s.AvgOverall /= count
	s.AvgReactionMs /= count
	s.AvgPrecision /= count
	s.AvgConsistency /= count
	return s
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}
