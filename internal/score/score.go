// Package score reduces target records and samples into session scores.
package score

import (
	"math"
	"time"

	"github.com/Scar2201/RPCG/internal/model"
)

// The composite score mixes four components; weights and the
// consistency decay constant are heuristic tunables, not derived.
const (
	weightTime        = 0.4
	weightReaction    = 0.3
	weightPrecision   = 0.2
	weightConsistency = 0.1
	consistencyDecay  = 5.0
)

// Aggregate computes the final scores for a completed session from its
// target records, the recorder's buffered samples, and the elapsed and
// game-time clocks. Degenerate inputs (no records, no samples) yield
// zeroed scores rather than NaN or a panic.
func Aggregate(records []model.TargetRecord, samples []model.Sample, elapsed, gameTime time.Duration) model.Scores {
	s := model.Scores{
		ElapsedMs:  elapsed.Milliseconds(),
		GameTimeMs: gameTime.Milliseconds(),
	}
	if len(records) == 0 {
		return s
	}

	reactions := make([]float64, len(records))
	for i, r := range records {
		reactions[i] = r.ReactionMs
	}
	s.AvgReactionMs = mean(reactions)
	s.MinReactionMs, s.MaxReactionMs = minMax(reactions)

	precisions := FillAccuracy(records, samples)
	s.AvgPrecision = mean(precisions)

	s.Consistency = Consistency(reactions, precisions)
	seconds := float64(gameTime) / float64(time.Second)
	s.Overall = Overall(seconds/float64(len(records)), s.AvgReactionMs/1000, s.AvgPrecision, s.Consistency)
	return s
}

// FillAccuracy computes each record's accuracy (mean absolute
// deviation from its target over the in-band samples) and writes it
// back into the record. Records whose samples were evicted from the
// buffer keep whatever accuracy they already carry.
func FillAccuracy(records []model.TargetRecord, samples []model.Sample) []float64 {
	type bucket struct {
		sum   float64
		count int
	}
	buckets := map[float64]*bucket{}
	for _, sm := range samples {
		if !sm.InTarget || !sm.HasTarget {
			continue
		}
		b := buckets[sm.TargetValue]
		if b == nil {
			b = &bucket{}
			buckets[sm.TargetValue] = b
		}
		b.sum += math.Abs(sm.Position - sm.TargetValue)
		b.count++
	}
	out := make([]float64, len(records))
	for i := range records {
		if b := buckets[records[i].TargetValue]; b != nil && b.count > 0 {
			records[i].Accuracy = b.sum / float64(b.count)
		}
		out[i] = records[i].Accuracy
	}
	return out
}

// Consistency maps the combined coefficient of variation of reaction
// times and precision values to a 0-100 score. Zero variance scores
// 100; the exponential decay penalizes variance sharply without going
// negative.
func Consistency(reactions, precisions []float64) int {
	cvs := make([]float64, 0, 2)
	if cv, ok := coefficientOfVariation(reactions); ok {
		cvs = append(cvs, cv)
	}
	if cv, ok := coefficientOfVariation(precisions); ok {
		cvs = append(cvs, cv)
	}
	if len(cvs) == 0 {
		return 100
	}
	combined := mean(cvs)
	score := 100 * math.Exp(-consistencyDecay*combined)
	return int(math.Round(clamp(score, 0, 100)))
}

// Overall combines time-per-target, reaction, precision, and
// consistency into a weighted 0-100 score.
func Overall(secondsPerTarget, avgReactionSeconds, avgPrecisionPct float64, consistency int) int {
	timeScore := math.Max(0, 100-10*secondsPerTarget)
	reactionScore := math.Max(0, 100-100*avgReactionSeconds)
	precisionScore := math.Max(0, 100-2*avgPrecisionPct)
	total := weightTime*timeScore +
		weightReaction*reactionScore +
		weightPrecision*precisionScore +
		weightConsistency*float64(consistency)
	return int(math.Round(clamp(total, 0, 100)))
}

func coefficientOfVariation(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	m := mean(values)
	if m <= 0 {
		return 0, false
	}
	var sq float64
	for _, v := range values {
		d := v - m
		sq += d * d
	}
	sd := math.Sqrt(sq / float64(len(values)))
	return sd / m, true
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func minMax(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
