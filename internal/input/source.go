// Package input provides pedal position sources.
package input

// Source produces a normalized pedal position in [0,100]. An error
// means the input is currently unavailable; callers must treat the
// position as undefined and make no timing progress.
type Source interface {
	Position() (float64, error)
}

func clampPosition(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
