// Package mode defines transition policies between targets.
package mode

import "fmt"

// Tolerance around the required pedal position for the positional modes.
const positionTolerance = 2.0

// Mode decides what the player must do with the pedal before the next
// target is shown. Modes carry no state and are safe to share.
type Mode interface {
	// Name returns the identifier used in config and storage.
	Name() string
	// TransitionTarget returns the pedal position the player must reach
	// to end the transition phase. ok is false when no specific
	// position is required.
	TransitionTarget() (value float64, ok bool)
	// Prompt returns the instruction text shown during the transition.
	Prompt() string
	// Satisfied reports whether the given position meets the
	// transition condition. Boundary values count as satisfied.
	Satisfied(position float64) bool
}

type releaseToZero struct{}

func (releaseToZero) Name() string { return "release" }
func (releaseToZero) TransitionTarget() (float64, bool) { return 0, true }
func (releaseToZero) Prompt() string { return "Release the pedal" }
func (releaseToZero) Satisfied(position float64) bool { return position <= positionTolerance }

type pressToFull struct{}

func (pressToFull) Name() string { return "press" }
func (pressToFull) TransitionTarget() (float64, bool) { return 100, true }
func (pressToFull) Prompt() string { return "Press the pedal fully" }
func (pressToFull) Satisfied(position float64) bool { return position >= 100-positionTolerance }

type continuous struct{}

func (continuous) Name() string { return "continuous" }
func (continuous) TransitionTarget() (float64, bool) { return 0, false }
func (continuous) Prompt() string { return "Get ready" }
func (continuous) Satisfied(float64) bool { return true }

// Shared instances; modes are stateless.
var (
	ReleaseToZero Mode = releaseToZero{}
	PressToFull   Mode = pressToFull{}
	Continuous    Mode = continuous{}
)

// ForName resolves a mode identifier. An unknown name falls back to
// ReleaseToZero and returns an error so the caller can log the
// substitution instead of aborting the session.
func ForName(name string) (Mode, error) {
	switch name {
	case "release", "":
		return ReleaseToZero, nil
	case "press":
		return PressToFull, nil
	case "continuous":
		return Continuous, nil
	default:
		return ReleaseToZero, fmt.Errorf("unknown mode %q, using release", name)
	}
}
