package session

import "time"

// Snapshot is the per-tick view handed to the presentation layer. It
// carries everything needed to render one frame; rendering itself is
// the caller's concern.
type Snapshot struct {
	Phase              Phase
	Prompt             string
	TargetValue        float64
	HasTarget          bool
	Position           float64
	InRange            bool
	TransitionProgress float64
	HoldProgress       float64
	InputLost          bool
	Completed          int
	Total              int
	GameTime           time.Duration
}

// Snapshot builds the presentation view for session time now and the
// most recent input position.
func (e *Engine) Snapshot(now time.Duration, position float64) Snapshot {
	s := Snapshot{
		Phase:     e.phase,
		Position:  position,
		InputLost: e.inputLost,
		Completed: len(e.records),
		Total:     e.cfg.Targets,
		GameTime:  e.gameTime,
	}
	switch e.phase {
	case PhaseTransitioning:
		s.Prompt = e.mode.Prompt()
		if e.revealPending {
			// Reveal is scheduled; the condition part is done.
			s.TransitionProgress = 1
		} else if e.conditionMet {
			s.TransitionProgress = progress(now-e.conditionMetAt, e.transitionDelay())
		}
	case PhaseHolding:
		s.TargetValue = e.targetValue
		s.HasTarget = true
		s.InRange = e.inRange
		s.TransitionProgress = 1
		if e.inRange {
			s.HoldProgress = progress(now-e.rangeEnteredAt, e.holdDuration())
		}
	case PhaseComplete:
		s.TransitionProgress = 1
		s.HoldProgress = 1
	}
	return s
}

func progress(elapsed, total time.Duration) float64 {
	if total <= 0 {
		return 1
	}
	p := float64(elapsed) / float64(total)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
