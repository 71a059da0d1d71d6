// Package session drives the per-target training state machine.
package session

import (
	"fmt"
	"math"
	"time"

	"github.com/Scar2201/RPCG/internal/model"
	"github.com/Scar2201/RPCG/internal/mode"
	"github.com/Scar2201/RPCG/internal/target"
	"github.com/Scar2201/RPCG/internal/telemetry"
)

// Phase is the state of the session machine. Exactly one phase is
// active at a time; phase-local fields are only meaningful inside
// their phase.
type Phase int

const (
	// PhaseTransitioning waits for the mode's transition condition.
	PhaseTransitioning Phase = iota
	// PhaseHolding waits for the player to hold the target band.
	PhaseHolding
	// PhaseComplete is terminal: all targets are done.
	PhaseComplete
)

func (p Phase) String() string {
	switch p {
	case PhaseTransitioning:
		return "transitioning"
	case PhaseHolding:
		return "holding"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Engine runs one session: N targets, each preceded by a transition
// phase and completed by holding the target band. The engine never
// reads a clock; callers pass the current session time into Update, so
// the machine is a function of (state, time, input).
type Engine struct {
	cfg       model.Config
	mode      mode.Mode
	gen       *target.Generator
	rec       *telemetry.Recorder
	weakBands map[int]struct{}

	phase    Phase
	lastTick time.Duration
	gameTime time.Duration

	// Transitioning-local.
	conditionMet   bool
	conditionMetAt time.Duration
	revealPending  bool
	revealAt       time.Duration

	// Holding-local.
	targetValue    float64
	revealedAt     time.Duration
	inRange        bool
	rangeEnteredAt time.Duration

	records   []model.TargetRecord
	inputLost bool
}

// New validates the configuration and builds an engine. The mode,
// generator, and recorder are injected; nil collaborators are rejected
// so the machine can never run with an undefined target source.
func New(cfg model.Config, m mode.Mode, gen *target.Generator, rec *telemetry.Recorder, weakBands map[int]struct{}) (*Engine, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("mode is required")
	}
	if gen == nil {
		return nil, fmt.Errorf("target generator is required")
	}
	if rec == nil {
		return nil, fmt.Errorf("recorder is required")
	}
	return &Engine{
		cfg:       cfg,
		mode:      m,
		gen:       gen,
		rec:       rec,
		weakBands: weakBands,
		phase:     PhaseTransitioning,
	}, nil
}

// ValidateConfig rejects configurations that would produce nonsensical
// timers or target ranges.
func ValidateConfig(cfg model.Config) error {
	if cfg.Targets <= 0 {
		return fmt.Errorf("--targets must be > 0")
	}
	if cfg.Precision <= 0 || cfg.Precision >= 100 {
		return fmt.Errorf("--precision must be between 0 and 100 (exclusive)")
	}
	if cfg.Hold <= 0 {
		return fmt.Errorf("--hold must be > 0")
	}
	if cfg.TransitionDelay < 0 {
		return fmt.Errorf("--transition-delay must be >= 0")
	}
	if cfg.ReflexMin < 0 {
		return fmt.Errorf("--reflex-min must be >= 0")
	}
	if cfg.ReflexMax < cfg.ReflexMin {
		return fmt.Errorf("--reflex-max must be >= --reflex-min")
	}
	if cfg.TargetMin < 0 || cfg.TargetMax > 100 || cfg.TargetMin >= cfg.TargetMax {
		return fmt.Errorf("--target-min/--target-max must satisfy 0 <= min < max <= 100")
	}
	return nil
}

// InRange reports whether position is within range of value. The
// comparison is inclusive: a position exactly on the boundary counts.
func InRange(position, value, rng float64) bool {
	return math.Abs(position-value) <= rng
}

// Update advances the machine to session time now with the given input
// position. ok is false when the input source is unavailable; the
// machine then fails closed: no timer progresses, no target is
// generated, and the condition is surfaced via Snapshot.InputLost.
func (e *Engine) Update(now time.Duration, position float64, ok bool) {
	delta := now - e.lastTick
	if delta < 0 {
		delta = 0
	}
	e.lastTick = now
	if e.phase == PhaseHolding {
		// Transition time is excluded from the game clock.
		e.gameTime += delta
	}

	e.inputLost = !ok
	if !ok {
		// Undefined input progresses nothing; both timers reset so a
		// signal dropout cannot be ridden out for credit.
		e.conditionMet = false
		e.inRange = false
		return
	}

	switch e.phase {
	case PhaseTransitioning:
		e.updateTransitioning(now, position)
	case PhaseHolding:
		e.updateHolding(now, position)
	case PhaseComplete:
	}
}

func (e *Engine) updateTransitioning(now time.Duration, position float64) {
	if e.revealPending {
		// The reflex delay is unskippable and independent of the
		// transition condition.
		if now >= e.revealAt {
			e.reveal(now)
		}
		return
	}
	if !e.mode.Satisfied(position) {
		// No partial credit: the timer restarts from zero.
		e.conditionMet = false
		return
	}
	if !e.conditionMet {
		e.conditionMet = true
		e.conditionMetAt = now
	}
	if now-e.conditionMetAt >= e.transitionDelay() {
		e.conditionMet = false
		if e.cfg.Reflex {
			e.revealPending = true
			e.revealAt = now + e.gen.ReflexDelay(secs(e.cfg.ReflexMin), secs(e.cfg.ReflexMax))
			return
		}
		e.reveal(now)
	}
}

func (e *Engine) reveal(now time.Duration) {
	if e.cfg.FocusWeak && len(e.weakBands) > 0 {
		e.targetValue = e.gen.GenerateWeighted(e.cfg.TargetMin, e.cfg.TargetMax, e.weakBands, e.cfg.WeakFactor)
	} else {
		e.targetValue = e.gen.Generate(e.cfg.TargetMin, e.cfg.TargetMax)
	}
	e.revealedAt = now
	e.revealPending = false
	e.inRange = false
	e.phase = PhaseHolding
	e.rec.MarkTarget(e.targetValue)
}

func (e *Engine) updateHolding(now time.Duration, position float64) {
	if !InRange(position, e.targetValue, e.cfg.Precision) {
		// Any excursion restarts the hold from zero.
		e.inRange = false
		return
	}
	if !e.inRange {
		e.inRange = true
		e.rangeEnteredAt = now
	}
	e.rec.MarkInRange()
	if now-e.rangeEnteredAt < e.holdDuration() {
		return
	}

	e.records = append(e.records, model.TargetRecord{
		TargetValue:  e.targetValue,
		ReactionMs:   durationMs(e.rangeEnteredAt - e.revealedAt),
		CompletionMs: durationMs(now - e.revealedAt),
	})
	e.inRange = false
	if len(e.records) >= e.cfg.Targets {
		e.phase = PhaseComplete
		return
	}
	e.phase = PhaseTransitioning
	e.conditionMet = false
	e.revealPending = false
}

// Records returns a copy of the completed target records.
func (e *Engine) Records() []model.TargetRecord {
	out := make([]model.TargetRecord, len(e.records))
	copy(out, e.records)
	return out
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase {
	return e.phase
}

// Done reports whether all targets are complete.
func (e *Engine) Done() bool {
	return e.phase == PhaseComplete
}

// GameTime returns accumulated time outside the transition phase.
func (e *Engine) GameTime() time.Duration {
	return e.gameTime
}

func (e *Engine) transitionDelay() time.Duration {
	return secs(e.cfg.TransitionDelay)
}

func (e *Engine) holdDuration() time.Duration {
	return secs(e.cfg.Hold)
}

func secs(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func durationMs(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
