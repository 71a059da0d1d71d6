package input

import "time"

// Keyboard ramp defaults: rates in %/s, and how long a single key
// event counts as "still held" (terminal key autorepeat refreshes it).
const (
	defaultRampRate = 120.0
	defaultFallRate = 160.0
	defaultHoldSpan = 250 * time.Millisecond
)

// Keys emulates a pedal from keyboard input: the position ramps toward
// 100 while a key is held and decays toward 0 otherwise. Terminal key
// autorepeat stands in for a true key-up event: every press extends a
// short held window.
type Keys struct {
	now       func() time.Time
	rampRate  float64
	fallRate  float64
	holdSpan  time.Duration
	heldUntil time.Time
	updatedAt time.Time
	position  float64
}

// NewKeys returns a keyboard ramp source at position 0.
func NewKeys() *Keys {
	k := &Keys{
		now:      time.Now,
		rampRate: defaultRampRate,
		fallRate: defaultFallRate,
		holdSpan: defaultHoldSpan,
	}
	k.updatedAt = k.now()
	return k
}

// Press registers a key event, extending the held window.
func (k *Keys) Press() {
	k.integrate(k.now())
	k.heldUntil = k.now().Add(k.holdSpan)
}

// Release ends the held window immediately.
func (k *Keys) Release() {
	k.integrate(k.now())
	k.heldUntil = time.Time{}
}

// Position integrates the ramp up to now and returns the current
// value. It never errors: an emulated pedal is always available.
func (k *Keys) Position() (float64, error) {
	k.integrate(k.now())
	return k.position, nil
}

// integrate advances the position from updatedAt to now, splitting the
// interval at the held-window boundary if it falls inside.
func (k *Keys) integrate(now time.Time) {
	t := k.updatedAt
	k.updatedAt = now
	if !now.After(t) {
		return
	}
	if !k.heldUntil.IsZero() && k.heldUntil.After(t) {
		end := k.heldUntil
		if end.After(now) {
			end = now
		}
		k.position = clampPosition(k.position + k.rampRate*end.Sub(t).Seconds())
		t = end
	}
	if now.After(t) {
		k.position = clampPosition(k.position - k.fallRate*now.Sub(t).Seconds())
	}
}
