package session

import (
	"testing"
	"time"
)

// fakeTime drives a Clock without real sleeping.
type fakeTime struct {
	t time.Time
}

func (f *fakeTime) advance(d time.Duration) { f.t = f.t.Add(d) }
func (f *fakeTime) now() time.Time          { return f.t }

func newTestClock() (*Clock, *fakeTime) {
	f := &fakeTime{t: time.Unix(1000, 0)}
	c := &Clock{now: f.now}
	c.resumedAt = f.now()
	return c, f
}

func TestClockAdvances(t *testing.T) {
	c, f := newTestClock()
	if c.Now() != 0 {
		t.Fatalf("new clock not at zero: %v", c.Now())
	}
	f.advance(3 * time.Second)
	if c.Now() != 3*time.Second {
		t.Fatalf("expected 3s, got %v", c.Now())
	}
}

func TestClockExcludesPausedTime(t *testing.T) {
	c, f := newTestClock()
	f.advance(2 * time.Second)
	c.Pause()
	f.advance(10 * time.Second) // must not count
	if c.Now() != 2*time.Second {
		t.Fatalf("paused clock moved: %v", c.Now())
	}
	c.Resume()
	f.advance(1 * time.Second)
	if c.Now() != 3*time.Second {
		t.Fatalf("expected 3s after resume, got %v", c.Now())
	}
}

func TestClockPauseResumeIdempotent(t *testing.T) {
	c, f := newTestClock()
	c.Resume() // resume while running is a no-op
	f.advance(time.Second)
	c.Pause()
	c.Pause()
	f.advance(time.Second)
	c.Resume()
	c.Resume()
	f.advance(time.Second)
	if c.Now() != 2*time.Second {
		t.Fatalf("expected 2s, got %v", c.Now())
	}
	if c.Paused() {
		t.Fatalf("clock should be running")
	}
}
