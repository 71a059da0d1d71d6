package mode

import "testing"

func TestSatisfied(t *testing.T) {
	cases := []struct {
		name     string
		mode     Mode
		position float64
		want     bool
	}{
		{"release at zero", ReleaseToZero, 0, true},
		{"release at boundary", ReleaseToZero, 2, true},
		{"release above boundary", ReleaseToZero, 2.01, false},
		{"release held at 10", ReleaseToZero, 10, false},
		{"press at full", PressToFull, 100, true},
		{"press at boundary", PressToFull, 98, true},
		{"press below boundary", PressToFull, 97.9, false},
		{"continuous anywhere", Continuous, 55, true},
		{"continuous at zero", Continuous, 0, true},
	}
	for _, tc := range cases {
		if got := tc.mode.Satisfied(tc.position); got != tc.want {
			t.Errorf("%s: Satisfied(%v) = %v, want %v", tc.name, tc.position, got, tc.want)
		}
	}
}

func TestTransitionTarget(t *testing.T) {
	if v, ok := ReleaseToZero.TransitionTarget(); !ok || v != 0 {
		t.Errorf("release: got (%v, %v), want (0, true)", v, ok)
	}
	if v, ok := PressToFull.TransitionTarget(); !ok || v != 100 {
		t.Errorf("press: got (%v, %v), want (100, true)", v, ok)
	}
	if _, ok := Continuous.TransitionTarget(); ok {
		t.Errorf("continuous: expected no positional requirement")
	}
}

func TestForName(t *testing.T) {
	for _, name := range []string{"release", "press", "continuous", ""} {
		if _, err := ForName(name); err != nil {
			t.Errorf("ForName(%q): unexpected error: %v", name, err)
		}
	}
	m, err := ForName("bogus")
	if err == nil {
		t.Fatalf("ForName(bogus): expected error")
	}
	if m != ReleaseToZero {
		t.Fatalf("ForName(bogus): expected fallback to ReleaseToZero, got %s", m.Name())
	}
}
