package tui

import (
	"strings"
	"testing"
)

func TestGaugeCell(t *testing.T) {
	if got := gaugeCell(0, 50); got != 0 {
		t.Fatalf("expected cell 0 for position 0, got %d", got)
	}
	if got := gaugeCell(100, 50); got != 49 {
		t.Fatalf("expected last cell for position 100, got %d", got)
	}
	if got := gaugeCell(50, 50); got != 25 {
		t.Fatalf("expected middle cell for position 50, got %d", got)
	}
	if got := gaugeCell(-10, 50); got != 0 {
		t.Fatalf("negative positions should clamp to 0, got %d", got)
	}
	if got := gaugeCell(150, 50); got != 49 {
		t.Fatalf("overshoot should clamp to the last cell, got %d", got)
	}
}

func TestRenderGaugeMarker(t *testing.T) {
	out := renderGauge(40, 50, 0, false, 5)
	if !strings.Contains(out, "█") {
		t.Fatalf("expected position marker in gauge: %s", out)
	}
	if !strings.HasPrefix(out, "[") || !strings.HasSuffix(out, "]") {
		t.Fatalf("gauge should be bracketed: %s", out)
	}
}

func TestRenderGaugeTargetBand(t *testing.T) {
	out := renderGauge(40, 10, 50, true, 5)
	if !strings.Contains(out, "═") {
		t.Fatalf("expected target band in gauge: %s", out)
	}
}
