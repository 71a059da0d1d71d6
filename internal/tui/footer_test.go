package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/Scar2201/RPCG/internal/session"
)

func TestRenderFooterFormats(t *testing.T) {
	m := &Model{
		snapshot: session.Snapshot{
			Completed: 3,
			Total:     10,
			GameTime:  12300 * time.Millisecond,
		},
		hasLast:     true,
		lastOverall: 78,
		allOverall:  149,
		allCount:    2,
	}
	out := m.renderFooter()
	if out == "" {
		t.Fatalf("expected footer output")
	}
	if !containsAll(out, []string{"Targets 3/10", "Game 12.3s", "Last 78", "All-time 74.5"}) {
		t.Fatalf("footer missing expected segments: %s", out)
	}
}

func TestRenderFooterWithoutHistory(t *testing.T) {
	m := &Model{
		snapshot: session.Snapshot{Total: 5},
	}
	out := m.renderFooter()
	if strings.Contains(out, "Last") || strings.Contains(out, "All-time") {
		t.Fatalf("footer should omit history segments: %s", out)
	}
	if !strings.Contains(out, "Targets 0/5") {
		t.Fatalf("footer missing target count: %s", out)
	}
}

func containsAll(haystack string, needles []string) bool {
	for _, needle := range needles {
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}
