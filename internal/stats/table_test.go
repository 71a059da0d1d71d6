package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Band", "Avg Deviation", "Attempts"}
	rows := [][]string{
		{"10-20%", "0.55%", "12"},
		{"90-100%", "3.10%", "3"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Band    Avg Deviation Attempts" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "10-20%          0.55%       12" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "90-100%         3.10%        3" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableEmpty(t *testing.T) {
	if lines := formatTable(nil, nil, nil); lines != nil {
		t.Fatalf("expected nil for empty table, got %v", lines)
	}
}
