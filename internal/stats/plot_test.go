package stats

import (
	"bytes"
	"strings"
	"testing"
)

func TestPlotSeries(t *testing.T) {
	var buf bytes.Buffer
	err := PlotSeries(&buf, "Test Plot", []float64{10, 20, 30, 20, 10}, 12, 4, false)
	if err != nil {
		t.Fatalf("PlotSeries failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Test Plot") {
		t.Fatalf("expected title in output")
	}
	if !strings.Contains(out, "30.0") || !strings.Contains(out, "10.0") {
		t.Fatalf("expected min/max axis labels in output:\n%s", out)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 1+4 {
		t.Fatalf("expected title plus 4 plot rows, got %d lines", len(lines))
	}
}

func TestPlotSeriesEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := PlotSeries(&buf, "Empty", nil, 10, 4, false); err != nil {
		t.Fatalf("PlotSeries failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output for empty series, got %q", buf.String())
	}
}

func TestPlotSeriesFlat(t *testing.T) {
	var buf bytes.Buffer
	if err := PlotSeries(&buf, "", []float64{50, 50, 50}, 10, 4, false); err != nil {
		t.Fatalf("PlotSeries failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "51.0") || !strings.Contains(out, "49.0") {
		t.Fatalf("flat series should widen the axis range:\n%s", out)
	}
}

func TestPlotWidthFor(t *testing.T) {
	if w := PlotWidthFor(80); w != 80-axisLabelWidth-3 {
		t.Fatalf("unexpected plot width for 80 cols: %d", w)
	}
	if w := PlotWidthFor(5); w != minPlotWidth {
		t.Fatalf("narrow terminal should clamp to min width, got %d", w)
	}
	if w := PlotWidthFor(0); w != minPlotWidth {
		t.Fatalf("zero width should clamp to min width, got %d", w)
	}
}

func TestResampleSeries(t *testing.T) {
	down := resampleSeries([]float64{1, 2, 3, 4}, 2)
	if len(down) != 2 || down[0] != 1.5 || down[1] != 3.5 {
		t.Fatalf("unexpected downsample: %v", down)
	}
	up := resampleSeries([]float64{0, 10}, 3)
	if len(up) != 3 || up[0] != 0 || up[1] != 5 || up[2] != 10 {
		t.Fatalf("unexpected upsample: %v", up)
	}
}
