package stats

import (
	"fmt"
	"io"
	"sort"

	"github.com/Scar2201/RPCG/internal/model"
)

// RenderSummary prints a summary table for sessions.
func RenderSummary(w io.Writer, sessions []model.SessionAggregate) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	s := Summarize(sessions)
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Sessions: %d\n", s.Sessions); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg Overall: %.1f\n", s.AvgOverall); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Best Overall: %d\n", s.BestOverall); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg Reaction: %.0f ms\n", s.AvgReactionMs); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg Precision: %.2f%%\n", s.AvgPrecision); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg Consistency: %.1f\n", s.AvgConsistency); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

// BandLabel formats a band index as its pedal position range.
func BandLabel(band int) string {
	return fmt.Sprintf("%d-%d%%", band*10, band*10+10)
}

// RenderBandTable prints per-band aggregates, worst precision first.
func RenderBandTable(w io.Writer, aggs []model.BandAggregate) error {
	if len(aggs) == 0 {
		_, err := fmt.Fprintln(w, "No target stats found.")
		return err
	}
	sorted := make([]model.BandAggregate, len(aggs))
	copy(sorted, aggs)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].AvgDeviation == sorted[j].AvgDeviation {
			return sorted[i].Band < sorted[j].Band
		}
		return sorted[i].AvgDeviation > sorted[j].AvgDeviation
	})

	if _, err := fmt.Fprintln(w, "Per-Band (Windowed)"); err != nil {
		return err
	}

	headers := []string{"Band", "Avg Deviation", "Avg Reaction (ms)", "Attempts"}
	tableRows := make([][]string, 0, len(sorted))
	for _, agg := range sorted {
		tableRows = append(tableRows, []string{
			BandLabel(agg.Band),
			fmt.Sprintf("%.2f%%", agg.AvgDeviation),
			fmt.Sprintf("%.0f", agg.AvgReactionMs),
			fmt.Sprintf("%d", agg.Attempts),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true}
	for _, line := range formatTable(headers, tableRows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

// RenderTargetTable prints the per-target breakdown of one session in
// sequence order.
func RenderTargetTable(w io.Writer, records []model.TargetRecord) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No target records found.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Last Session Targets"); err != nil {
		return err
	}
	headers := []string{"#", "Target", "Reaction (ms)", "Completion (ms)", "Deviation"}
	tableRows := make([][]string, 0, len(records))
	for i, r := range records {
		tableRows = append(tableRows, []string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%.0f%%", r.TargetValue),
			fmt.Sprintf("%.0f", r.ReactionMs),
			fmt.Sprintf("%.0f", r.CompletionMs),
			fmt.Sprintf("%.2f%%", r.Accuracy),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true, 4: true}
	for _, line := range formatTable(headers, tableRows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

// RenderCurves prints progress curves for overall score, reaction, and precision.
func RenderCurves(w io.Writer, sessions []model.SessionAggregate, window int) error {
	return RenderCurvesWithSize(w, sessions, window, 0, 0, false)
}

// RenderCurvesWithSize prints progress curves sized to a given total width.
func RenderCurvesWithSize(w io.Writer, sessions []model.SessionAggregate, window, totalWidth, height int, useColor bool) error {
	if len(sessions) == 0 {
		return nil
	}
	overall := make([]float64, len(sessions))
	reaction := make([]float64, len(sessions))
	precision := make([]float64, len(sessions))
	for i, s := range sessions {
		overall[i] = float64(s.Overall)
		reaction[i] = s.AvgReactionMs
		precision[i] = s.AvgPrecision
	}
	overall = MovingAverage(overall, window)
	reaction = MovingAverage(reaction, window)
	precision = MovingAverage(precision, window)

	width := 0
	if totalWidth > 0 {
		width = PlotWidthFor(totalWidth)
	}
	if err := PlotSeries(w, "Overall Score", overall, width, height, useColor); err != nil {
		return err
	}
	if err := PlotSeries(w, "Avg Reaction (ms)", reaction, width, height, useColor); err != nil {
		return err
	}
	return PlotSeries(w, "Avg Precision (%)", precision, width, height, useColor)
}
