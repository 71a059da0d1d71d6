// Package tui provides the Bubble Tea training interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/Scar2201/RPCG/internal/input"
	"github.com/Scar2201/RPCG/internal/mode"
	"github.com/Scar2201/RPCG/internal/model"
	"github.com/Scar2201/RPCG/internal/score"
	"github.com/Scar2201/RPCG/internal/session"
	statsPkg "github.com/Scar2201/RPCG/internal/stats"
	"github.com/Scar2201/RPCG/internal/store"
	"github.com/Scar2201/RPCG/internal/target"
	"github.com/Scar2201/RPCG/internal/telemetry"
)

const (
	frameInterval  = 33 * time.Millisecond
	sampleInterval = 10 * time.Millisecond
	// Three minutes of samples at the sample rate.
	sampleCapacity = 18000
)

type frameTickMsg time.Time

type sampleTickMsg time.Time

// Model implements the Bubble Tea training UI.
type Model struct {
	config            model.Config
	store             *store.Store
	md                mode.Mode
	gen               *target.Generator
	source            input.Source
	keys              *input.Keys
	weakSet           map[int]struct{}
	weakNoticePrinted bool

	engine   *session.Engine
	clock    *session.Clock
	recorder *telemetry.Recorder

	width  int
	height int

	transitionBar progress.Model
	holdBar       progress.Model

	startedAt time.Time
	position  float64
	snapshot  session.Snapshot
	saved     bool

	results     model.Scores
	lastOverall int
	hasLast     bool
	allOverall  float64
	allCount    int
}

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	alertStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// NewModel constructs a training TUI model. The keys source may be nil
// when positions come from telemetry instead of the keyboard.
func NewModel(cfg model.Config, st *store.Store, md mode.Mode, gen *target.Generator, src input.Source, keys *input.Keys, weakSet map[int]struct{}, weakNoticePrinted bool) (*Model, error) {
	m := &Model{
		config:            cfg,
		store:             st,
		md:                md,
		gen:               gen,
		source:            src,
		keys:              keys,
		weakSet:           weakSet,
		weakNoticePrinted: weakNoticePrinted,
		transitionBar:     progress.New(progress.WithDefaultGradient()),
		holdBar:           progress.New(progress.WithDefaultGradient()),
	}
	if err := m.resetSession(); err != nil {
		return nil, err
	}
	m.loadFooterStats()
	return m, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(frameTick(), sampleTick())
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		barWidth := m.width / 3
		if barWidth < 10 {
			barWidth = 10
		}
		m.transitionBar.Width = barWidth
		m.holdBar.Width = barWidth
		return m, nil
	case frameTickMsg:
		m.onFrame()
		return m, frameTick()
	case sampleTickMsg:
		m.onSample()
		return m, sampleTick()
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "p":
		m.togglePause()
		return m, nil
	case "r":
		if m.engine.Done() {
			if err := m.resetSession(); err != nil {
				logErrf("failed to restart session: %v\n", err)
				return m, tea.Quit
			}
		}
		return m, nil
	default:
		if m.keys != nil && !m.clock.Paused() {
			m.keys.Press()
		}
		return m, nil
	}
}

func (m *Model) togglePause() {
	if m.engine.Done() {
		return
	}
	if m.clock.Paused() {
		m.clock.Resume()
		m.recorder.Start()
		return
	}
	m.clock.Pause()
	m.recorder.Stop()
}

func (m *Model) onFrame() {
	if m.clock.Paused() {
		return
	}
	pos, err := m.source.Position()
	ok := err == nil
	if ok {
		m.position = pos
	}
	now := m.clock.Now()
	if !m.engine.Done() {
		m.engine.Update(now, m.position, ok)
	}
	m.snapshot = m.engine.Snapshot(now, m.position)
	if m.engine.Done() && !m.saved {
		m.finishSession()
	}
}

func (m *Model) onSample() {
	if m.clock.Paused() || m.engine.Done() {
		return
	}
	pos, err := m.source.Position()
	if err != nil {
		return
	}
	inTransition := m.engine.Phase() == session.PhaseTransitioning
	m.recorder.Tick(m.clock.Now(), pos, inTransition)
}

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameTickMsg(t)
	})
}

func sampleTick() tea.Cmd {
	return tea.Tick(sampleInterval, func(t time.Time) tea.Msg {
		return sampleTickMsg(t)
	})
}

// View implements tea.Model.
func (m *Model) View() string {
	var content string
	if m.engine.Done() {
		content = m.renderResults()
	} else {
		content = m.renderSession()
	}
	if m.width == 0 || m.height == 0 {
		return content
	}
	footer := m.renderFooter()
	if footer == "" || m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	bodyHeight := m.height - 1
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderSession() string {
	var lines []string
	switch m.snapshot.Phase {
	case session.PhaseTransitioning:
		lines = append(lines, promptStyle.Render(m.snapshot.Prompt))
		lines = append(lines, m.transitionBar.ViewAs(m.snapshot.TransitionProgress))
	case session.PhaseHolding:
		label := fmt.Sprintf("Target %.0f%%", m.snapshot.TargetValue)
		if m.snapshot.InRange {
			label = okStyle.Render(label)
		} else {
			label = labelStyle.Render(label)
		}
		lines = append(lines, label)
		lines = append(lines, m.holdBar.ViewAs(m.snapshot.HoldProgress))
	}

	gaugeWidth := m.width / 2
	if gaugeWidth < minGaugeWidth {
		gaugeWidth = minGaugeWidth
	}
	targetValue := 0.0
	if m.snapshot.HasTarget {
		targetValue = m.snapshot.TargetValue
	}
	gauge := renderGauge(gaugeWidth, m.position, targetValue, m.snapshot.HasTarget, m.config.Precision)
	lines = append(lines, fmt.Sprintf("%s %5.1f%%", gauge, m.position))

	if m.snapshot.InputLost {
		lines = append(lines, alertStyle.Render("input signal lost"))
	}
	if m.clock.Paused() {
		lines = append(lines, labelStyle.Render("paused (press p to resume)"))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderResults() string {
	s := m.results
	lines := []string{
		promptStyle.Render("Session complete"),
		fmt.Sprintf("Overall %d", s.Overall),
		fmt.Sprintf("Time %.1fs (game %.1fs)", float64(s.ElapsedMs)/1000, float64(s.GameTimeMs)/1000),
		fmt.Sprintf("Reaction avg %.0f ms (min %.0f / max %.0f)", s.AvgReactionMs, s.MinReactionMs, s.MaxReactionMs),
		fmt.Sprintf("Precision %.2f%%", s.AvgPrecision),
		fmt.Sprintf("Consistency %d", s.Consistency),
	}
	if st := m.recorder.Statistics(); st.Count > 0 {
		lines = append(lines, fmt.Sprintf("Pedal min %.0f%% / max %.0f%% / mean %.0f%%", st.Min, st.Max, st.Mean))
	}
	if spark := m.renderTrace(); spark != "" {
		lines = append(lines, footerStyle.Render(spark))
	}
	lines = append(lines, footerStyle.Render("press r to restart, ctrl+c to quit"))
	return strings.Join(lines, "\n")
}

// traceWindow bounds the results trace to the final stretch of the
// session so long sessions do not flatten into noise.
const traceWindow = 30 * time.Second

func (m *Model) renderTrace() string {
	samples := m.recorder.Recent(m.clock.Now(), traceWindow)
	if len(samples) == 0 {
		return ""
	}
	width := m.width / 2
	if width < minGaugeWidth {
		width = minGaugeWidth
	}
	values := make([]float64, 0, width)
	step := len(samples) / width
	if step < 1 {
		step = 1
	}
	for i := 0; i < len(samples); i += step {
		values = append(values, samples[i].Position)
	}
	return statsPkg.Sparkline(values)
}

func (m *Model) renderFooter() string {
	segments := []string{
		fmt.Sprintf("Targets %d/%d", m.snapshot.Completed, m.snapshot.Total),
		fmt.Sprintf("Game %.1fs", m.snapshot.GameTime.Seconds()),
	}
	if m.hasLast {
		segments = append(segments, fmt.Sprintf("Last %d", m.lastOverall))
	}
	if m.allCount > 0 {
		segments = append(segments, fmt.Sprintf("All-time %.1f", m.allOverall/float64(m.allCount)))
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func (m *Model) resetSession() error {
	rec := telemetry.NewRecorder(sampleCapacity)
	engine, err := session.New(m.config, m.md, m.gen, rec, m.weakSet)
	if err != nil {
		return err
	}
	rec.Start()
	m.recorder = rec
	m.engine = engine
	m.clock = session.NewClock()
	m.startedAt = time.Now()
	m.position = 0
	m.saved = false
	m.snapshot = engine.Snapshot(0, 0)
	return nil
}

func (m *Model) loadFooterStats() {
	ctx := context.Background()
	sessions, err := m.store.ListSessions(ctx, model.StatsConfig{Mode: m.config.Mode})
	if err != nil {
		logErrf("failed to load session stats: %v\n", err)
		return
	}
	if len(sessions) == 0 {
		return
	}
	m.lastOverall = sessions[len(sessions)-1].Overall
	m.hasLast = true
	for _, s := range sessions {
		m.allOverall += float64(s.Overall)
	}
	m.allCount = len(sessions)
}

func (m *Model) finishSession() {
	m.recorder.Stop()
	endedAt := time.Now()
	records := m.engine.Records()
	samples := m.recorder.Samples()
	scores := score.Aggregate(records, samples, endedAt.Sub(m.startedAt), m.engine.GameTime())

	rec := model.SessionRecord{
		UUID:      uuid.NewString(),
		StartedAt: m.startedAt,
		EndedAt:   endedAt,
		Config:    m.config,
		Scores:    scores,
	}
	ctx := context.Background()
	if _, err := m.store.InsertSession(ctx, rec, records); err != nil {
		logErrf("failed to save session: %v\n", err)
	}

	m.results = scores
	m.lastOverall = scores.Overall
	m.hasLast = true
	m.allOverall += float64(scores.Overall)
	m.allCount++
	m.saved = true

	if m.config.FocusWeak {
		m.refreshWeakSet()
	}
}

func (m *Model) refreshWeakSet() {
	ctx := context.Background()
	aggs, err := m.store.GetWeakBands(ctx, m.config.WeakWindow, m.config.Mode)
	if err != nil {
		logErrf("failed to load weak bands: %v\n", err)
		return
	}
	if len(aggs) == 0 {
		if !m.weakNoticePrinted {
			logErrln("no stats available for weak-band focus yet; using normal generator")
			m.weakNoticePrinted = true
		}
		m.weakSet = map[int]struct{}{}
		return
	}
	m.weakSet = statsPkg.SelectWeakBands(aggs, m.config.WeakTop)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
