// Package main provides the CLI entrypoint for rpcg.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Scar2201/RPCG/internal/config"
	"github.com/Scar2201/RPCG/internal/input"
	"github.com/Scar2201/RPCG/internal/mode"
	"github.com/Scar2201/RPCG/internal/model"
	"github.com/Scar2201/RPCG/internal/session"
	"github.com/Scar2201/RPCG/internal/stats"
	"github.com/Scar2201/RPCG/internal/statsui"
	"github.com/Scar2201/RPCG/internal/store"
	"github.com/Scar2201/RPCG/internal/target"
	"github.com/Scar2201/RPCG/internal/tui"
)

const (
	defaultTargets         = 10
	defaultPrecision       = 5.0
	defaultHold            = 1.0
	defaultTransitionDelay = 1.0
	defaultMode            = "release"
	defaultReflexMin       = 0.5
	defaultReflexMax       = 2.5
	defaultTargetMin       = 10.0
	defaultTargetMax       = 90.0
	defaultWeakTop         = 3
	defaultWeakFactor      = 2.0
	defaultWeakWindow      = 20
	defaultCurveWindow     = 20
	defaultInput           = "keys"
	defaultUDPAddr         = ":9999"
	defaultUDPFormat       = "horizon"
	defaultUDPPedal        = "throttle"
)

var (
	trainTargets         int
	trainPrecision       float64
	trainHold            float64
	trainTransitionDelay float64
	trainMode            string
	trainReflex          bool
	trainReflexMin       float64
	trainReflexMax       float64
	trainTargetMin       float64
	trainTargetMax       float64
	trainFocusWeak       bool
	trainWeakTop         int
	trainWeakFactor      float64
	trainWeakWindow      int
	trainInput           string
	trainUDPAddr         string
	trainUDPFormat       string
	trainUDPOffset       int
	trainUDPPedal        string

	statsMode        string
	statsSince       string
	statsLast        int
	statsCurveWindow int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "rpcg",
		Short:         "TUI pedal-control trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runTrainCmd,
	}

	rootCmd.Flags().IntVar(&trainTargets, "targets", defaultTargets, "targets per session")
	rootCmd.Flags().Float64Var(&trainPrecision, "precision", defaultPrecision, "tolerance band around the target (percent)")
	rootCmd.Flags().Float64Var(&trainHold, "hold", defaultHold, "seconds to hold inside the band")
	rootCmd.Flags().Float64Var(&trainTransitionDelay, "transition-delay", defaultTransitionDelay, "seconds to hold the transition position")
	rootCmd.Flags().StringVar(&trainMode, "mode", defaultMode, "training mode (release, press, continuous)")
	rootCmd.Flags().BoolVar(&trainReflex, "reflex", false, "randomize the delay before the target is revealed")
	rootCmd.Flags().Float64Var(&trainReflexMin, "reflex-min", defaultReflexMin, "minimum reflex delay in seconds")
	rootCmd.Flags().Float64Var(&trainReflexMax, "reflex-max", defaultReflexMax, "maximum reflex delay in seconds")
	rootCmd.Flags().Float64Var(&trainTargetMin, "target-min", defaultTargetMin, "lowest target value (percent)")
	rootCmd.Flags().Float64Var(&trainTargetMax, "target-max", defaultTargetMax, "highest target value (percent)")
	rootCmd.Flags().BoolVar(&trainFocusWeak, "focus-weak", false, "bias targets toward weak bands")
	rootCmd.Flags().IntVar(&trainWeakTop, "weak-top", defaultWeakTop, "number of weak bands to focus on")
	rootCmd.Flags().Float64Var(&trainWeakFactor, "weak-factor", defaultWeakFactor, "weight factor for weak bands")
	rootCmd.Flags().IntVar(&trainWeakWindow, "weak-window", defaultWeakWindow, "number of recent sessions to compute weak bands")
	rootCmd.Flags().StringVar(&trainInput, "input", defaultInput, "input source (keys, udp)")
	rootCmd.Flags().StringVar(&trainUDPAddr, "udp-addr", defaultUDPAddr, "UDP telemetry listen address")
	rootCmd.Flags().StringVar(&trainUDPFormat, "udp-format", defaultUDPFormat, "telemetry format (horizon, motorsport, custom)")
	rootCmd.Flags().IntVar(&trainUDPOffset, "udp-offset", -1, "pedal byte offset for custom telemetry format")
	rootCmd.Flags().StringVar(&trainUDPPedal, "udp-pedal", defaultUDPPedal, "pedal to read (throttle, brake)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

func runTrainCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "targets", &trainTargets, fileCfg.Train.Targets)
	applyFloatConfig(cmd, "precision", &trainPrecision, fileCfg.Train.Precision)
	applyFloatConfig(cmd, "hold", &trainHold, fileCfg.Train.Hold)
	applyFloatConfig(cmd, "transition-delay", &trainTransitionDelay, fileCfg.Train.TransitionDelay)
	applyStringConfig(cmd, "mode", &trainMode, fileCfg.Train.Mode)
	applyBoolConfig(cmd, "reflex", &trainReflex, fileCfg.Train.Reflex)
	applyFloatConfig(cmd, "reflex-min", &trainReflexMin, fileCfg.Train.ReflexMin)
	applyFloatConfig(cmd, "reflex-max", &trainReflexMax, fileCfg.Train.ReflexMax)
	applyFloatConfig(cmd, "target-min", &trainTargetMin, fileCfg.Train.TargetMin)
	applyFloatConfig(cmd, "target-max", &trainTargetMax, fileCfg.Train.TargetMax)
	applyBoolConfig(cmd, "focus-weak", &trainFocusWeak, fileCfg.Train.FocusWeak)
	applyIntConfig(cmd, "weak-top", &trainWeakTop, fileCfg.Train.WeakTop)
	applyFloatConfig(cmd, "weak-factor", &trainWeakFactor, fileCfg.Train.WeakFactor)
	applyIntConfig(cmd, "weak-window", &trainWeakWindow, fileCfg.Train.WeakWindow)
	applyStringConfig(cmd, "input", &trainInput, fileCfg.Train.Input)
	applyStringConfig(cmd, "udp-addr", &trainUDPAddr, fileCfg.Train.UDPAddr)
	applyStringConfig(cmd, "udp-format", &trainUDPFormat, fileCfg.Train.UDPFormat)
	applyIntConfig(cmd, "udp-offset", &trainUDPOffset, fileCfg.Train.UDPOffset)
	applyStringConfig(cmd, "udp-pedal", &trainUDPPedal, fileCfg.Train.UDPPedal)

	cfg := model.Config{
		Targets:         trainTargets,
		Precision:       trainPrecision,
		Hold:            trainHold,
		TransitionDelay: trainTransitionDelay,
		Mode:            trainMode,
		Reflex:          trainReflex,
		ReflexMin:       trainReflexMin,
		ReflexMax:       trainReflexMax,
		TargetMin:       trainTargetMin,
		TargetMax:       trainTargetMax,
		FocusWeak:       trainFocusWeak,
		WeakTop:         trainWeakTop,
		WeakFactor:      trainWeakFactor,
		WeakWindow:      trainWeakWindow,
		Input:           trainInput,
		UDPAddr:         trainUDPAddr,
		UDPFormat:       trainUDPFormat,
		UDPOffset:       trainUDPOffset,
		UDPPedal:        trainUDPPedal,
	}

	if err := validateConfig(cfg); err != nil {
		return err
	}

	md, err := mode.ForName(cfg.Mode)
	if err != nil {
		// Unknown modes fall back to release rather than aborting.
		logErrln(err)
		cfg.Mode = md.Name()
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	weakSet := map[int]struct{}{}
	weakNoticePrinted := false
	if cfg.FocusWeak {
		aggs, err := st.GetWeakBands(context.Background(), cfg.WeakWindow, cfg.Mode)
		if err != nil {
			logErrf("failed to load weak bands: %v\n", err)
		} else {
			weakSet = stats.SelectWeakBands(aggs, cfg.WeakTop)
			if len(weakSet) == 0 {
				logErrln("no stats available for weak-band focus yet; using normal generator")
				weakNoticePrinted = true
			}
		}
	}

	src, keys, cleanup, err := openInput(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	gen := target.New()
	m, err := tui.NewModel(cfg, st, md, gen, src, keys, weakSet, weakNoticePrinted)
	if err != nil {
		return err
	}
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func openInput(cfg model.Config) (input.Source, *input.Keys, func(), error) {
	switch cfg.Input {
	case "keys":
		keys := input.NewKeys()
		return keys, keys, func() {}, nil
	case "udp":
		offset, err := input.PedalOffset(cfg.UDPFormat, cfg.UDPPedal, cfg.UDPOffset)
		if err != nil {
			return nil, nil, nil, err
		}
		udp, err := input.OpenUDP(cfg.UDPAddr, offset)
		if err != nil {
			return nil, nil, nil, err
		}
		cleanup := func() {
			if cerr := udp.Close(); cerr != nil {
				logErrf("failed to close telemetry socket: %v\n", cerr)
			}
		}
		return udp, nil, cleanup, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown input source %q (keys, udp)", cfg.Input)
	}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show stats",
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsMode, "mode", "", "mode filter (release, press, continuous)")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N sessions")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	return cmd
}

func runStatsCmd(_ *cobra.Command, _ []string) error {
	switch statsMode {
	case "", "release", "press", "continuous":
	default:
		return fmt.Errorf("invalid --mode value %q (release, press, continuous)", statsMode)
	}

	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}

	cfg := model.StatsConfig{
		Mode:        statsMode,
		Since:       sinceTime,
		Last:        statsLast,
		CurveWindow: statsCurveWindow,
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	m := statsui.NewModel(st, cfg)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# rpcg configuration
# Uncomment a value to enable it. CLI flags override config values.

[train]
# targets = %d             # Targets per session
# precision = %.1f          # Tolerance band around the target (percent)
# hold = %.1f               # Seconds to hold inside the band
# transition-delay = %.1f   # Seconds to hold the transition position
# mode = %q          # Training mode (release, press, continuous)
# reflex = false            # Randomize the delay before the target is revealed
# reflex-min = %.1f         # Minimum reflex delay in seconds
# reflex-max = %.1f         # Maximum reflex delay in seconds
# target-min = %.0f          # Lowest target value (percent)
# target-max = %.0f          # Highest target value (percent)
# focus-weak = false        # Bias targets toward weak bands
# weak-top = %d              # Number of weak bands to focus on
# weak-factor = %.1f         # Weight factor for weak bands
# weak-window = %d          # Number of recent sessions to compute weak bands
# input = %q            # Input source (keys, udp)
# udp-addr = %q       # UDP telemetry listen address
# udp-format = %q   # Telemetry format (horizon, motorsport, custom)
# udp-pedal = %q  # Pedal to read (throttle, brake)
`,
		defaultTargets,
		defaultPrecision,
		defaultHold,
		defaultTransitionDelay,
		defaultMode,
		defaultReflexMin,
		defaultReflexMax,
		defaultTargetMin,
		defaultTargetMax,
		defaultWeakTop,
		defaultWeakFactor,
		defaultWeakWindow,
		defaultInput,
		defaultUDPAddr,
		defaultUDPFormat,
		defaultUDPPedal,
	)
}

func validateConfig(cfg model.Config) error {
	if err := session.ValidateConfig(cfg); err != nil {
		return err
	}
	if cfg.WeakTop < 0 {
		return fmt.Errorf("--weak-top must be >= 0")
	}
	if cfg.WeakFactor < 0 {
		return fmt.Errorf("--weak-factor must be >= 0")
	}
	if cfg.WeakWindow < 0 {
		return fmt.Errorf("--weak-window must be >= 0")
	}
	switch cfg.Input {
	case "keys":
	case "udp":
		if _, err := input.PedalOffset(cfg.UDPFormat, cfg.UDPPedal, cfg.UDPOffset); err != nil {
			return err
		}
		if cfg.UDPPedal != "throttle" && cfg.UDPPedal != "brake" {
			return fmt.Errorf("--udp-pedal must be throttle or brake")
		}
	default:
		return fmt.Errorf("--input must be keys or udp")
	}
	return nil
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
