// Package model defines shared data structures.
package model

import "time"

// Config defines training settings for one session. It is read-only
// once a session has started; edits apply to the next run.
type Config struct {
	Targets         int
	Precision       float64
	Hold            float64
	TransitionDelay float64
	Mode            string
	Reflex          bool
	ReflexMin       float64
	ReflexMax       float64
	TargetMin       float64
	TargetMax       float64
	FocusWeak       bool
	WeakTop         int
	WeakFactor      float64
	WeakWindow      int
	Input           string
	UDPAddr         string
	UDPFormat       string
	UDPOffset       int
	UDPPedal        string
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Mode        string
	Since       *time.Time
	Last        int
	CurveWindow int
}

// Sample is one timestamped input reading. Samples are immutable once
// recorded except for the retroactive annotations applied by the
// recorder itself (target value, in-target flag).
type Sample struct {
	Time         time.Duration
	Position     float64
	InTarget     bool
	InTransition bool
	TargetValue  float64
	HasTarget    bool
}

// TargetRecord captures one completed target.
type TargetRecord struct {
	TargetValue  float64
	ReactionMs   float64
	CompletionMs float64
	Accuracy     float64
}

// Scores summarizes a completed session.
type Scores struct {
	ElapsedMs     int64
	GameTimeMs    int64
	AvgReactionMs float64
	MinReactionMs float64
	MaxReactionMs float64
	AvgPrecision  float64
	Consistency   int
	Overall       int
}

// SessionRecord is the persisted form of a completed session.
type SessionRecord struct {
	UUID      string
	StartedAt time.Time
	EndedAt   time.Time
	Config    Config
	Scores    Scores
}

// SessionAggregate summarizes a stored session for reporting.
type SessionAggregate struct {
	SessionID     int64
	EndedAt       time.Time
	Mode          string
	Targets       int
	AvgReactionMs float64
	AvgPrecision  float64
	Consistency   int
	Overall       int
}

// BandAggregate aggregates target records over one 10% target band.
type BandAggregate struct {
	Band          int
	Attempts      int
	AvgDeviation  float64
	AvgReactionMs float64
}
