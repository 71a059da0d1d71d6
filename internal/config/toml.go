// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Train TrainConfig `toml:"train"`
}

// TrainConfig maps training-related settings.
type TrainConfig struct {
	Targets         *int     `toml:"targets"`
	Precision       *float64 `toml:"precision"`
	Hold            *float64 `toml:"hold"`
	TransitionDelay *float64 `toml:"transition-delay"`
	Mode            *string  `toml:"mode"`
	Reflex          *bool    `toml:"reflex"`
	ReflexMin       *float64 `toml:"reflex-min"`
	ReflexMax       *float64 `toml:"reflex-max"`
	TargetMin       *float64 `toml:"target-min"`
	TargetMax       *float64 `toml:"target-max"`
	FocusWeak       *bool    `toml:"focus-weak"`
	WeakTop         *int     `toml:"weak-top"`
	WeakFactor      *float64 `toml:"weak-factor"`
	WeakWindow      *int     `toml:"weak-window"`
	Input           *string  `toml:"input"`
	UDPAddr         *string  `toml:"udp-addr"`
	UDPFormat       *string  `toml:"udp-format"`
	UDPOffset       *int     `toml:"udp-offset"`
	UDPPedal        *string  `toml:"udp-pedal"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
