// Package config loads host configuration for pattern-lock sessions from YAML.
//
// The file is read into a generic map with yaml.v3 and decoded onto Default()
// with mapstructure, so omitted keys keep their defaults, durations may be
// written as "750ms", and unknown keys are rejected.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	patternlock "github.com/codeninelabs/cnl-patternlock"
	"github.com/codeninelabs/cnl-patternlock/internal/logging"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

// Canvas describes the host's drawing surface in screen units.
type Canvas struct {
	Width   float64 `mapstructure:"width" yaml:"width"`
	Height  float64 `mapstructure:"height" yaml:"height"`
	DotSize float64 `mapstructure:"dot_size" yaml:"dot_size"`
}

// Config is everything a host needs to build and drive a session.
type Config struct {
	GridSize       int           `mapstructure:"grid_size" yaml:"grid_size"`
	ErrorDelay     time.Duration `mapstructure:"error_delay" yaml:"error_delay"`
	BacktrackAngle float64       `mapstructure:"backtrack_angle" yaml:"backtrack_angle"`
	Canvas         Canvas        `mapstructure:"canvas" yaml:"canvas"`
	LogLevel       string        `mapstructure:"log_level" yaml:"log_level"`
	MetricsAddr    string        `mapstructure:"metrics_addr" yaml:"metrics_addr"`
}

// Default returns the classic 3×3 configuration on a 300×300 canvas.
func Default() Config {
	return Config{
		GridSize:       3,
		ErrorDelay:     patternlock.DefaultErrorDelay,
		BacktrackAngle: patternlock.DefaultBacktrackAngle,
		Canvas:         Canvas{Width: 300, Height: 300, DotSize: 20},
		LogLevel:       "info",
	}
}

// Load reads the YAML file at path on top of Default and validates the result.
// An empty path returns Default.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes YAML bytes on top of Default and validates the result.
func Parse(data []byte) (Config, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("config: parse yaml: %w", err)
	}

	cfg := Default()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return Config{}, fmt.Errorf("config: decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first out-of-range field, wrapped in ErrInvalid.
func (c Config) Validate() error {
	switch {
	case c.GridSize <= 0:
		return fmt.Errorf("%w: grid_size must be positive, got %d", ErrInvalid, c.GridSize)
	case c.ErrorDelay <= 0:
		return fmt.Errorf("%w: error_delay must be positive, got %s", ErrInvalid, c.ErrorDelay)
	case c.BacktrackAngle < 0 || c.BacktrackAngle >= 180:
		return fmt.Errorf("%w: backtrack_angle must be in [0, 180), got %g", ErrInvalid, c.BacktrackAngle)
	case c.Canvas.Width <= 0 || c.Canvas.Height <= 0:
		return fmt.Errorf("%w: canvas must have positive width and height", ErrInvalid)
	case c.Canvas.DotSize <= 0:
		return fmt.Errorf("%w: canvas.dot_size must be positive", ErrInvalid)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// SessionOptions maps the configuration onto session options.
func (c Config) SessionOptions() []patternlock.Option {
	return []patternlock.Option{
		patternlock.WithErrorDelay(c.ErrorDelay),
		patternlock.WithBacktrackAngle(c.BacktrackAngle),
	}
}
