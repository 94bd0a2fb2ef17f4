package trace

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	patternlock "github.com/codeninelabs/cnl-patternlock"
	"github.com/codeninelabs/cnl-patternlock/geometry"
	"github.com/codeninelabs/cnl-patternlock/gridgraph"
	"github.com/codeninelabs/cnl-patternlock/pattern"
)

var (
	// ErrEmptyEvent is returned for an event with no action set.
	ErrEmptyEvent = errors.New("trace: event has no action")
	// ErrAmbiguousEvent is returned for an event with more than one action set.
	ErrAmbiguousEvent = errors.New("trace: event has more than one action")
)

// Canvas is the screen area the dots are laid out on.
type Canvas struct {
	Width   float64 `json:"width" yaml:"width"`
	Height  float64 `json:"height" yaml:"height"`
	DotSize float64 `json:"dot_size" yaml:"dot_size"`
}

// DefaultCanvas is used when a script omits its canvas.
var DefaultCanvas = Canvas{Width: 300, Height: 300, DotSize: 20}

// Event is one recorded input. Exactly one field is set.
type Event struct {
	Move       *geometry.Vec    `json:"move,omitempty" yaml:"move,omitempty"`
	Dot        *gridgraph.Point `json:"dot,omitempty" yaml:"dot,omitempty"`
	Up         bool             `json:"up,omitempty" yaml:"up,omitempty"`
	Reset      bool             `json:"reset,omitempty" yaml:"reset,omitempty"`
	Set        *string          `json:"set,omitempty" yaml:"set,omitempty"`
	ClearError bool             `json:"clear_error,omitempty" yaml:"clear_error,omitempty"`
}

// Kind names the event's action, or "" when none is set.
func (e Event) Kind() string {
	switch {
	case e.Move != nil:
		return "move"
	case e.Dot != nil:
		return "dot"
	case e.Up:
		return "up"
	case e.Reset:
		return "reset"
	case e.Set != nil:
		return "set"
	case e.ClearError:
		return "clear_error"
	}
	return ""
}

func (e Event) actions() int {
	n := 0
	for _, set := range []bool{e.Move != nil, e.Dot != nil, e.Up, e.Reset, e.Set != nil, e.ClearError} {
		if set {
			n++
		}
	}
	return n
}

// Script is a replayable gesture recording.
type Script struct {
	GridSize int     `json:"grid_size" yaml:"grid_size"`
	Canvas   Canvas  `json:"canvas" yaml:"canvas"`
	Initial  string  `json:"initial,omitempty" yaml:"initial,omitempty"`
	Events   []Event `json:"events" yaml:"events"`
}

// Load reads a script from path. JSON is used for a ".json" extension,
// YAML otherwise.
func Load(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("trace: read %s: %w", path, err)
	}

	var sc Script
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &sc); err != nil {
			return Script{}, fmt.Errorf("trace: parse json: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &sc); err != nil {
			return Script{}, fmt.Errorf("trace: parse yaml: %w", err)
		}
	}

	if err := sc.Validate(); err != nil {
		return Script{}, err
	}
	return sc, nil
}

// Validate checks the grid size and that every event has exactly one action.
// Pattern strings are parsed here so replay cannot fail on syntax.
func (sc Script) Validate() error {
	if sc.GridSize <= 0 {
		return fmt.Errorf("trace: %w", gridgraph.ErrInvalidSize)
	}
	if sc.Initial != "" {
		if _, err := pattern.Parse(sc.Initial); err != nil {
			return fmt.Errorf("trace: initial: %w", err)
		}
	}
	for i, e := range sc.Events {
		switch e.actions() {
		case 0:
			return fmt.Errorf("%w: index %d", ErrEmptyEvent, i)
		case 1:
		default:
			return fmt.Errorf("%w: index %d", ErrAmbiguousEvent, i)
		}
		if e.Set != nil {
			if _, err := pattern.Parse(*e.Set); err != nil {
				return fmt.Errorf("trace: event %d: %w", i, err)
			}
		}
	}
	return nil
}

// Or fills the zero or negative dimensions of c from def.
func (c Canvas) Or(def Canvas) Canvas {
	if c.Width <= 0 {
		c.Width = def.Width
	}
	if c.Height <= 0 {
		c.Height = def.Height
	}
	if c.DotSize <= 0 {
		c.DotSize = def.DotSize
	}
	return c
}

// Frames lays the script's grid out on its canvas, falling back to
// DefaultCanvas for missing dimensions.
func (sc Script) Frames() []geometry.Rect {
	c := sc.Canvas.Or(DefaultCanvas)
	return geometry.Layout(sc.GridSize, c.Width, c.Height, c.DotSize)
}

// NewSession builds a session for the script on a fresh ManualClock, with the
// script's initial pattern and layout applied. opts are applied after the
// script's own, so callers may add hooks or a logger.
func (sc Script) NewSession(opts ...patternlock.Option) (*patternlock.Session, *ManualClock, error) {
	if err := sc.Validate(); err != nil {
		return nil, nil, err
	}

	clk := NewManualClock()
	base := []patternlock.Option{patternlock.WithClock(clk)}
	if sc.Initial != "" {
		p, _ := pattern.Parse(sc.Initial)
		base = append(base, patternlock.WithInitialPattern(p))
	}

	s, err := patternlock.New(sc.GridSize, append(base, opts...)...)
	if err != nil {
		return nil, nil, fmt.Errorf("trace: %w", err)
	}
	s.SetLayout(sc.Frames())
	return s, clk, nil
}
