// Package terminal drives a pattern-lock session from mouse input in a
// tcell screen.
//
// The host lays the grid out on the screen, feeds Button1 drags to
// Session.Drag, turns the release into Session.End and redraws from
// Session.Snapshot after every event. The session's error auto-clear is
// posted back into the event loop as an interrupt event, so every session
// call happens on the goroutine running Run.
package terminal

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/gdamore/tcell/v2"

	patternlock "github.com/codeninelabs/cnl-patternlock"
	"github.com/codeninelabs/cnl-patternlock/geometry"
	"github.com/codeninelabs/cnl-patternlock/internal/logging"
)

// DotSize is the side of a dot's hit box, in cells.
const DotSize = 3

const help = "drag to draw · r reset · q quit"

var (
	styleDot      = tcell.StyleDefault
	styleSelected = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleError    = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleLine     = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleStatus   = tcell.StyleDefault.Reverse(true)
)

// quit is posted as interrupt data to stop Run.
type quit struct{}

// Config holds the host's settings.
type Config struct {
	GridSize int
	// Hooks are combined with the host's own and installed on the session.
	Hooks  patternlock.Hooks
	Logger *slog.Logger
	// Options are passed to patternlock.New after the host's defaults.
	Options []patternlock.Option
}

// Host owns a screen and the session drawn on it.
type Host struct {
	screen  tcell.Screen
	session *patternlock.Session
	log     *slog.Logger

	pressed     bool
	last        string
	completions []patternlock.Completion
}

// New builds a host and its session. The screen must already be initialised.
func New(screen tcell.Screen, cfg Config) (*Host, error) {
	h := &Host{screen: screen, log: cfg.Logger}
	if h.log == nil {
		h.log = logging.NewNop()
	}

	opts := []patternlock.Option{
		patternlock.WithLogger(h.log),
		patternlock.WithDispatcher(h.post),
		patternlock.WithHooks(patternlock.CombineHooks(patternlock.Hooks{
			OnComplete: h.onComplete,
		}, cfg.Hooks)),
	}
	s, err := patternlock.New(cfg.GridSize, append(opts, cfg.Options...)...)
	if err != nil {
		return nil, fmt.Errorf("terminal: %w", err)
	}
	h.session = s
	h.relayout()

	return h, nil
}

// Session returns the session the host drives.
func (h *Host) Session() *patternlock.Session {
	return h.session
}

// Completions returns every completion reported so far.
func (h *Host) Completions() []patternlock.Completion {
	return append([]patternlock.Completion(nil), h.completions...)
}

// Run polls events until the user quits, the screen is finalised or ctx is
// done. It does not call Fini.
func (h *Host) Run(ctx context.Context) error {
	h.screen.EnableMouse()
	defer h.screen.DisableMouse()
	defer h.session.Close()

	stop := context.AfterFunc(ctx, func() {
		_ = h.screen.PostEvent(tcell.NewEventInterrupt(quit{}))
	})
	defer stop()

	h.draw()
	for {
		ev := h.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if !h.handleEvent(ev) {
			return ctx.Err()
		}
		h.draw()
	}
}

// post hands fn to the event loop. A full queue drops it; the next raise or
// Reset supersedes a lost auto-clear.
func (h *Host) post(fn func()) {
	if err := h.screen.PostEvent(tcell.NewEventInterrupt(fn)); err != nil {
		h.log.Warn("dropped session callback", "error", err)
	}
}

// handleEvent applies ev to the session. It returns false to stop the loop.
func (h *Host) handleEvent(ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventResize:
		h.relayout()
		h.screen.Sync()

	case *tcell.EventKey:
		switch {
		case e.Key() == tcell.KeyEscape, e.Key() == tcell.KeyCtrlC:
			return false
		case e.Key() == tcell.KeyRune && e.Rune() == 'q':
			return false
		case e.Key() == tcell.KeyRune && e.Rune() == 'r':
			h.pressed = false
			h.session.Reset()
		}

	case *tcell.EventMouse:
		x, y := e.Position()
		pos := geometry.V(float64(x), float64(y))
		if e.Buttons()&tcell.Button1 != 0 {
			h.pressed = true
			h.session.Drag(pos)
			return true
		}
		if h.pressed {
			h.pressed = false
			h.session.End()
		}

	case *tcell.EventInterrupt:
		switch d := e.Data().(type) {
		case quit:
			return false
		case func():
			d()
		}
	}
	return true
}

func (h *Host) onComplete(c patternlock.Completion) {
	h.completions = append(h.completions, c)
	h.last = fmt.Sprintf("%s %s", c.Result, c.Pattern)
}

// relayout spreads the grid over the screen, leaving the bottom row for status.
func (h *Host) relayout() {
	w, ht := h.screen.Size()
	if ht > 1 {
		ht--
	}
	h.session.SetLayout(geometry.Layout(h.session.Grid().Size(), float64(w), float64(ht), DotSize))
}

func (h *Host) draw() {
	h.screen.Clear()
	snap := h.session.Snapshot()
	grid := h.session.Grid()

	line := styleLine
	mark := styleSelected
	if snap.Line == patternlock.LineError {
		line, mark = styleError, styleError
	}

	// Lines first so the dots sit on top of them.
	var prev geometry.Vec
	for i, p := range snap.Selected {
		r, ok := h.session.Frame(p)
		if !ok {
			continue
		}
		c := r.Center()
		if i > 0 {
			h.drawLine(prev, c, line)
		}
		prev = c
	}
	if snap.HasPointer && len(snap.Selected) > 0 {
		h.drawLine(prev, snap.Pointer, line)
	}

	for i, p := range grid.Points() {
		r, ok := h.session.Frame(p)
		if !ok {
			continue
		}
		x, y := cell(r.Center())
		if snap.Dots[i] || (snap.ValidationError != "" && snap.Selected.Contains(p)) {
			h.screen.SetContent(x, y, '●', nil, mark)
		} else {
			h.screen.SetContent(x, y, 'o', nil, styleDot)
		}
	}

	h.drawStatus(snap)
	h.screen.Show()
}

func (h *Host) drawStatus(snap patternlock.Snapshot) {
	w, ht := h.screen.Size()
	if ht == 0 {
		return
	}
	text := fmt.Sprintf(" %s │ %s", snap.State, help)
	if h.last != "" {
		text += " │ last: " + h.last
	}
	if snap.ValidationError != "" {
		text += " │ " + snap.ValidationError
	}

	x := 0
	for _, r := range text {
		if x >= w {
			break
		}
		h.screen.SetContent(x, ht-1, r, nil, styleStatus)
		x++
	}
	for ; x < w; x++ {
		h.screen.SetContent(x, ht-1, ' ', nil, styleStatus)
	}
}

// drawLine plots the cells between a and b with Bresenham's algorithm,
// leaving both endpoints untouched.
func (h *Host) drawLine(a, b geometry.Vec, style tcell.Style) {
	x0, y0 := cell(a)
	x1, y1 := cell(b)
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}

	x, y := x0, y0
	err := dx + dy
	for x != x1 || y != y1 {
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
		if x == x1 && y == y1 {
			break
		}
		h.screen.SetContent(x, y, '∙', nil, style)
	}
}

// cell maps a screen position to the cell drawn for it.
func cell(v geometry.Vec) (int, int) {
	return int(math.Round(v.X)), int(math.Round(v.Y))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
