package terminal

import (
	"context"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	patternlock "github.com/codeninelabs/cnl-patternlock"
	"github.com/codeninelabs/cnl-patternlock/gridgraph"
	"github.com/codeninelabs/cnl-patternlock/pattern"
	"github.com/codeninelabs/cnl-patternlock/trace"
)

// newHost returns a 3×3 host on an 80×25 simulation screen. The grid is laid
// out on the top 24 rows, so dot (c,r) sits at cell (20·(c+1), 6·(r+1)).
func newHost(t *testing.T, cfg Config) (*Host, tcell.SimulationScreen) {
	t.Helper()

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 25)
	t.Cleanup(screen.Fini)

	if cfg.GridSize == 0 {
		cfg.GridSize = 3
	}
	h, err := New(screen, cfg)
	require.NoError(t, err)
	return h, screen
}

func press(x, y int) *tcell.EventMouse {
	return tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone)
}

func release(x, y int) *tcell.EventMouse {
	return tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone)
}

func contentAt(screen tcell.Screen, x, y int) rune {
	r, _, _, _ := screen.GetContent(x, y) //nolint:staticcheck // GetContent is the simulation read-back
	return r
}

func TestNew_InvalidGrid(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()

	_, err := New(screen, Config{GridSize: 0})
	assert.ErrorIs(t, err, gridgraph.ErrInvalidSize)
}

func TestLayout_FollowsScreen(t *testing.T) {
	h, _ := newHost(t, Config{})

	r, ok := h.Session().Frame(gridgraph.Pt(2, 1))
	require.True(t, ok)
	assert.Equal(t, 60.0, r.Center().X)
	assert.Equal(t, 12.0, r.Center().Y)
	assert.Equal(t, float64(DotSize), r.W)
}

func TestMouseDrag_CompletesPattern(t *testing.T) {
	var seen []string
	h, _ := newHost(t, Config{Hooks: patternlock.Hooks{
		OnComplete: func(c patternlock.Completion) { seen = append(seen, c.Pattern.String()) },
	}})

	for _, ev := range []tcell.Event{
		press(20, 6),
		press(30, 6),
		press(40, 6),
		press(60, 6),
		release(60, 6),
	} {
		assert.True(t, h.handleEvent(ev))
	}

	got := h.Completions()
	require.Len(t, got, 1)
	assert.Equal(t, "(0,0)-(1,0)-(2,0)", got[0].Pattern.String())
	assert.True(t, got[0].Result.OK())
	assert.Equal(t, []string{"(0,0)-(1,0)-(2,0)"}, seen, "caller hooks are combined")
	assert.Equal(t, patternlock.Idle, h.Session().State())
}

func TestMouseMove_WithoutPressIsIgnored(t *testing.T) {
	h, _ := newHost(t, Config{})

	assert.True(t, h.handleEvent(release(20, 6)))
	assert.Empty(t, h.Completions(), "no press, no pointer-up")
	assert.Empty(t, h.Session().Selected())
}

func TestDraw(t *testing.T) {
	h, screen := newHost(t, Config{})

	h.handleEvent(press(20, 6))
	h.handleEvent(press(40, 6))
	h.draw()

	assert.Equal(t, '●', contentAt(screen, 20, 6))
	assert.Equal(t, '●', contentAt(screen, 40, 6))
	assert.Equal(t, '∙', contentAt(screen, 30, 6), "line between the dots")
	assert.Equal(t, 'o', contentAt(screen, 60, 6))
	assert.Equal(t, 'o', contentAt(screen, 20, 18))

	var status strings.Builder
	for x := 0; x < 9; x++ {
		status.WriteRune(contentAt(screen, x, 24))
	}
	assert.Equal(t, " dragging", status.String())
}

func TestKeys(t *testing.T) {
	h, _ := newHost(t, Config{})

	h.handleEvent(press(20, 6))
	require.Len(t, h.Session().Selected(), 1)

	assert.True(t, h.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone)))
	assert.Empty(t, h.Session().Selected())
	assert.Equal(t, patternlock.Idle, h.Session().State())

	assert.False(t, h.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.False(t, h.handleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	assert.False(t, h.handleEvent(tcell.NewEventInterrupt(quit{})))
}

func TestAutoClear_RunsOnEventLoop(t *testing.T) {
	clk := trace.NewManualClock()
	h, screen := newHost(t, Config{Options: []patternlock.Option{patternlock.WithClock(clk)}})

	h.Session().SetPattern(pattern.Pattern{gridgraph.Pt(0, 0), gridgraph.Pt(2, 2)})
	require.True(t, h.Session().ShowingError())

	h.draw()
	assert.Equal(t, '●', contentAt(screen, 20, 6), "invalid pattern is shown")

	require.Equal(t, 1, clk.Flush())
	assert.True(t, h.Session().ShowingError(), "clear waits for the event loop")

	for {
		ev := screen.PollEvent()
		require.NotNil(t, ev)
		if _, ok := ev.(*tcell.EventInterrupt); ok {
			assert.True(t, h.handleEvent(ev))
			break
		}
	}
	assert.False(t, h.Session().ShowingError())
}

func TestRun_StopsOnContext(t *testing.T) {
	h, _ := newHost(t, Config{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, h.Run(ctx), context.Canceled)
}
