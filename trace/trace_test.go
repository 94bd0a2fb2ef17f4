package trace_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	patternlock "github.com/codeninelabs/cnl-patternlock"
	"github.com/codeninelabs/cnl-patternlock/gridgraph"
	"github.com/codeninelabs/cnl-patternlock/pattern"
	"github.com/codeninelabs/cnl-patternlock/trace"
)

func strp(s string) *string { return &s }

func TestLoad_YAML(t *testing.T) {
	sc, err := trace.Load(filepath.Join("testdata", "l-shape.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 3, sc.GridSize)
	assert.Equal(t, trace.Canvas{Width: 300, Height: 300, DotSize: 20}, sc.Canvas)
	require.Len(t, sc.Events, 13)
	assert.Equal(t, "move", sc.Events[0].Kind())
	assert.Equal(t, "up", sc.Events[5].Kind())
	assert.Equal(t, "set", sc.Events[6].Kind())
	assert.Equal(t, "clear_error", sc.Events[8].Kind())
	assert.Equal(t, "reset", sc.Events[9].Kind())
	assert.Equal(t, "dot", sc.Events[10].Kind())
	assert.Equal(t, gridgraph.Pt(2, 0), *sc.Events[10].Dot)
}

func TestReplay_LShape(t *testing.T) {
	sc, err := trace.Load(filepath.Join("testdata", "l-shape.yaml"))
	require.NoError(t, err)

	s, clk, err := sc.NewSession(patternlock.WithID("replay"))
	require.NoError(t, err)
	defer s.Close()

	got, err := trace.Replay(context.Background(), s, sc, trace.WithClock(clk))
	require.NoError(t, err)
	require.Len(t, got, 2, "the blocked pointer-up yields nothing")

	first := got[0]
	assert.Equal(t, "replay", first.SessionID)
	assert.Equal(t, "(0,0)-(0,1)-(0,2)-(1,2)", first.Pattern.String())
	assert.True(t, first.Result.OK())

	second := got[1]
	assert.Equal(t, pattern.Pattern{gridgraph.Pt(2, 0), gridgraph.Pt(1, 1)}, second.Pattern)
	assert.True(t, second.Result.OK())

	assert.Equal(t, patternlock.Idle, s.State())
	assert.Empty(t, s.Selected())
	assert.Zero(t, clk.Pending())
}

func TestReplay_JSONWithInitialPattern(t *testing.T) {
	sc, err := trace.Load(filepath.Join("testdata", "diagonal.json"))
	require.NoError(t, err)
	assert.Equal(t, "(0,0)-(1,1)", sc.Initial)

	s, clk, err := sc.NewSession()
	require.NoError(t, err)
	assert.Equal(t, "(0,0)-(1,1)", s.Selected().String(), "initial pattern seeded")

	got, err := trace.Replay(context.Background(), s, sc, trace.WithClock(clk))
	require.NoError(t, err)
	require.Len(t, got, 1)
	// (0,0) and (1,1) are already flagged, so only (2,2) joins.
	assert.Equal(t, "(0,0)-(1,1)-(2,2)", got[0].Pattern.String())
}

func TestReplay_ClearErrorKeepsValidationError(t *testing.T) {
	sc := trace.Script{
		GridSize: 3,
		Events: []trace.Event{
			{Set: strp("(0,0)-(2,0)")},
			{ClearError: true},
		},
	}
	s, clk, err := sc.NewSession()
	require.NoError(t, err)

	_, err = trace.Replay(context.Background(), s, sc, trace.WithClock(clk))
	require.NoError(t, err)

	assert.False(t, s.ShowingError())
	assert.Equal(t, pattern.InvalidMessage, s.ValidationError())
	assert.Equal(t, patternlock.Error, s.State())
}

func TestReplay_NoClock(t *testing.T) {
	sc := trace.Script{GridSize: 3, Events: []trace.Event{{ClearError: true}}}
	s, err := patternlock.New(3)
	require.NoError(t, err)

	_, err = trace.Replay(context.Background(), s, sc)
	assert.ErrorIs(t, err, trace.ErrNoClock)
}

func TestReplay_Canceled(t *testing.T) {
	sc, err := trace.Load(filepath.Join("testdata", "l-shape.yaml"))
	require.NoError(t, err)
	s, clk, err := sc.NewSession()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := trace.Replay(ctx, s, sc, trace.WithClock(clk))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, got)
	assert.Empty(t, s.Selected(), "no event ran")
}

func TestScript_Validate(t *testing.T) {
	cases := map[string]trace.Script{
		"NoGrid":     {},
		"Empty":      {GridSize: 3, Events: []trace.Event{{}}},
		"Ambiguous":  {GridSize: 3, Events: []trace.Event{{Up: true, Reset: true}}},
		"BadSet":     {GridSize: 3, Events: []trace.Event{{Set: strp("(0;0)")}}},
		"BadInitial": {GridSize: 3, Initial: "zero"},
	}
	for name, sc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, sc.Validate())
		})
	}

	assert.ErrorIs(t, cases["NoGrid"].Validate(), gridgraph.ErrInvalidSize)
	assert.ErrorIs(t, cases["Empty"].Validate(), trace.ErrEmptyEvent)
	assert.ErrorIs(t, cases["Ambiguous"].Validate(), trace.ErrAmbiguousEvent)
	assert.ErrorIs(t, cases["BadSet"].Validate(), pattern.ErrSyntax)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := trace.Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"grid_size": "three"}`), 0o644))
	_, err = trace.Load(bad)
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.yml")
	require.NoError(t, os.WriteFile(empty, []byte("grid_size: 3\nevents:\n  - {}\n"), 0o644))
	_, err = trace.Load(empty)
	assert.ErrorIs(t, err, trace.ErrEmptyEvent)
}

func TestScript_FramesFallback(t *testing.T) {
	sc := trace.Script{GridSize: 3, Canvas: trace.Canvas{Width: 600}}
	frames := sc.Frames()
	require.Len(t, frames, 9)
	assert.Equal(t, 150.0, frames[0].Center().X)
	assert.Equal(t, 75.0, frames[0].Center().Y, "height falls back to the default")
	assert.Equal(t, trace.DefaultCanvas.DotSize, frames[0].W)
}

func TestCanvas_Or(t *testing.T) {
	got := trace.Canvas{Height: 90}.Or(trace.Canvas{Width: 600, Height: 600, DotSize: 40})
	assert.Equal(t, trace.Canvas{Width: 600, Height: 90, DotSize: 40}, got)
}

func TestManualClock(t *testing.T) {
	clk := trace.NewManualClock()
	var fired []string

	clk.AfterFunc(2*time.Second, func() { fired = append(fired, "b") })
	clk.AfterFunc(time.Second, func() { fired = append(fired, "a") })
	stopped := clk.AfterFunc(time.Second, func() { fired = append(fired, "x") })

	assert.True(t, stopped.Stop())
	assert.False(t, stopped.Stop(), "second stop reports inactive")
	assert.Equal(t, 2, clk.Pending())

	clk.Advance(500 * time.Millisecond)
	assert.Empty(t, fired)

	clk.Advance(500 * time.Millisecond)
	assert.Equal(t, []string{"a"}, fired)

	assert.Equal(t, 1, clk.Flush())
	assert.Equal(t, []string{"a", "b"}, fired)
	assert.Equal(t, 2*time.Second, clk.Now())
	assert.Zero(t, clk.Flush())
}
