package metrics_test

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	patternlock "github.com/codeninelabs/cnl-patternlock"
	"github.com/codeninelabs/cnl-patternlock/geometry"
	"github.com/codeninelabs/cnl-patternlock/gridgraph"
	"github.com/codeninelabs/cnl-patternlock/metrics"
	"github.com/codeninelabs/cnl-patternlock/pattern"
)

func TestCollector_CountsSessionActivity(t *testing.T) {
	reg := prometheus.NewRegistry()
	col, err := metrics.NewCollector(reg)
	require.NoError(t, err)

	s, err := patternlock.New(3, patternlock.WithHooks(col.Hooks()))
	require.NoError(t, err)
	defer s.Close()

	for _, p := range []gridgraph.Point{{0, 0}, {1, 0}, {2, 0}} {
		s.Extend(geometry.V(0, 0), p)
	}
	s.End()

	expected := `
# HELP patternlock_attempts_total Completed pattern attempts by validation result.
# TYPE patternlock_attempts_total counter
patternlock_attempts_total{result="failure"} 0
patternlock_attempts_total{result="success"} 1
# HELP patternlock_dots_selected_total Dots appended to a pattern during drags.
# TYPE patternlock_dots_selected_total counter
patternlock_dots_selected_total 3
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"patternlock_attempts_total", "patternlock_dots_selected_total"))
	n, err := testutil.GatherAndCount(reg, "patternlock_pattern_length")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCollector_FailureLabel(t *testing.T) {
	reg := prometheus.NewRegistry()
	col, err := metrics.NewCollector(reg)
	require.NoError(t, err)

	h := col.Hooks()
	h.OnComplete(patternlock.Completion{Result: pattern.Failure(nil)})
	h.OnBacktrack(patternlock.DotEvent{})
	h.OnErrorCleared()

	mfs, err := reg.Gather()
	require.NoError(t, err)
	got := map[string]float64{}
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			if c := m.GetCounter(); c != nil {
				key := mf.GetName()
				for _, lp := range m.GetLabel() {
					key += "/" + lp.GetValue()
				}
				got[key] = c.GetValue()
			}
		}
	}
	assert.Equal(t, 1.0, got["patternlock_attempts_total/failure"])
	assert.Equal(t, 0.0, got["patternlock_attempts_total/success"])
	assert.Equal(t, 1.0, got["patternlock_backtracks_total"])
	assert.Equal(t, 1.0, got["patternlock_errors_cleared_total"])
}

func TestNewCollector_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := metrics.NewCollector(reg)
	require.NoError(t, err)

	_, err = metrics.NewCollector(reg)
	assert.Error(t, err)
}
