package observ

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimerPhases(t *testing.T) {
	tm := NewTimer()
	i := tm.Begin("lex")
	time.Sleep(time.Millisecond)
	tm.End(i, "12 tokens")
	tm.Track("parse", func() string { return "" })
	tm.End(99, "ignored")

	rep := tm.Report()
	require.Len(t, rep.Phases, 2)
	assert.Equal(t, "lex", rep.Phases[0].Name)
	assert.Equal(t, "12 tokens", rep.Phases[0].Note)
	assert.GreaterOrEqual(t, rep.Phases[0].DurationMS, 1.0)
	assert.GreaterOrEqual(t, rep.TotalMS, rep.Phases[0].DurationMS)

	s := tm.Summary()
	assert.True(t, strings.HasPrefix(s, "timings:\n"))
	assert.Contains(t, s, "// 12 tokens")
	assert.Contains(t, s, "total")
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	assert.Equal(t, -1, tm.Begin("x"))
	tm.End(0, "")
	assert.Empty(t, tm.Report().Phases)
	assert.Nil(t, tm.Phases())
}

func TestReportMerge(t *testing.T) {
	a := Report{TotalMS: 3, Phases: []PhaseReport{{Name: "lex", DurationMS: 1, Count: 1, Note: "a"}, {Name: "parse", DurationMS: 2, Count: 1}}}
	b := Report{TotalMS: 5, Phases: []PhaseReport{{Name: "parse", DurationMS: 4, Count: 1}, {Name: "validate", DurationMS: 1, Count: 1}}}

	m := Report{}.Merge(a).Merge(b)
	assert.InDelta(t, 8.0, m.TotalMS, 1e-9)
	require.Len(t, m.Phases, 3)
	assert.Equal(t, []string{"lex", "parse", "validate"}, []string{m.Phases[0].Name, m.Phases[1].Name, m.Phases[2].Name})
	assert.InDelta(t, 6.0, m.Phases[1].DurationMS, 1e-9)
	assert.Equal(t, 2, m.Phases[1].Count)
	assert.Equal(t, "a", m.Phases[0].Note)
	assert.Contains(t, m.Summary(), "x2")

	// inputs untouched
	assert.InDelta(t, 2.0, a.Phases[1].DurationMS, 1e-9)
}
