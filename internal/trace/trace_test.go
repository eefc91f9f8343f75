package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{
		"off": LevelOff, "ERROR": LevelError, "phase": LevelPhase,
		"Detail": LevelDetail, "debug": LevelDebug, "": LevelOff,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestShouldEmit(t *testing.T) {
	assert.False(t, LevelOff.ShouldEmit(ScopeDriver))
	assert.False(t, LevelError.ShouldEmit(ScopeDriver))
	assert.True(t, LevelPhase.ShouldEmit(ScopeQuery))
	assert.False(t, LevelPhase.ShouldEmit(ScopePass))
	assert.True(t, LevelDetail.ShouldEmit(ScopePass))
	assert.False(t, LevelDetail.ShouldEmit(ScopeRule))
	assert.True(t, LevelDebug.ShouldEmit(ScopeRule))
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	require.NoError(t, err)
	assert.False(t, tr.Enabled())
	sp := Begin(tr, ScopeDriver, "lint", 0)
	assert.Zero(t, sp.ID())
	assert.Zero(t, sp.End(""))
}

func TestStreamText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatText)

	root := Begin(tr, ScopeQuery, "query:a.bwq", 0)
	child := Begin(tr, ScopePass, "parse", root.ID())
	Begin(tr, ScopeRule, "short-term", child.ID()).End("")
	child.WithExtra("nodes", "3").WithExtra("depth", "2").End("ok")
	root.End("")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "[query] → query:a.bwq")
	assert.Contains(t, lines[1], "[pass]   → parse")
	assert.Contains(t, lines[2], "← parse (ok) {depth=2, nodes=3}")
	assert.Contains(t, lines[3], "← query:a.bwq")
}

func TestStreamNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	sp := Begin(tr, ScopeDriver, "lint", 0)
	sp.End("2 files")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var ev map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &ev))
	assert.Equal(t, "end", ev["kind"])
	assert.Equal(t, "driver", ev["scope"])
	assert.Equal(t, "lint", ev["name"])
	assert.Equal(t, "2 files", ev["detail"])
}

func TestRingWraps(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		r.Emit(&Event{Kind: KindPoint, Scope: ScopeRule, Name: name})
	}
	snap := r.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, "c", snap[0].Name)
	assert.Equal(t, "e", snap[2].Name)
	assert.Less(t, snap[0].Seq, snap[2].Seq)

	var buf bytes.Buffer
	require.NoError(t, r.Dump(&buf, FormatText))
	assert.Equal(t, 3, strings.Count(buf.String(), "\n"))
}

func TestMultiFansOut(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf})
	require.NoError(t, err)

	Begin(tr, ScopeDriver, "lint", 0).End("")
	Begin(tr, ScopePass, "lex", 0).End("") // filtered

	m, ok := tr.(*MultiTracer)
	require.True(t, ok)
	ring, ok := m.Ring()
	require.True(t, ok)
	assert.Len(t, ring.Snapshot(), 2)
	assert.Equal(t, 2, strings.Count(buf.String(), "\n"))
	assert.NoError(t, tr.Close())
}

func TestContextPropagation(t *testing.T) {
	ring := NewRingTracer(16, LevelDebug)
	ctx := WithTracer(context.Background(), ring)

	ctx, root := Start(ctx, ScopeDriver, "lint")
	_, child := Start(ctx, ScopeQuery, "query:q")
	Point(ctx, ScopePass, "cache-hit", "q")
	child.End("")
	root.End("")

	snap := ring.Snapshot()
	require.Len(t, snap, 5)
	assert.Equal(t, root.ID(), snap[1].ParentID)
	assert.Equal(t, KindPoint, snap[2].Kind)
	assert.Equal(t, root.ID(), snap[2].ParentID)
}

func TestFromContextDefaults(t *testing.T) {
	assert.Equal(t, Nop, FromContext(context.Background()))
	assert.Equal(t, SpanContext{}, CurrentSpan(context.Background()))
	ctx, sp := Start(context.Background(), ScopeDriver, "x")
	assert.Zero(t, sp.ID())
	assert.Equal(t, context.Background(), ctx)
}
