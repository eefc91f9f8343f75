package driver

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bwqlint/internal/ast"
	"bwqlint/internal/diag"
	"bwqlint/internal/source"
	"bwqlint/internal/token"
	"bwqlint/internal/trace"
	"bwqlint/internal/validate/rules"
)

func writeFile(t *testing.T, path, text string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(text), 0o600))
}

func TestLintClean(t *testing.T) {
	rep := Lint(context.Background(), "", "apple AND banana", Options{})
	assert.Equal(t, "<query>", rep.Name)
	assert.NotNil(t, rep.Root)
	assert.Nil(t, rep.Fatal)
	assert.Empty(t, rep.Diagnostics)
	assert.False(t, rep.HasErrors())
}

func TestLintFindingsInEngineOrder(t *testing.T) {
	rep := Lint(context.Background(), "q", "a* OR a????b", Options{})
	require.Len(t, rep.Diagnostics, 2)
	assert.Equal(t, diag.SevError, rep.Diagnostics[0].Severity)
	assert.Equal(t, "wildcard-performance", rep.Diagnostics[0].Rule)
	assert.Equal(t, diag.PerfReplacement, rep.Diagnostics[1].Code)
	assert.True(t, rep.HasErrors())
	assert.Equal(t, 1, rep.Count(diag.SevError))
	assert.Equal(t, 1, rep.Count(diag.SevWarning))
}

func TestLintFatal(t *testing.T) {
	tests := []struct {
		query string
		code  diag.Code
	}{
		{`apple "abc`, diag.LexUnterminatedString},
		{"apple $", diag.LexUnknownChar},
		{"apple AND", diag.SynExpectExpression},
		{"", diag.SynEmptyQuery},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rep := Lint(context.Background(), "q", tt.query, Options{})
			require.NotNil(t, rep.Fatal)
			assert.Nil(t, rep.Root)
			require.Len(t, rep.Diagnostics, 1)
			assert.Equal(t, tt.code, rep.Fatal.Code)
			assert.Same(t, &rep.Diagnostics[0], rep.Fatal)
			assert.True(t, rep.HasErrors())
		})
	}
}

func TestWarningPolicy(t *testing.T) {
	rep := Lint(context.Background(), "q", "a????b", Options{NoWarnings: true})
	assert.Empty(t, rep.Diagnostics)
	assert.False(t, rep.HasErrors())

	rep = Lint(context.Background(), "q", "a????b", Options{WarningsAsErrors: true})
	require.Len(t, rep.Diagnostics, 1)
	assert.Equal(t, diag.SevError, rep.Diagnostics[0].Severity)
	assert.Equal(t, diag.PerfReplacement, rep.Diagnostics[0].Code)
	assert.True(t, rep.HasErrors())
}

func TestMaxDiagnostics(t *testing.T) {
	rep := Lint(context.Background(), "q", "a* OR b* OR c*", Options{MaxDiagnostics: 2})
	assert.Len(t, rep.Diagnostics, 2)
	assert.True(t, rep.Truncated)

	rep = Lint(context.Background(), "q", "a* OR b* OR c*", Options{})
	assert.Len(t, rep.Diagnostics, 3)
	assert.False(t, rep.Truncated)
}

func TestRuleOverrides(t *testing.T) {
	rs, err := rules.Build(map[string]string{"wildcard-performance": "off"})
	require.NoError(t, err)
	rep := Lint(context.Background(), "q", "a*", Options{Rules: rs})
	assert.Empty(t, rep.Diagnostics)
}

func TestTimings(t *testing.T) {
	rep := Lint(context.Background(), "q", "apple", Options{Timings: true})
	require.NotNil(t, rep.Timing)
	var names []string
	for _, p := range rep.Timing.Phases {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"lex", "parse", "validate"}, names)

	assert.Nil(t, Lint(context.Background(), "q", "apple", Options{}).Timing)

	total := TimingSummary([]*Report{rep, rep, nil})
	require.Len(t, total.Phases, 3)
	assert.Equal(t, 2, total.Phases[0].Count)
}

func TestTraceSpans(t *testing.T) {
	ring := trace.NewRingTracer(64, trace.LevelDebug)
	ctx := trace.WithTracer(context.Background(), ring)
	Lint(ctx, "q", "a*", Options{})

	var names []string
	for _, ev := range ring.Snapshot() {
		if ev.Kind == trace.KindSpanBegin || ev.Kind == trace.KindPoint {
			names = append(names, ev.Name)
		}
	}
	assert.Equal(t, []string{"query:q", "lex", "parse", "validate", "wildcard-performance"}, names)
}

func TestDiskCache(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	require.NoError(t, err)
	opts := Options{Cache: cache}

	first := Lint(context.Background(), "q", "a* OR a????b", opts)
	assert.False(t, first.Cached)
	second := Lint(context.Background(), "q", "a* OR a????b", opts)
	assert.True(t, second.Cached)
	assert.Nil(t, second.Root)

	require.Len(t, second.Diagnostics, len(first.Diagnostics))
	for i := range first.Diagnostics {
		a, b := first.Diagnostics[i], second.Diagnostics[i]
		assert.Equal(t, a.Severity, b.Severity)
		assert.Equal(t, a.Code, b.Code)
		assert.Equal(t, a.Rule, b.Rule)
		assert.Equal(t, a.Message, b.Message)
		assert.Equal(t, a.Span, b.Span)
	}

	// a different rule selection must miss
	rs, err := rules.Build(map[string]string{"short-term": "off"})
	require.NoError(t, err)
	third := Lint(context.Background(), "q", "a* OR a????b", Options{Cache: cache, Rules: rs})
	assert.False(t, third.Cached)

	// policy is applied after the cache
	quiet := Lint(context.Background(), "q", "a* OR a????b", Options{Cache: cache, NoWarnings: true})
	assert.True(t, quiet.Cached)
	assert.Len(t, quiet.Diagnostics, 1)
}

func TestDiskCacheKeyCoversParserOptions(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	const nested = "((((apple))))"
	rep := Lint(ctx, "q", nested, Options{Cache: cache})
	require.Nil(t, rep.Fatal)

	shallow := Lint(ctx, "q", nested, Options{Cache: cache, MaxDepth: 2})
	assert.False(t, shallow.Cached)
	require.NotNil(t, shallow.Fatal)
	assert.Equal(t, Lint(ctx, "q", nested, Options{MaxDepth: 2}).Fatal.Code, shallow.Fatal.Code)

	// 0 and the parser default are the same limit
	assert.True(t, Lint(ctx, "q", nested, Options{Cache: cache, MaxDepth: 256}).Cached)

	const scoped = "title:apple"
	require.Nil(t, Lint(ctx, "q", scoped, Options{Cache: cache}).Fatal)
	fields := ast.NewFieldRegistry([]ast.FieldSpec{{Type: ast.FieldSite, Name: "site"}})
	narrow := Lint(ctx, "q", scoped, Options{Cache: cache, Fields: fields})
	assert.False(t, narrow.Cached)
	assert.NotNil(t, narrow.Fatal)
}

func TestDiskCacheFatal(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	require.NoError(t, err)
	Lint(context.Background(), "q", "apple AND", Options{Cache: cache})
	rep := Lint(context.Background(), "q", "apple AND", Options{Cache: cache})
	assert.True(t, rep.Cached)
	require.NotNil(t, rep.Fatal)
	assert.Equal(t, diag.SynExpectExpression, rep.Fatal.Code)
}

func TestDiskCacheMissAndDrop(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	require.NoError(t, err)
	key := Key([]byte("apple"), "a,b")
	assert.NotEqual(t, key, Key([]byte("apple"), "a"))

	var out DiskPayload
	hit, err := cache.Get(key, &out)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, cache.Put(key, &DiskPayload{}))
	hit, err = cache.Get(key, &out)
	require.NoError(t, err)
	assert.True(t, hit)

	require.NoError(t, cache.DropAll())
	hit, err = cache.Get(key, &out)
	require.NoError(t, err)
	assert.False(t, hit)

	var nilCache *DiskCache
	hit, err = nilCache.Get(key, &out)
	assert.NoError(t, err)
	assert.False(t, hit)
}

func TestLintFileMissing(t *testing.T) {
	rep := LintFile(context.Background(), filepath.Join(t.TempDir(), "none.bwq"), Options{})
	require.Error(t, rep.Err)
	assert.True(t, rep.HasErrors())
}

func TestCollectPaths(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.bwq"), "b")
	writeFile(t, filepath.Join(dir, "a.bwq"), "a")
	writeFile(t, filepath.Join(dir, "sub", "c.bwq"), "c")
	writeFile(t, filepath.Join(dir, "notes.txt"), "x")
	writeFile(t, filepath.Join(dir, ".hidden", "d.bwq"), "d")
	extra := filepath.Join(dir, "notes.txt")

	got, err := CollectPaths([]string{dir, extra, filepath.Join(dir, "a.bwq")})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.bwq"),
		filepath.Join(dir, "b.bwq"),
		extra,
		filepath.Join(dir, "sub", "c.bwq"),
	}, got)

	_, err = CollectPaths([]string{filepath.Join(dir, "missing")})
	assert.Error(t, err)
}

func TestLintPaths(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "c.bwq"), "apple")
	writeFile(t, filepath.Join(dir, "a.bwq"), "a*")
	writeFile(t, filepath.Join(dir, "b.bwq"), "apple AND")

	var (
		mu     sync.Mutex
		events = map[ProgressStatus]int{}
	)
	opts := Options{Jobs: 2, Progress: func(ev ProgressEvent) {
		mu.Lock()
		defer mu.Unlock()
		events[ev.Status]++
		assert.Equal(t, 3, ev.Total)
	}}

	reps, err := LintPaths(context.Background(), []string{dir}, opts)
	require.NoError(t, err)
	require.Len(t, reps, 3)
	assert.Equal(t, filepath.Join(dir, "a.bwq"), reps[0].Name)
	assert.Equal(t, filepath.Join(dir, "b.bwq"), reps[1].Name)
	assert.Equal(t, filepath.Join(dir, "c.bwq"), reps[2].Name)
	assert.NotNil(t, reps[1].Fatal)
	assert.Equal(t, map[ProgressStatus]int{ProgressQueued: 3, ProgressStarted: 3, ProgressDone: 3}, events)

	s := Summarize(reps)
	assert.Equal(t, Summary{Files: 3, Failed: 2, Errors: 2}, s)
}

func TestLintPathsCancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.bwq"), "apple")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := LintPaths(ctx, []string{dir}, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLintPathsEmpty(t *testing.T) {
	reps, err := LintPaths(context.Background(), []string{t.TempDir()}, Options{})
	assert.NoError(t, err)
	assert.Empty(t, reps)
}

func TestTokenizeKeepsPrefix(t *testing.T) {
	res := Tokenize(source.NewVirtual("q", `apple "abc`), false)
	require.NotNil(t, res.Fatal)
	assert.Equal(t, diag.LexUnterminatedString, res.Fatal.Code)
	require.Len(t, res.Tokens, 1)
	assert.Equal(t, token.Word, res.Tokens[0].Kind)

	res = Tokenize(source.NewVirtual("q", "a b"), true)
	assert.Nil(t, res.Fatal)
	kinds := make([]token.Kind, len(res.Tokens))
	for i, tok := range res.Tokens {
		kinds[i] = tok.Kind
	}
	assert.Equal(t, []token.Kind{token.Word, token.Whitespace, token.Word, token.EOF}, kinds)
}

func TestParseHelper(t *testing.T) {
	res := Parse(source.NewVirtual("q", "apple OR banana"), Options{})
	assert.Nil(t, res.Fatal)
	assert.NotNil(t, res.Root)

	res = Parse(source.NewVirtual("q", "(apple"), Options{})
	require.NotNil(t, res.Fatal)
	assert.Equal(t, diag.SynUnclosedDelimiter, res.Fatal.Code)
}

func TestWatcherRelintsChangedFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "q.bwq")
	writeFile(t, path, "apple")

	got := make(chan *Report, 8)
	w, err := NewWatcher([]string{dir}, Options{}, zap.NewNop(), func(r *Report) { got <- r })
	require.NoError(t, err)
	w.SetDebounce(20 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	writeFile(t, filepath.Join(dir, "ignored.txt"), "a*")
	writeFile(t, path, "a*")

	// an editor save may surface as several events; wait for the final content
	deadline := time.After(5 * time.Second)
	for found := false; !found; {
		select {
		case rep := <-got:
			assert.Equal(t, path, rep.Name)
			found = len(rep.Diagnostics) == 1 && rep.Diagnostics[0].Rule == "wildcard-performance"
		case <-deadline:
			t.Fatal("no report after write")
		}
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
