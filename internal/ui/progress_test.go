package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bwqlint/internal/diag"
	"bwqlint/internal/driver"
	"bwqlint/internal/source"
)

func newModel(files ...string) *progressModel {
	return NewProgressModel("linting", files, nil).(*progressModel)
}

func TestApplyEvents(t *testing.T) {
	m := newModel("a.bwq", "b.bwq")
	m.Update(eventMsg{Path: "a.bwq", Status: driver.ProgressStarted})
	assert.Equal(t, statusLinting, m.items[0].status)

	warn := diag.NewWarning(diag.PerfReplacement, source.Span{}, "slow")
	m.Update(eventMsg{Path: "a.bwq", Status: driver.ProgressDone, Report: &driver.Report{Diagnostics: []diag.Diagnostic{warn}}})
	assert.Equal(t, statusWarnings, m.items[0].status)
	assert.Equal(t, "1 warning", m.items[0].detail)
	assert.Equal(t, 1, m.finished)

	// a repeated done event is not counted twice
	m.Update(eventMsg{Path: "a.bwq", Status: driver.ProgressDone, Report: &driver.Report{}})
	assert.Equal(t, 1, m.finished)
	assert.Equal(t, statusClean, m.items[0].status)

	m.Update(eventMsg{Path: "unknown.bwq", Status: driver.ProgressDone})
	assert.Equal(t, 1, m.finished)
}

func TestOutcome(t *testing.T) {
	fatal := diag.NewError(diag.SynEmptyQuery, source.Span{}, "Query is empty")
	tests := []struct {
		name   string
		rep    *driver.Report
		status string
	}{
		{"nil", nil, statusClean},
		{"io", &driver.Report{Err: errors.New("denied")}, statusErrors},
		{"fatal", &driver.Report{Fatal: &fatal, Diagnostics: []diag.Diagnostic{fatal}}, statusErrors},
		{"cached", &driver.Report{Cached: true}, statusCached},
		{"clean", &driver.Report{}, statusClean},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := outcome(tt.rep)
			assert.Equal(t, tt.status, status)
		})
	}
}

func TestViewListsFiles(t *testing.T) {
	m := newModel("a.bwq", "b.bwq")
	m.Update(eventMsg{Path: "b.bwq", Status: driver.ProgressDone, Report: &driver.Report{}})
	m.Update(doneMsg{})

	view := m.View()
	require.NotEmpty(t, view)
	assert.Contains(t, view, "done: linting (1/2)")
	assert.Contains(t, view, "a.bwq")
	assert.Contains(t, view, "queued")
	assert.Contains(t, view, "clean")

	assert.Empty(t, newModel().View())
}

func TestViewTruncatesLongLists(t *testing.T) {
	files := make([]string, maxListed+5)
	for i := range files {
		files[i] = strings.Repeat("x", i+1) + ".bwq"
	}
	view := newModel(files...).View()
	assert.Contains(t, view, "5 more")
	assert.Contains(t, view, files[len(files)-1])
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ab", truncate("abcdef", 2))
}

func TestChannelSink(t *testing.T) {
	ch := make(chan driver.ProgressEvent, 1)
	ChannelSink(ch)(driver.ProgressEvent{Path: "a.bwq"})
	assert.Equal(t, "a.bwq", (<-ch).Path)
}

func TestAborted(t *testing.T) {
	m := newModel("a.bwq")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.True(t, Aborted(m))

	m = newModel("a.bwq")
	m.Update(doneMsg{})
	assert.False(t, Aborted(m))

	assert.False(t, Aborted(nil))
}
