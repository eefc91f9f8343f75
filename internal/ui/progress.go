// Package ui renders live lint progress in the terminal with Bubble Tea.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"bwqlint/internal/diag"
	"bwqlint/internal/driver"
)

// Status labels shown next to each file.
const (
	statusQueued   = "queued"
	statusLinting  = "linting"
	statusClean    = "clean"
	statusWarnings = "warnings"
	statusErrors   = "errors"
	statusCached   = "cached"
)

// maxListed bounds the file list; longer runs show only the tail.
const maxListed = 20

type progressModel struct {
	title    string
	events   <-chan driver.ProgressEvent
	spinner  spinner.Model
	prog     progress.Model
	items    []fileItem
	index    map[string]int
	finished int
	width    int
	done     bool
}

type fileItem struct {
	path     string
	status   string
	detail   string
	finished bool
}

type eventMsg driver.ProgressEvent
type doneMsg struct{}

// ChannelSink forwards driver progress into ch. The caller closes ch when
// the run ends, which also ends the model.
func ChannelSink(ch chan<- driver.ProgressEvent) driver.ProgressSink {
	return func(ev driver.ProgressEvent) { ch <- ev }
}

// NewProgressModel returns a Bubble Tea model that renders lint progress
// for files, fed by events.
func NewProgressModel(title string, files []string, events <-chan driver.ProgressEvent) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]fileItem, 0, len(files))
	index := make(map[string]int, len(files))
	for i, file := range files {
		items = append(items, fileItem{path: file, status: statusQueued})
		index[file] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		index:   index,
		width:   80,
	}
}

// Aborted reports whether the final model returned by tea.Program.Run quit
// before the event stream was closed (ctrl+c).
func Aborted(final tea.Model) bool {
	m, ok := final.(*progressModel)
	return ok && !m.done
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(driver.ProgressEvent(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = max(10, msg.Width-4)
		}
		return m, nil
	case progress.FrameMsg:
		pm, cmd := m.prog.Update(msg)
		m.prog = pm.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := fmt.Sprintf("%s (%d/%d)", m.title, m.finished, len(m.items))
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	nameWidth := max(20, m.width-12-4)
	shown := m.items
	if len(shown) > maxListed {
		fmt.Fprintf(&b, "  %12s %d more\n", "…", len(shown)-maxListed)
		shown = shown[len(shown)-maxListed:]
	}
	for _, item := range shown {
		line := fmt.Sprintf("  %s %s", styleStatus(item.status).Render(fmt.Sprintf("%12s", item.status)), truncate(item.path, nameWidth))
		if item.detail != "" {
			line += "  " + lipgloss.NewStyle().Faint(true).Render(item.detail)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	return b.String()
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev driver.ProgressEvent) tea.Cmd {
	idx, ok := m.index[ev.Path]
	if !ok {
		return nil
	}
	item := &m.items[idx]
	switch ev.Status {
	case driver.ProgressQueued:
		item.status = statusQueued
		return nil
	case driver.ProgressStarted:
		item.status = statusLinting
		return nil
	case driver.ProgressDone:
		if !item.finished {
			item.finished = true
			m.finished++
		}
		item.status, item.detail = outcome(ev.Report)
	}
	return m.prog.SetPercent(float64(m.finished) / float64(len(m.items)))
}

// outcome condenses a report into a status label and a short detail.
func outcome(rep *driver.Report) (string, string) {
	switch {
	case rep == nil:
		return statusClean, ""
	case rep.Err != nil:
		return statusErrors, rep.Err.Error()
	case rep.Fatal != nil:
		return statusErrors, rep.Fatal.Code.ID() + " " + rep.Fatal.Message
	}
	errs, warns := rep.Count(diag.SevError), rep.Count(diag.SevWarning)
	switch {
	case errs > 0:
		return statusErrors, plural(errs, "error") + ", " + plural(warns, "warning")
	case warns > 0:
		return statusWarnings, plural(warns, "warning")
	case rep.Cached:
		return statusCached, ""
	default:
		return statusClean, ""
	}
}

func styleStatus(status string) lipgloss.Style {
	switch status {
	case statusClean, statusCached:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case statusErrors:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case statusWarnings:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	case statusLinting:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
