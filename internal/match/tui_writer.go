// Live match progress rendered with a bubbletea TUI
package match

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

// teaProgram abstracts bubbletea.Program for testing.
type teaProgram interface {
	Send(tea.Msg)
}

// progressMsg carries one completed game.
type progressMsg struct{ ProgressRow }

// benchMsg carries the benchmark sample shown in the header.
type benchMsg struct{ BenchSample }

var (
	tuiTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	tuiHeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	tuiResultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// TUIWriter renders match progress using a bubbletea program.
type TUIWriter struct {
	program teaProgram
	done    chan struct{}
}

// NewTUIWriter starts the bubbletea program and returns a TUIWriter.
func NewTUIWriter(runID string, total int) *TUIWriter {
	w := &TUIWriter{done: make(chan struct{})}
	p := tea.NewProgram(newTUIModel(runID, total), tea.WithAltScreen())
	w.program = p
	go func() {
		if _, err := p.Run(); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		close(w.done)
	}()
	return w
}

// Write implements ProgressWriter.
func (w *TUIWriter) Write(row ProgressRow) error {
	w.program.Send(progressMsg{row})
	return nil
}

// WriteBench implements BenchWriter.
func (w *TUIWriter) WriteBench(s BenchSample) error {
	w.program.Send(benchMsg{s})
	return nil
}

// Close stops the program and waits for the terminal to be restored.
func (w *TUIWriter) Close() {
	w.program.Send(tea.Quit())
	<-w.done
}

type tuiModel struct {
	runID string
	total int
	games int
	bench BenchSample

	bar   progress.Model
	vp    viewport.Model
	lines []string
	width int
	ready bool
}

func newTUIModel(runID string, total int) tuiModel {
	return tuiModel{
		runID: runID,
		total: total,
		bar:   progress.New(progress.WithDefaultGradient()),
	}
}

func (m tuiModel) Init() tea.Cmd { return nil }

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = msg.Width - 4
		if !m.ready {
			m.vp = viewport.New(msg.Width, max(msg.Height-6, 3))
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = max(msg.Height-6, 3)
		}
		m.refresh()
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case progressMsg:
		m.games++
		// Rows carry the batch size actually chosen; trust it over the
		// total guessed at construction time.
		if msg.Total > 0 {
			m.total = msg.Total
		}
		line := fmt.Sprintf("[%s] game %d/%d  %s vs %s  %s",
			msg.Timestamp.Format(time.TimeOnly), msg.Game, msg.Total,
			msg.White, msg.Black, tuiResultStyle.Render(msg.Result))
		m.lines = append(m.lines, line)
		m.refresh()
	case benchMsg:
		m.bench = msg.BenchSample
	}
	return m, nil
}

func (m *tuiModel) refresh() {
	if !m.ready {
		return
	}
	wrapped := make([]string, 0, len(m.lines))
	for _, l := range m.lines {
		wrapped = append(wrapped, wordwrap.String(l, m.vp.Width))
	}
	m.vp.SetContent(joinLines(wrapped))
	m.vp.GotoBottom()
}

func (m tuiModel) View() string {
	if !m.ready {
		return "starting..."
	}
	header := tuiTitleStyle.Render("selfplay run "+m.runID) + "\n"
	if m.bench.NPS > 0 {
		header += tuiHeaderStyle.Render(fmt.Sprintf("bench %d nps, concurrency %d", m.bench.NPS, m.bench.Concurrency)) + "\n"
	}
	ratio := 0.0
	if m.total > 0 {
		ratio = float64(m.games) / float64(m.total)
	}
	return header + m.bar.ViewAs(ratio) + "\n\n" + m.vp.View()
}

func joinLines(lines []string) string {
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "\n"
		}
		out += l
	}
	return out
}
