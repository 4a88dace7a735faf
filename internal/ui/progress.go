// Package ui renders live analysis progress in the terminal.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"globalint/internal/driver"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	activeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	findingsStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// stageWeight is the share of a file's work finished once it enters stage.
var stageWeight = map[driver.Stage]float64{
	driver.StageLoad:     0.1,
	driver.StageParse:    0.3,
	driver.StageEvaluate: 0.6,
}

// fileState is the last known state of one file.
type fileState struct {
	path     string
	stage    driver.Stage
	status   driver.Status
	findings int
}

func (f fileState) finished() bool {
	return f.status == driver.StatusDone || f.status == driver.StatusError
}

// interesting files stay listed: in flight, failed, or with findings.
func (f fileState) interesting() bool {
	switch f.status {
	case driver.StatusWorking, driver.StatusError:
		return true
	case driver.StatusDone:
		return f.findings > 0
	}
	return false
}

type progressModel struct {
	title    string
	events   <-chan driver.Event
	spinner  spinner.Model
	bar      progress.Model
	files    []fileState
	byPath   map[string]int
	phase    driver.Stage // этап без конкретного файла, например общий разбор
	findings int
	width    int
	maxRows  int
	finished bool
}

type eventMsg driver.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that follows driver events for
// files. Large projects only list files in flight, failed or with findings.
// The model quits when events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = activeStyle

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 76

	m := &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     bar,
		files:   make([]fileState, len(files)),
		byPath:  make(map[string]int, len(files)),
		width:   80,
		maxRows: 12,
	}
	for i, path := range files {
		m.files[i] = fileState{path: path, status: driver.StatusQueued}
		m.byPath[path] = i
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.apply(driver.Event(msg)), m.next())
	case doneMsg:
		m.finished = true
		return m, tea.Quit
	case tea.KeyMsg:
		// анализ продолжается, интерфейс просто перестаёт рисовать
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}
	case spinner.TickMsg:
		if !m.finished {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = msg.Width - 4
		}
		if msg.Height > 0 {
			m.maxRows = max(msg.Height-6, 3)
		}
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.files) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.header()))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(m.counts()))
	b.WriteString("\n\n")

	nameWidth := max(m.width-20, 20)
	shown, hidden := 0, 0
	for _, f := range m.files {
		if !f.interesting() {
			continue
		}
		if shown == m.maxRows {
			hidden++
			continue
		}
		shown++
		b.WriteString("  ")
		b.WriteString(renderStatus(f))
		b.WriteString(" ")
		b.WriteString(truncate(f.path, nameWidth))
		if f.findings > 0 {
			b.WriteString(findingsStyle.Render(fmt.Sprintf(" (%d)", f.findings)))
		}
		b.WriteString("\n")
	}
	if hidden > 0 {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  and %d more", hidden)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.finished {
		b.WriteString(m.bar.ViewAs(1.0))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteString("\n")
	return b.String()
}

func (m *progressModel) header() string {
	title := m.title
	if label := stageLabel(m.phase); label != "" {
		title = fmt.Sprintf("%s (%s)", title, label)
	}
	if m.finished {
		return fmt.Sprintf("done: %s, %d findings", title, m.findings)
	}
	return m.spinner.View() + " " + title
}

func (m *progressModel) counts() string {
	var done, failed int
	for _, f := range m.files {
		switch f.status {
		case driver.StatusDone:
			done++
		case driver.StatusError:
			failed++
		}
	}
	s := fmt.Sprintf("%d/%d files", done+failed, len(m.files))
	if failed > 0 {
		s += fmt.Sprintf(", %d failed", failed)
	}
	return s + fmt.Sprintf(", %d findings", m.findings)
}

func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) apply(ev driver.Event) tea.Cmd {
	if ev.File == "" {
		if ev.Status == driver.StatusWorking {
			m.phase = ev.Stage
		}
		return nil
	}
	i, ok := m.byPath[ev.File]
	if !ok {
		return nil
	}
	f := &m.files[i]
	f.stage, f.status = ev.Stage, ev.Status
	if ev.Status == driver.StatusDone {
		m.findings += ev.Findings - f.findings
		f.findings = ev.Findings
	}
	return m.bar.SetPercent(m.percent())
}

func (m *progressModel) percent() float64 {
	if len(m.files) == 0 {
		return 0
	}
	total := 0.0
	for _, f := range m.files {
		if f.finished() {
			total++
			continue
		}
		if f.status == driver.StatusWorking {
			total += stageWeight[f.stage]
		}
	}
	return total / float64(len(m.files))
}

func renderStatus(f fileState) string {
	label := fmt.Sprintf("%12s", statusLabel(f))
	switch f.status {
	case driver.StatusDone:
		return doneStyle.Render(label)
	case driver.StatusError:
		return errorStyle.Render(label)
	case driver.StatusWorking:
		return activeStyle.Render(label)
	}
	return mutedStyle.Render(label)
}

func statusLabel(f fileState) string {
	switch f.status {
	case driver.StatusDone:
		return "done"
	case driver.StatusError:
		return "error"
	case driver.StatusWorking:
		return stageLabel(f.stage)
	}
	return "queued"
}

func stageLabel(stage driver.Stage) string {
	switch stage {
	case driver.StageLoad:
		return "loading"
	case driver.StageParse:
		return "parsing"
	case driver.StageEvaluate:
		return "evaluating"
	}
	return ""
}

// truncate shortens value to width display cells, keeping the tail: the
// file name matters more than the leading directories.
func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	prefix := "..."
	if width <= len(prefix) {
		prefix = ""
	}
	room := width - len(prefix)
	runes := []rune(value)
	start := len(runes)
	for used := 0; start > 0; start-- {
		w := runewidth.RuneWidth(runes[start-1])
		if used+w > room {
			break
		}
		used += w
	}
	return prefix + string(runes[start:])
}
