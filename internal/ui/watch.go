package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"a11ylens/internal/finding"
	"a11ylens/internal/refresh"
)

type watchModel struct {
	title   string
	events  <-chan refresh.CycleStats
	spinner spinner.Model
	last    refresh.CycleStats
	seen    bool
	failed  int
	width   int
	done    bool
}

type cycleMsg refresh.CycleStats

// NewWatchModel shows the latest refresh cycle: per-colour counts, tab stops,
// duration and the last error. It quits when events is closed.
func NewWatchModel(title string, events <-chan refresh.CycleStats) tea.Model {
	return &watchModel{
		title:   title,
		events:  events,
		spinner: newSpinner(),
		width:   80,
	}
}

func (m *watchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listen())
}

func (m *watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case cycleMsg:
		m.last = refresh.CycleStats(msg)
		m.seen = true
		if m.last.Err != nil {
			m.failed++
		}
		return m, m.listen()
	case doneMsg:
		m.done = true
		return m, tea.Quit
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
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *watchModel) View() string {
	var b strings.Builder
	header := m.spinner.View() + " watching " + m.title
	if m.done {
		header = "stopped: " + m.title
	}
	b.WriteString(titleStyle.Render(truncate(header, m.width)))
	b.WriteString("\n\n")

	if !m.seen {
		b.WriteString("  waiting for the first cycle…\n")
		return b.String()
	}

	st := m.last
	fmt.Fprintf(&b, "  cycle #%d  %s  %s\n", st.Seq, st.Started.Format("15:04:05"), st.Duration.Round(10*time.Microsecond))
	var parts []string
	for _, c := range finding.FindingColors() {
		parts = append(parts, swatch(c).Render(fmt.Sprintf("%s %d", c, st.Counts[c])))
	}
	b.WriteString("  " + strings.Join(parts, "  ") + "\n")

	mode := "document order"
	if st.UseHints {
		mode = "tabindex"
	}
	fmt.Fprintf(&b, "  %d tab stops (%s), %d label links\n", st.Stops, mode, st.Links)

	if st.Err != nil {
		msg := truncate("error: "+st.Err.Error(), m.width-2)
		b.WriteString("  " + errStyle.Render(msg) + "\n")
	}
	if m.failed > 0 {
		fmt.Fprintf(&b, "  %d failed cycles\n", m.failed)
	}
	b.WriteString(hintStyle.Render("\n  q to quit") + "\n")
	return b.String()
}

func (m *watchModel) listen() tea.Cmd {
	return func() tea.Msg {
		st, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return cycleMsg(st)
	}
}

var (
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle = lipgloss.NewStyle().Faint(true)
)

// swatch maps overlay colours onto the closest terminal colours.
func swatch(c finding.Color) lipgloss.Style {
	r, g, b := c.RGB()
	hex := fmt.Sprintf("#%02x%02x%02x", int(r*255), int(g*255), int(b*255))
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
}
