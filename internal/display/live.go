package display

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sweeney/heater-controller/internal/status"
)

// Source supplies status snapshots. *status.Tracker satisfies it.
type Source interface {
	Snapshot() status.Snapshot
}

type tickMsg time.Time

type model struct {
	source   Source
	interval time.Duration
	snap     status.Snapshot
	quitting bool
}

func newModel(source Source, interval time.Duration) model {
	return model{
		source:   source,
		interval: interval,
		snap:     source.Snapshot(),
	}
}

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Init() tea.Cmd {
	return tick(m.interval)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
	case tickMsg:
		m.snap = m.source.Snapshot()
		return m, tick(m.interval)
	}
	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return ""
	}
	return Render(m.snap) + "\n" + dimStyle.Render(" q quit") + "\n"
}

// Run shows the live panel until the user quits. It refreshes from source
// every interval and never writes to the controller.
func Run(source Source, interval time.Duration, opts ...tea.ProgramOption) error {
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	p := tea.NewProgram(newModel(source, interval), opts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("display: %w", err)
	}
	return nil
}
