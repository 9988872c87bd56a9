package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// unitPhase is one compilation unit's place in the classify -> resolve ->
// emit pipeline (spec §2's data flow), rendered live by the --progress
// TUI. Grounded on the teacher's own bubbletea usage in
// cmd/run/interactive.go (lipgloss styles, a tea.Model driving a single
// status list, tea.Msg carrying progress updates into Update).
type unitPhase int

const (
	phasePending unitPhase = iota
	phaseClassifying
	phaseResolving
	phaseEmitting
	phaseDone
	phaseFailed
)

func (p unitPhase) label() string {
	switch p {
	case phasePending:
		return "pending"
	case phaseClassifying:
		return "classify"
	case phaseResolving:
		return "resolve"
	case phaseEmitting:
		return "emit"
	case phaseDone:
		return "done"
	case phaseFailed:
		return "failed"
	default:
		return "?"
	}
}

var (
	progressTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FAFAFA")).
				Background(lipgloss.Color("#7D56F4")).
				Padding(0, 1)

	progressDoneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#90EE90"))
	progressFailStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	progressActiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB"))
	progressHelpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
)

// setPhaseMsg advances one unit to a new phase, sent by the pipeline
// goroutine via tea.Program.Send as each stage completes.
type setPhaseMsg struct {
	idx   int
	phase unitPhase
}

// progressDoneMsg ends the program once the whole run has finished.
type progressDoneMsg struct{ err error }

type progressModel struct {
	units  []string
	phases []unitPhase
	err    error
	done   bool
}

func newProgressModel(unitNames []string) *progressModel {
	return &progressModel{
		units:  unitNames,
		phases: make([]unitPhase, len(unitNames)),
	}
}

func (m *progressModel) Init() tea.Cmd { return nil }

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}
	case setPhaseMsg:
		if msg.idx >= 0 && msg.idx < len(m.phases) {
			m.phases[msg.idx] = msg.phase
		}
	case progressDoneMsg:
		m.done = true
		m.err = msg.err
	}
	return m, nil
}

func (m *progressModel) View() string {
	var b strings.Builder
	b.WriteString(progressTitleStyle.Render("dwarfbind"))
	b.WriteString("\n\n")

	for i, name := range m.units {
		phase := m.phases[i]
		line := fmt.Sprintf("%-40s %s", name, phase.label())
		switch phase {
		case phaseDone:
			b.WriteString(progressDoneStyle.Render(line))
		case phaseFailed:
			b.WriteString(progressFailStyle.Render(line))
		case phaseClassifying, phaseResolving, phaseEmitting:
			b.WriteString(progressActiveStyle.Render(line))
		default:
			b.WriteString(line)
		}
		b.WriteByte('\n')
	}

	b.WriteString("\n")
	if m.done {
		if m.err != nil {
			b.WriteString(progressFailStyle.Render(fmt.Sprintf("failed: %v", m.err)))
		} else {
			b.WriteString(progressDoneStyle.Render("complete — press q to exit"))
		}
	} else {
		b.WriteString(progressHelpStyle.Render("q to cancel"))
	}
	return b.String()
}
