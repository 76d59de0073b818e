package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/binstream/stream"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	recordStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type interactiveModel struct {
	err      error
	filename string
	status   string
	records  []record
	input    textinput.Model
	maxSize  uint64
	selected int
	loaded   bool
	state    modelState
}

type modelState int

const (
	stateSelectRecord modelState = iota
	stateShowDetail
	stateAppendInput
)

func newInteractiveModel(filename string, maxSize uint64) *interactiveModel {
	return &interactiveModel{
		filename: filename,
		maxSize:  maxSize,
		state:    stateSelectRecord,
	}
}

type loadedMsg struct {
	err     error
	records []record
}

type appendedMsg struct {
	err    error
	status string
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.loadRecords
}

func (m *interactiveModel) loadRecords() tea.Msg {
	records, err := readRecords(m.filename, m.maxSize)
	if err != nil && len(records) == 0 {
		return loadedMsg{err: err}
	}
	return loadedMsg{records: records}
}

func (m *interactiveModel) appendRecord() tea.Msg {
	value := m.input.Value()
	if err := appendRecord(m.filename, value); err != nil {
		return appendedMsg{err: err}
	}
	return appendedMsg{status: fmt.Sprintf("Appended %d byte record", len(value))}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.state != stateAppendInput || msg.String() == "ctrl+c" {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelectRecord && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectRecord && m.selected < len(m.records)-1 {
				m.selected++
			}

		case "a":
			if m.state == stateSelectRecord {
				ti := textinput.New()
				ti.Placeholder = "record body"
				ti.Prompt = "append: "
				ti.Width = 60
				ti.Focus()
				m.input = ti
				m.state = stateAppendInput
				return m, nil
			}

		case "enter":
			switch m.state {
			case stateSelectRecord:
				if len(m.records) > 0 {
					m.state = stateShowDetail
				}
			case stateAppendInput:
				m.state = stateSelectRecord
				return m, m.appendRecord
			case stateShowDetail:
				m.state = stateSelectRecord
			}

		case "esc":
			switch m.state {
			case stateAppendInput, stateShowDetail:
				m.state = stateSelectRecord
			}
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.records = msg.records
		m.loaded = true
		if m.selected >= len(m.records) && len(m.records) > 0 {
			m.selected = len(m.records) - 1
		}

	case appendedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.status = msg.status
		return m, m.loadRecords
	}

	if m.state == stateAppendInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *interactiveModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if !m.loaded {
		return "Loading records..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("binspect"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectRecord:
		if len(m.records) == 0 {
			b.WriteString("No records.\n")
		}
		for i, rec := range m.records {
			line := m.formatRecord(i, rec)
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		if m.status != "" {
			b.WriteString("\n")
			b.WriteString(resultStyle.Render(m.status))
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter detail • a append • q quit"))

	case stateShowDetail:
		rec := m.records[m.selected]
		b.WriteString(fmt.Sprintf("Record %s\n\n", recordStyle.Render(fmt.Sprintf("#%d", m.selected))))
		b.WriteString(metaStyle.Render(fmt.Sprintf("offset=%d prefix=%dB body=%dB",
			rec.offset, stream.UvarintLen(uint64(len(rec.body))), len(rec.body))))
		b.WriteString("\n\n")
		b.WriteString(formatHex([]byte(rec.body)))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter/esc back • q quit"))

	case stateAppendInput:
		b.WriteString("Append a string record:\n\n")
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter append • esc cancel"))
	}

	return b.String()
}

func (m *interactiveModel) formatRecord(i int, rec record) string {
	meta := metaStyle.Render(fmt.Sprintf("@%d %dB", rec.offset, len(rec.body)))
	return recordStyle.Render(fmt.Sprintf("#%d", i)) + " " + meta + " " + preview(rec.body, 48)
}

func runInteractive(filename string, maxSize uint64) error {
	p := tea.NewProgram(newInteractiveModel(filename, maxSize), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
