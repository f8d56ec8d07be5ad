// Package tui provides an interactive terminal for asking questions
// against the indexed corpus.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/askitty/askitty/internal/core/domain"
	"github.com/askitty/askitty/internal/core/ports/driving"
)

var (
	headerStyle    = lipgloss.NewStyle().Bold(true)
	summaryStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	answerBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	citationStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// answerMsg carries a finished query back into the update loop.
type answerMsg struct {
	question string
	answer   *domain.Answer
	err      error
}

// Model is the Bubble Tea model for the ask terminal.
type Model struct {
	query    driving.QueryService
	input    textinput.Model
	viewport viewport.Model
	answer   *domain.Answer
	status   string
	working  bool
	ready    bool
	cursor   int
}

// New creates a new TUI model over the query service.
func New(query driving.QueryService) Model {
	ti := textinput.New()
	ti.Prompt = "? "
	ti.Placeholder = "Ask a question and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		query:    query,
		input:    ti,
		viewport: vp,
		status:   "Ready. Ask away.",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, ah := answerBoxStyle.GetFrameSize()
		_, ih := inputBoxStyle.GetFrameSize()
		reserved := 2 + 1 + ih + 1 // header + summary, spacer, input box, status
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = maxInt(20, msg.Width)
		m.viewport.Height = maxInt(3, vh-ah)
		m.viewport.SetContent(m.renderAnswer())
		return m, nil

	case answerMsg:
		m.working = false
		if msg.err != nil {
			m.status = errorStyle.Render("Error: " + msg.err.Error())
			m.answer = nil
		} else {
			m.status = fmt.Sprintf("Answered %q", msg.question)
			m.answer = msg.answer
			m.cursor = 0
		}
		m.viewport.SetContent(m.renderAnswer())
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q != "" && !m.working {
				m.working = true
				m.status = "Thinking..."
				return m, askCmd(m.query, q)
			}
		case "down":
			if m.answer != nil && len(m.answer.References) > 0 {
				m.cursor = (m.cursor + 1) % len(m.answer.References)
				m.viewport.SetContent(m.renderAnswer())
				return m, nil
			}
		case "up":
			if m.answer != nil && len(m.answer.References) > 0 {
				n := len(m.answer.References)
				m.cursor = (m.cursor - 1 + n) % n
				m.viewport.SetContent(m.renderAnswer())
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the layout and current answer.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := headerStyle.Render("askitty")
	summary := summaryStyle.Render("Answers come only from the indexed documents.")
	answer := answerBoxStyle.Render(m.viewport.View())
	input := inputBoxStyle.Render(m.input.View())
	return header + "\n" + summary + "\n" + answer + "\n" + input + "\n" + statusStyle.Render(m.status)
}

func (m Model) renderAnswer() string {
	if m.answer == nil {
		return "No answer yet."
	}

	var b strings.Builder
	b.WriteString(m.answer.Answer)

	if len(m.answer.References) > 0 {
		ref := m.answer.References[m.cursor]
		b.WriteString("\n\n")
		b.WriteString(citationStyle.Render(fmt.Sprintf(
			"[%d/%d] %s p.%d", m.cursor+1, len(m.answer.References), ref.FileName, ref.PageStart,
		)))
		b.WriteString("\n")
		b.WriteString(ref.Text)
	}
	return b.String()
}

// askCmd runs the query off the update loop.
func askCmd(query driving.QueryService, question string) tea.Cmd {
	return func() tea.Msg {
		answer, err := query.Ask(context.Background(), question)
		return answerMsg{question: question, answer: answer, err: err}
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
