package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askitty/askitty/internal/core/domain"
)

// mockQueryService implements driving.QueryService for model tests.
type mockQueryService struct {
	answer *domain.Answer
	err    error
}

func (m *mockQueryService) Ask(_ context.Context, _ string) (*domain.Answer, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.answer, nil
}

func (m *mockQueryService) Search(_ context.Context, _ string, _ int) ([]domain.Passage, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.answer.References, nil
}

func sized(t *testing.T, m Model) Model {
	t.Helper()
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return updated.(Model)
}

func TestView_BeforeFirstSize(t *testing.T) {
	m := New(&mockQueryService{})
	assert.Equal(t, "Loading...", m.View())
}

func TestUpdate_EnterRunsQuery(t *testing.T) {
	query := &mockQueryService{answer: &domain.Answer{
		Answer: "It ships on Friday [1]",
		References: []domain.Passage{
			{Text: "release is planned for Friday", FileName: "plan.md", SourceKey: "plan.md", PageStart: 1},
		},
	}}

	m := sized(t, New(query))
	m.input.SetValue("when does it ship?")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	require.NotNil(t, cmd)
	assert.True(t, m.working)

	msg := cmd()
	answer, ok := msg.(answerMsg)
	require.True(t, ok)
	require.NoError(t, answer.err)

	updated, _ = m.Update(answer)
	m = updated.(Model)

	assert.False(t, m.working)
	assert.Contains(t, m.View(), "It ships on Friday [1]")
	assert.Contains(t, m.View(), "plan.md")
}

func TestUpdate_EmptyQuestionDoesNothing(t *testing.T) {
	m := sized(t, New(&mockQueryService{}))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestUpdate_QueryErrorShownInStatus(t *testing.T) {
	query := &mockQueryService{err: errors.New("backend down")}

	m := sized(t, New(query))
	m.input.SetValue("q")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	require.NotNil(t, cmd)

	updated, _ = m.Update(cmd())
	m = updated.(Model)

	assert.Contains(t, m.View(), "backend down")
	assert.Contains(t, m.View(), "No answer yet.")
}

func TestUpdate_CursorCyclesReferences(t *testing.T) {
	m := sized(t, New(&mockQueryService{}))
	m.answer = &domain.Answer{
		Answer: "a",
		References: []domain.Passage{
			{Text: "one", FileName: "1.txt"},
			{Text: "two", FileName: "2.txt"},
		},
	}

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(Model)
	assert.Equal(t, 1, m.cursor)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(Model)
	assert.Equal(t, 0, m.cursor)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = updated.(Model)
	assert.Equal(t, 1, m.cursor)
}

func TestUpdate_CtrlCQuits(t *testing.T) {
	m := sized(t, New(&mockQueryService{}))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
