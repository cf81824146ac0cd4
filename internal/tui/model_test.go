package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePort struct {
	asked      []string
	summarized []string
	summaryErr error
}

func (f *fakePort) Ask(query string) string {
	f.asked = append(f.asked, query)
	if query == "" {
		return "Say something, please."
	}
	return "Answer to " + query + "."
}

func (f *fakePort) Summarize(text string, sentences int) (string, error) {
	f.summarized = append(f.summarized, text)
	if f.summaryErr != nil {
		return "", f.summaryErr
	}
	return "Summary.", nil
}

func submit(t *testing.T, m Model, line string) (Model, tea.Cmd) {
	t.Helper()
	m.input.SetValue(line)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func sized(port ChatPort) Model {
	next, _ := New(port, "2 entries").Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return next.(Model)
}

func TestModel_Ask(t *testing.T) {
	port := &fakePort{}
	m, cmd := submit(t, sized(port), "  what is AI  ")
	assert.Nil(t, cmd)
	assert.Equal(t, []string{"what is AI"}, port.asked)
	require.Len(t, m.transcript, 2)
	assert.Equal(t, turn{"You", "what is AI"}, m.transcript[0])
	assert.Equal(t, "Answer to what is AI.", m.transcript[1].text)
	assert.Equal(t, "", m.input.Value())
}

func TestModel_BlankInputAsks(t *testing.T) {
	port := &fakePort{}
	m, _ := submit(t, sized(port), "   ")
	assert.Equal(t, []string{""}, port.asked)
	assert.Equal(t, "Say something, please.", m.transcript[1].text)
}

func TestModel_Exit(t *testing.T) {
	for _, word := range []string{"exit", "QUIT"} {
		port := &fakePort{}
		m, cmd := submit(t, sized(port), word)
		require.NotNil(t, cmd)
		assert.Equal(t, tea.QuitMsg{}, cmd())
		assert.Empty(t, port.asked)
		assert.Equal(t, "Goodbye!", m.transcript[len(m.transcript)-1].text)
	}
}

func TestModel_Summarize(t *testing.T) {
	port := &fakePort{}
	m, _ := submit(t, sized(port), "/summarize One. Two. Three.")
	assert.Equal(t, []string{"One. Two. Three."}, port.summarized)
	assert.Empty(t, port.asked)
	assert.Equal(t, "Summary.", m.transcript[len(m.transcript)-1].text)
	assert.Equal(t, "Summarized 16 characters", m.status)

	port.summaryErr = errors.New("bad length")
	m, _ = submit(t, m, "/summarize x")
	assert.True(t, strings.HasPrefix(m.status, "Error: "))
}

func TestModel_SummarizePrefixNeedsSpace(t *testing.T) {
	port := &fakePort{}
	submit(t, sized(port), "/summarizethis")
	assert.Empty(t, port.summarized)
	assert.Equal(t, []string{"/summarizethis"}, port.asked)
}

func TestModel_View(t *testing.T) {
	assert.Equal(t, "Loading...", New(&fakePort{}, "").View())
	view := sized(&fakePort{}).View()
	assert.Contains(t, view, "lexsim chat")
	assert.Contains(t, view, "2 entries")
}

func TestModel_Highlight(t *testing.T) {
	m := New(&fakePort{}, "")
	assert.Equal(t, "Only one sentence.", m.highlight("Only one sentence.", "one"))
	assert.Equal(t, "Alpha. Beta.", m.highlight("Alpha. Beta.", "gamma"))

	got := m.highlight("Alpha here. Beta there.", "beta")
	assert.Contains(t, got, "Alpha here.")
	assert.Contains(t, got, "Beta there.")
}
