package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"lexsim/internal/chunker"
	"lexsim/internal/tokenizer"
)

const summarizeCommand = "/summarize"

// ChatPort is the TUI-facing subset of the assistant.
type ChatPort interface {
	Ask(query string) string
	Summarize(text string, sentences int) (string, error)
}

type turn struct {
	speaker string
	text    string
}

// Model is the Bubble Tea model for the chat application.
type Model struct {
	service    ChatPort
	input      textinput.Model
	viewport   viewport.Model
	transcript []turn
	banner     string
	status     string
	ready      bool
	splitter   *chunker.SentenceSplitter
}

// New creates a new TUI model instance. banner is shown under the title.
func New(service ChatPort, banner string) Model {
	ti := textinput.New()
	ti.Prompt = "You: "
	ti.Placeholder = "Ask a question, /summarize <text>, or exit"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		service:  service,
		input:    ti,
		viewport: vp,
		banner:   banner,
		status:   "Chatbot ready. Type 'exit' to quit.",
		splitter: chunker.NewSentenceSplitter(false),
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, th := transcriptBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 2 + 1 + qh + 1 // header + banner, status, spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-th)
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		if msg.Type == tea.KeyEnter {
			return m.submit()
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")
	switch strings.ToLower(line) {
	case "exit", "quit":
		m.transcript = append(m.transcript, turn{"Bot", "Goodbye!"})
		m.refresh()
		return m, tea.Quit
	}

	if rest, ok := strings.CutPrefix(line, summarizeCommand); ok && (rest == "" || rest[0] == ' ') {
		m.transcript = append(m.transcript, turn{"You", line})
		text := strings.TrimSpace(rest)
		summary, err := m.service.Summarize(text, 0)
		if err != nil {
			m.status = "Error: " + err.Error()
		} else {
			m.transcript = append(m.transcript, turn{"Bot", summary})
			m.status = fmt.Sprintf("Summarized %d characters", len(text))
		}
		m.refresh()
		return m, nil
	}

	answer := m.service.Ask(line)
	m.transcript = append(m.transcript, turn{"You", line}, turn{"Bot", m.highlight(answer, line)})
	m.status = fmt.Sprintf("Answered %q", line)
	m.refresh()
	return m, nil
}

// View renders the TUI layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("lexsim chat")
	banner := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.banner)
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	body := transcriptBoxStyle.Render(m.viewport.View())
	return header + "\n" + banner + "\n" + body + "\n" + input + "\n" + status
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

func (m Model) renderTranscript() string {
	if len(m.transcript) == 0 {
		return "No messages yet."
	}
	wrap := lipgloss.NewStyle().Width(max(10, m.viewport.Width-4))
	var sb strings.Builder
	for i, t := range m.transcript {
		if i > 0 {
			sb.WriteString("\n")
		}
		label := userStyle
		if t.speaker == "Bot" {
			label = botStyle
		}
		sb.WriteString(wrap.Render(label.Render(t.speaker+":") + " " + t.text))
	}
	return sb.String()
}

var (
	transcriptBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	highlightStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	userStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	botStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
)

// highlight emphasises the answer sentence sharing the most tokens with the
// query. Single-sentence answers are returned as is.
func (m Model) highlight(answer, query string) string {
	sentences := m.splitter.Split(answer)
	if len(sentences) < 2 {
		return answer
	}
	qTokens := toTokenSet(query)
	if len(qTokens) == 0 {
		return answer
	}
	bestIdx := 0
	bestScore := -1
	for i, s := range sentences {
		score := tokenOverlapScore(qTokens, s)
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	if bestScore == 0 {
		return answer
	}
	sentences[bestIdx] = highlightStyle.Render(sentences[bestIdx])
	return strings.Join(sentences, " ")
}

func toTokenSet(s string) map[string]struct{} {
	tokens := tokenizer.Tokenize(s)
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

func tokenOverlapScore(queryTokens map[string]struct{}, sentence string) int {
	score := 0
	seen := make(map[string]struct{})
	for _, t := range tokenizer.Tokenize(sentence) {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		if _, ok := queryTokens[t]; ok {
			score++
		}
	}
	return score
}
