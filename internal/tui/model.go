package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"

	"github.com/mkeller/chatvault/internal/models"
	"github.com/mkeller/chatvault/internal/service"
)

const listPaneWidth = 34

// Model is the bubbletea model for the conversation viewer.
type Model struct {
	session *service.Session
	policy  models.SidePolicy
	theme   Theme

	viewport viewport.Model
	width    int
	height   int

	cursor    int
	focusList bool
	status    string
	backupDir string
}

// New creates a viewer over an already-populated session.
func New(session *service.Session, policy models.SidePolicy, backupDir string) Model {
	return Model{
		session:   session,
		policy:    policy,
		theme:     defaultTheme,
		viewport:  viewport.New(),
		focusList: true,
		backupDir: backupDir,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and returns the updated model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.SetWidth(m.contentWidth())
		m.viewport.SetHeight(m.contentHeight())
		m.refreshViewport()
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	convs := m.session.Conversations()
	m.status = ""

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "tab":
		m.focusList = !m.focusList
		return m, nil

	case "up", "k":
		if m.focusList {
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		}
		m.viewport.ScrollUp(1)
		return m, nil

	case "down", "j":
		if m.focusList {
			if m.cursor < len(convs)-1 {
				m.cursor++
			}
			return m, nil
		}
		m.viewport.ScrollDown(1)
		return m, nil

	case "pgup":
		m.viewport.HalfPageUp()
		return m, nil

	case "pgdown":
		m.viewport.HalfPageDown()
		return m, nil

	case "enter":
		if len(convs) == 0 {
			return m, nil
		}
		if err := m.session.Open(convs[m.cursor].ID); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.focusList = false
		m.refreshViewport()
		m.viewport.GotoBottom()
		return m, nil

	case "d":
		if len(convs) == 0 {
			return m, nil
		}
		if err := m.session.Remove(convs[m.cursor].ID); err != nil {
			m.status = err.Error()
			return m, nil
		}
		if m.cursor >= len(convs)-1 && m.cursor > 0 {
			m.cursor--
		}
		m.refreshViewport()
		return m, nil

	case "c":
		m.session.Clear()
		m.cursor = 0
		m.refreshViewport()
		m.status = "all conversations cleared"
		return m, nil

	case "b":
		path := filepath.Join(m.backupDir,
			fmt.Sprintf("chatvault-backup-%s.json", time.Now().Format("2006-01-02")))
		if err := m.session.BackupToFile(path); err != nil {
			m.status = err.Error()
		} else {
			m.status = "backup written to " + path
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the viewer.
func (m Model) View() tea.View {
	if m.width == 0 {
		return tea.NewView("loading...")
	}

	list := m.theme.listPaneStyle().
		Width(listPaneWidth).
		Height(m.contentHeight()).
		Render(m.renderList())

	content := m.viewport.View()
	body := lipgloss.JoinHorizontal(lipgloss.Top, list, content)

	return tea.NewView(body + "\n" + m.renderStatus())
}

func (m Model) contentWidth() int {
	w := m.width - listPaneWidth - 2
	if w < 10 {
		w = 10
	}
	return w
}

func (m Model) contentHeight() int {
	h := m.height - 1
	if h < 3 {
		h = 3
	}
	return h
}

func (m Model) renderList() string {
	convs := m.session.Conversations()
	if len(convs) == 0 {
		return m.theme.hintStyle().Render("no chats loaded")
	}

	var b strings.Builder
	for i, c := range convs {
		line := truncate(c.Name, listPaneWidth-4)
		if c.NeedsRelink {
			line += " *"
		}
		if i == m.cursor {
			line = m.theme.selectedStyle().Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
		b.WriteString(m.theme.hintStyle().Render("  "+truncate(c.LastMessage, listPaneWidth-4)) + "\n")
	}
	return b.String()
}

// refreshViewport re-renders the active conversation into the viewport.
func (m *Model) refreshViewport() {
	active := m.session.Active()
	if active == nil {
		m.viewport.SetContent(m.theme.hintStyle().Render(
			"select a conversation and press enter"))
		return
	}

	var (
		b        strings.Builder
		lastDate string
	)
	b.WriteString(m.theme.titleStyle().Render(active.Name) + "\n")
	b.WriteString(m.theme.hintStyle().Render(
		fmt.Sprintf("%d messages", len(active.Messages))) + "\n\n")

	for _, msg := range active.Messages {
		day := time.UnixMilli(msg.Timestamp).Format("January 2, 2006")
		if day != lastDate {
			b.WriteString(m.theme.hintStyle().Render("-- "+day+" --") + "\n")
			lastDate = day
		}
		b.WriteString(m.renderMessage(active, msg))
	}

	m.viewport.SetContent(b.String())
}

func (m *Model) renderMessage(c *models.Conversation, msg models.Message) string {
	style := m.theme.receivedStyle()
	if c.IsSent(msg, m.policy) {
		style = m.theme.sentStyle()
	}

	clock := time.UnixMilli(msg.Timestamp).Format("15:04")
	head := style.Render(msg.Sender) + m.theme.hintStyle().Render(" "+clock)

	body := msg.Text
	if msg.Media != nil {
		marker := fmt.Sprintf("[%s %s]", msg.Media.Kind, msg.Media.Name)
		if msg.Media.Alive() {
			marker = m.theme.titleStyle().Render(marker)
		} else {
			marker = m.theme.deadMediaStyle().Render(marker)
		}
		body += "\n" + marker
	}

	return head + "\n" + body + "\n\n"
}

func (m Model) renderStatus() string {
	if m.status != "" {
		return m.theme.errorStyle().Render(m.status)
	}
	help := "enter open · tab switch pane · d remove · c clear · b backup · q quit"
	return m.theme.hintStyle().Render(help)
}

func truncate(s string, limit int) string {
	runes := []rune(strings.ReplaceAll(s, "\n", " "))
	if len(runes) <= limit {
		return string(runes)
	}
	return string(runes[:limit-1]) + "…"
}

// Run starts the interactive viewer and blocks until the user quits.
func Run(session *service.Session, policy models.SidePolicy, backupDir string) error {
	p := tea.NewProgram(New(session, policy, backupDir))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("viewer error: %w", err)
	}
	return nil
}
