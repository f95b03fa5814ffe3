package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"folio/internal/ui/theme"
	viewerview "folio/internal/ui/views/viewer"
)

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Prev key.Binding
	Next key.Binding
	Help key.Binding
	Quit key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Prev: key.NewBinding(key.WithKeys("left", "h", "["), key.WithHelp("←/h/[", "previous page")),
		Next: key.NewBinding(key.WithKeys("right", "l", "]"), key.WithHelp("→/l/]", "next page")),
		Help: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit: key.NewBinding(key.WithKeys("ctrl+c", "q", "esc"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next},
		{k.Help, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns global key bindings, the help
// overlay and the status bar; the slide view does the rest.
type Model struct {
	title   string
	session string

	view     viewerview.Model
	keys     keyMap
	help     help.Model
	showHelp bool
	width    int
	height   int
}

func NewModel(title, session string, nav viewerview.NavigatorPort, pages viewerview.PagesPort) Model {
	return Model{
		title:   title,
		session: session,
		view:    viewerview.New(nav, pages),
		keys:    defaultKeys(),
		help:    help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return m.view.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = m.width
		var cmd tea.Cmd
		m.view, cmd = m.view.Update(tea.WindowSizeMsg{Width: m.width, Height: m.contentHeight()})
		return m, cmd

	case tea.KeyMsg:
		if m.showHelp {
			if key.Matches(msg, m.keys.Help) || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = true
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			return m, m.view.Move("left")
		case key.Matches(msg, m.keys.Next):
			return m, m.view.Move("right")
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	statusBar := m.renderStatusBar()
	content := m.view.View()
	if m.showHelp {
		content = lipgloss.NewStyle().Width(m.width).Height(m.contentHeight()).
			Render(m.help.View(m.keys))
	}
	return lipgloss.JoinVertical(lipgloss.Left, content, statusBar)
}

func (m Model) contentHeight() int {
	return max(m.height-1, 1)
}

func (m Model) renderStatusBar() string {
	left := theme.Title.Render("folio") + "  " + theme.Muted.Render(m.title)
	if m.view.Started() {
		left += "  " + theme.Hot.Render(m.view.State().Indicator)
	}
	right := theme.Muted.Render(m.help.ShortHelpView(m.keys.ShortHelp()))
	if m.session != "" {
		right += theme.Muted.Render("  " + shortID(m.session))
	}
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := left + strings.Repeat(" ", gap) + right
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
