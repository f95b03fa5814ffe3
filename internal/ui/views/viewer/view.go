package viewer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	navdto "folio/internal/modules/navigator/dto"
	pagesdto "folio/internal/modules/pages/dto"
	"folio/internal/ui/theme"
)

// FatalMessage is shown when the viewer could not start.
const FatalMessage = "Could not load the portfolio. Please reload."

// Terminal cells are converted to pixels so drags compare against the
// swipe threshold in the same units as touch input.
const (
	cellPxX = 8
	cellPxY = 16
)

const refreshInterval = 200 * time.Millisecond

const (
	prevLabel = "‹ prev"
	nextLabel = "next ›"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type NavigatorPort interface {
	Start(ctx context.Context) (navdto.StateOutput, error)
	Key(ctx context.Context, key string) (navdto.MoveOutput, error)
	Swipe(ctx context.Context, input navdto.SwipeInput) (navdto.MoveOutput, error)
}

type PagesPort interface {
	Element(ctx context.Context, index int) (pagesdto.ElementOutput, bool)
}

// ─── messages ────────────────────────────────────────────────────────────────

type StartedMsg struct {
	State navdto.StateOutput
	Err   error
}

// StateMsg carries a state published after a completed transition.
type StateMsg struct {
	State navdto.StateOutput
}

// FrameMsg carries one animation frame of the viewport offset.
type FrameMsg struct {
	Offset float64
}

type ProgressMsg struct {
	Done, Want int
}

type MovedMsg struct {
	Out navdto.MoveOutput
	Err error
}

type refreshMsg struct{}

type drag struct {
	x, y int
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	nav   NavigatorPort
	pages PagesPort

	spinner  spinner.Model
	progress progress.Model
	cache    *gridCache

	started bool
	fatal   error
	done    int
	want    int
	state   navdto.StateOutput
	offset  float64
	drag    *drag
	status  string
	width   int
	height  int
}

func New(nav NavigatorPort, pages PagesPort) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		nav:      nav,
		pages:    pages,
		spinner:  sp,
		progress: progress.New(progress.WithSolidFill(string(theme.Lavender)), progress.WithoutPercentage()),
		cache:    newGridCache(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.startCmd(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(max(m.width-8, 10), 60)
		m.cache.reset()

	case ProgressMsg:
		if msg.Want != m.want {
			m.done = 0
		}
		m.done, m.want = max(m.done, msg.Done), msg.Want

	case StartedMsg:
		if msg.Err != nil {
			m.fatal = msg.Err
			return m, nil
		}
		m.started = true
		m.state = msg.State
		m.offset = msg.State.Offset
		return m, m.refreshCmd()

	case StateMsg:
		m.state = msg.State
		if !msg.State.Transitioning {
			m.offset = msg.State.Offset
		}

	case FrameMsg:
		m.offset = msg.Offset

	case MovedMsg:
		if msg.Err != nil {
			m.status = msg.Err.Error()
			return m, nil
		}
		m.status = ""
		// A dropped move carries a snapshot that may predate frames and
		// states already applied.
		if !msg.Out.Moved {
			return m, nil
		}
		m.state = msg.Out.State
		if !msg.Out.State.Transitioning {
			m.offset = msg.Out.State.Offset
		}

	case refreshMsg:
		if m.started && m.fatal == nil {
			return m, m.refreshCmd()
		}

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case spinner.TickMsg:
		if !m.started && m.fatal == nil {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// Move sends an arrow key to the navigator. Requests while the viewer is
// not running are ignored.
func (m Model) Move(key string) tea.Cmd {
	if !m.started || m.fatal != nil {
		return nil
	}
	return func() tea.Msg {
		out, err := m.nav.Key(context.Background(), key)
		return MovedMsg{Out: out, Err: err}
	}
}

func (m Model) Started() bool { return m.started }

func (m Model) Fatal() error { return m.fatal }

func (m Model) State() navdto.StateOutput { return m.state }

func (m Model) Offset() float64 { return m.offset }

func (m Model) View() string {
	switch {
	case m.fatal != nil:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Hot.Render(FatalMessage))
	case !m.started:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.loadingView())
	}
	slideH := m.slideHeight()
	frame := compose(m.offset, m.state.Total, m.width, slideH, m.pageGrid)
	return lipgloss.JoinVertical(lipgloss.Left, frame.render(), m.controls(), m.markers())
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) loadingView() string {
	label := m.spinner.View() + " Loading portfolio…"
	if m.want == 0 {
		return label
	}
	bar := m.progress.ViewAs(float64(m.done) / float64(m.want))
	count := theme.Muted.Render(fmt.Sprintf("%d / %d pages", m.done, m.want))
	return lipgloss.JoinVertical(lipgloss.Center, label, "", bar, count)
}

// slideHeight leaves two rows below the slide, the controls then the markers.
func (m Model) slideHeight() int {
	return max(m.height-2, 1)
}

func (m Model) pageGrid(index int) grid {
	slideH := m.slideHeight()
	key := gridKey{index: index, w: m.width, h: slideH}
	if g, ok := m.cache.get(key); ok {
		return g
	}
	el, ok := m.pages.Element(context.Background(), index)
	g := pageGrid(el, ok, index, m.width, slideH)
	if ok {
		m.cache.put(key, g)
	}
	return g
}

func (m Model) controls() string {
	prev := theme.Muted.Render(prevLabel)
	if m.state.CanPrevious && !m.state.Transitioning {
		prev = theme.Hot.Render(prevLabel)
	}
	next := theme.Muted.Render(nextLabel)
	if m.state.CanNext && !m.state.Transitioning {
		next = theme.Hot.Render(nextLabel)
	}
	indicator := theme.Title.Render(m.state.Indicator)
	if m.status != "" {
		indicator += "  " + theme.Muted.Render(m.status)
	}
	gap := max(m.width-lipgloss.Width(prev)-lipgloss.Width(next)-lipgloss.Width(indicator), 2)
	left := gap / 2
	return prev + strings.Repeat(" ", left) + indicator + strings.Repeat(" ", gap-left) + next
}

// markers draws one dot per page when they fit and a position bar otherwise.
func (m Model) markers() string {
	total := m.state.Total
	if total <= 0 || m.width <= 0 {
		return ""
	}
	if total*2-1 <= m.width {
		parts := make([]string, total)
		for i := range parts {
			if i+1 == m.state.Current {
				parts[i] = theme.Hot.Render("●")
			} else {
				parts[i] = theme.Muted.Render("·")
			}
		}
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, strings.Join(parts, " "))
	}
	pos := (m.state.Current - 1) * (m.width - 1) / max(total-1, 1)
	return theme.Muted.Render(strings.Repeat("─", pos)) + theme.Hot.Render("●") +
		theme.Muted.Render(strings.Repeat("─", m.width-pos-1))
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if !m.started || m.fatal != nil {
		return m, nil
	}
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.drag = &drag{x: msg.X, y: msg.Y}
		}
	case tea.MouseActionRelease:
		if m.drag == nil {
			return m, nil
		}
		start := *m.drag
		m.drag = nil
		if start.x == msg.X && start.y == msg.Y && msg.Y == m.slideHeight() {
			return m, m.clickControl(msg.X)
		}
		input := navdto.SwipeInput{
			StartX: float64(start.x * cellPxX),
			StartY: float64(start.y * cellPxY),
			EndX:   float64(msg.X * cellPxX),
			EndY:   float64(msg.Y * cellPxY),
		}
		return m, func() tea.Msg {
			out, err := m.nav.Swipe(context.Background(), input)
			return MovedMsg{Out: out, Err: err}
		}
	}
	return m, nil
}

// clickControl maps a click on the controls row to the label under it. The
// prev label is flush left and the next label flush right.
func (m Model) clickControl(x int) tea.Cmd {
	switch {
	case x < lipgloss.Width(prevLabel):
		return m.Move("left")
	case x >= m.width-lipgloss.Width(nextLabel):
		return m.Move("right")
	}
	return nil
}

func (m Model) startCmd() tea.Cmd {
	return func() tea.Msg {
		state, err := m.nav.Start(context.Background())
		return StartedMsg{State: state, Err: err}
	}
}

func (m Model) refreshCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(time.Time) tea.Msg { return refreshMsg{} })
}
