package app_test

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	navdto "folio/internal/modules/navigator/dto"
	pagesdto "folio/internal/modules/pages/dto"
	"folio/internal/ui/app"
	"folio/internal/ui/views/viewer"
)

type fakeNav struct {
	keys   []string
	swipes int
}

func (n *fakeNav) Start(context.Context) (navdto.StateOutput, error) {
	return navdto.StateOutput{Current: 2, Total: 3, Indicator: "2 / 3", CanPrevious: true, CanNext: true}, nil
}

func (n *fakeNav) Key(_ context.Context, key string) (navdto.MoveOutput, error) {
	n.keys = append(n.keys, key)
	return navdto.MoveOutput{}, nil
}

func (n *fakeNav) Swipe(context.Context, navdto.SwipeInput) (navdto.MoveOutput, error) {
	n.swipes++
	return navdto.MoveOutput{}, nil
}

type fakePages struct{}

func (fakePages) Element(_ context.Context, index int) (pagesdto.ElementOutput, bool) {
	return pagesdto.ElementOutput{Index: index, Lines: []string{"slide"}}, true
}

func startedApp(t *testing.T, nav *fakeNav) tea.Model {
	t.Helper()
	var m tea.Model = app.NewModel("portfolio", "", nav, fakePages{})
	m, _ = m.Update(tea.WindowSizeMsg{Width: 40, Height: 12})
	state, err := nav.Start(context.Background())
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	m, _ = m.Update(viewer.StartedMsg{State: state})
	return m
}

func run(t *testing.T, m tea.Model, msg tea.Msg) tea.Model {
	t.Helper()
	m, cmd := m.Update(msg)
	if cmd == nil {
		t.Fatalf("expected %v to produce a command", msg)
	}
	m, _ = m.Update(cmd())
	return m
}

func TestBracketKeysMove(t *testing.T) {
	t.Parallel()
	nav := &fakeNav{}
	m := startedApp(t, nav)
	m = run(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("]")})
	m = run(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("[")})
	run(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if strings.Join(nav.keys, ",") != "right,left,left" {
		t.Fatalf("unexpected keys %v", nav.keys)
	}
}

func TestClickingNextLabelMoves(t *testing.T) {
	t.Parallel()
	nav := &fakeNav{}
	m := startedApp(t, nav)
	// The status bar takes the last of 12 rows, so the controls sit on row 9.
	m, _ = m.Update(tea.MouseMsg{X: 38, Y: 9, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	run(t, m, tea.MouseMsg{X: 38, Y: 9, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if strings.Join(nav.keys, ",") != "right" || nav.swipes != 0 {
		t.Fatalf("expected a single next move, got keys %v swipes %d", nav.keys, nav.swipes)
	}
}

func TestHelpListsBracketKeys(t *testing.T) {
	t.Parallel()
	m := startedApp(t, &fakeNav{})
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 12})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	out := m.View()
	if !strings.Contains(out, "←/h/[") || !strings.Contains(out, "→/l/]") {
		t.Fatalf("expected bracket keys in help:\n%s", out)
	}
}
