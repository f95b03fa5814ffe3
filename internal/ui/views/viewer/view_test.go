package viewer_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	navdto "folio/internal/modules/navigator/dto"
	pagesdto "folio/internal/modules/pages/dto"
	"folio/internal/ui/views/viewer"
)

type fakeNav struct {
	swipes []navdto.SwipeInput
	keys   []string
}

func (n *fakeNav) Start(context.Context) (navdto.StateOutput, error) {
	return navdto.StateOutput{Current: 1, Total: 3, Indicator: "1 / 3", CanNext: true}, nil
}

func (n *fakeNav) Key(_ context.Context, key string) (navdto.MoveOutput, error) {
	n.keys = append(n.keys, key)
	return navdto.MoveOutput{Moved: true, State: navdto.StateOutput{Current: 2, Total: 3, Indicator: "2 / 3", Offset: -100}}, nil
}

func (n *fakeNav) Swipe(_ context.Context, input navdto.SwipeInput) (navdto.MoveOutput, error) {
	n.swipes = append(n.swipes, input)
	return navdto.MoveOutput{}, nil
}

type fakePages struct{}

func (fakePages) Element(_ context.Context, index int) (pagesdto.ElementOutput, bool) {
	return pagesdto.ElementOutput{Index: index, Lines: []string{"slide"}}, true
}

func started(t *testing.T, nav *fakeNav) viewer.Model {
	t.Helper()
	m := viewer.New(nav, fakePages{})
	m, _ = m.Update(tea.WindowSizeMsg{Width: 40, Height: 12})
	state, err := nav.Start(context.Background())
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	m, _ = m.Update(viewer.StartedMsg{State: state})
	return m
}

func TestLoadingShowsProgress(t *testing.T) {
	t.Parallel()
	m := viewer.New(&fakeNav{}, fakePages{})
	m, _ = m.Update(tea.WindowSizeMsg{Width: 60, Height: 12})
	m, _ = m.Update(viewer.ProgressMsg{Done: 2, Want: 5})
	if out := m.View(); !strings.Contains(out, "2 / 5 pages") {
		t.Fatalf("expected progress count in loading view:\n%s", out)
	}
	if m.Move("right") != nil {
		t.Fatalf("moves must be ignored while loading")
	}
}

func TestStartFailureShowsFatalScreen(t *testing.T) {
	t.Parallel()
	m := viewer.New(&fakeNav{}, fakePages{})
	m, _ = m.Update(tea.WindowSizeMsg{Width: 60, Height: 12})
	m, _ = m.Update(viewer.StartedMsg{Err: errors.New("discovery failed")})
	if m.Fatal() == nil || !strings.Contains(m.View(), viewer.FatalMessage) {
		t.Fatalf("expected fatal screen, got:\n%s", m.View())
	}
}

func TestMoveAppliesReturnedState(t *testing.T) {
	t.Parallel()
	nav := &fakeNav{}
	m := started(t, nav)
	if !strings.Contains(m.View(), "1 / 3") {
		t.Fatalf("expected indicator in view:\n%s", m.View())
	}
	cmd := m.Move("right")
	if cmd == nil {
		t.Fatalf("expected a move command")
	}
	m, _ = m.Update(cmd())
	if len(nav.keys) != 1 || nav.keys[0] != "right" {
		t.Fatalf("unexpected keys %v", nav.keys)
	}
	if m.State().Indicator != "2 / 3" || m.Offset() != -100 {
		t.Fatalf("unexpected state %+v offset %v", m.State(), m.Offset())
	}
}

func TestFramesMoveTheViewport(t *testing.T) {
	t.Parallel()
	m := started(t, &fakeNav{})
	m, _ = m.Update(viewer.FrameMsg{Offset: -42})
	if m.Offset() != -42 {
		t.Fatalf("expected offset -42, got %v", m.Offset())
	}
	m, _ = m.Update(viewer.StateMsg{State: navdto.StateOutput{Current: 2, Total: 3, Indicator: "2 / 3", Offset: -100}})
	if m.Offset() != -100 || m.State().Current != 2 {
		t.Fatalf("state message must settle the viewport, got %v", m.Offset())
	}
}

func TestDragBecomesSwipeInPixels(t *testing.T) {
	t.Parallel()
	nav := &fakeNav{}
	m := started(t, nav)
	m, _ = m.Update(tea.MouseMsg{X: 30, Y: 4, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, cmd := m.Update(tea.MouseMsg{X: 20, Y: 5, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if cmd == nil {
		t.Fatalf("expected a swipe command")
	}
	cmd()
	if len(nav.swipes) != 1 {
		t.Fatalf("expected one swipe, got %d", len(nav.swipes))
	}
	got := nav.swipes[0]
	if got.StartX != 240 || got.EndX != 160 || got.StartY != 64 || got.EndY != 80 {
		t.Fatalf("unexpected swipe %+v", got)
	}
}

func click(m viewer.Model, x, y int) (viewer.Model, tea.Cmd) {
	m, _ = m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	return m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
}

func TestClickingControlsMoves(t *testing.T) {
	t.Parallel()
	nav := &fakeNav{}
	m := started(t, nav)
	// 12 rows leave the slide rows 0..9 and the controls on row 10.
	m, cmd := click(m, 38, 10)
	if cmd == nil {
		t.Fatalf("expected a click on next to move")
	}
	m, _ = m.Update(cmd())
	m, cmd = click(m, 1, 10)
	if cmd == nil {
		t.Fatalf("expected a click on prev to move")
	}
	cmd()
	if strings.Join(nav.keys, ",") != "right,left" {
		t.Fatalf("unexpected keys %v", nav.keys)
	}
	if len(nav.swipes) != 0 {
		t.Fatalf("clicks on the controls must not swipe, got %v", nav.swipes)
	}

	if _, cmd := click(m, 20, 10); cmd != nil {
		t.Fatalf("a click on the indicator must do nothing")
	}
	if _, cmd := click(m, 38, 4); cmd == nil {
		t.Fatalf("a click on the slide still reaches the navigator as a swipe")
	} else {
		cmd()
	}
	if len(nav.keys) != 2 || len(nav.swipes) != 1 {
		t.Fatalf("unexpected keys %v swipes %v", nav.keys, nav.swipes)
	}
}

func TestDroppedMoveKeepsNewerState(t *testing.T) {
	t.Parallel()
	m := started(t, &fakeNav{})
	m, _ = m.Update(viewer.StateMsg{State: navdto.StateOutput{Current: 2, Total: 3, Indicator: "2 / 3", Offset: -100}})
	stale := navdto.MoveOutput{State: navdto.StateOutput{Current: 1, Total: 3, Indicator: "1 / 3", Transitioning: true}}
	m, _ = m.Update(viewer.MovedMsg{Out: stale})
	if m.State().Current != 2 || m.Offset() != -100 {
		t.Fatalf("dropped move overwrote state: %+v offset %v", m.State(), m.Offset())
	}
}

func TestProgressNeverGoesBackwards(t *testing.T) {
	t.Parallel()
	m := viewer.New(&fakeNav{}, fakePages{})
	m, _ = m.Update(tea.WindowSizeMsg{Width: 60, Height: 12})
	m, _ = m.Update(viewer.ProgressMsg{Done: 3, Want: 5})
	m, _ = m.Update(viewer.ProgressMsg{Done: 2, Want: 5})
	if out := m.View(); !strings.Contains(out, "3 / 5 pages") {
		t.Fatalf("expected progress to hold at 3:\n%s", out)
	}
}
