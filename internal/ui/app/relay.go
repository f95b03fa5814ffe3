package app

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	navdto "folio/internal/modules/navigator/dto"
	viewerview "folio/internal/ui/views/viewer"
)

// Relay forwards events raised outside the Bubble Tea loop into the running
// program. Events raised before Attach are dropped.
type Relay struct {
	mu   sync.RWMutex
	send func(tea.Msg)
}

func NewRelay() *Relay {
	return &Relay{}
}

func (r *Relay) Attach(p *tea.Program) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.send = p.Send
}

func (r *Relay) State(state navdto.StateOutput) {
	r.forward(viewerview.StateMsg{State: state})
}

func (r *Relay) Frame(offset float64) {
	r.forward(viewerview.FrameMsg{Offset: offset})
}

func (r *Relay) Progress(done, want int) {
	r.forward(viewerview.ProgressMsg{Done: done, Want: want})
}

func (r *Relay) forward(msg tea.Msg) {
	r.mu.RLock()
	send := r.send
	r.mu.RUnlock()
	if send != nil {
		send(msg)
	}
}
