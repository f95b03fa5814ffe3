package out

import (
	"folio/internal/modules/navigator/domain"
	"folio/internal/modules/navigator/dto"
	navout "folio/internal/modules/navigator/port/out"
)

// SinkPresenter forwards states and progress to plain callbacks. Nil
// callbacks are skipped.
type SinkPresenter struct {
	state    func(dto.StateOutput)
	progress func(done, want int)
}

func NewSinkPresenter(state func(dto.StateOutput), progress func(done, want int)) navout.Presenter {
	return &SinkPresenter{state: state, progress: progress}
}

func (p *SinkPresenter) Present(state domain.ViewerState) {
	if p.state != nil {
		p.state(dto.NewStateOutput(state))
	}
}

func (p *SinkPresenter) Progress(done, want int) {
	if p.progress != nil {
		p.progress(done, want)
	}
}

