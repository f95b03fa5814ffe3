package in

import (
	"context"

	"folio/internal/modules/navigator/dto"
	navin "folio/internal/modules/navigator/port/in"
)

type CLIHandler struct {
	usecase navin.Usecase
}

func NewCLIHandler(usecase navin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context) (dto.StateOutput, error) {
	return h.usecase.Start(ctx)
}

// Walk advances up to steps pages and reports the state after each move.
// It stops early at the last page.
func (h CLIHandler) Walk(ctx context.Context, steps int, each func(dto.MoveOutput)) (dto.StateOutput, error) {
	for range steps {
		out, err := h.usecase.Next(ctx)
		if err != nil {
			return dto.StateOutput{}, err
		}
		if each != nil {
			each(out)
		}
		if !out.Moved {
			break
		}
	}
	h.usecase.Wait()
	return h.usecase.State(ctx), nil
}

func (h CLIHandler) State(ctx context.Context) dto.StateOutput {
	return h.usecase.State(ctx)
}
