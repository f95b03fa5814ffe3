package in

import (
	"context"

	"folio/internal/modules/navigator/dto"
)

type Usecase interface {
	Start(ctx context.Context) (dto.StateOutput, error)
	Next(ctx context.Context) (dto.MoveOutput, error)
	Previous(ctx context.Context) (dto.MoveOutput, error)
	HandleKey(ctx context.Context, input dto.KeyInput) (dto.MoveOutput, error)
	HandleSwipe(ctx context.Context, input dto.SwipeInput) (dto.MoveOutput, error)
	State(ctx context.Context) dto.StateOutput
	Wait()
}
