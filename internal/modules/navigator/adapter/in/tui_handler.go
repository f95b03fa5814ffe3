package in

import (
	"context"

	"folio/internal/modules/navigator/dto"
	navin "folio/internal/modules/navigator/port/in"
)

type TUIHandler struct {
	usecase navin.Usecase
}

func NewTUIHandler(usecase navin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) Start(ctx context.Context) (dto.StateOutput, error) {
	return h.usecase.Start(ctx)
}

func (h TUIHandler) Next(ctx context.Context) (dto.MoveOutput, error) {
	return h.usecase.Next(ctx)
}

func (h TUIHandler) Previous(ctx context.Context) (dto.MoveOutput, error) {
	return h.usecase.Previous(ctx)
}

func (h TUIHandler) Key(ctx context.Context, key string) (dto.MoveOutput, error) {
	return h.usecase.HandleKey(ctx, dto.KeyInput{Key: key})
}

func (h TUIHandler) Swipe(ctx context.Context, input dto.SwipeInput) (dto.MoveOutput, error) {
	return h.usecase.HandleSwipe(ctx, input)
}

func (h TUIHandler) State(ctx context.Context) dto.StateOutput {
	return h.usecase.State(ctx)
}
