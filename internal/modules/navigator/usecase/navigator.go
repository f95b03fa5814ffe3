package usecase

import (
	"context"

	"folio/internal/modules/navigator/domain"
	"folio/internal/modules/navigator/dto"
	navin "folio/internal/modules/navigator/port/in"
	"folio/internal/modules/navigator/service"
)

type Interactor struct {
	ctrl *service.Controller
}

func NewInteractor(ctrl *service.Controller) navin.Usecase {
	return &Interactor{ctrl: ctrl}
}

func (i *Interactor) Start(ctx context.Context) (dto.StateOutput, error) {
	state, err := i.ctrl.Start(ctx)
	if err != nil {
		return dto.StateOutput{}, err
	}
	return dto.NewStateOutput(state), nil
}

func (i *Interactor) Next(ctx context.Context) (dto.MoveOutput, error) {
	return i.move(i.ctrl.GoNext(ctx))
}

func (i *Interactor) Previous(ctx context.Context) (dto.MoveOutput, error) {
	return i.move(i.ctrl.GoPrevious(ctx))
}

func (i *Interactor) HandleKey(ctx context.Context, input dto.KeyInput) (dto.MoveOutput, error) {
	return i.move(i.ctrl.HandleKey(ctx, input.Key))
}

func (i *Interactor) HandleSwipe(ctx context.Context, input dto.SwipeInput) (dto.MoveOutput, error) {
	swipe := domain.Swipe{StartX: input.StartX, StartY: input.StartY, EndX: input.EndX, EndY: input.EndY}
	return i.move(i.ctrl.HandleSwipe(ctx, swipe))
}

func (i *Interactor) State(_ context.Context) dto.StateOutput {
	return dto.NewStateOutput(i.ctrl.State())
}

func (i *Interactor) Wait() {
	i.ctrl.Wait()
}

func (i *Interactor) move(moved bool) (dto.MoveOutput, error) {
	return dto.MoveOutput{Moved: moved, State: dto.NewStateOutput(i.ctrl.State())}, nil
}
