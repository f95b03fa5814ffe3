package usecase

import (
	"context"

	"folio/internal/modules/pages/domain"
	"folio/internal/modules/pages/dto"
	pagesin "folio/internal/modules/pages/port/in"
	"folio/internal/modules/pages/service"
)

type Interactor struct {
	store *service.PageStore
}

func NewInteractor(store *service.PageStore) pagesin.Usecase {
	return &Interactor{store: store}
}

func (i *Interactor) DiscoverTotal(ctx context.Context) (dto.DiscoverOutput, error) {
	total, err := i.store.DiscoverTotal(ctx)
	if err != nil {
		return dto.DiscoverOutput{}, err
	}
	out := dto.DiscoverOutput{Total: total, Locators: make([]string, 0, total)}
	for index := 1; index <= total; index++ {
		out.Locators = append(out.Locators, i.store.Locator(index))
	}
	return out, nil
}

func (i *Interactor) EnsureLoaded(ctx context.Context, input dto.EnsureLoadedInput) dto.PageOutput {
	outcome := i.store.EnsureLoaded(ctx, input.Index)
	out := dto.PageOutput{
		Index:   outcome.Index,
		Locator: i.store.Locator(outcome.Index),
		State:   outcome.State.String(),
	}
	if outcome.Err != nil {
		out.Error = outcome.Err.Error()
	}
	return out
}

func (i *Interactor) IsLoaded(index int) bool {
	return i.store.IsLoaded(index)
}

func (i *Interactor) Preload(ctx context.Context, input dto.PreloadInput) error {
	return i.store.Preload(ctx, input.Count, input.Progress)
}

func (i *Interactor) ListPages(_ context.Context) ([]dto.PageOutput, error) {
	pages := i.store.Snapshot()
	out := make([]dto.PageOutput, 0, len(pages))
	for _, p := range pages {
		out = append(out, toPageOutput(p))
	}
	return out, nil
}

func (i *Interactor) Element(_ context.Context, index int) (dto.ElementOutput, bool) {
	el, ok := i.store.Element(index)
	if !ok {
		return dto.ElementOutput{}, false
	}
	out := dto.ElementOutput{Index: el.Index, Failed: el.Failed, Reason: el.Reason}
	if el.Artifact != nil {
		out.Image = el.Artifact.Image
		out.Lines = el.Artifact.Lines
	}
	return out, true
}

func toPageOutput(p domain.Page) dto.PageOutput {
	out := dto.PageOutput{Index: p.Index, Locator: p.Locator, State: p.State.String()}
	if p.Err != nil {
		out.Error = p.Err.Error()
	}
	return out
}
