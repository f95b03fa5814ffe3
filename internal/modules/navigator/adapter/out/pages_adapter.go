package out

import (
	"context"

	navout "folio/internal/modules/navigator/port/out"
	"folio/internal/modules/pages/dto"
	pagesin "folio/internal/modules/pages/port/in"
)

type PagesAdapter struct {
	pages pagesin.Usecase
}

func NewPagesAdapter(pages pagesin.Usecase) navout.PageStore {
	return &PagesAdapter{pages: pages}
}

func (a *PagesAdapter) DiscoverTotal(ctx context.Context) (int, error) {
	out, err := a.pages.DiscoverTotal(ctx)
	if err != nil {
		return 0, err
	}
	return out.Total, nil
}

func (a *PagesAdapter) Preload(ctx context.Context, count int, progress func(done, want int)) error {
	return a.pages.Preload(ctx, dto.PreloadInput{Count: count, Progress: progress})
}

func (a *PagesAdapter) EnsureLoaded(ctx context.Context, index int) bool {
	return a.pages.EnsureLoaded(ctx, dto.EnsureLoadedInput{Index: index}).Loaded()
}

func (a *PagesAdapter) IsLoaded(index int) bool {
	return a.pages.IsLoaded(index)
}
