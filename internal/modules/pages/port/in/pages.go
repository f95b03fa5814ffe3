package in

import (
	"context"

	"folio/internal/modules/pages/dto"
)

type Usecase interface {
	DiscoverTotal(ctx context.Context) (dto.DiscoverOutput, error)
	EnsureLoaded(ctx context.Context, input dto.EnsureLoadedInput) dto.PageOutput
	IsLoaded(index int) bool
	Preload(ctx context.Context, input dto.PreloadInput) error
	ListPages(ctx context.Context) ([]dto.PageOutput, error)
	Element(ctx context.Context, index int) (dto.ElementOutput, bool)
}
