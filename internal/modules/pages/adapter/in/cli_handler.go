package in

import (
	"context"

	"folio/internal/modules/pages/dto"
	pagesin "folio/internal/modules/pages/port/in"
)

type CLIHandler struct {
	usecase pagesin.Usecase
}

func NewCLIHandler(usecase pagesin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Probe(ctx context.Context) (dto.DiscoverOutput, error) {
	return h.usecase.DiscoverTotal(ctx)
}

func (h CLIHandler) ListPages(ctx context.Context) ([]dto.PageOutput, error) {
	return h.usecase.ListPages(ctx)
}
