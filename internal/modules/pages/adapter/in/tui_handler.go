package in

import (
	"context"

	"folio/internal/modules/pages/dto"
	pagesin "folio/internal/modules/pages/port/in"
)

type TUIHandler struct {
	usecase pagesin.Usecase
}

func NewTUIHandler(usecase pagesin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) Element(ctx context.Context, index int) (dto.ElementOutput, bool) {
	return h.usecase.Element(ctx, index)
}
