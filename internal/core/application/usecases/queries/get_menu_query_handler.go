package queries

import (
	"context"

	"vendorbot/internal/core/domain/model/menu"
	"vendorbot/internal/core/ports"
)

type GetMenuQueryHandler struct {
	repo ports.MenuRepository
}

func NewGetMenuQueryHandler(repo ports.MenuRepository) GetMenuQueryHandler {
	return GetMenuQueryHandler{repo: repo}
}

// Handle returns items in insertion order. An empty result is not an error.
func (h GetMenuQueryHandler) Handle(ctx context.Context, query GetMenuQuery) ([]MenuItemResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var (
		items []*menu.Item
		err   error
	)
	if query.Search() == "" {
		items, err = h.repo.List(ctx)
	} else {
		items, err = h.repo.Search(ctx, query.Search())
	}
	if err != nil {
		return nil, err
	}

	resp := make([]MenuItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, NewMenuItemResponse(item))
	}
	return resp, nil
}
