package queries

import (
	"errors"
	"strings"

	"vendorbot/internal/pkg/guard"
)

var ErrGetMenuQueryIsNotConstructed = errors.New(
	"GetMenuQuery must be created via NewGetMenuQuery constructor",
)

// GetMenuQuery lists the catalog, or only the items whose name contains Search.
type GetMenuQuery struct {
	search string

	guard guard.ConstructorGuard
}

func NewGetMenuQuery(search string) GetMenuQuery {
	return GetMenuQuery{search: strings.TrimSpace(search), guard: guard.NewConstructorGuard()}
}

func (q GetMenuQuery) Validate() error {
	return q.guard.Validate(ErrGetMenuQueryIsNotConstructed)
}

func (q GetMenuQuery) Search() string {
	return q.search
}
