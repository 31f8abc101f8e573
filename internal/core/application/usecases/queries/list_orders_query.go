package queries

import (
	"errors"
	"strings"

	"vendorbot/internal/core/domain/model/order"
	"vendorbot/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery lists orders by ascending id, optionally only those in one state.
type ListOrdersQuery struct {
	status order.Status

	guard guard.ConstructorGuard
}

// NewListOrdersQuery accepts an empty state (all orders) or a state name.
func NewListOrdersQuery(state string) (ListOrdersQuery, error) {
	q := ListOrdersQuery{guard: guard.NewConstructorGuard()}
	if strings.TrimSpace(state) == "" {
		return q, nil
	}

	status, err := order.ParseStatus(state)
	if err != nil {
		return ListOrdersQuery{}, err
	}
	q.status = status
	return q, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// Status is order.Unknown when no filter was given.
func (q ListOrdersQuery) Status() order.Status {
	return q.status
}
