package ports

import (
	"context"

	"vendorbot/internal/core/domain/model/order"
)

// OrderFilter narrows List. A zero Status returns every order.
type OrderFilter struct {
	Status order.Status
}

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// NextID allocates the next order identifier. Identifiers are strictly increasing
	// and never reused. Callers allocate only once the order is known to be valid.
	NextID(ctx context.Context) (int64, error)

	// Add persists a new order.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order. Returns errs.ObjectNotFoundError when absent.
	Get(ctx context.Context, id int64) (*order.Order, error)

	// GetForUpdate is Get plus a write lock held until the unit of work ends.
	GetForUpdate(ctx context.Context, id int64) (*order.Order, error)

	// List returns orders in ascending id order.
	List(ctx context.Context, filter OrderFilter) ([]*order.Order, error)
}
