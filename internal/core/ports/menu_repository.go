// Package ports defines the contracts between the domain core and its adapters:
// repositories for menu items, orders and outbox notifications, the unit of work that
// binds them to one transaction, and the outbound message transport.
package ports

import (
	"context"

	"vendorbot/internal/core/domain/model/menu"
)

// MenuRepository stores catalog entries keyed by menu.NormalizeName.
type MenuRepository interface {
	// Save inserts the item, or replaces the stored item with the same key.
	// Inserted items go to the end of the menu; replaced items keep their position.
	Save(ctx context.Context, item *menu.Item) error

	// Get returns the item for a key. Returns errs.ObjectNotFoundError when absent.
	Get(ctx context.Context, key string) (*menu.Item, error)

	// List returns every item in insertion order.
	List(ctx context.Context) ([]*menu.Item, error)

	// Search returns items whose name contains query, case-insensitively, in insertion order.
	Search(ctx context.Context, query string) ([]*menu.Item, error)
}
