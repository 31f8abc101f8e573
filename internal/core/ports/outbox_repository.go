package ports

import (
	"context"
	"time"

	"vendorbot/internal/core/domain/model/kernel"
	"vendorbot/internal/core/domain/model/notification"
)

// OutboxRepository stores notifications committed alongside order changes.
type OutboxRepository interface {
	Add(ctx context.Context, notifications ...*notification.Notification) error
	Update(ctx context.Context, n *notification.Notification) error

	// Get returns errs.ObjectNotFoundError when absent.
	Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error)

	// GetForUpdate is Get holding the entry's row lock until the unit of work ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*notification.Notification, error)

	// ListDue returns pending entries last touched at or before olderThan with fewer than
	// maxAttempts attempts, oldest first, at most limit of them.
	ListDue(ctx context.Context, olderThan time.Time, maxAttempts, limit int) ([]*notification.Notification, error)

	// ListByOrder returns an order's notifications in creation order.
	ListByOrder(ctx context.Context, orderID int64) ([]*notification.Notification, error)
}
