package memory

import (
	"context"
	"time"

	"vendorbot/internal/core/domain/model/kernel"
	"vendorbot/internal/core/domain/model/notification"
	"vendorbot/internal/pkg/errs"
)

// OutboxRepository implements ports.OutboxRepository over a Store.
type OutboxRepository struct {
	store *Store
	tx    *changes
}

func (r *OutboxRepository) Add(_ context.Context, notifications ...*notification.Notification) error {
	c := r.tx
	if c == nil {
		c = newChanges()
	}

	for _, n := range notifications {
		if err := n.Validate(); err != nil {
			return err
		}
		id := n.ID().String()
		if _, buffered := c.outbox[id]; !buffered {
			c.outboxIDs = append(c.outboxIDs, id)
		}
		c.outbox[id] = newNotificationRecord(n)
	}

	if r.tx == nil {
		r.store.mu.Lock()
		r.store.apply(c)
		r.store.mu.Unlock()
	}
	return nil
}

func (r *OutboxRepository) Update(_ context.Context, n *notification.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}

	id := n.ID().String()
	rec := newNotificationRecord(n)

	if r.tx != nil {
		if _, ok := r.tx.outbox[id]; !ok && !r.committed(id) {
			return errs.NewObjectNotFoundError("notification", id)
		}
		r.tx.outbox[id] = rec
		return nil
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.outbox[id]; !ok {
		return errs.NewObjectNotFoundError("notification", id)
	}
	r.store.outbox[id] = rec
	return nil
}

func (r *OutboxRepository) committed(id string) bool {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	_, ok := r.store.outbox[id]
	return ok
}

func (r *OutboxRepository) Get(_ context.Context, id kernel.UUID) (*notification.Notification, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	key := id.String()
	if r.tx != nil {
		if rec, ok := r.tx.outbox[key]; ok {
			return rec.toDomain()
		}
	}

	r.store.mu.RLock()
	rec, ok := r.store.outbox[key]
	r.store.mu.RUnlock()
	if !ok {
		return nil, errs.NewObjectNotFoundError("notification", key)
	}
	return rec.toDomain()
}

// GetForUpdate behaves like Get. The store lives in one process, where callers already
// serialize updates to one entry.
func (r *OutboxRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*notification.Notification, error) {
	return r.Get(ctx, id)
}

// ListDue walks entries in insertion order, which is creation order.
func (r *OutboxRepository) ListDue(
	_ context.Context,
	olderThan time.Time,
	maxAttempts, limit int,
) ([]*notification.Notification, error) {
	return r.filter(limit, func(rec notificationRecord) bool {
		return rec.status == notification.Pending &&
			!rec.updatedAt.After(olderThan) &&
			rec.attempts < maxAttempts
	})
}

func (r *OutboxRepository) ListByOrder(_ context.Context, orderID int64) ([]*notification.Notification, error) {
	return r.filter(0, func(rec notificationRecord) bool {
		return rec.orderID == orderID
	})
}

// filter returns matching entries in insertion order; limit <= 0 means no limit.
func (r *OutboxRepository) filter(limit int, keep func(notificationRecord) bool) ([]*notification.Notification, error) {
	r.store.mu.RLock()
	ids := make([]string, len(r.store.outboxIDs))
	copy(ids, r.store.outboxIDs)
	records := make(map[string]notificationRecord, len(ids))
	for _, id := range ids {
		records[id] = r.store.outbox[id]
	}
	r.store.mu.RUnlock()

	if r.tx != nil {
		for _, id := range r.tx.outboxIDs {
			if _, committed := records[id]; !committed {
				ids = append(ids, id)
			}
		}
		for id, rec := range r.tx.outbox {
			records[id] = rec
		}
	}

	out := make([]*notification.Notification, 0)
	for _, id := range ids {
		if limit > 0 && len(out) == limit {
			break
		}
		rec := records[id]
		if !keep(rec) {
			continue
		}
		n, err := rec.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
