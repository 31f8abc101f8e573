package memory

import (
	"context"
	"fmt"
	"sort"

	"vendorbot/internal/core/domain/model/order"
	"vendorbot/internal/core/ports"
	"vendorbot/internal/pkg/errs"
)

// OrderRepository implements ports.OrderRepository over a Store.
type OrderRepository struct {
	store *Store
	tx    *changes
}

// NextID uses an atomic counter. Ids taken by a rolled back unit of work are not reused.
func (r *OrderRepository) NextID(_ context.Context) (int64, error) {
	return r.store.lastOrderID.Add(1), nil
}

func (r *OrderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	id := aggregate.ID()
	if r.exists(id) {
		return errs.NewValueIsInvalidErrorWithCause("order_id", fmt.Errorf("order %d already exists", id))
	}

	return r.write(id, newOrderRecord(aggregate))
}

func (r *OrderRepository) Update(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	id := aggregate.ID()
	if !r.exists(id) {
		return errs.NewObjectNotFoundError("order", id)
	}

	return r.write(id, newOrderRecord(aggregate))
}

func (r *OrderRepository) write(id int64, rec orderRecord) error {
	if r.tx != nil {
		r.tx.orders[id] = rec
		return nil
	}

	r.store.mu.Lock()
	r.store.orders[id] = rec
	r.store.mu.Unlock()
	return nil
}

func (r *OrderRepository) exists(id int64) bool {
	if r.tx != nil {
		if _, ok := r.tx.orders[id]; ok {
			return true
		}
	}
	r.store.mu.RLock()
	_, ok := r.store.orders[id]
	r.store.mu.RUnlock()
	return ok
}

func (r *OrderRepository) Get(_ context.Context, id int64) (*order.Order, error) {
	if r.tx != nil {
		if rec, ok := r.tx.orders[id]; ok {
			return rec.toDomain()
		}
	}

	r.store.mu.RLock()
	rec, ok := r.store.orders[id]
	r.store.mu.RUnlock()
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id)
	}
	return rec.toDomain()
}

// GetForUpdate holds the order's lock until the unit of work commits or rolls back.
// Outside a transaction it behaves like Get.
func (r *OrderRepository) GetForUpdate(ctx context.Context, id int64) (*order.Order, error) {
	if r.tx != nil {
		if _, held := r.tx.unlocks[id]; !held {
			r.tx.unlocks[id] = r.store.orderLocks.Lock(id)
		}
	}
	return r.Get(ctx, id)
}

func (r *OrderRepository) List(_ context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	r.store.mu.RLock()
	records := make(map[int64]orderRecord, len(r.store.orders))
	for id, rec := range r.store.orders {
		records[id] = rec
	}
	r.store.mu.RUnlock()

	if r.tx != nil {
		for id, rec := range r.tx.orders {
			records[id] = rec
		}
	}

	ids := make([]int64, 0, len(records))
	for id, rec := range records {
		if filter.Status == order.Unknown || rec.status == filter.Status {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	orders := make([]*order.Order, 0, len(ids))
	for _, id := range ids {
		o, err := records[id].toDomain()
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
