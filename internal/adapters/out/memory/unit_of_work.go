package memory

import (
	"context"

	"vendorbot/internal/core/ports"
)

// UnitOfWorkFactory creates units of work over one Store.
type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork buffers writes between Begin and Commit. Commit applies the whole buffer
// under the store lock, so readers see all of a transaction or none of it. Order locks
// taken by GetForUpdate are released on Commit and Rollback.
type UnitOfWork struct {
	store *Store
	tx    *changes
}

// Begin is idempotent, like the postgres unit of work.
func (uow *UnitOfWork) Begin(_ context.Context) error {
	if uow.tx == nil {
		uow.tx = newChanges()
	}
	return nil
}

func (uow *UnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return ErrNoTransaction
	}

	uow.store.mu.Lock()
	uow.store.apply(uow.tx)
	uow.store.mu.Unlock()

	uow.tx.release()
	uow.tx = nil
	return nil
}

func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return ErrNoTransaction
	}

	uow.tx.release()
	uow.tx = nil
	return nil
}

func (uow *UnitOfWork) MenuRepository() ports.MenuRepository {
	return &MenuRepository{store: uow.store, tx: uow.tx}
}

func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &OrderRepository{store: uow.store, tx: uow.tx}
}

func (uow *UnitOfWork) OutboxRepository() ports.OutboxRepository {
	return &OutboxRepository{store: uow.store, tx: uow.tx}
}
