package commands_test

import (
	"context"
	"time"

	"vendorbot/internal/core/application/usecases/commands"
	"vendorbot/internal/core/domain/model/kernel"
	"vendorbot/internal/core/domain/model/menu"
	"vendorbot/internal/core/domain/model/notification"
	"vendorbot/internal/core/domain/model/order"
	"vendorbot/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

var fixedNow = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

type MockMenuRepository struct{ mock.Mock }

func (m *MockMenuRepository) Save(ctx context.Context, item *menu.Item) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockMenuRepository) Get(ctx context.Context, key string) (*menu.Item, error) {
	args := m.Called(ctx, key)
	item, _ := args.Get(0).(*menu.Item)
	return item, args.Error(1)
}

func (m *MockMenuRepository) List(ctx context.Context) ([]*menu.Item, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]*menu.Item)
	return items, args.Error(1)
}

func (m *MockMenuRepository) Search(ctx context.Context, query string) ([]*menu.Item, error) {
	args := m.Called(ctx, query)
	items, _ := args.Get(0).([]*menu.Item)
	return items, args.Error(1)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) NextID(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id int64) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	args := m.Called(ctx, filter)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) Add(ctx context.Context, notifications ...*notification.Notification) error {
	return m.Called(ctx, notifications).Error(0)
}

func (m *MockOutboxRepository) Update(ctx context.Context, n *notification.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *MockOutboxRepository) Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error) {
	args := m.Called(ctx, id)
	n, _ := args.Get(0).(*notification.Notification)
	return n, args.Error(1)
}

func (m *MockOutboxRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*notification.Notification, error) {
	args := m.Called(ctx, id)
	n, _ := args.Get(0).(*notification.Notification)
	return n, args.Error(1)
}

func (m *MockOutboxRepository) ListDue(
	ctx context.Context,
	olderThan time.Time,
	maxAttempts, limit int,
) ([]*notification.Notification, error) {
	args := m.Called(ctx, olderThan, maxAttempts, limit)
	n, _ := args.Get(0).([]*notification.Notification)
	return n, args.Error(1)
}

func (m *MockOutboxRepository) ListByOrder(ctx context.Context, orderID int64) ([]*notification.Notification, error) {
	args := m.Called(ctx, orderID)
	n, _ := args.Get(0).([]*notification.Notification)
	return n, args.Error(1)
}

// MockUoW satisfies every narrowed unit of work interface.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) MenuRepository() ports.MenuRepository {
	return m.Called().Get(0).(ports.MenuRepository)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

func (m *MockUoW) OutboxRepository() ports.OutboxRepository {
	return m.Called().Get(0).(ports.OutboxRepository)
}

type MockMenuUoWFactory struct{ mock.Mock }

func (m *MockMenuUoWFactory) Create() commands.MenuUoW {
	return m.Called().Get(0).(commands.MenuUoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	ret := m.Called().Get(0)
	if fn, ok := ret.(func() commands.OrderUoW); ok {
		return fn()
	}
	return ret.(commands.OrderUoW)
}

type MockOutboxUoWFactory struct{ mock.Mock }

func (m *MockOutboxUoWFactory) Create() commands.OutboxUoW {
	return m.Called().Get(0).(commands.OutboxUoW)
}

type MockDeliverer struct{ mock.Mock }

func (m *MockDeliverer) Deliver(ctx context.Context, n *notification.Notification) error {
	return m.Called(ctx, n).Error(0)
}
