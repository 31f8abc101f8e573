// Package memory is the in-process storage adapter. A Store holds committed state;
// units of work buffer their writes and apply them to the Store atomically on Commit.
// It backs STORAGE=memory and the lifecycle feature tests.
package memory

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"vendorbot/internal/core/domain/model/kernel"
	"vendorbot/internal/core/domain/model/menu"
	"vendorbot/internal/core/domain/model/notification"
	"vendorbot/internal/core/domain/model/order"
	"vendorbot/internal/pkg/keylock"

	"github.com/shopspring/decimal"
)

// ErrNoTransaction is returned by Commit and Rollback without a preceding Begin.
var ErrNoTransaction = errors.New("memory: no transaction in progress")

// Store is the committed state shared by all units of work of one process.
type Store struct {
	mu sync.RWMutex

	menuKeys []string
	menu     map[string]menuRecord

	orders map[int64]orderRecord

	outboxIDs []string
	outbox    map[string]notificationRecord

	lastOrderID atomic.Int64
	orderLocks  keylock.Locker[int64]
}

func NewStore() *Store {
	return &Store{
		menu:   make(map[string]menuRecord),
		orders: make(map[int64]orderRecord),
		outbox: make(map[string]notificationRecord),
	}
}

// Records copy aggregates field by field, so callers never share state with the store.
type (
	menuRecord struct {
		name         string
		price        decimal.Decimal
		unit         string
		availability menu.Availability
	}

	orderRecord struct {
		id                  int64
		lines               []order.Line
		customerName        string
		customerContact     kernel.Contact
		specialInstructions string
		status              order.Status
		agentContact        *kernel.Contact
		createdAt           time.Time
		updatedAt           time.Time
	}

	notificationRecord struct {
		id        kernel.UUID
		orderID   int64
		kind      notification.Kind
		recipient kernel.Contact
		text      string
		status    notification.DeliveryStatus
		attempts  int
		lastError string
		createdAt time.Time
		updatedAt time.Time
	}
)

func newMenuRecord(item *menu.Item) menuRecord {
	return menuRecord{
		name:         item.Name(),
		price:        item.Price(),
		unit:         item.Unit(),
		availability: item.Availability(),
	}
}

func (r menuRecord) toDomain() (*menu.Item, error) {
	return menu.NewItem(r.name, r.price, r.unit, r.availability)
}

func newOrderRecord(o *order.Order) orderRecord {
	return orderRecord{
		id:                  o.ID(),
		lines:               o.Lines(),
		customerName:        o.CustomerName(),
		customerContact:     o.CustomerContact(),
		specialInstructions: o.SpecialInstructions(),
		status:              o.Status(),
		agentContact:        o.AgentContact(),
		createdAt:           o.CreatedAt(),
		updatedAt:           o.UpdatedAt(),
	}
}

func (r orderRecord) toDomain() (*order.Order, error) {
	return order.RestoreOrder(
		r.id,
		r.lines,
		r.customerName,
		r.customerContact,
		r.specialInstructions,
		r.status,
		r.agentContact,
		r.createdAt,
		r.updatedAt,
	)
}

func newNotificationRecord(n *notification.Notification) notificationRecord {
	return notificationRecord{
		id:        n.ID(),
		orderID:   n.OrderID(),
		kind:      n.Kind(),
		recipient: n.Recipient(),
		text:      n.Text(),
		status:    n.Status(),
		attempts:  n.Attempts(),
		lastError: n.LastError(),
		createdAt: n.CreatedAt(),
		updatedAt: n.UpdatedAt(),
	}
}

func (r notificationRecord) toDomain() (*notification.Notification, error) {
	return notification.RestoreNotification(
		r.id,
		r.orderID,
		r.kind,
		r.recipient,
		r.text,
		r.status,
		r.attempts,
		r.lastError,
		r.createdAt,
		r.updatedAt,
	)
}

// changes is the write buffer of one transaction. New keys keep their insertion order.
type changes struct {
	menuKeys []string
	menu     map[string]menuRecord

	orders map[int64]orderRecord

	outboxIDs []string
	outbox    map[string]notificationRecord

	unlocks map[int64]func()
}

func newChanges() *changes {
	return &changes{
		menu:    make(map[string]menuRecord),
		orders:  make(map[int64]orderRecord),
		outbox:  make(map[string]notificationRecord),
		unlocks: make(map[int64]func()),
	}
}

// apply writes the buffer into the store. The caller holds s.mu.
func (s *Store) apply(c *changes) {
	for _, key := range c.menuKeys {
		if _, exists := s.menu[key]; !exists {
			s.menuKeys = append(s.menuKeys, key)
		}
	}
	for key, rec := range c.menu {
		s.menu[key] = rec
	}

	for id, rec := range c.orders {
		s.orders[id] = rec
	}

	for _, id := range c.outboxIDs {
		if _, exists := s.outbox[id]; !exists {
			s.outboxIDs = append(s.outboxIDs, id)
		}
	}
	for id, rec := range c.outbox {
		s.outbox[id] = rec
	}
}

func (c *changes) release() {
	for _, unlock := range c.unlocks {
		unlock()
	}
	clear(c.unlocks)
}
