// Package commands contains business operations that modify system state.
// Every handler follows the same shape: validate the command, open a unit of work,
// load aggregates, apply domain behaviour, persist and commit.
package commands

import (
	"context"
	"time"

	"vendorbot/internal/core/ports"
)

// Unit of Work interfaces narrowed to what each handler touches.
type (
	// TxManager handles transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	MenuRepoFactory interface {
		MenuRepository() ports.MenuRepository
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// MenuUoW manages transactions for catalog edits.
	MenuUoW interface {
		TxManager
		MenuRepoFactory
	}

	MenuUoWFactory interface {
		Create() MenuUoW
	}

	// OrderUoW covers order placement and transitions: menu reads, order writes and
	// the outbox rows committed with them.
	OrderUoW interface {
		TxManager
		MenuRepoFactory
		OrderRepoFactory
		OutboxRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// OutboxUoW manages transactions for notification bookkeeping.
	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	OutboxUoWFactory interface {
		Create() OutboxUoW
	}
)

// Clock supplies timestamps to handlers. Nil means time.Now.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c()
}
