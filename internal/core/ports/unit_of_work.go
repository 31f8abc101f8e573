package ports

import (
	"context"
)

// UnitOfWorkFactory creates a UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Writes made through its repositories
// become visible to others only after Commit. Handlers defer Rollback and ignore its
// error, which is ErrInvalidTransaction-like once Commit has run.
//
// Repositories obtained before Begin read committed state directly.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	MenuRepository() MenuRepository
	OrderRepository() OrderRepository
	OutboxRepository() OutboxRepository
}
