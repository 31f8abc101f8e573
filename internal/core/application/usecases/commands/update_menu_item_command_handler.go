package commands

import (
	"context"
	"errors"

	"vendorbot/internal/core/domain/model/menu"
	"vendorbot/internal/pkg/errs"
	"vendorbot/internal/pkg/keylock"
)

// UpdateMenuItemCommandHandler upserts catalog entries. Updates to the same item are
// serialized; different items proceed concurrently.
type UpdateMenuItemCommandHandler struct {
	uowFactory MenuUoWFactory
	locks      *keylock.Locker[string]
}

func NewUpdateMenuItemCommandHandler(uowFactory MenuUoWFactory) UpdateMenuItemCommandHandler {
	return UpdateMenuItemCommandHandler{
		uowFactory: uowFactory,
		locks:      keylock.New[string](),
	}
}

// Handle creates the item when absent, else updates it. A blank unit keeps the stored
// unit of an existing item. Repeating the same command leaves the same stored state.
func (h *UpdateMenuItemCommandHandler) Handle(ctx context.Context, cmd UpdateMenuItemCommand) (*menu.Item, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	unlock := h.locks.Lock(cmd.Key())
	defer unlock()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.MenuRepository()

	item, err := repo.Get(ctx, cmd.Key())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		item, err = menu.NewItem(cmd.Name(), cmd.Price(), cmd.Unit(), cmd.Availability())
		if err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		unit := cmd.Unit()
		if unit == "" {
			unit = item.Unit()
		}
		if err = item.Update(cmd.Price(), unit, cmd.Availability()); err != nil {
			return nil, err
		}
	}

	if err = repo.Save(ctx, item); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return item, nil
}
