package commands

import (
	"context"
	"errors"

	"vendorbot/internal/core/domain/model/menu"
	"vendorbot/internal/core/domain/model/notification"
	"vendorbot/internal/core/domain/model/order"
	"vendorbot/internal/core/domain/services"
	"vendorbot/internal/pkg/errs"
)

// OrderResult is a committed order together with the outbox entries written with it.
// The caller hands Notifications to the dispatcher.
type OrderResult struct {
	Order         *order.Order
	Notifications []*notification.Notification
}

// CreateOrderCommandHandler snapshots requested items from the menu, allocates the
// next order id and stores the pending order with the vendor's notification.
//
// No id is allocated when any item is unknown or unavailable.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	placement  services.OrderPlacement
	lifecycle  services.OrderLifecycle
	clock      Clock
}

func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	lifecycle services.OrderLifecycle,
	clock Clock,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		placement:  services.NewOrderPlacement(),
		lifecycle:  lifecycle,
		clock:      clock,
	}
}

func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (OrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return OrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return OrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	catalog, err := h.loadCatalog(ctx, uow, cmd.Lines())
	if err != nil {
		return OrderResult{}, err
	}

	lines, err := h.placement.BuildLines(cmd.Lines(), catalog)
	if err != nil {
		return OrderResult{}, err
	}

	orderRepo := uow.OrderRepository()
	id, err := orderRepo.NextID(ctx)
	if err != nil {
		return OrderResult{}, err
	}

	now := h.clock.now()
	o, err := order.NewOrder(id, lines, cmd.CustomerName(), cmd.CustomerContact(), cmd.SpecialInstructions(), now)
	if err != nil {
		return OrderResult{}, err
	}

	if err = orderRepo.Add(ctx, o); err != nil {
		return OrderResult{}, err
	}

	notifications, err := h.lifecycle.Placed(o, now)
	if err != nil {
		return OrderResult{}, err
	}
	if len(notifications) > 0 {
		if err = uow.OutboxRepository().Add(ctx, notifications...); err != nil {
			return OrderResult{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return OrderResult{}, err
	}

	return OrderResult{Order: o, Notifications: notifications}, nil
}

// loadCatalog fetches the requested items. Missing items are left out so the
// placement service reports them as unknown.
func (h *CreateOrderCommandHandler) loadCatalog(
	ctx context.Context,
	uow OrderUoW,
	requested []services.RequestedLine,
) (map[string]*menu.Item, error) {
	repo := uow.MenuRepository()
	catalog := make(map[string]*menu.Item, len(requested))

	for _, r := range requested {
		key := menu.NormalizeName(r.Name)
		if _, ok := catalog[key]; ok {
			continue
		}

		item, err := repo.Get(ctx, key)
		if errors.Is(err, errs.ErrObjectNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		catalog[key] = item
	}

	return catalog, nil
}
