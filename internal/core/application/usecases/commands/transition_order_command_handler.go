package commands

import (
	"context"

	"vendorbot/internal/core/domain/services"
	"vendorbot/internal/pkg/keylock"
)

// TransitionOrderCommandHandler runs one vendor action as a single unit of work: the
// order update and its outbox rows commit together or not at all.
//
// Commands on the same order are serialized in-process by a per-order lock, and
// GetForUpdate holds a row lock for stores shared between processes. Whoever loses a
// race sees the winner's state and gets an InvalidTransitionError.
type TransitionOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	lifecycle  services.OrderLifecycle
	locks      *keylock.Locker[int64]
	clock      Clock
}

func NewTransitionOrderCommandHandler(
	uowFactory OrderUoWFactory,
	lifecycle services.OrderLifecycle,
	clock Clock,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  lifecycle,
		locks:      keylock.New[int64](),
		clock:      clock,
	}
}

func (h *TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) (OrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return OrderResult{}, err
	}

	unlock := h.locks.Lock(cmd.OrderID())
	defer unlock()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return OrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return OrderResult{}, err
	}

	notifications, err := h.lifecycle.Apply(o, cmd.Action(), cmd.AgentContact(), h.clock.now())
	if err != nil {
		return OrderResult{}, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
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
