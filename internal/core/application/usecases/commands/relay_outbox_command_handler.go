package commands

import (
	"context"

	"vendorbot/internal/core/domain/model/notification"
)

// NotificationDeliverer sends one notification synchronously and records the outcome.
type NotificationDeliverer interface {
	Deliver(ctx context.Context, n *notification.Notification) error
}

// RelayOutboxResult counts what a relay pass did.
type RelayOutboxResult struct {
	Due       int
	Delivered int
	Failed    int
}

// RelayOutboxCommandHandler picks up notifications whose first handoff never completed
// (full dispatch queue, crash, transport outage) and sends them again.
type RelayOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	deliverer  NotificationDeliverer
	clock      Clock
}

func NewRelayOutboxCommandHandler(
	uowFactory OutboxUoWFactory,
	deliverer NotificationDeliverer,
	clock Clock,
) RelayOutboxCommandHandler {
	return RelayOutboxCommandHandler{uowFactory: uowFactory, deliverer: deliverer, clock: clock}
}

func (h *RelayOutboxCommandHandler) Handle(ctx context.Context, cmd RelayOutboxCommand) (RelayOutboxResult, error) {
	if err := cmd.Validate(); err != nil {
		return RelayOutboxResult{}, err
	}

	due, err := h.loadDue(ctx, cmd)
	if err != nil {
		return RelayOutboxResult{}, err
	}

	result := RelayOutboxResult{Due: len(due)}
	for _, n := range due {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}

		if err = h.deliverer.Deliver(ctx, n); err != nil {
			result.Failed++
			continue
		}
		result.Delivered++
	}

	return result, nil
}

func (h *RelayOutboxCommandHandler) loadDue(
	ctx context.Context,
	cmd RelayOutboxCommand,
) ([]*notification.Notification, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	due, err := uow.OutboxRepository().ListDue(ctx, h.clock.now().Add(-cmd.Grace()), cmd.MaxAttempts(), cmd.BatchSize())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return due, nil
}
