package commands

import (
	"context"

	"vendorbot/internal/core/domain/model/notification"
	"vendorbot/internal/pkg/keylock"
)

// RecordDeliveryCommandHandler updates an outbox entry after a send attempt.
// Entries that already left Pending are returned untouched, so a late duplicate
// attempt cannot flip a delivered entry back.
//
// The dispatcher workers and the relay may report on the same entry at once. Updates to
// one entry are serialized by a per-entry lock in-process and by GetForUpdate across
// processes, so no attempt is lost.
type RecordDeliveryCommandHandler struct {
	uowFactory OutboxUoWFactory
	locks      *keylock.Locker[string]
	clock      Clock
}

func NewRecordDeliveryCommandHandler(uowFactory OutboxUoWFactory, clock Clock) RecordDeliveryCommandHandler {
	return RecordDeliveryCommandHandler{uowFactory: uowFactory, locks: keylock.New[string](), clock: clock}
}

func (h *RecordDeliveryCommandHandler) Handle(
	ctx context.Context,
	cmd RecordDeliveryCommand,
) (*notification.Notification, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	unlock := h.locks.Lock(cmd.NotificationID().String())
	defer unlock()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OutboxRepository()
	n, err := repo.GetForUpdate(ctx, cmd.NotificationID())
	if err != nil {
		return nil, err
	}

	if n.Status() != notification.Pending {
		return n, nil
	}

	if cmd.Cause() == nil {
		n.MarkDelivered(h.clock.now())
	} else {
		n.RecordFailure(cmd.Cause(), cmd.MaxAttempts(), h.clock.now())
	}

	if err = repo.Update(ctx, n); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return n, nil
}
