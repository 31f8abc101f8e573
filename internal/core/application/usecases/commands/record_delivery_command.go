package commands

import (
	"errors"

	"vendorbot/internal/core/domain/model/kernel"
	"vendorbot/internal/pkg/errs"
	"vendorbot/internal/pkg/guard"
)

var ErrRecordDeliveryCommandIsNotConstructed = errors.New(
	"RecordDeliveryCommand must be created via NewRecordDeliveryCommand constructor",
)

// RecordDeliveryCommand stores the outcome of one send attempt. A nil cause means the
// transport accepted the message.
type RecordDeliveryCommand struct { //nolint:recvcheck //using for validation
	notificationID kernel.UUID
	cause          error
	maxAttempts    int

	guard guard.ConstructorGuard
}

func NewRecordDeliveryCommand(notificationID kernel.UUID, cause error, maxAttempts int) (RecordDeliveryCommand, error) {
	if err := notificationID.Validate(); err != nil {
		return RecordDeliveryCommand{}, err
	}
	if maxAttempts < 1 {
		return RecordDeliveryCommand{}, errs.NewValueIsOutOfRangeError("max attempts", maxAttempts, 1, "unbounded")
	}

	return RecordDeliveryCommand{
		notificationID: notificationID,
		cause:          cause,
		maxAttempts:    maxAttempts,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c RecordDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrRecordDeliveryCommandIsNotConstructed)
}

func (c RecordDeliveryCommand) NotificationID() kernel.UUID {
	return c.notificationID
}

func (c RecordDeliveryCommand) Cause() error {
	return c.cause
}

func (c RecordDeliveryCommand) MaxAttempts() int {
	return c.maxAttempts
}
