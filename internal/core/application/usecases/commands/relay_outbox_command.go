package commands

import (
	"errors"
	"time"

	"vendorbot/internal/pkg/errs"
	"vendorbot/internal/pkg/guard"
)

var ErrRelayOutboxCommandIsNotConstructed = errors.New(
	"RelayOutboxCommand must be created via NewRelayOutboxCommand constructor",
)

// RelayOutboxCommand retries pending notifications untouched for at least grace.
// grace keeps the relay from racing the dispatcher's first attempt.
type RelayOutboxCommand struct {
	grace       time.Duration
	maxAttempts int
	batchSize   int

	guard guard.ConstructorGuard
}

func NewRelayOutboxCommand(grace time.Duration, maxAttempts, batchSize int) (RelayOutboxCommand, error) {
	var errList []error
	if grace < 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("grace", grace, 0, "unbounded"))
	}
	if maxAttempts < 1 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("max attempts", maxAttempts, 1, "unbounded"))
	}
	if batchSize < 1 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("batch size", batchSize, 1, "unbounded"))
	}
	if err := errors.Join(errList...); err != nil {
		return RelayOutboxCommand{}, err
	}

	return RelayOutboxCommand{
		grace:       grace,
		maxAttempts: maxAttempts,
		batchSize:   batchSize,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c RelayOutboxCommand) Validate() error {
	return c.guard.Validate(ErrRelayOutboxCommandIsNotConstructed)
}

func (c RelayOutboxCommand) Grace() time.Duration {
	return c.grace
}

func (c RelayOutboxCommand) MaxAttempts() int {
	return c.maxAttempts
}

func (c RelayOutboxCommand) BatchSize() int {
	return c.batchSize
}
