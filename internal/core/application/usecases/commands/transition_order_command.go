package commands

import (
	"errors"

	"vendorbot/internal/core/domain/model/kernel"
	"vendorbot/internal/core/domain/model/order"
	"vendorbot/internal/pkg/errs"
	"vendorbot/internal/pkg/guard"
)

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// TransitionOrderCommand applies a vendor action to an order.
// assign requires an agent contact; the other actions ignore it.
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      int64
	action       order.Action
	agentContact kernel.Contact

	guard guard.ConstructorGuard
}

func NewTransitionOrderCommand(orderID int64, action string, agentContact string) (TransitionOrderCommand, error) {
	cmd := TransitionOrderCommand{guard: guard.NewConstructorGuard()}

	var errList []error
	if orderID <= 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("order_id", orderID, 1, "unbounded"))
	}

	a, err := order.ParseAction(action)
	if err != nil {
		errList = append(errList, err)
	}

	if a == order.Assign {
		agent, agentErr := kernel.NewContact("agent_contact", agentContact)
		if agentErr != nil {
			errList = append(errList, agentErr)
		}
		cmd.agentContact = agent
	}

	if err = errors.Join(errList...); err != nil {
		return TransitionOrderCommand{}, err
	}

	cmd.orderID = orderID
	cmd.action = a
	return cmd, nil
}

func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

func (c TransitionOrderCommand) OrderID() int64 {
	return c.orderID
}

func (c TransitionOrderCommand) Action() order.Action {
	return c.action
}

// AgentContact is zero unless the action is assign.
func (c TransitionOrderCommand) AgentContact() kernel.Contact {
	return c.agentContact
}
