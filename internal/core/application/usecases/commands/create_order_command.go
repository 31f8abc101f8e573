package commands

import (
	"errors"
	"fmt"
	"strings"

	"vendorbot/internal/core/domain/model/kernel"
	"vendorbot/internal/core/domain/services"
	"vendorbot/internal/pkg/errs"
	"vendorbot/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

const maxSpecialInstructionsLength = 500

// CreateOrderCommand places a customer order. Menu lookups happen in the handler;
// the command only checks the request shape.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(
//	    []services.RequestedLine{{Name: "surmai", Quantity: decimal.NewFromInt(1)}},
//	    "John", "+919876543210", "Clean and cut",
//	)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	lines               []services.RequestedLine
	customerName        string
	customerContact     kernel.Contact
	specialInstructions string

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(
	lines []services.RequestedLine,
	customerName string,
	customerContact string,
	specialInstructions string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		customerName: strings.TrimSpace(customerName),
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setLines(lines),
		cmd.setCustomerContact(customerContact),
		cmd.setSpecialInstructions(specialInstructions),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// Lines returns a copy of the requested lines.
func (c CreateOrderCommand) Lines() []services.RequestedLine {
	lines := make([]services.RequestedLine, len(c.lines))
	copy(lines, c.lines)
	return lines
}

func (c CreateOrderCommand) CustomerName() string {
	return c.customerName
}

func (c CreateOrderCommand) CustomerContact() kernel.Contact {
	return c.customerContact
}

func (c CreateOrderCommand) SpecialInstructions() string {
	return c.specialInstructions
}

func (c *CreateOrderCommand) setLines(lines []services.RequestedLine) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	var errList []error
	for i, l := range lines {
		if strings.TrimSpace(l.Name) == "" {
			errList = append(errList, errs.NewValueIsRequiredErrorWithCause("items", fmt.Errorf("item %d has no name", i+1)))
		}
		if err := kernel.CheckAmount("qty", l.Quantity, kernel.MaxQuantity, kernel.QuantityPlaces); err != nil {
			errList = append(errList, err)
		}
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	c.lines = make([]services.RequestedLine, len(lines))
	copy(c.lines, lines)
	return nil
}

func (c *CreateOrderCommand) setCustomerContact(raw string) error {
	contact, err := kernel.NewContact("customer_contact", raw)
	if err != nil {
		return err
	}
	c.customerContact = contact
	return nil
}

func (c *CreateOrderCommand) setSpecialInstructions(s string) error {
	s = strings.TrimSpace(s)
	if len(s) > maxSpecialInstructionsLength {
		return errs.NewValueIsOutOfRangeError("special_instructions", len(s), 0, maxSpecialInstructionsLength)
	}
	c.specialInstructions = s
	return nil
}
