package commands

import (
	"errors"
	"strings"

	"vendorbot/internal/core/domain/model/kernel"
	"vendorbot/internal/core/domain/model/menu"
	"vendorbot/internal/pkg/errs"
	"vendorbot/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrUpdateMenuItemCommandIsNotConstructed = errors.New(
	"UpdateMenuItemCommand must be created via NewUpdateMenuItemCommand constructor",
)

// UpdateMenuItemCommand creates a menu item or changes its price, unit and availability.
//
// Example:
//
//	cmd, err := NewUpdateMenuItemCommand("Surmai", decimal.NewFromInt(850), "", "available")
//	if err != nil {
//	    return err
//	}
//	item, err := handler.Handle(ctx, cmd)
type UpdateMenuItemCommand struct { //nolint:recvcheck //using for validation
	name         string
	price        decimal.Decimal
	unit         string
	availability menu.Availability

	guard guard.ConstructorGuard
}

// NewUpdateMenuItemCommand validates the raw inputs. status must be "available" or
// "unavailable"; an empty unit keeps menu.DefaultUnit for new items.
func NewUpdateMenuItemCommand(name string, price decimal.Decimal, unit, status string) (UpdateMenuItemCommand, error) {
	cmd := UpdateMenuItemCommand{guard: guard.NewConstructorGuard()}

	availability, statusErr := menu.ParseAvailability(status)

	if err := errors.Join(
		cmd.setName(name),
		cmd.setPrice(price),
		statusErr,
	); err != nil {
		return UpdateMenuItemCommand{}, err
	}

	cmd.unit = strings.TrimSpace(unit)
	cmd.availability = availability
	return cmd, nil
}

func (c UpdateMenuItemCommand) Validate() error {
	return c.guard.Validate(ErrUpdateMenuItemCommandIsNotConstructed)
}

func (c UpdateMenuItemCommand) Name() string {
	return c.name
}

func (c UpdateMenuItemCommand) Key() string {
	return menu.NormalizeName(c.name)
}

func (c UpdateMenuItemCommand) Price() decimal.Decimal {
	return c.price
}

// Unit is empty when the caller did not name one.
func (c UpdateMenuItemCommand) Unit() string {
	return c.unit
}

func (c UpdateMenuItemCommand) Availability() menu.Availability {
	return c.availability
}

func (c *UpdateMenuItemCommand) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("item_name")
	}
	c.name = name
	return nil
}

func (c *UpdateMenuItemCommand) setPrice(price decimal.Decimal) error {
	if err := kernel.CheckAmount("price", price, kernel.MaxPrice, kernel.PricePlaces); err != nil {
		return err
	}
	c.price = price
	return nil
}
