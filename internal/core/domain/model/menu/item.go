package menu

import (
	"errors"
	"strings"

	"vendorbot/internal/core/domain/model/kernel"
	"vendorbot/internal/pkg/errs"
	"vendorbot/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// DefaultUnit is used when the vendor does not name a pricing unit.
const DefaultUnit = "kg"

const maxUnitLength = 16

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is a single catalog entry.
//
// Invariants:
//   - name is non-blank; Key() is its trimmed, lower-cased form
//   - price is strictly positive
//   - unit is non-blank (DefaultUnit when omitted)
//   - availability is Available or Unavailable
type Item struct {
	name         string
	price        decimal.Decimal
	unit         string
	availability Availability

	guard guard.ConstructorGuard
}

// NewItem validates every field and returns a constructed Item.
// All field errors are reported together.
func NewItem(name string, price decimal.Decimal, unit string, availability Availability) (*Item, error) {
	item := &Item{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		item.setName(name),
		item.setPrice(price),
		item.setUnit(unit),
		item.setAvailability(availability),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// NormalizeName returns the lookup key for an item name.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (i *Item) Validate() error {
	if i == nil {
		return ErrItemIsNotConstructed
	}
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i *Item) Name() string {
	return i.name
}

func (i *Item) Key() string {
	return NormalizeName(i.name)
}

func (i *Item) Price() decimal.Decimal {
	return i.price
}

func (i *Item) Unit() string {
	return i.unit
}

func (i *Item) Availability() Availability {
	return i.availability
}

func (i *Item) IsAvailable() bool {
	return i.availability == Available
}

// Update replaces price, unit and availability. The display name is kept: a later
// update with different casing refers to the same item. Nothing changes on error.
func (i *Item) Update(price decimal.Decimal, unit string, availability Availability) error {
	next := *i
	if err := errors.Join(
		next.setPrice(price),
		next.setUnit(unit),
		next.setAvailability(availability),
	); err != nil {
		return err
	}

	*i = next
	return nil
}

// Equal reports whether both items hold the same stored state.
func (i *Item) Equal(other *Item) bool {
	return other != nil &&
		i.name == other.name &&
		i.price.Equal(other.price) &&
		i.unit == other.unit &&
		i.availability == other.availability
}

func (i *Item) setName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return errs.NewValueIsRequiredError("item_name")
	}
	i.name = trimmed
	return nil
}

func (i *Item) setPrice(price decimal.Decimal) error {
	if err := kernel.CheckAmount("price", price, kernel.MaxPrice, kernel.PricePlaces); err != nil {
		return err
	}
	i.price = price
	return nil
}

func (i *Item) setUnit(unit string) error {
	trimmed := strings.TrimSpace(unit)
	if trimmed == "" {
		trimmed = DefaultUnit
	}
	if len(trimmed) > maxUnitLength {
		return errs.NewValueIsOutOfRangeError("unit", len(trimmed), 1, maxUnitLength)
	}
	i.unit = trimmed
	return nil
}

func (i *Item) setAvailability(availability Availability) error {
	if err := availability.Validate(); err != nil {
		return err
	}
	i.availability = availability
	return nil
}
