package order

import (
	"errors"
	"fmt"
	"strings"

	"vendorbot/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Line is one ordered item. It is a value snapshot of the menu entry at the time the
// order was placed: name, unit price and unit are copied, never looked up again.
type Line struct {
	name      string
	quantity  decimal.Decimal
	unitPrice decimal.Decimal
	unit      string
}

// NewLine validates a snapshot line. Quantity may be fractional (1.5 kg).
func NewLine(name string, quantity, unitPrice decimal.Decimal, unit string) (Line, error) {
	var errList []error

	name = strings.TrimSpace(name)
	if name == "" {
		errList = append(errList, errs.NewValueIsRequiredError("item name"))
	}
	if !quantity.IsPositive() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"qty", fmt.Errorf("%s is not greater than 0", quantity.String())))
	}
	if !unitPrice.IsPositive() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"price", fmt.Errorf("%s is not greater than 0", unitPrice.String())))
	}
	if err := errors.Join(errList...); err != nil {
		return Line{}, err
	}

	return Line{name: name, quantity: quantity, unitPrice: unitPrice, unit: unit}, nil
}

func (l Line) Name() string {
	return l.name
}

func (l Line) Quantity() decimal.Decimal {
	return l.quantity
}

func (l Line) UnitPrice() decimal.Decimal {
	return l.unitPrice
}

func (l Line) Unit() string {
	return l.unit
}

// Subtotal is quantity × unit price.
func (l Line) Subtotal() decimal.Decimal {
	return l.quantity.Mul(l.unitPrice)
}
