package services

import (
	"errors"

	"vendorbot/internal/core/domain/model/menu"
	"vendorbot/internal/core/domain/model/order"
	"vendorbot/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// RequestedLine is one entry of an incoming order before it is checked against the menu.
type RequestedLine struct {
	Name     string
	Quantity decimal.Decimal
}

// OrderPlacement turns requested lines into order line snapshots.
type OrderPlacement struct{}

func NewOrderPlacement() OrderPlacement {
	return OrderPlacement{}
}

// BuildLines resolves each requested name in catalog (keyed by menu.NormalizeName).
//
// Every problem is reported, joined: UnknownItemError for names not on the menu,
// UnavailableItemError for items switched off, validation errors for bad quantities.
// Repeated names are merged into the first line with the quantities summed.
func (OrderPlacement) BuildLines(requested []RequestedLine, catalog map[string]*menu.Item) ([]order.Line, error) {
	if len(requested) == 0 {
		return nil, errs.NewValueIsRequiredError("items")
	}

	var (
		errList  []error
		keys     []string
		quantity = make(map[string]decimal.Decimal, len(requested))
	)

	for _, r := range requested {
		key := menu.NormalizeName(r.Name)
		if key == "" {
			errList = append(errList, errs.NewValueIsRequiredError("item name"))
			continue
		}

		item, ok := catalog[key]
		if !ok || item == nil {
			errList = append(errList, errs.NewUnknownItemError(r.Name))
			continue
		}
		if !item.IsAvailable() {
			errList = append(errList, errs.NewUnavailableItemError(item.Name()))
			continue
		}
		if !r.Quantity.IsPositive() {
			errList = append(errList, errs.NewValueIsOutOfRangeError("qty", r.Quantity.String(), "greater than 0", "unbounded"))
			continue
		}

		if _, seen := quantity[key]; !seen {
			keys = append(keys, key)
		}
		quantity[key] = quantity[key].Add(r.Quantity)
	}

	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	lines := make([]order.Line, 0, len(keys))
	for _, key := range keys {
		item := catalog[key]
		line, err := order.NewLine(item.Name(), quantity[key], item.Price(), item.Unit())
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}
