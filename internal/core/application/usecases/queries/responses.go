// Package queries contains read-only operations. Handlers never open a transaction;
// they read committed state through the repositories.
package queries

import (
	"time"

	"vendorbot/internal/core/domain/model/menu"
	"vendorbot/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// MenuItemResponse is the read model of a catalog entry.
type MenuItemResponse struct {
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Unit      string          `json:"unit"`
	Available bool            `json:"available"`
}

func NewMenuItemResponse(item *menu.Item) MenuItemResponse {
	return MenuItemResponse{
		Name:      item.Name(),
		Price:     item.Price(),
		Unit:      item.Unit(),
		Available: item.IsAvailable(),
	}
}

// OrderLineResponse is one snapshotted order line.
type OrderLineResponse struct {
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"qty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Unit      string          `json:"unit"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// OrderResponse is the read model of an order.
type OrderResponse struct {
	ID                   int64               `json:"id"`
	State                string              `json:"state"`
	Items                []OrderLineResponse `json:"items"`
	Total                decimal.Decimal     `json:"total"`
	CustomerName         string              `json:"customer_name"`
	CustomerContact      string              `json:"customer_contact"`
	SpecialInstructions  string              `json:"special_instructions,omitempty"`
	DeliveryAgentContact string              `json:"delivery_agent_contact,omitempty"`
	CreatedAt            time.Time           `json:"created_at"`
	UpdatedAt            time.Time           `json:"updated_at"`
}

func NewOrderResponse(o *order.Order) OrderResponse {
	lines := o.Lines()
	items := make([]OrderLineResponse, 0, len(lines))
	for _, l := range lines {
		items = append(items, OrderLineResponse{
			Name:      l.Name(),
			Quantity:  l.Quantity(),
			UnitPrice: l.UnitPrice(),
			Unit:      l.Unit(),
			Subtotal:  l.Subtotal(),
		})
	}

	resp := OrderResponse{
		ID:                  o.ID(),
		State:               o.Status().String(),
		Items:               items,
		Total:               o.Total(),
		CustomerName:        o.CustomerName(),
		CustomerContact:     o.CustomerContact().String(),
		SpecialInstructions: o.SpecialInstructions(),
		CreatedAt:           o.CreatedAt(),
		UpdatedAt:           o.UpdatedAt(),
	}
	if agent := o.AgentContact(); agent != nil {
		resp.DeliveryAgentContact = agent.String()
	}
	return resp
}
