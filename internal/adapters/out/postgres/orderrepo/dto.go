// Package orderrepo maps the order aggregate to the "orders" and "order_lines" tables.
// Lines are a child table written once with the order; only the order row is updated
// by transitions.
package orderrepo

import (
	"time"

	"vendorbot/internal/core/domain/model/kernel"
	"vendorbot/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// OrderIDSequence allocates order ids outside of any transaction, so a rolled back
// order never frees its id for reuse.
const OrderIDSequence = "order_id_seq"

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID                  int64          `gorm:"primaryKey;autoIncrement:false"`
	CustomerName        string         `gorm:"size:100"`
	CustomerContact     string         `gorm:"size:64;not null;index"`
	SpecialInstructions string         `gorm:"size:500"`
	Status              int            `gorm:"not null;index"`
	AgentContact        *string        `gorm:"size:64"`
	CreatedAt           time.Time      `gorm:"autoCreateTime:false;not null"`
	UpdatedAt           time.Time      `gorm:"autoUpdateTime:false;not null"`
	Lines               []OrderLineDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderLineDTO is one snapshotted line. Position keeps the order the customer listed.
type OrderLineDTO struct {
	ID        uint            `gorm:"primaryKey"`
	OrderID   int64           `gorm:"not null;uniqueIndex:idx_order_line_position"`
	Position  int             `gorm:"not null;uniqueIndex:idx_order_line_position"`
	Name      string          `gorm:"size:100;not null"`
	Quantity  decimal.Decimal `gorm:"type:numeric(12,3);not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Unit      string          `gorm:"size:16;not null"`
}

func (OrderLineDTO) TableName() string {
	return "order_lines"
}

func fromDomain(o *order.Order) OrderDTO {
	var agent *string
	if a := o.AgentContact(); a != nil {
		s := a.String()
		agent = &s
	}

	lines := o.Lines()
	lineDTOs := make([]OrderLineDTO, 0, len(lines))
	for i, l := range lines {
		lineDTOs = append(lineDTOs, OrderLineDTO{
			OrderID:   o.ID(),
			Position:  i,
			Name:      l.Name(),
			Quantity:  l.Quantity(),
			UnitPrice: l.UnitPrice(),
			Unit:      l.Unit(),
		})
	}

	return OrderDTO{
		ID:                  o.ID(),
		CustomerName:        o.CustomerName(),
		CustomerContact:     o.CustomerContact().String(),
		SpecialInstructions: o.SpecialInstructions(),
		Status:              int(o.Status()),
		AgentContact:        agent,
		CreatedAt:           o.CreatedAt(),
		UpdatedAt:           o.UpdatedAt(),
		Lines:               lineDTOs,
	}
}

// toDomain expects Lines preloaded in position order.
func toDomain(dto OrderDTO) (*order.Order, error) {
	lines := make([]order.Line, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		line, err := order.NewLine(l.Name, l.Quantity, l.UnitPrice, l.Unit)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	customer, err := kernel.NewContact("customer_contact", dto.CustomerContact)
	if err != nil {
		return nil, err
	}

	var agent *kernel.Contact
	if dto.AgentContact != nil {
		a, agentErr := kernel.NewContact("agent_contact", *dto.AgentContact)
		if agentErr != nil {
			return nil, agentErr
		}
		agent = &a
	}

	return order.RestoreOrder(
		dto.ID,
		lines,
		dto.CustomerName,
		customer,
		dto.SpecialInstructions,
		order.Status(dto.Status),
		agent,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
