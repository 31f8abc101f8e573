// Package menurepo persists catalog entries with GORM. Items are keyed by their
// normalized name and keep the position they were first inserted at.
package menurepo

import (
	"time"

	"vendorbot/internal/core/domain/model/menu"

	"github.com/shopspring/decimal"
)

// MenuItemDTO is the "menu_items" row. Position is a serial column, so insertion order
// survives updates.
type MenuItemDTO struct {
	Key          string          `gorm:"column:lookup_key;primaryKey;size:100"`
	Position     int64           `gorm:"autoIncrement;not null;uniqueIndex"`
	Name         string          `gorm:"size:100;not null"`
	Price        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Unit         string          `gorm:"size:16;not null"`
	Availability int             `gorm:"not null"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime"`
}

func (MenuItemDTO) TableName() string {
	return "menu_items"
}

func fromDomain(item *menu.Item) MenuItemDTO {
	return MenuItemDTO{
		Key:          item.Key(),
		Name:         item.Name(),
		Price:        item.Price(),
		Unit:         item.Unit(),
		Availability: int(item.Availability()),
	}
}

func toDomain(dto MenuItemDTO) (*menu.Item, error) {
	return menu.NewItem(dto.Name, dto.Price, dto.Unit, menu.Availability(dto.Availability))
}
