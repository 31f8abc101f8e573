package cmd

import (
	"context"
	"fmt"

	"vendorbot/internal/core/application/usecases/commands"
	"vendorbot/internal/core/domain/model/menu"

	"github.com/shopspring/decimal"
)

type seedItem struct {
	name      string
	price     int64
	available bool
}

// seedCatalog is the shop's opening catalog, in display order.
func seedCatalog() []seedItem {
	return []seedItem{
		{"Seer Fish (Surmai)", 800, true},
		{"Pomfret (White)", 650, true},
		{"Pomfret (Black)", 550, true},
		{"Sardines (Tarle)", 200, true},
		{"Mackerel (Bangda)", 300, true},
		{"Kingfish (Viswon)", 700, false},
		{"Silver Fish (Kane)", 400, true},
		{"Pearl Spot (Karimeen)", 900, true},
		{"Tiger Prawns", 1200, true},
		{"White Prawns", 1000, true},
		{"Crabs (Medium)", 600, true},
		{"Squid", 500, false},
		{"Mussels", 250, true},
		{"Clams", 300, true},
	}
}

// SeedMenu writes the opening catalog through the regular menu update path, so
// re-seeding an existing catalog only resets prices and availability.
func (c *CompositionRoot) SeedMenu(ctx context.Context) error {
	handler := c.CreateUpdateMenuItemCommandHandler()

	for _, item := range seedCatalog() {
		status := menu.Available.String()
		if !item.available {
			status = menu.Unavailable.String()
		}

		cmd, err := commands.NewUpdateMenuItemCommand(item.name, decimal.NewFromInt(item.price), menu.DefaultUnit, status)
		if err != nil {
			return fmt.Errorf("seed %s: %w", item.name, err)
		}
		if _, err = handler.Handle(ctx, cmd); err != nil {
			return fmt.Errorf("seed %s: %w", item.name, err)
		}
	}

	c.logger.InfoContext(ctx, "Menu seeded", "items", len(seedCatalog()))
	return nil
}
