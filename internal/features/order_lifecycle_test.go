package features

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"testing"

	"vendorbot/internal/adapters/out/memory"
	"vendorbot/internal/core/application/interpreter"
	"vendorbot/internal/core/application/usecases/commands"
	"vendorbot/internal/core/application/usecases/queries"
	"vendorbot/internal/core/domain/model/kernel"
	"vendorbot/internal/core/domain/services"
	"vendorbot/internal/core/ports"
	"vendorbot/internal/pkg/errs"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"
)

var errorKinds = map[string]error{
	"invalid transition": errs.ErrInvalidTransition,
	"not found":          errs.ErrObjectNotFound,
	"unavailable item":   errs.ErrUnavailableItem,
	"unknown item":       errs.ErrUnknownItem,
	"not permitted":      errs.ErrNotPermitted,
}

type lifecycleContext struct {
	uowFactory ports.UnitOfWorkFactory

	updateMenu  commands.UpdateMenuItemCommandHandler
	createOrder commands.CreateOrderCommandHandler
	transition  commands.TransitionOrderCommandHandler
	getOrder    queries.GetOrderQueryHandler
	getMenu     queries.GetMenuQueryHandler
	interpreter *interpreter.Interpreter

	result commands.OrderResult
	reply  interpreter.Reply
	err    error
}

type orderUoWFactory func() commands.OrderUoW

func (f orderUoWFactory) Create() commands.OrderUoW { return f() }

type menuUoWFactory func() commands.MenuUoW

func (f menuUoWFactory) Create() commands.MenuUoW { return f() }

func (c *lifecycleContext) theVendorIs(contact string) error {
	vendor, err := kernel.NewContact("vendor", contact)
	if err != nil {
		return err
	}

	c.uowFactory = memory.NewUnitOfWorkFactory(memory.NewStore())
	orders := orderUoWFactory(func() commands.OrderUoW { return c.uowFactory.Create() })
	menus := menuUoWFactory(func() commands.MenuUoW { return c.uowFactory.Create() })
	lifecycle := services.NewOrderLifecycle(vendor, "Manglore FishMonger", kernel.DefaultCurrencySymbol)

	c.updateMenu = commands.NewUpdateMenuItemCommandHandler(menus)
	c.createOrder = commands.NewCreateOrderCommandHandler(orders, lifecycle, nil)
	c.transition = commands.NewTransitionOrderCommandHandler(orders, lifecycle, nil)
	c.getOrder = queries.NewGetOrderQueryHandler(c.uowFactory.Create().OrderRepository())
	c.getMenu = queries.NewGetMenuQueryHandler(c.uowFactory.Create().MenuRepository())

	c.interpreter = interpreter.New(
		interpreter.Handlers{
			UpdateMenuItem:  &c.updateMenu,
			CreateOrder:     &c.createOrder,
			TransitionOrder: &c.transition,
			GetMenu:         c.getMenu,
			GetOrder:        c.getOrder,
			ListOrders:      queries.NewListOrdersQueryHandler(c.uowFactory.Create().OrderRepository()),
		},
		interpreter.NewVendorAuthorizer(vendor),
		interpreter.Business{Name: "Manglore FishMonger"},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	return nil
}

func (c *lifecycleContext) theMenu(table *godog.Table) error {
	for _, row := range table.Rows[1:] {
		price, err := strconv.ParseInt(row.Cells[1].Value, 10, 64)
		if err != nil {
			return err
		}
		if err = c.setItem(row.Cells[0].Value, price, "kg", row.Cells[2].Value); err != nil {
			return err
		}
	}
	return nil
}

func (c *lifecycleContext) setItem(name string, price int64, unit, status string) error {
	cmd, err := commands.NewUpdateMenuItemCommand(name, decimal.NewFromInt(price), unit, status)
	if err != nil {
		return err
	}
	_, err = c.updateMenu.Handle(context.Background(), cmd)
	return err
}

func (c *lifecycleContext) theVendorSetsItem(name string, price int, unit, status string) error {
	return c.setItem(name, int64(price), unit, status)
}

func (c *lifecycleContext) customerOrders(name, contact string, table *godog.Table) error {
	lines := make([]services.RequestedLine, 0, len(table.Rows)-1)
	for _, row := range table.Rows[1:] {
		qty, err := decimal.NewFromString(row.Cells[1].Value)
		if err != nil {
			return err
		}
		lines = append(lines, services.RequestedLine{Name: row.Cells[0].Value, Quantity: qty})
	}

	cmd, err := commands.NewCreateOrderCommand(lines, name, contact, "")
	if err != nil {
		return err
	}
	c.result, c.err = c.createOrder.Handle(context.Background(), cmd)
	return nil
}

func (c *lifecycleContext) theVendorApplies(action string, orderID int) error {
	return c.transitionOrder(int64(orderID), action, "")
}

func (c *lifecycleContext) theVendorAssigns(orderID int, agent string) error {
	return c.transitionOrder(int64(orderID), "assign", agent)
}

func (c *lifecycleContext) transitionOrder(orderID int64, action, agent string) error {
	cmd, err := commands.NewTransitionOrderCommand(orderID, action, agent)
	if err != nil {
		return err
	}
	c.result, c.err = c.transition.Handle(context.Background(), cmd)
	return nil
}

func (c *lifecycleContext) callerSends(caller, command string, payload *godog.DocString) error {
	result := c.interpreter.Execute(context.Background(), interpreter.Envelope{
		Caller:  caller,
		Command: interpreter.Command{Name: command, Payload: json.RawMessage(payload.Content)},
	})
	c.reply = result.Reply
	return nil
}

func (c *lifecycleContext) loadOrder(orderID int) (queries.OrderResponse, error) {
	query, err := queries.NewGetOrderQuery(int64(orderID))
	if err != nil {
		return queries.OrderResponse{}, err
	}
	return c.getOrder.Handle(context.Background(), query)
}

func (c *lifecycleContext) orderIs(orderID int, state string) error {
	o, err := c.loadOrder(orderID)
	if err != nil {
		return err
	}
	if o.State != state {
		return fmt.Errorf("expected order %d to be %q, got %q", orderID, state, o.State)
	}
	return nil
}

func (c *lifecycleContext) orderTotals(orderID, total int) error {
	o, err := c.loadOrder(orderID)
	if err != nil {
		return err
	}
	if !o.Total.Equal(decimal.NewFromInt(int64(total))) {
		return fmt.Errorf("expected total %d, got %s", total, o.Total)
	}
	return nil
}

func (c *lifecycleContext) orderHasNoAgent(orderID int) error {
	o, err := c.loadOrder(orderID)
	if err != nil {
		return err
	}
	if o.DeliveryAgentContact != "" {
		return fmt.Errorf("expected no delivery agent, got %q", o.DeliveryAgentContact)
	}
	return nil
}

func (c *lifecycleContext) orderHasAgent(orderID int, agent string) error {
	o, err := c.loadOrder(orderID)
	if err != nil {
		return err
	}
	if o.DeliveryAgentContact != agent {
		return fmt.Errorf("expected delivery agent %q, got %q", agent, o.DeliveryAgentContact)
	}
	return nil
}

func (c *lifecycleContext) theCommandFailsWith(kind string) error {
	target, ok := errorKinds[kind]
	if !ok {
		return fmt.Errorf("unknown error kind %q", kind)
	}
	if !errors.Is(c.err, target) {
		return fmt.Errorf("expected %s error, got %v", kind, c.err)
	}
	return nil
}

func (c *lifecycleContext) notificationsAreSentTo(table *godog.Table) error {
	if c.err != nil {
		return fmt.Errorf("last command failed: %w", c.err)
	}

	want := make([]string, 0, len(table.Rows)-1)
	for _, row := range table.Rows[1:] {
		want = append(want, row.Cells[0].Value)
	}

	got := make([]string, 0, len(c.result.Notifications))
	for _, n := range c.result.Notifications {
		got = append(got, n.Recipient().String())
	}

	if fmt.Sprint(want) != fmt.Sprint(got) {
		return fmt.Errorf("expected notifications to %v, got %v", want, got)
	}
	return nil
}

func (c *lifecycleContext) theMenuListsItem(name string, price int, unit string) error {
	items, err := c.getMenu.Handle(context.Background(), queries.NewGetMenuQuery(name))
	if err != nil {
		return err
	}
	if len(items) != 1 {
		return fmt.Errorf("expected one item matching %q, got %d", name, len(items))
	}
	if !items[0].Price.Equal(decimal.NewFromInt(int64(price))) || items[0].Unit != unit {
		return fmt.Errorf("expected %s at %d/%s, got %s/%s", name, price, unit, items[0].Price, items[0].Unit)
	}
	return nil
}

func (c *lifecycleContext) theMenuHasItems(count int) error {
	items, err := c.getMenu.Handle(context.Background(), queries.NewGetMenuQuery(""))
	if err != nil {
		return err
	}
	if len(items) != count {
		return fmt.Errorf("expected %d menu items, got %d", count, len(items))
	}
	return nil
}

func (c *lifecycleContext) theReplyIs(text string) error {
	if c.reply.Text != text {
		return fmt.Errorf("expected reply %q, got %q", text, c.reply.Text)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &lifecycleContext{}

	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		*tc = lifecycleContext{}
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^the vendor is "([^"]*)"$`, tc.theVendorIs)
	ctx.Step(`^the menu:$`, tc.theMenu)

	// When steps
	ctx.Step(`^"([^"]*)" with contact "([^"]*)" orders:$`, tc.customerOrders)
	ctx.Step(`^the vendor applies "([^"]*)" to order (\d+)$`, tc.theVendorApplies)
	ctx.Step(`^the vendor assigns order (\d+) to "([^"]*)"$`, tc.theVendorAssigns)
	ctx.Step(`^the vendor sets "([^"]*)" to (\d+) per "([^"]*)" as "([^"]*)"$`, tc.theVendorSetsItem)
	ctx.Step(`^"([^"]*)" sends "([^"]*)" with:$`, tc.callerSends)

	// Then steps
	ctx.Step(`^order (\d+) is "([^"]*)"$`, tc.orderIs)
	ctx.Step(`^order (\d+) totals (\d+)$`, tc.orderTotals)
	ctx.Step(`^order (\d+) has no delivery agent$`, tc.orderHasNoAgent)
	ctx.Step(`^order (\d+) has delivery agent "([^"]*)"$`, tc.orderHasAgent)
	ctx.Step(`^the command fails with "([^"]*)"$`, tc.theCommandFailsWith)
	ctx.Step(`^notifications are sent to:$`, tc.notificationsAreSentTo)
	ctx.Step(`^the menu lists "([^"]*)" at (\d+) per "([^"]*)"$`, tc.theMenuListsItem)
	ctx.Step(`^the menu has (\d+) items$`, tc.theMenuHasItems)
	ctx.Step(`^the reply is "([^"]*)"$`, tc.theReplyIs)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"order_lifecycle.feature"},
			Strict:   true,
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
