package interpreter

import (
	"errors"
	"fmt"
	"strings"

	"vendorbot/internal/core/application/usecases/commands"
	"vendorbot/internal/core/application/usecases/queries"
	"vendorbot/internal/core/domain/model/kernel"
	"vendorbot/internal/core/domain/model/menu"
	"vendorbot/internal/core/domain/model/order"
	"vendorbot/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const (
	exampleOrder      = "order 1kg surmai, 2kg bangda - Name: John, Contact: +919876543210, Notes: Clean and cut"
	genericFailure    = "⚠️ Something went wrong. Please try again later."
	notPermittedReply = "🚫 Sorry, this command is not permitted."
)

type helpEntry struct {
	command     string
	usage       string
	description string
}

// helpEntries is ordered for display; the required capability comes from the routes.
var helpEntries = []helpEntry{
	{MenuCommand, "menu [search]", "Show full menu or search items"},
	{OrderCommand, "order [items]", "Place an order (e.g. 1kg surmai, 2 prawns)"},
	{OrderStatusCommand, "order_status [order id]", "Check the state of your order"},
	{LocationCommand, "location", "Get shop address and hours"},
	{HelpCommand, "help", "Show this help message"},
	{UpdateMenuCommand, "update_menu [item] [price] [available|unavailable]", "Add an item or change its price and stock"},
	{OrderActionCommand, "order_action [order id] [accept|reject]", "Accept or reject a pending order"},
	{AssignDeliveryCommand, "assign_delivery [order id] [agent contact]", "Hand an accepted order to a delivery agent"},
	{MarkDeliveredCommand, "mark_delivered [order id]", "Close an order once it is delivered"},
	{ListOrdersCommand, "list_orders [state]", "List orders, optionally by state"},
}

func (i *Interpreter) money(amount decimal.Decimal) string {
	return kernel.FormatMoney(i.business.Currency, amount)
}

func (i *Interpreter) businessName() string {
	if i.business.Name == "" {
		return "our shop"
	}
	return i.business.Name
}

func (i *Interpreter) helpText(caps []Capability) string {
	var b strings.Builder
	b.WriteString("📋 Available commands:\n")
	vendorHeader := false
	for _, e := range helpEntries {
		required := i.routes[e.command].capability
		if !hasCapability(caps, required) {
			continue
		}
		if required == VendorCapability && !vendorHeader {
			b.WriteString("\n🔧 Vendor commands:\n")
			vendorHeader = true
		}
		fmt.Fprintf(&b, "/%s - %s\n", e.usage, e.description)
	}
	fmt.Fprintf(&b, "\nExample: /%s", exampleOrder)
	return b.String()
}

func unknownCommandText(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "🤔 I did not get a command."
	}
	return fmt.Sprintf("🤔 Unknown command %q.", name)
}

func (i *Interpreter) menuText(items []queries.MenuItemResponse, search string) string {
	if len(items) == 0 {
		if search != "" {
			return fmt.Sprintf("❌ No items found matching '%s'.", search)
		}
		return "The menu is empty right now."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🐟 %s menu:\n", i.businessName())
	for _, it := range items {
		status := "✅ Available"
		if !it.Available {
			status = "❌ Out of Stock"
		}
		fmt.Fprintf(&b, "- %s - %s/%s - %s\n", it.Name, i.money(it.Price), it.Unit, status)
	}
	fmt.Fprintf(&b, "\nUse /order to place an order. Example: /%s", exampleOrder)
	return b.String()
}

func (i *Interpreter) orderPlacedText(res commands.OrderResult) string {
	o := res.Order

	var b strings.Builder
	fmt.Fprintf(&b, "✅ Order #%d placed successfully with %s!\n", o.ID(), i.businessName())
	if o.CustomerName() != "" {
		fmt.Fprintf(&b, "Your details: %s (%s)\n", o.CustomerName(), o.CustomerContact())
	} else {
		fmt.Fprintf(&b, "Your contact: %s\n", o.CustomerContact())
	}
	for _, l := range o.Lines() {
		fmt.Fprintf(&b, "- %s: %s%s × %s = %s\n",
			l.Name(), kernel.FormatAmount(l.Quantity()), l.Unit(), i.money(l.UnitPrice()), i.money(l.Subtotal()))
	}
	fmt.Fprintf(&b, "Total: %s\n", i.money(o.Total()))

	instructions := o.SpecialInstructions()
	if instructions == "" {
		instructions = "None"
	}
	fmt.Fprintf(&b, "Instructions: %s\n", instructions)

	b.WriteString("\nNext steps:\n")
	b.WriteString("💰 Payment: Cash on delivery\n")
	b.WriteString("📞 You'll receive a confirmation once the order is accepted\n")
	b.WriteString("⏱️ Delivery within 2 hours")
	return b.String()
}

func (i *Interpreter) locationText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "📍 %s", i.businessName())
	if i.business.Address != "" {
		fmt.Fprintf(&b, "\nAddress: %s", i.business.Address)
	}
	if i.business.MapLink != "" {
		fmt.Fprintf(&b, "\nMap: %s", i.business.MapLink)
	}
	if i.business.Hours != "" {
		fmt.Fprintf(&b, "\nHours: %s", i.business.Hours)
	}
	return b.String()
}

func (i *Interpreter) menuUpdatedText(item *menu.Item) string {
	return fmt.Sprintf("✅ Menu updated: %s - %s/%s - %s",
		item.Name(), i.money(item.Price()), item.Unit(), item.Availability())
}

func transitionText(res commands.OrderResult) string {
	o := res.Order
	switch o.Status() {
	case order.Accepted:
		return fmt.Sprintf("✅ Order #%d accepted. The customer has been notified.", o.ID())
	case order.Rejected:
		return fmt.Sprintf("❌ Order #%d rejected. The customer has been notified.", o.ID())
	case order.Assigned:
		return fmt.Sprintf("🚚 Order #%d assigned to %s. The customer and the agent have been notified.",
			o.ID(), o.AgentContact())
	case order.Delivered:
		return fmt.Sprintf("📦 Order #%d marked as delivered.", o.ID())
	default:
		return fmt.Sprintf("Order #%d is now %s.", o.ID(), o.Status())
	}
}

func (i *Interpreter) orderStatusText(o queries.OrderResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🧾 Order #%d: %s\n", o.ID, o.State)
	for _, l := range o.Items {
		fmt.Fprintf(&b, "- %s: %s%s = %s\n", l.Name, kernel.FormatAmount(l.Quantity), l.Unit, i.money(l.Subtotal))
	}
	fmt.Fprintf(&b, "Total: %s", i.money(o.Total))
	if o.DeliveryAgentContact != "" {
		fmt.Fprintf(&b, "\nDelivery agent: %s", o.DeliveryAgentContact)
	}
	return b.String()
}

func (i *Interpreter) ordersText(orders []queries.OrderResponse, state string) string {
	if len(orders) == 0 {
		if state != "" {
			return fmt.Sprintf("No %s orders.", state)
		}
		return "No orders yet."
	}

	var b strings.Builder
	if state != "" {
		fmt.Fprintf(&b, "📋 %s orders (%d):", strings.ToUpper(state[:1])+state[1:], len(orders))
	} else {
		fmt.Fprintf(&b, "📋 Orders (%d):", len(orders))
	}
	for _, o := range orders {
		customer := o.CustomerContact
		if o.CustomerName != "" {
			customer = fmt.Sprintf("%s (%s)", o.CustomerName, o.CustomerContact)
		}
		fmt.Fprintf(&b, "\n#%d %s - %s - %s", o.ID, o.State, customer, i.money(o.Total))
	}
	return b.String()
}

// errorText renders a user-visible error. known is false for errors that are not one of
// the domain kinds; those get the generic reply and must be logged by the caller.
func errorText(err error) (string, bool) {
	if errors.Is(err, errs.ErrNotPermitted) {
		return notPermittedReply, true
	}

	leaves := flatten(err)
	lines := make([]string, 0, len(leaves))
	for _, e := range leaves {
		line, ok := leafText(e)
		if !ok {
			return genericFailure, false
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), true
}

func leafText(err error) (string, bool) {
	var (
		unknownErr    *errs.UnknownItemError
		unavailErr    *errs.UnavailableItemError
		notFoundErr   *errs.ObjectNotFoundError
		transitionErr *errs.InvalidTransitionError
	)

	switch {
	case errors.As(err, &unknownErr):
		return fmt.Sprintf("❌ '%s' not found in menu", unknownErr.Name), true
	case errors.As(err, &unavailErr):
		return fmt.Sprintf("❌ '%s' is out of stock", unavailErr.Name), true
	case errors.As(err, &notFoundErr):
		if notFoundErr.ParamName == "order" {
			return fmt.Sprintf("❌ Order #%v not found", notFoundErr.ID), true
		}
		return fmt.Sprintf("❌ %s %v not found", notFoundErr.ParamName, notFoundErr.ID), true
	case errors.As(err, &transitionErr):
		return fmt.Sprintf("⚠️ Cannot %s this order: it is %s", transitionErr.Action, transitionErr.Current), true
	case errs.IsValidation(err):
		return "❌ Invalid request: " + err.Error(), true
	default:
		return "", false
	}
}

// flatten expands errors.Join trees into their leaves.
func flatten(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []error
		for _, e := range joined.Unwrap() {
			out = append(out, flatten(e)...)
		}
		return out
	}
	return []error{err}
}
