package services

import (
	"fmt"
	"strings"
	"time"

	"vendorbot/internal/core/domain/model/kernel"
	"vendorbot/internal/core/domain/model/notification"
	"vendorbot/internal/core/domain/model/order"
)

// OrderLifecycle applies vendor actions and describes who must hear about them.
//
// Notifications per transition:
//   - accept, reject, deliver: the customer
//   - assign: the customer and the delivery agent
//
// A newly placed order notifies the vendor.
type OrderLifecycle struct {
	vendor       kernel.Contact
	businessName string
	currency     string
}

func NewOrderLifecycle(vendor kernel.Contact, businessName, currency string) OrderLifecycle {
	if currency == "" {
		currency = kernel.DefaultCurrencySymbol
	}
	return OrderLifecycle{vendor: vendor, businessName: businessName, currency: currency}
}

// Placed returns the vendor's new-order notification. No vendor contact means no notification.
func (l OrderLifecycle) Placed(o *order.Order, now time.Time) ([]*notification.Notification, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if l.vendor.IsZero() {
		return nil, nil
	}

	n, err := notification.NewNotification(o.ID(), notification.OrderPlaced, l.vendor, l.placedText(o), now)
	if err != nil {
		return nil, err
	}
	return []*notification.Notification{n}, nil
}

// Apply runs action on o and returns the notifications the transition owes. On error the
// order is unchanged and nothing is returned.
func (l OrderLifecycle) Apply(
	o *order.Order,
	action order.Action,
	agent kernel.Contact,
	now time.Time,
) ([]*notification.Notification, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := o.Apply(action, agent, now); err != nil {
		return nil, err
	}

	customer := o.CustomerContact()
	id := o.ID()

	var drafts []draft
	switch o.Status() {
	case order.Accepted:
		drafts = append(drafts, draft{notification.OrderAccepted, customer,
			fmt.Sprintf("✅ Your order #%d is confirmed and being processed.", id)})
	case order.Rejected:
		drafts = append(drafts, draft{notification.OrderRejected, customer,
			fmt.Sprintf("❌ Unfortunately, your order #%d could not be completed.", id)})
	case order.Assigned:
		drafts = append(drafts,
			draft{notification.DeliveryAssigned, customer,
				fmt.Sprintf("🚚 Your order #%d is out for delivery. Delivery agent: %s", id, agent)},
			draft{notification.DeliveryAssigned, agent, l.pickupText(o)},
		)
	case order.Delivered:
		drafts = append(drafts, draft{notification.OrderDelivered, customer,
			fmt.Sprintf("📦 Your order #%d has been delivered. Thank you for shopping with %s!", id, l.name())})
	}

	notifications := make([]*notification.Notification, 0, len(drafts))
	for _, d := range drafts {
		n, err := notification.NewNotification(id, d.kind, d.recipient, d.text, now)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, nil
}

type draft struct {
	kind      notification.Kind
	recipient kernel.Contact
	text      string
}

func (l OrderLifecycle) name() string {
	if l.businessName == "" {
		return "us"
	}
	return l.businessName
}

func (l OrderLifecycle) placedText(o *order.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🛒 New order #%d from %s (%s)\n", o.ID(), customerLabel(o), o.CustomerContact())
	for _, line := range o.Lines() {
		fmt.Fprintf(&b, "- %s: %s%s\n", line.Name(), kernel.FormatAmount(line.Quantity()), line.Unit())
	}
	fmt.Fprintf(&b, "Total: %s\n", kernel.FormatMoney(l.currency, o.Total()))
	if o.SpecialInstructions() != "" {
		fmt.Fprintf(&b, "Instructions: %s\n", o.SpecialInstructions())
	}
	b.WriteString("Reply accept or reject.")
	return b.String()
}

func (l OrderLifecycle) pickupText(o *order.Order) string {
	text := fmt.Sprintf("Please pick up order #%d from %s and deliver to %s (%s). Collect %s cash on delivery.",
		o.ID(), l.name(), customerLabel(o), o.CustomerContact(), kernel.FormatMoney(l.currency, o.Total()))
	if o.SpecialInstructions() != "" {
		text += " Notes: " + o.SpecialInstructions()
	}
	return text
}

func customerLabel(o *order.Order) string {
	if o.CustomerName() == "" {
		return "customer"
	}
	return o.CustomerName()
}
