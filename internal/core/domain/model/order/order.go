package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"vendorbot/internal/core/domain/model/kernel"
	"vendorbot/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("order must be created via NewOrder constructor")
)

const maxInstructionsLength = 500

// Order is the aggregate root of a customer order. It owns its line snapshots and
// moves through the lifecycle described on Status.
//
// Order follows these invariants:
//   - Has a positive sequential identifier
//   - Has at least one line
//   - Has a non-empty customer contact
//   - Has a delivery agent exactly when the status is Assigned or Delivered
//   - updatedAt is never before createdAt
type Order struct {
	id                  int64
	lines               []Line
	customerName        string
	customerContact     kernel.Contact
	specialInstructions string
	status              Status
	agentContact        *kernel.Contact
	createdAt           time.Time
	updatedAt           time.Time

	isConstructed bool
}

// NewOrder creates a Pending order. The identifier must already be allocated by the
// repository; lines are copied.
func NewOrder(
	id int64,
	lines []Line,
	customerName string,
	customerContact kernel.Contact,
	specialInstructions string,
	now time.Time,
) (*Order, error) {
	o := &Order{
		customerName:  strings.TrimSpace(customerName),
		status:        Pending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setLines(lines),
		o.setCustomerContact(customerContact),
		o.setSpecialInstructions(specialInstructions),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order from storage. It runs the same checks as NewOrder plus
// the status and agent invariants, so corrupt rows are reported instead of loaded.
func RestoreOrder(
	id int64,
	lines []Line,
	customerName string,
	customerContact kernel.Contact,
	specialInstructions string,
	status Status,
	agentContact *kernel.Contact,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	o, err := NewOrder(id, lines, customerName, customerContact, specialInstructions, createdAt)
	if err != nil {
		return nil, err
	}

	if err := status.Validate(); err != nil {
		return nil, err
	}
	if err := status.ValidateCanHaveAgent(agentContact != nil && !agentContact.IsZero()); err != nil {
		return nil, err
	}
	if updatedAt.Before(createdAt) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"updated_at", fmt.Errorf("%s is before created_at", updatedAt.Format(time.RFC3339)))
	}

	o.status = status
	if status == Assigned || status == Delivered {
		agent := *agentContact
		o.agentContact = &agent
	}
	o.updatedAt = updatedAt
	return o, nil
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() int64 {
	return o.id
}

// Lines returns a copy of the order lines.
func (o *Order) Lines() []Line {
	lines := make([]Line, len(o.lines))
	copy(lines, o.lines)
	return lines
}

func (o *Order) CustomerName() string {
	return o.customerName
}

func (o *Order) CustomerContact() kernel.Contact {
	return o.customerContact
}

func (o *Order) SpecialInstructions() string {
	return o.specialInstructions
}

func (o *Order) Status() Status {
	return o.status
}

// AgentContact returns the delivery agent, nil until the order is assigned.
func (o *Order) AgentContact() *kernel.Contact {
	if o.agentContact == nil {
		return nil
	}
	agent := *o.agentContact
	return &agent
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Total is the sum of the line subtotals.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range o.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Accept moves a pending order to Accepted.
func (o *Order) Accept(now time.Time) error {
	return o.transition(Accept, now)
}

// Reject moves a pending order to Rejected.
func (o *Order) Reject(now time.Time) error {
	return o.transition(Reject, now)
}

// Assign hands an accepted order to a delivery agent. The agent is checked before the
// transition table, so a missing agent is a validation error in any state.
func (o *Order) Assign(agent kernel.Contact, now time.Time) error {
	if agent.IsZero() {
		return errs.NewValueIsRequiredError("agent_contact")
	}

	if err := o.transition(Assign, now); err != nil {
		return err
	}

	o.agentContact = &agent
	return nil
}

// Deliver marks an assigned order as Delivered.
func (o *Order) Deliver(now time.Time) error {
	return o.transition(Deliver, now)
}

// Apply dispatches action to the matching transition method. agent is read by Assign only.
func (o *Order) Apply(action Action, agent kernel.Contact, now time.Time) error {
	switch action {
	case Accept:
		return o.Accept(now)
	case Reject:
		return o.Reject(now)
	case Assign:
		return o.Assign(agent, now)
	case Deliver:
		return o.Deliver(now)
	}
	return errs.NewInvalidTransitionError(o.status.String(), string(action))
}

func (o *Order) transition(action Action, now time.Time) error {
	next, err := o.status.Next(action)
	if err != nil {
		return err
	}

	o.status = next
	if now.After(o.updatedAt) {
		o.updatedAt = now
	}
	return nil
}

func (o *Order) setID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsOutOfRangeError("order_id", id, 1, "unbounded")
	}
	o.id = id
	return nil
}

func (o *Order) setLines(lines []Line) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for i, l := range lines {
		if l.name == "" {
			return errs.NewValueIsInvalidErrorWithCause("items", fmt.Errorf("line %d is empty", i))
		}
	}
	o.lines = make([]Line, len(lines))
	copy(o.lines, lines)
	return nil
}

func (o *Order) setCustomerContact(contact kernel.Contact) error {
	if contact.IsZero() {
		return errs.NewValueIsRequiredError("customer_contact")
	}
	o.customerContact = contact
	return nil
}

func (o *Order) setSpecialInstructions(s string) error {
	s = strings.TrimSpace(s)
	if len(s) > maxInstructionsLength {
		return errs.NewValueIsOutOfRangeError("special_instructions", len(s), 0, maxInstructionsLength)
	}
	o.specialInstructions = s
	return nil
}
