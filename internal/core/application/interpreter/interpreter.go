package interpreter

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"vendorbot/internal/core/application/usecases/commands"
	"vendorbot/internal/core/application/usecases/queries"
	"vendorbot/internal/core/domain/model/kernel"
	"vendorbot/internal/core/domain/model/menu"
	"vendorbot/internal/core/domain/model/notification"
	"vendorbot/internal/pkg/errs"

	validatorv10 "github.com/go-playground/validator/v10"
)

// Command names understood by the interpreter.
const (
	MenuCommand           = "menu"
	OrderCommand          = "order"
	LocationCommand       = "location"
	HelpCommand           = "help"
	OrderStatusCommand    = "order_status"
	UpdateMenuCommand     = "update_menu"
	OrderActionCommand    = "order_action"
	AssignDeliveryCommand = "assign_delivery"
	MarkDeliveredCommand  = "mark_delivered"
	ListOrdersCommand     = "list_orders"
)

// Command is a structured command as produced by the upstream agent layer.
type Command struct {
	Name    string          `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Envelope pairs a command with the contact that issued it.
type Envelope struct {
	Caller  string
	Command Command
}

// Reply is the single answer sent back to the caller.
type Reply struct {
	Text      string `json:"text"`
	Recipient string `json:"recipient"`
}

// Result is the outcome of one command. Notifications are already committed to the
// outbox and only need to be handed to the dispatcher.
type Result struct {
	Reply         Reply
	Notifications []*notification.Notification
}

// Business describes the shop for location, menu and help replies.
type Business struct {
	Name     string
	Address  string
	MapLink  string
	Hours    string
	Currency string
}

type (
	MenuItemUpdater interface {
		Handle(ctx context.Context, cmd commands.UpdateMenuItemCommand) (*menu.Item, error)
	}

	OrderCreator interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (commands.OrderResult, error)
	}

	OrderTransitioner interface {
		Handle(ctx context.Context, cmd commands.TransitionOrderCommand) (commands.OrderResult, error)
	}

	MenuReader interface {
		Handle(ctx context.Context, query queries.GetMenuQuery) ([]queries.MenuItemResponse, error)
	}

	OrderReader interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderResponse, error)
	}

	OrderLister interface {
		Handle(ctx context.Context, query queries.ListOrdersQuery) ([]queries.OrderResponse, error)
	}
)

// Handlers groups the use cases the interpreter dispatches to.
type Handlers struct {
	UpdateMenuItem  MenuItemUpdater
	CreateOrder     OrderCreator
	TransitionOrder OrderTransitioner
	GetMenu         MenuReader
	GetOrder        OrderReader
	ListOrders      OrderLister
}

type route struct {
	capability Capability
	run        func(ctx context.Context, caller kernel.Contact, caps []Capability, payload json.RawMessage) (Result, error)
}

type Interpreter struct {
	handlers   Handlers
	authorizer Authorizer
	business   Business
	validate   *validatorv10.Validate
	logger     *slog.Logger
	routes     map[string]route
}

func New(handlers Handlers, authorizer Authorizer, business Business, logger *slog.Logger) *Interpreter {
	if business.Currency == "" {
		business.Currency = kernel.DefaultCurrencySymbol
	}

	i := &Interpreter{
		handlers:   handlers,
		authorizer: authorizer,
		business:   business,
		validate:   newValidator(),
		logger:     logger.With("component", "interpreter"),
	}

	i.routes = map[string]route{
		MenuCommand:           {CustomerCapability, i.menu},
		OrderCommand:          {CustomerCapability, i.order},
		LocationCommand:       {CustomerCapability, i.location},
		HelpCommand:           {CustomerCapability, i.help},
		OrderStatusCommand:    {CustomerCapability, i.orderStatus},
		UpdateMenuCommand:     {VendorCapability, i.updateMenu},
		OrderActionCommand:    {VendorCapability, i.orderAction},
		AssignDeliveryCommand: {VendorCapability, i.assignDelivery},
		MarkDeliveredCommand:  {VendorCapability, i.markDelivered},
		ListOrdersCommand:     {VendorCapability, i.listOrders},
	}

	return i
}

// Execute runs one command. It never returns an error: every failure is answered with a
// reply addressed to the caller.
func (i *Interpreter) Execute(ctx context.Context, env Envelope) Result {
	caller, err := kernel.NewContact("caller", env.Caller)
	if err != nil {
		return i.failure(ctx, env, strings.TrimSpace(env.Caller), err)
	}
	recipient := caller.String()

	caps := i.authorizer.Capabilities(ctx, caller)
	name := strings.ToLower(strings.TrimSpace(env.Command.Name))

	r, ok := i.routes[name]
	if !ok {
		text := unknownCommandText(env.Command.Name) + "\n\n" + i.helpText(caps)
		return Result{Reply: Reply{Text: text, Recipient: recipient}}
	}

	if !hasCapability(caps, r.capability) {
		return i.failure(ctx, env, recipient, errs.NewAuthorizationError(name, recipient))
	}

	result, err := r.run(ctx, caller, caps, env.Command.Payload)
	if err != nil {
		return i.failure(ctx, env, recipient, err)
	}

	result.Reply.Recipient = recipient
	return result
}

// Commands lists the command names the caller may use, customer commands first.
func (i *Interpreter) Commands(caps []Capability) []string {
	names := make([]string, 0, len(helpEntries))
	for _, e := range helpEntries {
		if hasCapability(caps, i.routes[e.command].capability) {
			names = append(names, e.command)
		}
	}
	return names
}

// failure answers err to recipient, the normalized caller when it parsed and the raw
// value otherwise.
func (i *Interpreter) failure(ctx context.Context, env Envelope, recipient string, err error) Result {
	text, known := errorText(err)
	if !known {
		i.logger.ErrorContext(ctx, "Command failed",
			"command", env.Command.Name,
			"caller", recipient,
			"error", err)
	} else {
		i.logger.DebugContext(ctx, "Command rejected",
			"command", env.Command.Name,
			"caller", recipient,
			"error", err)
	}

	return Result{Reply: Reply{Text: text, Recipient: recipient}}
}

func (i *Interpreter) menu(ctx context.Context, _ kernel.Contact, _ []Capability, payload json.RawMessage) (Result, error) {
	var p menuPayload
	if err := decodePayload(i.validate, payload, &p); err != nil {
		return Result{}, err
	}

	items, err := i.handlers.GetMenu.Handle(ctx, queries.NewGetMenuQuery(p.Query))
	if err != nil {
		return Result{}, err
	}

	return Result{Reply: Reply{Text: i.menuText(items, strings.TrimSpace(p.Query))}}, nil
}

func (i *Interpreter) order(ctx context.Context, _ kernel.Contact, _ []Capability, payload json.RawMessage) (Result, error) {
	var p orderPayload
	if err := decodePayload(i.validate, payload, &p); err != nil {
		return Result{}, err
	}

	cmd, err := commands.NewCreateOrderCommand(p.requestedLines(), p.CustomerName, p.CustomerContact, p.SpecialInstructions)
	if err != nil {
		return Result{}, err
	}

	res, err := i.handlers.CreateOrder.Handle(ctx, cmd)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Reply:         Reply{Text: i.orderPlacedText(res)},
		Notifications: res.Notifications,
	}, nil
}

func (i *Interpreter) location(context.Context, kernel.Contact, []Capability, json.RawMessage) (Result, error) {
	return Result{Reply: Reply{Text: i.locationText()}}, nil
}

func (i *Interpreter) help(_ context.Context, _ kernel.Contact, caps []Capability, _ json.RawMessage) (Result, error) {
	return Result{Reply: Reply{Text: i.helpText(caps)}}, nil
}

func (i *Interpreter) orderStatus(
	ctx context.Context,
	caller kernel.Contact,
	caps []Capability,
	payload json.RawMessage,
) (Result, error) {
	var p orderRefPayload
	if err := decodePayload(i.validate, payload, &p); err != nil {
		return Result{}, err
	}

	query, err := queries.NewGetOrderQuery(p.OrderID)
	if err != nil {
		return Result{}, err
	}

	o, err := i.handlers.GetOrder.Handle(ctx, query)
	if err != nil {
		return Result{}, err
	}

	if o.CustomerContact != caller.String() && !hasCapability(caps, VendorCapability) {
		return Result{}, errs.NewAuthorizationError(OrderStatusCommand, caller.String())
	}

	return Result{Reply: Reply{Text: i.orderStatusText(o)}}, nil
}

func (i *Interpreter) updateMenu(ctx context.Context, _ kernel.Contact, _ []Capability, payload json.RawMessage) (Result, error) {
	var p updateMenuPayload
	if err := decodePayload(i.validate, payload, &p); err != nil {
		return Result{}, err
	}

	cmd, err := commands.NewUpdateMenuItemCommand(p.ItemName, p.Price, p.Unit, p.Status)
	if err != nil {
		return Result{}, err
	}

	item, err := i.handlers.UpdateMenuItem.Handle(ctx, cmd)
	if err != nil {
		return Result{}, err
	}

	return Result{Reply: Reply{Text: i.menuUpdatedText(item)}}, nil
}

func (i *Interpreter) orderAction(ctx context.Context, _ kernel.Contact, _ []Capability, payload json.RawMessage) (Result, error) {
	var p orderActionPayload
	if err := decodePayload(i.validate, payload, &p); err != nil {
		return Result{}, err
	}
	return i.transition(ctx, p.OrderID, p.Action, "")
}

func (i *Interpreter) assignDelivery(
	ctx context.Context,
	_ kernel.Contact,
	_ []Capability,
	payload json.RawMessage,
) (Result, error) {
	var p assignDeliveryPayload
	if err := decodePayload(i.validate, payload, &p); err != nil {
		return Result{}, err
	}
	return i.transition(ctx, p.OrderID, "assign", p.AgentContact)
}

func (i *Interpreter) markDelivered(ctx context.Context, _ kernel.Contact, _ []Capability, payload json.RawMessage) (Result, error) {
	var p orderRefPayload
	if err := decodePayload(i.validate, payload, &p); err != nil {
		return Result{}, err
	}
	return i.transition(ctx, p.OrderID, "deliver", "")
}

func (i *Interpreter) transition(ctx context.Context, orderID int64, action, agent string) (Result, error) {
	cmd, err := commands.NewTransitionOrderCommand(orderID, action, agent)
	if err != nil {
		return Result{}, err
	}

	res, err := i.handlers.TransitionOrder.Handle(ctx, cmd)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Reply:         Reply{Text: transitionText(res)},
		Notifications: res.Notifications,
	}, nil
}

func (i *Interpreter) listOrders(ctx context.Context, _ kernel.Contact, _ []Capability, payload json.RawMessage) (Result, error) {
	var p listOrdersPayload
	if err := decodePayload(i.validate, payload, &p); err != nil {
		return Result{}, err
	}

	query, err := queries.NewListOrdersQuery(p.State)
	if err != nil {
		return Result{}, err
	}

	orders, err := i.handlers.ListOrders.Handle(ctx, query)
	if err != nil {
		return Result{}, err
	}

	return Result{Reply: Reply{Text: i.ordersText(orders, p.State)}}, nil
}
