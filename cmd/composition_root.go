package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	vbhttp "vendorbot/internal/adapters/in/http"
	vbmcp "vendorbot/internal/adapters/in/mcp"
	"vendorbot/internal/adapters/out/memory"
	"vendorbot/internal/adapters/out/postgres"
	"vendorbot/internal/adapters/out/transport/logsink"
	"vendorbot/internal/adapters/out/transport/sqs"
	"vendorbot/internal/core/application/interpreter"
	"vendorbot/internal/core/application/notifier"
	"vendorbot/internal/core/application/usecases/commands"
	"vendorbot/internal/core/application/usecases/queries"
	"vendorbot/internal/core/domain/model/kernel"
	"vendorbot/internal/core/domain/services"
	"vendorbot/internal/core/ports"
	"vendorbot/internal/jobs"

	"github.com/labstack/echo/v4"
)

const (
	relayGrace     = 30 * time.Second
	relayBatchSize = 100
)

// CompositionRoot owns the long-lived application objects. Handlers that carry
// state (per-order locks, the dispatch queue) are built once and shared by every
// inbound adapter.
type CompositionRoot struct {
	cfg        Config
	logger     *slog.Logger
	uowFactory ports.UnitOfWorkFactory
	vendor     kernel.Contact
	lifecycle  services.OrderLifecycle
	closers    []func() error

	transitionOrder commands.TransitionOrderCommandHandler
	dispatcher      *notifier.Dispatcher
	interpreter     *interpreter.Interpreter
}

func NewCompositionRoot(ctx context.Context, cfg Config, logger *slog.Logger) (*CompositionRoot, error) {
	vendor, err := kernel.NewContact("VENDOR_CONTACT", cfg.VendorContact)
	if err != nil {
		return nil, err
	}

	c := &CompositionRoot{
		cfg:       cfg,
		logger:    logger,
		vendor:    vendor,
		lifecycle: services.NewOrderLifecycle(vendor, cfg.BusinessName, cfg.CurrencySymbol),
	}

	if err = c.openStorage(); err != nil {
		return nil, err
	}

	sender, err := c.createMessageSender(ctx)
	if err != nil {
		return nil, errors.Join(err, c.Close())
	}

	c.transitionOrder = c.CreateTransitionOrderCommandHandler()
	recordDelivery := c.CreateRecordDeliveryCommandHandler()
	c.dispatcher = notifier.NewDispatcher(sender, &recordDelivery, logger, notifier.Config{
		Workers:     cfg.DispatchWorkers,
		QueueSize:   cfg.DispatchQueueSize,
		MaxAttempts: cfg.OutboxMaxAttempts,
	})
	c.interpreter = c.createInterpreter()

	return c, nil
}

func (c *CompositionRoot) openStorage() error {
	switch c.cfg.Storage {
	case StoragePostgres:
		db, err := postgres.Open(postgres.ConnectionConfig{
			Host:     c.cfg.DBHost,
			Port:     c.cfg.DBPort,
			User:     c.cfg.DBUser,
			Password: c.cfg.DBPassword,
			Name:     c.cfg.DBName,
			SSLMode:  c.cfg.DBSslMode,
			Driver:   c.cfg.DBDriver,
		})
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return fmt.Errorf("get database handle: %w", err)
		}
		c.closers = append(c.closers, sqlDB.Close)
		c.uowFactory = postgres.NewGormUnitOfWorkFactory(db)
	default:
		c.uowFactory = memory.NewUnitOfWorkFactory(memory.NewStore())
	}

	c.logger.Info("Storage ready", "storage", c.cfg.Storage)
	return nil
}

func (c *CompositionRoot) createMessageSender(ctx context.Context) (ports.MessageSender, error) {
	if c.cfg.NotifyTransport == TransportSQS {
		return sqs.NewPublisherFromConfig(ctx, c.cfg.AWSRegion, c.cfg.SQSQueueURL)
	}
	return logsink.NewSender(c.logger), nil
}

// Close releases storage connections.
func (c *CompositionRoot) Close() error {
	var errList []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errList = append(errList, c.closers[i]())
	}
	c.closers = nil
	return errors.Join(errList...)
}

func (c *CompositionRoot) menuUoWFactory() commands.MenuUoWFactory {
	return FuncMenuUoWFactory(func() commands.MenuUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) outboxUoWFactory() commands.OutboxUoWFactory {
	return FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateUpdateMenuItemCommandHandler() commands.UpdateMenuItemCommandHandler {
	return commands.NewUpdateMenuItemCommandHandler(c.menuUoWFactory())
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.lifecycle, nil)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	return commands.NewTransitionOrderCommandHandler(c.orderUoWFactory(), c.lifecycle, nil)
}

func (c *CompositionRoot) CreateRecordDeliveryCommandHandler() commands.RecordDeliveryCommandHandler {
	return commands.NewRecordDeliveryCommandHandler(c.outboxUoWFactory(), nil)
}

func (c *CompositionRoot) CreateRelayOutboxCommandHandler() commands.RelayOutboxCommandHandler {
	return commands.NewRelayOutboxCommandHandler(c.outboxUoWFactory(), c.dispatcher, nil)
}

func (c *CompositionRoot) CreateGetMenuQueryHandler() queries.GetMenuQueryHandler {
	return queries.NewGetMenuQueryHandler(c.uowFactory.Create().MenuRepository())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.uowFactory.Create().OrderRepository())
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.uowFactory.Create().OrderRepository())
}

func (c *CompositionRoot) createInterpreter() *interpreter.Interpreter {
	updateMenu := c.CreateUpdateMenuItemCommandHandler()
	createOrder := c.CreateCreateOrderCommandHandler()

	return interpreter.New(
		interpreter.Handlers{
			UpdateMenuItem:  &updateMenu,
			CreateOrder:     &createOrder,
			TransitionOrder: &c.transitionOrder,
			GetMenu:         c.CreateGetMenuQueryHandler(),
			GetOrder:        c.CreateGetOrderQueryHandler(),
			ListOrders:      c.CreateListOrdersQueryHandler(),
		},
		interpreter.NewVendorAuthorizer(c.vendor),
		interpreter.Business{
			Name:     c.cfg.BusinessName,
			Address:  c.cfg.BusinessAddress,
			MapLink:  c.cfg.BusinessMapLink,
			Hours:    c.cfg.BusinessHours,
			Currency: c.cfg.CurrencySymbol,
		},
		c.logger,
	)
}

func (c *CompositionRoot) Interpreter() *interpreter.Interpreter {
	return c.interpreter
}

func (c *CompositionRoot) Dispatcher() *notifier.Dispatcher {
	return c.dispatcher
}

func (c *CompositionRoot) CreateHTTPRouter(ctx context.Context) (*echo.Echo, error) {
	server := vbhttp.NewServer(
		c.interpreter,
		c.dispatcher,
		c.CreateGetMenuQueryHandler(),
		c.CreateListOrdersQueryHandler(),
		c.logger,
	)
	return vbhttp.NewRouter(ctx, server, vbhttp.RouterConfig{APIToken: c.cfg.APIToken, LogLevel: c.cfg.LogLevel})
}

func (c *CompositionRoot) CreateMCPServer() (*vbmcp.Server, error) {
	return vbmcp.NewServer(c.interpreter, c.dispatcher, c.vendor, c.cfg.MCPToken, c.logger)
}

func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	relay := c.CreateRelayOutboxCommandHandler()
	cmd, err := commands.NewRelayOutboxCommand(relayGrace, c.dispatcherMaxAttempts(), relayBatchSize)
	if err != nil {
		return nil, err
	}

	return jobs.NewJobManager(
		jobs.NewOutboxRelayJob(&relay, cmd, c.cfg.OutboxRelaySchedule, c.logger),
	), nil
}

func (c *CompositionRoot) dispatcherMaxAttempts() int {
	if c.cfg.OutboxMaxAttempts < 1 {
		return notifier.DefaultMaxAttempts
	}
	return c.cfg.OutboxMaxAttempts
}

type FuncMenuUoWFactory func() commands.MenuUoW

func (f FuncMenuUoWFactory) Create() commands.MenuUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
