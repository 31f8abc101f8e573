// Package notifier hands committed outbox notifications to the chat transport.
//
// Dispatch never blocks the caller: notifications go onto a bounded queue drained by a
// fixed pool of workers. A full queue drops the handoff with a warning; the entry stays
// pending in the outbox and the relay job sends it later. Send failures are wrapped in
// errs.NotificationDeliveryError, logged and recorded, and never reach the command that
// produced the notification.
package notifier

import (
	"context"
	"log/slog"
	"time"

	"vendorbot/internal/core/application/usecases/commands"
	"vendorbot/internal/core/domain/model/notification"
	"vendorbot/internal/core/ports"
	"vendorbot/internal/pkg/errs"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultWorkers     = 4
	DefaultQueueSize   = 256
	DefaultSendTimeout = 10 * time.Second
	DefaultMaxAttempts = 5
)

type Config struct {
	Workers     int
	QueueSize   int
	SendTimeout time.Duration
	MaxAttempts int
}

func (c Config) withDefaults() Config {
	if c.Workers < 1 {
		c.Workers = DefaultWorkers
	}
	if c.QueueSize < 1 {
		c.QueueSize = DefaultQueueSize
	}
	if c.SendTimeout <= 0 {
		c.SendTimeout = DefaultSendTimeout
	}
	if c.MaxAttempts < 1 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	return c
}

type deliveryRecorder interface {
	Handle(ctx context.Context, cmd commands.RecordDeliveryCommand) (*notification.Notification, error)
}

type Dispatcher struct {
	sender   ports.MessageSender
	recorder deliveryRecorder
	logger   *slog.Logger
	cfg      Config
	queue    chan *notification.Notification
}

func NewDispatcher(
	sender ports.MessageSender,
	recorder deliveryRecorder,
	logger *slog.Logger,
	cfg Config,
) *Dispatcher {
	cfg = cfg.withDefaults()
	return &Dispatcher{
		sender:   sender,
		recorder: recorder,
		logger:   logger.With("component", "notification_dispatcher"),
		cfg:      cfg,
		queue:    make(chan *notification.Notification, cfg.QueueSize),
	}
}

// Dispatch enqueues notifications and returns immediately. It reports how many were
// queued; the rest wait in the outbox for the relay.
func (d *Dispatcher) Dispatch(ctx context.Context, notifications []*notification.Notification) int {
	queued := 0
	for _, n := range notifications {
		if n == nil {
			continue
		}
		select {
		case d.queue <- n:
			queued++
		default:
			d.logger.WarnContext(ctx, "Dispatch queue full, leaving notification to the outbox relay",
				"notification_id", n.ID().String(),
				"order_id", n.OrderID(),
				"kind", n.Kind().String())
		}
	}
	return queued
}

// Run serves the queue with the configured worker count until ctx is cancelled.
// Queued entries not yet sent at shutdown stay pending in the outbox.
func (d *Dispatcher) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for i := range d.cfg.Workers {
		g.Go(func() error {
			d.work(gctx, i)
			return nil
		})
	}

	d.logger.InfoContext(ctx, "Notification dispatcher started", "workers", d.cfg.Workers, "queue_size", d.cfg.QueueSize)
	err := g.Wait()
	d.logger.InfoContext(context.WithoutCancel(ctx), "Notification dispatcher stopped")
	return err
}

func (d *Dispatcher) work(ctx context.Context, worker int) {
	for {
		select {
		case <-ctx.Done():
			return
		case n := <-d.queue:
			if err := d.Deliver(ctx, n); err != nil {
				d.logger.DebugContext(ctx, "Worker delivery failed", "worker", worker, "error", err)
			}
		}
	}
}

// Deliver sends one notification synchronously and records the outcome in the outbox.
// The returned error is a *errs.NotificationDeliveryError when the transport failed.
func (d *Dispatcher) Deliver(ctx context.Context, n *notification.Notification) error {
	sendCtx, cancel := context.WithTimeout(ctx, d.cfg.SendTimeout)
	sendErr := d.sender.Send(sendCtx, ToMessage(n))
	cancel()

	var deliveryErr error
	if sendErr != nil {
		deliveryErr = errs.NewNotificationDeliveryError(n.Recipient().String(), n.Kind().String(), sendErr)
		d.logger.ErrorContext(ctx, "Notification delivery failed",
			"notification_id", n.ID().String(),
			"order_id", n.OrderID(),
			"error", deliveryErr)
	}

	cmd, err := commands.NewRecordDeliveryCommand(n.ID(), deliveryErr, d.cfg.MaxAttempts)
	if err != nil {
		d.logger.ErrorContext(ctx, "Invalid delivery record", "notification_id", n.ID().String(), "error", err)
		return deliveryErr
	}

	// Recording must survive a cancelled request context.
	if _, err = d.recorder.Handle(context.WithoutCancel(ctx), cmd); err != nil {
		d.logger.ErrorContext(ctx, "Failed to record notification delivery",
			"notification_id", n.ID().String(),
			"error", err)
	}

	return deliveryErr
}

// ToMessage converts an outbox entry to its transport form.
func ToMessage(n *notification.Notification) ports.Message {
	return ports.Message{
		ID:        n.ID().String(),
		OrderID:   n.OrderID(),
		Kind:      n.Kind().String(),
		Recipient: n.Recipient().String(),
		Text:      n.Text(),
	}
}
