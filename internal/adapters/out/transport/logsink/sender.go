// Package logsink is a MessageSender that writes every message to the structured log.
// It is the default transport when no chat gateway queue is configured.
package logsink

import (
	"context"
	"log/slog"

	"vendorbot/internal/core/ports"
)

var _ ports.MessageSender = (*Sender)(nil)

type Sender struct {
	logger *slog.Logger
}

func NewSender(logger *slog.Logger) *Sender {
	return &Sender{logger: logger.With("component", "logsink")}
}

func (s *Sender) Send(ctx context.Context, msg ports.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "outgoing message",
		"message_id", msg.ID,
		"order_id", msg.OrderID,
		"kind", msg.Kind,
		"recipient", msg.Recipient,
		"text", msg.Text,
	)
	return nil
}
