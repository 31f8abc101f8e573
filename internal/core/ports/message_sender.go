package ports

import (
	"context"
)

// Message is the transport view of an outbox notification.
type Message struct {
	ID        string `json:"id"`
	OrderID   int64  `json:"order_id"`
	Kind      string `json:"kind"`
	Recipient string `json:"recipient"`
	Text      string `json:"text"`
}

// MessageSender hands a message to the chat transport. Implementations own their
// retry and timeout policy; ctx carries the per-send deadline.
type MessageSender interface {
	Send(ctx context.Context, msg Message) error
}
