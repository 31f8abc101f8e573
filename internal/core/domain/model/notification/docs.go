// Package notification provides the outbox entry describing an outbound chat message.
//
// A Notification is created in the same unit of work as the order change that caused it
// and is delivered afterwards. Delivery status moves Pending -> Delivered, or
// Pending -> Failed once the attempt limit is reached.
package notification
