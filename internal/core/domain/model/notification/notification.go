package notification

import (
	"errors"
	"strings"
	"time"

	"vendorbot/internal/core/domain/model/kernel"
	"vendorbot/internal/pkg/errs"
)

var ErrNotificationIsNotConstructed = errors.New("notification must be created via NewNotification constructor")

const maxErrorLength = 500

// Notification is a message owed to a recipient because an order changed.
type Notification struct {
	id        kernel.UUID
	orderID   int64
	kind      Kind
	recipient kernel.Contact
	text      string
	status    DeliveryStatus
	attempts  int
	lastError string
	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewNotification creates a Pending entry with a fresh identifier.
func NewNotification(orderID int64, kind Kind, recipient kernel.Contact, text string, now time.Time) (*Notification, error) {
	n := &Notification{
		id:            kernel.NewUUID(),
		orderID:       orderID,
		status:        Pending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	var errList []error
	if orderID <= 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("order_id", orderID, 1, "unbounded"))
	}
	if err := kind.Validate(); err != nil {
		errList = append(errList, err)
	}
	if recipient.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("recipient"))
	}
	if strings.TrimSpace(text) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("text"))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	n.kind = kind
	n.recipient = recipient
	n.text = text
	return n, nil
}

// RestoreNotification rebuilds an entry loaded from storage.
func RestoreNotification(
	id kernel.UUID,
	orderID int64,
	kind Kind,
	recipient kernel.Contact,
	text string,
	status DeliveryStatus,
	attempts int,
	lastError string,
	createdAt time.Time,
	updatedAt time.Time,
) (*Notification, error) {
	n, err := NewNotification(orderID, kind, recipient, text, createdAt)
	if err != nil {
		return nil, err
	}
	if err := errors.Join(id.Validate(), status.Validate()); err != nil {
		return nil, err
	}
	if attempts < 0 {
		return nil, errs.NewValueIsOutOfRangeError("attempts", attempts, 0, "unbounded")
	}

	n.id = id
	n.status = status
	n.attempts = attempts
	n.lastError = lastError
	n.updatedAt = updatedAt
	return n, nil
}

func (n *Notification) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNotificationIsNotConstructed
	}
	return nil
}

func (n *Notification) ID() kernel.UUID {
	return n.id
}

func (n *Notification) OrderID() int64 {
	return n.orderID
}

func (n *Notification) Kind() Kind {
	return n.kind
}

func (n *Notification) Recipient() kernel.Contact {
	return n.recipient
}

func (n *Notification) Text() string {
	return n.text
}

func (n *Notification) Status() DeliveryStatus {
	return n.status
}

func (n *Notification) Attempts() int {
	return n.attempts
}

func (n *Notification) LastError() string {
	return n.lastError
}

func (n *Notification) CreatedAt() time.Time {
	return n.createdAt
}

func (n *Notification) UpdatedAt() time.Time {
	return n.updatedAt
}

// MarkDelivered records a successful send. Delivering twice is harmless.
func (n *Notification) MarkDelivered(now time.Time) {
	n.status = Delivered
	n.attempts++
	n.lastError = ""
	n.updatedAt = now
}

// RecordFailure counts a failed attempt. Once maxAttempts is reached the entry is Failed
// and the relay stops picking it up.
func (n *Notification) RecordFailure(cause error, maxAttempts int, now time.Time) {
	n.attempts++
	if cause != nil {
		msg := cause.Error()
		if len(msg) > maxErrorLength {
			msg = msg[:maxErrorLength]
		}
		n.lastError = msg
	}
	if maxAttempts > 0 && n.attempts >= maxAttempts {
		n.status = Failed
	}
	n.updatedAt = now
}

// IsDue reports whether the relay should retry the entry: still pending, older than
// grace and below the attempt limit.
func (n *Notification) IsDue(now time.Time, grace time.Duration, maxAttempts int) bool {
	return n.status == Pending &&
		!n.updatedAt.After(now.Add(-grace)) &&
		(maxAttempts <= 0 || n.attempts < maxAttempts)
}
