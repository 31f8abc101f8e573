package notification

import (
	"fmt"

	"vendorbot/internal/pkg/errs"
)

// Kind names the event a notification announces.
type Kind string

const (
	OrderPlaced      Kind = "order_placed"
	OrderAccepted    Kind = "order_accepted"
	OrderRejected    Kind = "order_rejected"
	DeliveryAssigned Kind = "delivery_assigned"
	OrderDelivered   Kind = "order_delivered"
)

func (k Kind) Validate() error {
	switch k {
	case OrderPlaced, OrderAccepted, OrderRejected, DeliveryAssigned, OrderDelivered:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%q is not a valid notification kind", string(k)))
}

func (k Kind) String() string {
	return string(k)
}

// DeliveryStatus tracks an outbox entry.
type DeliveryStatus int

const (
	UnknownDelivery DeliveryStatus = iota
	Pending
	Delivered
	Failed
)

func getDeliveryStatusStrings() map[DeliveryStatus]string {
	return map[DeliveryStatus]string{
		UnknownDelivery: "unknown",
		Pending:         "pending",
		Delivered:       "delivered",
		Failed:          "failed",
	}
}

func ParseDeliveryStatus(s string) (DeliveryStatus, error) {
	for status, str := range getDeliveryStatusStrings() {
		if status != UnknownDelivery && str == s {
			return status, nil
		}
	}
	return UnknownDelivery, errs.NewValueIsInvalidErrorWithCause("delivery status", fmt.Errorf("%q is not a valid delivery status", s))
}

func (s DeliveryStatus) Validate() error {
	if _, ok := getDeliveryStatusStrings()[s]; !ok || s == UnknownDelivery {
		return errs.NewValueIsInvalidErrorWithCause("delivery status", fmt.Errorf("%d is not a valid delivery status", s))
	}
	return nil
}

func (s DeliveryStatus) String() string {
	if str, ok := getDeliveryStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}
