package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrObjectNotFound       = errors.New("object not found")
	ErrValueIsInvalid       = errors.New("value is invalid")
	ErrValueIsOutOfRange    = errors.New("value is out of range")
	ErrValueIsRequired      = errors.New("value is required")
	ErrUnknownItem          = errors.New("unknown menu item")
	ErrUnavailableItem      = errors.New("menu item is unavailable")
	ErrInvalidTransition    = errors.New("invalid order transition")
	ErrNotPermitted         = errors.New("not permitted")
	ErrNotificationDelivery = errors.New("notification delivery failed")
)

// IsValidation reports whether err is one of the input validation kinds
// (required, invalid or out of range values).
func IsValidation(err error) bool {
	return errors.Is(err, ErrValueIsRequired) ||
		errors.Is(err, ErrValueIsInvalid) ||
		errors.Is(err, ErrValueIsOutOfRange)
}

// sanitize flattens a value for single-line error messages.
func sanitize(v any) string {
	s := fmt.Sprintf("%v", v)
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %s)", msg, sanitize(cause.Error()))
}

// ObjectNotFoundError is returned when an aggregate cannot be loaded by its identifier.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	return withCause(
		fmt.Sprintf("%s: %s %s", ErrObjectNotFound, e.ParamName, sanitize(e.ID)),
		e.Cause,
	)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError is returned when a value has the right shape but a wrong content.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName), e.Cause)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError is returned when a value falls outside its allowed bounds.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	return withCause(
		fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
			ErrValueIsOutOfRange, e.ParamName, sanitize(e.Value), sanitize(e.Min), sanitize(e.Max)),
		e.Cause,
	)
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError is returned when a mandatory value is missing or empty.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName), e.Cause)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// UnknownItemError is returned when an order references a name the menu does not hold.
type UnknownItemError struct {
	Name string
}

func NewUnknownItemError(name string) *UnknownItemError {
	return &UnknownItemError{Name: name}
}

func (e *UnknownItemError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownItem, sanitize(e.Name))
}

func (e *UnknownItemError) Unwrap() error {
	return ErrUnknownItem
}

// UnavailableItemError is returned when an order references an item marked out of stock.
type UnavailableItemError struct {
	Name string
}

func NewUnavailableItemError(name string) *UnavailableItemError {
	return &UnavailableItemError{Name: name}
}

func (e *UnavailableItemError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnavailableItem, sanitize(e.Name))
}

func (e *UnavailableItemError) Unwrap() error {
	return ErrUnavailableItem
}

// InvalidTransitionError is returned when an action is not allowed from the current state.
type InvalidTransitionError struct {
	Current string
	Action  string
}

func NewInvalidTransitionError(current, action string) *InvalidTransitionError {
	return &InvalidTransitionError{Current: current, Action: action}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: cannot %s an order in state %s", ErrInvalidTransition, e.Action, e.Current)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// AuthorizationError is returned when a caller lacks the capability a command requires.
// Its message stays generic; Command and Caller are for logs only.
type AuthorizationError struct {
	Command string
	Caller  string
}

func NewAuthorizationError(command, caller string) *AuthorizationError {
	return &AuthorizationError{Command: command, Caller: caller}
}

func (e *AuthorizationError) Error() string {
	return ErrNotPermitted.Error()
}

func (e *AuthorizationError) Unwrap() error {
	return ErrNotPermitted
}

// NotificationDeliveryError wraps a transport failure. It is logged, never surfaced to a caller.
type NotificationDeliveryError struct {
	Recipient string
	Kind      string
	Cause     error
}

func NewNotificationDeliveryError(recipient, kind string, cause error) *NotificationDeliveryError {
	return &NotificationDeliveryError{Recipient: recipient, Kind: kind, Cause: cause}
}

func (e *NotificationDeliveryError) Error() string {
	return withCause(fmt.Sprintf("%s: %s to %s", ErrNotificationDelivery, e.Kind, e.Recipient), e.Cause)
}

// Unwrap exposes both the sentinel and the transport cause to errors.Is/As.
func (e *NotificationDeliveryError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrNotificationDelivery}
	}
	return []error{ErrNotificationDelivery, e.Cause}
}
