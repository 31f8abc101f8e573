package interpreter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"vendorbot/internal/core/domain/services"
	"vendorbot/internal/pkg/errs"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type menuPayload struct {
	Query string `json:"query" validate:"max=100"`
}

type orderItemPayload struct {
	Name string          `json:"name" validate:"required,max=100"`
	Qty  decimal.Decimal `json:"qty"`
}

type orderPayload struct {
	Items               []orderItemPayload `json:"items" validate:"required,min=1,max=50,dive"`
	CustomerName        string             `json:"customer_name" validate:"max=100"`
	CustomerContact     string             `json:"customer_contact" validate:"required,max=64"`
	SpecialInstructions string             `json:"special_instructions" validate:"max=500"`
}

type orderRefPayload struct {
	OrderID int64 `json:"order_id" validate:"required,gt=0"`
}

type updateMenuPayload struct {
	ItemName string          `json:"item_name" validate:"required,max=100"`
	Price    decimal.Decimal `json:"price"`
	Status   string          `json:"status" validate:"required"`
	Unit     string          `json:"unit" validate:"max=16"`
}

type orderActionPayload struct {
	OrderID int64  `json:"order_id" validate:"required,gt=0"`
	Action  string `json:"action" validate:"required,oneof=accept reject"`
}

type assignDeliveryPayload struct {
	OrderID      int64  `json:"order_id" validate:"required,gt=0"`
	AgentContact string `json:"agent_contact" validate:"required,max=64"`
}

type listOrdersPayload struct {
	State string `json:"state" validate:"omitempty,oneof=pending accepted rejected assigned delivered"`
}

// newValidator returns a validator reporting fields by their JSON names.
func newValidator() *validatorv10.Validate {
	v := validatorv10.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodePayload unmarshals raw into out and validates it. An absent payload decodes as
// an empty object so the required tags report what is missing.
func decodePayload(v *validatorv10.Validate, raw json.RawMessage, out any) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		raw = []byte("{}")
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("payload", err)
	}

	if err := v.Struct(out); err != nil {
		return validationErrors(err)
	}
	return nil
}

// validationErrors converts validator failures into the errs validation kinds.
func validationErrors(err error) error {
	var ve validatorv10.ValidationErrors
	if !errors.As(err, &ve) {
		return errs.NewValueIsInvalidErrorWithCause("payload", err)
	}

	errList := make([]error, 0, len(ve))
	for _, fe := range ve {
		field := fieldPath(fe)
		switch fe.Tag() {
		case "required":
			errList = append(errList, errs.NewValueIsRequiredError(field))
		case "min", "gt":
			errList = append(errList, errs.NewValueIsOutOfRangeError(field, sizeOf(fe), fe.Param(), "unbounded"))
		case "max":
			errList = append(errList, errs.NewValueIsOutOfRangeError(field, sizeOf(fe), 0, fe.Param()))
		case "oneof":
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
				field, fmt.Errorf("must be one of: %s", fe.Param())))
		default:
			errList = append(errList, errs.NewValueIsInvalidError(field))
		}
	}
	return errors.Join(errList...)
}

// fieldPath drops the root struct name: "orderPayload.items[0].name" -> "items[0].name".
func fieldPath(fe validatorv10.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

// sizeOf reports what a length rule measured: the length of strings and slices, the
// value itself otherwise.
func sizeOf(fe validatorv10.FieldError) any {
	rv := reflect.ValueOf(fe.Value())
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Map:
		return rv.Len()
	default:
		return fe.Value()
	}
}

func (p orderPayload) requestedLines() []services.RequestedLine {
	lines := make([]services.RequestedLine, 0, len(p.Items))
	for _, it := range p.Items {
		lines = append(lines, services.RequestedLine{Name: it.Name, Quantity: it.Qty})
	}
	return lines
}
