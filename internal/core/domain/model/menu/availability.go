package menu

import (
	"fmt"
	"strings"

	"vendorbot/internal/pkg/errs"
)

// Availability tells whether an item can be ordered right now.
type Availability int

const (
	// UnknownAvailability is the zero value and never valid.
	UnknownAvailability Availability = iota
	Available
	Unavailable
)

func getAvailabilityStrings() map[Availability]string {
	return map[Availability]string{
		Available:   "available",
		Unavailable: "unavailable",
	}
}

// ParseAvailability accepts "available" or "unavailable" in any case.
func ParseAvailability(s string) (Availability, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for a, str := range getAvailabilityStrings() {
		if str == normalized {
			return a, nil
		}
	}

	return UnknownAvailability, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not one of available, unavailable", s),
	)
}

func (a Availability) Validate() error {
	if _, ok := getAvailabilityStrings()[a]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid availability", a))
	}
	return nil
}

func (a Availability) String() string {
	if str, ok := getAvailabilityStrings()[a]; ok {
		return str
	}
	return "unknown"
}
