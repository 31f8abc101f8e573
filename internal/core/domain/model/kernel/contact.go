package kernel

import (
	"strings"
	"unicode"

	"vendorbot/internal/pkg/errs"
)

// Contact is a chat destination, usually an E.164 phone number such as "+919876543210".
// Construction strips spaces, dashes, dots and parentheses so "+91 98765-43210" and
// "+919876543210" compare equal. Other characters are kept: the transport owns addressing.
type Contact struct {
	value string
}

// NewContact normalizes raw and fails with a ValueIsRequiredError when nothing is left.
func NewContact(paramName, raw string) (Contact, error) {
	normalized := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		switch r {
		case '-', '.', '(', ')':
			return -1
		}
		return r
	}, raw)

	if normalized == "" {
		return Contact{}, errs.NewValueIsRequiredError(paramName)
	}

	return Contact{value: normalized}, nil
}

// MustContact is NewContact for literals known to be valid (seed data, tests).
func MustContact(raw string) Contact {
	c, err := NewContact("contact", raw)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Contact) String() string {
	return c.value
}

func (c Contact) IsZero() bool {
	return c.value == ""
}

func (c Contact) IsEqual(other Contact) bool {
	return c.value == other.value
}
