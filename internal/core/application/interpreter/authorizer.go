package interpreter

import (
	"context"
	"slices"

	"vendorbot/internal/core/domain/model/kernel"
)

// Capability is a permission a command requires.
type Capability string

const (
	CustomerCapability Capability = "customer"
	VendorCapability   Capability = "vendor"
)

// Authorizer resolves what a caller is allowed to do.
type Authorizer interface {
	Capabilities(ctx context.Context, caller kernel.Contact) []Capability
}

// VendorAuthorizer grants everyone the customer capability and the configured vendor
// contacts the vendor capability as well.
type VendorAuthorizer struct {
	vendors []kernel.Contact
}

func NewVendorAuthorizer(vendors ...kernel.Contact) VendorAuthorizer {
	return VendorAuthorizer{vendors: vendors}
}

func (a VendorAuthorizer) Capabilities(_ context.Context, caller kernel.Contact) []Capability {
	caps := []Capability{CustomerCapability}
	isVendor := slices.ContainsFunc(a.vendors, func(v kernel.Contact) bool {
		return !v.IsZero() && v.IsEqual(caller)
	})
	if isVendor {
		caps = append(caps, VendorCapability)
	}
	return caps
}

func hasCapability(caps []Capability, required Capability) bool {
	return slices.Contains(caps, required)
}
