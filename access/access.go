// Package access validates that the marketplace core and its callers hold
// the capabilities required to mutate a collection's listing.
package access

import (
	"context"
	"fmt"

	"github.com/Ngipiek/rair-dapp/addr"
)

// Capability names a role granted on a collection.
type Capability string

// Capabilities queried by the marketplace.
const (
	// CapabilityMinter must be held by the core so purchases can mint.
	CapabilityMinter Capability = "minter"

	// CapabilityCreator must be held by a caller listing or editing an offer.
	CapabilityCreator Capability = "creator"
)

// Controller answers capability queries for a collection. It is implemented
// by the external access-control service and by test doubles.
type Controller interface {
	// HasCapability reports whether subject holds the capability on the
	// given collection.
	HasCapability(ctx context.Context, collection, subject addr.Address, capability Capability) (bool, error)
}

// Validator checks listing permissions against a Controller.
type Validator struct {
	ctrl Controller
	core addr.Address // the marketplace's own address
}

// NewValidator creates a Validator. core is the address under which the
// marketplace itself must hold the minter capability.
func NewValidator(ctrl Controller, core addr.Address) *Validator {
	return &Validator{ctrl: ctrl, core: core}
}

// ValidateRoles checks that the marketplace holds the minter capability on
// the collection and that caller holds the creator capability. It performs
// reads only.
func (v *Validator) ValidateRoles(ctx context.Context, collection, caller addr.Address) error {
	minter, err := v.ctrl.HasCapability(ctx, collection, v.core, CapabilityMinter)
	if err != nil {
		return fmt.Errorf("%w: minter on %s: %w", ErrCapabilityQuery, collection, err)
	}
	if !minter {
		return fmt.Errorf("%w: %s", ErrNotMinter, collection)
	}

	creator, err := v.ctrl.HasCapability(ctx, collection, caller, CapabilityCreator)
	if err != nil {
		return fmt.Errorf("%w: creator on %s: %w", ErrCapabilityQuery, collection, err)
	}
	if !creator {
		return fmt.Errorf("%w: %s on %s", ErrNotCreator, caller, collection)
	}

	return nil
}
