package access

import (
	"context"

	"github.com/Ngipiek/rair-dapp/addr"
)

// MockController is a test double for Controller.
// HasCapabilityFn must be set before the method is called.
type MockController struct {
	HasCapabilityFn func(ctx context.Context, collection, subject addr.Address, capability Capability) (bool, error)
}

func (m *MockController) HasCapability(ctx context.Context, collection, subject addr.Address, capability Capability) (bool, error) {
	return m.HasCapabilityFn(ctx, collection, subject, capability)
}

// GrantAll returns a Controller that grants every capability to everyone.
func GrantAll() *MockController {
	return &MockController{
		HasCapabilityFn: func(context.Context, addr.Address, addr.Address, Capability) (bool, error) {
			return true, nil
		},
	}
}
