package access

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ngipiek/rair-dapp/addr"
)

func testAddr(seed byte) addr.Address {
	var a addr.Address
	for i := range a {
		a[i] = seed
	}
	return a
}

func TestValidateRoles_OK(t *testing.T) {
	core := testAddr(0x01)
	creator := testAddr(0x02)
	col := testAddr(0x03)

	var queries []Capability
	ctrl := &MockController{
		HasCapabilityFn: func(_ context.Context, collection, subject addr.Address, capability Capability) (bool, error) {
			assert.Equal(t, col, collection)
			queries = append(queries, capability)
			switch capability {
			case CapabilityMinter:
				return subject == core, nil
			case CapabilityCreator:
				return subject == creator, nil
			}
			return false, nil
		},
	}

	v := NewValidator(ctrl, core)
	require.NoError(t, v.ValidateRoles(context.Background(), col, creator))
	assert.Equal(t, []Capability{CapabilityMinter, CapabilityCreator}, queries)
}

func TestValidateRoles_NotMinter(t *testing.T) {
	ctrl := &MockController{
		HasCapabilityFn: func(_ context.Context, _, _ addr.Address, capability Capability) (bool, error) {
			return capability != CapabilityMinter, nil
		},
	}

	v := NewValidator(ctrl, testAddr(0x01))
	err := v.ValidateRoles(context.Background(), testAddr(0x03), testAddr(0x02))
	assert.ErrorIs(t, err, ErrNotMinter)
}

func TestValidateRoles_NotCreator(t *testing.T) {
	ctrl := &MockController{
		HasCapabilityFn: func(_ context.Context, _, _ addr.Address, capability Capability) (bool, error) {
			return capability == CapabilityMinter, nil
		},
	}

	v := NewValidator(ctrl, testAddr(0x01))
	err := v.ValidateRoles(context.Background(), testAddr(0x03), testAddr(0x02))
	assert.ErrorIs(t, err, ErrNotCreator)
}

func TestValidateRoles_QueryError(t *testing.T) {
	queryErr := errors.New("boom")
	ctrl := &MockController{
		HasCapabilityFn: func(context.Context, addr.Address, addr.Address, Capability) (bool, error) {
			return false, queryErr
		},
	}

	v := NewValidator(ctrl, testAddr(0x01))
	err := v.ValidateRoles(context.Background(), testAddr(0x03), testAddr(0x02))
	assert.ErrorIs(t, err, ErrCapabilityQuery)
	assert.ErrorIs(t, err, queryErr)
}
