package collection

import (
	"context"

	"github.com/Ngipiek/rair-dapp/addr"
)

// MockService is a test double for Service.
// The function field for each method used must be set before the call.
type MockService struct {
	GetCollectionInfoFn func(ctx context.Context, collection addr.Address, productIndex uint64) (*Info, error)
	MintFn              func(ctx context.Context, collection, to addr.Address, productIndex, tokenID uint64) error
	SupportsRoyaltyFn   func(ctx context.Context, collection addr.Address) (bool, error)
	RoyaltyInfoFn       func(ctx context.Context, collection addr.Address, tokenID, salePrice uint64, metadata string) (addr.Address, uint64, error)
}

func (m *MockService) GetCollectionInfo(ctx context.Context, collection addr.Address, productIndex uint64) (*Info, error) {
	return m.GetCollectionInfoFn(ctx, collection, productIndex)
}

func (m *MockService) Mint(ctx context.Context, collection, to addr.Address, productIndex, tokenID uint64) error {
	return m.MintFn(ctx, collection, to, productIndex, tokenID)
}

func (m *MockService) SupportsRoyalty(ctx context.Context, collection addr.Address) (bool, error) {
	return m.SupportsRoyaltyFn(ctx, collection)
}

func (m *MockService) RoyaltyInfo(ctx context.Context, collection addr.Address, tokenID, salePrice uint64, metadata string) (addr.Address, uint64, error) {
	return m.RoyaltyInfoFn(ctx, collection, tokenID, salePrice, metadata)
}
