package collection

import (
	"context"
	"errors"
	"fmt"

	"github.com/Ngipiek/rair-dapp/addr"
)

// Service method implementations over the JSON-RPC client. Method names and
// parameter shapes follow the collection service's wire protocol; addresses
// travel as checksummed hex strings.

// GetCollectionInfo returns product-level supply information.
func (c *RPCClient) GetCollectionInfo(ctx context.Context, collection addr.Address, productIndex uint64) (*Info, error) {
	var info Info
	err := c.Call(ctx, "getcollectioninfo",
		[]interface{}{collection.String(), productIndex}, &info)
	if err != nil {
		return nil, err
	}
	if info.EndingToken < info.StartingToken {
		return nil, fmt.Errorf("%w: ending token %d below starting token %d",
			ErrInvalidResponse, info.EndingToken, info.StartingToken)
	}
	return &info, nil
}

// Mint issues tokenID of the product to the recipient. Service-side
// rejections ("already minted", "not authorized") map to ErrMintRejected.
func (c *RPCClient) Mint(ctx context.Context, collection, to addr.Address, productIndex, tokenID uint64) error {
	err := c.Call(ctx, "mint",
		[]interface{}{collection.String(), to.String(), productIndex, tokenID}, nil)
	var rpcErr *RPCError
	if errors.As(err, &rpcErr) {
		return fmt.Errorf("%w: token %d: %w", ErrMintRejected, tokenID, err)
	}
	return err
}

// SupportsRoyalty reports whether the collection exposes the royalty
// interface.
func (c *RPCClient) SupportsRoyalty(ctx context.Context, collection addr.Address) (bool, error) {
	var supports bool
	err := c.Call(ctx, "supportsroyalty", []interface{}{collection.String()}, &supports)
	if err != nil {
		return false, err
	}
	return supports, nil
}

// royaltyInfoResult is the wire shape of a royaltyinfo response.
type royaltyInfoResult struct {
	Receiver string `json:"receiver"`
	Amount   uint64 `json:"amount"`
}

// RoyaltyInfo returns the royalty receiver and reported amount for a sale.
func (c *RPCClient) RoyaltyInfo(ctx context.Context, collection addr.Address, tokenID, salePrice uint64, metadata string) (addr.Address, uint64, error) {
	var res royaltyInfoResult
	err := c.Call(ctx, "royaltyinfo",
		[]interface{}{collection.String(), tokenID, salePrice, metadata}, &res)
	if err != nil {
		return addr.Zero, 0, err
	}

	receiver, err := addr.Parse(res.Receiver)
	if err != nil {
		return addr.Zero, 0, fmt.Errorf("%w: royalty receiver %q: %w",
			ErrInvalidResponse, res.Receiver, err)
	}
	return receiver, res.Amount, nil
}
