// Package collection talks to the external token collection service: supply
// queries, minting, and royalty lookups. The marketplace core depends only
// on the Service interface; the JSON-RPC client and the mock both implement
// it.
package collection

import (
	"context"

	"github.com/Ngipiek/rair-dapp/addr"
)

// Info describes one product (sub-collection) inside a collection contract.
type Info struct {
	StartingToken     uint64 `json:"starting_token"`
	EndingToken       uint64 `json:"ending_token"`
	MintableRemaining uint64 `json:"mintable_remaining"`
}

// Service is the collaborator interface consumed by the settlement engine.
// The collection is the source of truth for identifier-level mint status;
// the engine only tracks per-range counts.
type Service interface {
	// GetCollectionInfo returns product-level supply information.
	GetCollectionInfo(ctx context.Context, collection addr.Address, productIndex uint64) (*Info, error)

	// Mint issues tokenID of the product to the recipient. It fails if the
	// identifier was already minted or the caller lacks mint rights.
	Mint(ctx context.Context, collection, to addr.Address, productIndex, tokenID uint64) error

	// SupportsRoyalty reports whether the collection exposes the royalty
	// interface.
	SupportsRoyalty(ctx context.Context, collection addr.Address) (bool, error)

	// RoyaltyInfo returns the royalty receiver and reported amount for a
	// sale. metadata is opaque sale context (the range name).
	RoyaltyInfo(ctx context.Context, collection addr.Address, tokenID, salePrice uint64, metadata string) (addr.Address, uint64, error)
}
