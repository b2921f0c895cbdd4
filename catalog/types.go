// Package catalog owns the marketplace's offer and range state: the ordered
// list of offers, the per-collection reverse index, and the aggregate count
// of ranges still open for sale.
//
// The Catalog is a plain aggregate with no internal locking. It is owned
// exclusively by the settlement engine, which serializes every public
// operation; see the settlement package.
package catalog

import "github.com/Ngipiek/rair-dapp/addr"

// Range is a contiguous block of token identifiers offered at one price.
// Bounds are inclusive: [Start, End].
type Range struct {
	Start uint64 `json:"start"`
	End   uint64 `json:"end"`
	Price uint64 `json:"price"` // per token, native currency smallest unit
	Name  string `json:"name"`

	// RemainingSupply counts the identifiers in [Start, End] not yet minted
	// through this offer. Initialized to End-Start+1, decremented by exactly
	// one per settled purchase.
	RemainingSupply uint64 `json:"remaining_supply"`
}

// Span returns End - Start (one less than the number of identifiers).
func (r *Range) Span() uint64 {
	return r.End - r.Start
}

// Contains reports whether tokenID falls inside the range's bounds.
func (r *Range) Contains(tokenID uint64) bool {
	return tokenID >= r.Start && tokenID <= r.End
}

// Offer is one collection's marketplace listing.
type Offer struct {
	// CollectionAddress identifies the external token collection.
	// Immutable after creation; a zero address marks a dead slot.
	CollectionAddress addr.Address `json:"collection_address"`

	// NodeAddress is the payee for the node-fee share. It has no setter;
	// changing it requires replacing the offer.
	NodeAddress addr.Address `json:"node_address"`

	// ProductIndex identifies the sub-collection inside the external contract.
	ProductIndex uint64 `json:"product_index"`

	// Ranges is append-only; ranges are never removed, only exhausted.
	Ranges []Range `json:"ranges"`
}

// RangeInput describes one range to create.
type RangeInput struct {
	Start uint64
	End   uint64
	Price uint64
	Name  string
}

// OfferSummary is a read-only projection of an offer's stored fields.
type OfferSummary struct {
	CollectionAddress addr.Address `json:"collection_address"`
	NodeAddress       addr.Address `json:"node_address"`
	ProductIndex      uint64       `json:"product_index"`
	RangeCount        int          `json:"range_count"`
}

// RangeSummary is a read-only projection of a range's stored fields.
type RangeSummary struct {
	Start           uint64 `json:"start"`
	End             uint64 `json:"end"`
	Price           uint64 `json:"price"`
	Name            string `json:"name"`
	RemainingSupply uint64 `json:"remaining_supply"`
}

// Catalog holds all offers plus the reverse index and open-sale counter.
type Catalog struct {
	offers []Offer

	// index maps a collection address to its offer position. Entries are
	// written on creation and never cleared, so a hit must be confirmed
	// against the stored CollectionAddress before being trusted.
	index map[addr.Address]int

	openSales uint64
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{index: make(map[addr.Address]int)}
}

// Len returns the number of offers ever created.
func (c *Catalog) Len() int {
	return len(c.offers)
}

// OpenSales returns the count of ranges with remaining supply above zero.
func (c *Catalog) OpenSales() uint64 {
	return c.openSales
}
