// Package event defines the domain events committed by the marketplace core
// and the sink interface that receives them.
package event

import (
	"sync"

	"github.com/Ngipiek/rair-dapp/addr"
)

// Kind identifies an event type in the journal.
type Kind string

// Event kinds, one per committed state change.
const (
	KindOfferAdded         Kind = "offer_added"
	KindOfferUpdated       Kind = "offer_updated"
	KindRangeAppended      Kind = "range_appended"
	KindTokenMinted        Kind = "token_minted"
	KindRangeSoldOut       Kind = "range_sold_out"
	KindTreasuryChanged    Kind = "treasury_changed"
	KindTreasuryFeeChanged Kind = "treasury_fee_changed"
	KindNodeFeeChanged     Kind = "node_fee_changed"
	KindRetainedFunds      Kind = "retained_funds"
	KindRetainedWithdrawn  Kind = "retained_withdrawn"
)

// OfferAdded is emitted when a collection's offer is listed.
type OfferAdded struct {
	Collection    addr.Address `json:"collection"`
	ProductIndex  uint64       `json:"product_index"`
	RangesCreated int          `json:"ranges_created"`
	CatalogIndex  int          `json:"catalog_index"`
}

// OfferUpdated is emitted when a range's bounds, price, or name change.
type OfferUpdated struct {
	Collection      addr.Address `json:"collection"`
	OfferIndex      int          `json:"offer_index"`
	RangeIndex      int          `json:"range_index"`
	RemainingSupply uint64       `json:"remaining_supply"`
	Price           uint64       `json:"price"`
	Name            string       `json:"name"`
}

// RangeAppended is emitted once per range added to an offer.
type RangeAppended struct {
	Collection   addr.Address `json:"collection"`
	ProductIndex uint64       `json:"product_index"`
	OfferIndex   int          `json:"offer_index"`
	RangeIndex   int          `json:"range_index"`
	Start        uint64       `json:"start"`
	End          uint64       `json:"end"`
	Price        uint64       `json:"price"`
	Name         string       `json:"name"`
}

// TokenMinted is emitted when a purchase settles.
type TokenMinted struct {
	Buyer      addr.Address `json:"buyer"`
	Collection addr.Address `json:"collection"`
	OfferIndex int          `json:"offer_index"`
	RangeIndex int          `json:"range_index"`
	TokenID    uint64       `json:"token_id"`
}

// RangeSoldOut is emitted when a range's remaining supply reaches zero.
type RangeSoldOut struct {
	Collection addr.Address `json:"collection"`
	OfferIndex int          `json:"offer_index"`
	RangeIndex int          `json:"range_index"`
}

// TreasuryChanged is emitted when the treasury payee is replaced.
type TreasuryChanged struct {
	Treasury addr.Address `json:"treasury"`
}

// TreasuryFeeChanged is emitted when the treasury fee rate is replaced.
type TreasuryFeeChanged struct {
	Rate uint64 `json:"rate"`
}

// NodeFeeChanged is emitted when the node fee rate is replaced.
type NodeFeeChanged struct {
	Rate uint64 `json:"rate"`
}

// RetainedFunds is emitted when a sale without royalty support leaves the
// creator share held by the core.
type RetainedFunds struct {
	Collection addr.Address `json:"collection"`
	Amount     uint64       `json:"amount"`
}

// RetainedWithdrawn is emitted when the operator withdraws retained funds.
type RetainedWithdrawn struct {
	Collection addr.Address `json:"collection"`
	To         addr.Address `json:"to"`
	Amount     uint64       `json:"amount"`
}

// Sink receives events as operations commit. A Publish error aborts the
// operation that produced the event, so implementations must not fail after
// partially recording it.
type Sink interface {
	Publish(kind Kind, payload any) error
}

// NopSink discards all events.
type NopSink struct{}

// Publish implements Sink.
func (NopSink) Publish(Kind, any) error { return nil }

// Record is one event captured by MemSink.
type Record struct {
	Kind    Kind
	Payload any
}

// MemSink is an in-memory Sink for testing.
type MemSink struct {
	mu      sync.Mutex
	records []Record
}

// Publish implements Sink.
func (s *MemSink) Publish(kind Kind, payload any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, Record{Kind: kind, Payload: payload})
	return nil
}

// Records returns a copy of all captured events in publish order.
func (s *MemSink) Records() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// ByKind returns the captured events of one kind, in publish order.
func (s *MemSink) ByKind(kind Kind) []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Record
	for _, r := range s.records {
		if r.Kind == kind {
			out = append(out, r)
		}
	}
	return out
}
