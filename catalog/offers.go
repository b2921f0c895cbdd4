package catalog

import "github.com/Ngipiek/rair-dapp/addr"

// CreateOffer appends a new offer for the collection with the given ranges.
// It fails if the collection address is zero, a live offer already exists,
// or any range bounds are invalid. Validation completes before any state
// changes, so an error leaves the catalog untouched.
//
// Returns the new offer's catalog position.
func (c *Catalog) CreateOffer(collection, node addr.Address, productIndex uint64, inputs []RangeInput) (int, error) {
	if collection.IsZero() {
		return 0, ErrZeroCollection
	}
	if _, err := c.LookupOfferIndex(collection); err == nil {
		return 0, ErrOfferExists
	}
	for _, in := range inputs {
		if err := ValidateRangeBounds(in.Start, in.End); err != nil {
			return 0, err
		}
	}

	offerIndex := len(c.offers)
	c.offers = append(c.offers, Offer{
		CollectionAddress: collection,
		NodeAddress:       node,
		ProductIndex:      productIndex,
	})
	c.index[collection] = offerIndex

	for _, in := range inputs {
		c.appendRange(offerIndex, in)
	}

	return offerIndex, nil
}

// LookupOfferIndex returns the catalog position of the collection's live
// offer. A reverse-index hit is confirmed against the stored collection
// address, so stale or defaulted entries are not trusted.
func (c *Catalog) LookupOfferIndex(collection addr.Address) (int, error) {
	if collection.IsZero() {
		return 0, ErrNoOffer
	}
	i, ok := c.index[collection]
	if !ok || i >= len(c.offers) {
		return 0, ErrNoOffer
	}
	if c.offers[i].CollectionAddress != collection {
		return 0, ErrNoOffer
	}
	return i, nil
}

// Offer returns the offer at the given catalog position.
func (c *Catalog) Offer(offerIndex int) (*Offer, error) {
	if offerIndex < 0 || offerIndex >= len(c.offers) {
		return nil, ErrIndexOutOfBounds
	}
	return &c.offers[offerIndex], nil
}

// OfferSummary projects the stored fields of an offer.
func (c *Catalog) OfferSummary(offerIndex int) (*OfferSummary, error) {
	off, err := c.Offer(offerIndex)
	if err != nil {
		return nil, err
	}
	return &OfferSummary{
		CollectionAddress: off.CollectionAddress,
		NodeAddress:       off.NodeAddress,
		ProductIndex:      off.ProductIndex,
		RangeCount:        len(off.Ranges),
	}, nil
}

// RangeSummary projects the stored fields of one range.
func (c *Catalog) RangeSummary(offerIndex, rangeIndex int) (*RangeSummary, error) {
	off, err := c.Offer(offerIndex)
	if err != nil {
		return nil, err
	}
	if rangeIndex < 0 || rangeIndex >= len(off.Ranges) {
		return nil, ErrIndexOutOfBounds
	}
	r := &off.Ranges[rangeIndex]
	return &RangeSummary{
		Start:           r.Start,
		End:             r.End,
		Price:           r.Price,
		Name:            r.Name,
		RemainingSupply: r.RemainingSupply,
	}, nil
}

// RemoveLastOffer undoes the most recent CreateOffer. It exists so the
// engine can back out a listing whose journal append failed; it must not be
// used once any later mutation has happened.
func (c *Catalog) RemoveLastOffer() {
	if len(c.offers) == 0 {
		return
	}
	last := len(c.offers) - 1
	off := &c.offers[last]
	for range off.Ranges {
		c.openSales--
	}
	if i, ok := c.index[off.CollectionAddress]; ok && i == last {
		delete(c.index, off.CollectionAddress)
	}
	c.offers = c.offers[:last]
}
