package catalog

import (
	"fmt"
	"math"
)

// ValidateRangeBounds fails unless start is strictly below end. The full
// uint64 range [0, MaxUint64] is also rejected: its identifier count is
// 2^64 and would wrap the supply counter to zero.
func ValidateRangeBounds(start, end uint64) error {
	if start >= end {
		return fmt.Errorf("%w: start %d, end %d", ErrInvalidRangeBounds, start, end)
	}
	if end-start == math.MaxUint64 {
		return fmt.Errorf("%w: span [%d,%d] overflows the supply counter",
			ErrInvalidRangeBounds, start, end)
	}
	return nil
}

// BuildRangeInputs zips the four batch input arrays into RangeInputs.
// All arrays must have equal length; on mismatch no inputs are returned.
func BuildRangeInputs(starts, ends, prices []uint64, names []string) ([]RangeInput, error) {
	n := len(starts)
	if len(ends) != n || len(prices) != n || len(names) != n {
		return nil, fmt.Errorf("%w: starts=%d ends=%d prices=%d names=%d",
			ErrRangeLengthMismatch, len(starts), len(ends), len(prices), len(names))
	}
	inputs := make([]RangeInput, n)
	for i := 0; i < n; i++ {
		inputs[i] = RangeInput{Start: starts[i], End: ends[i], Price: prices[i], Name: names[i]}
	}
	return inputs, nil
}

// AppendRange validates and appends one range to the offer, incrementing the
// open-sale counter. Returns the new range's position within the offer.
func (c *Catalog) AppendRange(offerIndex int, in RangeInput) (int, error) {
	first, err := c.AppendRanges(offerIndex, []RangeInput{in})
	return first, err
}

// AppendRanges validates and appends a batch of ranges to the offer.
// All bounds are validated before any range is created, so an error leaves
// the offer untouched. Returns the position of the first new range.
func (c *Catalog) AppendRanges(offerIndex int, inputs []RangeInput) (int, error) {
	off, err := c.Offer(offerIndex)
	if err != nil {
		return 0, err
	}
	for _, in := range inputs {
		if err := ValidateRangeBounds(in.Start, in.End); err != nil {
			return 0, err
		}
	}

	first := len(off.Ranges)
	for _, in := range inputs {
		c.appendRange(offerIndex, in)
	}
	return first, nil
}

// appendRange appends a pre-validated range and bumps the open-sale counter.
func (c *Catalog) appendRange(offerIndex int, in RangeInput) {
	off := &c.offers[offerIndex]
	off.Ranges = append(off.Ranges, Range{
		Start:           in.Start,
		End:             in.End,
		Price:           in.Price,
		Name:            in.Name,
		RemainingSupply: in.End - in.Start + 1,
	})
	c.openSales++
}

// UpdateRange shrinks a range's bounds and replaces its price and name.
// Expanding either bound fails with ErrRangeExpansion. The remaining supply
// is reduced by the bound-shrink delta so partially sold ranges keep a
// correct count.
//
// Returns the pre-update range (for rollback) and the post-update supply.
func (c *Catalog) UpdateRange(offerIndex, rangeIndex int, newStart, newEnd, price uint64, name string) (Range, uint64, error) {
	off, err := c.Offer(offerIndex)
	if err != nil {
		return Range{}, 0, err
	}
	if rangeIndex < 0 || rangeIndex >= len(off.Ranges) {
		return Range{}, 0, ErrIndexOutOfBounds
	}
	if err := ValidateRangeBounds(newStart, newEnd); err != nil {
		return Range{}, 0, err
	}

	r := &off.Ranges[rangeIndex]
	if newStart < r.Start || newEnd > r.End {
		return Range{}, 0, fmt.Errorf("%w: [%d,%d] -> [%d,%d]",
			ErrRangeExpansion, r.Start, r.End, newStart, newEnd)
	}

	shrink := r.Span() - (newEnd - newStart)
	if shrink > r.RemainingSupply {
		return Range{}, 0, fmt.Errorf("%w: shrink %d, remaining %d",
			ErrSupplyUnderflow, shrink, r.RemainingSupply)
	}

	prev := *r
	r.Start = newStart
	r.End = newEnd
	r.Price = price
	r.Name = name
	r.RemainingSupply -= shrink

	return prev, r.RemainingSupply, nil
}

// RestoreRange puts back a range captured before UpdateRange. Rollback
// helper for the engine; see RemoveLastOffer.
func (c *Catalog) RestoreRange(offerIndex, rangeIndex int, prev Range) {
	if offerIndex < 0 || offerIndex >= len(c.offers) {
		return
	}
	off := &c.offers[offerIndex]
	if rangeIndex < 0 || rangeIndex >= len(off.Ranges) {
		return
	}
	off.Ranges[rangeIndex] = prev
}

// RemoveLastRange undoes the most recent AppendRange on the offer. Rollback
// helper for the engine; see RemoveLastOffer.
func (c *Catalog) RemoveLastRange(offerIndex int) {
	if offerIndex < 0 || offerIndex >= len(c.offers) {
		return
	}
	off := &c.offers[offerIndex]
	if len(off.Ranges) == 0 {
		return
	}
	off.Ranges = off.Ranges[:len(off.Ranges)-1]
	c.openSales--
}

// ValidatePurchase checks that tokenID can be bought from the addressed
// range. It returns the offer and range for the caller's settlement logic.
// Validation order: live offer, range index, remaining supply, token bounds.
func (c *Catalog) ValidatePurchase(offerIndex, rangeIndex int, tokenID uint64) (*Offer, *Range, error) {
	if offerIndex < 0 || offerIndex >= len(c.offers) {
		return nil, nil, ErrInvalidOffer
	}
	off := &c.offers[offerIndex]
	if off.CollectionAddress.IsZero() {
		return nil, nil, ErrInvalidOffer
	}
	if rangeIndex < 0 || rangeIndex >= len(off.Ranges) {
		return nil, nil, ErrInvalidRange
	}
	r := &off.Ranges[rangeIndex]
	if r.RemainingSupply == 0 {
		return nil, nil, ErrRangeSoldOut
	}
	if !r.Contains(tokenID) {
		return nil, nil, fmt.Errorf("%w: token %d, bounds [%d,%d]",
			ErrTokenOutsideRange, tokenID, r.Start, r.End)
	}
	return off, r, nil
}

// DecrementSupply records one sale on the range. Returns the post-decrement
// supply and whether the range just sold out (which also decrements the
// open-sale counter).
func (c *Catalog) DecrementSupply(offerIndex, rangeIndex int) (uint64, bool, error) {
	off, err := c.Offer(offerIndex)
	if err != nil {
		return 0, false, ErrInvalidOffer
	}
	if rangeIndex < 0 || rangeIndex >= len(off.Ranges) {
		return 0, false, ErrInvalidRange
	}
	r := &off.Ranges[rangeIndex]
	if r.RemainingSupply == 0 {
		return 0, false, ErrRangeSoldOut
	}

	r.RemainingSupply--
	soldOut := r.RemainingSupply == 0
	if soldOut {
		c.openSales--
	}
	return r.RemainingSupply, soldOut, nil
}

// RevertSale restores the supply decrement of a failed purchase, including
// the open-sale counter when the sale had crossed to zero.
func (c *Catalog) RevertSale(offerIndex, rangeIndex int) {
	if offerIndex < 0 || offerIndex >= len(c.offers) {
		return
	}
	off := &c.offers[offerIndex]
	if rangeIndex < 0 || rangeIndex >= len(off.Ranges) {
		return
	}
	r := &off.Ranges[rangeIndex]
	if r.RemainingSupply == 0 {
		c.openSales++
	}
	r.RemainingSupply++
}
