package catalog

import "errors"

var (
	// ErrInvalidRangeBounds indicates start is not strictly below end.
	ErrInvalidRangeBounds = errors.New("catalog: invalid range bounds")

	// ErrRangeLengthMismatch indicates the batch input arrays differ in length.
	ErrRangeLengthMismatch = errors.New("catalog: range input length mismatch")

	// ErrOfferExists indicates the collection already has a live offer.
	ErrOfferExists = errors.New("catalog: offer already exists for collection")

	// ErrNoOffer indicates no live offer exists for the collection.
	ErrNoOffer = errors.New("catalog: no offer for collection")

	// ErrZeroCollection indicates the collection address is zero.
	ErrZeroCollection = errors.New("catalog: zero collection address")

	// ErrIndexOutOfBounds indicates an offer or range index is out of range.
	ErrIndexOutOfBounds = errors.New("catalog: index out of bounds")

	// ErrRangeExpansion indicates an update tried to grow a range's bounds.
	ErrRangeExpansion = errors.New("catalog: range expansion not allowed")

	// ErrSupplyUnderflow indicates a bounds shrink exceeds the remaining supply.
	ErrSupplyUnderflow = errors.New("catalog: shrink exceeds remaining supply")

	// ErrInvalidOffer indicates the offer index does not address a live offer.
	ErrInvalidOffer = errors.New("catalog: invalid offer")

	// ErrInvalidRange indicates the range index is out of bounds for the offer.
	ErrInvalidRange = errors.New("catalog: invalid range")

	// ErrRangeSoldOut indicates the range has no remaining supply.
	ErrRangeSoldOut = errors.New("catalog: range sold out")

	// ErrTokenOutsideRange indicates the token identifier is outside the
	// range's bounds.
	ErrTokenOutsideRange = errors.New("catalog: token outside range")
)
