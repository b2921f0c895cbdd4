package access

import "errors"

var (
	// ErrNotMinter indicates the marketplace lacks the minter capability on
	// the target collection.
	ErrNotMinter = errors.New("access: not authorized as minter")

	// ErrNotCreator indicates the caller lacks the creator capability on the
	// target collection.
	ErrNotCreator = errors.New("access: not authorized as creator")

	// ErrCapabilityQuery indicates the access-control service call failed.
	ErrCapabilityQuery = errors.New("access: capability query failed")
)
