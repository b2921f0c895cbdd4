package addr

import "errors"

var (
	// ErrInvalidAddress indicates the input is not a 20-byte hex address.
	ErrInvalidAddress = errors.New("addr: invalid address")

	// ErrBadChecksum indicates a mixed-case address failed checksum validation.
	ErrBadChecksum = errors.New("addr: checksum mismatch")
)
