// Package addr provides the 20-byte address type used to identify
// collections, payees, and callers throughout the marketplace.
package addr

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/sha3"
)

// Size is the length of an address in bytes.
const Size = 20

// Address is a 20-byte account or contract identifier.
type Address [Size]byte

// Zero is the all-zero address, used to mark dead offer slots.
var Zero Address

// IsZero returns true if the address is all zeroes.
func (a Address) IsZero() bool {
	return a == Zero
}

// Bytes returns the address as a byte slice.
func (a Address) Bytes() []byte {
	return a[:]
}

// String returns the 0x-prefixed, checksum-cased hex encoding.
func (a Address) String() string {
	return "0x" + checksumHex(hex.EncodeToString(a[:]))
}

// FromBytes converts a byte slice to an Address.
func FromBytes(b []byte) (Address, error) {
	var a Address
	if len(b) != Size {
		return a, ErrInvalidAddress
	}
	copy(a[:], b)
	return a, nil
}

// Parse decodes a hex address string. The 0x prefix is optional. All-lower
// and all-upper encodings are accepted as-is; mixed-case encodings must carry
// a valid checksum casing.
func Parse(s string) (Address, error) {
	var a Address
	h := strings.TrimPrefix(s, "0x")
	if len(h) != Size*2 {
		return a, ErrInvalidAddress
	}

	b, err := hex.DecodeString(h)
	if err != nil {
		return a, ErrInvalidAddress
	}

	if h != strings.ToLower(h) && h != strings.ToUpper(h) {
		if h != checksumHex(strings.ToLower(h)) {
			return a, ErrBadChecksum
		}
	}

	copy(a[:], b)
	return a, nil
}

// MarshalText implements encoding.TextMarshaler using the checksum-cased
// hex encoding, so addresses serialize as readable strings in JSON payloads.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// checksumHex applies checksum casing to a lowercase hex string: each hex
// letter is uppercased when the corresponding nibble of keccak256(lowerHex)
// is 8 or greater.
func checksumHex(lowerHex string) string {
	lowerHex = strings.ToLower(lowerHex)

	hasher := sha3.NewLegacyKeccak256()
	hasher.Write([]byte(lowerHex))
	sum := hasher.Sum(nil)

	out := []byte(lowerHex)
	for i, c := range out {
		if c < 'a' || c > 'f' {
			continue
		}
		nibble := sum[i/2]
		if i%2 == 0 {
			nibble >>= 4
		}
		if nibble&0x0f >= 8 {
			out[i] = c - 'a' + 'A'
		}
	}
	return string(out)
}
