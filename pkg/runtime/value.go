package runtime

import (
	"strings"

	"github.com/holiman/uint256"
)

// Value is the single runtime datum type: a 256-bit unsigned integer.
// It has value semantics and is comparable, so it can key storage maps.
type Value = uint256.Int

// ValueStringMax is the longest string literal that packs into a Value.
const ValueStringMax = 32

func NewValue(x uint64) Value {
	return *uint256.NewInt(x)
}

// ParseNumberValue parses a decimal or 0x-prefixed hexadecimal token.
func ParseNumberValue(text string) (Value, bool) {
	var v uint256.Int
	if strings.HasPrefix(text, "0x") {
		if err := v.SetFromHex(text); err != nil {
			return Value{}, false
		}
		return v, true
	}
	if err := v.SetFromDecimal(text); err != nil {
		return Value{}, false
	}
	return v, true
}

// PackStringValue packs a string of at most 32 bytes left-aligned into a
// Value, zero-padded on the right.
func PackStringValue(text string) (Value, bool) {
	if len(text) > ValueStringMax {
		return Value{}, false
	}
	var buf [ValueStringMax]byte
	copy(buf[:], text)
	var v uint256.Int
	v.SetBytes32(buf[:])
	return v, true
}
