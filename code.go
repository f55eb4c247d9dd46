package huffman

import (
	"fmt"
	"strings"

	"github.com/chronos-tachyon/assert"
)

// MaxCodeSize is the maximum number of bits in a Code.  A Tree over
// NumSymbols leaves is never deeper than NumSymbols-1.
const MaxCodeSize = NumSymbols

// Code represents a sequence of bits.
//
// Leading zero bits are significant, so a Code is not a number: "01" and "1"
// are different codes.
type Code struct {
	// Size holds the number of valid bits.
	Size byte

	// Bits holds the actual values of the bits, packed most significant
	// bit first: the first bit of the code is the high bit of Bits[0].
	// Bits past Size are always zero.
	Bits [MaxCodeSize / 8]byte
}

// MakeCode is a convenience function that constructs a Code of up to 64 bits.
// The first bit of the code is bit (size-1) of bits, i.e. the code reads the
// same as bits written in binary with size digits.
func MakeCode(size byte, bits uint64) Code {
	assert.Assertf(size <= 64, "size %d > 64", size)
	var hc Code
	for i := int(size) - 1; i >= 0; i-- {
		hc = hc.Append(byte(bits>>uint(i)) & 1)
	}
	return hc
}

// Bit returns the i'th bit of this Code, counting from the first.
func (hc Code) Bit(i byte) byte {
	assert.Assertf(i < hc.Size, "bit index %d out of range for code of size %d", i, hc.Size)
	return (hc.Bits[i>>3] >> (7 - (i & 7))) & 1
}

// Append returns the Code with one more bit at the end.
func (hc Code) Append(bit byte) Code {
	assert.Assertf(hc.Size < MaxCodeSize, "code already holds %d bits", hc.Size)
	if bit != 0 {
		hc.Bits[hc.Size>>3] |= 0x80 >> (hc.Size & 7)
	}
	hc.Size++
	return hc
}

// HasPrefix returns true iff prefix is a prefix of this Code.  Every Code has
// the empty Code as a prefix.
func (hc Code) HasPrefix(prefix Code) bool {
	if prefix.Size > hc.Size {
		return false
	}
	for i := byte(0); i < prefix.Size; i++ {
		if hc.Bit(i) != prefix.Bit(i) {
			return false
		}
	}
	return true
}

// String returns the string representation of this Code.
func (hc Code) String() string {
	var buf strings.Builder
	buf.WriteByte('"')
	for i := byte(0); i < hc.Size; i++ {
		buf.WriteByte('0' + hc.Bit(i))
	}
	buf.WriteByte('"')
	return buf.String()
}

var _ fmt.Stringer = Code{}
