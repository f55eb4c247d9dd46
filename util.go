package huffman

import (
	mathbits "math/bits"
)

func log2uint32(x uint32) uint32 {
	if x == 0 {
		x = 1
	}
	return uint32(32 - mathbits.LeadingZeros32(x))
}

// numBytesForBits returns ceil(numBits / 8).
func numBytesForBits(numBits uint64) uint64 {
	n := numBits >> 3
	if numBits&7 != 0 {
		n++
	}
	return n
}
