package huffman

import (
	"fmt"
)

// PackedStream is the output of Encoder.Pack: the packed bytes plus the exact
// number of meaningful bits in them.  The final byte is zero-padded when Bits
// is not a multiple of 8; the padding is not part of the data.
type PackedStream struct {
	Bytes []byte
	Bits  uint64
}

// Validate checks that Bytes holds exactly ceil(Bits/8) bytes.
func (ps PackedStream) Validate() error {
	want := numBytesForBits(ps.Bits)
	if got := uint64(len(ps.Bytes)); got < want {
		return fmt.Errorf("%w: %d bits need %d bytes, have %d", ErrTruncatedStream, ps.Bits, want, got)
	} else if got > want {
		return fmt.Errorf("huffman: %d bits need %d bytes, have %d", ps.Bits, want, got)
	}
	return nil
}

// PaddingBits returns the number of padding bits in the final byte.
func (ps PackedStream) PaddingBits() uint {
	return uint(numBytesForBits(ps.Bits)*8 - ps.Bits)
}

// String returns a short description of this PackedStream.
func (ps PackedStream) String() string {
	return fmt.Sprintf("(packed stream of %d bits in %d bytes)", ps.Bits, len(ps.Bytes))
}
