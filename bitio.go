package huffman

import (
	"errors"
	"io"

	"github.com/icza/bitio"
)

// bitWriter packs Codes into bytes, most significant bit first, with a single
// cursor that runs across Code boundaries.
type bitWriter struct {
	w    *bitio.Writer
	size uint64
}

func newBitWriter(out io.Writer) *bitWriter {
	return &bitWriter{w: bitio.NewWriter(out)}
}

// WriteCode appends the bits of hc, first bit first.
func (bw *bitWriter) WriteCode(hc Code) error {
	full := hc.Size >> 3
	for i := byte(0); i < full; i++ {
		if err := bw.w.WriteByte(hc.Bits[i]); err != nil {
			return err
		}
	}
	if partial := hc.Size & 7; partial != 0 {
		if err := bw.w.WriteBits(uint64(hc.Bits[full]>>(8-partial)), partial); err != nil {
			return err
		}
	}
	bw.size += uint64(hc.Size)
	return nil
}

// Close flushes the last byte, zero-padded, and returns the number of bits
// written not counting the padding.
func (bw *bitWriter) Close() (uint64, error) {
	err := bw.w.Close()
	return bw.size, err
}

// bitReader reads back exactly the meaningful bits of a packed stream.  The
// padding at the end of the last byte is never returned.
type bitReader struct {
	r         *bitio.Reader
	remaining uint64
}

func newBitReader(in io.Reader, numBits uint64) *bitReader {
	return &bitReader{r: bitio.NewReader(in), remaining: numBits}
}

// ReadBit returns the next bit.  It returns io.EOF once every meaningful bit
// has been read, and io.ErrUnexpectedEOF if the input ends before that.
func (br *bitReader) ReadBit() (byte, error) {
	if br.remaining == 0 {
		return 0, io.EOF
	}
	b, err := br.r.ReadBool()
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return 0, err
	}
	br.remaining--
	if b {
		return 1, nil
	}
	return 0, nil
}
