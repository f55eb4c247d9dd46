package huffman

import (
	"bytes"
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
)

// Encoder packs text using the codes of a Huffman Tree.
type Encoder struct {
	table   CodeTable
	minSize byte
	maxSize byte
}

// NewEncoder is a convenience function that allocates and initializes an
// Encoder.
func NewEncoder(t *Tree) *Encoder {
	e := new(Encoder)
	e.Init(t)
	return e
}

// Init initializes this Encoder with the codes of the given Tree.  The Tree
// must have been built or parsed.
func (e *Encoder) Init(t *Tree) {
	assert.Assertf(!t.IsEmpty(), "Encoder.Init called with an empty Tree")

	*e = Encoder{
		table:   t.CodeTable(),
		minSize: t.MinSize(),
		maxSize: t.MaxSize(),
	}
}

// Encode returns the Code for a Symbol.  The Code has a Size of 0 if the
// Symbol is not in the Tree.
func (e Encoder) Encode(symbol Symbol) Code {
	assert.Assertf(symbol.IsValid(), "symbol %d >= NumSymbols %d", symbol, NumSymbols)
	return e.table[symbol]
}

// MinSize is the bit length of the shortest legal code.
func (e Encoder) MinSize() byte {
	return e.minSize
}

// MaxSize is the bit length of the longest legal code.
func (e Encoder) MaxSize() byte {
	return e.maxSize
}

// CodeTable returns a copy of the codes used by this Encoder.
func (e Encoder) CodeTable() CodeTable {
	return e.table
}

// SizeBySymbol returns an array containing the bit length for each Symbol in
// the alphabet, 0 for symbols that are not in the Tree.
func (e Encoder) SizeBySymbol() []byte {
	out := make([]byte, NumSymbols)
	for symbol := Symbol(0); symbol < NumSymbols; symbol++ {
		out[symbol] = e.table[symbol].Size
	}
	return out
}

// Pack encodes text into a PackedStream.  Codes are written most significant
// bit first with no alignment between them, and the last byte is padded with
// zero bits.
//
// It returns an error wrapping ErrUnencodableSymbol if text contains a byte
// that has no code, in which case nothing is packed.
//
func (e Encoder) Pack(text []byte) (PackedStream, error) {
	assert.Assertf(e.maxSize != 0, "Encoder.Pack called before Init")

	numBits, err := e.table.BitLength(text)
	if err != nil {
		return PackedStream{}, err
	}

	var buf bytes.Buffer
	buf.Grow(int(numBytesForBits(numBits)))

	bw := newBitWriter(&buf)
	for _, ch := range text {
		if err := bw.WriteCode(e.table[ch]); err != nil {
			return PackedStream{}, fmt.Errorf("huffman: packing: %w", err)
		}
	}
	size, err := bw.Close()
	if err != nil {
		return PackedStream{}, fmt.Errorf("huffman: packing: %w", err)
	}
	assert.Assertf(size == numBits, "packed %d bits, expected %d", size, numBits)

	return PackedStream{Bytes: buf.Bytes(), Bits: size}, nil
}

// Dump writes a programmer-readable debugging dump of the Encoder's current
// state to the given writer.  Symbols without a code are omitted.
func (e Encoder) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Encoder{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", e.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", e.maxSize)
	for symbol := Symbol(0); symbol < NumSymbols; symbol++ {
		if hc := e.table[symbol]; hc.Size != 0 {
			fmt.Fprintf(&buf, "\tEncode(%d) = %s\n", symbol, hc)
		}
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
