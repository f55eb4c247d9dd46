package huffman

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
)

// Decoder unpacks text by walking a Huffman Tree one bit at a time.
type Decoder struct {
	tree *Tree
}

// NewDecoder is a convenience function that allocates and initializes a
// Decoder.
func NewDecoder(t *Tree) *Decoder {
	d := new(Decoder)
	d.Init(t)
	return d
}

// Init initializes this Decoder with the given Tree.  The Tree must have been
// built or parsed, and must not be modified while the Decoder is in use.
func (d *Decoder) Init(t *Tree) {
	assert.Assertf(!t.IsEmpty(), "Decoder.Init called with an empty Tree")
	*d = Decoder{tree: t}
}

// Decode attempts to decode a Huffman code into a Symbol.
//
// If the Decode is completely successful, symbol is valid and
// minSize == maxSize == hc.Size.
//
// If the Decode fails due to insufficient bits, symbol == InvalidSymbol and
// the complete code is between minSize and maxSize bits long.
//
// If the Decode fails due to unreasonable input, i.e. hc continues past a
// leaf, symbol == InvalidSymbol and minSize == maxSize == 0.
//
func (d Decoder) Decode(hc Code) (symbol Symbol, minSize byte, maxSize byte) {
	t := d.tree
	id := t.root
	for i := byte(0); i < hc.Size; i++ {
		if t.nodes[id].kind == leafNode {
			return InvalidSymbol, 0, 0
		}
		id = t.child(id, hc.Bit(i))
	}

	n := &t.nodes[id]
	if n.kind == leafNode {
		return n.symbol, hc.Size, hc.Size
	}
	return InvalidSymbol, hc.Size + n.minHeight, hc.Size + n.maxHeight
}

// MinSize is the bit length of the shortest legal code.
func (d Decoder) MinSize() byte {
	return d.tree.MinSize()
}

// MaxSize is the bit length of the longest legal code.
func (d Decoder) MaxSize() byte {
	return d.tree.MaxSize()
}

// Unpack decodes exactly ps.Bits bits of ps.Bytes.  Bits past ps.Bits, such as
// the padding of the last byte, are never read.
//
// It returns an error wrapping ErrTruncatedStream if ps.Bytes is too short to
// hold ps.Bits bits, and one wrapping ErrIncompleteCode if the last
// meaningful bit does not finish a code.
//
func (d Decoder) Unpack(ps PackedStream) ([]byte, error) {
	t := d.tree
	assert.Assertf(!t.IsEmpty(), "Decoder.Unpack called before Init")

	if want, got := numBytesForBits(ps.Bits), uint64(len(ps.Bytes)); got < want {
		return nil, fmt.Errorf("%w: %d bits need %d bytes, have %d", ErrTruncatedStream, ps.Bits, want, got)
	}

	out := make([]byte, 0, ps.Bits/uint64(t.MinSize()))
	br := newBitReader(bytes.NewReader(ps.Bytes), ps.Bits)
	id := t.root
	for {
		bit, err := br.ReadBit()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTruncatedStream, err)
		}

		id = t.child(id, bit)
		if n := &t.nodes[id]; n.kind == leafNode {
			out = append(out, byte(n.symbol))
			id = t.root
		}
	}

	if id != t.root {
		return nil, fmt.Errorf("%w: %d symbols decoded from %d bits", ErrIncompleteCode, len(out), ps.Bits)
	}
	return out, nil
}

// Dump writes a programmer-readable debugging dump of the Decoder's current
// state to the given writer.  Every node of the Tree is listed by its path
// from the root, shortest paths first.
func (d Decoder) Dump(w io.Writer) (int64, error) {
	t := d.tree

	var buf bytes.Buffer
	buf.WriteString("Decoder{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", t.MinSize())
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", t.MaxSize())

	type queueItem struct {
		id nodeID
		hc Code
	}

	queue := make([]queueItem, 0, len(t.nodes))
	queue = append(queue, queueItem{id: t.root})
	for len(queue) != 0 {
		item := queue[0]
		queue = queue[1:]

		n := &t.nodes[item.id]
		sym, minSize, maxSize := d.Decode(item.hc)
		fmt.Fprintf(&buf, "\tDecode(%s) = {%d, %d, %d}\n", item.hc, symbolOrMinusOne(sym), minSize, maxSize)
		if n.kind == internalNode {
			queue = append(queue, queueItem{n.left, item.hc.Append(0)})
			queue = append(queue, queueItem{n.right, item.hc.Append(1)})
		}
	}

	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

func symbolOrMinusOne(sym Symbol) int {
	if !sym.IsValid() {
		return -1
	}
	return int(sym)
}
