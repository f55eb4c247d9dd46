package huffman

import (
	"encoding"
	"fmt"
)

// Marker bytes of the serialized tree format.  Symbols occupy the low 7 bits
// of a byte, so none of these can be mistaken for a leaf.
const (
	OpenMarker      = 0x80
	CloseMarker     = 0x81
	SeparatorMarker = 0xff
)

// MaxTreeEncodingSize is the length of the serialized form of a Tree that
// holds every Symbol.  Each of the 2×NumSymbols−1 nodes takes 3 bytes.
const MaxTreeEncodingSize = 3 * (2*NumSymbols - 1)

// MarshalBinary serializes this Tree.
//
// The format is:
//
//     tree := OPEN symbol CLOSE
//           | OPEN tree SEPARATOR tree CLOSE
//
// where the first tree of an internal node is its left (0) child.  The
// SEPARATOR byte is written as SeparatorMarker and ignored when parsing.
//
func (t *Tree) MarshalBinary() ([]byte, error) {
	if t.IsEmpty() {
		return nil, fmt.Errorf("%w: cannot serialize a tree that was never built", ErrEmptyAlphabet)
	}
	out := make([]byte, 0, 3*len(t.nodes))
	return t.appendNode(out, t.root), nil
}

func (t *Tree) appendNode(out []byte, id nodeID) []byte {
	n := &t.nodes[id]
	out = append(out, OpenMarker)
	if n.kind == leafNode {
		out = append(out, byte(n.symbol))
	} else {
		out = t.appendNode(out, n.left)
		out = append(out, SeparatorMarker)
		out = t.appendNode(out, n.right)
	}
	return append(out, CloseMarker)
}

// UnmarshalBinary replaces this Tree with the one serialized in data.  On
// error, the Tree is left unchanged.
func (t *Tree) UnmarshalBinary(data []byte) error {
	parsed, err := ParseTree(data)
	if err != nil {
		return err
	}
	*t = *parsed
	return nil
}

var (
	_ encoding.BinaryMarshaler   = (*Tree)(nil)
	_ encoding.BinaryUnmarshaler = (*Tree)(nil)
)

// ParseTree reconstructs a Tree from the output of MarshalBinary.  All of data
// must be consumed by the tree.
//
// It returns an error wrapping ErrMalformedTree if data does not match the
// grammar, nests deeper than any Tree over NumSymbols leaves can, or holds the
// same Symbol in two leaves.  A tree consisting of a single leaf is rejected
// with ErrDegenerateAlphabet.
//
func ParseTree(data []byte) (*Tree, error) {
	if len(data) == 0 {
		return nil, malformedf(0, "no data")
	}

	numLeaves := (len(data)/3 + 1) / 2
	if numLeaves > NumSymbols {
		numLeaves = NumSymbols
	}

	p := treeParser{data: data, t: newTree(numLeaves)}
	root, err := p.parseNode(0)
	if err != nil {
		return nil, err
	}
	if p.pos != len(data) {
		return nil, malformedf(p.pos, "%d trailing bytes after the root", len(data)-p.pos)
	}
	if p.t.nodes[root].kind == leafNode {
		return nil, fmt.Errorf("%w: tree is a single leaf", ErrDegenerateAlphabet)
	}

	p.t.root = root
	log.Debugf("parsed tree: %d bytes, %d leaves", len(data), p.t.numLeaves)
	return p.t, nil
}

type treeParser struct {
	data []byte
	pos  int
	t    *Tree
	seen [NumSymbols]bool
}

func (p *treeParser) next() (byte, bool) {
	if p.pos >= len(p.data) {
		return 0, false
	}
	ch := p.data[p.pos]
	p.pos++
	return ch, true
}

func (p *treeParser) expect(marker byte, name string) error {
	offset := p.pos
	ch, ok := p.next()
	if !ok {
		return malformedf(offset, "unexpected end of data, expected %s", name)
	}
	if ch != marker {
		return malformedf(offset, "expected %s, found 0x%02x", name, ch)
	}
	return nil
}

func (p *treeParser) parseNode(depth int) (nodeID, error) {
	if depth >= NumSymbols {
		return noNode, malformedf(p.pos, "nesting deeper than %d levels", NumSymbols-1)
	}
	if err := p.expect(OpenMarker, "OPEN"); err != nil {
		return noNode, err
	}

	offset := p.pos
	if offset >= len(p.data) {
		return noNode, malformedf(offset, "unexpected end of data after OPEN")
	}

	var id nodeID
	switch ch := p.data[offset]; {
	case Symbol(ch).IsValid():
		p.pos++
		if p.seen[ch] {
			return noNode, malformedf(offset, "symbol %d appears in more than one leaf", ch)
		}
		p.seen[ch] = true
		id = p.t.addLeaf(Symbol(ch))

	case ch == OpenMarker:
		left, err := p.parseNode(depth + 1)
		if err != nil {
			return noNode, err
		}
		if _, ok := p.next(); !ok {
			return noNode, malformedf(p.pos, "unexpected end of data, expected separator")
		}
		right, err := p.parseNode(depth + 1)
		if err != nil {
			return noNode, err
		}
		id = p.t.addInternal(left, right)

	default:
		return noNode, malformedf(offset, "expected symbol or OPEN, found 0x%02x", ch)
	}

	if err := p.expect(CloseMarker, "CLOSE"); err != nil {
		return noNode, err
	}
	return id, nil
}
