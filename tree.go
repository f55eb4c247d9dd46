package huffman

import (
	"strconv"
	"strings"
)

type nodeID int32

const noNode = nodeID(-1)

type nodeKind byte

const (
	leafNode nodeKind = iota + 1
	internalNode
)

// node is either a leaf (kind == leafNode, symbol valid) or an internal node
// (kind == internalNode, left and right valid).  Internal nodes always have
// two children.
type node struct {
	kind   nodeKind
	symbol Symbol
	left   nodeID
	right  nodeID

	// minHeight and maxHeight are the number of edges between this node
	// and its nearest and farthest leaf.
	minHeight byte
	maxHeight byte
}

// Tree is a Huffman code tree: a binary tree whose leaves are Symbols and
// whose root-to-leaf paths are the codes.  Going left appends a 0 bit and
// going right appends a 1 bit.
//
// Nodes are kept in a single arena owned by the Tree and refer to each other
// by index.  A Tree is immutable once built.  The zero value is an empty Tree
// that has not been built yet.
//
type Tree struct {
	nodes     []node
	root      nodeID
	numLeaves int
}

func newTree(numLeaves int) *Tree {
	var capacity int
	if numLeaves > 0 {
		capacity = 2*numLeaves - 1
	}
	return &Tree{
		nodes: make([]node, 0, capacity),
		root:  noNode,
	}
}

func (t *Tree) addLeaf(symbol Symbol) nodeID {
	id := nodeID(len(t.nodes))
	t.nodes = append(t.nodes, node{
		kind:   leafNode,
		symbol: symbol,
		left:   noNode,
		right:  noNode,
	})
	t.numLeaves++
	return id
}

func (t *Tree) addInternal(left nodeID, right nodeID) nodeID {
	l, r := &t.nodes[left], &t.nodes[right]
	minHeight, maxHeight := l.minHeight, l.maxHeight
	if minHeight > r.minHeight {
		minHeight = r.minHeight
	}
	if maxHeight < r.maxHeight {
		maxHeight = r.maxHeight
	}

	id := nodeID(len(t.nodes))
	t.nodes = append(t.nodes, node{
		kind:      internalNode,
		symbol:    InvalidSymbol,
		left:      left,
		right:     right,
		minHeight: minHeight + 1,
		maxHeight: maxHeight + 1,
	})
	return id
}

// IsEmpty returns true iff this Tree has not been built.
func (t *Tree) IsEmpty() bool {
	return t == nil || len(t.nodes) == 0
}

// NumLeaves returns the number of distinct symbols in this Tree.
func (t *Tree) NumLeaves() int {
	if t.IsEmpty() {
		return 0
	}
	return t.numLeaves
}

// MinSize is the bit length of the shortest code in this Tree.
func (t *Tree) MinSize() byte {
	if t.IsEmpty() {
		return 0
	}
	return t.nodes[t.root].minHeight
}

// MaxSize is the bit length of the longest code in this Tree.
func (t *Tree) MaxSize() byte {
	if t.IsEmpty() {
		return 0
	}
	return t.nodes[t.root].maxHeight
}

// Clone returns a deep copy of this Tree.
func (t *Tree) Clone() *Tree {
	if t.IsEmpty() {
		return &Tree{root: noNode}
	}
	dupe := &Tree{
		nodes:     make([]node, len(t.nodes)),
		root:      t.root,
		numLeaves: t.numLeaves,
	}
	copy(dupe.nodes, t.nodes)
	return dupe
}

// child returns the left child of id for bit 0 and the right child for bit 1.
func (t *Tree) child(id nodeID, bit byte) nodeID {
	n := &t.nodes[id]
	if bit == 0 {
		return n.left
	}
	return n.right
}

// String returns the parenthesized form of this Tree, e.g. "((97)((98)(99)))"
// for a Tree with the leaves 'a', 'b' and 'c'.
func (t *Tree) String() string {
	if t.IsEmpty() {
		return "()"
	}
	var buf strings.Builder
	t.writeString(&buf, t.root)
	return buf.String()
}

func (t *Tree) writeString(buf *strings.Builder, id nodeID) {
	n := &t.nodes[id]
	buf.WriteByte('(')
	if n.kind == leafNode {
		buf.WriteString(strconv.Itoa(int(n.symbol)))
	} else {
		t.writeString(buf, n.left)
		t.writeString(buf, n.right)
	}
	buf.WriteByte(')')
}
