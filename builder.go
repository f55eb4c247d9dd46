package huffman

import (
	"container/heap"
	"math"
)

// BuildTree constructs the Huffman Tree for the given frequencies.  Symbols
// with a frequency of 0 are left out of the Tree.
//
// It returns ErrEmptyAlphabet if every frequency is 0, and
// ErrDegenerateAlphabet if exactly one frequency is non-zero.
//
// When weights tie, leaves are merged before merged subtrees, leaves in
// ascending Symbol order, and merged subtrees in the order they were created.
// The first of each merged pair becomes the left (0) child.
//
func BuildTree(freqs FrequencyTable) (*Tree, error) {
	nodes := make([]weightedNode, 0, NumSymbols)
	for symbol := Symbol(0); symbol < NumSymbols; symbol++ {
		if freq := freqs[symbol]; freq != 0 {
			nodes = append(nodes, weightedNode{weight: freq, rank: uint32(symbol)})
		}
	}

	switch len(nodes) {
	case 0:
		return nil, ErrEmptyAlphabet
	case 1:
		return nil, ErrDegenerateAlphabet
	}

	t := newTree(len(nodes))
	for index := range nodes {
		nodes[index].id = t.addLeaf(Symbol(nodes[index].rank))
	}

	// Repeatedly pop the two lightest entries and push back their union.
	// Merged nodes rank after every leaf, in creation order.

	h := freqHeap{nodes}
	h.Init()

	nextRank := uint32(NumSymbols)
	for h.Len() > 1 {
		a := heap.Pop(&h).(weightedNode)
		b := heap.Pop(&h).(weightedNode)

		// Compute weight using saturating addition
		weight := a.weight + b.weight
		if weight < a.weight {
			weight = math.MaxUint64
		}

		id := t.addInternal(a.id, b.id)
		heap.Push(&h, weightedNode{id: id, weight: weight, rank: nextRank})
		nextRank++
	}

	root := heap.Pop(&h).(weightedNode)
	t.root = root.id

	log.Debugf("built tree: %d leaves, total weight %d, code sizes %d..%d", t.numLeaves, root.weight, t.MinSize(), t.MaxSize())
	return t, nil
}

// BuildTreeFromText counts the symbols of text and constructs the Huffman Tree
// for those frequencies.  Every byte of text must be a valid Symbol.
func BuildTreeFromText(text []byte) (*Tree, error) {
	return BuildTree(CountFrequencies(text))
}

// type weightedNode + type freqHeap {{{

type weightedNode struct {
	id     nodeID
	weight uint64
	rank   uint32
}

type freqHeap struct {
	list []weightedNode
}

func (h *freqHeap) Init() {
	heap.Init(h)
}

func (h *freqHeap) Len() int {
	return len(h.list)
}

func (h *freqHeap) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *freqHeap) Less(i, j int) bool {
	a, b := h.list[i], h.list[j]
	if a.weight != b.weight {
		return a.weight < b.weight
	}
	return a.rank < b.rank
}

func (h *freqHeap) Push(x interface{}) {
	h.list = append(h.list, x.(weightedNode))
}

func (h *freqHeap) Pop() interface{} {
	last := uint(len(h.list)) - 1
	x := h.list[last]
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*freqHeap)(nil)

// }}}
