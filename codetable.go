package huffman

import (
	"bytes"
	"fmt"
	"io"
)

// CodeTable maps each Symbol to its Code.  Symbols that are not in the Tree
// have a Code with a Size of 0.
type CodeTable [NumSymbols]Code

// Lookup returns the Code for symbol, and false if symbol has no code.
func (table *CodeTable) Lookup(symbol Symbol) (Code, bool) {
	if !symbol.IsValid() {
		return Code{}, false
	}
	hc := table[symbol]
	return hc, hc.Size != 0
}

// BitLength returns the number of bits needed to pack text with this table,
// or ErrUnencodableSymbol if some byte of text has no code.
func (table *CodeTable) BitLength(text []byte) (uint64, error) {
	var sum uint64
	for index, ch := range text {
		hc, ok := table.Lookup(Symbol(ch))
		if !ok {
			return 0, fmt.Errorf("%w: byte 0x%02x at offset %d", ErrUnencodableSymbol, ch, index)
		}
		sum += uint64(hc.Size)
	}
	return sum, nil
}

// Dump writes a programmer-readable listing of every assigned Code to the
// given writer.
func (table *CodeTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("CodeTable{\n")
	for symbol := Symbol(0); symbol < NumSymbols; symbol++ {
		if hc := table[symbol]; hc.Size != 0 {
			fmt.Fprintf(&buf, "\t%d: %s\n", symbol, hc)
		}
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// CodeTable computes the Code for each leaf of this Tree.
func (t *Tree) CodeTable() CodeTable {
	var table CodeTable
	if t.IsEmpty() {
		return table
	}

	// Walk the tree depth-first with an explicit stack.  The stack holds
	// only internal nodes; its depth never exceeds MaxSize().
	//
	// We use stackItem.x to keep track of where we are in the tree walk:
	//   x=0 → We just arrived at stackItem for the first time
	//   x=1 → We have already processed the left child
	//   x=2 → We have already processed both children
	//
	// stackItem.code is the path from the root to stackItem.id.

	type stackItem struct {
		id   nodeID
		code Code
		x    byte
	}

	stack := make([]stackItem, 0, log2uint32(uint32(t.numLeaves)))

	visit := func(id nodeID, hc Code) {
		n := &t.nodes[id]
		if n.kind == leafNode {
			table[n.symbol] = hc
			return
		}
		stack = append(stack, stackItem{id: id, code: hc})
	}

	visit(t.root, Code{})
	for len(stack) != 0 {
		top := &stack[len(stack)-1]
		x := top.x
		top.x++
		switch x {
		case 0:
			visit(t.nodes[top.id].left, top.code.Append(0))
		case 1:
			visit(t.nodes[top.id].right, top.code.Append(1))
		case 2:
			stack = stack[:len(stack)-1]
		}
	}
	return table
}
