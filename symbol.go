package huffman

import (
	"strconv"
)

// Symbol represents a symbol in the 7-bit text alphabet.  Symbols at or above
// NumSymbols are not valid.
type Symbol uint8

// NumSymbols is the size of the alphabet.  It also bounds the depth of any
// Tree and leaves the high bit of every byte free for tree markers.
const NumSymbols = 128

// MaxSymbol is the maximum valid symbol.
const MaxSymbol = Symbol(NumSymbols - 1)

// InvalidSymbol is returned by some functions to clearly indicate that no
// symbol is being returned.
const InvalidSymbol = Symbol(0xff)

// IsValid returns true iff this Symbol is inside the alphabet.
func (sym Symbol) IsValid() bool {
	return sym < NumSymbols
}

// String returns the string representation of this Symbol.
func (sym Symbol) String() string {
	if !sym.IsValid() {
		return "InvalidSymbol"
	}
	return strconv.QuoteRune(rune(sym))
}
