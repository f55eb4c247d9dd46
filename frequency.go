package huffman

import (
	"github.com/chronos-tachyon/assert"
)

// FrequencyTable holds the number of occurrences of each Symbol.
type FrequencyTable [NumSymbols]uint64

// CountFrequencies counts the occurrences of each Symbol in text.  Every byte
// of text must be a valid Symbol; see ValidateText.
func CountFrequencies(text []byte) FrequencyTable {
	var freqs FrequencyTable
	for index, ch := range text {
		assert.Assertf(Symbol(ch).IsValid(), "byte 0x%02x at offset %d is outside of the alphabet", ch, index)
		freqs[ch]++
	}
	return freqs
}

// Add adds n occurrences of symbol.
func (freqs *FrequencyTable) Add(symbol Symbol, n uint64) {
	assert.Assertf(symbol.IsValid(), "symbol %d >= NumSymbols %d", symbol, NumSymbols)
	freqs[symbol] += n
}

// Count returns the number of occurrences of symbol.
func (freqs *FrequencyTable) Count(symbol Symbol) uint64 {
	if !symbol.IsValid() {
		return 0
	}
	return freqs[symbol]
}

// Total returns the sum of all counts.
func (freqs *FrequencyTable) Total() uint64 {
	var sum uint64
	for _, freq := range freqs {
		sum += freq
	}
	return sum
}

// NumNonZero returns the number of symbols with a non-zero count.
func (freqs *FrequencyTable) NumNonZero() int {
	var n int
	for _, freq := range freqs {
		if freq != 0 {
			n++
		}
	}
	return n
}
