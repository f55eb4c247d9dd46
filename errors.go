package huffman

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyAlphabet is returned when building a Tree from frequencies
	// that are all zero, i.e. from empty text.
	ErrEmptyAlphabet = errors.New("huffman: empty alphabet")

	// ErrDegenerateAlphabet is returned when building a Tree from
	// frequencies with exactly one non-zero entry.  Such a Tree would
	// assign a zero-length code to its only symbol.
	ErrDegenerateAlphabet = errors.New("huffman: degenerate alphabet: only one distinct symbol")

	// ErrMalformedTree is returned when a serialized Tree does not match
	// the tree grammar.
	ErrMalformedTree = errors.New("huffman: malformed tree encoding")

	// ErrAlphabetViolation is matched by every *AlphabetError.
	ErrAlphabetViolation = errors.New("huffman: byte outside of the 7-bit alphabet")

	// ErrUnencodableSymbol is returned when packing a symbol that has no
	// leaf in the Tree.
	ErrUnencodableSymbol = errors.New("huffman: symbol not present in tree")

	// ErrTruncatedStream is returned when fewer bytes are available than
	// the recorded lengths call for.
	ErrTruncatedStream = errors.New("huffman: truncated stream")

	// ErrIncompleteCode is returned when the meaningful bits of a packed
	// stream end in the middle of a code.
	ErrIncompleteCode = errors.New("huffman: packed stream ends inside a code")
)

// AlphabetError reports a byte of input text that is outside of the
// alphabet.
type AlphabetError struct {
	Offset int
	Value  byte
}

// Error fulfills the error interface.
func (err *AlphabetError) Error() string {
	return fmt.Sprintf("%v: byte 0x%02x at offset %d", ErrAlphabetViolation, err.Value, err.Offset)
}

// Is returns true for ErrAlphabetViolation.
func (err *AlphabetError) Is(target error) bool {
	return target == ErrAlphabetViolation
}

var _ error = (*AlphabetError)(nil)

// ValidateText checks that every byte of text is a valid Symbol.  It is meant
// for loaders that read text from outside the program; the rest of this
// package assumes text that has already been validated.
func ValidateText(text []byte) error {
	for index, ch := range text {
		if !Symbol(ch).IsValid() {
			return &AlphabetError{Offset: index, Value: ch}
		}
	}
	return nil
}

func malformedf(offset int, format string, args ...interface{}) error {
	return fmt.Errorf("%w: offset %d: %s", ErrMalformedTree, offset, fmt.Sprintf(format, args...))
}
