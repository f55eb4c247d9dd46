// Package huffman implements a Huffman tree codec over a 128-symbol (7-bit
// text) alphabet.  A Tree is built from symbol frequencies, serialized into a
// self-delimiting parenthesized byte format, and used to pack text into a
// bit-exact stream and back.
//
// The persisted container is:
//
//     [8 bytes]          tree length in bytes, little-endian
//     [l1 bytes]         serialized tree
//     [8 bytes]          packed code length in bits, little-endian
//     [ceil(l2/8) bytes] packed code, MSB-first, zero-padded
//
// References:
//
//     <https://en.wikipedia.org/wiki/Huffman_coding>
//
package huffman

import (
	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("hfmtree")
