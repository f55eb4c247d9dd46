package huffman

import (
	"bytes"
	"encoding"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// LengthFieldSize is the width in bytes of both length fields of the
// container.  Lengths are unsigned and little-endian.
const LengthFieldSize = 8

// Container is the persisted form of a packed text: the Tree that packed it
// followed by the PackedStream.
type Container struct {
	Tree   *Tree
	Stream PackedStream
}

// Compress builds a Tree from text, packs text with it, and returns the
// serialized Container.
func Compress(text []byte) ([]byte, error) {
	t, err := BuildTreeFromText(text)
	if err != nil {
		return nil, err
	}
	ps, err := NewEncoder(t).Pack(text)
	if err != nil {
		return nil, err
	}
	return Container{Tree: t, Stream: ps}.MarshalBinary()
}

// Decompress parses a serialized Container and returns the text it holds.
func Decompress(data []byte) ([]byte, error) {
	var c Container
	if err := c.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return c.Decode()
}

// Decode unpacks the text held in this Container.
func (c Container) Decode() ([]byte, error) {
	if c.Tree.IsEmpty() {
		return nil, fmt.Errorf("%w: container has no tree", ErrMalformedTree)
	}
	return NewDecoder(c.Tree).Unpack(c.Stream)
}

// WriteTo writes the Container to w.
func (c Container) WriteTo(w io.Writer) (int64, error) {
	tree, err := c.Tree.MarshalBinary()
	if err != nil {
		return 0, err
	}
	if err := c.Stream.Validate(); err != nil {
		return 0, err
	}

	var total int64
	write := func(p []byte) error {
		n, err := w.Write(p)
		total += int64(n)
		return err
	}

	var field [LengthFieldSize]byte
	binary.LittleEndian.PutUint64(field[:], uint64(len(tree)))
	if err := write(field[:]); err != nil {
		return total, err
	}
	if err := write(tree); err != nil {
		return total, err
	}
	binary.LittleEndian.PutUint64(field[:], c.Stream.Bits)
	if err := write(field[:]); err != nil {
		return total, err
	}
	if err := write(c.Stream.Bytes); err != nil {
		return total, err
	}

	log.Debugf("wrote container: tree %d bytes, code %d bits, %d bytes total", len(tree), c.Stream.Bits, total)
	return total, nil
}

// ReadFrom replaces this Container with one read from r.  Exactly the bytes of
// one Container are consumed.
func (c *Container) ReadFrom(r io.Reader) (int64, error) {
	var total int64

	var field [LengthFieldSize]byte
	readField := func(what string) (uint64, error) {
		n, err := io.ReadFull(r, field[:])
		total += int64(n)
		if err != nil {
			return 0, truncated(what, err)
		}
		return binary.LittleEndian.Uint64(field[:]), nil
	}

	treeLen, err := readField("tree length")
	if err != nil {
		return total, err
	}
	if treeLen > MaxTreeEncodingSize {
		return total, malformedf(0, "tree length %d exceeds %d", treeLen, MaxTreeEncodingSize)
	}

	treeBytes := make([]byte, treeLen)
	n, err := io.ReadFull(r, treeBytes)
	total += int64(n)
	if err != nil {
		return total, truncated("tree", err)
	}
	t, err := ParseTree(treeBytes)
	if err != nil {
		return total, err
	}

	numBits, err := readField("code length")
	if err != nil {
		return total, err
	}

	// CopyN grows the buffer only as data arrives, so a bogus length
	// cannot force a huge allocation up front.
	numBytes := numBytesForBits(numBits)
	var buf bytes.Buffer
	m, err := io.CopyN(&buf, r, int64(numBytes))
	total += m
	if err != nil {
		return total, truncated("code", err)
	}

	*c = Container{
		Tree:   t,
		Stream: PackedStream{Bytes: buf.Bytes(), Bits: numBits},
	}
	log.Debugf("read container: tree %d bytes, code %d bits, %d bytes total", treeLen, numBits, total)
	return total, nil
}

// MarshalBinary returns the serialized Container.
func (c Container) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary replaces this Container with the one serialized in data.
// Trailing bytes after the Container are an error.
func (c *Container) UnmarshalBinary(data []byte) error {
	r := bytes.NewReader(data)
	var tmp Container
	if _, err := tmp.ReadFrom(r); err != nil {
		return err
	}
	if r.Len() != 0 {
		return fmt.Errorf("huffman: %d trailing bytes after container", r.Len())
	}
	*c = tmp
	return nil
}

var (
	_ io.WriterTo                = Container{}
	_ io.ReaderFrom              = (*Container)(nil)
	_ encoding.BinaryMarshaler   = Container{}
	_ encoding.BinaryUnmarshaler = (*Container)(nil)
)

func truncated(what string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: reading %s", ErrTruncatedStream, what)
	}
	return fmt.Errorf("huffman: reading %s: %w", what, err)
}
