package huffman

import (
	"bytes"
	"encoding/binary"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func abracadabraContainerBytes() []byte {
	var out []byte
	out = binary.LittleEndian.AppendUint64(out, uint64(len(abracadabraTreeBytes)))
	out = append(out, abracadabraTreeBytes...)
	out = binary.LittleEndian.AppendUint64(out, 23)
	out = append(out, 0x6e, 0x8a, 0xdc)
	return out
}

func TestCompress(t *testing.T) {
	data, err := Compress([]byte("abracadabra"))
	require.NoError(t, err)
	require.Equal(t, abracadabraContainerBytes(), data)

	text, err := Decompress(data)
	require.NoError(t, err)
	require.Equal(t, "abracadabra", string(text))

	_, err = Compress([]byte("aaaa"))
	require.ErrorIs(t, err, ErrDegenerateAlphabet)
	_, err = Compress(nil)
	require.ErrorIs(t, err, ErrEmptyAlphabet)
}

func TestContainer_WriteToReadFrom(t *testing.T) {
	tree, err := BuildTreeFromText([]byte("mississippi"))
	require.NoError(t, err)
	ps, err := NewEncoder(tree).Pack([]byte("mississippi"))
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := Container{Tree: tree, Stream: ps}.WriteTo(&buf)
	require.NoError(t, err)
	require.Equal(t, int64(buf.Len()), n)

	// Another container follows; ReadFrom must stop at the boundary.
	buf.WriteString("trailer")

	var c Container
	m, err := c.ReadFrom(&buf)
	require.NoError(t, err)
	require.Equal(t, n, m)
	require.Equal(t, "trailer", buf.String())
	require.Equal(t, ps.Bits, c.Stream.Bits)
	require.Equal(t, ps.Bytes, c.Stream.Bytes)
	require.Equal(t, tree.CodeTable(), c.Tree.CodeTable())

	text, err := c.Decode()
	require.NoError(t, err)
	require.Equal(t, "mississippi", string(text))
}

func TestContainer_Errors(t *testing.T) {
	good := abracadabraContainerBytes()

	for cut := 0; cut < len(good); cut++ {
		_, err := Decompress(good[:cut])
		require.ErrorIs(t, err, ErrTruncatedStream, "cut at %d", cut)
	}

	_, err := Decompress(append(append([]byte(nil), good...), 0))
	require.Error(t, err)

	huge := binary.LittleEndian.AppendUint64(nil, MaxTreeEncodingSize+1)
	_, err = Decompress(huge)
	require.ErrorIs(t, err, ErrMalformedTree)

	bogusBits := append([]byte(nil), good...)
	binary.LittleEndian.PutUint64(bogusBits[8+len(abracadabraTreeBytes):], 1<<62)
	_, err = Decompress(bogusBits)
	require.ErrorIs(t, err, ErrTruncatedStream)

	_, err = Container{Tree: new(Tree)}.MarshalBinary()
	require.Error(t, err)

	tree, err := BuildTreeFromText([]byte("ab"))
	require.NoError(t, err)
	_, err = Container{Tree: tree, Stream: PackedStream{Bytes: []byte{0}, Bits: 9}}.MarshalBinary()
	require.ErrorIs(t, err, ErrTruncatedStream)

	_, err = Container{}.Decode()
	require.ErrorIs(t, err, ErrMalformedTree)
}

func TestRoundTrip(t *testing.T) {
	texts := []string{
		"ab",
		"ba",
		"abracadabra",
		"the quick brown fox jumps over the lazy dog\n",
		strings.Repeat("a", 1000) + "b",
		"\x00\x7f",
	}

	rng := rand.New(rand.NewSource(0x5a025ca11825a5e7))
	for i := 0; i < 20; i++ {
		size := 2 + rng.Intn(500)
		alphabet := 2 + rng.Intn(NumSymbols-1)
		text := make([]byte, size)
		text[0], text[1] = 0, 1
		for j := 2; j < size; j++ {
			text[j] = byte(rng.Intn(alphabet))
		}
		texts = append(texts, string(text))
	}

	for _, text := range texts {
		data, err := Compress([]byte(text))
		require.NoError(t, err)
		decoded, err := Decompress(data)
		require.NoError(t, err)
		require.Equal(t, text, string(decoded))
	}
}
