package huffman

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var abracadabraTreeBytes = []byte{
	OpenMarker,
	OpenMarker, 'a', CloseMarker,
	SeparatorMarker,
	OpenMarker,
	OpenMarker, OpenMarker, 'c', CloseMarker, SeparatorMarker, OpenMarker, 'd', CloseMarker, CloseMarker,
	SeparatorMarker,
	OpenMarker, OpenMarker, 'b', CloseMarker, SeparatorMarker, OpenMarker, 'r', CloseMarker, CloseMarker,
	CloseMarker,
	CloseMarker,
}

func TestBuildTree_Errors(t *testing.T) {
	var freqs FrequencyTable
	_, err := BuildTree(freqs)
	require.ErrorIs(t, err, ErrEmptyAlphabet)

	freqs.Add('x', 17)
	_, err = BuildTree(freqs)
	require.ErrorIs(t, err, ErrDegenerateAlphabet)

	_, err = BuildTreeFromText(nil)
	require.ErrorIs(t, err, ErrEmptyAlphabet)

	_, err = BuildTreeFromText([]byte("aaaa"))
	require.ErrorIs(t, err, ErrDegenerateAlphabet)
}

func TestBuildTree_Abracadabra(t *testing.T) {
	text := []byte("abracadabra")
	freqs := CountFrequencies(text)
	require.Equal(t, uint64(5), freqs.Count('a'))
	require.Equal(t, uint64(2), freqs.Count('b'))
	require.Equal(t, uint64(2), freqs.Count('r'))
	require.Equal(t, uint64(1), freqs.Count('c'))
	require.Equal(t, uint64(1), freqs.Count('d'))

	tree, err := BuildTree(freqs)
	require.NoError(t, err)
	require.Equal(t, 5, tree.NumLeaves())
	require.Equal(t, "((97)(((99)(100))((98)(114))))", tree.String())

	table := tree.CodeTable()
	sizeOf := func(symbol Symbol) byte {
		hc, ok := table.Lookup(symbol)
		require.True(t, ok, "symbol %v has no code", symbol)
		return hc.Size
	}

	// 'a' gets the shortest code; 'r' ties for the next shortest.
	for _, symbol := range []Symbol{'b', 'c', 'd', 'r'} {
		require.Less(t, sizeOf('a'), sizeOf(symbol))
		require.LessOrEqual(t, sizeOf('r'), sizeOf(symbol))
	}

	var expectBits uint64
	for _, symbol := range []Symbol{'a', 'b', 'c', 'd', 'r'} {
		expectBits += freqs.Count(symbol) * uint64(sizeOf(symbol))
	}
	require.Equal(t, uint64(23), expectBits)

	ps, err := NewEncoder(tree).Pack(text)
	require.NoError(t, err)
	require.Equal(t, expectBits, ps.Bits)

	decoded, err := NewDecoder(tree).Unpack(ps)
	require.NoError(t, err)
	require.Equal(t, "abracadabra", string(decoded))
}

func TestBuildTree_TieBreak(t *testing.T) {
	// Four equal weights: leaves merge pairwise in symbol order first.
	tree, err := BuildTreeFromText([]byte("dcba"))
	require.NoError(t, err)
	require.Equal(t, "(((97)(98))((99)(100)))", tree.String())

	again, err := BuildTreeFromText([]byte("abcd"))
	require.NoError(t, err)
	require.Equal(t, tree.CodeTable(), again.CodeTable())
}

func TestBuildTree_Deep(t *testing.T) {
	// Fibonacci weights produce the most lopsided tree possible.
	var freqs FrequencyTable
	a, b := uint64(1), uint64(1)
	for symbol := Symbol(0); symbol < 90; symbol++ {
		freqs.Add(symbol, a)
		a, b = b, a+b
	}

	tree, err := BuildTree(freqs)
	require.NoError(t, err)
	require.Equal(t, 90, tree.NumLeaves())
	require.Equal(t, byte(1), tree.MinSize())
	require.Equal(t, byte(89), tree.MaxSize())

	text := make([]byte, 0, 90*3)
	for round := 0; round < 3; round++ {
		for symbol := 0; symbol < 90; symbol++ {
			text = append(text, byte(symbol))
		}
	}
	ps, err := NewEncoder(tree).Pack(text)
	require.NoError(t, err)
	decoded, err := NewDecoder(tree).Unpack(ps)
	require.NoError(t, err)
	require.Equal(t, text, decoded)
}

func TestTree_PrefixFree(t *testing.T) {
	texts := []string{
		"abracadabra",
		"the quick brown fox jumps over the lazy dog",
		"mississippi river",
		strings.Repeat("aab", 10) + "cdefghij",
	}
	for _, text := range texts {
		tree, err := BuildTreeFromText([]byte(text))
		require.NoError(t, err)
		table := tree.CodeTable()

		for a := Symbol(0); a < NumSymbols; a++ {
			codeA, okA := table.Lookup(a)
			if !okA {
				continue
			}
			for b := Symbol(0); b < NumSymbols; b++ {
				codeB, okB := table.Lookup(b)
				if !okB || a == b {
					continue
				}
				require.False(t, codeB.HasPrefix(codeA), "text %q: %v=%v is a prefix of %v=%v", text, a, codeA, b, codeB)
			}
		}
	}
}

func TestTree_MarshalBinary(t *testing.T) {
	tree, err := BuildTreeFromText([]byte("abracadabra"))
	require.NoError(t, err)

	data, err := tree.MarshalBinary()
	require.NoError(t, err)
	require.Equal(t, abracadabraTreeBytes, data)

	_, err = new(Tree).MarshalBinary()
	require.ErrorIs(t, err, ErrEmptyAlphabet)
}

func TestTree_SerializationRoundTrip(t *testing.T) {
	texts := []string{
		"ab",
		"abracadabra",
		"the quick brown fox jumps over the lazy dog",
		"\x00\x01\x02\x7f\x7f\x7f",
	}
	for _, text := range texts {
		tree, err := BuildTreeFromText([]byte(text))
		require.NoError(t, err)

		data, err := tree.MarshalBinary()
		require.NoError(t, err)
		require.Len(t, data, 3*(2*tree.NumLeaves()-1))

		parsed, err := ParseTree(data)
		require.NoError(t, err)
		require.Equal(t, tree.NumLeaves(), parsed.NumLeaves())
		require.Equal(t, tree.CodeTable(), parsed.CodeTable())
		require.Equal(t, tree.String(), parsed.String())

		var unmarshaled Tree
		require.NoError(t, unmarshaled.UnmarshalBinary(data))
		require.Equal(t, tree.CodeTable(), unmarshaled.CodeTable())
	}
}

func TestParseTree_IgnoresSeparator(t *testing.T) {
	data := []byte{OpenMarker, OpenMarker, 'x', CloseMarker, 0x00, OpenMarker, 'y', CloseMarker, CloseMarker}
	tree, err := ParseTree(data)
	require.NoError(t, err)
	require.Equal(t, "((120)(121))", tree.String())
}

func TestParseTree_Errors(t *testing.T) {
	type testRow struct {
		name string
		data []byte
	}

	testData := [...]testRow{
		{"empty", nil},
		{"no-open", []byte{'a', CloseMarker}},
		{"unbalanced", []byte{OpenMarker, OpenMarker, 'a', CloseMarker, SeparatorMarker, OpenMarker, 'b', CloseMarker}},
		{"missing-separator", []byte{OpenMarker, OpenMarker, 'a', CloseMarker}},
		{"bad-leaf", []byte{OpenMarker, 0x90, CloseMarker}},
		{"leaf-too-long", []byte{OpenMarker, 'a', 'b', CloseMarker}},
		{"trailing", append(append([]byte(nil), abracadabraTreeBytes...), OpenMarker)},
		{"duplicate", []byte{OpenMarker, OpenMarker, 'a', CloseMarker, SeparatorMarker, OpenMarker, 'a', CloseMarker, CloseMarker}},
		{"too-deep", []byte(strings.Repeat(string([]byte{OpenMarker}), 200))},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			_, err := ParseTree(row.data)
			require.ErrorIs(t, err, ErrMalformedTree)
		})
	}

	_, err := ParseTree([]byte{OpenMarker, 'a', CloseMarker})
	require.ErrorIs(t, err, ErrDegenerateAlphabet)

	var tree Tree
	require.Error(t, tree.UnmarshalBinary([]byte{OpenMarker}))
	require.True(t, tree.IsEmpty())
}

func TestTree_Clone(t *testing.T) {
	tree, err := BuildTreeFromText([]byte("abracadabra"))
	require.NoError(t, err)

	dupe := tree.Clone()
	require.Equal(t, tree.String(), dupe.String())
	require.Equal(t, tree.CodeTable(), dupe.CodeTable())
	require.NotSame(t, &tree.nodes[0], &dupe.nodes[0])

	var empty Tree
	require.True(t, empty.Clone().IsEmpty())
	require.Equal(t, "()", empty.String())
}
