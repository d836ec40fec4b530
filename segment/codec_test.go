package segment

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/felmond13/colcore/domain"
)

func TestEncodeDecodeDictionaryInt64RoundTrip(t *testing.T) {
	s := NewDictionarySegment(domain.KindInt64, []int64{10, 20, 30}, []uint32{0, 1, 2, 1, InvalidValueID})
	encoded := EncodeDictionaryInt64(s)

	header, body, err := DecodeDictionaryHeader(encoded)
	require.NoError(t, err)
	require.Equal(t, domain.KindInt64, header.Kind)
	require.Equal(t, uint32(3), header.U)
	require.Equal(t, uint32(5), header.N)

	decoded, err := DecodeDictionaryInt64(header, body)
	require.NoError(t, err)
	require.Equal(t, s.dict, decoded.dict)
	require.Equal(t, s.attrs, decoded.attrs)
}

func TestEncodeDecodeDictionaryStringRoundTrip(t *testing.T) {
	s := NewDictionarySegment(domain.KindString, []string{"alpha", "beta", "gamma"}, []uint32{2, 0, 1, InvalidValueID})
	encoded := EncodeDictionaryString(s)

	header, body, err := DecodeDictionaryHeader(encoded)
	require.NoError(t, err)
	require.Equal(t, domain.KindString, header.Kind)
	require.Equal(t, uint32(3), header.U)
	require.Equal(t, uint32(4), header.N)

	decoded, err := DecodeDictionaryString(header, body)
	require.NoError(t, err)
	require.Equal(t, s.dict, decoded.dict)
	require.Equal(t, s.attrs, decoded.attrs)
}

func TestDecodeDictionaryHeaderTruncated(t *testing.T) {
	_, _, err := DecodeDictionaryHeader([]byte{1, 2, 3})
	require.Error(t, err)
}

func TestAttrWidthBitsAccountsForSentinel(t *testing.T) {
	require.Equal(t, 1, attrWidthBits(0))
	require.Equal(t, 2, attrWidthBits(3)) // need 4 distinct codes (0..2 + sentinel)
	require.Equal(t, 8, attrWidthBits(255))
	require.Equal(t, 9, attrWidthBits(256))
}
