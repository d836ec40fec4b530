package segment

import (
	"encoding/binary"
	"fmt"
	"math/bits"

	"github.com/klauspost/compress/snappy"

	"github.com/felmond13/colcore/domain"
)

// Persisted dictionary-segment layout (spec §6):
//
//	Header: element-kind tag (1 byte), U (uint32), N (uint32),
//	        attribute-vector width in bits (1 byte)
//	Body:   U sorted values, then N packed value-ids (width bits each,
//	        INVALID = (1<<width)-1)
//
// On the wire the header is followed by the compressed body length
// (uint32), then the snappy-compressed body. All integers are little-endian.
//
// Grounded on storage/page.go's fixed-offset PageHeader layout (explicit
// byte ranges documented and accessed via encoding/binary) and
// storage/pager.go's compressRecord/DecompressRecord snappy usage — here
// applied to the dictionary body rather than a page's record slots.
const (
	codecHeaderKindOff  = 0
	codecHeaderUOff     = 1
	codecHeaderNOff     = 5
	codecHeaderWidthOff = 9
	codecHeaderSize     = 10
)

// attrWidthBits returns the number of bits needed to represent every
// value-id in [0, U) plus the sentinel InvalidValueID, i.e. the smallest
// width w such that (1<<w)-1 >= U.
func attrWidthBits(u uint32) int {
	if u == 0 {
		return 1
	}
	need := u + 1 // value-ids 0..U-1 plus one reserved sentinel slot
	w := bits.Len32(need - 1)
	if w == 0 {
		w = 1
	}
	return w
}

// EncodeDictionaryInt64 persists an int64-backed dictionary segment in the
// wire format from spec §6, snappy-compressing the body the way the
// teacher's pager compresses page records.
func EncodeDictionaryInt64(s *DictionarySegment[int64]) []byte {
	return encodeDictionary(s.kind, s.dict, s.attrs, func(buf []byte, v int64) []byte {
		return binary.LittleEndian.AppendUint64(buf, uint64(v))
	})
}

// EncodeDictionaryString persists a string-backed dictionary segment. Each
// dictionary string is length-prefixed (uint32) since strings are
// variable-width, unlike the fixed-width numeric kinds.
func EncodeDictionaryString(s *DictionarySegment[string]) []byte {
	return encodeDictionary(s.kind, s.dict, s.attrs, func(buf []byte, v string) []byte {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(v)))
		return append(buf, v...)
	})
}

func encodeDictionary[T any](kind domain.ElementKind, dict []T, attrs []uint32, encodeVal func([]byte, T) []byte) []byte {
	u := uint32(len(dict))
	n := uint32(len(attrs))
	width := attrWidthBits(u)

	header := make([]byte, codecHeaderSize)
	header[codecHeaderKindOff] = byte(kind)
	binary.LittleEndian.PutUint32(header[codecHeaderUOff:], u)
	binary.LittleEndian.PutUint32(header[codecHeaderNOff:], n)
	header[codecHeaderWidthOff] = byte(width)

	body := make([]byte, 0, 64+int(n)*8)
	for _, v := range dict {
		body = encodeVal(body, v)
	}
	body = appendPackedAttrs(body, attrs, width)

	compressed := snappy.Encode(nil, body)
	out := make([]byte, 0, codecHeaderSize+4+len(compressed))
	out = append(out, header...)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(compressed)))
	out = append(out, compressed...)
	return out
}

// appendPackedAttrs appends N width-bit-wide attribute entries to buf,
// packing them LSB-first: the first entry occupies the lowest bits of the
// first byte, and readPackedAttrs reads them back in the same order.
func appendPackedAttrs(buf []byte, attrs []uint32, width int) []byte {
	invalid := attrInvalidForWidth(width)
	var acc uint64
	var accBits int
	for _, a := range attrs {
		v := a
		if a == InvalidValueID {
			v = invalid
		}
		acc |= uint64(v) << uint(accBits)
		accBits += width
		for accBits >= 8 {
			buf = append(buf, byte(acc))
			acc >>= 8
			accBits -= 8
		}
	}
	if accBits > 0 {
		buf = append(buf, byte(acc))
	}
	return buf
}

func attrInvalidForWidth(width int) uint32 {
	return uint32((uint64(1) << uint(width)) - 1)
}

// DictionaryHeader describes a persisted dictionary segment's header
// fields, returned by DecodeDictionaryHeader before the caller picks the
// right typed decode function for the element kind.
type DictionaryHeader struct {
	Kind  domain.ElementKind
	U     uint32
	N     uint32
	Width int
}

// DecodeDictionaryHeader reads just the header of a persisted dictionary
// segment, letting a caller dispatch to the kind-specific body decoder
// without guessing the element kind up front.
func DecodeDictionaryHeader(data []byte) (DictionaryHeader, []byte, error) {
	if len(data) < codecHeaderSize+4 {
		return DictionaryHeader{}, nil, fmt.Errorf("segment: persisted dictionary header truncated")
	}
	h := DictionaryHeader{
		Kind:  domain.ElementKind(data[codecHeaderKindOff]),
		U:     binary.LittleEndian.Uint32(data[codecHeaderUOff:]),
		N:     binary.LittleEndian.Uint32(data[codecHeaderNOff:]),
		Width: int(data[codecHeaderWidthOff]),
	}
	rest := data[codecHeaderSize:]
	bodyLen := binary.LittleEndian.Uint32(rest[:4])
	rest = rest[4:]
	if uint32(len(rest)) < bodyLen {
		return DictionaryHeader{}, nil, fmt.Errorf("segment: persisted dictionary body truncated")
	}
	return h, rest[:bodyLen], nil
}

// DecodeDictionaryInt64 decodes a persisted int64 dictionary segment body
// (as split off by DecodeDictionaryHeader) back into a live segment.
func DecodeDictionaryInt64(h DictionaryHeader, compressed []byte) (*DictionarySegment[int64], error) {
	body, err := snappy.Decode(nil, compressed)
	if err != nil {
		return nil, fmt.Errorf("segment: snappy decode: %w", err)
	}
	if uint32(len(body)) < h.U*8 {
		return nil, fmt.Errorf("segment: dictionary body truncated")
	}
	dict := make([]int64, h.U)
	off := 0
	for i := range dict {
		dict[i] = int64(binary.LittleEndian.Uint64(body[off:]))
		off += 8
	}
	attrs, err := readPackedAttrs(body[off:], int(h.N), h.Width)
	if err != nil {
		return nil, err
	}
	return NewDictionarySegment(h.Kind, dict, attrs), nil
}

// DecodeDictionaryString decodes a persisted string dictionary segment
// body back into a live segment.
func DecodeDictionaryString(h DictionaryHeader, compressed []byte) (*DictionarySegment[string], error) {
	body, err := snappy.Decode(nil, compressed)
	if err != nil {
		return nil, fmt.Errorf("segment: snappy decode: %w", err)
	}
	dict := make([]string, h.U)
	off := 0
	for i := range dict {
		if off+4 > len(body) {
			return nil, fmt.Errorf("segment: dictionary string length truncated")
		}
		slen := int(binary.LittleEndian.Uint32(body[off:]))
		off += 4
		if off+slen > len(body) {
			return nil, fmt.Errorf("segment: dictionary string value truncated")
		}
		dict[i] = string(body[off : off+slen])
		off += slen
	}
	attrs, err := readPackedAttrs(body[off:], int(h.N), h.Width)
	if err != nil {
		return nil, err
	}
	return NewDictionarySegment(h.Kind, dict, attrs), nil
}

func readPackedAttrs(buf []byte, n int, width int) ([]uint32, error) {
	invalid := attrInvalidForWidth(width)
	attrs := make([]uint32, n)
	var acc uint64
	var accBits int
	pos := 0
	for i := 0; i < n; i++ {
		for accBits < width {
			if pos >= len(buf) {
				return nil, fmt.Errorf("segment: packed attribute vector truncated")
			}
			acc |= uint64(buf[pos]) << uint(accBits)
			pos++
			accBits += 8
		}
		v := uint32(acc & ((uint64(1) << uint(width)) - 1))
		acc >>= uint(width)
		accBits -= width
		if v == invalid {
			attrs[i] = InvalidValueID
		} else {
			attrs[i] = v
		}
	}
	return attrs, nil
}
