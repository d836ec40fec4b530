package segment

import (
	"fmt"
	"sort"

	"github.com/cespare/xxhash/v2"

	"github.com/felmond13/colcore/domain"
)

// InvalidValueID is the reserved attribute-vector entry denoting null
// (spec §3, §9: "Never use signed sentinels"). It is numerically outside
// [0, U) for any U this module will ever build, since U is bounded by the
// number of rows in a chunk, far below 2^32-1.
const InvalidValueID uint32 = 0xFFFFFFFF

// DictionarySegment is a strictly-sorted unique-value dictionary D[0..U-1]
// plus a parallel attribute vector A[0..N-1] of value-ids in [0, U), with
// InvalidValueID denoting null (spec §3).
//
// Grounded on index/btree.go's leaf-entry layout (sorted keys + integer
// payload) for the "sorted array you binary-search" shape, generalized
// from disk pages to an in-memory dictionary.
type DictionarySegment[T Ordered] struct {
	kind  domain.ElementKind
	dict  []T
	attrs []uint32

	orderedBy *domain.OrderedBy
}

// NewDictionarySegment builds a dictionary segment directly from an
// already-sorted, already-deduplicated dictionary and its attribute
// vector. It panics if the dictionary is not strictly ascending or if any
// attribute entry falls outside [0, U) ∪ {InvalidValueID} (spec §3
// invariants; violating them is a cerr.ErrFatal-class programmer error at
// the boundary where a caller constructs a segment by hand).
func NewDictionarySegment[T Ordered](kind domain.ElementKind, dict []T, attrs []uint32) *DictionarySegment[T] {
	for i := 1; i < len(dict); i++ {
		if !Less(dict[i-1], dict[i]) {
			panic("segment: dictionary is not strictly ascending")
		}
	}
	u := uint32(len(dict))
	for _, a := range attrs {
		if a != InvalidValueID && a >= u {
			panic("segment: attribute vector entry out of range")
		}
	}
	return &DictionarySegment[T]{kind: kind, dict: dict, attrs: attrs}
}

// BuildDictionarySegment constructs a dictionary segment from a raw,
// unsorted column of values plus a parallel null flag slice of the same
// length. Distinct-value detection during the build uses an xxhash
// fingerprint per candidate value (the grafana/tempo stack's go-to hasher)
// so dedup is a hash-set probe rather than an O(U) linear scan per value;
// the fingerprint plays no role after the sorted dictionary is final.
func BuildDictionarySegment[T Ordered](kind domain.ElementKind, values []T, nulls []bool) *DictionarySegment[T] {
	if len(values) != len(nulls) {
		panic("segment: values and nulls length mismatch")
	}

	seen := make(map[uint64][]T, len(values))
	var distinct []T
	fingerprint := func(v T) uint64 {
		return xxhash.Sum64String(fmt.Sprintf("%v", v))
	}
	for i, v := range values {
		if nulls[i] {
			continue
		}
		h := fingerprint(v)
		dup := false
		for _, cand := range seen[h] {
			if cand == v {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		seen[h] = append(seen[h], v)
		distinct = append(distinct, v)
	}
	sort.Slice(distinct, func(i, j int) bool { return Less(distinct[i], distinct[j]) })

	index := make(map[T]uint32, len(distinct))
	for i, v := range distinct {
		index[v] = uint32(i)
	}

	attrs := make([]uint32, len(values))
	for i, v := range values {
		if nulls[i] {
			attrs[i] = InvalidValueID
			continue
		}
		attrs[i] = index[v]
	}

	return NewDictionarySegment(kind, distinct, attrs)
}

// Kind returns the segment's element kind.
func (s *DictionarySegment[T]) Kind() domain.ElementKind { return s.kind }

// Len returns N, the number of rows (attribute-vector entries).
func (s *DictionarySegment[T]) Len() int { return len(s.attrs) }

// UniqueValuesCount returns U, the dictionary size.
func (s *DictionarySegment[T]) UniqueValuesCount() uint32 { return uint32(len(s.dict)) }

// DictValue returns the dictionary entry at value-id id.
func (s *DictionarySegment[T]) DictValue(id uint32) T { return s.dict[id] }

// AttrAt returns the attribute-vector entry (value-id, or InvalidValueID)
// at row i.
func (s *DictionarySegment[T]) AttrAt(i int) uint32 { return s.attrs[i] }

// OrderedBy returns the segment's sort-metadata tag, or nil if untagged.
func (s *DictionarySegment[T]) OrderedBy() *domain.OrderedBy { return s.orderedBy }

// SetOrderedBy tags the segment as ordered (see ValueSegment.SetOrderedBy).
func (s *DictionarySegment[T]) SetOrderedBy(tag domain.OrderedBy) { s.orderedBy = &tag }

// LowerBound returns the smallest index i in [0, U] such that D[i] >= v
// (or U if no such index exists), in O(log U).
func (s *DictionarySegment[T]) LowerBound(v T) uint32 {
	n := len(s.dict)
	i := sort.Search(n, func(i int) bool { return !Less(s.dict[i], v) })
	return uint32(i)
}

// UpperBound returns the smallest index i in [0, U] such that D[i] > v
// (or U if no such index exists), in O(log U).
func (s *DictionarySegment[T]) UpperBound(v T) uint32 {
	n := len(s.dict)
	i := sort.Search(n, func(i int) bool { return Less(v, s.dict[i]) })
	return uint32(i)
}

// AsDomainValue lifts row i into a domain.Value, honoring InvalidValueID.
func (s *DictionarySegment[T]) AsDomainValue(i int) domain.Value {
	id := s.attrs[i]
	if id == InvalidValueID {
		return domain.NullValue(s.kind)
	}
	return ToValue(s.kind, s.dict[id])
}
