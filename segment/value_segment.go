package segment

import "github.com/felmond13/colcore/domain"

// ValueSegment is the dense-array encoding of one column in one chunk: a
// flat array of values of a single element kind plus a parallel null
// bitmap of the same length (spec §3).
//
// Grounded on storage/document.go's Field model (a type tag plus a typed
// payload); unlike Field, the payload here is a flat []T rather than
// interface{}, since this is the generic-path scan's hot data.
type ValueSegment[T Ordered] struct {
	kind      domain.ElementKind
	values    []T
	nulls     NullBitmap
	orderedBy *domain.OrderedBy
}

// NewValueSegment builds a value segment from values and a null bitmap.
// The bitmap must have the same length as values (spec §3 invariant);
// violating this is a programmer error.
func NewValueSegment[T Ordered](kind domain.ElementKind, values []T, nulls NullBitmap) *ValueSegment[T] {
	if nulls.Len() != len(values) {
		panic("segment: null bitmap length does not match value array length")
	}
	return &ValueSegment[T]{kind: kind, values: values, nulls: nulls}
}

// Kind returns the segment's element kind.
func (s *ValueSegment[T]) Kind() domain.ElementKind { return s.kind }

// Len returns the number of rows in the segment.
func (s *ValueSegment[T]) Len() int { return len(s.values) }

// Value returns the raw (possibly meaningless-if-null) value at row i.
func (s *ValueSegment[T]) Value(i int) T { return s.values[i] }

// IsNull reports whether row i is null.
func (s *ValueSegment[T]) IsNull(i int) bool { return s.nulls.Get(i) }

// OrderedBy returns the segment's sort-metadata tag, or nil if untagged.
func (s *ValueSegment[T]) OrderedBy() *domain.OrderedBy { return s.orderedBy }

// SetOrderedBy tags the segment as ordered. The caller is asserting the
// contract described in spec §3: non-null values in physical order form
// the stated monotonic sequence, nulls grouped at one end.
func (s *ValueSegment[T]) SetOrderedBy(tag domain.OrderedBy) { s.orderedBy = &tag }

// AsDomainValue lifts row i into a domain.Value, honoring the null bitmap.
func (s *ValueSegment[T]) AsDomainValue(i int) domain.Value {
	if s.nulls.Get(i) {
		return domain.NullValue(s.kind)
	}
	return ToValue(s.kind, s.values[i])
}
