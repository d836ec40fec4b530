package scan

import (
	"sort"

	"github.com/felmond13/colcore/cerr"
	"github.com/felmond13/colcore/domain"
	"github.com/felmond13/colcore/segment"
)

// SortedAccelerator implements spec §4.7: when a value segment's ordered_by
// tag matches the predicate's column, the matching rows form one
// contiguous offset range, found by binary search instead of a linear scan.
// Only ValueSegment is accelerated here — a dictionary segment's attribute
// vector being "sorted" would mean its value-ids happen to be monotonic in
// row order, a separate and much rarer property than the dictionary itself
// being sorted (which is always true), so this module scopes the
// accelerator to the common case spec §8's testable scenario exercises.
//
// Grounded on index/btree.go's lower_bound/upper_bound binary-search style,
// reapplied here directly against a segment's physical row order instead of
// a B-tree page's key array.
func SortedAccelerator[T segment.Ordered](s *segment.ValueSegment[T], chunkID uint32, columnID uint32, p domain.Predicate, out *domain.PositionList) error {
	tag := s.OrderedBy()
	if tag == nil || tag.ColumnID != columnID {
		return cerr.Fatal("scan: sorted accelerator invoked without a matching ordered_by tag")
	}
	if p.Condition.Unsupported() {
		return cerr.Unsupported("scan: condition %v is not evaluated by the sorted accelerator", p.Condition)
	}

	n := s.Len()
	nullCount := 0
	for i := 0; i < n; i++ {
		if s.IsNull(i) {
			nullCount++
		}
	}
	var start, end int
	if tag.Mode.NullsFirst() {
		start, end = nullCount, n
	} else {
		start, end = 0, n-nullCount
	}

	emitRange := func(first, last int) {
		for i := first; i < last; i++ {
			out.Append(domain.Position{ChunkID: chunkID, ChunkOffset: uint32(i)})
		}
	}

	if p.Condition.IsNullCheck() {
		if p.Condition == domain.IsNull {
			if tag.Mode.NullsFirst() {
				emitRange(0, nullCount)
			} else {
				emitRange(n-nullCount, n)
			}
		} else {
			emitRange(start, end)
		}
		return nil
	}
	if p.HasNullLiteral() {
		return nil
	}

	desc := tag.Mode.Descending()

	lowerAsc := func(v T) int {
		return start + sort.Search(end-start, func(k int) bool { return !segment.Less(s.Value(start+k), v) })
	}
	upperAsc := func(v T) int {
		return start + sort.Search(end-start, func(k int) bool { return segment.Less(v, s.Value(start+k)) })
	}
	lowerDesc := func(v T) int {
		return start + sort.Search(end-start, func(k int) bool { return !segment.Less(v, s.Value(start+k)) })
	}
	upperDesc := func(v T) int {
		return start + sort.Search(end-start, func(k int) bool { return segment.Less(s.Value(start+k), v) })
	}

	lit1 := segment.FromValue[T](s.Kind(), p.Literal)
	var first, last int
	switch p.Condition {
	case domain.Equals:
		if desc {
			first, last = lowerDesc(lit1), upperDesc(lit1)
		} else {
			first, last = lowerAsc(lit1), upperAsc(lit1)
		}
	case domain.NotEquals:
		// Not contiguous in general; the sorted accelerator only handles
		// the contiguous-range conditions spec §4.7 lists explicitly.
		return cerr.Unsupported("scan: NotEquals has no contiguous sorted range")
	case domain.LessThan:
		if desc {
			first, last = upperDesc(lit1), end
		} else {
			first, last = start, lowerAsc(lit1)
		}
	case domain.LessThanEquals:
		if desc {
			first, last = lowerDesc(lit1), end
		} else {
			first, last = start, upperAsc(lit1)
		}
	case domain.GreaterThan:
		if desc {
			first, last = start, lowerDesc(lit1)
		} else {
			first, last = upperAsc(lit1), end
		}
	case domain.GreaterThanEquals:
		if desc {
			first, last = start, upperDesc(lit1)
		} else {
			first, last = lowerAsc(lit1), end
		}
	case domain.Between:
		lit2 := segment.FromValue[T](s.Kind(), p.Literal2)
		if desc {
			first, last = lowerDesc(lit2), upperDesc(lit1)
		} else {
			first, last = lowerAsc(lit1), upperAsc(lit2)
		}
	default:
		return cerr.Unsupported("scan: condition %v is not evaluated by the sorted accelerator", p.Condition)
	}

	if last < first {
		last = first
	}
	emitRange(first, last)
	return nil
}
