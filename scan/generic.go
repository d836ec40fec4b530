package scan

import (
	"github.com/felmond13/colcore/cerr"
	"github.com/felmond13/colcore/domain"
	"github.com/felmond13/colcore/segment"
)

// ValueSegment implements spec §4.4, the generic path over a dense value
// segment: evaluate the predicate per candidate row, appending
// (chunk_id, offset) to out for each match.
//
// Grounded on engine/eval.go's compare/compareSingle dispatch (a switch over
// the comparison operator applied to two resolved values) and
// engine/executor.go's scanCollectionRaw/readByLocs accumulation loop
// (iterate candidates, test, append to a caller-owned slice) — generalized
// here from a predicate over an interface{} document field to a predicate
// specialized at compile time on T.
func ValueSegment[T segment.Ordered](s *segment.ValueSegment[T], chunkID uint32, p domain.Predicate, filter OffsetFilter, out *domain.PositionList) error {
	if p.Condition.Unsupported() {
		return cerr.Unsupported("scan: condition %v is not evaluated by the generic path", p.Condition)
	}
	if p.Condition.IsNullCheck() {
		want := p.Condition == domain.IsNull
		forEachOffset(s.Len(), filter, func(off uint32) {
			if s.IsNull(int(off)) == want {
				out.Append(domain.Position{ChunkID: chunkID, ChunkOffset: off})
			}
		})
		return nil
	}
	if p.HasNullLiteral() {
		// Three-valued logic: comparison with null is unknown, which a
		// WHERE clause treats as no match (spec §4.4, §4.8).
		return nil
	}

	lit1 := segment.FromValue[T](s.Kind(), p.Literal)
	var lit2 T
	if p.Condition == domain.Between {
		lit2 = segment.FromValue[T](s.Kind(), p.Literal2)
	}

	matches := func(v T) bool {
		switch p.Condition {
		case domain.Equals:
			return v == lit1
		case domain.NotEquals:
			return v != lit1
		case domain.LessThan:
			return segment.Less(v, lit1)
		case domain.LessThanEquals:
			return !segment.Less(lit1, v)
		case domain.GreaterThan:
			return segment.Less(lit1, v)
		case domain.GreaterThanEquals:
			return !segment.Less(v, lit1)
		case domain.Between:
			return !segment.Less(v, lit1) && !segment.Less(lit2, v)
		default:
			return false
		}
	}

	forEachOffset(s.Len(), filter, func(off uint32) {
		i := int(off)
		if s.IsNull(i) {
			return // null slots never match a comparison predicate
		}
		if matches(s.Value(i)) {
			out.Append(domain.Position{ChunkID: chunkID, ChunkOffset: off})
		}
	})
	return nil
}
