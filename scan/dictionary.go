package scan

import (
	"github.com/felmond13/colcore/cerr"
	"github.com/felmond13/colcore/domain"
	"github.com/felmond13/colcore/segment"
)

// DictionarySegment implements spec §4.5, the dictionary-accelerated
// single-literal path: precompute one search value-id via lower_bound or
// upper_bound, try the early-out tables, and otherwise iterate the
// attribute vector applying the per-condition match rule against the
// precomputed id rather than re-comparing values row by row.
//
// Grounded the same way as ValueSegment (engine/eval.go's comparison
// dispatch, engine/executor.go's accumulation loop), specialized further by
// index/btree.go's lower_bound/upper_bound binary-search idiom now exposed
// on segment.DictionarySegment.
func DictionarySegment[T segment.Ordered](s *segment.DictionarySegment[T], chunkID uint32, p domain.Predicate, filter OffsetFilter, out *domain.PositionList) error {
	if p.Condition.Unsupported() {
		return cerr.Unsupported("scan: condition %v is not evaluated by the dictionary path", p.Condition)
	}
	if p.Condition.IsNullCheck() {
		want := p.Condition == domain.IsNull
		forEachOffset(s.Len(), filter, func(off uint32) {
			isNull := s.AttrAt(int(off)) == segment.InvalidValueID
			if isNull == want {
				out.Append(domain.Position{ChunkID: chunkID, ChunkOffset: off})
			}
		})
		return nil
	}
	if p.Condition == domain.Between {
		return dictionaryBetween(s, chunkID, p, filter, out)
	}
	if p.HasNullLiteral() {
		return nil
	}

	v := segment.FromValue[T](s.Kind(), p.Literal)
	u := s.UniqueValuesCount()
	lb := s.LowerBound(v)
	ub := s.UpperBound(v)

	var search uint32
	switch p.Condition {
	case domain.Equals, domain.NotEquals, domain.LessThan, domain.GreaterThanEquals:
		search = lb
	case domain.LessThanEquals, domain.GreaterThan:
		search = ub
	default:
		return cerr.Unsupported("scan: condition %v is not evaluated by the dictionary path", p.Condition)
	}

	switch p.Condition {
	case domain.Equals:
		if search == ub { // no row can have this value at all
			return nil
		}
		if u == 1 {
			emitAll(s, chunkID, filter, out)
			return nil
		}
	case domain.NotEquals:
		if u == 1 && search != ub {
			return nil // the single distinct value equals v: nothing survives
		}
		if search == ub {
			// v is absent from the dictionary: every non-null row satisfies != v
			emitAll(s, chunkID, filter, out)
			return nil
		}
	case domain.LessThan, domain.LessThanEquals:
		// segment.DictionarySegment.LowerBound/UpperBound return U, not a
		// literal InvalidValueID, when v is beyond every dictionary entry —
		// spec §4.6's "search == INVALID" early-out is this case.
		if search == u {
			emitAll(s, chunkID, filter, out)
			return nil
		}
		if search == 0 {
			return nil
		}
	case domain.GreaterThan, domain.GreaterThanEquals:
		if search == 0 {
			emitAll(s, chunkID, filter, out)
			return nil
		}
		if search == u {
			return nil
		}
	}

	forEachOffset(s.Len(), filter, func(off uint32) {
		a := s.AttrAt(int(off))
		if a == segment.InvalidValueID {
			return
		}
		if dictionaryMatch(p.Condition, a, search) {
			out.Append(domain.Position{ChunkID: chunkID, ChunkOffset: off})
		}
	})
	return nil
}

func dictionaryMatch(cond domain.PredicateCondition, a, search uint32) bool {
	switch cond {
	case domain.Equals:
		return a == search
	case domain.NotEquals:
		return a != search
	case domain.LessThan:
		return a < search
	case domain.LessThanEquals:
		return a < search
	case domain.GreaterThan:
		return a >= search
	case domain.GreaterThanEquals:
		return a >= search
	default:
		return false
	}
}

func emitAll[T segment.Ordered](s *segment.DictionarySegment[T], chunkID uint32, filter OffsetFilter, out *domain.PositionList) {
	forEachOffset(s.Len(), filter, func(off uint32) {
		if s.AttrAt(int(off)) == segment.InvalidValueID {
			return
		}
		out.Append(domain.Position{ChunkID: chunkID, ChunkOffset: off})
	})
}

// dictionaryBetween implements spec §4.6: the unsigned value-id window
// trick. left_id = lower_bound(lo), right_id = upper_bound(hi); a row
// matches iff (a - left_id) < (right_id - left_id) computed in unsigned
// arithmetic, so InvalidValueID (numerically far outside any real window)
// never matches. Replicated exactly per design note 9 ("Value-id window
// trick"). Spec's "if right_id == INVALID treat it as U" is a no-op here:
// segment.DictionarySegment.UpperBound already returns U, never a literal
// InvalidValueID, when hi is beyond every dictionary entry.
func dictionaryBetween[T segment.Ordered](s *segment.DictionarySegment[T], chunkID uint32, p domain.Predicate, filter OffsetFilter, out *domain.PositionList) error {
	if p.HasNullLiteral() {
		return nil
	}
	lo := segment.FromValue[T](s.Kind(), p.Literal)
	hi := segment.FromValue[T](s.Kind(), p.Literal2)

	u := s.UniqueValuesCount()
	leftID := s.LowerBound(lo)
	rightID := s.UpperBound(hi)

	if leftID >= u || leftID == rightID {
		return nil // matches none
	}
	if leftID == 0 && rightID == u {
		emitAll(s, chunkID, filter, out)
		return nil
	}

	window := rightID - leftID
	forEachOffset(s.Len(), filter, func(off uint32) {
		a := s.AttrAt(int(off))
		if a-leftID < window {
			out.Append(domain.Position{ChunkID: chunkID, ChunkOffset: off})
		}
	})
	return nil
}
