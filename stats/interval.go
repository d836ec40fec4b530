package stats

import (
	"github.com/felmond13/colcore/domain"
	"github.com/felmond13/colcore/segment"
)

// sliceInterval narrows the closed interval [lo, hi] by a predicate the
// same way MinMaxFilter.Sliced narrows a whole segment's extremes (spec
// §4.1). RangeFilter.Sliced applies it to each range; MinMaxFilter.Sliced
// carries the same rules inline rather than calling it. A single range is
// itself a tiny min-max filter (spec §4.2 invariant:
// "single-range filter must behave identically to a min-max filter").
func sliceInterval[T segment.Ordered](kind domain.ElementKind, lo, hi T, p domain.Predicate) (newLo, newHi T, ok bool) {
	litFn := func(v domain.Value) T { return segment.FromValue[T](kind, v) }
	switch p.Condition {
	case domain.LessThan:
		v := litFn(p.Literal)
		if !segment.Less(lo, v) {
			return lo, hi, false
		}
		return lo, v, true
	case domain.LessThanEquals:
		v := litFn(p.Literal)
		if segment.Less(v, lo) {
			return lo, hi, false
		}
		newHi = v
		if segment.Less(hi, v) {
			newHi = hi
		}
		return lo, newHi, true
	case domain.GreaterThan:
		v := litFn(p.Literal)
		if !segment.Less(v, hi) {
			return lo, hi, false
		}
		newLo = v
		if segment.Less(newLo, lo) {
			newLo = lo
		}
		return newLo, hi, true
	case domain.GreaterThanEquals:
		v := litFn(p.Literal)
		if segment.Less(hi, v) {
			return lo, hi, false
		}
		newLo = v
		if segment.Less(newLo, lo) {
			newLo = lo
		}
		return newLo, hi, true
	case domain.Equals:
		v := litFn(p.Literal)
		if segment.Less(v, lo) || segment.Less(hi, v) {
			return lo, hi, false
		}
		return v, v, true
	case domain.NotEquals:
		return lo, hi, true
	case domain.Between:
		a, b := litFn(p.Literal), litFn(p.Literal2)
		newLo, newHi = a, b
		if segment.Less(lo, newLo) {
			// lo < a: a is the tighter lower bound already
		} else {
			newLo = lo
		}
		if segment.Less(newHi, hi) {
			// b < hi: b is the tighter upper bound already
		} else {
			newHi = hi
		}
		if segment.Less(newHi, newLo) {
			return lo, hi, false
		}
		return newLo, newHi, true
	default:
		return lo, hi, true
	}
}
