package stats

import (
	"github.com/felmond13/colcore/domain"
	"github.com/felmond13/colcore/segment"
)

// MinMaxFilter is the (min, max) statistic over a segment's non-null
// values (spec §4.1). Invariant: Min <= Max.
type MinMaxFilter[T segment.Ordered] struct {
	kind domain.ElementKind
	Min  T
	Max  T
}

// NewMinMaxFilter builds a min-max filter, panicking if min > max — the
// caller (a segment scanner computing the extremes) violated the
// invariant.
func NewMinMaxFilter[T segment.Ordered](kind domain.ElementKind, min, max T) *MinMaxFilter[T] {
	if segment.Less(max, min) {
		panic("stats: min-max filter built with min > max")
	}
	return &MinMaxFilter[T]{kind: kind, Min: min, Max: max}
}

// BuildMinMaxFilter scans a value segment's non-null values once to find
// the extremes. Returns nil if every row is null.
func BuildMinMaxFilter[T segment.Ordered](s *segment.ValueSegment[T]) *MinMaxFilter[T] {
	var min, max T
	found := false
	for i := 0; i < s.Len(); i++ {
		if s.IsNull(i) {
			continue
		}
		v := s.Value(i)
		if !found {
			min, max, found = v, v, true
			continue
		}
		if segment.Less(v, min) {
			min = v
		}
		if segment.Less(max, v) {
			max = v
		}
	}
	if !found {
		return nil
	}
	return NewMinMaxFilter(s.Kind(), min, max)
}

func (f *MinMaxFilter[T]) lit(v domain.Value) T { return segment.FromValue[T](f.kind, v) }

// CanPrune implements the pruning table from spec §4.1. A predicate whose
// literal is null, or a condition this statistic family does not
// recognize (IsNull/IsNotNull or an unsupported condition), never prunes.
func (f *MinMaxFilter[T]) CanPrune(p domain.Predicate) bool {
	if p.Condition.IsNullCheck() || p.Condition.Unsupported() || p.HasNullLiteral() {
		return false
	}
	switch p.Condition {
	case domain.Equals:
		v := f.lit(p.Literal)
		return segment.Less(v, f.Min) || segment.Less(f.Max, v)
	case domain.NotEquals:
		v := f.lit(p.Literal)
		return f.Min == f.Max && f.Min == v
	case domain.LessThan:
		v := f.lit(p.Literal)
		return !segment.Less(f.Min, v) // v <= min
	case domain.LessThanEquals:
		v := f.lit(p.Literal)
		return segment.Less(v, f.Min)
	case domain.GreaterThan:
		v := f.lit(p.Literal)
		return !segment.Less(v, f.Max) // v >= max
	case domain.GreaterThanEquals:
		v := f.lit(p.Literal)
		return segment.Less(f.Max, v)
	case domain.Between:
		v1, v2 := f.lit(p.Literal), f.lit(p.Literal2)
		return segment.Less(v2, f.Min) || segment.Less(f.Max, v1)
	default:
		return false
	}
}

// EstimateCardinality returns MatchesNone exactly when CanPrune is true
// (spec §4.1 contract), and otherwise a conservative MatchesApproximately
// or MatchesAll guess with no access to row counts (a bare min-max filter
// carries none, and Scaled does not add any).
func (f *MinMaxFilter[T]) EstimateCardinality(p domain.Predicate) Estimate {
	if f.CanPrune(p) {
		return Estimate{Tag: MatchesNone, Count: 0}
	}
	if p.Condition.IsNullCheck() || p.Condition.Unsupported() || p.HasNullLiteral() {
		return Estimate{Tag: MatchesApproximately, Count: 0.5}
	}
	if p.Condition == domain.Equals && f.Min == f.Max {
		return Estimate{Tag: MatchesAll, Count: 1}
	}
	return Estimate{Tag: MatchesApproximately, Count: 0.5}
}

// Sliced returns the narrower min-max filter describing the segment after
// applying the predicate, or nil when the result is provably empty (spec
// §4.1).
func (f *MinMaxFilter[T]) Sliced(p domain.Predicate) *MinMaxFilter[T] {
	if p.Condition.IsNullCheck() || p.Condition.Unsupported() || p.HasNullLiteral() {
		return f
	}
	switch p.Condition {
	case domain.LessThan:
		v := f.lit(p.Literal)
		if !segment.Less(f.Min, v) {
			return nil
		}
		return NewMinMaxFilter(f.kind, f.Min, v)
	case domain.LessThanEquals:
		v := f.lit(p.Literal)
		if segment.Less(v, f.Min) {
			return nil
		}
		hi := v
		if segment.Less(f.Max, v) {
			hi = f.Max
		}
		return NewMinMaxFilter(f.kind, f.Min, hi)
	case domain.GreaterThan:
		v := f.lit(p.Literal)
		if !segment.Less(v, f.Max) {
			return nil
		}
		lo := v
		if segment.Less(lo, f.Min) {
			lo = f.Min
		}
		return NewMinMaxFilter(f.kind, lo, f.Max)
	case domain.GreaterThanEquals:
		v := f.lit(p.Literal)
		if segment.Less(f.Max, v) {
			return nil
		}
		lo := v
		if segment.Less(lo, f.Min) {
			lo = f.Min
		}
		return NewMinMaxFilter(f.kind, lo, f.Max)
	case domain.Equals:
		v := f.lit(p.Literal)
		if segment.Less(v, f.Min) || segment.Less(f.Max, v) {
			return nil
		}
		return NewMinMaxFilter(f.kind, v, v)
	case domain.NotEquals:
		return f
	case domain.Between:
		lo, hi := f.lit(p.Literal), f.lit(p.Literal2)
		newLo, newHi := lo, hi
		if segment.Less(f.Min, newLo) {
			// f.Min < newLo: newLo (the literal) is already the tighter bound
		} else {
			newLo = f.Min
		}
		if segment.Less(newHi, f.Max) {
			// newHi (the literal) is already the tighter bound
		} else {
			newHi = f.Max
		}
		if segment.Less(newHi, newLo) {
			return nil
		}
		return NewMinMaxFilter(f.kind, newLo, newHi)
	default:
		return f
	}
}

// Scaled returns a min-max filter describing a selectivity-reduced copy of
// the same segment. The value interval of a min-max filter does not
// shrink under row-count scaling alone — selectivity reduces row counts,
// not the observed extremes — so Scaled returns an equal copy; it exists
// to satisfy the shared Statistic surface (spec §3 "supports ... scaling").
func (f *MinMaxFilter[T]) Scaled(_ float64) *MinMaxFilter[T] {
	return NewMinMaxFilter(f.kind, f.Min, f.Max)
}
