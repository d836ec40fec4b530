package stats

import (
	"math"
	"math/big"
	"sort"

	"github.com/felmond13/colcore/cerr"
	"github.com/felmond13/colcore/domain"
	"github.com/felmond13/colcore/segment"
)

// Numeric is the range filter's element domain: scalar kinds only (spec
// §4.2 "Scalar only (integer and floating kinds)"); strings have no gap
// magnitude to split on.
type Numeric interface {
	int32 | int64 | float32 | float64
}

// Range is one disjoint, inclusive sub-interval of a RangeFilter.
type Range[T Numeric] struct {
	Lo, Hi T
}

// RangeFilter narrows a segment's value domain into up to maxRanges
// disjoint, inclusive sub-intervals separated by the largest gaps between
// consecutive distinct values (spec §4.2). A RangeFilter with exactly one
// range behaves identically to a MinMaxFilter over the same extremes (spec
// §8 testable property).
type RangeFilter[T Numeric] struct {
	kind   domain.ElementKind
	Ranges []Range[T]
}

func gapMagnitude[T Numeric](a, b T) (float64, bool) {
	switch x := any(a).(type) {
	case int32:
		y := any(b).(int32)
		return float64(int64(y) - int64(x)), true
	case int64:
		y := any(b).(int64)
		d := new(big.Int).Sub(big.NewInt(y), big.NewInt(x))
		if !d.IsInt64() {
			return 0, false
		}
		return float64(d.Int64()), true
	case float32:
		y := any(b).(float32)
		d := float64(y) - float64(x)
		return d, !math.IsInf(d, 0) && !math.IsNaN(d)
	case float64:
		y := any(b).(float64)
		d := y - x
		return d, !math.IsInf(d, 0) && !math.IsNaN(d)
	default:
		panic("stats: gapMagnitude called with non-numeric type")
	}
}

// BuildRangeFilter builds a range filter from a strictly ascending, distinct
// list of observed values. It asserts sortedness up front (a cheap,
// build-time-only check — the hot scan path never calls this); violating it
// is an invalid-argument from the caller assembling the distinct list, not
// a statistics-layer bug.
//
// Gaps are computed with widened or saturating-checked arithmetic (spec §9
// "Numeric overflow in range building") so a huge consecutive difference
// never wraps; any gap that cannot be computed safely is dropped from
// consideration for splitting, same as if it were small.
func BuildRangeFilter[T Numeric](kind domain.ElementKind, sorted []T, maxRanges int) (*RangeFilter[T], error) {
	if maxRanges < 1 {
		return nil, cerr.InvalidArgument("stats: max_ranges must be >= 1, got %d", maxRanges)
	}
	if len(sorted) == 0 {
		return nil, cerr.InvalidArgument("stats: range filter requires at least one value")
	}
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1] >= sorted[i] {
			return nil, cerr.InvalidArgument("stats: range filter input is not strictly ascending at index %d", i)
		}
	}

	n := len(sorted)
	if n == 1 || maxRanges == 1 {
		return &RangeFilter[T]{kind: kind, Ranges: []Range[T]{{Lo: sorted[0], Hi: sorted[n-1]}}}, nil
	}

	type candidate struct {
		idx int // split after sorted[idx]
		gap float64
	}
	candidates := make([]candidate, 0, n-1)
	for i := 0; i < n-1; i++ {
		gap, safe := gapMagnitude(sorted[i], sorted[i+1])
		if !safe {
			continue
		}
		candidates = append(candidates, candidate{idx: i, gap: gap})
	}

	splits := maxRanges - 1
	if splits > len(candidates) {
		splits = len(candidates)
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].gap > candidates[j].gap })
	chosen := make([]int, splits)
	for i := 0; i < splits; i++ {
		chosen[i] = candidates[i].idx
	}
	sort.Ints(chosen)

	ranges := make([]Range[T], 0, splits+1)
	start := 0
	for _, idx := range chosen {
		ranges = append(ranges, Range[T]{Lo: sorted[start], Hi: sorted[idx]})
		start = idx + 1
	}
	ranges = append(ranges, Range[T]{Lo: sorted[start], Hi: sorted[n-1]})

	return &RangeFilter[T]{kind: kind, Ranges: ranges}, nil
}

func (f *RangeFilter[T]) lit(v domain.Value) T { return segment.FromValue[T](f.kind, v) }

// firstRangeAtOrAfter returns the index of the first range whose Hi >= v, or
// len(f.Ranges) if v is beyond every range's upper bound.
func (f *RangeFilter[T]) firstRangeAtOrAfter(v T) int {
	return sort.Search(len(f.Ranges), func(i int) bool { return f.Ranges[i].Hi >= v })
}

// CanPrune implements the pruning table from spec §4.2. For Equals,
// LessThanEquals, GreaterThanEquals and Between, a literal exactly equal to
// a range boundary (l_i or h_i) never prunes. LessThan does prune at l_0 and
// GreaterThan at h_last, and NotEquals prunes a single one-point range equal
// to the literal.
func (f *RangeFilter[T]) CanPrune(p domain.Predicate) bool {
	if p.Condition.IsNullCheck() || p.Condition.Unsupported() || p.HasNullLiteral() || len(f.Ranges) == 0 {
		return false
	}
	l0, hLast := f.Ranges[0].Lo, f.Ranges[len(f.Ranges)-1].Hi
	switch p.Condition {
	case domain.Equals:
		v := f.lit(p.Literal)
		idx := f.firstRangeAtOrAfter(v)
		if idx == len(f.Ranges) {
			return true
		}
		return f.Ranges[idx].Lo > v
	case domain.NotEquals:
		if len(f.Ranges) != 1 {
			return false
		}
		return f.Ranges[0].Lo == f.Ranges[0].Hi && f.Ranges[0].Lo == f.lit(p.Literal)
	case domain.LessThan:
		return f.lit(p.Literal) <= l0
	case domain.LessThanEquals:
		return f.lit(p.Literal) < l0
	case domain.GreaterThan:
		return f.lit(p.Literal) >= hLast
	case domain.GreaterThanEquals:
		return f.lit(p.Literal) > hLast
	case domain.Between:
		v1, v2 := f.lit(p.Literal), f.lit(p.Literal2)
		idx := f.firstRangeAtOrAfter(v1)
		if idx == len(f.Ranges) {
			return true
		}
		return f.Ranges[idx].Lo > v2
	default:
		return false
	}
}

// EstimateCardinality mirrors MinMaxFilter.EstimateCardinality: exact
// MatchesNone when CanPrune holds, otherwise a conservative guess — a bare
// range filter carries no per-range row counts to do better.
func (f *RangeFilter[T]) EstimateCardinality(p domain.Predicate) Estimate {
	if f.CanPrune(p) {
		return Estimate{Tag: MatchesNone, Count: 0}
	}
	if p.Condition.IsNullCheck() || p.Condition.Unsupported() || p.HasNullLiteral() {
		return Estimate{Tag: MatchesApproximately, Count: 0.5}
	}
	if p.Condition == domain.Equals && len(f.Ranges) == 1 && f.Ranges[0].Lo == f.Ranges[0].Hi {
		return Estimate{Tag: MatchesAll, Count: 1}
	}
	return Estimate{Tag: MatchesApproximately, Count: float64(1) / float64(len(f.Ranges)+1)}
}

// Sliced narrows every range independently (a range filter's ranges are
// each a tiny min-max filter) and drops any that become empty, returning
// nil if none survive.
func (f *RangeFilter[T]) Sliced(p domain.Predicate) *RangeFilter[T] {
	if p.Condition.IsNullCheck() || p.Condition.Unsupported() || p.HasNullLiteral() {
		return f
	}
	var out []Range[T]
	for _, r := range f.Ranges {
		lo, hi, ok := sliceInterval[T](f.kind, r.Lo, r.Hi, p)
		if !ok {
			continue
		}
		out = append(out, Range[T]{Lo: lo, Hi: hi})
	}
	if len(out) == 0 {
		return nil
	}
	return &RangeFilter[T]{kind: f.kind, Ranges: out}
}

// Scaled returns a range filter over an equally-shaped selectivity-reduced
// copy: like MinMaxFilter, the observed value intervals do not shrink under
// row-count scaling alone.
func (f *RangeFilter[T]) Scaled(_ float64) *RangeFilter[T] {
	out := make([]Range[T], len(f.Ranges))
	copy(out, f.Ranges)
	return &RangeFilter[T]{kind: f.kind, Ranges: out}
}
