package stats

import (
	"sort"

	"github.com/felmond13/colcore/cerr"
	"github.com/felmond13/colcore/domain"
	"github.com/felmond13/colcore/segment"
)

// StringHistogramDomain controls how many leading bytes of a string are
// considered when probing a string histogram (spec §4.3, spec note
// "configurable StringHistogramDomain"; SPEC_FULL.md §D item 3, grounded on
// brahmabase-tidb's statistics.Histogram common-prefix reduction). Bins are
// built from the full values; the prefix is applied to the literal and to
// the bin bounds when pruning and estimating. Strings shorter than the
// prefix are compared as they are, without padding. Prefix 0 means
// unbounded (full-string comparison).
type StringHistogramDomain struct {
	Prefix int
}

// FullStringDomain is the default domain: full-string comparison.
var FullStringDomain = StringHistogramDomain{Prefix: 0}

func (d StringHistogramDomain) reduce(s string) string {
	if d.Prefix <= 0 || len(s) <= d.Prefix {
		return s
	}
	return s[:d.Prefix]
}

// HistogramBin is one equal-distinct-count bin: a closed value range, the
// total row count observed in it, and the number of distinct values it
// covers.
type HistogramBin[T segment.Ordered] struct {
	Lo, Hi   T
	Height   uint64
	Distinct uint64
}

// Histogram is the equal-distinct-count histogram (spec §4.3): a sorted,
// non-overlapping bin list where each bin covers roughly the same number of
// distinct values (not rows — a single very frequent value still gets only
// one distinct-value slot).
type Histogram[T segment.Ordered] struct {
	kind   domain.ElementKind
	domain StringHistogramDomain // only meaningful when kind == domain.KindString
	Bins   []HistogramBin[T]
}

// DistinctValueCount pairs one distinct value with its row count in the
// segment, the unit BuildHistogram partitions into bins.
type DistinctValueCount[T segment.Ordered] struct {
	Value T
	Count uint64
}

// BuildHistogram partitions a sorted-ascending list of distinct values
// (with their row counts) into at most binCount contiguous bins whose
// distinct-value counts differ by at most one (spec §4.3). strDomain is
// only consulted when kind == domain.KindString; pass FullStringDomain
// otherwise.
func BuildHistogram[T segment.Ordered](kind domain.ElementKind, strDomain StringHistogramDomain, distinct []DistinctValueCount[T], binCount int) (*Histogram[T], error) {
	if binCount < 1 {
		return nil, cerr.InvalidArgument("stats: histogram bin count must be >= 1, got %d", binCount)
	}
	if len(distinct) == 0 {
		return nil, cerr.InvalidArgument("stats: histogram requires at least one distinct value")
	}
	for i := 1; i < len(distinct); i++ {
		if !segment.Less(distinct[i-1].Value, distinct[i].Value) {
			return nil, cerr.InvalidArgument("stats: histogram input is not strictly ascending at index %d", i)
		}
	}

	n := len(distinct)
	if binCount > n {
		binCount = n
	}

	// Distribute n distinct values across binCount bins, first `rem` bins
	// getting one extra so per-bin counts differ by at most one.
	base := n / binCount
	rem := n % binCount

	bins := make([]HistogramBin[T], 0, binCount)
	start := 0
	for b := 0; b < binCount; b++ {
		size := base
		if b < rem {
			size++
		}
		if size == 0 {
			continue
		}
		group := distinct[start : start+size]
		var height uint64
		for _, dv := range group {
			height += dv.Count
		}
		bins = append(bins, HistogramBin[T]{
			Lo:       group[0].Value,
			Hi:       group[len(group)-1].Value,
			Height:   height,
			Distinct: uint64(len(group)),
		})
		start += size
	}

	return &Histogram[T]{kind: kind, domain: strDomain, Bins: bins}, nil
}

func (h *Histogram[T]) lit(v domain.Value) T { return segment.FromValue[T](h.kind, v) }

// reduceKey applies the string domain's prefix reduction when the
// histogram is over strings; for other kinds it is the identity.
func (h *Histogram[T]) reduceKey(v T) T {
	if h.kind != domain.KindString {
		return v
	}
	s := any(v).(string)
	return any(h.domain.reduce(s)).(T)
}

// binContaining returns the index of the first bin whose Hi >= the
// (domain-reduced) key, or len(h.Bins) if the key is beyond every bin.
func (h *Histogram[T]) binContaining(v T) int {
	v = h.reduceKey(v)
	return sort.Search(len(h.Bins), func(i int) bool {
		return !segment.Less(h.Bins[i].Hi, v)
	})
}

// CanPrune implements spec §4.3's pruning rule: the literal falls outside
// [lo_0, hi_{B-1}] or lands in the gap between two bins.
func (h *Histogram[T]) CanPrune(p domain.Predicate) bool {
	if p.Condition.IsNullCheck() || p.Condition.Unsupported() || p.HasNullLiteral() || len(h.Bins) == 0 {
		return false
	}
	lo0, hiLast := h.reduceKey(h.Bins[0].Lo), h.reduceKey(h.Bins[len(h.Bins)-1].Hi)
	switch p.Condition {
	case domain.Equals:
		v := h.reduceKey(h.lit(p.Literal))
		idx := h.binContaining(v)
		if idx == len(h.Bins) {
			return true
		}
		return segment.Less(v, h.reduceKey(h.Bins[idx].Lo))
	case domain.LessThan:
		v := h.reduceKey(h.lit(p.Literal))
		return !segment.Less(lo0, v) // v <= lo0
	case domain.LessThanEquals:
		v := h.reduceKey(h.lit(p.Literal))
		return segment.Less(v, lo0)
	case domain.GreaterThan:
		v := h.reduceKey(h.lit(p.Literal))
		return !segment.Less(v, hiLast) // v >= hiLast
	case domain.GreaterThanEquals:
		v := h.reduceKey(h.lit(p.Literal))
		return segment.Less(hiLast, v)
	case domain.Between:
		v1, v2 := h.reduceKey(h.lit(p.Literal)), h.reduceKey(h.lit(p.Literal2))
		if segment.Less(v2, lo0) || segment.Less(hiLast, v1) {
			return true
		}
		idx := h.binContaining(v1)
		if idx == len(h.Bins) {
			return true
		}
		return segment.Less(v2, h.reduceKey(h.Bins[idx].Lo))
	default:
		// NotEquals: the histogram never prunes it, not even when it holds
		// a single bin with a single distinct value.
		return false
	}
}

// EstimateCardinality implements spec §4.3's Equals estimate
// (height/distinct of the containing bin) and a conservative fallback
// otherwise.
func (h *Histogram[T]) EstimateCardinality(p domain.Predicate) Estimate {
	if h.CanPrune(p) {
		return Estimate{Tag: MatchesNone, Count: 0}
	}
	if p.Condition == domain.Equals {
		v := h.reduceKey(h.lit(p.Literal))
		idx := h.binContaining(v)
		if idx < len(h.Bins) && h.Bins[idx].Distinct > 0 {
			bin := h.Bins[idx]
			return Estimate{Tag: MatchesApproximately, Count: float64(bin.Height) / float64(bin.Distinct)}
		}
	}
	return Estimate{Tag: MatchesApproximately, Count: 0.5}
}
