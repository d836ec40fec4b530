package stats

import "github.com/felmond13/colcore/domain"

// Family identifies which statistic variant a Statistic carries (spec §9
// "Statistics polymorphism": a tagged variant, not a deep inheritance
// chain).
type Family byte

const (
	FamilyMinMax Family = iota
	FamilyRange
	FamilyHistogram
)

func (f Family) String() string {
	switch f {
	case FamilyMinMax:
		return "min_max"
	case FamilyRange:
		return "range"
	case FamilyHistogram:
		return "histogram"
	default:
		return "unknown"
	}
}

// Statistic is the shared operation surface over the three statistic
// variants for a numeric column (spec §3 "Statistic objects", §9 design
// note). Exactly one of the three typed fields is non-nil, selected by
// Which. Each variant owns its own data; there is no shared base struct to
// keep in sync.
//
// Parameterized over Numeric rather than the broader Ordered set because
// RangeFilter is scalar-only (spec §4.2): a string column's statistics use
// StringStatistic instead, which drops the Range field entirely rather than
// carrying one that could never be built.
type Statistic[T Numeric] struct {
	Which     Family
	MinMax    *MinMaxFilter[T]
	Range     *RangeFilter[T]
	Histogram *Histogram[T]
}

func FromMinMax[T Numeric](f *MinMaxFilter[T]) Statistic[T] {
	return Statistic[T]{Which: FamilyMinMax, MinMax: f}
}

func FromRangeFilter[T Numeric](f *RangeFilter[T]) Statistic[T] {
	return Statistic[T]{Which: FamilyRange, Range: f}
}

func FromHistogram[T Numeric](f *Histogram[T]) Statistic[T] {
	return Statistic[T]{Which: FamilyHistogram, Histogram: f}
}

// CanPrune dispatches to the active variant's pruning rule.
func (s Statistic[T]) CanPrune(p domain.Predicate) bool {
	switch s.Which {
	case FamilyMinMax:
		return s.MinMax.CanPrune(p)
	case FamilyRange:
		return s.Range.CanPrune(p)
	case FamilyHistogram:
		return s.Histogram.CanPrune(p)
	default:
		return false
	}
}

// EstimateCardinality dispatches to the active variant's estimate.
func (s Statistic[T]) EstimateCardinality(p domain.Predicate) Estimate {
	switch s.Which {
	case FamilyMinMax:
		return s.MinMax.EstimateCardinality(p)
	case FamilyRange:
		return s.Range.EstimateCardinality(p)
	case FamilyHistogram:
		return s.Histogram.EstimateCardinality(p)
	default:
		return Estimate{Tag: MatchesApproximately, Count: 0.5}
	}
}

// Sliced dispatches to the active variant's narrowing rule. Check Empty
// after calling: a min-max or range filter narrowed down to nothing leaves
// every pointer nil.
func (s Statistic[T]) Sliced(p domain.Predicate) Statistic[T] {
	switch s.Which {
	case FamilyMinMax:
		return Statistic[T]{Which: FamilyMinMax, MinMax: s.MinMax.Sliced(p)}
	case FamilyRange:
		return Statistic[T]{Which: FamilyRange, Range: s.Range.Sliced(p)}
	case FamilyHistogram:
		// Histogram has no Sliced in spec §4.3 (only pruning and
		// cardinality estimation are defined for it); a histogram is
		// rebuilt from scratch rather than narrowed, so slicing returns
		// the histogram unchanged as the conservative, sound choice.
		return s
	default:
		return s
	}
}

// Empty reports whether Sliced narrowed this statistic down to nothing.
func (s Statistic[T]) Empty() bool {
	switch s.Which {
	case FamilyMinMax:
		return s.MinMax == nil
	case FamilyRange:
		return s.Range == nil
	case FamilyHistogram:
		return s.Histogram == nil
	default:
		return true
	}
}

// Scaled dispatches to the active variant's selectivity-scaling rule.
func (s Statistic[T]) Scaled(selectivity float64) Statistic[T] {
	switch s.Which {
	case FamilyMinMax:
		return Statistic[T]{Which: FamilyMinMax, MinMax: s.MinMax.Scaled(selectivity)}
	case FamilyRange:
		return Statistic[T]{Which: FamilyRange, Range: s.Range.Scaled(selectivity)}
	default:
		return s
	}
}

// StringStatistic is the tagged variant for a byte-string column: a
// MinMaxFilter or a Histogram, selected by Which, never a RangeFilter
// (spec §4.2 "Scalar only").
type StringStatistic struct {
	Which     Family
	MinMax    *MinMaxFilter[string]
	Histogram *Histogram[string]
}

func FromStringMinMax(f *MinMaxFilter[string]) StringStatistic {
	return StringStatistic{Which: FamilyMinMax, MinMax: f}
}

func FromStringHistogram(f *Histogram[string]) StringStatistic {
	return StringStatistic{Which: FamilyHistogram, Histogram: f}
}

func (s StringStatistic) CanPrune(p domain.Predicate) bool {
	switch s.Which {
	case FamilyMinMax:
		return s.MinMax.CanPrune(p)
	case FamilyHistogram:
		return s.Histogram.CanPrune(p)
	default:
		return false
	}
}

func (s StringStatistic) EstimateCardinality(p domain.Predicate) Estimate {
	switch s.Which {
	case FamilyMinMax:
		return s.MinMax.EstimateCardinality(p)
	case FamilyHistogram:
		return s.Histogram.EstimateCardinality(p)
	default:
		return Estimate{Tag: MatchesApproximately, Count: 0.5}
	}
}

func (s StringStatistic) Sliced(p domain.Predicate) StringStatistic {
	switch s.Which {
	case FamilyMinMax:
		return StringStatistic{Which: FamilyMinMax, MinMax: s.MinMax.Sliced(p)}
	default:
		return s
	}
}

func (s StringStatistic) Empty() bool {
	switch s.Which {
	case FamilyMinMax:
		return s.MinMax == nil
	case FamilyHistogram:
		return s.Histogram == nil
	default:
		return true
	}
}
