// Package stats implements the three segment-level statistic objects that
// drive predicate pruning and cardinality estimation: the min-max filter,
// the range filter, and the equal-distinct-count histogram (spec §3, §4).
//
// Grounded on engine/stats.go's ColumnStats/Bucket equi-depth histogram
// (NDV, MinVal/MaxVal, Bucket{LowerBound,UpperBound,Count,NDV}); this
// package keeps that field-naming spirit but generalizes to every element
// kind and switches the histogram from equal-depth to equal-distinct-count
// as spec §4.3 requires, and adds the range filter the teacher has no
// analogue for (grounded instead on the retrieval pack's
// brahmabase-tidb histogram file for "sorted bucket boundaries").
package stats

// Tag is the three-state cardinality-estimate classification from spec
// §4.1: a statistic answers "none", "approximately some", or "all".
type Tag byte

const (
	MatchesNone Tag = iota
	MatchesApproximately
	MatchesAll
)

func (t Tag) String() string {
	switch t {
	case MatchesNone:
		return "MatchesNone"
	case MatchesApproximately:
		return "MatchesApproximately"
	case MatchesAll:
		return "MatchesAll"
	default:
		return "MatchesUnknown"
	}
}

// Estimate is a cardinality estimate: a classification tag plus a numeric
// estimate. Per spec §4.1, Tag must be MatchesNone exactly when the
// statistic's CanPrune would return true for the same predicate.
type Estimate struct {
	Tag   Tag
	Count float64
}
