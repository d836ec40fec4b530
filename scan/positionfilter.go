// Package scan implements the per-segment predicate evaluators: the
// generic value-segment path, the dictionary-accelerated path, and the
// sorted-segment binary-search accelerator (spec §4.4-§4.7).
package scan

// OffsetFilter is the position-filter indirection from spec §9: when
// scanning a reference segment, an earlier stage has already selected which
// offsets of the *referenced* segment are worth testing. A nil filter means
// "every offset in [0, n)". Modeled as a plain offset list rather than a
// stateful iterator — the generic/dictionary loops below are themselves the
// iterator adapter that lifts offset selection into per-row predicate
// evaluation (design note 9, "Position-filter indirection").
type OffsetFilter []uint32

// forEachOffset calls fn once per candidate offset in ascending order,
// either the filter's own offsets or the dense range [0, n) when filter is
// nil.
func forEachOffset(n int, filter OffsetFilter, fn func(offset uint32)) {
	if filter == nil {
		for i := 0; i < n; i++ {
			fn(uint32(i))
		}
		return
	}
	for _, off := range filter {
		fn(off)
	}
}
