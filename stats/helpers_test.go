package stats

import (
	"github.com/felmond13/colcore/domain"
	"github.com/felmond13/colcore/segment"
)

func segmentNullBitmap(n int, nullIdx map[int]bool) segment.NullBitmap {
	b := segment.NewNullBitmap(n)
	for i := range nullIdx {
		b.Set(i, true)
	}
	return b
}

func newInt32Segment(values []int32, nulls segment.NullBitmap) *segment.ValueSegment[int32] {
	return segment.NewValueSegment(domain.KindInt32, values, nulls)
}
