package scan

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/felmond13/colcore/domain"
	"github.com/felmond13/colcore/segment"
)

func buildInt32Segment(t *testing.T, values []int32, nullIdx map[int]bool) *segment.ValueSegment[int32] {
	t.Helper()
	nulls := segment.NewNullBitmap(len(values))
	for i := range nullIdx {
		nulls.Set(i, true)
	}
	return segment.NewValueSegment(domain.KindInt32, values, nulls)
}

func positions(pl domain.PositionList) []uint32 {
	out := make([]uint32, len(pl.Positions))
	for i, p := range pl.Positions {
		out[i] = p.ChunkOffset
	}
	return out
}

func TestValueSegmentScanEquals(t *testing.T) {
	s := buildInt32Segment(t, []int32{10, 20, 30, 20}, nil)
	var out domain.PositionList
	err := ValueSegment(s, 7, domain.Predicate{Condition: domain.Equals, Literal: domain.Int32Value(20)}, nil, &out)
	require.NoError(t, err)
	require.Equal(t, []uint32{1, 3}, positions(out))
	require.Equal(t, uint32(7), out.Positions[0].ChunkID)
}

func TestValueSegmentScanBetweenInclusive(t *testing.T) {
	s := buildInt32Segment(t, []int32{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, nil)
	var out domain.PositionList
	p := domain.Predicate{Condition: domain.Between, Literal: domain.Int32Value(3), Literal2: domain.Int32Value(6)}
	require.NoError(t, ValueSegment(s, 0, p, nil, &out))
	require.Equal(t, []uint32{3, 4, 5, 6}, positions(out))
}

func TestValueSegmentScanNullsNeverMatchComparison(t *testing.T) {
	s := buildInt32Segment(t, []int32{1, 2, 3}, map[int]bool{1: true})
	var out domain.PositionList
	p := domain.Predicate{Condition: domain.GreaterThanEquals, Literal: domain.Int32Value(0)}
	require.NoError(t, ValueSegment(s, 0, p, nil, &out))
	require.Equal(t, []uint32{0, 2}, positions(out))
}

func TestValueSegmentScanIsNullIsNotNull(t *testing.T) {
	s := buildInt32Segment(t, []int32{1, 2, 3}, map[int]bool{1: true})

	var nullOut domain.PositionList
	require.NoError(t, ValueSegment(s, 0, domain.Predicate{Condition: domain.IsNull}, nil, &nullOut))
	require.Equal(t, []uint32{1}, positions(nullOut))

	var notNullOut domain.PositionList
	require.NoError(t, ValueSegment(s, 0, domain.Predicate{Condition: domain.IsNotNull}, nil, &notNullOut))
	require.Equal(t, []uint32{0, 2}, positions(notNullOut))
}

func TestValueSegmentScanNullLiteralMatchesNothing(t *testing.T) {
	s := buildInt32Segment(t, []int32{1, 2, 3}, nil)
	var out domain.PositionList
	p := domain.Predicate{Condition: domain.Equals, Literal: domain.NullValue(domain.KindInt32)}
	require.NoError(t, ValueSegment(s, 0, p, nil, &out))
	require.Empty(t, out.Positions)
}

func TestValueSegmentScanUnsupportedCondition(t *testing.T) {
	s := buildInt32Segment(t, []int32{1, 2, 3}, nil)
	var out domain.PositionList
	err := ValueSegment(s, 0, domain.Predicate{Condition: domain.In}, nil, &out)
	require.Error(t, err)
}

func TestValueSegmentScanWithOffsetFilter(t *testing.T) {
	s := buildInt32Segment(t, []int32{10, 20, 30, 40}, nil)
	var out domain.PositionList
	p := domain.Predicate{Condition: domain.GreaterThan, Literal: domain.Int32Value(5)}
	require.NoError(t, ValueSegment(s, 0, p, OffsetFilter{0, 2}, &out))
	require.Equal(t, []uint32{0, 2}, positions(out))
}
