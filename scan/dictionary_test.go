package scan

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/felmond13/colcore/domain"
	"github.com/felmond13/colcore/segment"
)

func TestDictionarySegmentScanEquals(t *testing.T) {
	s := segment.NewDictionarySegment(domain.KindInt32, []int32{10, 20, 30},
		[]uint32{0, 1, 2, 1, segment.InvalidValueID})

	var out domain.PositionList
	p := domain.Predicate{Condition: domain.Equals, Literal: domain.Int32Value(20)}
	require.NoError(t, DictionarySegment(s, 0, p, nil, &out))
	require.Equal(t, []uint32{1, 3}, positions(out))
}

func TestDictionarySegmentScanEqualsAbsentValue(t *testing.T) {
	s := segment.NewDictionarySegment(domain.KindInt32, []int32{10, 20, 30},
		[]uint32{0, 1, 2, 1, segment.InvalidValueID})

	var out domain.PositionList
	p := domain.Predicate{Condition: domain.Equals, Literal: domain.Int32Value(25)}
	require.NoError(t, DictionarySegment(s, 0, p, nil, &out))
	require.Empty(t, out.Positions)
}

func TestDictionarySegmentScanGreaterThanEquals(t *testing.T) {
	s := segment.NewDictionarySegment(domain.KindInt32, []int32{10, 20, 30},
		[]uint32{0, 1, 2, 1, segment.InvalidValueID})

	var out domain.PositionList
	p := domain.Predicate{Condition: domain.GreaterThanEquals, Literal: domain.Int32Value(20)}
	require.NoError(t, DictionarySegment(s, 0, p, nil, &out))
	require.Equal(t, []uint32{1, 2, 3}, positions(out))
}

func TestDictionarySegmentScanNotEqualsSingleDistinct(t *testing.T) {
	s := segment.NewDictionarySegment(domain.KindInt32, []int32{42}, []uint32{0, 0, segment.InvalidValueID})

	var noneOut domain.PositionList
	require.NoError(t, DictionarySegment(s, 0, domain.Predicate{Condition: domain.NotEquals, Literal: domain.Int32Value(42)}, nil, &noneOut))
	require.Empty(t, noneOut.Positions)

	var allOut domain.PositionList
	require.NoError(t, DictionarySegment(s, 0, domain.Predicate{Condition: domain.NotEquals, Literal: domain.Int32Value(1)}, nil, &allOut))
	require.Equal(t, []uint32{0, 1}, positions(allOut))
}

func TestDictionarySegmentScanIsNull(t *testing.T) {
	s := segment.NewDictionarySegment(domain.KindInt32, []int32{10, 20, 30},
		[]uint32{0, 1, 2, 1, segment.InvalidValueID})

	var out domain.PositionList
	require.NoError(t, DictionarySegment(s, 0, domain.Predicate{Condition: domain.IsNull}, nil, &out))
	require.Equal(t, []uint32{4}, positions(out))
}

func TestDictionarySegmentBetweenWindowTrick(t *testing.T) {
	s := segment.NewDictionarySegment(domain.KindInt32, []int32{10, 20, 30, 40},
		[]uint32{0, 1, 2, 3, segment.InvalidValueID})

	var out domain.PositionList
	p := domain.Predicate{Condition: domain.Between, Literal: domain.Int32Value(15), Literal2: domain.Int32Value(35)}
	require.NoError(t, DictionarySegment(s, 0, p, nil, &out))
	require.Equal(t, []uint32{1, 2}, positions(out))
}

func TestDictionarySegmentBetweenCoversAll(t *testing.T) {
	s := segment.NewDictionarySegment(domain.KindInt32, []int32{10, 20, 30}, []uint32{0, 1, 2})

	var out domain.PositionList
	p := domain.Predicate{Condition: domain.Between, Literal: domain.Int32Value(0), Literal2: domain.Int32Value(100)}
	require.NoError(t, DictionarySegment(s, 0, p, nil, &out))
	require.Equal(t, []uint32{0, 1, 2}, positions(out))
}

func TestDictionarySegmentBetweenMatchesNone(t *testing.T) {
	s := segment.NewDictionarySegment(domain.KindInt32, []int32{10, 20, 30}, []uint32{0, 1, 2})

	var out domain.PositionList
	p := domain.Predicate{Condition: domain.Between, Literal: domain.Int32Value(40), Literal2: domain.Int32Value(50)}
	require.NoError(t, DictionarySegment(s, 0, p, nil, &out))
	require.Empty(t, out.Positions)
}

func TestDictionarySegmentUnsupportedCondition(t *testing.T) {
	s := segment.NewDictionarySegment(domain.KindInt32, []int32{10}, []uint32{0})
	var out domain.PositionList
	err := DictionarySegment(s, 0, domain.Predicate{Condition: domain.Like}, nil, &out)
	require.Error(t, err)
}
