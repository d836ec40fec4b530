package stats

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/felmond13/colcore/domain"
)

func TestStatisticDispatchMinMax(t *testing.T) {
	s := FromMinMax(NewMinMaxFilter(domain.KindInt32, int32(10), int32(100)))
	require.Equal(t, FamilyMinMax, s.Which)
	require.True(t, s.CanPrune(eq(5)))
	require.False(t, s.Empty())

	sliced := s.Sliced(lt(10))
	require.True(t, sliced.Empty())
}

func TestStatisticDispatchRange(t *testing.T) {
	f, err := BuildRangeFilter(domain.KindInt32, []int32{1, 2, 100, 101}, 2)
	require.NoError(t, err)
	s := FromRangeFilter(f)
	require.Equal(t, FamilyRange, s.Which)
	require.True(t, s.CanPrune(eq(50)))
}

func TestStatisticDispatchHistogram(t *testing.T) {
	h, err := BuildHistogram(domain.KindInt32, FullStringDomain,
		[]DistinctValueCount[int32]{{Value: 1, Count: 1}, {Value: 10, Count: 1}}, 2)
	require.NoError(t, err)
	s := FromHistogram(h)
	require.Equal(t, FamilyHistogram, s.Which)
	require.False(t, s.Empty())

	// Histogram has no narrowing operation; Sliced is a no-op.
	sliced := s.Sliced(eq(1))
	require.Same(t, s.Histogram, sliced.Histogram)
}

func TestStringStatisticDispatch(t *testing.T) {
	f := NewMinMaxFilter(domain.KindString, "apple", "zebra")
	s := FromStringMinMax(f)
	require.Equal(t, FamilyMinMax, s.Which)

	p := domain.Predicate{Condition: domain.Equals, Literal: domain.StringValue("aardvark")}
	require.True(t, s.CanPrune(p))
}
