package orchestrator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/felmond13/colcore/access"
	"github.com/felmond13/colcore/domain"
	"github.com/felmond13/colcore/segment"
	"github.com/felmond13/colcore/statcache"
	"github.com/felmond13/colcore/stats"
)

func valueChunk(t *testing.T, chunkID uint32, values []int32, stat Pruner) ChunkSource[int32] {
	t.Helper()
	nulls := segment.NewNullBitmap(len(values))
	s := segment.NewValueSegment(domain.KindInt32, values, nulls)
	return ChunkSource[int32]{ChunkID: chunkID, Value: s, Stat: stat}
}

func dictChunk(t *testing.T, chunkID uint32, dict []int32, attrs []uint32, stat Pruner) ChunkSource[int32] {
	t.Helper()
	d := segment.NewDictionarySegment(domain.KindInt32, dict, attrs)
	return ChunkSource[int32]{ChunkID: chunkID, Dict: d, Stat: stat}
}

func TestScanPrunesChunksByStatistic(t *testing.T) {
	prunable := stats.FromMinMax(stats.NewMinMaxFilter(domain.KindInt32, int32(0), int32(10)))
	keep := stats.FromMinMax(stats.NewMinMaxFilter(domain.KindInt32, int32(90), int32(100)))

	chunks := []ChunkSource[int32]{
		valueChunk(t, 0, []int32{1, 2, 3}, prunable),
		valueChunk(t, 1, []int32{95, 96, 97}, keep),
	}
	p := domain.Predicate{Condition: domain.Equals, Literal: domain.Int32Value(95)}

	out, err := Scan(context.Background(), chunks, 0, p, nil, nil, nil)
	require.NoError(t, err)
	require.Len(t, out.Positions, 1)
	require.Equal(t, uint32(1), out.Positions[0].ChunkID)
	require.Equal(t, uint32(0), out.Positions[0].ChunkOffset)
}

func TestScanDispatchesToDictionaryPath(t *testing.T) {
	chunks := []ChunkSource[int32]{
		dictChunk(t, 0, []int32{10, 20, 30}, []uint32{0, 1, 2, 1}, nil),
	}
	p := domain.Predicate{Condition: domain.Equals, Literal: domain.Int32Value(20)}

	out, err := Scan(context.Background(), chunks, 0, p, nil, nil, nil)
	require.NoError(t, err)
	require.Equal(t, []uint32{1, 3}, offsetsOf(out))
}

func TestScanHonorsSortedAccelerator(t *testing.T) {
	values := []int32{0, 1, 2, 3, 4, 5, 6, 7}
	nulls := segment.NewNullBitmap(len(values))
	s := segment.NewValueSegment(domain.KindInt32, values, nulls)
	s.SetOrderedBy(domain.OrderedBy{ColumnID: 3, Mode: domain.AscNullsLast})
	chunks := []ChunkSource[int32]{{ChunkID: 0, Value: s}}

	p := domain.Predicate{Condition: domain.Between, Literal: domain.Int32Value(2), Literal2: domain.Int32Value(4)}
	out, err := Scan(context.Background(), chunks, 3, p, nil, nil, nil)
	require.NoError(t, err)
	require.Equal(t, []uint32{2, 3, 4}, offsetsOf(out))
}

func TestScanStopsOnCancellation(t *testing.T) {
	chunks := []ChunkSource[int32]{
		valueChunk(t, 0, []int32{1, 2, 3}, nil),
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Scan(ctx, chunks, 0, domain.Predicate{Condition: domain.Equals, Literal: domain.Int32Value(1)}, nil, nil, nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestScanFatalWhenNoSegmentSet(t *testing.T) {
	chunks := []ChunkSource[int32]{{ChunkID: 0}}
	_, err := Scan(context.Background(), chunks, 0, domain.Predicate{Condition: domain.Equals, Literal: domain.Int32Value(1)}, nil, nil, nil)
	require.Error(t, err)
}

func TestScanRecordsAccessHitsOnlyForVisitedChunks(t *testing.T) {
	prunable := stats.FromMinMax(stats.NewMinMaxFilter(domain.KindInt32, int32(0), int32(10)))
	chunks := []ChunkSource[int32]{
		valueChunk(t, 0, []int32{1, 2, 3}, prunable),
		valueChunk(t, 1, []int32{95, 96, 97}, nil),
	}
	p := domain.Predicate{Condition: domain.Equals, Literal: domain.Int32Value(95)}

	reg := access.NewRegistry(8)
	_, err := Scan(context.Background(), chunks, 0, p, nil, nil, reg)
	require.NoError(t, err)

	require.Equal(t, uint64(0), reg.ChunkCounter(0).Value())
	require.Equal(t, uint64(1), reg.ChunkCounter(1).Value())
}

func TestScanBuildsAndCachesStatOnMiss(t *testing.T) {
	builds := 0
	buildStat := func() Pruner {
		builds++
		return stats.FromMinMax(stats.NewMinMaxFilter(domain.KindInt32, int32(0), int32(10)))
	}
	chunk := valueChunk(t, 0, []int32{1, 2, 3}, nil)
	chunk.BuildStat = buildStat
	p := domain.Predicate{Condition: domain.Equals, Literal: domain.Int32Value(95)}

	cache := statcache.New[Pruner](8)

	out, err := Scan(context.Background(), []ChunkSource[int32]{chunk}, 0, p, nil, cache, nil)
	require.NoError(t, err)
	require.Empty(t, out.Positions)
	require.Equal(t, 1, builds)

	out, err = Scan(context.Background(), []ChunkSource[int32]{chunk}, 0, p, nil, cache, nil)
	require.NoError(t, err)
	require.Empty(t, out.Positions)
	require.Equal(t, 1, builds) // second scan hits the cache, does not rebuild

	hits, misses, size, _ := cache.Stats()
	require.Equal(t, uint64(1), hits)
	require.Equal(t, uint64(1), misses)
	require.Equal(t, 1, size)
}

func offsetsOf(pl domain.PositionList) []uint32 {
	out := make([]uint32, len(pl.Positions))
	for i, p := range pl.Positions {
		out[i] = p.ChunkOffset
	}
	return out
}
