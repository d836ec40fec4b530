// Package orchestrator implements the scan orchestrator (spec §4.8):
// iterate a table's chunks, consult each chunk's statistic for pruning,
// dispatch to the sorted accelerator, the dictionary path, or the generic
// path, and assemble the output position list.
package orchestrator

import (
	"context"

	"github.com/felmond13/colcore/access"
	"github.com/felmond13/colcore/cerr"
	"github.com/felmond13/colcore/domain"
	"github.com/felmond13/colcore/obslog"
	"github.com/felmond13/colcore/scan"
	"github.com/felmond13/colcore/segment"
	"github.com/felmond13/colcore/statcache"
)

// Pruner is the operation surface orchestrator needs from a statistic
// object; both stats.Statistic[T] and stats.StringStatistic satisfy it, so
// the orchestrator depends on neither's type parameter (accept interfaces,
// return structs).
type Pruner interface {
	CanPrune(p domain.Predicate) bool
}

// ChunkSource describes one chunk's encoding of a column: exactly one of
// Value or Dict is set. Stat is nil when no statistic was built for this
// chunk/column pair. BuildStat, when set, lets the orchestrator build the
// statistic lazily and keep it in a statcache.Cache across calls instead of
// the caller rebuilding it on every Scan; it is only consulted when Stat is
// nil and a cache was passed to Scan.
type ChunkSource[T segment.Ordered] struct {
	ChunkID   uint32
	Value     *segment.ValueSegment[T]
	Dict      *segment.DictionarySegment[T]
	Stat      Pruner
	BuildStat func() Pruner
}

func (c ChunkSource[T]) orderedBy() *domain.OrderedBy {
	if c.Value != nil {
		return c.Value.OrderedBy()
	}
	return nil
}

// sortedAccelerable reports whether the sorted accelerator applies to this
// chunk for the given column and predicate condition (spec §4.7's
// contiguous-range conditions only — NotEquals has no contiguous range).
func sortedAccelerable(tag *domain.OrderedBy, columnID uint32, cond domain.PredicateCondition) bool {
	if tag == nil || tag.ColumnID != columnID {
		return false
	}
	switch cond {
	case domain.NotEquals:
		return false
	default:
		return true
	}
}

// Scan implements spec §4.8 and §5's ordering/cancellation contract: chunks
// are visited in the caller's order, cancellation is checked once per chunk
// boundary (never inside a chunk's inner loop), and a cancelled scan
// discards its partial result.
//
// cache and reg are both optional (nil is a valid, fully-functional value).
// When cache is non-nil and a chunk has no pre-built Stat, Scan looks up
// (chunk id, column id) in the cache and falls back to c.BuildStat on a
// miss, caching the result — SPEC_FULL.md §D item 2, so repeated scans over
// an unchanged segment don't rebuild its statistic every time. When reg is
// non-nil, Scan records one Hit per chunk it actually dispatches a scan
// path to (spec §5: "writers — the scan — only do a relaxed increment");
// pruned and cancelled chunks are never counted as accessed, since the
// segment's data is never touched for them. filter is the optional
// position_filter from external interface #1 (spec §6), threaded straight
// through to whichever scan path is chosen; a non-nil filter sends a sorted
// chunk down the dictionary or generic path, since the sorted accelerator
// takes no filter.
//
// Grounded on engine/executor.go's scanCollection → scanCollectionRaw
// layering (outer loop over storage units, delegating per-unit work to a
// narrower function) and its GetTableStats/getColumnStats cache-then-compute
// pattern, now wired to statcache.Cache instead of only documented as one.
func Scan[T segment.Ordered](ctx context.Context, chunks []ChunkSource[T], columnID uint32, p domain.Predicate, filter scan.OffsetFilter, cache *statcache.Cache[Pruner], reg *access.Registry) (domain.PositionList, error) {
	var out domain.PositionList
	for _, c := range chunks {
		select {
		case <-ctx.Done():
			obslog.Debugw("scan cancelled", "chunk_id", c.ChunkID)
			return domain.PositionList{}, ctx.Err()
		default:
		}

		stat := c.Stat
		if stat == nil && cache != nil && c.BuildStat != nil {
			key := statcache.Key{ChunkID: c.ChunkID, ColumnID: columnID}
			if cached, ok := cache.Get(key); ok {
				stat = cached
			} else {
				stat = c.BuildStat()
				cache.Put(key, stat)
			}
		}

		if stat != nil && stat.CanPrune(p) {
			obslog.Debugw("chunk pruned by statistic", "chunk_id", c.ChunkID)
			continue
		}

		if reg != nil {
			reg.ChunkCounter(c.ChunkID).Hit()
		}

		var err error
		switch {
		case filter == nil && sortedAccelerable(c.orderedBy(), columnID, p.Condition) && c.Value != nil:
			err = scan.SortedAccelerator(c.Value, c.ChunkID, columnID, p, &out)
		case c.Dict != nil:
			err = scan.DictionarySegment(c.Dict, c.ChunkID, p, filter, &out)
		case c.Value != nil:
			err = scan.ValueSegment(c.Value, c.ChunkID, p, filter, &out)
		default:
			err = cerr.Fatal("orchestrator: chunk %d has neither a value nor a dictionary segment", c.ChunkID)
		}
		if err != nil {
			return domain.PositionList{}, err
		}
	}
	return out, nil
}
