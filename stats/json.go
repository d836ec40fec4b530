package stats

import (
	"encoding/json"

	"github.com/felmond13/colcore/cerr"
	"github.com/felmond13/colcore/domain"
	"github.com/felmond13/colcore/segment"
)

// NewEmptyMinMaxFilter allocates a kind-tagged filter ready to receive
// json.Unmarshal, the way a caller pre-allocates a typed container before
// decoding into it (SPEC_FULL.md §D item 1: diagnostics round-trip).
func NewEmptyMinMaxFilter[T segment.Ordered](kind domain.ElementKind) *MinMaxFilter[T] {
	return &MinMaxFilter[T]{kind: kind}
}

type minmaxJSON[T any] struct {
	Min T `json:"min"`
	Max T `json:"max"`
}

// MarshalJSON encodes the min-max filter in the shape spec §6 names:
// {"min":…,"max":…}.
func (f *MinMaxFilter[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(minmaxJSON[T]{Min: f.Min, Max: f.Max})
}

// UnmarshalJSON decodes into a filter already carrying its element kind
// (see NewEmptyMinMaxFilter); it re-validates the min <= max invariant.
func (f *MinMaxFilter[T]) UnmarshalJSON(data []byte) error {
	var aux minmaxJSON[T]
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if segment.Less(aux.Max, aux.Min) {
		return cerr.Fatal("stats: decoded min-max filter has min > max")
	}
	f.Min, f.Max = aux.Min, aux.Max
	return nil
}

// NewEmptyRangeFilter allocates a kind-tagged range filter ready to receive
// json.Unmarshal.
func NewEmptyRangeFilter[T Numeric](kind domain.ElementKind) *RangeFilter[T] {
	return &RangeFilter[T]{kind: kind}
}

type rangeFilterJSON[T any] struct {
	Ranges [][2]T `json:"ranges"`
}

// MarshalJSON encodes the range filter in the shape spec §6 names:
// {"ranges":[[l,h],…]}.
func (f *RangeFilter[T]) MarshalJSON() ([]byte, error) {
	aux := rangeFilterJSON[T]{Ranges: make([][2]T, len(f.Ranges))}
	for i, r := range f.Ranges {
		aux.Ranges[i] = [2]T{r.Lo, r.Hi}
	}
	return json.Marshal(aux)
}

// UnmarshalJSON decodes into a filter already carrying its element kind.
func (f *RangeFilter[T]) UnmarshalJSON(data []byte) error {
	var aux rangeFilterJSON[T]
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	ranges := make([]Range[T], len(aux.Ranges))
	for i, pair := range aux.Ranges {
		if pair[1] < pair[0] {
			return cerr.Fatal("stats: decoded range filter has a range with hi < lo")
		}
		ranges[i] = Range[T]{Lo: pair[0], Hi: pair[1]}
	}
	f.Ranges = ranges
	return nil
}

// NewEmptyHistogram allocates a kind-tagged histogram ready to receive
// json.Unmarshal. strDomain must match what the histogram was built with.
func NewEmptyHistogram[T segment.Ordered](kind domain.ElementKind, strDomain StringHistogramDomain) *Histogram[T] {
	return &Histogram[T]{kind: kind, domain: strDomain}
}

type histogramBinJSON[T any] struct {
	Lo       T      `json:"lo"`
	Hi       T      `json:"hi"`
	Height   uint64 `json:"height"`
	Distinct uint64 `json:"distinct"`
}

type histogramJSON[T any] struct {
	Bins []histogramBinJSON[T] `json:"bins"`
}

// MarshalJSON encodes the histogram in the shape spec §6 names:
// {"bins":[{"lo":…,"hi":…,"height":…,"distinct":…},…]}.
func (h *Histogram[T]) MarshalJSON() ([]byte, error) {
	aux := histogramJSON[T]{Bins: make([]histogramBinJSON[T], len(h.Bins))}
	for i, b := range h.Bins {
		aux.Bins[i] = histogramBinJSON[T]{Lo: b.Lo, Hi: b.Hi, Height: b.Height, Distinct: b.Distinct}
	}
	return json.Marshal(aux)
}

// UnmarshalJSON decodes into a histogram already carrying its element kind
// and string domain.
func (h *Histogram[T]) UnmarshalJSON(data []byte) error {
	var aux histogramJSON[T]
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	bins := make([]HistogramBin[T], len(aux.Bins))
	for i, b := range aux.Bins {
		bins[i] = HistogramBin[T]{Lo: b.Lo, Hi: b.Hi, Height: b.Height, Distinct: b.Distinct}
	}
	h.Bins = bins
	return nil
}
