package segment

import "github.com/felmond13/colcore/domain"

// Ordered is the closed set of Go types a segment may be specialized over,
// one per domain.ElementKind. Generic specialization (spec §9 "Specialization
// over element kinds") is done over this constraint so the hot scan loop
// never type-switches per row; only construction and predicate-literal
// conversion (Ordered <-> domain.Value) pay that cost, once per call.
type Ordered interface {
	int32 | int64 | float32 | float64 | string
}

// Less reports whether a < b for any Ordered type using Go's built-in
// ordering operators. These total-order all five kinds except float NaN,
// which compares false against everything; the segment constructors do not
// reject NaN values.
func Less[T Ordered](a, b T) bool { return a < b }

// ToValue lifts a native T into a domain.Value of the given kind.
func ToValue[T Ordered](kind domain.ElementKind, v T) domain.Value {
	switch kind {
	case domain.KindInt32:
		return domain.Int32Value(int32(any(v).(int32)))
	case domain.KindInt64:
		return domain.Int64Value(int64(any(v).(int64)))
	case domain.KindFloat32:
		return domain.Float32Value(float32(any(v).(float32)))
	case domain.KindFloat64:
		return domain.Float64Value(float64(any(v).(float64)))
	case domain.KindString:
		return domain.StringValue(string(any(v).(string)))
	default:
		panic("segment: toValue called with unknown kind")
	}
}

// FromValue lowers a domain.Value into its native T, panicking on a kind
// mismatch — a programmer error per spec §4.8 ("type mismatch between
// literal and column kind is a programmer-error fatal").
func FromValue[T Ordered](kind domain.ElementKind, v domain.Value) T {
	if v.Kind != kind {
		panic("segment: literal kind does not match column kind")
	}
	switch kind {
	case domain.KindInt32:
		return any(v.Int32()).(T)
	case domain.KindInt64:
		return any(v.Int64()).(T)
	case domain.KindFloat32:
		return any(v.Float32()).(T)
	case domain.KindFloat64:
		return any(v.Float64()).(T)
	case domain.KindString:
		return any(v.String()).(T)
	default:
		panic("segment: fromValue called with unknown kind")
	}
}
