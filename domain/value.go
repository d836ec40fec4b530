package domain

import "math"

// Value is a variant of any element kind, or the distinguished null.
// Comparisons against a null Value always yield "unknown", never true or
// false (spec §3) — callers must check IsNull before comparing.
//
// Value carries one payload field per kind rather than an interface{}
// payload (contrast storage.Field in the teacher lineage, which boxes
// everything through interface{}): literals flow into the scan hot path,
// and a boxed value would force an allocation and a type switch per row.
type Value struct {
	Kind ElementKind
	Null bool

	i64 int64   // backs KindInt32 and KindInt64
	f64 float64 // backs KindFloat32 and KindFloat64
	str string  // backs KindString
}

// NullValue returns the null value of the given kind.
func NullValue(kind ElementKind) Value {
	return Value{Kind: kind, Null: true}
}

func Int32Value(v int32) Value  { return Value{Kind: KindInt32, i64: int64(v)} }
func Int64Value(v int64) Value  { return Value{Kind: KindInt64, i64: v} }
func Float32Value(v float32) Value {
	return Value{Kind: KindFloat32, f64: float64(v)}
}
func Float64Value(v float64) Value { return Value{Kind: KindFloat64, f64: v} }
func StringValue(v string) Value   { return Value{Kind: KindString, str: v} }

func (v Value) Int32() int32     { return int32(v.i64) }
func (v Value) Int64() int64     { return v.i64 }
func (v Value) Float32() float32 { return float32(v.f64) }
func (v Value) Float64() float64 { return v.f64 }
func (v Value) String() string   { return v.str }

// Compare returns -1, 0, or 1 comparing two non-null values of the same
// kind. It panics if either value is null or the kinds differ — callers
// (scan, stats) must check IsNull and kind equality first, as those are
// programmer-error conditions (spec §4.8 "Failure semantics").
func (v Value) Compare(o Value) int {
	if v.Kind != o.Kind {
		panic("domain: Compare called with mismatched kinds")
	}
	if v.Null || o.Null {
		panic("domain: Compare called with a null value")
	}
	switch v.Kind {
	case KindInt32:
		return compareInt64(int64(v.Int32()), int64(o.Int32()))
	case KindInt64:
		return compareInt64(v.i64, o.i64)
	case KindFloat32, KindFloat64:
		return compareFloat64(v.f64, o.f64)
	case KindString:
		return compareString(v.str, o.str)
	default:
		panic("domain: Compare called with unknown kind")
	}
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareFloat64(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareString(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// AsFloat64 returns a float64 view of a numeric value, in a single wide
// domain regardless of the underlying integer width.
func (v Value) AsFloat64() float64 {
	switch v.Kind {
	case KindInt32:
		return float64(v.Int32())
	case KindInt64:
		return float64(v.i64)
	case KindFloat32, KindFloat64:
		return v.f64
	default:
		panic("domain: AsFloat64 called on non-numeric kind")
	}
}

// isFiniteFloat reports whether f is neither NaN nor +-Inf; it backs
// IsFinite.
func isFiniteFloat(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// IsFinite reports whether a numeric value is finite (always true for
// integer kinds).
func (v Value) IsFinite() bool {
	if v.Kind == KindFloat32 || v.Kind == KindFloat64 {
		return isFiniteFloat(v.f64)
	}
	return true
}
