package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValueCompare(t *testing.T) {
	cases := []struct {
		name string
		a, b Value
		want int
	}{
		{"int32 less", Int32Value(1), Int32Value(2), -1},
		{"int32 equal", Int32Value(5), Int32Value(5), 0},
		{"int64 greater", Int64Value(10), Int64Value(3), 1},
		{"float64 less", Float64Value(1.5), Float64Value(2.5), -1},
		{"string less", StringValue("a"), StringValue("b"), -1},
		{"string equal", StringValue("abc"), StringValue("abc"), 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.want, c.a.Compare(c.b))
		})
	}
}

func TestValueComparePanicsOnNull(t *testing.T) {
	require.Panics(t, func() {
		NullValue(KindInt32).Compare(Int32Value(1))
	})
}

func TestValueComparePanicsOnKindMismatch(t *testing.T) {
	require.Panics(t, func() {
		Int32Value(1).Compare(Int64Value(1))
	})
}

func TestValueIsFinite(t *testing.T) {
	require.True(t, Int32Value(1).IsFinite())
	require.True(t, Float64Value(3.14).IsFinite())
}

func TestPredicateHasNullLiteral(t *testing.T) {
	p := Predicate{Condition: Equals, Literal: NullValue(KindInt32)}
	require.True(t, p.HasNullLiteral())

	p2 := Predicate{Condition: IsNull, Literal: NullValue(KindInt32)}
	require.False(t, p2.HasNullLiteral())

	p3 := Predicate{Condition: Between, Literal: Int32Value(1), Literal2: NullValue(KindInt32)}
	require.True(t, p3.HasNullLiteral())
}
