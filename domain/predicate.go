package domain

// PredicateCondition is the closed set of predicate conditions a scan or
// statistic object understands. Like/NotLike/In/NotIn are recognized only
// as unsupported: they are valid conditions to construct but never
// prunable and never evaluated by the generic scan path here (spec §3).
type PredicateCondition byte

const (
	Equals PredicateCondition = iota
	NotEquals
	LessThan
	LessThanEquals
	GreaterThan
	GreaterThanEquals
	Between
	IsNull
	IsNotNull
	Like
	NotLike
	In
	NotIn
)

// Unsupported reports whether the condition is recognized but never
// evaluated or pruned by this module (spec §3, §4.8).
func (c PredicateCondition) Unsupported() bool {
	switch c {
	case Like, NotLike, In, NotIn:
		return true
	default:
		return false
	}
}

// IsNullCheck reports whether the condition is IsNull or IsNotNull — the
// only conditions that consult a segment's null bitmap directly rather
// than comparing values.
func (c PredicateCondition) IsNullCheck() bool {
	return c == IsNull || c == IsNotNull
}

// Predicate is a condition plus its literal operand(s). Between carries
// both Literal (lower bound) and Literal2 (upper bound, inclusive); IsNull
// and IsNotNull carry neither.
type Predicate struct {
	Condition PredicateCondition
	Literal   Value
	Literal2  Value // only meaningful when Condition == Between
}

// HasNullLiteral reports whether evaluating this predicate must behave as
// "comparison with null" (spec §4.8): any non-null-check predicate whose
// literal (or, for Between, either bound) is null.
func (p Predicate) HasNullLiteral() bool {
	if p.Condition.IsNullCheck() {
		return false
	}
	if p.Literal.Null {
		return true
	}
	if p.Condition == Between && p.Literal2.Null {
		return true
	}
	return false
}
