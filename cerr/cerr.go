// Package cerr defines the error-kind vocabulary the core raises (spec §7).
//
// The teacher lineage (storage/pager.go) declares sentinel errors with
// plain errors.New and wraps them with fmt.Errorf("...: %w", err). The rest
// of the retrieval pack (dolthub/go-mysql-server, grafana/tempo) reaches for
// github.com/pkg/errors for causal wrapping instead. cerr keeps the
// teacher's sentinel shape but wraps through pkg/errors so a caller can
// still recover the sentinel with Cause after the scan pipeline has added
// context at several layers.
package cerr

import "github.com/pkg/errors"

// Sentinel errors for the three kinds spec §7 names. Unsupported is raised
// only in the sense that a statistic is *asked* about an unsupported
// condition — per spec it never actually returns this error, it returns
// "cannot prune" as a value instead (CanPrune returns false). The sentinel
// still exists for symmetry and for components outside this module's scope
// that may want to classify errors the same way.
var (
	ErrInvalidArgument = errors.New("colcore: invalid argument")
	ErrUnsupported     = errors.New("colcore: unsupported predicate")
	ErrFatal           = errors.New("colcore: internal invariant violated")
)

// InvalidArgument wraps ErrInvalidArgument with context, e.g. an unsorted
// range-filter input or a non-positive bin count.
func InvalidArgument(format string, args ...any) error {
	return errors.Wrapf(ErrInvalidArgument, format, args...)
}

// Fatal wraps ErrFatal with context, e.g. a chunk that carries neither a
// value nor a dictionary segment, or a decoded statistic that breaks its
// invariant. An unsorted dictionary or a literal whose kind differs from
// its column's panics at the call site instead of returning this error.
func Fatal(format string, args ...any) error {
	return errors.Wrapf(ErrFatal, format, args...)
}

// Unsupported wraps ErrUnsupported with context. Unlike a statistic object
// (which answers "cannot prune" rather than raising this), the scan core
// has no value to return for a condition it does not evaluate at all, so it
// raises this instead.
func Unsupported(format string, args ...any) error {
	return errors.Wrapf(ErrUnsupported, format, args...)
}

// Cause unwraps to the underlying sentinel, mirroring pkg/errors.Cause so
// callers can classify an error returned from deep inside the scan pipeline.
func Cause(err error) error {
	return errors.Cause(err)
}

// Is reports whether err wraps the given sentinel, via errors.Is semantics.
func Is(err, sentinel error) bool {
	return errors.Is(err, sentinel)
}
