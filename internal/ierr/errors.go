// Package ierr defines the sentinel error kinds the engine can produce, in
// the style of llmd's internal/sed sentinel errors — wrap with %w and match
// with errors.Is/errors.As at the call site.
package ierr

import "errors"

var (
	// ErrQueryParse is a per-condition parse failure (spec error kind 1).
	// The containing query still runs with the remaining conditions.
	ErrQueryParse = errors.New("query parse error")

	// ErrRegexCompile is returned when a matcher/filter's regex pattern
	// fails to compile (spec error kind 2).
	ErrRegexCompile = errors.New("regex compile error")

	// ErrInvalidCondition is returned when a pipeline's first condition is
	// a transform (spec error kind 6).
	ErrInvalidCondition = errors.New("invalid condition")

	// ErrEnvResolution is returned when an env.<NAME> value reference is
	// unset or non-numeric where a number was required (spec error kind 7).
	ErrEnvResolution = errors.New("environment resolution failed")

	// ErrCommit wraps a per-file I/O failure during commit (spec error kind 4).
	ErrCommit = errors.New("commit error")

	// ErrNotImplemented is returned by flag passthroughs for the widget
	// layer (--editor, --theme) that igr exposes as hooks for an external
	// collaborator without implementing itself in headless mode.
	ErrNotImplemented = errors.New("not implemented in headless mode")
)
