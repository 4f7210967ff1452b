// Package condition implements the C3 condition algebra: a tagged sum of
// every user-composable pipeline step, classified into one of four
// disjoint roles (matcher, match-filter, line-filter, transform) and
// dispatched to the concrete primitive in internal/matcher, internal/filter
// or internal/transform that implements it.
package condition

import (
	"fmt"

	"github.com/jpl-au/igr/internal/filter"
	"github.com/jpl-au/igr/internal/matcher"
	"github.com/jpl-au/igr/internal/transform"
	"github.com/jpl-au/igr/internal/value"
)

// Kind identifies one Condition variant. The string values match the
// identifiers the query parser and Display both use.
type Kind int

const (
	KindUnknown Kind = iota

	// Matchers
	KindExact
	KindIgnoreCase
	KindWholeWord
	KindRegex
	KindNumber

	// Match-filters
	KindContains
	KindStartsWith
	KindEndsWith
	KindInvertMatch
	KindInvertMatchRegex

	// Line-filters
	KindLineContains
	KindLineRegex
	KindLineStartsWith
	KindLineEndsWith
	KindLineInvertMatch
	KindLineInvertMatchRegex
	KindLineLength
	KindLineByteLength

	// Transforms
	KindReplace
	KindInsert
	KindDelete
	KindUpdate
	KindTrim
	KindTrimStart
	KindTrimEnd
	KindCamelCase
	KindKebabCase
	KindSnakeCase
	KindLowerCase
	KindUpperCase
	KindUpperCamelCase
	KindUpperKebabCase
	KindUpperSnakeCase
	KindConstant // alias for UpperSnakeCase
)

// Identifiers used by the query grammar and Display, one per Kind.
const (
	identNumber             = "number"
	identContains           = "contains"
	identConstant           = "constant"
	identIgnoreCase         = "ignore_case"
	identWholeWord          = "whole_word"
	identRegex              = "regex"
	identStartsWith         = "starts_with"
	identEndsWith           = "ends_with"
	identInvertMatch        = "invert_match"
	identInvertMatchRegex   = "invert_match_regex"
	identLineRegex          = "line.regex"
	identLineStartsWith     = "line.starts_with"
	identLineEndsWith       = "line.ends_with"
	identLineInvertMatch    = "line.invert_match"
	identLineInvertMRegex   = "line.invert_match_regex"
	identLineLength         = "line.length"
	identLineByteLength     = "line.bytelength"
	identLineContains       = "line.contains"
	identReplace            = "replace"
	identInsert             = "insert"
	identDelete             = "delete"
	identCamelCase          = "camel_case"
	identKebabCase          = "kebab_case"
	identSnakeCase          = "snake_case"
	identTrimEnd            = "trim_end"
	identTrimStart          = "trim_start"
	identTrim               = "trim"
	identUpdate             = "update"
	identUpperCase          = "upper_case"
	identLowerCase          = "lower_case"
	identUpperCamelCase     = "upper_camel_case"
	identUpperKebabCase     = "upper_kebab_case"
	identUpperSnakeCase     = "upper_snake_case"
)

// Condition is one pipeline step: a Kind plus whichever literal arguments
// that Kind uses. Unused fields are left at their zero value.
type Condition struct {
	Kind Kind

	// String-bearing variants: Exact, IgnoreCase, WholeWord, Regex,
	// Contains, StartsWith, EndsWith, InvertMatch, InvertMatchRegex,
	// LineRegex, LineStartsWith, LineEndsWith, LineInvertMatch,
	// LineInvertMatchRegex.
	Arg string

	// Replace(From, To)
	From string
	To   string

	// Insert(Index, Value) / Delete(Start, End)
	Index int
	Start int
	End   int

	// Update(Value)
	Value string

	// Number / LineLength / LineByteLength comparison tail. Present
	// reports whether a comparison tail was supplied at all; per spec
	// §4.4 its absence is a valid structural placeholder, never an
	// active matcher.
	Op      value.Op
	HasOp   bool
}

// IsMatcher reports whether this Condition produces match fragments.
func (c Condition) IsMatcher() bool {
	switch c.Kind {
	case KindExact, KindIgnoreCase, KindWholeWord, KindRegex, KindNumber:
		return true
	}
	return false
}

// IsFilter reports whether this Condition is a match-filter.
func (c Condition) IsFilter() bool {
	switch c.Kind {
	case KindContains, KindStartsWith, KindEndsWith, KindInvertMatch, KindInvertMatchRegex:
		return true
	}
	return false
}

// IsLineFilter reports whether this Condition is a line-filter.
func (c Condition) IsLineFilter() bool {
	switch c.Kind {
	case KindLineContains, KindLineRegex, KindLineStartsWith, KindLineEndsWith,
		KindLineInvertMatch, KindLineInvertMatchRegex, KindLineLength, KindLineByteLength:
		return true
	}
	return false
}

// IsTransform reports whether this Condition rewrites matched fragments.
func (c Condition) IsTransform() bool {
	switch c.Kind {
	case KindReplace, KindInsert, KindDelete, KindUpdate, KindTrim, KindTrimStart, KindTrimEnd,
		KindCamelCase, KindKebabCase, KindSnakeCase, KindLowerCase, KindUpperCase,
		KindUpperCamelCase, KindUpperKebabCase, KindUpperSnakeCase, KindConstant:
		return true
	}
	return false
}

// Matcher builds the matcher.Matcher this Condition denotes, or (nil, false)
// if it is not a matcher Kind.
func (c Condition) Matcher() (matcher.Matcher, bool, error) {
	switch c.Kind {
	case KindExact:
		return matcher.NewExact(c.Arg), true, nil
	case KindIgnoreCase:
		return matcher.NewIgnoreCase(c.Arg), true, nil
	case KindWholeWord:
		return matcher.NewWholeWord(c.Arg), true, nil
	case KindRegex:
		m, err := matcher.NewRegex(c.Arg)
		if err != nil {
			return nil, true, err
		}
		return m, true, nil
	case KindNumber:
		return matcher.NewNumber(c.Op), true, nil
	}
	return nil, false, nil
}

// Filter builds the filter.Filter this Condition denotes (match-filter or
// line-filter role alike; both share the same primitive family), or
// (nil, false) if it is neither.
func (c Condition) Filter() (filter.Filter, bool, error) {
	switch c.Kind {
	case KindContains, KindLineContains:
		return filter.NewContains(c.Arg), true, nil
	case KindStartsWith, KindLineStartsWith:
		return filter.NewStartsWith(c.Arg), true, nil
	case KindEndsWith, KindLineEndsWith:
		return filter.NewEndsWith(c.Arg), true, nil
	case KindInvertMatch, KindLineInvertMatch:
		return filter.NewInvertMatch(c.Arg), true, nil
	case KindInvertMatchRegex:
		f, err := filter.NewInvertMatchRegex(c.Arg)
		if err != nil {
			return nil, true, err
		}
		return f, true, nil
	case KindLineInvertMatchRegex:
		f, err := filter.NewInvertMatchRegex(c.Arg)
		if err != nil {
			return nil, true, err
		}
		return f, true, nil
	case KindLineRegex:
		f, err := filter.NewRegex(c.Arg)
		if err != nil {
			return nil, true, err
		}
		return f, true, nil
	case KindLineLength:
		return filter.NewLength(false, c.Op), true, nil
	case KindLineByteLength:
		return filter.NewLength(true, c.Op), true, nil
	}
	return nil, false, nil
}

// Transform builds the transform.Transform this Condition denotes, or
// (nil, false) if it is not a transform Kind. Trim is deliberately wired
// here (see spec §9 Open Questions / DESIGN.md): the original condition
// table never reached the trim primitive from this dispatch, and Constant
// is wired as an alias for UpperSnakeCase rather than left unmapped.
func (c Condition) Transform() (transform.Transform, bool) {
	switch c.Kind {
	case KindReplace:
		return transform.NewReplace(c.From, c.To), true
	case KindInsert:
		return transform.NewInsert(c.Index, c.Value), true
	case KindDelete:
		return transform.NewDelete(c.Start, c.End), true
	case KindUpdate:
		return transform.NewUpdate(c.Value), true
	case KindTrim:
		return transform.NewTrim(), true
	case KindTrimStart:
		return transform.NewTrimStart(), true
	case KindTrimEnd:
		return transform.NewTrimEnd(), true
	case KindCamelCase:
		return transform.NewCamelCase(), true
	case KindKebabCase:
		return transform.NewKebabCase(), true
	case KindSnakeCase:
		return transform.NewSnakeCase(), true
	case KindLowerCase:
		return transform.NewLowerCase(), true
	case KindUpperCase:
		return transform.NewUpperCase(), true
	case KindUpperCamelCase:
		return transform.NewUpperCamelCase(), true
	case KindUpperKebabCase:
		return transform.NewUpperKebabCase(), true
	case KindUpperSnakeCase, KindConstant:
		return transform.NewUpperSnakeCase(), true
	}
	return nil, false
}

// String renders the Condition in the same surface form the query parser
// accepts, e.g. "ignore_case(foo)" or "number() > 10".
func (c Condition) String() string {
	switch c.Kind {
	case KindExact:
		return c.Arg
	case KindIgnoreCase:
		return fmt.Sprintf("%s(%s)", identIgnoreCase, c.Arg)
	case KindWholeWord:
		return fmt.Sprintf("%s(%s)", identWholeWord, c.Arg)
	case KindRegex:
		return fmt.Sprintf("%s(%s)", identRegex, c.Arg)
	case KindNumber:
		return c.opString(identNumber)
	case KindContains:
		return fmt.Sprintf("%s(%s)", identContains, c.Arg)
	case KindStartsWith:
		return fmt.Sprintf("%s(%s)", identStartsWith, c.Arg)
	case KindEndsWith:
		return fmt.Sprintf("%s(%s)", identEndsWith, c.Arg)
	case KindInvertMatch:
		return fmt.Sprintf("%s(%s)", identInvertMatch, c.Arg)
	case KindInvertMatchRegex:
		return fmt.Sprintf("%s(%s)", identInvertMatchRegex, c.Arg)
	case KindLineContains:
		return fmt.Sprintf("%s(%s)", identLineContains, c.Arg)
	case KindLineRegex:
		return fmt.Sprintf("%s(%s)", identLineRegex, c.Arg)
	case KindLineStartsWith:
		return fmt.Sprintf("%s(%s)", identLineStartsWith, c.Arg)
	case KindLineEndsWith:
		return fmt.Sprintf("%s(%s)", identLineEndsWith, c.Arg)
	case KindLineInvertMatch:
		return fmt.Sprintf("%s(%s)", identLineInvertMatch, c.Arg)
	case KindLineInvertMatchRegex:
		return fmt.Sprintf("%s(%s)", identLineInvertMRegex, c.Arg)
	case KindLineLength:
		return c.opString(identLineLength)
	case KindLineByteLength:
		return c.opString(identLineByteLength)
	case KindReplace:
		return fmt.Sprintf("%s(%s, %s)", identReplace, c.From, c.To)
	case KindInsert:
		return fmt.Sprintf("%s(%d, %s)", identInsert, c.Index, c.Value)
	case KindDelete:
		return fmt.Sprintf("%s(%d, %d)", identDelete, c.Start, c.End)
	case KindUpdate:
		// The original "insert(...)" Display identifier for Update looks
		// like a copy-paste slip rather than a named Open Question, so it
		// is not replicated here; Update renders under its own name.
		return fmt.Sprintf("%s(%s)", identUpdate, c.Value)
	case KindTrim:
		return identTrim + "()"
	case KindTrimStart:
		return identTrimStart + "()"
	case KindTrimEnd:
		return identTrimEnd + "()"
	case KindCamelCase:
		return identCamelCase + "()"
	case KindKebabCase:
		return identKebabCase + "()"
	case KindSnakeCase:
		return identSnakeCase + "()"
	case KindLowerCase:
		return identLowerCase + "()"
	case KindUpperCase:
		return identUpperCase + "()"
	case KindUpperCamelCase:
		return identUpperCamelCase + "()"
	case KindUpperKebabCase:
		return identUpperKebabCase + "()"
	case KindUpperSnakeCase:
		return identUpperSnakeCase + "()"
	case KindConstant:
		return identConstant + "()"
	}
	return "?"
}

func (c Condition) opString(ident string) string {
	if !c.HasOp {
		return ident + "()"
	}
	return fmt.Sprintf("%s() %s", ident, c.Op)
}
