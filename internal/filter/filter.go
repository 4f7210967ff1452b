// Package filter implements the C2 filter primitives: pure predicates over
// a text fragment, used both as match-filters (over matched text) and
// line-filters (over the whole line).
package filter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jpl-au/igr/internal/ierr"
	"github.com/jpl-au/igr/internal/value"
)

// Filter accepts or rejects a piece of text.
type Filter interface {
	fmt.Stringer
	Accept(text string) bool
}

// Contains accepts text containing a keyword.
type Contains struct{ Keyword string }

func NewContains(k string) Contains          { return Contains{k} }
func (f Contains) Accept(text string) bool   { return strings.Contains(text, f.Keyword) }
func (f Contains) String() string            { return fmt.Sprintf("contains(%s)", f.Keyword) }

// StartsWith accepts text with a given prefix.
type StartsWith struct{ Keyword string }

func NewStartsWith(k string) StartsWith       { return StartsWith{k} }
func (f StartsWith) Accept(text string) bool  { return strings.HasPrefix(text, f.Keyword) }
func (f StartsWith) String() string           { return fmt.Sprintf("starts_with(%s)", f.Keyword) }

// EndsWith accepts text with a given suffix.
type EndsWith struct{ Keyword string }

func NewEndsWith(k string) EndsWith          { return EndsWith{k} }
func (f EndsWith) Accept(text string) bool   { return strings.HasSuffix(text, f.Keyword) }
func (f EndsWith) String() string            { return fmt.Sprintf("ends_with(%s)", f.Keyword) }

// InvertMatch accepts text NOT containing a keyword.
type InvertMatch struct{ Keyword string }

func NewInvertMatch(k string) InvertMatch     { return InvertMatch{k} }
func (f InvertMatch) Accept(text string) bool { return !strings.Contains(text, f.Keyword) }
func (f InvertMatch) String() string          { return fmt.Sprintf("invert_match(%s)", f.Keyword) }

// InvertMatchRegex accepts text that does not match a regex anywhere.
type InvertMatchRegex struct {
	Pattern string
	re      *regexp.Regexp
}

func NewInvertMatchRegex(pattern string) (InvertMatchRegex, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return InvertMatchRegex{}, fmt.Errorf("compile invert_match_regex %q: %w: %w", pattern, ierr.ErrRegexCompile, err)
	}
	return InvertMatchRegex{Pattern: pattern, re: re}, nil
}

func (f InvertMatchRegex) Accept(text string) bool { return !f.re.MatchString(text) }
func (f InvertMatchRegex) String() string {
	return fmt.Sprintf("invert_match_regex(%s)", f.Pattern)
}

// Regex accepts text matching a regex anywhere (used as line.regex).
type Regex struct {
	Pattern string
	re      *regexp.Regexp
}

func NewRegex(pattern string) (Regex, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Regex{}, fmt.Errorf("compile regex filter %q: %w: %w", pattern, ierr.ErrRegexCompile, err)
	}
	return Regex{Pattern: pattern, re: re}, nil
}

func (f Regex) Accept(text string) bool { return f.re.MatchString(text) }
func (f Regex) String() string          { return fmt.Sprintf("regex(%s)", f.Pattern) }

// Length accepts text whose length (byte or code-point count, depending on
// IsByte) satisfies a comparison operator.
type Length struct {
	IsByte bool
	Op     value.Op
}

func NewLength(isByte bool, op value.Op) Length { return Length{IsByte: isByte, Op: op} }

func (f Length) Accept(text string) bool {
	var n int
	if f.IsByte {
		n = len(text)
	} else {
		n = len([]rune(text))
	}
	ok, err := f.Op.Compare(uint64(n))
	if err != nil {
		return false
	}
	return ok
}

func (f Length) String() string {
	name := "length"
	if f.IsByte {
		name = "bytelength"
	}
	return fmt.Sprintf("%s() %s", name, f.Op)
}
