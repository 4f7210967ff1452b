// Package matcher implements the C2 matcher primitives: stateless leaf
// operations that scan a line of text and report every non-overlapping
// occurrence as (matched text, byte range).
package matcher

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jpl-au/igr/internal/ierr"
	"github.com/jpl-au/igr/internal/value"
)

// Range is a half-open byte range [Start, End) within a line's text.
type Range struct {
	Start int
	End   int
}

// Found is one occurrence reported by a Matcher.
type Found struct {
	Text  string
	Range Range
}

// Matcher finds every non-overlapping occurrence of itself in text.
type Matcher interface {
	fmt.Stringer
	Find(text string) []Found
}

// Exact finds byte-wise occurrences of a literal keyword.
type Exact struct{ Keyword string }

func NewExact(keyword string) Exact { return Exact{Keyword: keyword} }

func (m Exact) Find(text string) []Found {
	if m.Keyword == "" {
		return nil
	}
	var out []Found
	start := 0
	for {
		i := strings.Index(text[start:], m.Keyword)
		if i < 0 {
			break
		}
		from := start + i
		to := from + len(m.Keyword)
		out = append(out, Found{Text: m.Keyword, Range: Range{from, to}})
		start = to
	}
	return out
}

func (m Exact) String() string { return m.Keyword }

// IgnoreCase finds occurrences of a keyword case-insensitively. The
// reported text is the original keyword, not the source substring; ranges
// index the original text.
type IgnoreCase struct{ Keyword string }

func NewIgnoreCase(keyword string) IgnoreCase { return IgnoreCase{Keyword: keyword} }

func (m IgnoreCase) Find(text string) []Found {
	if m.Keyword == "" {
		return nil
	}
	lowerText := strings.ToLower(text)
	lowerKey := strings.ToLower(m.Keyword)
	var out []Found
	start := 0
	for {
		i := strings.Index(lowerText[start:], lowerKey)
		if i < 0 {
			break
		}
		from := start + i
		to := from + len(lowerKey)
		out = append(out, Found{Text: m.Keyword, Range: Range{from, to}})
		start = to
	}
	return out
}

func (m IgnoreCase) String() string { return fmt.Sprintf("ignore_case(%s)", m.Keyword) }

// WholeWord finds a keyword bounded by word boundaries.
type WholeWord struct {
	Keyword string
	re      *regexp.Regexp
}

func NewWholeWord(keyword string) WholeWord {
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(keyword) + `\b`)
	return WholeWord{Keyword: keyword, re: re}
}

func (m WholeWord) Find(text string) []Found {
	locs := m.re.FindAllStringIndex(text, -1)
	out := make([]Found, 0, len(locs))
	for _, loc := range locs {
		out = append(out, Found{Text: m.Keyword, Range: Range{loc[0], loc[1]}})
	}
	return out
}

func (m WholeWord) String() string { return fmt.Sprintf("whole_word(%s)", m.Keyword) }

// Regex finds leftmost-first regex matches. Construction fails with
// ErrRegexCompile-wrapped error on an invalid pattern.
type Regex struct {
	Pattern string
	re      *regexp.Regexp
}

func NewRegex(pattern string) (Regex, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Regex{}, fmt.Errorf("compile matcher regex %q: %w: %w", pattern, ierr.ErrRegexCompile, err)
	}
	return Regex{Pattern: pattern, re: re}, nil
}

func (m Regex) Find(text string) []Found {
	locs := m.re.FindAllStringIndex(text, -1)
	out := make([]Found, 0, len(locs))
	for _, loc := range locs {
		out = append(out, Found{Text: text[loc[0]:loc[1]], Range: Range{loc[0], loc[1]}})
	}
	return out
}

func (m Regex) String() string { return fmt.Sprintf("regex(%s)", m.Pattern) }

var digitRun = regexp.MustCompile(`[0-9]+`)

// Number finds maximal digit runs that satisfy a comparison operator.
// Runs that fail to parse or don't satisfy the operator are skipped.
type Number struct{ Op value.Op }

func NewNumber(op value.Op) Number { return Number{Op: op} }

func (m Number) Find(text string) []Found {
	locs := digitRun.FindAllStringIndex(text, -1)
	out := make([]Found, 0, len(locs))
	for _, loc := range locs {
		raw := text[loc[0]:loc[1]]
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			continue
		}
		ok, err := m.Op.Compare(n)
		if err != nil || !ok {
			continue
		}
		out = append(out, Found{Text: raw, Range: Range{loc[0], loc[1]}})
	}
	return out
}

func (m Number) String() string { return fmt.Sprintf("number() %s", m.Op) }
