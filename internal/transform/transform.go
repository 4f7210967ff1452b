// Package transform implements the C2 transform primitives: each rewrites
// a matched fragment into exactly one replacement spanning the fragment's
// whole byte range, [0, len(text)).
package transform

import (
	"fmt"
	"strings"
)

// Range is a half-open byte range within the text a Transform received.
type Range struct {
	Start int
	End   int
}

// Piece is one transformed replacement. Built-in transforms always
// produce exactly one Piece spanning the whole input.
type Piece struct {
	Text  string
	Range Range
}

// Transform rewrites a fragment of text into its replacement(s).
type Transform interface {
	fmt.Stringer
	Apply(text string) []Piece
}

func whole(text, replacement string) []Piece {
	return []Piece{{Text: replacement, Range: Range{0, len(text)}}}
}

// Replace substitutes every occurrence of From with To.
type Replace struct{ From, To string }

func NewReplace(from, to string) Replace { return Replace{From: from, To: to} }
func (t Replace) Apply(text string) []Piece {
	return whole(text, strings.ReplaceAll(text, t.From, t.To))
}
func (t Replace) String() string { return fmt.Sprintf("replace(%s, %s)", t.From, t.To) }

// Insert inserts Value at a rune Index within the text.
type Insert struct {
	Index int
	Value string
}

func NewInsert(index int, value string) Insert { return Insert{Index: index, Value: value} }
func (t Insert) Apply(text string) []Piece {
	rs := []rune(text)
	i := t.Index
	if i < 0 {
		i = 0
	}
	if i > len(rs) {
		i = len(rs)
	}
	out := string(rs[:i]) + t.Value + string(rs[i:])
	return whole(text, out)
}
func (t Insert) String() string { return fmt.Sprintf("insert(%d, %s)", t.Index, t.Value) }

// Delete removes the rune range [Start, End) from the text.
type Delete struct{ Start, End int }

func NewDelete(start, end int) Delete { return Delete{Start: start, End: end} }
func (t Delete) Apply(text string) []Piece {
	rs := []rune(text)
	start, end := t.Start, t.End
	if start < 0 {
		start = 0
	}
	if end > len(rs) {
		end = len(rs)
	}
	if start > len(rs) {
		start = len(rs)
	}
	if end < start {
		end = start
	}
	out := string(rs[:start]) + string(rs[end:])
	return whole(text, out)
}
func (t Delete) String() string { return fmt.Sprintf("delete(%d, %d)", t.Start, t.End) }

// Update replaces the whole fragment with a fixed literal value.
type Update struct{ Value string }

func NewUpdate(value string) Update         { return Update{Value: value} }
func (t Update) Apply(text string) []Piece  { return whole(text, t.Value) }
func (t Update) String() string             { return fmt.Sprintf("update(%s)", t.Value) }

// Trim strips leading and trailing whitespace.
type Trim struct{}

func NewTrim() Trim                      { return Trim{} }
func (t Trim) Apply(text string) []Piece { return whole(text, strings.TrimSpace(text)) }
func (t Trim) String() string            { return "trim()" }

// TrimStart strips leading whitespace.
type TrimStart struct{}

func NewTrimStart() TrimStart                 { return TrimStart{} }
func (t TrimStart) Apply(text string) []Piece { return whole(text, strings.TrimLeft(text, " \t\n\r")) }
func (t TrimStart) String() string            { return "trim_start()" }

// TrimEnd strips trailing whitespace.
type TrimEnd struct{}

func NewTrimEnd() TrimEnd                   { return TrimEnd{} }
func (t TrimEnd) Apply(text string) []Piece { return whole(text, strings.TrimRight(text, " \t\n\r")) }
func (t TrimEnd) String() string            { return "trim_end()" }

// LowerCase lowercases the whole fragment.
type LowerCase struct{}

func NewLowerCase() LowerCase                 { return LowerCase{} }
func (t LowerCase) Apply(text string) []Piece { return whole(text, strings.ToLower(text)) }
func (t LowerCase) String() string            { return "lower_case()" }

// UpperCase uppercases the whole fragment.
type UpperCase struct{}

func NewUpperCase() UpperCase                 { return UpperCase{} }
func (t UpperCase) Apply(text string) []Piece { return whole(text, strings.ToUpper(text)) }
func (t UpperCase) String() string            { return "upper_case()" }

// CamelCase recombines words as camelCase: first word lowercased, the
// rest capitalized, with no separators.
type CamelCase struct{}

func NewCamelCase() CamelCase { return CamelCase{} }
func (t CamelCase) Apply(text string) []Piece {
	words := splitWords(text)
	var b strings.Builder
	for i, w := range words {
		if i == 0 {
			b.WriteString(lowerWord(w))
		} else {
			b.WriteString(capitalize(w))
		}
	}
	return whole(text, b.String())
}
func (t CamelCase) String() string { return "camel_case()" }

// UpperCamelCase (PascalCase) capitalizes every word with no separators.
type UpperCamelCase struct{}

func NewUpperCamelCase() UpperCamelCase { return UpperCamelCase{} }
func (t UpperCamelCase) Apply(text string) []Piece {
	words := splitWords(text)
	var b strings.Builder
	for _, w := range words {
		b.WriteString(capitalize(w))
	}
	return whole(text, b.String())
}
func (t UpperCamelCase) String() string { return "upper_camel_case()" }

// KebabCase joins lowercased words with hyphens.
type KebabCase struct{}

func NewKebabCase() KebabCase { return KebabCase{} }
func (t KebabCase) Apply(text string) []Piece {
	words := splitWords(text)
	for i, w := range words {
		words[i] = lowerWord(w)
	}
	return whole(text, strings.Join(words, "-"))
}
func (t KebabCase) String() string { return "kebab_case()" }

// UpperKebabCase joins uppercased words with hyphens.
type UpperKebabCase struct{}

func NewUpperKebabCase() UpperKebabCase { return UpperKebabCase{} }
func (t UpperKebabCase) Apply(text string) []Piece {
	words := splitWords(text)
	for i, w := range words {
		words[i] = upperWord(w)
	}
	return whole(text, strings.Join(words, "-"))
}
func (t UpperKebabCase) String() string { return "upper_kebab_case()" }

// SnakeCase joins lowercased words with underscores.
type SnakeCase struct{}

func NewSnakeCase() SnakeCase { return SnakeCase{} }
func (t SnakeCase) Apply(text string) []Piece {
	words := splitWords(text)
	for i, w := range words {
		words[i] = lowerWord(w)
	}
	return whole(text, strings.Join(words, "_"))
}
func (t SnakeCase) String() string { return "snake_case()" }

// UpperSnakeCase (SCREAMING_SNAKE_CASE) joins uppercased words with
// underscores. Also serves as the Constant transform, an alias observed
// in the original pipeline for "promote this line to a constant name".
type UpperSnakeCase struct{}

func NewUpperSnakeCase() UpperSnakeCase { return UpperSnakeCase{} }
func (t UpperSnakeCase) Apply(text string) []Piece {
	words := splitWords(text)
	for i, w := range words {
		words[i] = upperWord(w)
	}
	return whole(text, strings.Join(words, "_"))
}
func (t UpperSnakeCase) String() string { return "upper_snake_case()" }
