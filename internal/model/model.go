// Package model implements the C7 result model: the Fragment/Line/
// FileResult/SearchResult hierarchy and the incremental apply/pop/reapply
// operators that refine a SearchResult by one Condition at a time.
package model

import (
	"sort"

	"github.com/jpl-au/igr/internal/condition"
	"github.com/jpl-au/igr/internal/filter"
	"github.com/jpl-au/igr/internal/matcher"
	"github.com/jpl-au/igr/internal/transform"
)

// State is one of the three Fragment lifecycle states.
type State int

const (
	StateFound State = iota
	StateFiltered
	StateTransformed
)

// Range is a half-open byte range within the owning Line's text.
type Range struct {
	Start int
	End   int
}

// Fragment is one match occurrence inside a Line, in one of three states.
type Fragment struct {
	Text        string
	Range       Range
	State       State
	OriginIndex int
}

// fragKey is the dedup equality key spec §4.6 names:
// (state, text, range, origin-index).
type fragKey struct {
	state State
	text  string
	rng   Range
	index int
}

func (f Fragment) key() fragKey {
	return fragKey{state: f.State, text: f.Text, rng: f.Range, index: f.OriginIndex}
}

// less implements the sort order spec §4.6/§5 require: range start
// ascending, then origin-index ascending.
func less(a, b Fragment) bool {
	if a.Range.Start != b.Range.Start {
		return a.Range.Start < b.Range.Start
	}
	return a.OriginIndex < b.OriginIndex
}

// Line is one line of a FileResult: its original text (tabs already
// normalized to single spaces by the caller), its sorted match fragments,
// and whether it is currently hidden from the result.
type Line struct {
	LineNo   int
	Text     string
	Matches  []Fragment
	Filtered bool
}

// NewLine builds a Line with its matches sorted per the sort invariant.
func NewLine(lineNo int, text string, matches []Fragment) Line {
	l := Line{LineNo: lineNo, Text: text, Matches: append([]Fragment(nil), matches...)}
	sortMatches(l.Matches)
	return l
}

func sortMatches(m []Fragment) {
	sort.SliceStable(m, func(i, j int) bool { return less(m[i], m[j]) })
}

// Token is one rendering span of a Line: either plain text (Match == nil)
// or a matched/filtered/transformed fragment.
type Token struct {
	Text  string
	Match *Fragment
}

// Tokens walks Line.Matches in sorted order and slices Text between match
// boundaries, collapsing any fragment whose start falls inside the
// previous fragment's span.
func (l Line) Tokens() []Token {
	var toks []Token
	pos := 0
	for i := range l.Matches {
		m := l.Matches[i]
		start, end := m.Range.Start, m.Range.End
		if end > len(l.Text) {
			end = len(l.Text)
		}
		if start < pos {
			// Overlaps the previous fragment; nothing new to render before it.
			start = pos
		}
		if start > pos {
			toks = append(toks, Token{Text: l.Text[pos:start]})
		}
		if end < start {
			end = start
		}
		toks = append(toks, Token{Text: l.Text[start:end], Match: &l.Matches[i]})
		pos = end
	}
	if pos < len(l.Text) {
		toks = append(toks, Token{Text: l.Text[pos:]})
	}
	return toks
}

// LineResult is one entry of a FileResult's line list: either a Line or a
// context-gap Separator.
type LineResult struct {
	Line      *Line
	Separator bool
}

// FileResult is one file's worth of matched (and context) lines.
type FileResult struct {
	FilePath string
	Lines    []LineResult
}

// ContainsTransformed reports whether any Line in this FileResult holds a
// Transformed fragment, i.e. whether a commit would write anything.
func (fr FileResult) ContainsTransformed() bool {
	for _, lr := range fr.Lines {
		if lr.Line == nil {
			continue
		}
		for _, m := range lr.Line.Matches {
			if m.State == StateTransformed {
				return true
			}
		}
	}
	return false
}

// SearchResult is the full outcome of a search: the matched files plus
// the ordered Conditions that produced them.
type SearchResult struct {
	Files      []FileResult
	Conditions []condition.Condition
}

// Stat summarizes a SearchResult for reporting (count/count_matches output
// shapes, audit log Detail fields).
type Stat struct {
	FileCount  int
	LineCount  int
	MatchCount int
}

// Stat computes file, line and match counts. MatchCount includes every
// Fragment regardless of state (Found, Filtered or Transformed all count).
// LineCount is the number of Lines holding at least one Match, the
// quantity the "count" output shape reports (count_matches ≥ count ≥
// file_count whenever any match exists).
func (r SearchResult) Stat() Stat {
	var st Stat
	for _, fr := range r.Files {
		hasMatch := false
		for _, lr := range fr.Lines {
			if lr.Line == nil {
				continue
			}
			st.MatchCount += len(lr.Line.Matches)
			if len(lr.Line.Matches) > 0 {
				st.LineCount++
				hasMatch = true
			}
		}
		if hasMatch {
			st.FileCount++
		}
	}
	return st
}

// Clear wipes every Line's matches and filtered flag while keeping
// Conditions and the FileResult/Line skeleton (line numbers, text,
// separators) intact, ready for Reapply to fold.
func Clear(r SearchResult) SearchResult {
	files := make([]FileResult, len(r.Files))
	for i, fr := range r.Files {
		nfr := FileResult{FilePath: fr.FilePath, Lines: make([]LineResult, len(fr.Lines))}
		for j, lr := range fr.Lines {
			if lr.Line == nil {
				nfr.Lines[j] = lr
				continue
			}
			nfr.Lines[j] = LineResult{Line: &Line{LineNo: lr.Line.LineNo, Text: lr.Line.Text}}
		}
		files[i] = nfr
	}
	return SearchResult{Files: files, Conditions: append([]condition.Condition(nil), r.Conditions...)}
}

// Reapply clears all matches and re-derives them by folding every
// existing Condition back in order, starting at origin-index 1. This is
// what PopLast uses to re-derive state after dropping the last Condition.
func Reapply(r SearchResult) (SearchResult, error) {
	cleared := Clear(r)
	files := cleared.Files
	for i, c := range r.Conditions {
		var err error
		files, err = applyToFiles(files, c, i+1)
		if err != nil {
			return SearchResult{}, err
		}
	}
	return SearchResult{Files: files, Conditions: cleared.Conditions}, nil
}

// PopLast removes the last Condition and returns the re-derived result.
// Returns r unchanged if there are no Conditions to pop.
func PopLast(r SearchResult) (SearchResult, error) {
	if len(r.Conditions) == 0 {
		return r, nil
	}
	popped := SearchResult{
		Files:      r.Files,
		Conditions: append([]condition.Condition(nil), r.Conditions[:len(r.Conditions)-1]...),
	}
	return Reapply(popped)
}

// Apply extends r by one more Condition at the given 1-based origin-index,
// returning a fresh SearchResult (r is left untouched).
func Apply(r SearchResult, c condition.Condition, index int) (SearchResult, error) {
	files, err := applyToFiles(r.Files, c, index)
	if err != nil {
		return SearchResult{}, err
	}
	conds := append(append([]condition.Condition(nil), r.Conditions...), c)
	return SearchResult{Files: files, Conditions: conds}, nil
}

func applyToFiles(files []FileResult, c condition.Condition, index int) ([]FileResult, error) {
	primitive, err := buildPrimitive(c)
	if err != nil {
		return nil, err
	}

	out := make([]FileResult, len(files))
	for i, fr := range files {
		nfr := FileResult{FilePath: fr.FilePath, Lines: make([]LineResult, len(fr.Lines))}
		for j, lr := range fr.Lines {
			if lr.Line == nil {
				nfr.Lines[j] = lr
				continue
			}
			line := *lr.Line
			line.Matches = append([]Fragment(nil), lr.Line.Matches...)
			applyToLine(&line, c, index, primitive)
			nfr.Lines[j] = LineResult{Line: &line}
		}
		out[i] = nfr
	}
	return out, nil
}

// primitive holds whichever concrete matcher/filter/transform a Condition
// resolves to, built once per Apply call rather than once per line.
type primitive struct {
	matcher   matcher.Matcher
	filter    filter.Filter
	transform transform.Transform
}

func buildPrimitive(c condition.Condition) (primitive, error) {
	switch {
	case c.IsMatcher():
		m, _, err := c.Matcher()
		if err != nil {
			return primitive{}, err
		}
		return primitive{matcher: m}, nil
	case c.IsFilter(), c.IsLineFilter():
		f, _, err := c.Filter()
		if err != nil {
			return primitive{}, err
		}
		return primitive{filter: f}, nil
	case c.IsTransform():
		tr, _ := c.Transform()
		return primitive{transform: tr}, nil
	}
	return primitive{}, nil
}

func applyToLine(line *Line, c condition.Condition, index int, p primitive) {
	switch {
	case c.IsMatcher():
		applyMatcher(line, p.matcher, index)
	case c.IsFilter():
		applyMatchFilter(line, p.filter)
	case c.IsTransform():
		applyTransform(line, p.transform)
	case c.IsLineFilter():
		if !p.filter.Accept(line.Text) {
			line.Filtered = true
		}
	}
}

func applyMatcher(line *Line, m matcher.Matcher, index int) {
	seen := make(map[fragKey]bool, len(line.Matches))
	for _, f := range line.Matches {
		seen[f.key()] = true
	}
	for _, found := range m.Find(line.Text) {
		frag := Fragment{
			Text:        found.Text,
			Range:       Range{found.Range.Start, found.Range.End},
			State:       StateFound,
			OriginIndex: index,
		}
		if seen[frag.key()] {
			continue
		}
		seen[frag.key()] = true
		line.Matches = append(line.Matches, frag)
	}
	sortMatches(line.Matches)
	if len(line.Matches) == 0 {
		line.Filtered = true
	}
}

func applyMatchFilter(line *Line, f filter.Filter) {
	kept := line.Matches[:0:0]
	for _, m := range line.Matches {
		if !f.Accept(m.Text) {
			continue
		}
		m.State = StateFiltered
		kept = append(kept, m)
	}
	line.Matches = kept
	if len(kept) == 0 {
		line.Filtered = true
	}
}

func applyTransform(line *Line, tr transform.Transform) {
	var out []Fragment
	for _, m := range line.Matches {
		for _, p := range tr.Apply(m.Text) {
			out = append(out, Fragment{
				Text:        p.Text,
				Range:       Range{m.Range.Start + p.Range.Start, m.Range.Start + p.Range.End},
				State:       StateTransformed,
				OriginIndex: m.OriginIndex,
			})
		}
	}
	sortMatches(out)
	line.Matches = out
}
