// Package render implements the five headless output shapes named in
// spec §6 (default, vimgrep, count, count_matches, quiet) plus the
// glamour-rendered "igr guide" help topic. Grounded on
// original_source/src/models/file_result.rs's per-shape rendering and on
// llmd's guide package for the markdown help topic.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jpl-au/igr/internal/model"
)

// Shape selects one of the five headless output shapes.
type Shape int

const (
	ShapeDefault Shape = iota
	ShapeVimgrep
	ShapeCount
	ShapeCountMatches
	ShapeQuiet
)

// colors is the 12-entry ANSI palette that match origin-index wraps into
// (spec §6: "color index wraps mod 12, assigned by match origin-index").
var colors = [12]string{
	"\033[31m", "\033[32m", "\033[33m", "\033[34m", "\033[35m", "\033[36m",
	"\033[91m", "\033[92m", "\033[93m", "\033[94m", "\033[95m", "\033[96m",
}

const colorReset = "\033[0m"

func colorFor(originIndex int) string {
	i := (originIndex - 1) % len(colors)
	if i < 0 {
		i += len(colors)
	}
	return colors[i]
}

// Render produces the output text for shape r and reports whether the
// result held any match (quiet's exit-code rule: non-zero when no match).
func Render(r model.SearchResult, shape Shape, colorEnabled bool) (string, bool) {
	switch shape {
	case ShapeVimgrep:
		return renderVimgrep(r), r.Stat().MatchCount > 0
	case ShapeCount:
		return strconv.Itoa(r.Stat().LineCount), r.Stat().LineCount > 0
	case ShapeCountMatches:
		return strconv.Itoa(r.Stat().MatchCount), r.Stat().MatchCount > 0
	case ShapeQuiet:
		return "", r.Stat().MatchCount > 0
	default:
		return renderDefault(r, colorEnabled), r.Stat().MatchCount > 0
	}
}

// renderDefault prints, per file, a header line with the file path,
// followed by "lineNo:text" lines with ANSI color for matches.
func renderDefault(r model.SearchResult, colorEnabled bool) string {
	var b strings.Builder
	for _, fr := range r.Files {
		if fr.FilePath != "" {
			fmt.Fprintf(&b, "%s\n", fr.FilePath)
		}
		for _, lr := range fr.Lines {
			if lr.Separator {
				b.WriteString("--\n")
				continue
			}
			if lr.Line == nil || lr.Line.Filtered {
				continue
			}
			fmt.Fprintf(&b, "%d:%s\n", lr.Line.LineNo, renderLine(*lr.Line, colorEnabled))
		}
	}
	return b.String()
}

// renderLine colorizes a Line's matched tokens, cycling the 12-color
// palette by each fragment's origin-index.
func renderLine(l model.Line, colorEnabled bool) string {
	if !colorEnabled {
		return l.Text
	}
	var b strings.Builder
	for _, tok := range l.Tokens() {
		if tok.Match == nil {
			b.WriteString(tok.Text)
			continue
		}
		b.WriteString(colorFor(tok.Match.OriginIndex))
		b.WriteString(tok.Text)
		b.WriteString(colorReset)
	}
	return b.String()
}

// renderVimgrep prints "path:line:col:text" once per match fragment
// (spec §9 decision 5: col is range.start+1, 1-based).
func renderVimgrep(r model.SearchResult) string {
	var b strings.Builder
	for _, fr := range r.Files {
		for _, lr := range fr.Lines {
			if lr.Line == nil || lr.Line.Filtered {
				continue
			}
			for _, m := range lr.Line.Matches {
				fmt.Fprintf(&b, "%s:%d:%d:%s\n", fr.FilePath, lr.Line.LineNo, m.Range.Start+1, lr.Line.Text)
			}
		}
	}
	return b.String()
}
