// Package search implements the C6 search engine: runs the first matcher
// (and, if present, the first line-filter) over files from the walker or a
// single stdin buffer, producing the initial SearchResult. Per-file work
// fans out across a bounded worker pool, in the style of llmd's internal/
// document read/resolve helpers that use sync.WaitGroup.Go for concurrent
// fan-out.
package search

import (
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/jpl-au/igr/internal/condition"
	"github.com/jpl-au/igr/internal/ierr"
	"github.com/jpl-au/igr/internal/model"
	"github.com/jpl-au/igr/internal/walker"
)

// Config is the SearchConfig named in spec §4.5/§6.
type Config struct {
	BeforeContext int
	AfterContext  int
	Threads       int
	Walker        walker.Config
	Roots         []string
	Stdin         io.Reader
}

// resolveThreads picks the worker-pool size: explicit config, else the
// THREADS environment variable (spec §6), else one goroutine per CPU.
func resolveThreads(n int) int {
	if n > 0 {
		return n
	}
	if v := os.Getenv("THREADS"); v != "" {
		if t, err := strconv.Atoi(v); err == nil && t > 0 {
			return t
		}
	}
	return runtime.NumCPU()
}

// Search runs the initial scan and returns the SearchResult produced by
// folding the first matcher in conds (and the first line-filter, if any)
// over every line, per spec §4.5. The result's Conditions hold only those
// folded conditions (see ConsumedIndices), in query order.
func Search(conds []condition.Condition, cfg Config) (model.SearchResult, error) {
	if len(conds) == 0 {
		return model.SearchResult{}, nil
	}
	if conds[0].IsTransform() {
		return model.SearchResult{}, ierr.ErrInvalidCondition
	}

	m, ok, err := firstMatcher(conds)
	if err != nil {
		return model.SearchResult{}, err
	}
	mi, li := ConsumedIndices(conds)
	var consumed []condition.Condition
	for i, c := range conds {
		if i == mi || i == li {
			consumed = append(consumed, c)
		}
	}
	if !ok {
		return model.SearchResult{Conditions: consumed}, nil
	}

	lf, hasLF, err := firstLineFilter(conds)
	if err != nil {
		return model.SearchResult{}, err
	}

	var files []model.FileResult
	if cfg.Stdin != nil {
		content, rerr := io.ReadAll(cfg.Stdin)
		if rerr != nil {
			return model.SearchResult{}, rerr
		}
		if fr, ok := scanContent("", string(content), m, lf, hasLF, cfg); ok {
			files = append(files, fr)
		}
	} else {
		var paths []string
		for _, root := range cfg.Roots {
			found, werr := walker.Walk(root, cfg.Walker)
			if werr != nil {
				continue // walker I/O errors are skipped silently, spec §7 kind 3
			}
			paths = append(paths, found...)
		}
		files = scanFiles(paths, m, lf, hasLF, cfg)
	}

	return model.SearchResult{
		Files:      files,
		Conditions: consumed,
	}, nil
}

// ConsumedIndices reports the zero-based positions within conds that the
// initial Search call already folded into the result: the first matcher
// condition anywhere in the list (required for a match to have happened at
// all) and, if one is present anywhere in the list, the first line-filter
// condition. A caller folding the remaining conditions in one at a time via
// model.Apply must skip both of these positions - applying either again
// would re-derive fragments already tagged origin-index 1 at a new
// origin-index, duplicating them under the dedup key's per-index equality.
// A returned index is -1 when no such condition is present.
func ConsumedIndices(conds []condition.Condition) (matcherIndex, lineFilterIndex int) {
	matcherIndex, lineFilterIndex = -1, -1
	for i, c := range conds {
		if matcherIndex == -1 && c.IsMatcher() {
			matcherIndex = i
		}
		if lineFilterIndex == -1 && c.IsLineFilter() {
			lineFilterIndex = i
		}
	}
	return matcherIndex, lineFilterIndex
}

func firstMatcher(conds []condition.Condition) (condition.Condition, bool, error) {
	for _, c := range conds {
		if c.IsMatcher() {
			return c, true, nil
		}
	}
	return condition.Condition{}, false, nil
}

func firstLineFilter(conds []condition.Condition) (condition.Condition, bool, error) {
	for _, c := range conds {
		if c.IsLineFilter() {
			return c, true, nil
		}
	}
	return condition.Condition{}, false, nil
}

func scanFiles(paths []string, matcherCond condition.Condition, lineFilterCond condition.Condition, hasLF bool, cfg Config) []model.FileResult {
	results := make([]model.FileResult, len(paths))
	present := make([]bool, len(paths))

	sem := make(chan struct{}, resolveThreads(cfg.Threads))
	var wg sync.WaitGroup
	for i, p := range paths {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, p string) {
			defer wg.Done()
			defer func() { <-sem }()

			data, err := os.ReadFile(p)
			if err != nil || !utf8.Valid(data) {
				return // unreadable/non-UTF8 files are skipped silently, spec §7 kind 3
			}
			fr, ok := scanContent(p, string(data), matcherCond, lineFilterCond, hasLF, cfg)
			if ok {
				results[i] = fr
				present[i] = true
			}
		}(i, p)
	}
	wg.Wait()

	out := make([]model.FileResult, 0, len(results))
	for i, ok := range present {
		if ok {
			out = append(out, results[i])
		}
	}
	return out
}

// scanContent runs the matcher condition (and optional line-filter) over
// one file's content, building context windows around each match. Returns
// ok=false when no line produced a match (the file is omitted entirely).
func scanContent(path, content string, matcherCond, lineFilterCond condition.Condition, hasLF bool, cfg Config) (model.FileResult, bool) {
	m, _, err := matcherCond.Matcher()
	if err != nil || m == nil {
		return model.FileResult{}, false
	}
	var lf interface {
		Accept(string) bool
	}
	if hasLF {
		f, _, ferr := lineFilterCond.Filter()
		if ferr == nil {
			lf = f
		}
	}

	rawLines := strings.Split(content, "\n")
	lines := make([]string, len(rawLines))
	for i, l := range rawLines {
		lines[i] = strings.ReplaceAll(l, "\t", " ")
	}

	var out []model.LineResult
	for i, text := range lines {
		lineNo := i + 1
		if lf != nil && !lf.Accept(text) {
			continue
		}
		founds := m.Find(text)
		if len(founds) == 0 {
			continue
		}

		fragments := make([]model.Fragment, 0, len(founds))
		for _, f := range founds {
			fragments = append(fragments, model.Fragment{
				Text:        f.Text,
				Range:       model.Range{Start: f.Range.Start, End: f.Range.End},
				State:       model.StateFound,
				OriginIndex: 1,
			})
		}

		beforeStart := i - cfg.BeforeContext
		if beforeStart < 0 {
			beforeStart = 0
		}
		afterEnd := i + cfg.AfterContext
		if afterEnd >= len(lines) {
			afterEnd = len(lines) - 1
		}

		for j := beforeStart; j < i; j++ {
			out = append(out, model.LineResult{Line: contextLine(j+1, lines[j])})
		}
		line := model.NewLine(lineNo, text, fragments)
		out = append(out, model.LineResult{Line: &line})
		for j := i + 1; j <= afterEnd; j++ {
			out = append(out, model.LineResult{Line: contextLine(j+1, lines[j])})
		}

		if (i-beforeStart)+(afterEnd-i) > 1 {
			out = append(out, model.LineResult{Separator: true})
		}
	}

	if len(out) == 0 {
		return model.FileResult{}, false
	}
	return model.FileResult{FilePath: path, Lines: out}, true
}

func contextLine(lineNo int, text string) *model.Line {
	l := model.NewLine(lineNo, text, nil)
	return &l
}
