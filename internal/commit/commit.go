// Package commit implements the C8 commit engine: writing a SearchResult's
// Transformed fragments back to disk, either for every file at once or for
// a single selected line. Per-file work fans out across a bounded worker
// pool and reports progress on an events.Sink, in the style of llmd's
// internal/document write operations (sync-to-filesystem-then-fire-event),
// adapted here to many files in parallel rather than one document at a time.
package commit

import (
	"fmt"
	"os"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/jpl-au/igr/internal/diff"
	"github.com/jpl-au/igr/internal/events"
	"github.com/jpl-au/igr/internal/ierr"
	"github.com/jpl-au/igr/internal/model"
)

// Result summarizes a commit operation for reporting (audit log Detail
// fields, spec §4.2's "committed_files"/"committed_lines").
type Result struct {
	CommittedFiles int
	CommittedLines int
	Errors         []error
}

// CommitAll rewrites every FileResult in r that holds a Transformed match,
// in parallel. Each file is read fresh from disk (spec §9 decision 3: no
// staleness detection), its Transformed lines rewritten, and written back.
// A per-file I/O failure is recorded in Result.Errors and sent as an Error
// event; it does not stop the commit of other files. Progress(+1) is sent
// per file committed, followed by one ReplaceFinished once all are done.
func CommitAll(r model.SearchResult, sink events.Sink) (Result, error) {
	type outcome struct {
		lines int
		err   error
	}

	var targets []model.FileResult
	for _, fr := range r.Files {
		if fr.ContainsTransformed() {
			targets = append(targets, fr)
		}
	}

	outcomes := make([]outcome, len(targets))
	sem := make(chan struct{}, runtime.NumCPU())
	var wg sync.WaitGroup
	for i, fr := range targets {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, fr model.FileResult) {
			defer wg.Done()
			defer func() { <-sem }()
			n, err := commitFile(fr)
			outcomes[i] = outcome{lines: n, err: err}
		}(i, fr)
	}
	wg.Wait()

	var res Result
	for i, o := range outcomes {
		if o.err != nil {
			err := fmt.Errorf("commit %q: %w: %w", targets[i].FilePath, ierr.ErrCommit, o.err)
			res.Errors = append(res.Errors, err)
			sink.Send(events.Event{Kind: events.Error, Err: err})
			continue
		}
		res.CommittedFiles++
		res.CommittedLines += o.lines
		sink.Send(events.Event{Kind: events.Progress, Delta: 1})
	}
	sink.Send(events.Event{Kind: events.ReplaceFinished})
	return res, nil
}

// commitFile rewrites one file's Transformed lines, returning how many
// lines were committed.
func commitFile(fr model.FileResult) (int, error) {
	data, err := os.ReadFile(fr.FilePath)
	if err != nil {
		return 0, err
	}
	lines := strings.Split(string(data), "\n")

	committed := 0
	for _, lr := range fr.Lines {
		if lr.Line == nil || !hasTransformed(lr.Line.Matches) {
			continue
		}
		idx := lr.Line.LineNo - 1
		if idx < 0 || idx >= len(lines) {
			continue // line no longer exists in the freshly-read file; skip
		}
		lines[idx] = applyTransformsToLine(lr.Line.Text, lr.Line.Matches)
		committed++
	}
	if committed == 0 {
		return 0, nil
	}
	if err := os.WriteFile(fr.FilePath, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		return 0, err
	}
	return committed, nil
}

// CommitLine rewrites a single selected (file, line) and, on success,
// returns a SearchResult with that line removed so re-selection cannot
// reapply it.
func CommitLine(r model.SearchResult, filePath string, lineNo int) (model.SearchResult, error) {
	fi := -1
	for i, fr := range r.Files {
		if fr.FilePath == filePath {
			fi = i
			break
		}
	}
	if fi == -1 {
		return r, fmt.Errorf("commit line: file %q not in result", filePath)
	}
	fr := r.Files[fi]

	li := -1
	for i, lr := range fr.Lines {
		if lr.Line != nil && lr.Line.LineNo == lineNo {
			li = i
			break
		}
	}
	if li == -1 {
		return r, fmt.Errorf("commit line: line %d not in file %q", lineNo, filePath)
	}
	line := fr.Lines[li].Line
	if !hasTransformed(line.Matches) {
		return r, nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return r, fmt.Errorf("commit line %q: %w: %w", filePath, ierr.ErrCommit, err)
	}
	lines := strings.Split(string(data), "\n")
	idx := lineNo - 1
	if idx < 0 || idx >= len(lines) {
		return r, fmt.Errorf("commit line: line %d out of range in %q", lineNo, filePath)
	}
	lines[idx] = applyTransformsToLine(line.Text, line.Matches)
	if err := os.WriteFile(filePath, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		return r, fmt.Errorf("commit line %q: %w: %w", filePath, ierr.ErrCommit, err)
	}

	newFiles := append([]model.FileResult(nil), r.Files...)
	newLines := append([]model.LineResult(nil), fr.Lines...)
	newLines = append(newLines[:li], newLines[li+1:]...)
	newFiles[fi] = model.FileResult{FilePath: fr.FilePath, Lines: newLines}
	return model.SearchResult{Files: newFiles, Conditions: r.Conditions}, nil
}

// Preview computes a diff of filePath's content before and after its pending
// Transformed lines in fr would be committed, without writing anything.
// Backs igr's --dry-run flag and the MCP igr_preview tool.
func Preview(filePath string, fr model.FileResult) (diff.Result, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return diff.Result{}, fmt.Errorf("preview %q: %w", filePath, err)
	}
	old := string(data)
	lines := strings.Split(old, "\n")
	for _, lr := range fr.Lines {
		if lr.Line == nil || !hasTransformed(lr.Line.Matches) {
			continue
		}
		idx := lr.Line.LineNo - 1
		if idx < 0 || idx >= len(lines) {
			continue
		}
		lines[idx] = applyTransformsToLine(lr.Line.Text, lr.Line.Matches)
	}
	return diff.Compute(old, strings.Join(lines, "\n"), filePath, filePath+" (after commit)"), nil
}

func hasTransformed(matches []model.Fragment) bool {
	for _, m := range matches {
		if m.State == model.StateTransformed {
			return true
		}
	}
	return false
}

// applyTransformsToLine rewrites text's Transformed fragments, applying them
// right-to-left by range start so earlier ranges stay valid as lengths
// change (spec §4.7, §9 decision 4).
func applyTransformsToLine(text string, matches []model.Fragment) string {
	var transformed []model.Fragment
	for _, m := range matches {
		if m.State == model.StateTransformed {
			transformed = append(transformed, m)
		}
	}
	if len(transformed) == 0 {
		return text
	}
	sort.Slice(transformed, func(i, j int) bool {
		return transformed[i].Range.Start > transformed[j].Range.Start
	})
	for _, m := range transformed {
		start, end := m.Range.Start, m.Range.End
		if start < 0 {
			start = 0
		}
		if end > len(text) {
			end = len(text)
		}
		if start > end || start > len(text) {
			continue
		}
		text = text[:start] + m.Text + text[end:]
	}
	return text
}
