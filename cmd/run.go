// run.go implements query execution: parse, search, fold the remaining
// conditions in one at a time via apply (mirroring the interactive UI's
// condition-by-condition entry), then render or commit the result.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jpl-au/igr/internal/auditlog"
	"github.com/jpl-au/igr/internal/commit"
	"github.com/jpl-au/igr/internal/config"
	"github.com/jpl-au/igr/internal/events"
	"github.com/jpl-au/igr/internal/model"
	"github.com/jpl-au/igr/internal/query"
	"github.com/jpl-au/igr/internal/render"
	"github.com/jpl-au/igr/internal/search"
	"github.com/jpl-au/igr/internal/termstate"
	"github.com/jpl-au/igr/internal/walker"
)

// exitCode carries a non-zero process exit status out of RunE without
// letting cobra print an accompanying error (used by the quiet shape's
// "nothing matched" convention).
var exitCode int

func runQuery(_ *cobra.Command, args []string) error {
	exitCode = 0
	q := args[0]
	root := "."
	if len(args) > 1 {
		root = args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	conds, errs := query.Parse(q)
	for _, e := range errs {
		fmt.Fprintln(os.Stderr, e)
	}
	if len(conds) == 0 {
		exitCode = 1
		return nil
	}

	searchCfg := search.Config{
		BeforeContext: beforeCtx,
		AfterContext:  afterCtx,
		Threads:       resolvedThreads(cfg),
		Walker: walker.Config{
			Hidden:       hiddenFlag,
			NoGitIgnore:  noIgnoreFlag,
			NoGitExclude: noExcludeFlag,
			MaxDepth:     maxDepthFlag,
			ExcludePath:  excludeFlag,
		},
	}
	if stdinFlag {
		searchCfg.Stdin = os.Stdin
	} else {
		searchCfg.Roots = []string{root}
	}

	result, err := search.Search(conds, searchCfg)
	auditlog.Event("search:run", "search").
		Root(root).
		Detail("query", q).
		Write(err)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	matcherIdx, lineFilterIdx := search.ConsumedIndices(conds)
	for i := range conds {
		if i == matcherIdx || i == lineFilterIdx {
			continue
		}
		result, err = model.Apply(result, conds[i], i+1)
		if err != nil {
			return fmt.Errorf("apply condition %d: %w", i+1, err)
		}
	}

	if dryRunFlag {
		return previewCommit(result)
	}
	if commitFlag {
		return runCommit(result)
	}

	colorEnabled := !noColorFlag && termstate.ColorEnabled()
	shape := shapeFromFlag(outputShape)
	text, hasMatch := render.Render(result, shape, colorEnabled)
	fmt.Fprint(Out(), text)
	if shape == render.ShapeQuiet && !hasMatch {
		exitCode = 1
	}
	return nil
}

func shapeFromFlag(s string) render.Shape {
	switch s {
	case "vimgrep":
		return render.ShapeVimgrep
	case "count":
		return render.ShapeCount
	case "count_matches":
		return render.ShapeCountMatches
	case "quiet":
		return render.ShapeQuiet
	default:
		return render.ShapeDefault
	}
}

func runCommit(result model.SearchResult) error {
	sink := make(events.Sink, 16)
	done := make(chan struct{})
	go func() {
		termstate.ConsumeCommit(sink, "committing", result.Stat().FileCount)
		close(done)
	}()

	res, err := commit.CommitAll(result, sink)
	<-done

	auditlog.Event("commit:all", "commit").
		Detail("committed_files", res.CommittedFiles).
		Detail("committed_lines", res.CommittedLines).
		Write(err)
	if err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	for _, e := range res.Errors {
		fmt.Fprintln(os.Stderr, e)
	}
	fmt.Fprintf(Out(), "committed %d line(s) across %d file(s)\n", res.CommittedLines, res.CommittedFiles)
	return nil
}

func previewCommit(result model.SearchResult) error {
	colorEnabled := !noColorFlag && termstate.ColorEnabled()
	for _, fr := range result.Files {
		if !fr.ContainsTransformed() {
			continue
		}
		d, err := commit.Preview(fr.FilePath, fr)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		fmt.Fprint(Out(), d.Format(colorEnabled))
	}
	return nil
}
