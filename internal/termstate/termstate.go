// Package termstate provides TTY detection and CLI progress indicators for
// the commit engine's Event sink consumer. Output goes to stderr to keep
// stdout clean for piping, and TTY detection ensures proper formatting in
// both interactive and scripted (headless) usage. Adapted from llmd's
// internal/progress package, generalized from a fixed stderr writer to any
// writer and extended with color-enablement detection (spec §6's NO_COLOR).
package termstate

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/jpl-au/igr/internal/events"
)

// minItems is the minimum number of items before showing progress. For
// small operations, progress adds noise without benefit.
const minItems = 5

// IsTTY reports whether f is attached to an interactive terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// ColorEnabled reports whether ANSI color output should be used: the
// NO_COLOR environment variable (spec §6) disables it unconditionally;
// otherwise it follows whether stdout is a terminal.
func ColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return IsTTY(os.Stdout)
}

// Progress tracks and displays commit/search progress.
type Progress struct {
	w       io.Writer
	label   string
	total   int
	current int
	isTTY   bool
}

// New creates a progress reporter that writes to stderr. If total is less
// than minItems, progress updates are suppressed.
func New(label string, total int) *Progress {
	return &Progress{
		w:     os.Stderr,
		label: label,
		total: total,
		isTTY: IsTTY(os.Stderr),
	}
}

// Increment advances the progress counter by one.
func (p *Progress) Increment() {
	p.current++
}

// Print writes the current progress to stderr. On TTY, it uses carriage
// return to update in place. For non-TTY or small totals, this is a no-op.
func (p *Progress) Print() {
	if p.total < minItems {
		return
	}

	pct := 0
	if p.total > 0 {
		pct = (p.current * 100) / p.total
	}

	if p.isTTY {
		fmt.Fprintf(p.w, "\r%s... %d/%d (%d%%)", p.label, p.current, p.total, pct)
	}
}

// Done clears the progress line (on TTY) to make way for final output.
func (p *Progress) Done() {
	if p.total < minItems {
		return
	}

	if p.isTTY {
		fmt.Fprintf(p.w, "\r%s\r", "                                        ")
	}
}

// Spinner provides visual feedback for indeterminate operations, showing
// users that work is in progress even when completion time is unknown.
type Spinner struct {
	w       io.Writer
	label   string
	frame   int
	isTTY   bool
	frames  []string
	running bool
}

// NewSpinner creates a spinner that writes to stderr.
func NewSpinner(label string) *Spinner {
	return &Spinner{
		w:      os.Stderr,
		label:  label,
		isTTY:  IsTTY(os.Stderr),
		frames: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
	}
}

// Start displays the spinner.
func (s *Spinner) Start() {
	if !s.isTTY {
		return
	}
	s.running = true
	fmt.Fprintf(s.w, "%s %s...", s.frames[0], s.label)
}

// Tick advances the spinner animation by one frame.
func (s *Spinner) Tick() {
	if !s.isTTY || !s.running {
		return
	}
	s.frame = (s.frame + 1) % len(s.frames)
	fmt.Fprintf(s.w, "\r%s %s...", s.frames[s.frame], s.label)
}

// Stop clears the spinner line.
func (s *Spinner) Stop() {
	if !s.isTTY || !s.running {
		return
	}
	s.running = false
	fmt.Fprintf(s.w, "\r%s\r", "                                        ")
}

// ConsumeCommit drains a commit engine's events.Sink, driving a Progress
// bar until ReplaceFinished arrives (or the sink is closed). label/total
// describe the commit operation (e.g. "committing", file count).
func ConsumeCommit(sink events.Sink, label string, total int) {
	p := New(label, total)
	for e := range sink {
		switch e.Kind {
		case events.Progress:
			p.Increment()
			p.Print()
		case events.ReplaceFinished:
			p.Done()
			return
		case events.Error:
			// surfaced by the caller via Result.Errors; progress keeps going
		}
	}
	p.Done()
}
