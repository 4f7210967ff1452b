package diff

import (
	"strings"
	"testing"
)

func TestComputeShowsInsertAndDelete(t *testing.T) {
	r := Compute("price=9\n", "price=12\n", "a.txt", "a.txt (after commit)")
	if !strings.Contains(r.Diff, "+") {
		t.Errorf("expected an insertion marker in diff, got %q", r.Diff)
	}
	if !strings.Contains(r.Diff, "-") {
		t.Errorf("expected a deletion marker in diff, got %q", r.Diff)
	}
}

func TestComputeNoChangeIsAllContext(t *testing.T) {
	r := Compute("same\n", "same\n", "a.txt", "a.txt")
	if strings.Contains(r.Diff, "-") || strings.Contains(r.Diff, "+") {
		t.Errorf("expected no +/- markers for identical content, got %q", r.Diff)
	}
}

func TestFormatIncludesHeader(t *testing.T) {
	r := Compute("old\n", "new\n", "a.txt", "a.txt (after commit)")
	out := r.Format(false)
	if !strings.HasPrefix(out, "--- a.txt\n+++ a.txt (after commit)\n") {
		t.Errorf("unexpected header in %q", out)
	}
}

func TestColourise(t *testing.T) {
	in := "- removed\n+ added\n  unchanged\n"
	out := Colourise(in)
	if !strings.Contains(out, "\033[31m- removed\033[0m") {
		t.Errorf("expected red-coloured deletion, got %q", out)
	}
	if !strings.Contains(out, "\033[32m+ added\033[0m") {
		t.Errorf("expected green-coloured insertion, got %q", out)
	}
}
