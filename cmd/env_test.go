// env_test.go provides a small CLI integration-test harness: build the igr
// binary once, run it against a scratch directory of plain files, and
// assert on its output. Grounded on the teacher's cmd/env_test.go
// buildBinary/testEnv shape, adapted from a document store's init-then-
// command flow to a scratch directory with no store to initialise.
package cmd

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// buildBinary compiles the igr binary once for all tests.
func buildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		tmpDir, err := os.MkdirTemp("", "igr-test-bin-*")
		if err != nil {
			buildErr = err
			return
		}

		binaryName := "igr"
		if os.PathSeparator == '\\' {
			binaryName = "igr.exe"
		}
		binaryPath = filepath.Join(tmpDir, binaryName)

		wd := mustGetwd()
		projectRoot := filepath.Dir(wd)

		cmd := exec.Command("go", "build", "-o", binaryPath, ".")
		cmd.Dir = projectRoot
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = &buildError{err: err, output: string(out)}
			return
		}
	})

	if buildErr != nil {
		t.Fatalf("failed to build binary: %v", buildErr)
	}
	return binaryPath
}

type buildError struct {
	err    error
	output string
}

func (e *buildError) Error() string {
	return e.err.Error() + "\n" + e.output
}

func mustGetwd() string {
	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return dir
}

// testEnv holds a scratch directory and the compiled binary under test.
type testEnv struct {
	t      *testing.T
	dir    string
	binary string
}

// newTestEnv creates an empty scratch directory to run igr against.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return &testEnv{t: t, dir: t.TempDir(), binary: buildBinary(t)}
}

// writeFile creates a file relative to the scratch directory's root.
func (e *testEnv) writeFile(name, content string) string {
	e.t.Helper()
	path := filepath.Join(e.dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		e.t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		e.t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// readFile reads a file relative to the scratch directory's root.
func (e *testEnv) readFile(name string) string {
	e.t.Helper()
	data, err := os.ReadFile(filepath.Join(e.dir, name))
	if err != nil {
		e.t.Fatalf("read %s: %v", name, err)
	}
	return string(data)
}

// run executes igr with the given args and returns combined output.
func (e *testEnv) run(args ...string) string {
	e.t.Helper()
	out, err := e.runErr(args...)
	if err != nil {
		e.t.Fatalf("igr %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runErr executes igr and returns combined output and any error.
func (e *testEnv) runErr(args ...string) (string, error) {
	e.t.Helper()
	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// runStdin executes igr with the given input piped to stdin.
func (e *testEnv) runStdin(stdin string, args ...string) string {
	e.t.Helper()
	out, err := e.runStdinErr(stdin, args...)
	if err != nil {
		e.t.Fatalf("igr %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runStdinErr executes igr with the given input piped to stdin and returns
// combined output and any error.
func (e *testEnv) runStdinErr(stdin string, args ...string) (string, error) {
	e.t.Helper()
	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	cmd.Stdin = strings.NewReader(stdin)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// contains asserts output contains the expected substring.
func (e *testEnv) contains(output, expected string) {
	e.t.Helper()
	assert.Contains(e.t, output, expected)
}

// equals asserts output equals the expected string (trimmed).
func (e *testEnv) equals(output, expected string) {
	e.t.Helper()
	assert.Equal(e.t, strings.TrimSpace(expected), strings.TrimSpace(output))
}
