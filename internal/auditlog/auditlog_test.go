package auditlog

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withTempDB(t *testing.T) {
	t.Helper()
	tmpDir := t.TempDir()
	orig := dbPathFunc
	dbPathFunc = func() string { return filepath.Join(tmpDir, "log", "test.db") }
	t.Cleanup(func() { dbPathFunc = orig; Close() })
}

func TestOpenAndClose(t *testing.T) {
	withTempDB(t)

	require.NoError(t, Open())
	defer Close()
	assert.FileExists(t, DBPath())
}

func TestOpenIsIdempotent(t *testing.T) {
	withTempDB(t)

	require.NoError(t, Open())
	require.NoError(t, Open())
	Close()
}

func TestLogEntry(t *testing.T) {
	withTempDB(t)

	require.NoError(t, Open())
	defer Close()

	Log(Entry{Source: "search:run", Action: "search", Root: "/tmp/proj", Success: true})

	db, err := sql.Open("sqlite", DBPath())
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM log").Scan(&count))
	assert.Equal(t, 1, count)

	var source, action, root string
	var success int
	require.NoError(t, db.QueryRow(
		"SELECT source, action, root, success FROM log WHERE id = 1",
	).Scan(&source, &action, &root, &success))
	assert.Equal(t, "search:run", source)
	assert.Equal(t, "search", action)
	assert.Equal(t, "/tmp/proj", root)
	assert.Equal(t, 1, success)
}

func TestLogErrorEntry(t *testing.T) {
	withTempDB(t)

	require.NoError(t, Open())
	defer Close()

	Log(Entry{Source: "commit:all", Action: "commit", Success: false, Error: "permission denied"})

	db, err := sql.Open("sqlite", DBPath())
	require.NoError(t, err)
	defer db.Close()

	var success int
	var errMsg string
	require.NoError(t, db.QueryRow(
		"SELECT success, error FROM log ORDER BY id DESC LIMIT 1",
	).Scan(&success, &errMsg))
	assert.Equal(t, 0, success)
	assert.Equal(t, "permission denied", errMsg)
}

func TestLogWithDetail(t *testing.T) {
	withTempDB(t)

	require.NoError(t, Open())
	defer Close()

	Log(Entry{
		Source:  "search:run",
		Action:  "search",
		Success: true,
		Detail:  map[string]any{"query": "TODO", "match_count": 42},
	})

	db, err := sql.Open("sqlite", DBPath())
	require.NoError(t, err)
	defer db.Close()

	var detail string
	require.NoError(t, db.QueryRow("SELECT detail FROM log ORDER BY id DESC LIMIT 1").Scan(&detail))
	assert.Contains(t, detail, "TODO")
	assert.Contains(t, detail, "42")
}

func TestLogWithoutLoggerIsNoop(t *testing.T) {
	withTempDB(t)
	Close() // ensure global is nil

	Log(Entry{Source: "test:cmd", Action: "test", Success: true})
}

func TestDBPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	expected := filepath.Join(home, ".igr", "log", "igr-log.db")

	orig := dbPathFunc
	dbPathFunc = defaultDBPath
	defer func() { dbPathFunc = orig }()

	assert.Equal(t, expected, DBPath())
}

func TestBuilderFluentAPISuccess(t *testing.T) {
	withTempDB(t)

	require.NoError(t, Open())
	defer Close()

	Event("apply:fold", "apply").
		Root("/tmp/proj").
		Detail("condition_count", 3).
		Write(nil)

	db, err := sql.Open("sqlite", DBPath())
	require.NoError(t, err)
	defer db.Close()

	var source, action, root string
	var success int
	require.NoError(t, db.QueryRow(
		"SELECT source, action, root, success FROM log ORDER BY id DESC LIMIT 1",
	).Scan(&source, &action, &root, &success))
	assert.Equal(t, "apply:fold", source)
	assert.Equal(t, "apply", action)
	assert.Equal(t, "/tmp/proj", root)
	assert.Equal(t, 1, success)
}

func TestBuilderFluentAPIWithError(t *testing.T) {
	withTempDB(t)

	require.NoError(t, Open())
	defer Close()

	testErr := sql.ErrNoRows
	Event("commit:line", "commit").Write(testErr)

	db, err := sql.Open("sqlite", DBPath())
	require.NoError(t, err)
	defer db.Close()

	var success int
	var errMsg string
	require.NoError(t, db.QueryRow(
		"SELECT success, error FROM log ORDER BY id DESC LIMIT 1",
	).Scan(&success, &errMsg))
	assert.Equal(t, 0, success)
	assert.Equal(t, testErr.Error(), errMsg)
}
