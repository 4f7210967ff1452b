// Package auditlog provides centralised audit logging for igr operations.
// Entries are stored in ~/.igr/log/igr-log.db and record that a query ran,
// over what root, with what condition/match/file count, and whether a
// commit succeeded — never file content or match text. This keeps the
// audit trail compatible with "no persistent index": the database indexes
// operations, not text.
//
// # Fluent API
//
// Use the fluent builder API to construct and write log entries:
//
//	auditlog.Event("search:run", "search").
//		Root(root).
//		Detail("query", query).
//		Detail("condition_count", len(conds)).
//		Write(err)
//
//	auditlog.Event("commit:all", "commit").
//		Detail("committed_files", res.CommittedFiles).
//		Detail("committed_lines", res.CommittedLines).
//		Write(err)
//
// The source parameter follows the format "{component}:{operation}", e.g.
// "search:run", "apply:fold", "commit:all", "commit:line", "mcp:igr_search".
package auditlog

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry represents a single audit log entry.
type Entry struct {
	Source string // e.g. "search:run", "commit:all", "mcp:igr_search"
	Action string // verb: search, apply, commit, parse

	Root string // search root this operation ran against, if any

	Start int64 // unix timestamp when Event() called
	End   int64 // unix timestamp when Write() called

	Success bool
	Error   string
	Detail  map[string]any // query, condition_count, match_count, file_count, threads, committed_files, committed_lines
}

// Builder constructs a log entry using a fluent API. Create with [Event],
// chain methods to set fields, then call [Builder.Write] to write the entry.
type Builder struct {
	entry Entry
}

// Event creates a new log entry builder for an operation.
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().Unix(),
		},
	}
}

// Root sets the search root this operation ran against.
func (b *Builder) Root(root string) *Builder {
	b.entry.Root = root
	return b
}

// Detail adds a key-value pair to the log entry's detail map. Can be called
// multiple times to add multiple details.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write writes the log entry to the database, deriving success/failure
// from err. If err is nil, the entry is logged as successful.
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().Unix()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db}
	return nil
}

// Log writes an entry. Safe to call if the logger isn't initialised (no-op),
// since audit logging is best-effort and must never block a search/commit.
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
