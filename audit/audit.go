// Package audit persists a record of every tool invocation to a local
// SQLite database.
//
// Tool calls change wallet and mining state on the machine running Tari
// Universe, so a durable trail of who asked for what, when, and with which
// outcome is kept outside the server process.
package audit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/tari-tools/universe-mcp-go/internal/config"
)

// Entry is one persisted tool invocation.
type Entry struct {
	ID         string
	Timestamp  time.Time
	Tool       string
	Arguments  string
	Result     string
	Error      string
	Success    bool
	DurationMS int64
}

// Recorder writes tool invocation records to SQLite. It implements the
// sink the client records through.
type Recorder struct {
	db   *sql.DB
	path string
}

var _ config.AuditSink = (*Recorder)(nil)

// Open initializes the audit database at path and applies the schema.
func Open(ctx context.Context, path string) (*Recorder, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	r := &Recorder{db: db, path: path}
	if err := r.init(ctx); err != nil {
		_ = db.Close()

		return nil, err
	}

	return r, nil
}

// Path returns the underlying SQLite file path.
func (r *Recorder) Path() string {
	return r.path
}

// Close releases database resources.
func (r *Recorder) Close() error {
	if r == nil || r.db == nil {
		return nil
	}

	return r.db.Close()
}

func (r *Recorder) init(ctx context.Context) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
		"PRAGMA busy_timeout = 5000;",
	}
	for _, stmt := range pragmas {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply pragma %q: %w", stmt, err)
		}
	}

	ddl := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`INSERT OR IGNORE INTO meta(key,value) VALUES ('schemaVersion','1');`,
		`CREATE TABLE IF NOT EXISTS tool_calls (
			id TEXT PRIMARY KEY,
			ts INTEGER NOT NULL,
			tool TEXT NOT NULL,
			arguments TEXT NOT NULL,
			result TEXT,
			error TEXT,
			success INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_tool_calls_ts ON tool_calls(ts);`,
		`CREATE INDEX IF NOT EXISTS idx_tool_calls_tool ON tool_calls(tool);`,
	}
	for _, stmt := range ddl {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}

	return nil
}

// RecordToolCall persists one completed invocation.
func (r *Recorder) RecordToolCall(ctx context.Context, rec config.ToolCallRecord) error {
	if r == nil || r.db == nil {
		return errors.New("nil recorder")
	}

	success := 0
	if rec.RemoteErr == "" {
		success = 1
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tool_calls(id, ts, tool, arguments, result, error, success, duration_ms)
		VALUES(?,?,?,?,?,?,?,?)`,
		ulid.Make().String(),
		time.Now().UnixMilli(),
		rec.Tool,
		string(rec.Arguments),
		string(rec.Result),
		rec.RemoteErr,
		success,
		rec.Duration.Milliseconds(),
	)

	return err
}

// Recent returns the most recent entries, newest first. A limit of zero or
// less returns everything.
func (r *Recorder) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, ts, tool, arguments, result, error, success, duration_ms
		FROM tool_calls
		ORDER BY ts DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry

	for rows.Next() {
		var (
			e       Entry
			ts      int64
			result  sql.NullString
			errText sql.NullString
			success int
		)
		if err := rows.Scan(&e.ID, &ts, &e.Tool, &e.Arguments, &result, &errText, &success, &e.DurationMS); err != nil {
			return nil, err
		}

		e.Timestamp = time.UnixMilli(ts)
		e.Result = result.String
		e.Error = errText.String
		e.Success = success == 1

		entries = append(entries, e)
	}

	return entries, rows.Err()
}
