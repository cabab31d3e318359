package eventlog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hanicon/mkicon/internal/paths"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens (or creates) a SQLite database at path, creates
// the schema, and performs a one-time migration from mkicon.log if one
// exists in the same directory.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), paths.DirPerm); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Set PRAGMAs before any DDL.
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite pragma: %w", err)
		}
	}

	ddl := `
CREATE TABLE IF NOT EXISTS icons (
    id        INTEGER PRIMARY KEY AUTOINCREMENT,
    timestamp TEXT    NOT NULL,
    size      INTEGER NOT NULL,
    path      TEXT    NOT NULL,
    glyph     TEXT    NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_icons_timestamp ON icons(timestamp DESC);
`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}

	s := &SQLiteStore{db: db, path: path}

	// One-time migration from the flat log.
	logPath := filepath.Join(filepath.Dir(path), paths.LogFileName)
	if _, err := os.Stat(logPath); err == nil {
		if err := s.migrateFromFile(logPath); err != nil {
			fmt.Fprintf(os.Stderr, "eventlog: migration: %v\n", err)
		}
	}

	return s, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) LogCreated(e Event) error {
	t := e.Time
	if t.IsZero() {
		t = time.Now()
	}
	_, err := s.db.Exec(
		`INSERT INTO icons (timestamp, size, path, glyph) VALUES (?, ?, ?, ?)`,
		t.Format(time.RFC3339), e.Size, e.Path, e.Glyph,
	)
	return err
}

func (s *SQLiteStore) Entries(days int) ([]Event, error) {
	query := `SELECT timestamp, size, path, glyph FROM icons`
	var args []any
	if days > 0 {
		query += ` WHERE timestamp >= ?`
		args = append(args, DayCutoff(days).Format(time.RFC3339))
	}
	query += ` ORDER BY id`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Event
	for rows.Next() {
		var tsStr, path, glyph string
		var size int
		if err := rows.Scan(&tsStr, &size, &path, &glyph); err != nil {
			return nil, err
		}
		ts, err := time.Parse(time.RFC3339, tsStr)
		if err != nil {
			continue
		}
		entries = append(entries, Event{Time: ts, Size: size, Path: path, Glyph: glyph})
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) Clean(days int) (int, error) {
	res, err := s.db.Exec(
		`DELETE FROM icons WHERE timestamp < ?`,
		DayCutoff(days).Format(time.RFC3339),
	)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (s *SQLiteStore) Clear() error {
	_, err := s.db.Exec(`DELETE FROM icons`)
	return err
}

func (s *SQLiteStore) Path() string {
	return s.path
}

// migrateFromFile imports flat-log entries into the database, then
// renames the log so the migration runs once.
func (s *SQLiteStore) migrateFromFile(logPath string) error {
	data, err := os.ReadFile(logPath)
	if err != nil {
		return err
	}
	content := strings.TrimRight(string(data), "\n\r ")
	if content == "" {
		return os.Rename(logPath, logPath+".migrated")
	}

	entries := ParseEntries(content)

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, e := range entries {
		if _, err := tx.Exec(
			`INSERT INTO icons (timestamp, size, path, glyph) VALUES (?, ?, ?, ?)`,
			e.Time.Format(time.RFC3339), e.Size, e.Path, e.Glyph,
		); err != nil {
			return fmt.Errorf("migrate entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "eventlog: migrated %d entries from %s\n", len(entries), paths.LogFileName)
	return os.Rename(logPath, logPath+".migrated")
}

var _ Store = (*SQLiteStore)(nil)
