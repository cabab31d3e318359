// Package eventlog records which icons a run created. History lives in
// the user data directory, in a SQLite database when one can be opened
// and a flat log file otherwise. Logging is best-effort from the
// caller's point of view: a failed write never fails a run.
package eventlog

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hanicon/mkicon/internal/paths"
)

// Store abstracts creation-history storage.
type Store interface {
	// LogCreated records one written icon.
	LogCreated(e Event) error

	// Entries returns recorded icons from the last days days, oldest
	// first. days = 0 returns everything.
	Entries(days int) ([]Event, error)

	// Clean removes entries older than days days and returns how many
	// were removed.
	Clean(days int) (int, error)

	// Clear deletes all recorded history.
	Clear() error

	// Path returns the backing file location.
	Path() string

	Close() error
}

// Event is one recorded icon creation.
type Event struct {
	Time  time.Time
	Size  int
	Path  string
	Glyph string // empty when the icon came from a source image
}

// Open returns the preferred store: SQLite in the user data dir,
// falling back to the flat log file if the database cannot be opened.
func Open() Store {
	dbPath := filepath.Join(paths.DataDir(), paths.DBFileName)
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "eventlog: %v (falling back to flat log)\n", err)
		return NewFileStore(filepath.Join(paths.DataDir(), paths.LogFileName))
	}
	return s
}

// DayCutoff returns the timestamp days days before now.
func DayCutoff(days int) time.Time {
	return time.Now().AddDate(0, 0, -days)
}
