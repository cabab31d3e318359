package eventlog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hanicon/mkicon/internal/paths"
)

// FileStore implements Store using a flat log file.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore that reads and writes the given log
// file.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// openLog opens (or creates) the log file for appending, creating the
// parent directory if needed.
func (f *FileStore) openLog() (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(f.path), paths.DirPerm); err != nil {
		return nil, err
	}
	return os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, paths.FilePerm)
}

func (f *FileStore) LogCreated(e Event) error {
	file, err := f.openLog()
	if err != nil {
		return err
	}
	defer file.Close()
	_, err = fmt.Fprintln(file, FormatLine(e))
	return err
}

func (f *FileStore) Entries(days int) ([]Event, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	entries := ParseEntries(string(data))
	if days <= 0 {
		return entries, nil
	}
	cutoff := DayCutoff(days)
	kept := entries[:0]
	for _, e := range entries {
		if !e.Time.Before(cutoff) {
			kept = append(kept, e)
		}
	}
	return kept, nil
}

func (f *FileStore) Clean(days int) (int, error) {
	all, err := f.Entries(0)
	if err != nil {
		return 0, err
	}
	if len(all) == 0 {
		return 0, nil
	}
	cutoff := DayCutoff(days)
	var b strings.Builder
	kept := 0
	for _, e := range all {
		if e.Time.Before(cutoff) {
			continue
		}
		b.WriteString(FormatLine(e))
		b.WriteByte('\n')
		kept++
	}
	if err := paths.AtomicWrite(f.path, []byte(b.String())); err != nil {
		return 0, err
	}
	return len(all) - kept, nil
}

func (f *FileStore) Clear() error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) Close() error {
	return nil
}

var _ Store = (*FileStore)(nil)
