package eventlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "mkicon.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore() error: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStoreLogAndEntries(t *testing.T) {
	s := newTestSQLiteStore(t)

	now := time.Now().Truncate(time.Second)
	for _, e := range []Event{
		{Time: now.Add(-time.Minute), Size: 16, Path: "icons/icon16.png", Glyph: "한"},
		{Time: now, Size: 128, Path: "icons/icon128.png", Glyph: "한"},
	} {
		if err := s.LogCreated(e); err != nil {
			t.Fatalf("LogCreated() error: %v", err)
		}
	}

	got, err := s.Entries(0)
	if err != nil {
		t.Fatalf("Entries() error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Entries() returned %d events, want 2", len(got))
	}
	if got[0].Size != 16 || got[1].Size != 128 {
		t.Errorf("entries out of order: %+v", got)
	}
	if got[1].Glyph != "한" || got[1].Path != "icons/icon128.png" {
		t.Errorf("entry = %+v", got[1])
	}
}

func TestSQLiteStoreZeroTimeDefaultsToNow(t *testing.T) {
	s := newTestSQLiteStore(t)
	if err := s.LogCreated(Event{Size: 16, Path: "x.png"}); err != nil {
		t.Fatal(err)
	}
	got, err := s.Entries(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("Entries() returned %d events, want 1", len(got))
	}
	if time.Since(got[0].Time) > time.Minute {
		t.Errorf("timestamp %v not close to now", got[0].Time)
	}
}

func TestSQLiteStoreEntriesDayFilter(t *testing.T) {
	s := newTestSQLiteStore(t)

	for _, e := range []Event{
		{Time: time.Now().AddDate(0, 0, -10), Size: 16, Path: "old.png"},
		{Time: time.Now(), Size: 48, Path: "new.png"},
	} {
		if err := s.LogCreated(e); err != nil {
			t.Fatal(err)
		}
	}

	got, err := s.Entries(7)
	if err != nil {
		t.Fatalf("Entries(7) error: %v", err)
	}
	if len(got) != 1 || got[0].Path != "new.png" {
		t.Errorf("Entries(7) = %+v, want only the recent event", got)
	}
}

func TestSQLiteStoreClean(t *testing.T) {
	s := newTestSQLiteStore(t)

	for _, e := range []Event{
		{Time: time.Now().AddDate(0, 0, -10), Size: 16, Path: "old1.png"},
		{Time: time.Now().AddDate(0, 0, -8), Size: 16, Path: "old2.png"},
		{Time: time.Now(), Size: 48, Path: "new.png"},
	} {
		if err := s.LogCreated(e); err != nil {
			t.Fatal(err)
		}
	}

	removed, err := s.Clean(7)
	if err != nil {
		t.Fatalf("Clean() error: %v", err)
	}
	if removed != 2 {
		t.Errorf("Clean() removed %d, want 2", removed)
	}
}

func TestSQLiteStoreClear(t *testing.T) {
	s := newTestSQLiteStore(t)
	if err := s.LogCreated(Event{Time: time.Now(), Size: 16, Path: "x.png"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	got, err := s.Entries(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("Entries() after Clear() = %+v, want none", got)
	}
}

func TestSQLiteStoreMigratesFlatLog(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "mkicon.log")

	ts := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)
	lines := []string{
		FormatLine(Event{Time: ts, Size: 16, Path: "icons/icon16.png", Glyph: "한"}),
		FormatLine(Event{Time: ts, Size: 48, Path: "icons/icon48.png", Glyph: "한"}),
		"garbage line",
	}
	if err := os.WriteFile(logPath, []byte(strings.Join(lines, "\n")+"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := NewSQLiteStore(filepath.Join(dir, "mkicon.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore() error: %v", err)
	}
	defer s.Close()

	got, err := s.Entries(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("migrated %d entries, want 2", len(got))
	}
	if got[0].Path != "icons/icon16.png" || got[1].Path != "icons/icon48.png" {
		t.Errorf("migrated entries = %+v", got)
	}

	if _, err := os.Stat(logPath); !os.IsNotExist(err) {
		t.Error("flat log not renamed after migration")
	}
	if _, err := os.Stat(logPath + ".migrated"); err != nil {
		t.Errorf("renamed log missing: %v", err)
	}
}
