package paths

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIconFileName(t *testing.T) {
	tests := []struct {
		size int
		want string
	}{
		{16, "icon16.png"},
		{48, "icon48.png"},
		{128, "icon128.png"},
		{1, "icon1.png"},
	}
	for _, tt := range tests {
		got := IconFileName(tt.size)
		if got != tt.want {
			t.Errorf("IconFileName(%d) = %q, want %q", tt.size, got, tt.want)
		}
	}
}

func TestAtomicWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "out.json")

	if err := AtomicWrite(path, []byte("hello")); err != nil {
		t.Fatalf("AtomicWrite() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("file contents = %q, want %q", data, "hello")
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file left behind at %s", path+".tmp")
	}
}

func TestAtomicWriteOverwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")

	if err := AtomicWrite(path, []byte("first")); err != nil {
		t.Fatalf("AtomicWrite() error: %v", err)
	}
	if err := AtomicWrite(path, []byte("second")); err != nil {
		t.Fatalf("AtomicWrite() error: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "second" {
		t.Errorf("file contents = %q, want %q", data, "second")
	}
}

func TestDataDirUsesAPPDATA(t *testing.T) {
	orig := os.Getenv("APPDATA")
	t.Cleanup(func() { os.Setenv("APPDATA", orig) })

	os.Setenv("APPDATA", "/fake/appdata")
	got := DataDir()
	want := filepath.Join("/fake/appdata", AppDirName)
	if got != want {
		t.Errorf("DataDir() = %q, want %q", got, want)
	}
}

func TestDataDirFallsBackWithoutAPPDATA(t *testing.T) {
	orig := os.Getenv("APPDATA")
	t.Cleanup(func() { os.Setenv("APPDATA", orig) })

	os.Unsetenv("APPDATA")
	got := DataDir()

	// Should use ~/.config/mkicon or temp dir — either way must end with "mkicon".
	if filepath.Base(got) != AppDirName {
		t.Errorf("DataDir() = %q, expected base dir %q", got, AppDirName)
	}
}
