package upload

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestSaveUsesTimestampNameWithOriginalExtension(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	fixed := time.Date(2025, time.March, 14, 9, 26, 53, 0, time.UTC)
	store.now = func() time.Time { return fixed }

	saved, err := store.Save(strings.NewReader("png-bytes"), "my photo.PNG")
	if err != nil {
		t.Fatalf("save returned error: %v", err)
	}
	if saved.OriginalName != "my photo.PNG" {
		t.Fatalf("original name = %q", saved.OriginalName)
	}
	wantName := "1741944813000.PNG"
	if filepath.Base(saved.Path) != wantName {
		t.Fatalf("stored name = %q, want %q", filepath.Base(saved.Path), wantName)
	}

	data, err := os.ReadFile(saved.Path)
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Fatalf("stored content = %q", data)
	}
}

func TestSaveWithoutExtension(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	saved, err := store.Save(strings.NewReader("data"), "noext")
	if err != nil {
		t.Fatalf("save returned error: %v", err)
	}
	if ext := filepath.Ext(saved.Path); ext != "" {
		t.Fatalf("unexpected extension %q", ext)
	}
}

func TestRemoveDeletesStoredFile(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	saved, err := store.Save(strings.NewReader("data"), "a.png")
	if err != nil {
		t.Fatalf("save returned error: %v", err)
	}
	if err := store.Remove(saved.Path); err != nil {
		t.Fatalf("remove returned error: %v", err)
	}
	if _, err := os.Stat(saved.Path); !os.IsNotExist(err) {
		t.Fatalf("file still present: %v", err)
	}
}
