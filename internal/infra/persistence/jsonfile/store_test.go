package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"propertybook/internal/sample"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "pb.json")
	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	empty, err := store.Load(ctx)
	if err != nil || !empty.Empty() {
		t.Fatalf("missing file must load empty, got %+v %v", empty, err)
	}
	snap := sample.Snapshot()
	snap.Preferences = map[string]string{"theme": "dark"}
	if err := store.Save(ctx, snap); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Meetings) != 3 || got.Meetings[0] != snap.Meetings[0] || got.Preferences["theme"] != "dark" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Fatalf("expected temp files cleaned up, got %d entries", len(entries))
	}
}

func TestLoadRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pb.json")
	os.WriteFile(path, []byte("{"), 0o600)
	store, _ := NewStore(path)
	if _, err := store.Load(context.Background()); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestNewStoreRequiresPath(t *testing.T) {
	if _, err := NewStore(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
