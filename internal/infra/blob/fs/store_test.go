package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"propertybook/internal/blob/blobtest"
	"propertybook/internal/blob/core"
)

func TestFilesystemStoreContract(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	blobtest.Run(t, s)
}

func TestFilesystemStoreWritesSidecar(t *testing.T) {
	root := t.TempDir()
	s, _ := New(root)
	info, err := s.Put(context.Background(), "snapshots/x.json", strings.NewReader("{}"), core.PutOptions{ContentType: "application/json"})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "snapshots", "x.json.meta")); err != nil {
		t.Fatalf("expected meta sidecar: %v", err)
	}
	if len(info.ETag) != 64 {
		t.Fatalf("expected sha256 etag, got %q", info.ETag)
	}
	entries, _ := os.ReadDir(filepath.Join(root, "snapshots"))
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".tmp-") {
			t.Fatalf("temp file left behind: %s", e.Name())
		}
	}
}

func TestFilesystemStoreRejectsUnsafeKeys(t *testing.T) {
	s, _ := New(t.TempDir())
	ctx := context.Background()
	for _, key := range []string{"", "../escape", "/abs", "a/../../b", "x.meta"} {
		if _, err := s.Put(ctx, key, strings.NewReader("x"), core.PutOptions{}); err == nil {
			t.Fatalf("expected %q to be rejected", key)
		}
	}
}

func TestFilesystemStoreCorruptMeta(t *testing.T) {
	root := t.TempDir()
	s, _ := New(root)
	ctx := context.Background()
	if _, err := s.Put(ctx, "a.json", strings.NewReader("{}"), core.PutOptions{}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "a.json.meta"), []byte("{"), 0o644); err != nil {
		t.Fatalf("corrupt: %v", err)
	}
	if _, err := s.Head(ctx, "a.json"); err == nil {
		t.Fatalf("expected decode error")
	}
	if _, err := s.List(ctx, ""); err == nil {
		t.Fatalf("expected list to surface decode error")
	}
}
