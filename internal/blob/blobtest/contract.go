// Package blobtest holds the behaviour every blob store must share.
package blobtest

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"propertybook/internal/blob/core"
)

// Run exercises put, get, head, list and delete against store, which must
// start empty.
func Run(t *testing.T, store core.Store) {
	t.Helper()
	ctx := context.Background()
	payload := []byte(`{"person":[]}`)

	info, err := store.Put(ctx, "snapshots/a.json", bytes.NewReader(payload), core.PutOptions{
		ContentType: "application/json",
		Metadata:    map[string]string{"revision": "3"},
	})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.Key != "snapshots/a.json" || info.Size != int64(len(payload)) {
		t.Fatalf("unexpected put info %+v", info)
	}
	if _, err := store.Put(ctx, "snapshots/a.json", strings.NewReader("x"), core.PutOptions{}); !errors.Is(err, core.ErrExists) {
		t.Fatalf("expected ErrExists on overwrite, got %v", err)
	}

	got, rc, err := store.Get(ctx, "snapshots/a.json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(rc)
	rc.Close()
	if !bytes.Equal(body, payload) {
		t.Fatalf("body mismatch: %q", body)
	}
	if got.ContentType != "application/json" || got.Metadata["revision"] != "3" {
		t.Fatalf("metadata lost: %+v", got)
	}

	head, err := store.Head(ctx, "snapshots/a.json")
	if err != nil || head.Size != int64(len(payload)) {
		t.Fatalf("head: %+v %v", head, err)
	}
	if _, err := store.Head(ctx, "snapshots/missing.json"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound from head, got %v", err)
	}
	if _, _, err := store.Get(ctx, "snapshots/missing.json"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound from get, got %v", err)
	}

	for _, key := range []string{"snapshots/c.json", "snapshots/b.json", "other/z.json"} {
		if _, err := store.Put(ctx, key, strings.NewReader("{}"), core.PutOptions{}); err != nil {
			t.Fatalf("put %s: %v", key, err)
		}
	}
	list, err := store.List(ctx, "snapshots/")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var keys []string
	for _, it := range list {
		keys = append(keys, it.Key)
	}
	if strings.Join(keys, ",") != "snapshots/a.json,snapshots/b.json,snapshots/c.json" {
		t.Fatalf("unexpected listing %v", keys)
	}

	removed, err := store.Delete(ctx, "snapshots/a.json")
	if err != nil || !removed {
		t.Fatalf("delete: %v %v", removed, err)
	}
	removed, err = store.Delete(ctx, "snapshots/a.json")
	if err != nil || removed {
		t.Fatalf("second delete should report absence: %v %v", removed, err)
	}
}
