package backup

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"propertybook/internal/blob"
	"propertybook/internal/core"
	"propertybook/internal/infra/blob/memory"
	"propertybook/internal/sample"
	"propertybook/pkg/domain"
)

func steppingClock(start time.Time) func() time.Time {
	next := start
	return func() time.Time {
		t := next
		next = next.Add(time.Minute)
		return t
	}
}

func newService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	store := memory.New()
	return NewService(store, WithClock(steppingClock(time.Date(2021, 8, 3, 12, 0, 0, 0, time.UTC)))), store
}

func TestBackupKeysAreChronological(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	first, err := svc.Backup(ctx, sample.Snapshot(), 1)
	if err != nil {
		t.Fatalf("backup: %v", err)
	}
	if !strings.HasPrefix(first.Key, "snapshots/20210803T120000.000000000Z-") || !strings.HasSuffix(first.Key, ".json") {
		t.Fatalf("unexpected key %s", first.Key)
	}
	if first.Metadata["revision"] != "1" {
		t.Fatalf("expected revision metadata, got %v", first.Metadata)
	}
	second, _ := svc.Backup(ctx, domain.Snapshot{}, 2)
	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].Key != second.Key || list[1].Key != first.Key {
		t.Fatalf("expected newest first, got %+v", list)
	}
}

func TestRestoreLatestReplacesModelState(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	if _, err := svc.Backup(ctx, domain.Snapshot{}, 1); err != nil {
		t.Fatalf("backup: %v", err)
	}
	want := sample.Snapshot()
	if _, err := svc.Backup(ctx, want, 2); err != nil {
		t.Fatalf("backup: %v", err)
	}
	m := core.NewModel()
	key, _, err := svc.Restore(ctx, m, "")
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if !strings.Contains(key, "T120100") {
		t.Fatalf("expected newest backup, got %s", key)
	}
	if len(m.Properties()) != len(want.Properties) || len(m.Meetings()) != len(want.Meetings) {
		t.Fatalf("model not restored: %+v", m.ExportState())
	}
}

func TestRestoreSpecificKey(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	older, _ := svc.Backup(ctx, sample.Snapshot(), 1)
	svc.Backup(ctx, domain.Snapshot{}, 2)
	m := core.NewModel()
	if _, _, err := svc.Restore(ctx, m, older.Key); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if len(m.Persons()) == 0 {
		t.Fatalf("expected sample persons after restoring %s", older.Key)
	}
}

func TestRestoreWithoutBackups(t *testing.T) {
	svc, _ := newService(t)
	if _, _, err := svc.Restore(context.Background(), core.NewModel(), ""); !errors.Is(err, ErrNoBackups) {
		t.Fatalf("expected ErrNoBackups, got %v", err)
	}
}

func TestLoadRejectsCorruptBackup(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()
	if _, err := store.Put(ctx, Prefix+"bad.json", strings.NewReader("{"), blobOptions()); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := svc.Load(ctx, Prefix+"bad.json"); err == nil {
		t.Fatalf("expected decode error")
	}
	if _, err := svc.Load(ctx, Prefix+"absent.json"); err == nil {
		t.Fatalf("expected missing key error")
	}
}

func TestPruneKeepsNewest(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	var newest string
	for i := 0; i < 4; i++ {
		info, _ := svc.Backup(ctx, domain.Snapshot{}, uint64(i))
		newest = info.Key
	}
	removed, err := svc.Prune(ctx, 1)
	if err != nil || removed != 3 {
		t.Fatalf("prune: removed %d, err %v", removed, err)
	}
	list, _ := svc.List(ctx)
	if len(list) != 1 || list[0].Key != newest {
		t.Fatalf("expected only newest backup left, got %+v", list)
	}
	if _, err := svc.Prune(ctx, -1); err == nil {
		t.Fatalf("expected negative keep rejection")
	}
}

func blobOptions() blob.PutOptions { return blob.PutOptions{ContentType: "application/json"} }
