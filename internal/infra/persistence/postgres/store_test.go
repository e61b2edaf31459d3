package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"propertybook/internal/infra/persistence/postgres/testutil"
	"propertybook/internal/sample"
)

func openStub(t *testing.T) (*Store, *testutil.StubConn) {
	t.Helper()
	db, conn := testutil.NewStubDB()
	restore := OverrideSQLOpen(func(driverName, dsn string) (*sql.DB, error) {
		if driverName != "pgx" || dsn != defaultDSN {
			t.Fatalf("unexpected open %s %s", driverName, dsn)
		}
		return db, nil
	})
	t.Cleanup(restore)
	store, err := NewStore(context.Background(), "")
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store, conn
}

func TestNewStoreCreatesStateTable(t *testing.T) {
	_, conn := openStub(t)
	if len(conn.Execs) == 0 || !strings.Contains(conn.Execs[0], "CREATE TABLE IF NOT EXISTS state") {
		t.Fatalf("expected state table ddl, got %v", conn.Execs)
	}
}

func TestSaveAndLoadSnapshot(t *testing.T) {
	ctx := context.Background()
	store, conn := openStub(t)
	snap := sample.Snapshot()
	if err := store.Save(ctx, snap); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Save(ctx, snap); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	if got := len(conn.Tables["state"]); got != 7 {
		t.Fatalf("expected upserts to keep one row per bucket, got %d", got)
	}
	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded.Sellers) != 3 || !loaded.Sellers[0].Equal(snap.Sellers[0]) {
		t.Fatalf("unexpected sellers %+v", loaded.Sellers)
	}
}

func TestSaveRollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	store, conn := openStub(t)
	conn.FailCommit = true
	if err := store.Save(ctx, sample.Snapshot()); err == nil {
		t.Fatalf("expected commit failure")
	}
	if len(conn.Tables["state"]) != 0 {
		t.Fatalf("failed save must not leave rows")
	}
	conn.FailCommit = false
	conn.FailBegin = true
	if err := store.Save(ctx, sample.Snapshot()); err == nil {
		t.Fatalf("expected begin failure")
	}
}

func TestLoadSurfacesRowErrors(t *testing.T) {
	store, conn := openStub(t)
	conn.RowsErr = errors.New("network")
	if _, err := store.Load(context.Background()); err == nil {
		t.Fatalf("expected iterate error")
	}
}

func TestNewStorePingFailure(t *testing.T) {
	db, conn := testutil.NewStubDB()
	conn.FailPing = true
	restore := OverrideSQLOpen(func(string, string) (*sql.DB, error) { return db, nil })
	defer restore()
	if _, err := NewStore(context.Background(), "postgres://x"); err == nil {
		t.Fatalf("expected ping failure")
	}
}
