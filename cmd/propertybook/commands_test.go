package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propertybook/internal/sample"
	"propertybook/pkg/domain"
)

func useTempStorage(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("PROPERTYBOOK_STORAGE_DRIVER", "json")
	t.Setenv("PROPERTYBOOK_JSON_PATH", filepath.Join(dir, "book.json"))
	t.Setenv("PROPERTYBOOK_BLOB_DRIVER", "fs")
	t.Setenv("PROPERTYBOOK_BLOB_FS_ROOT", filepath.Join(dir, "backups"))
	t.Setenv("PROPERTYBOOK_METRICS_ENABLED", "false")
	t.Setenv("PROPERTYBOOK_LOG_LEVEL", "error")
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSeedThenExport(t *testing.T) {
	useTempStorage(t)
	out, err := run(t, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "Sample data stored.")

	_, err = run(t, "seed")
	require.Error(t, err, "second seed without --force must fail")
	_, err = run(t, "seed", "--force")
	require.NoError(t, err)

	out, err = run(t, "export")
	require.NoError(t, err)
	var snap domain.Snapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snap))
	assert.Len(t, snap.Bids, len(sample.Bids()))
}

func TestBackupListAndRestore(t *testing.T) {
	useTempStorage(t)
	_, err := run(t, "seed")
	require.NoError(t, err)

	out, err := run(t, "backup")
	require.NoError(t, err)
	assert.Contains(t, out, "Backup written: snapshots/")

	out, err = run(t, "backup", "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1)

	out, err = run(t, "restore")
	require.NoError(t, err)
	assert.Contains(t, out, "Restored snapshots/")

	_, err = run(t, "restore", "snapshots/missing.json")
	require.Error(t, err)
}

func TestBackupPrune(t *testing.T) {
	useTempStorage(t)
	for i := 0; i < 3; i++ {
		_, err := run(t, "backup")
		require.NoError(t, err)
	}
	out, err := run(t, "backup", "--keep", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Pruned 3 old backups")
}

func TestRestoreWithoutBackupsFails(t *testing.T) {
	useTempStorage(t)
	_, err := run(t, "restore")
	require.Error(t, err)
}

func TestMissingConfigFileFails(t *testing.T) {
	useTempStorage(t)
	_, err := run(t, "--config", filepath.Join(t.TempDir(), "nope.toml"), "export")
	require.Error(t, err)
}
