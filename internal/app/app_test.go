package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propertybook/internal/config"
	"propertybook/internal/core"
	blobmemory "propertybook/internal/infra/blob/memory"
	"propertybook/internal/infra/persistence/memory"
	"propertybook/internal/sample"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Storage.Driver = "memory"
	cfg.Storage.SaveDebounce = config.Duration{Duration: 10 * time.Millisecond}
	cfg.Backup.Driver = "memory"
	return cfg
}

func newApp(t *testing.T, cfg config.Config, store *memory.Store) *App {
	t.Helper()
	a, err := New(context.Background(), cfg, nil, WithStore(store), WithBlobStore(blobmemory.New()))
	require.NoError(t, err)
	t.Cleanup(func() { a.Close(context.Background()) })
	return a
}

func TestLoadSeedsEmptyStore(t *testing.T) {
	store := memory.NewStore()
	a := newApp(t, testConfig(), store)
	require.NoError(t, a.Load(context.Background()))
	assert.Len(t, a.Model().Properties(), len(sample.Properties()))
	assert.Equal(t, 1, store.Saves())
}

func TestLoadWithoutSeedingKeepsEmpty(t *testing.T) {
	cfg := testConfig()
	cfg.Storage.SeedSample = false
	store := memory.NewStore()
	a := newApp(t, cfg, store)
	require.NoError(t, a.Load(context.Background()))
	assert.Empty(t, a.Model().Persons())
	assert.Zero(t, store.Saves())
}

func TestLoadPrefersStoredState(t *testing.T) {
	store := memory.NewStore()
	snap := core.Snapshot{Sellers: []core.Seller{{ID: "S7", Name: "Zed", Phone: "1"}}}
	require.NoError(t, store.Save(context.Background(), snap))
	a := newApp(t, testConfig(), store)
	require.NoError(t, a.Load(context.Background()))
	sellers := a.Model().Sellers()
	require.Len(t, sellers, 1)
	assert.Equal(t, core.ID("S7"), sellers[0].ID)
}

func TestAutosaveFollowsPersistentChanges(t *testing.T) {
	store := memory.NewStore()
	a := newApp(t, testConfig(), store)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Autosave(ctx) }()

	// The loop subscribes asynchronously, so keep adding until a save lands.
	n := 0
	require.Eventually(t, func() bool {
		n++
		_, _, err := a.Model().AddSeller(context.Background(), core.Seller{Name: "Seller", Phone: strconv.Itoa(n)})
		if err != nil {
			return false
		}
		time.Sleep(20 * time.Millisecond)
		snap, _ := store.Load(context.Background())
		return len(snap.Sellers) == n
	}, 2*time.Second, 5*time.Millisecond)

	saves := store.Saves()
	a.Model().UpdateFilteredSellers(func(core.Seller) bool { return false })
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, saves, store.Saves(), "view changes must not trigger saves")

	cancel()
	require.NoError(t, <-done)
}

func TestAutosaveCatchesUpOnMissedMutation(t *testing.T) {
	cfg := testConfig()
	cfg.Storage.SeedSample = false
	store := memory.NewStore()
	a := newApp(t, cfg, store)
	require.NoError(t, a.Load(context.Background()))

	// Committed before the loop subscribes, so its mutation event is never seen.
	_, _, err := a.Model().AddSeller(context.Background(), core.Seller{Name: "Zed", Phone: "1"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Autosave(ctx) }()

	require.Eventually(t, func() bool {
		a.Model().UpdateFilteredSellers(nil)
		snap, _ := store.Load(context.Background())
		return len(snap.Sellers) == 1
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestUnsavedTracksRevision(t *testing.T) {
	cfg := testConfig()
	cfg.Storage.SeedSample = false
	a := newApp(t, cfg, memory.NewStore())
	require.NoError(t, a.Save(context.Background()))

	rev := a.Model().Revision()
	assert.False(t, a.unsaved(core.ViewEvent{Revision: rev, Reason: core.ReasonSort}))
	assert.True(t, a.unsaved(core.ViewEvent{Revision: rev + 1, Reason: core.ReasonFilter}))
	assert.True(t, a.unsaved(core.ViewEvent{Revision: rev, Reason: core.ReasonMutation}))
}

func TestHandlerExposesMetrics(t *testing.T) {
	a := newApp(t, testConfig(), memory.NewStore())
	require.NoError(t, a.Load(context.Background()))
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "propertybook_model_operations_total")
}

func TestBackupAndRestoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	a := newApp(t, testConfig(), memory.NewStore())
	require.NoError(t, a.Load(ctx))
	svc, err := a.Backups(ctx)
	require.NoError(t, err)
	_, err = svc.Backup(ctx, a.Model().ExportState(), a.Model().Revision())
	require.NoError(t, err)

	_, err = a.Model().SetProperties(ctx, nil)
	require.NoError(t, err)
	require.Empty(t, a.Model().Properties())

	_, _, err = svc.Restore(ctx, a.Model(), "")
	require.NoError(t, err)
	assert.Len(t, a.Model().Properties(), len(sample.Properties()))
}

func TestTracingOptionInstallsProvider(t *testing.T) {
	cfg := testConfig()
	cfg.Metrics.Tracing = true
	a := newApp(t, cfg, memory.NewStore())
	require.NotNil(t, a.provider)
	_, _, err := a.Model().AddSeller(context.Background(), core.Seller{Name: "Sam", Phone: "111"})
	require.NoError(t, err)
}

func TestSeedRefusesToOverwrite(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Save(ctx, core.Snapshot{Sellers: []core.Seller{{ID: "S1", Name: "Zed", Phone: "1"}}}))
	a := newApp(t, testConfig(), store)
	require.ErrorIs(t, a.Seed(ctx, false), ErrStoreNotEmpty)
	require.NoError(t, a.Seed(ctx, true))
	snap, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Sellers, len(sample.Sellers()))
}
