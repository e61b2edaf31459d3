// Package app wires configuration, storage, observability and the HTTP
// surface around one Model.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"golang.org/x/sync/errgroup"

	"propertybook/internal/adapters/httpapi"
	"propertybook/internal/backup"
	"propertybook/internal/blob"
	"propertybook/internal/config"
	"propertybook/internal/core"
	"propertybook/internal/infra/metrics/prometheus"
	"propertybook/internal/infra/persistence"
	oteltracing "propertybook/internal/infra/tracing/otel"
	"propertybook/internal/sample"
	"propertybook/pkg/domain"
)

// App owns the model and everything attached to it.
type App struct {
	cfg    config.Config
	logger *slog.Logger
	model  *core.Model
	store  domain.SnapshotStore

	metrics  *prometheus.Recorder
	provider *sdktrace.TracerProvider

	blobStore blob.Store
	blobOnce  sync.Once
	blobErr   error

	saveMu   sync.Mutex
	savedRev atomic.Uint64
}

type Option func(*App)

// WithStore injects the snapshot store instead of opening the configured one.
func WithStore(store domain.SnapshotStore) Option {
	return func(a *App) { a.store = store }
}

// WithBlobStore injects the backup blob store.
func WithBlobStore(store blob.Store) Option {
	return func(a *App) {
		a.blobStore = store
		a.blobOnce.Do(func() {})
	}
}

// New opens storage and builds the model. Call Load before serving.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger, opts ...Option) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	a := &App{cfg: cfg, logger: logger}
	for _, opt := range opts {
		opt(a)
	}
	if a.store == nil {
		store, err := persistence.Open(ctx, cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("open %s store: %w", cfg.Storage.Driver, err)
		}
		a.store = store
	}

	modelOpts := []core.Option{core.WithLogger(logger.With("component", "model"))}
	if cfg.Metrics.Enabled {
		a.metrics = prometheus.New()
		modelOpts = append(modelOpts, core.WithMetricsRecorder(a.metrics))
	}
	if cfg.Metrics.Tracing {
		a.provider = sdktrace.NewTracerProvider()
		otel.SetTracerProvider(a.provider)
		modelOpts = append(modelOpts, core.WithTracer(oteltracing.New(a.provider)))
	}
	a.model = core.NewModel(modelOpts...)
	return a, nil
}

func (a *App) Model() *core.Model { return a.model }

// Load imports the stored snapshot. An empty store is seeded with sample
// data when configured, and the seed is saved immediately.
func (a *App) Load(ctx context.Context) error {
	snap, err := a.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	seeded := false
	if snap.Empty() && a.cfg.Storage.SeedSample {
		prefs := snap.Preferences
		snap = sample.Snapshot()
		snap.Preferences = prefs
		seeded = true
	}
	res, err := a.model.ImportState(ctx, snap)
	if err != nil {
		return fmt.Errorf("import snapshot: %w", err)
	}
	if w := res.Warnings(); len(w) > 0 {
		a.logger.Warn("stored data has advisory findings", "count", len(w))
	}
	a.logger.Info("state loaded",
		"driver", a.cfg.Storage.Driver,
		"seeded", seeded,
		"properties", len(snap.Properties),
		"bids", len(snap.Bids),
	)
	if seeded {
		return a.Save(ctx)
	}
	return nil
}

// ErrStoreNotEmpty is returned by Seed when data exists and force is off.
var ErrStoreNotEmpty = errors.New("store already holds data; use --force to replace it")

// Seed replaces the stored state with the sample data.
func (a *App) Seed(ctx context.Context, force bool) error {
	snap, err := a.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	if !snap.Empty() && !force {
		return ErrStoreNotEmpty
	}
	if _, err := a.model.ImportState(ctx, sample.Snapshot()); err != nil {
		return fmt.Errorf("import sample: %w", err)
	}
	return a.Save(ctx)
}

// Save writes the current model state to the snapshot store.
func (a *App) Save(ctx context.Context) error {
	a.saveMu.Lock()
	defer a.saveMu.Unlock()
	rev := a.model.Revision()
	if err := a.store.Save(ctx, a.model.ExportState()); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	a.savedRev.Store(rev)
	a.logger.Debug("state saved", "revision", rev)
	return nil
}

// Autosave saves after every persistent model change, coalescing changes
// that arrive within the configured debounce. It returns when ctx is done,
// after flushing any pending change.
func (a *App) Autosave(ctx context.Context) error {
	events, cancel := a.model.Subscribe(64)
	defer cancel()

	debounce := a.cfg.Storage.SaveDebounce.Duration
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	pending := false

	flush := func(ctx context.Context) {
		pending = false
		if err := a.Save(ctx); err != nil {
			a.logger.Error("autosave failed", "error", err)
		}
	}
	for {
		select {
		case <-ctx.Done():
			if pending {
				flush(context.WithoutCancel(ctx))
			}
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !a.unsaved(ev) {
				continue
			}
			if debounce <= 0 {
				flush(ctx)
				continue
			}
			pending = true
			timer.Reset(debounce)
		case <-timer.C:
			if pending {
				flush(ctx)
			}
		}
	}
}

// unsaved reports whether ev signals state the store has not seen. Any event
// newer than the last save counts, so a mutation event dropped by a full
// subscription is picked up by the next filter or sort event.
func (a *App) unsaved(ev core.ViewEvent) bool {
	return ev.Reason.Persistent() || ev.Revision > a.savedRev.Load()
}

// Handler returns the HTTP surface for the model.
func (a *App) Handler() http.Handler {
	opts := httpapi.Options{Logger: a.logger.With("component", "http")}
	if a.metrics != nil {
		opts.Metrics = a.metrics.Handler()
	}
	return httpapi.NewRouter(a.model, opts)
}

// Serve runs the HTTP server and the autosave loop until ctx is done or
// either fails.
func (a *App) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.cfg.HTTP.Addr,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.Autosave(gctx) })
	g.Go(func() error {
		a.logger.Info("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// Backups returns the backup service, opening the configured blob store on
// first use.
func (a *App) Backups(ctx context.Context) (*backup.Service, error) {
	a.blobOnce.Do(func() {
		a.blobStore, a.blobErr = blob.Open(ctx, a.cfg.Backup)
	})
	if a.blobErr != nil {
		return nil, fmt.Errorf("open %s blob store: %w", a.cfg.Backup.Driver, a.blobErr)
	}
	return backup.NewService(a.blobStore, backup.WithLogger(a.logger.With("component", "backup"))), nil
}

// Close flushes tracing and releases the snapshot store.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.provider != nil {
		errs = append(errs, a.provider.Shutdown(ctx))
	}
	errs = append(errs, a.store.Close())
	return errors.Join(errs...)
}
