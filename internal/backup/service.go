// Package backup writes model snapshots to a blob store and restores them.
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"propertybook/internal/blob"
	"propertybook/internal/core"
	"propertybook/pkg/domain"
)

// Prefix is the key prefix every snapshot backup is stored under.
const Prefix = "snapshots/"

// keyTime is fixed width so lexical key order is chronological.
const keyTime = "20060102T150405.000000000Z"

// ErrNoBackups is returned when restoring from an empty store.
var ErrNoBackups = errors.New("no backups found")

// Service stores snapshots as JSON blobs keyed snapshots/<UTC time>-<uuid>.json.
type Service struct {
	store  blob.Store
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock replaces the time source used to name backups.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(store blob.Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		logger: slog.New(slog.DiscardHandler),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Backup writes snap as a new blob and returns its info.
func (s *Service) Backup(ctx context.Context, snap domain.Snapshot, revision uint64) (blob.Info, error) {
	payload, err := json.Marshal(snap)
	if err != nil {
		return blob.Info{}, fmt.Errorf("encode snapshot: %w", err)
	}
	key := Prefix + s.now().UTC().Format(keyTime) + "-" + s.newID() + ".json"
	info, err := s.store.Put(ctx, key, bytes.NewReader(payload), blob.PutOptions{
		ContentType: "application/json",
		Metadata:    map[string]string{"revision": strconv.FormatUint(revision, 10)},
	})
	if err != nil {
		return blob.Info{}, fmt.Errorf("write backup: %w", err)
	}
	s.logger.Info("backup written", "key", key, "bytes", info.Size, "driver", s.store.Driver())
	return info, nil
}

// List returns the stored backups, newest first.
func (s *Service) List(ctx context.Context) ([]blob.Info, error) {
	infos, err := s.store.List(ctx, Prefix)
	if err != nil {
		return nil, fmt.Errorf("list backups: %w", err)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Key > infos[j].Key })
	return infos, nil
}

// Load reads and decodes the backup stored under key.
func (s *Service) Load(ctx context.Context, key string) (domain.Snapshot, error) {
	_, rc, err := s.store.Get(ctx, key)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("read backup %s: %w", key, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("read backup %s: %w", key, err)
	}
	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return domain.Snapshot{}, fmt.Errorf("decode backup %s: %w", key, err)
	}
	return snap, nil
}

// Latest returns the key of the newest backup.
func (s *Service) Latest(ctx context.Context) (string, error) {
	infos, err := s.List(ctx)
	if err != nil {
		return "", err
	}
	if len(infos) == 0 {
		return "", ErrNoBackups
	}
	return infos[0].Key, nil
}

// Restore replaces the model state with the backup under key, or with the
// newest backup when key is empty. It returns the key that was restored.
func (s *Service) Restore(ctx context.Context, m *core.Model, key string) (string, domain.Result, error) {
	if key == "" {
		latest, err := s.Latest(ctx)
		if err != nil {
			return "", domain.Result{}, err
		}
		key = latest
	}
	snap, err := s.Load(ctx, key)
	if err != nil {
		return "", domain.Result{}, err
	}
	res, err := m.ImportState(ctx, snap)
	if err != nil {
		return "", domain.Result{}, fmt.Errorf("restore %s: %w", key, err)
	}
	s.logger.Info("backup restored", "key", key, "revision", m.Revision())
	return key, res, nil
}

// Prune deletes all but the newest keep backups and returns how many were
// removed.
func (s *Service) Prune(ctx context.Context, keep int) (int, error) {
	if keep < 0 {
		return 0, fmt.Errorf("keep must not be negative, got %d", keep)
	}
	infos, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, info := range infos[min(keep, len(infos)):] {
		ok, err := s.store.Delete(ctx, info.Key)
		if err != nil {
			return removed, fmt.Errorf("delete backup %s: %w", info.Key, err)
		}
		if ok {
			removed++
		}
	}
	return removed, nil
}
