// Package persistence provides the blob-by-key snapshot store used by the
// in-memory repositories. Writes are best-effort: callers log and continue on
// failure, so a broken backend never blocks an in-memory operation.
package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/gosimple/slug"

	"go-assistant-api/core/config"
)

// ErrNotFound is returned by Load when no value exists for the key.
var ErrNotFound = errors.New("persistence: key not found")

type Store interface {
	Save(ctx context.Context, key string, value []byte) error
	Load(ctx context.Context, key string) ([]byte, error)
}

// New builds the Store selected by cfg.Snapshot.Backend. Keys are namespaced
// with the slugified app name so several deployments can share a backend.
func New(cfg *config.Config) (Store, error) {
	ns := slug.Make(cfg.App.Name)

	var (
		store Store
		err   error
	)
	switch cfg.Snapshot.Backend {
	case "file", "":
		store, err = NewFileStore(cfg.Snapshot.FilePath)
	case "redis":
		store, err = NewRedisStore(cfg.Redis)
	case "postgres":
		store, err = NewPostgresStore(cfg.Postgres)
	case "s3":
		store, err = NewS3Store(cfg.S3)
	default:
		return nil, fmt.Errorf("unknown snapshot backend %q", cfg.Snapshot.Backend)
	}
	if err != nil {
		return nil, err
	}
	return &namespacedStore{ns: ns, inner: store}, nil
}

type namespacedStore struct {
	ns    string
	inner Store
}

func (s *namespacedStore) Save(ctx context.Context, key string, value []byte) error {
	return s.inner.Save(ctx, s.ns+":"+key, value)
}

func (s *namespacedStore) Load(ctx context.Context, key string) ([]byte, error) {
	return s.inner.Load(ctx, s.ns+":"+key)
}
