// Package docstore keeps copies of generated documents so they can be downloaded again.
package docstore

import (
	"context"

	"github.com/cockroachdb/errors"
)

// ErrNotFound is returned by Get when no document is stored under the key.
var ErrNotFound = errors.New("docstore: document not found")

// Store is the interface for persisting generated documents by key.
type Store interface {
	// Put stores data under key, replacing any previous document.
	Put(ctx context.Context, key string, data []byte, contentType string) error
	// Get returns the document stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Exists reports whether a document is stored under key.
	Exists(ctx context.Context, key string) (bool, error)
	// Driver names the backend ("local", "s3" or "none").
	Driver() string
}

// Config selects and configures a Store.
type Config struct {
	Driver string
	Path   string
	S3     S3Config
}

// S3Config configures the S3 backend. Endpoint targets S3-compatible services
// such as MinIO and switches to path-style addressing.
type S3Config struct {
	Bucket          string
	Region          string
	KeyPrefix       string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// --- Null Store (no-op, used when storage is disabled) ---

type nullStore struct{}

// NewNullStore creates a store that keeps nothing.
func NewNullStore() Store {
	return nullStore{}
}

func (nullStore) Put(context.Context, string, []byte, string) error { return nil }

func (nullStore) Get(_ context.Context, key string) ([]byte, error) {
	return nil, errors.Wrapf(ErrNotFound, "key %s", key)
}

func (nullStore) Exists(context.Context, string) (bool, error) { return false, nil }

func (nullStore) Driver() string { return "none" }

// NewStoreFromConfig creates the Store named by cfg.Driver.
//
//	"local": files under cfg.Path
//	"s3":    objects in cfg.S3.Bucket
//	"none":  nothing is kept
func NewStoreFromConfig(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Driver {
	case "local":
		if cfg.Path == "" {
			return nil, errors.New("docstore: path is required for local storage")
		}
		return NewLocalStore(cfg.Path)
	case "s3":
		if cfg.S3.Bucket == "" {
			return nil, errors.New("docstore: bucket is required for s3 storage")
		}
		return NewS3Store(ctx, cfg.S3)
	case "none", "":
		return NewNullStore(), nil
	default:
		return nil, errors.Newf("docstore: unknown driver %q (use local, s3, or none)", cfg.Driver)
	}
}
