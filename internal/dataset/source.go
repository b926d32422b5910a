package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cloo-solutions/lexsearch/internal/domain"
	"github.com/cloo-solutions/lexsearch/internal/storage"
)

// ErrNoObjectStore is returned for s3:// locations when no store is configured.
var ErrNoObjectStore = errors.New("s3 dataset requested but object storage is not configured")

// ObjectStore opens dataset objects.
type ObjectStore interface {
	OpenObject(ctx context.Context, bucket, key string) (io.ReadCloser, error)
}

// Loader resolves a dataset location into import rows.
type Loader struct {
	store ObjectStore
}

// NewLoader creates a Loader. store may be nil when only local files are used.
func NewLoader(store ObjectStore) *Loader {
	return &Loader{store: store}
}

// Open returns a reader for a local path or an s3://bucket/key URI.
func (l *Loader) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	if !storage.IsURI(location) {
		f, err := os.Open(location)
		if err != nil {
			return nil, fmt.Errorf("failed to open dataset: %w", err)
		}
		return f, nil
	}

	if l.store == nil {
		return nil, ErrNoObjectStore
	}
	bucket, key, err := storage.ParseURI(location)
	if err != nil {
		return nil, err
	}
	return l.store.OpenObject(ctx, bucket, key)
}

// Load opens and decodes the dataset at location.
func (l *Loader) Load(ctx context.Context, location string) ([]domain.ImportRow, error) {
	r, err := l.Open(ctx, location)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return DecodeCSV(r)
}
