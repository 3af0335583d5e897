package services

import (
	"context"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"

	"image-service/internal/metrics"
	"image-service/internal/services/caches"
)

// BlobReader is the read side of the blob store.
type BlobReader interface {
	Get(ctx context.Context, name string) (io.ReadCloser, minio.ObjectInfo, error)
}

// BlobService serves stored blobs with a read-through cache in front of
// the object store. Uploads are immutable, so cached bytes never go stale.
type BlobService struct {
	Store   BlobReader
	Cache   caches.BlobCache
	Metrics *metrics.Metrics
}

// NewBlobService creates a BlobService. cache may be nil to disable
// caching entirely.
func NewBlobService(store BlobReader, cache caches.BlobCache, m *metrics.Metrics) *BlobService {
	return &BlobService{Store: store, Cache: cache, Metrics: m}
}

// Fetch returns the bytes and content type of a stored blob, consulting
// the cache first.
func (s *BlobService) Fetch(ctx context.Context, name string) ([]byte, string, error) {
	if s.Cache != nil {
		if data, contentType, ok := s.Cache.Get(name); ok {
			s.Metrics.RecordBlobCache(true)
			return data, contentType, nil
		}
		s.Metrics.RecordBlobCache(false)
	}

	obj, stat, err := s.Store.Get(ctx, name)
	if err != nil {
		return nil, "", err
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to read blob data")
	}
	if s.Cache != nil {
		s.Cache.Set(name, data, stat.ContentType)
	}
	return data, stat.ContentType, nil
}
