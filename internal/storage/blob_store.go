package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
)

// BlobStore persists uploaded image bytes in a MinIO bucket under
// collision-resistant names and serves them back by name.
type BlobStore struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewBlobStore wraps an initialized MinIO client. prefix is the public
// URL prefix under which stored blobs are served (e.g. "/uploads").
func NewBlobStore(client *minio.Client, bucket, prefix string) *BlobStore {
	return &BlobStore{client: client, bucket: bucket, prefix: strings.TrimRight(prefix, "/")}
}

// Put streams the uploaded bytes into the bucket and returns the stored
// object name and its public path. Names compose a nanosecond timestamp
// with the sanitized original filename so concurrent uploads cannot
// collide.
func (s *BlobStore) Put(ctx context.Context, originalName, contentType string, r io.Reader, size int64) (name string, publicPath string, err error) {
	name = fmt.Sprintf("%d-%s", time.Now().UnixNano(), sanitizeName(originalName))
	_, err = s.client.PutObject(ctx, s.bucket, name, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", "", errors.Wrap(err, "failed to upload to MinIO")
	}
	return name, s.prefix + "/" + name, nil
}

// Get opens the stored blob for streaming. The returned stat carries the
// content type and size recorded at upload time.
func (s *BlobStore) Get(ctx context.Context, name string) (io.ReadCloser, minio.ObjectInfo, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, minio.ObjectInfo{}, errors.Wrap(err, "unable to retrieve blob")
	}
	stat, err := obj.Stat()
	if err != nil {
		obj.Close()
		return nil, minio.ObjectInfo{}, err
	}
	return obj, stat, nil
}

// sanitizeName strips any path components and whitespace from a
// client-supplied filename.
func sanitizeName(name string) string {
	name = strings.TrimSpace(name)
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.ReplaceAll(name, " ", "_")
	if name == "" || name == "." || name == "/" {
		return "image"
	}
	return name
}
