// Package storage keeps uploaded receipts and bank details in Google Cloud Storage.
package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	gcs "cloud.google.com/go/storage"
	"github.com/SscSPs/nexkeep/internal/apperrors"
	portssvc "github.com/SscSPs/nexkeep/internal/core/ports/services"
	"google.golang.org/api/option"
)

const publicHost = "https://storage.googleapis.com"

// writerFunc opens a writer for an object. It is swapped in tests.
type writerFunc func(ctx context.Context, key, contentType string) io.WriteCloser

// GCSStore writes objects to a single bucket.
type GCSStore struct {
	bucket string
	client *gcs.Client
	open   writerFunc
}

var _ portssvc.FileStore = (*GCSStore)(nil)

// NewFileStore returns a GCS store for bucket, or a DisabledStore when bucket is empty.
// credentialsFile may be empty to use application default credentials.
func NewFileStore(ctx context.Context, bucket, credentialsFile string) (portssvc.FileStore, error) {
	if bucket == "" {
		return DisabledStore{}, nil
	}
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	s := &GCSStore{bucket: bucket, client: client}
	s.open = func(ctx context.Context, key, contentType string) io.WriteCloser {
		w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
		w.ContentType = contentType
		w.CacheControl = "private, max-age=0"
		return w
	}
	return s, nil
}

// Put uploads data and returns the object's public URL.
func (s *GCSStore) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	w := s.open(ctx, key, contentType)
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("write object %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize object %s: %w", key, err)
	}
	return PublicURL(s.bucket, key), nil
}

// Close releases the underlying client.
func (s *GCSStore) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

// PublicURL is the https URL of key in bucket. Each path segment is escaped.
func PublicURL(bucket, key string) string {
	segments := strings.Split(key, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return publicHost + "/" + bucket + "/" + strings.Join(segments, "/")
}

// DisabledStore rejects every upload. It is used when no bucket is configured.
type DisabledStore struct{}

func (DisabledStore) Put(_ context.Context, key, _ string, _ []byte) (string, error) {
	return "", fmt.Errorf("%w: file storage is not configured, cannot store %s", apperrors.ErrDependency, key)
}
