package services

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/SscSPs/nexkeep/internal/apperrors"
	"github.com/SscSPs/nexkeep/internal/core/domain"
	portssvc "github.com/SscSPs/nexkeep/internal/core/ports/services"
	"github.com/SscSPs/nexkeep/internal/platform/metrics"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// DefaultMaxUploadBytes is the upload size limit when none is configured.
const DefaultMaxUploadBytes = 10 << 20

// allowedUploadTypes maps accepted content types to the extension used for the stored key.
var allowedUploadTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"application/pdf": ".pdf",
}

type uploadService struct {
	BaseService
	store    portssvc.FileStore
	maxBytes int64
}

// NewUploadService creates the upload service. The content type is sniffed from the data, never trusted from the client.
func NewUploadService(store portssvc.FileStore, maxBytes int64) portssvc.UploadSvcFacade {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return &uploadService{store: store, maxBytes: maxBytes}
}

func (s *uploadService) Upload(ctx context.Context, fileName string, data []byte) (*domain.StoredFile, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: file is empty", apperrors.ErrValidation)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, fmt.Errorf("%w: file exceeds %d bytes", apperrors.ErrValidation, s.maxBytes)
	}

	contentType := mimetype.Detect(data).String()
	// Drop parameters such as "; charset=binary".
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}
	ext, ok := allowedUploadTypes[contentType]
	if !ok {
		return nil, fmt.Errorf("%w: file type %s is not allowed, use JPEG, PNG or PDF", apperrors.ErrValidation, contentType)
	}

	key := "uploads/" + uuid.NewString() + ext
	url, err := s.store.Put(ctx, key, contentType, data)
	if err != nil {
		s.LogError(ctx, err, "Failed to store upload", slog.String("key", key))
		return nil, fmt.Errorf("%w: failed to store file", apperrors.ErrDependency)
	}
	metrics.UploadedBytes.Add(float64(len(data)))
	s.LogInfo(ctx, "File uploaded",
		slog.String("key", key),
		slog.String("original_name", path.Base(fileName)),
		slog.String("content_type", contentType),
		slog.Int("size", len(data)))

	return &domain.StoredFile{Key: key, URL: url, Size: int64(len(data)), ContentType: contentType}, nil
}
