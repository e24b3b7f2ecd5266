package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/nexkeep/internal/apperrors"
	"github.com/SscSPs/nexkeep/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	// Now returns the current time. Tests override it to get stable audit timestamps.
	Now func() time.Time
}

func (s *BaseService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// logUnlessExpected logs err at error level unless it is one of the caller facing sentinels.
func (s *BaseService) logUnlessExpected(ctx context.Context, err error, msg string, keyvals ...any) {
	if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrValidation) ||
		errors.Is(err, apperrors.ErrConflict) || errors.Is(err, apperrors.ErrDuplicate) {
		s.LogDebug(ctx, msg, append(keyvals, slog.String("error", err.Error()))...)
		return
	}
	s.LogError(ctx, err, msg, keyvals...)
}
