package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/nexkeep/internal/apperrors"
	"github.com/SscSPs/nexkeep/internal/core/domain"
	portsrepo "github.com/SscSPs/nexkeep/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/nexkeep/internal/core/ports/services"
	"github.com/SscSPs/nexkeep/internal/utils"
)

// shareTokenBytes is the entropy of a share token; it is hex encoded to twice as many characters.
const shareTokenBytes = 32

type shareTokenService struct {
	BaseService
	tokens          portsrepo.ShareTokenStore
	frontendBaseURL string
	generate        func(n int) (string, error)
}

// NewShareTokenService creates the share token issuer. frontendBaseURL prefixes the public form links.
func NewShareTokenService(tokens portsrepo.ShareTokenStore, frontendBaseURL string) portssvc.ShareTokenSvcFacade {
	return &shareTokenService{
		tokens:          tokens,
		frontendBaseURL: strings.TrimRight(frontendBaseURL, "/"),
		generate:        utils.RandomHexToken,
	}
}

var _ portssvc.ShareTokenSvcFacade = (*shareTokenService)(nil)

func (s *shareTokenService) GetOrCreateShareToken(ctx context.Context, userID string) (string, error) {
	candidate, err := s.generate(shareTokenBytes)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate share token")
		return "", fmt.Errorf("failed to generate share token: %w", err)
	}
	token, err := s.tokens.EnsureShareToken(ctx, userID, candidate)
	if err != nil {
		s.logUnlessExpected(ctx, err, "Failed to ensure share token", slog.String("user_id", userID))
		return "", err
	}
	return token, nil
}

func (s *shareTokenService) RegenerateShareToken(ctx context.Context, userID string) (string, error) {
	token, err := s.generate(shareTokenBytes)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate share token")
		return "", fmt.Errorf("failed to generate share token: %w", err)
	}
	if err := s.tokens.ReplaceShareToken(ctx, userID, token); err != nil {
		s.logUnlessExpected(ctx, err, "Failed to replace share token", slog.String("user_id", userID))
		return "", err
	}
	s.LogInfo(ctx, "Share token regenerated", slog.String("user_id", userID))
	return token, nil
}

func (s *shareTokenService) ResolveShareToken(ctx context.Context, token string) (*domain.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("%w: share token", apperrors.ErrNotFound)
	}
	user, err := s.tokens.FindUserByShareToken(ctx, token)
	if err != nil {
		s.logUnlessExpected(ctx, err, "Failed to resolve share token")
		return nil, err
	}
	return user, nil
}

func (s *shareTokenService) ShareURL(token string) string {
	return s.frontendBaseURL + "/request-reimbursement/" + token
}
