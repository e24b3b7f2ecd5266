package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/nexkeep/internal/apperrors"
	"github.com/SscSPs/nexkeep/internal/core/domain"
	portsrepo "github.com/SscSPs/nexkeep/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/nexkeep/internal/core/ports/services"
	"github.com/SscSPs/nexkeep/internal/dto"
	"github.com/google/uuid"
)

type defaultCategory struct {
	name  string
	kind  domain.TransactionType
	color string
	icon  string
}

// defaultCategories is the catalog installed by SeedDefaultCategories.
var defaultCategories = []defaultCategory{
	{"Salaire", domain.Income, "#10B981", "briefcase"},
	{"Freelance", domain.Income, "#3B82F6", "laptop"},
	{"Investissements", domain.Income, "#8B5CF6", "trending-up"},
	{"Vente", domain.Income, "#F59E0B", "shopping-bag"},
	{"Don", domain.Income, "#EC4899", "gift"},
	{"Autre revenu", domain.Income, "#6B7280", "plus-circle"},
	{"Alimentation", domain.Expense, "#EF4444", "shopping-cart"},
	{"Transport", domain.Expense, "#F97316", "car"},
	{"Logement", domain.Expense, "#84CC16", "home"},
	{"Santé", domain.Expense, "#06B6D4", "heart"},
	{"Éducation", domain.Expense, "#8B5CF6", "book"},
	{"Loisirs", domain.Expense, "#EC4899", "music"},
	{"Vêtements", domain.Expense, "#F59E0B", "shirt"},
	{"Technologie", domain.Expense, "#3B82F6", "smartphone"},
	{"Restaurant", domain.Expense, "#EF4444", "coffee"},
	{domain.ReimbursementCategory, domain.Expense, "#14B8A6", "rotate-ccw"},
	{"Autre dépense", domain.Expense, "#6B7280", "minus-circle"},
}

type categoryService struct {
	BaseService
	categoryRepo portsrepo.CategoryRepositoryFacade
}

func NewCategoryService(categoryRepo portsrepo.CategoryRepositoryFacade) portssvc.CategorySvcFacade {
	return &categoryService{categoryRepo: categoryRepo}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

func (s *categoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categoryRepo.ListCategories(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list categories")
		return nil, err
	}
	if categories == nil {
		return []domain.Category{}, nil
	}
	return categories, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, userID string) (*domain.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	}
	kind := domain.TransactionType(req.Type)
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: type must be income or expense", apperrors.ErrValidation)
	}
	category := domain.Category{
		CategoryID:  uuid.NewString(),
		Name:        name,
		Type:        kind,
		Color:       req.Color,
		Icon:        req.Icon,
		AuditFields: domain.NewAuditFields(userID, s.now()),
	}
	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		s.logUnlessExpected(ctx, err, "Failed to save category", slog.String("name", name))
		return nil, err
	}
	return &category, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, categoryID string) error {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		s.logUnlessExpected(ctx, err, "Failed to find category", slog.String("category_id", categoryID))
		return err
	}
	used, err := s.categoryRepo.CountTransactionsInCategory(ctx, category.Name)
	if err != nil {
		s.LogError(ctx, err, "Failed to count category usage", slog.String("category_id", categoryID))
		return err
	}
	if used > 0 {
		return fmt.Errorf("%w: category %q is used by %d transaction(s)", apperrors.ErrConflict, category.Name, used)
	}
	if err := s.categoryRepo.DeleteCategory(ctx, categoryID); err != nil {
		s.logUnlessExpected(ctx, err, "Failed to delete category", slog.String("category_id", categoryID))
		return err
	}
	return nil
}

func (s *categoryService) SeedDefaultCategories(ctx context.Context, userID string) (int, error) {
	now := s.now()
	categories := make([]domain.Category, 0, len(defaultCategories))
	for _, d := range defaultCategories {
		color, icon := d.color, d.icon
		categories = append(categories, domain.Category{
			CategoryID:  uuid.NewString(),
			Name:        d.name,
			Type:        d.kind,
			Color:       &color,
			Icon:        &icon,
			AuditFields: domain.NewAuditFields(userID, now),
		})
	}
	inserted, err := s.categoryRepo.InsertMissingCategories(ctx, categories)
	if err != nil {
		s.LogError(ctx, err, "Failed to seed categories")
		return 0, err
	}
	s.LogInfo(ctx, "Default categories seeded", slog.Int("inserted", inserted))
	return inserted, nil
}

func (s *categoryService) ResolveCategoryName(ctx context.Context, ref string) (string, error) {
	if _, err := uuid.Parse(ref); err != nil {
		return ref, nil
	}
	category, err := s.categoryRepo.FindCategoryByID(ctx, ref)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return ref, nil
		}
		s.LogError(ctx, err, "Failed to resolve category", slog.String("category_id", ref))
		return "", err
	}
	return category.Name, nil
}
