package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/dogao/cardapio/internal/models"
	"github.com/dogao/cardapio/internal/repository"
	"github.com/dogao/cardapio/internal/storage"
)

// CategoryService handles category listing and image replacement
type CategoryService struct {
	repo  repository.CategoryRepository
	store storage.Store
	log   *slog.Logger
}

// NewCategoryService creates a new category service
func NewCategoryService(repo repository.CategoryRepository, store storage.Store, log *slog.Logger) *CategoryService {
	return &CategoryService{repo: repo, store: store, log: log}
}

// PublicMenu returns the categories shown to customers, in display order, with products.
// Categories without a display order are left out.
func (s *CategoryService) PublicMenu(ctx context.Context) ([]models.Category, error) {
	all, err := s.repo.ListWithProducts(ctx)
	if err != nil {
		return nil, err
	}
	listed := make([]models.Category, 0, len(all))
	for _, c := range all {
		if c.Listed() {
			listed = append(listed, c)
		}
	}
	sortByDisplayOrder(listed)
	return listed, nil
}

// AdminMenu returns every category with products, listed ones first in display order
func (s *CategoryService) AdminMenu(ctx context.Context) ([]models.Category, error) {
	all, err := s.repo.ListWithProducts(ctx)
	if err != nil {
		return nil, err
	}
	sortByDisplayOrder(all)
	return all, nil
}

// ListCategories returns every category without products
func (s *CategoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sortByDisplayOrder(all)
	return all, nil
}

// UpdateImage stores a new category image and drops the previous one from the upload
// store, unless the previous reference is an external URL.
func (s *CategoryService) UpdateImage(ctx context.Context, id uint, upload *Upload) (*models.Category, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if upload == nil {
		return nil, ErrMissingImage
	}

	key, err := s.store.Save(ctx, upload.Filename, upload.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to store category image: %w", err)
	}
	if err := s.repo.UpdateImage(ctx, id, key); err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			s.log.Warn("failed to delete unused image", "key", key, "error", delErr)
		}
		return nil, err
	}

	previous := category.ImageURL
	if previous != "" && !models.IsExternalImage(previous) {
		if err := s.store.Delete(ctx, previous); err != nil {
			s.log.Warn("failed to delete previous category image", "category_id", id, "key", previous, "error", err)
		}
	}

	category.ImageURL = key
	return category, nil
}

// sortByDisplayOrder orders listed categories ascending, then unlisted ones by id
func sortByDisplayOrder(categories []models.Category) {
	sort.SliceStable(categories, func(i, j int) bool {
		a, b := categories[i].DisplayOrder, categories[j].DisplayOrder
		switch {
		case a != nil && b != nil:
			if *a != *b {
				return *a < *b
			}
			return categories[i].ID < categories[j].ID
		case a != nil:
			return true
		case b != nil:
			return false
		default:
			return categories[i].ID < categories[j].ID
		}
	})
}
