package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/dogao/cardapio/internal/models"
	"gorm.io/gorm"
)

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	List(ctx context.Context) ([]models.Category, error)
	ListWithProducts(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	UpdateImage(ctx context.Context, id uint, ref string) error
}

// GormCategoryRepository implements CategoryRepository on top of gorm
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new category repository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// List returns all categories by id, without products
func (r *GormCategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("id").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// ListWithProducts returns all categories by id with their products sorted by name
func (r *GormCategoryRepository) ListWithProducts(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.WithContext(ctx).
		Preload("Products", func(db *gorm.DB) *gorm.DB {
			return db.Order("name").Order("id")
		}).
		Order("id").
		Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list categories with products: %w", err)
	}
	return categories, nil
}

// GetByID returns a category by its ID
func (r *GormCategoryRepository) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to load category %d: %w", id, err)
	}
	return &category, nil
}

// UpdateImage stores a new image reference for the category
func (r *GormCategoryRepository) UpdateImage(ctx context.Context, id uint, ref string) error {
	err := r.db.WithContext(ctx).
		Model(&models.Category{ID: id}).
		Update("image_url", ref).Error
	if err != nil {
		return fmt.Errorf("failed to update image of category %d: %w", id, err)
	}
	return nil
}
