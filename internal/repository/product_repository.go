package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/dogao/cardapio/internal/models"
	"gorm.io/gorm"
)

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	ToggleActive(ctx context.Context, id uint) (*models.Product, error)
	Count(ctx context.Context) (total int64, active int64, err error)
}

// GormProductRepository implements ProductRepository on top of gorm
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new product repository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// Create inserts a new product. Products always start active.
func (r *GormProductRepository) Create(ctx context.Context, product *models.Product) error {
	product.Active = true
	if err := r.db.WithContext(ctx).Omit("Category").Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// GetByID returns a product by its ID
func (r *GormProductRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to load product %d: %w", id, err)
	}
	return &product, nil
}

// Update overwrites the editable fields of an existing product
func (r *GormProductRepository) Update(ctx context.Context, product *models.Product) error {
	result := r.db.WithContext(ctx).
		Model(&models.Product{ID: product.ID}).
		Updates(map[string]interface{}{
			"name":        product.Name,
			"price":       product.Price,
			"description": product.Description,
			"image_url":   product.ImageURL,
			"category_id": product.CategoryID,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update product %d: %w", product.ID, result.Error)
	}
	return nil
}

// ToggleActive flips the active flag and returns the updated product
func (r *GormProductRepository) ToggleActive(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}
		product.Active = !product.Active
		return tx.Model(&product).Update("active", product.Active).Error
	})
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to toggle product %d: %w", id, err)
	}
	return &product, nil
}

// Count returns the number of products and how many of them are active
func (r *GormProductRepository) Count(ctx context.Context) (int64, int64, error) {
	var total, active int64
	db := r.db.WithContext(ctx)
	if err := db.Model(&models.Product{}).Count(&total).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to count products: %w", err)
	}
	if err := db.Model(&models.Product{}).Where("active = ?", true).Count(&active).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to count active products: %w", err)
	}
	return total, active, nil
}
