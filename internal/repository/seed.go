package repository

import (
	"context"
	"fmt"

	"github.com/dogao/cardapio/internal/models"
	"gorm.io/gorm"
)

func intPtr(v int) *int { return &v }

// DefaultCategories are created on an empty database, in public menu order
func DefaultCategories() []models.Category {
	return []models.Category{
		{
			Name:         "Lanches",
			Description:  "Hambúrgueres artesanais e sanduíches especiais",
			ImageURL:     "https://images.unsplash.com/photo-1568901346375-23c9450c58cd?w=500&h=300&fit=crop",
			DisplayOrder: intPtr(1),
		},
		{
			Name:         "Hot Dog",
			Description:  "Hot dogs gourmet com ingredientes selecionados",
			ImageURL:     "https://images.unsplash.com/photo-1612392061787-2d078b3f4edb?w=500&h=300&fit=crop",
			DisplayOrder: intPtr(2),
		},
		{
			Name:         "Sobremesas",
			Description:  "Doces e sobremesas para adoçar seu dia",
			ImageURL:     "https://images.unsplash.com/photo-1551024601-bec78aea704b?w=500&h=300&fit=crop",
			DisplayOrder: intPtr(3),
		},
		{
			Name:         "Bebidas",
			Description:  "Refrigerantes, sucos e bebidas geladas",
			ImageURL:     "https://images.unsplash.com/photo-1437418747212-8d9709afab22?w=500&h=300&fit=crop",
			DisplayOrder: intPtr(4),
		},
	}
}

// Seed inserts the default categories when none exist yet.
// It returns the number of categories created.
func Seed(ctx context.Context, db *gorm.DB) (int, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&models.Category{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count categories: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	categories := DefaultCategories()
	if err := db.WithContext(ctx).Create(&categories).Error; err != nil {
		return 0, fmt.Errorf("failed to seed categories: %w", err)
	}
	return len(categories), nil
}
