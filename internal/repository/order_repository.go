package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/dogao/cardapio/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	List(ctx context.Context) ([]models.Order, error)
	GetByID(ctx context.Context, id uint) (*models.Order, error)
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

// GormOrderRepository implements OrderRepository on top of gorm
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new order repository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Create inserts the order header and all of its lines in one transaction.
// Either everything is stored or nothing is.
func (r *GormOrderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lines := order.Lines
		if err := tx.Omit(clause.Associations).Create(order).Error; err != nil {
			return fmt.Errorf("failed to insert order: %w", err)
		}
		if len(lines) == 0 {
			return nil
		}

		for i := range lines {
			lines[i].OrderID = order.ID
		}
		if err := tx.Create(&lines).Error; err != nil {
			return fmt.Errorf("failed to insert order lines: %w", err)
		}
		order.Lines = lines
		return nil
	})
}

// List returns all orders with their lines, newest first
func (r *GormOrderRepository) List(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Order("created_at DESC").
		Order("id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// GetByID returns an order with its lines
func (r *GormOrderRepository) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to load order %d: %w", id, err)
	}
	return &order, nil
}

// Delete removes an order together with its lines.
// Lines are deleted explicitly so no orphans remain even where foreign keys are not enforced.
func (r *GormOrderRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderLine{}).Error; err != nil {
			return fmt.Errorf("failed to delete lines of order %d: %w", id, err)
		}
		result := tx.Delete(&models.Order{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete order %d: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrOrderNotFound
		}
		return nil
	})
}

// Count returns the number of recorded orders
func (r *GormOrderRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Order{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return total, nil
}
