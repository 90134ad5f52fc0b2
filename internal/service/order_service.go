package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/dogao/cardapio/internal/models"
	"github.com/dogao/cardapio/internal/repository"
	"github.com/go-playground/validator/v10"
)

// OrderService handles order business logic
type OrderService struct {
	repo     repository.OrderRepository
	validate *validator.Validate
	log      *slog.Logger
}

// NewOrderService creates a new order service
func NewOrderService(repo repository.OrderRepository, log *slog.Logger) *OrderService {
	return &OrderService{
		repo:     repo,
		validate: newValidator(),
		log:      log,
	}
}

var orderMessages = map[string]string{
	"Cart":     "Carrinho vazio ou ausente",
	"Delivery": "Dados de entrega ausentes",
	"Type":     "Tipo de entrega inválido",
}

// CreateOrder records the order header and one line per cart entry atomically.
// The client total is stored as sent; a mismatch with the server-side total is logged.
func (s *OrderService) CreateOrder(ctx context.Context, req models.OrderRequest) (*models.Order, error) {
	// Validate request
	if len(req.Cart) == 0 {
		return nil, ErrMissingCart
	}
	if req.Delivery == nil {
		return nil, ErrMissingDelivery
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err, orderMessages)
	}
	if req.Delivery.Fee.IsNegative() {
		return nil, ErrInvalidPrice
	}

	// Lines follow product name order so the stored order is deterministic
	names := make([]string, 0, len(req.Cart))
	for name := range req.Cart {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]models.OrderLine, 0, len(names))
	for _, name := range names {
		item := req.Cart[name]
		trimmed := strings.TrimSpace(name)
		if trimmed == "" || len(trimmed) > 100 {
			return nil, &ValidationError{Field: "Cart", Message: "Nome de produto inválido no carrinho"}
		}
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		if item.Price.IsNegative() {
			return nil, ErrInvalidPrice
		}
		lines = append(lines, models.OrderLine{
			ProductName: trimmed,
			Quantity:    item.Quantity,
			UnitPrice:   item.Price,
		})
	}

	order := &models.Order{
		DeliveryType: strings.TrimSpace(req.Delivery.Type),
		DeliveryFee:  req.Delivery.Fee,
		Total:        req.Total,
		Lines:        lines,
	}

	if computed := order.ComputedTotal(); !computed.Equal(order.Total) {
		s.log.Warn("client total differs from computed total",
			"client_total", order.Total.String(),
			"computed_total", computed.String(),
			"lines", len(lines),
		)
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to save order: %w", err)
	}
	return order, nil
}

// ListOrders returns the order history, newest first
func (s *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.repo.List(ctx)
}

// GetOrder returns an order with its lines
func (s *OrderService) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	return s.repo.GetByID(ctx, id)
}

// DeleteOrder removes an order and its lines
func (s *OrderService) DeleteOrder(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// CountOrders returns the number of recorded orders
func (s *OrderService) CountOrders(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
