package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/dogao/cardapio/internal/models"
	"github.com/dogao/cardapio/internal/repository"
	"github.com/dogao/cardapio/internal/storage"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Upload is an image file received from a form
type Upload struct {
	Filename string
	Content  io.Reader
}

// ProductInput holds the admin form fields for creating or editing a product
type ProductInput struct {
	Name        string          `validate:"required,max=100"`
	Price       decimal.Decimal
	Description string          `validate:"max=500"`
	CategoryID  uint            `validate:"required"`
	ImageURL    string          `validate:"omitempty,http_url,max=250"`
	Image       *Upload
}

var productMessages = map[string]string{
	"Name":        "Nome do produto é obrigatório (até 100 caracteres)",
	"Description": "Descrição muito longa (até 500 caracteres)",
	"CategoryID":  "Selecione uma categoria",
	"ImageURL":    "URL de imagem inválida",
}

// ProductService handles business logic for products
type ProductService struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
	store      storage.Store
	validate   *validator.Validate
	log        *slog.Logger
}

// NewProductService creates a new product service
func NewProductService(repo repository.ProductRepository, categories repository.CategoryRepository, store storage.Store, log *slog.Logger) *ProductService {
	return &ProductService{
		repo:       repo,
		categories: categories,
		store:      store,
		validate:   newValidator(),
		log:        log,
	}
}

// GetProduct returns a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateProduct validates the input, stores the optional image and inserts the product
func (s *ProductService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	if err := s.check(ctx, &in); err != nil {
		return nil, err
	}

	ref, saved, err := s.imageRef(ctx, in)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:        in.Name,
		Price:       in.Price,
		Description: in.Description,
		ImageURL:    ref,
		CategoryID:  in.CategoryID,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		s.discard(ctx, saved)
		return nil, err
	}
	return product, nil
}

// UpdateProduct overwrites the product fields. The image is replaced only when the
// input carries a new upload or URL; otherwise the current reference is kept.
func (s *ProductService) UpdateProduct(ctx context.Context, id uint, in ProductInput) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.check(ctx, &in); err != nil {
		return nil, err
	}

	ref, saved, err := s.imageRef(ctx, in)
	if err != nil {
		return nil, err
	}

	previous := product.ImageURL
	product.Name = in.Name
	product.Price = in.Price
	product.Description = in.Description
	product.CategoryID = in.CategoryID
	if ref != "" {
		product.ImageURL = ref
	}

	if err := s.repo.Update(ctx, product); err != nil {
		s.discard(ctx, saved)
		return nil, err
	}
	if ref != "" && previous != ref {
		s.discard(ctx, previous)
	}
	return product, nil
}

// ToggleProduct flips the active flag
func (s *ProductService) ToggleProduct(ctx context.Context, id uint) (*models.Product, error) {
	return s.repo.ToggleActive(ctx, id)
}

// CountProducts returns the total and active product counts
func (s *ProductService) CountProducts(ctx context.Context) (int64, int64, error) {
	return s.repo.Count(ctx)
}

func (s *ProductService) check(ctx context.Context, in *ProductInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.ImageURL = strings.TrimSpace(in.ImageURL)

	if err := s.validate.Struct(in); err != nil {
		return validationError(err, productMessages)
	}
	if in.Price.IsNegative() {
		return ErrInvalidPrice
	}
	in.Price = in.Price.Round(2)
	if _, err := s.categories.GetByID(ctx, in.CategoryID); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return ErrInvalidCategory
		}
		return err
	}
	return nil
}

// imageRef stores an uploaded file or falls back to the external URL.
// saved is the key written to the store, to be discarded if the row cannot be written.
func (s *ProductService) imageRef(ctx context.Context, in ProductInput) (ref string, saved string, err error) {
	if in.Image != nil {
		key, err := s.store.Save(ctx, in.Image.Filename, in.Image.Content)
		if err != nil {
			return "", "", fmt.Errorf("failed to store product image: %w", err)
		}
		return key, key, nil
	}
	return in.ImageURL, "", nil
}

// discard removes a stored image; external URLs are left alone
func (s *ProductService) discard(ctx context.Context, ref string) {
	if ref == "" || models.IsExternalImage(ref) {
		return
	}
	if err := s.store.Delete(ctx, ref); err != nil {
		s.log.Warn("failed to delete image", "key", ref, "error", err)
	}
}
