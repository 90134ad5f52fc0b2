package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/dogao/cardapio/internal/models"
	"github.com/dogao/cardapio/internal/repository"
	"github.com/dogao/cardapio/internal/service"
	"github.com/dogao/cardapio/internal/session"
	"github.com/dogao/cardapio/internal/storage"
)

const adminMenuPath = "/admin/cardapio"

// ProductHandler handles the admin product pages
type ProductHandler struct {
	service    *service.ProductService
	categories *service.CategoryService
	pages      *Pages
	maxUpload  int64
	logger     *slog.Logger
}

// NewProductHandler creates a new product handler. maxUpload bounds the form body in bytes.
func NewProductHandler(service *service.ProductService, categories *service.CategoryService, pages *Pages, maxUpload int64, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service:    service,
		categories: categories,
		pages:      pages,
		maxUpload:  maxUpload,
		logger:     logger,
	}
}

// ProductEditData is the model of the product edit page
type ProductEditData struct {
	Product    *models.Product
	Categories []models.Category
}

// AdminMenu handles GET /admin/cardapio
func (h *ProductHandler) AdminMenu(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.AdminMenu(r.Context())
	if err != nil {
		h.pages.ServerError(w, r, err)
		return
	}
	h.pages.Render(w, r, http.StatusOK, "admin_menu.html", "Gerenciar cardápio", categories)
}

// CreateProduct handles POST /admin/cardapio
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	in, closeUpload, err := h.readForm(w, r)
	defer closeUpload()
	if err != nil {
		h.formError(w, r, adminMenuPath, err)
		return
	}

	product, err := h.service.CreateProduct(r.Context(), in)
	if err != nil {
		h.formError(w, r, adminMenuPath, err)
		return
	}

	h.logger.Info("product created", "product_id", product.ID, "name", product.Name)
	h.pages.RedirectWithFlash(w, r, adminMenuPath, session.FlashSuccess, "Produto adicionado com sucesso!")
}

// EditForm handles GET /admin/produto/editar/{id}
func (h *ProductHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		h.pages.NotFound(w, r)
		return
	}

	product, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			h.pages.NotFound(w, r)
			return
		}
		h.pages.ServerError(w, r, err)
		return
	}

	categories, err := h.categories.ListCategories(r.Context())
	if err != nil {
		h.pages.ServerError(w, r, err)
		return
	}

	h.pages.Render(w, r, http.StatusOK, "product_edit.html", "Editar produto", ProductEditData{
		Product:    product,
		Categories: categories,
	})
}

// UpdateProduct handles POST /admin/produto/editar/{id}
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		h.pages.NotFound(w, r)
		return
	}
	editPath := fmt.Sprintf("/admin/produto/editar/%d", id)

	in, closeUpload, err := h.readForm(w, r)
	defer closeUpload()
	if err != nil {
		h.formError(w, r, editPath, err)
		return
	}

	product, err := h.service.UpdateProduct(r.Context(), id, in)
	if err != nil {
		h.formError(w, r, editPath, err)
		return
	}

	h.logger.Info("product updated", "product_id", product.ID)
	h.pages.RedirectWithFlash(w, r, adminMenuPath, session.FlashSuccess, "Produto atualizado com sucesso!")
}

// ToggleProduct handles POST /admin/produto/toggle/{id}
func (h *ProductHandler) ToggleProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		h.pages.NotFound(w, r)
		return
	}

	product, err := h.service.ToggleProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			h.pages.NotFound(w, r)
			return
		}
		h.pages.ServerError(w, r, err)
		return
	}

	state := "desativado"
	if product.Active {
		state = "ativado"
	}
	h.logger.Info("product toggled", "product_id", product.ID, "active", product.Active)
	h.pages.RedirectWithFlash(w, r, adminMenuPath, session.FlashSuccess,
		fmt.Sprintf("Produto %s foi %s.", product.Name, state))
}

// readForm parses the product form. The returned close func releases the uploaded file.
func (h *ProductHandler) readForm(w http.ResponseWriter, r *http.Request) (service.ProductInput, func(), error) {
	noop := func() {}
	if err := parseForm(w, r, h.maxUpload); err != nil {
		return service.ProductInput{}, noop, err
	}

	price, err := parsePrice(r.FormValue("productPrice"))
	if err != nil {
		return service.ProductInput{}, noop, err
	}
	categoryID, _ := strconv.ParseUint(strings.TrimSpace(r.FormValue("productCategory")), 10, 64)

	upload, closeUpload, err := formUpload(r, "productImage")
	if err != nil {
		return service.ProductInput{}, noop, err
	}

	return service.ProductInput{
		Name:        r.FormValue("productName"),
		Price:       price,
		Description: r.FormValue("productDescription"),
		CategoryID:  uint(categoryID),
		ImageURL:    r.FormValue("productImageURL"),
		Image:       upload,
	}, closeUpload, nil
}

// formError turns a rejected product form into a flash, or a 404/500 page
func (h *ProductHandler) formError(w http.ResponseWriter, r *http.Request, back string, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		h.pages.RedirectWithFlash(w, r, back, session.FlashDanger, verr.Message)
	case errors.Is(err, service.ErrInvalidPrice):
		h.pages.RedirectWithFlash(w, r, back, session.FlashDanger, "Preço inválido.")
	case errors.Is(err, service.ErrInvalidCategory):
		h.pages.RedirectWithFlash(w, r, back, session.FlashDanger, "Categoria inválida.")
	case errors.Is(err, storage.ErrUnsupportedType):
		h.pages.RedirectWithFlash(w, r, back, session.FlashDanger, "Tipo de imagem não suportado. Use PNG, JPG, GIF ou WEBP.")
	case isTooLarge(err):
		h.pages.RedirectWithFlash(w, r, back, session.FlashDanger, "Imagem muito grande.")
	case errors.Is(err, repository.ErrProductNotFound):
		h.pages.NotFound(w, r)
	default:
		h.pages.ServerError(w, r, err)
	}
}
