package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dogao/cardapio/internal/repository"
	"github.com/dogao/cardapio/internal/service"
	"github.com/dogao/cardapio/internal/session"
	"github.com/dogao/cardapio/internal/storage"
)

const categoriesPath = "/admin/categorias"

// CategoryHandler handles the admin category pages
type CategoryHandler struct {
	service   *service.CategoryService
	pages     *Pages
	maxUpload int64
	logger    *slog.Logger
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(service *service.CategoryService, pages *Pages, maxUpload int64, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{
		service:   service,
		pages:     pages,
		maxUpload: maxUpload,
		logger:    logger,
	}
}

// ListCategories handles GET /admin/categorias
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		h.pages.ServerError(w, r, err)
		return
	}
	h.pages.Render(w, r, http.StatusOK, "categories.html", "Categorias", categories)
}

// UpdateImage handles POST /admin/categoria/update_image/{id}
func (h *CategoryHandler) UpdateImage(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		h.pages.NotFound(w, r)
		return
	}

	if err := parseForm(w, r, h.maxUpload); err != nil {
		if isTooLarge(err) {
			h.pages.RedirectWithFlash(w, r, categoriesPath, session.FlashDanger, "Imagem muito grande.")
			return
		}
		h.pages.RedirectWithFlash(w, r, categoriesPath, session.FlashDanger, "Formulário inválido.")
		return
	}

	upload, closeUpload, err := formUpload(r, "categoryImage")
	defer closeUpload()
	if err != nil {
		h.pages.ServerError(w, r, err)
		return
	}

	category, err := h.service.UpdateImage(r.Context(), id, upload)
	switch {
	case err == nil:
		h.logger.Info("category image updated", "category_id", category.ID, "key", category.ImageURL)
		h.pages.RedirectWithFlash(w, r, categoriesPath, session.FlashSuccess, "Imagem da categoria "+category.Name+" atualizada.")
	case errors.Is(err, repository.ErrCategoryNotFound):
		h.pages.NotFound(w, r)
	case errors.Is(err, service.ErrMissingImage):
		h.pages.RedirectWithFlash(w, r, categoriesPath, session.FlashWarning, "Nenhuma imagem selecionada.")
	case errors.Is(err, storage.ErrUnsupportedType):
		h.pages.RedirectWithFlash(w, r, categoriesPath, session.FlashDanger, "Tipo de imagem não suportado. Use PNG, JPG, GIF ou WEBP.")
	default:
		h.pages.ServerError(w, r, err)
	}
}
