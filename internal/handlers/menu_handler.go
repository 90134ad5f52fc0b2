package handlers

import (
	"net/http"

	"github.com/dogao/cardapio/internal/service"
)

// MenuHandler serves the public menu
type MenuHandler struct {
	categories *service.CategoryService
	pages      *Pages
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(categories *service.CategoryService, pages *Pages) *MenuHandler {
	return &MenuHandler{categories: categories, pages: pages}
}

// Menu handles GET /
func (h *MenuHandler) Menu(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.PublicMenu(r.Context())
	if err != nil {
		h.pages.ServerError(w, r, err)
		return
	}
	h.pages.Render(w, r, http.StatusOK, "menu.html", "Cardápio", categories)
}
