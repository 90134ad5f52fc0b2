package handlers

import (
	"net/http"

	"github.com/dogao/cardapio/internal/service"
)

// DashboardData holds the counters shown on the admin landing page
type DashboardData struct {
	Products       int64
	ActiveProducts int64
	Orders         int64
}

// DashboardHandler serves the admin landing page
type DashboardHandler struct {
	products *service.ProductService
	orders   *service.OrderService
	pages    *Pages
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(products *service.ProductService, orders *service.OrderService, pages *Pages) *DashboardHandler {
	return &DashboardHandler{products: products, orders: orders, pages: pages}
}

// Dashboard handles GET /dashboard
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	total, active, err := h.products.CountProducts(r.Context())
	if err != nil {
		h.pages.ServerError(w, r, err)
		return
	}
	orders, err := h.orders.CountOrders(r.Context())
	if err != nil {
		h.pages.ServerError(w, r, err)
		return
	}
	h.pages.Render(w, r, http.StatusOK, "dashboard.html", "Painel", DashboardData{
		Products:       total,
		ActiveProducts: active,
		Orders:         orders,
	})
}
