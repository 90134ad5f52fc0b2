package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dogao/cardapio/internal/metrics"
	"github.com/dogao/cardapio/internal/models"
	"github.com/dogao/cardapio/internal/repository"
	"github.com/dogao/cardapio/internal/service"
	"github.com/dogao/cardapio/internal/session"
)

const (
	orderHistoryPath = "/admin/historico"
	maxOrderBody     = 1 << 20
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
	pages        *Pages
	exposeErrors bool
	log          *slog.Logger
}

// NewOrderHandler creates a new order handler.
// With exposeErrors set, persistence failures are reported to the client verbatim.
func NewOrderHandler(orderService *service.OrderService, pages *Pages, exposeErrors bool, log *slog.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		pages:        pages,
		exposeErrors: exposeErrors,
		log:          log,
	}
}

// SaveOrder handles POST /api/save_order
func (h *OrderHandler) SaveOrder(w http.ResponseWriter, r *http.Request) {
	var req models.OrderRequest

	// Parse request body
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxOrderBody)).Decode(&req); err != nil {
		h.log.Warn("failed to decode order request", "error", err)
		metrics.RecordOrder(metrics.OrderRejected)
		WriteError(w, http.StatusBadRequest, "Requisição inválida", h.log)
		return
	}

	// Validate and create order
	order, err := h.orderService.CreateOrder(r.Context(), req)
	if err != nil {
		var verr *service.ValidationError

		switch {
		case errors.Is(err, service.ErrMissingCart):
			h.reject(w, err, "Carrinho vazio ou ausente")
		case errors.Is(err, service.ErrMissingDelivery):
			h.reject(w, err, "Dados de entrega ausentes")
		case errors.Is(err, service.ErrInvalidQuantity):
			h.reject(w, err, "Quantidade deve ser positiva")
		case errors.Is(err, service.ErrInvalidPrice):
			h.reject(w, err, "Preço ou taxa inválidos")
		case errors.As(err, &verr):
			h.reject(w, err, verr.Message)
		default:
			h.log.Error("failed to save order", "error", err)
			metrics.RecordOrder(metrics.OrderFailed)
			message := "Erro ao salvar o pedido"
			if h.exposeErrors {
				message = err.Error()
			}
			WriteError(w, http.StatusInternalServerError, message, h.log)
		}
		return
	}

	// Return successful response
	metrics.RecordOrder(metrics.OrderSaved)
	WriteJSON(w, http.StatusOK, APIResponse{Success: true, OrderID: order.ID}, h.log)
	h.log.Info("order saved", "order_id", order.ID, "lines", len(order.Lines), "total", order.Total.String())
}

func (h *OrderHandler) reject(w http.ResponseWriter, err error, message string) {
	h.log.Info("order rejected", "reason", err)
	metrics.RecordOrder(metrics.OrderRejected)
	WriteError(w, http.StatusBadRequest, message, h.log)
}

// History handles GET /admin/historico
func (h *OrderHandler) History(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.ListOrders(r.Context())
	if err != nil {
		h.pages.ServerError(w, r, err)
		return
	}
	h.pages.Render(w, r, http.StatusOK, "orders.html", "Histórico de pedidos", orders)
}

// DeleteOrder handles POST /admin/pedido/deletar/{id}
func (h *OrderHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		h.pages.NotFound(w, r)
		return
	}

	if err := h.orderService.DeleteOrder(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			h.pages.NotFound(w, r)
			return
		}
		h.pages.ServerError(w, r, err)
		return
	}

	h.log.Info("order deleted", "order_id", id)
	h.pages.RedirectWithFlash(w, r, orderHistoryPath, session.FlashSuccess, fmt.Sprintf("Pedido #%d excluído.", id))
}

// PrintOrder handles GET /admin/pedido/imprimir/{id}
func (h *OrderHandler) PrintOrder(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		h.pages.NotFound(w, r)
		return
	}

	order, err := h.orderService.GetOrder(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			h.pages.NotFound(w, r)
			return
		}
		h.pages.ServerError(w, r, err)
		return
	}

	h.pages.Render(w, r, http.StatusOK, "order_print.html", fmt.Sprintf("Pedido #%d", order.ID), order)
}
