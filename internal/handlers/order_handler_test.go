package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dogao/cardapio/internal/models"
	"github.com/dogao/cardapio/internal/repository"
	"github.com/dogao/cardapio/internal/service"
	"github.com/dogao/cardapio/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func postOrder(h *OrderHandler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/save_order", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.SaveOrder(w, req)
	return w
}

func TestOrderHandler_SaveOrder(t *testing.T) {
	env := newTestEnv(t)
	handler := NewOrderHandler(env.orders, env.pages, false, logger.Discard())

	tests := []struct {
		name           string
		requestBody    string
		expectedStatus int
		wantMessage    string
	}{
		{
			name:           "successful order",
			requestBody:    `{"cart":{"X-Burger":{"quantity":2,"price":15.5}},"delivery":{"type":"Entrega","fee":5},"total":36}`,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "prices as strings",
			requestBody:    `{"cart":{"Suco":{"quantity":1,"price":"8.00"}},"delivery":{"type":"Retirada","fee":"0"},"total":"8.00"}`,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing cart",
			requestBody:    `{"delivery":{"type":"Entrega","fee":5},"total":5}`,
			expectedStatus: http.StatusBadRequest,
			wantMessage:    "Carrinho vazio ou ausente",
		},
		{
			name:           "empty cart",
			requestBody:    `{"cart":{},"delivery":{"type":"Entrega","fee":5},"total":5}`,
			expectedStatus: http.StatusBadRequest,
			wantMessage:    "Carrinho vazio ou ausente",
		},
		{
			name:           "missing delivery",
			requestBody:    `{"cart":{"A":{"quantity":1,"price":1}},"total":1}`,
			expectedStatus: http.StatusBadRequest,
			wantMessage:    "Dados de entrega ausentes",
		},
		{
			name:           "invalid quantity",
			requestBody:    `{"cart":{"A":{"quantity":0,"price":1}},"delivery":{"type":"Entrega","fee":0},"total":0}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "negative fee",
			requestBody:    `{"cart":{"A":{"quantity":1,"price":1}},"delivery":{"type":"Entrega","fee":-1},"total":0}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid JSON",
			requestBody:    "invalid json",
			expectedStatus: http.StatusBadRequest,
			wantMessage:    "Requisição inválida",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postOrder(handler, tt.requestBody)

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.expectedStatus)
			}

			var resp APIResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Success != (tt.expectedStatus == http.StatusOK) {
				t.Errorf("success = %v for status %d", resp.Success, w.Code)
			}
			if tt.expectedStatus == http.StatusOK && resp.OrderID == 0 {
				t.Error("order_id is empty")
			}
			if tt.wantMessage != "" && resp.Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", resp.Message, tt.wantMessage)
			}
		})
	}
}

func TestOrderHandler_SaveOrderStoresLines(t *testing.T) {
	env := newTestEnv(t)
	handler := NewOrderHandler(env.orders, env.pages, false, logger.Discard())

	w := postOrder(handler, `{"cart":{"X-Salada":{"quantity":2,"price":18.9},"Guaraná":{"quantity":1,"price":6.5}},"delivery":{"type":"Entrega","fee":7},"total":51.3}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp APIResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))

	var order models.Order
	require.NoError(t, env.db.Preload("Lines").First(&order, resp.OrderID).Error)
	assert.True(t, order.Total.Equal(decimal.RequireFromString("51.30")), "total = %s", order.Total)
	assert.Len(t, order.Lines, 2)
}

// newMockOrderHandler backs the order handler with a postgres dialect on sqlmock
func newMockOrderHandler(t *testing.T, exposeErrors bool) (*OrderHandler, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  "sqlmock_db",
		DriverName:           "postgres",
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)

	orders := service.NewOrderService(repository.NewGormOrderRepository(db), logger.Discard())
	return NewOrderHandler(orders, nil, exposeErrors, logger.Discard()), mock
}

func TestOrderHandler_SaveOrderRollsBackOnFailure(t *testing.T) {
	tests := []struct {
		name         string
		exposeErrors bool
		wantMessage  string
	}{
		{"generic message", false, "Erro ao salvar o pedido"},
		{"database error exposed", true, "disk full"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, mock := newMockOrderHandler(t, tt.exposeErrors)

			mock.ExpectBegin()
			mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "orders"`)).
				WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
			mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "order_lines"`)).
				WillReturnError(errors.New("disk full"))
			mock.ExpectRollback()

			w := postOrder(handler, `{"cart":{"A":{"quantity":1,"price":10},"B":{"quantity":2,"price":3}},"delivery":{"type":"Entrega","fee":5},"total":21}`)

			if w.Code != http.StatusInternalServerError {
				t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
			}

			var resp APIResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.False(t, resp.Success)
			assert.Contains(t, resp.Message, tt.wantMessage)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestOrderHandler_DeleteOrder(t *testing.T) {
	env := newTestEnv(t)
	handler := NewOrderHandler(env.orders, env.pages, false, logger.Discard())

	w := postOrder(handler, `{"cart":{"A":{"quantity":1,"price":10}},"delivery":{"type":"Retirada","fee":0},"total":10}`)
	require.Equal(t, http.StatusOK, w.Code)
	var resp APIResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))

	r := chi.NewRouter()
	r.Post("/admin/pedido/deletar/{id}", handler.DeleteOrder)
	r.Get("/admin/pedido/imprimir/{id}", handler.PrintOrder)

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{"print existing", http.MethodGet, "/admin/pedido/imprimir/1", http.StatusOK},
		{"delete existing", http.MethodPost, "/admin/pedido/deletar/1", http.StatusSeeOther},
		{"delete again", http.MethodPost, "/admin/pedido/deletar/1", http.StatusNotFound},
		{"print deleted", http.MethodGet, "/admin/pedido/imprimir/1", http.StatusNotFound},
		{"invalid id", http.MethodPost, "/admin/pedido/deletar/abc", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, bytes.NewReader(nil))
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.expectedStatus)
			}
		})
	}

	var lines int64
	require.NoError(t, env.db.Model(&models.OrderLine{}).Count(&lines).Error)
	assert.Zero(t, lines, "deleting an order leaves no lines")
}
