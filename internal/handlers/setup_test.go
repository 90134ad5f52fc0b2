package handlers

import (
	"testing"

	"github.com/dogao/cardapio/internal/config"
	"github.com/dogao/cardapio/internal/repository"
	"github.com/dogao/cardapio/internal/service"
	"github.com/dogao/cardapio/internal/session"
	"github.com/dogao/cardapio/internal/storage"
	"github.com/dogao/cardapio/internal/testutil"
	"github.com/dogao/cardapio/internal/web"
	"github.com/dogao/cardapio/pkg/logger"
	"gorm.io/gorm"
)

type testEnv struct {
	db       *gorm.DB
	store    *storage.LocalStore
	sessions *session.Manager
	pages    *Pages
	products *service.ProductService
	category *service.CategoryService
	orders   *service.OrderService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.NewDB(t)
	store := testutil.NewStore(t)
	log := logger.Discard()

	renderer, err := web.NewRenderer(store)
	if err != nil {
		t.Fatalf("failed to load templates: %v", err)
	}
	sessions := session.NewManager(config.SessionConfig{Secret: testutil.SessionSecret})

	productRepo := repository.NewGormProductRepository(db)
	categoryRepo := repository.NewGormCategoryRepository(db)

	return &testEnv{
		db:       db,
		store:    store,
		sessions: sessions,
		pages:    NewPages(renderer, sessions, "5519000000000", log),
		products: service.NewProductService(productRepo, categoryRepo, store, log),
		category: service.NewCategoryService(categoryRepo, store, log),
		orders:   service.NewOrderService(repository.NewGormOrderRepository(db), log),
	}
}
