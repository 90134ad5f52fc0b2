// Package server wires repositories, services and handlers into the HTTP router.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dogao/cardapio/internal/auth"
	"github.com/dogao/cardapio/internal/config"
	"github.com/dogao/cardapio/internal/handlers"
	"github.com/dogao/cardapio/internal/metrics"
	"github.com/dogao/cardapio/internal/middleware"
	"github.com/dogao/cardapio/internal/repository"
	"github.com/dogao/cardapio/internal/service"
	"github.com/dogao/cardapio/internal/session"
	"github.com/dogao/cardapio/internal/storage"
	"github.com/dogao/cardapio/internal/web"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"gorm.io/gorm"
)

// Deps are the process-wide collaborators built in main
type Deps struct {
	Config        *config.Config
	DB            *gorm.DB
	Store         storage.Store
	Authenticator *auth.Authenticator
	Sessions      *session.Manager
	Logger        *slog.Logger
}

// NewRouter builds the application router
func NewRouter(d Deps) (http.Handler, error) {
	log := d.Logger
	cfg := d.Config

	renderer, err := web.NewRenderer(d.Store)
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	// Initialize repositories
	productRepo := repository.NewGormProductRepository(d.DB)
	categoryRepo := repository.NewGormCategoryRepository(d.DB)
	orderRepo := repository.NewGormOrderRepository(d.DB)

	// Initialize services
	productService := service.NewProductService(productRepo, categoryRepo, d.Store, log)
	categoryService := service.NewCategoryService(categoryRepo, d.Store, log)
	orderService := service.NewOrderService(orderRepo, log)

	// Initialize handlers
	maxUpload := int64(cfg.Upload.MaxSizeMB) << 20
	pages := handlers.NewPages(renderer, d.Sessions, cfg.Site.ContactNumber, log)
	healthHandler := handlers.NewHealthHandler(func(ctx context.Context) error {
		return repository.Ping(ctx, d.DB)
	}, log)
	menuHandler := handlers.NewMenuHandler(categoryService, pages)
	authHandler := handlers.NewAuthHandler(d.Authenticator, d.Sessions, pages, log)
	dashboardHandler := handlers.NewDashboardHandler(productService, orderService, pages)
	productHandler := handlers.NewProductHandler(productService, categoryService, pages, maxUpload, log)
	categoryHandler := handlers.NewCategoryHandler(categoryService, pages, maxUpload, log)
	orderHandler := handlers.NewOrderHandler(orderService, pages, cfg.Site.ExposeErrors, log)
	uploadHandler := handlers.NewUploadHandler(d.Store, log)
	loginLimiter := middleware.NewLoginRateLimiter(cfg.Auth.LoginRatePerMinute, log)

	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(metrics.InstrumentHandler)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.NotFound(pages.NotFound)

	r.Get("/health", healthHandler.ServeHTTP)
	r.Handle("/metrics", metrics.Handler())

	// Public pages
	r.Get("/", menuHandler.Menu)
	r.Get("/uploads/{filename}", uploadHandler.Serve)

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.Server.CORSOrigins,
			AllowedMethods:   []string{"POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
		r.Post("/save_order", orderHandler.SaveOrder)
	})

	// Login
	r.Get(middleware.LoginPath, authHandler.LoginForm)
	r.With(loginLimiter.Handler).Post(middleware.LoginPath, authHandler.Login)
	r.Get("/logout", authHandler.Logout)

	// Admin pages
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin(d.Sessions, log))

		r.Get(handlers.DashboardPath, dashboardHandler.Dashboard)

		r.Get("/admin/cardapio", productHandler.AdminMenu)
		r.Post("/admin/cardapio", productHandler.CreateProduct)
		r.Get("/admin/produto/editar/{id}", productHandler.EditForm)
		r.Post("/admin/produto/editar/{id}", productHandler.UpdateProduct)
		r.Post("/admin/produto/toggle/{id}", productHandler.ToggleProduct)

		r.Get("/admin/categorias", categoryHandler.ListCategories)
		r.Post("/admin/categoria/update_image/{id}", categoryHandler.UpdateImage)

		r.Get("/admin/historico", orderHandler.History)
		r.Post("/admin/pedido/deletar/{id}", orderHandler.DeleteOrder)
		r.Get("/admin/pedido/imprimir/{id}", orderHandler.PrintOrder)
	})

	return r, nil
}
