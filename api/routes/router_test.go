package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/veermani/kitchen-backend/internal/catalog"
	"github.com/veermani/kitchen-backend/pkg/config"
	"github.com/veermani/kitchen-backend/pkg/db/models"
	"github.com/veermani/kitchen-backend/pkg/enums"
	"github.com/veermani/kitchen-backend/pkg/logger"
)

type stubCatalog struct{}

func (stubCatalog) ListAvailable(context.Context, *enums.ProductCategory) ([]models.Product, error) {
	return []models.Product{}, nil
}

func (stubCatalog) ListAll(context.Context) ([]models.Product, error) {
	return []models.Product{}, nil
}

func (stubCatalog) GetProduct(context.Context, uuid.UUID) (*models.Product, error) {
	panic("unimplemented")
}

func (stubCatalog) CreateProduct(context.Context, catalog.CreateProductInput) (*models.Product, error) {
	panic("unimplemented")
}

func (stubCatalog) UpdateProduct(context.Context, uuid.UUID, catalog.UpdateProductInput) (*models.Product, error) {
	panic("unimplemented")
}

func (stubCatalog) SetAvailability(context.Context, uuid.UUID, bool) error {
	panic("unimplemented")
}

func testRouter() http.Handler {
	cfg := &config.Config{
		App: config.AppConfig{Env: "test", Port: "8080"},
		JWT: config.JWTConfig{Secret: "secret", Issuer: "veermani-kitchen", ExpirationMinutes: 10},
	}
	logg := logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("error"), Output: io.Discard})
	return NewRouter(cfg, logg, Services{Catalog: stubCatalog{}}, Deps{})
}

func TestRouterServesHealthWithoutAuth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
}

func TestRouterServesPublicCatalog(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
}

func TestRouterGuardsAdminSurface(t *testing.T) {
	paths := []string{
		"/api/admin/v1/orders/",
		"/api/admin/v1/products/",
		"/api/admin/v1/payments/",
		"/api/admin/v1/bulk-orders/",
	}
	router := testRouter()
	for _, path := range paths {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 for %s got %d", path, rec.Code)
		}
	}
}
