package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/quotedesk/quotedesk-backend/internal/catalog"
	"github.com/quotedesk/quotedesk-backend/internal/customers"
	"github.com/quotedesk/quotedesk-backend/internal/documents"
	"github.com/quotedesk/quotedesk-backend/internal/quotation"
	"github.com/quotedesk/quotedesk-backend/pkg/config"
	"github.com/quotedesk/quotedesk-backend/pkg/db/models"
	pkgerrors "github.com/quotedesk/quotedesk-backend/pkg/errors"
	"github.com/quotedesk/quotedesk-backend/pkg/logger"
	"github.com/quotedesk/quotedesk-backend/pkg/pagination"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

type stubCatalogService struct{}

func (stubCatalogService) CreateCategory(ctx context.Context, input catalog.CategoryInput) (*models.Category, error) {
	return &models.Category{ID: uuid.New(), Name: input.Name}, nil
}

func (stubCatalogService) UpdateCategory(ctx context.Context, id uuid.UUID, input catalog.CategoryUpdate) (*models.Category, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
}

func (stubCatalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (stubCatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return nil, nil
}

func (stubCatalogService) CreateProduct(ctx context.Context, input catalog.ProductInput) (*models.Product, error) {
	return nil, pkgerrors.New(pkgerrors.CodeValidation, "not wired")
}

func (stubCatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

func (stubCatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, input catalog.ProductUpdate) (*models.Product, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

func (stubCatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (stubCatalogService) ListProducts(ctx context.Context, params pagination.Params, filter catalog.ProductFilter) (*catalog.ProductList, error) {
	return &catalog.ProductList{}, nil
}

func (stubCatalogService) Index(ctx context.Context) (*catalog.Index, error) {
	return &catalog.Index{}, nil
}

func (stubCatalogService) AccessoryCategories(ctx context.Context) ([]catalog.CategorySection, error) {
	return nil, nil
}

type stubCustomerService struct{}

func (stubCustomerService) Create(ctx context.Context, input customers.CreateInput) (*models.Customer, error) {
	return &models.Customer{ID: uuid.New()}, nil
}

func (stubCustomerService) Lookup(ctx context.Context, mobile string) (*models.Customer, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
}

func (stubCustomerService) Resolve(ctx context.Context, input customers.CreateInput) (*models.Customer, error) {
	return &models.Customer{ID: uuid.New()}, nil
}

func (stubCustomerService) List(ctx context.Context, params pagination.Params) (*customers.ListResult, error) {
	return &customers.ListResult{}, nil
}

type stubQuotationService struct{}

func (stubQuotationService) Save(ctx context.Context, input quotation.SaveInput) (*quotation.View, error) {
	return &quotation.View{ID: uuid.New()}, nil
}

func (stubQuotationService) Get(ctx context.Context, id uuid.UUID) (*quotation.View, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "quotation not found")
}

func (stubQuotationService) List(ctx context.Context, params pagination.Params) (*quotation.ListResult, error) {
	return &quotation.ListResult{}, nil
}

type stubDocumentService struct{}

func (stubDocumentService) Render(ctx context.Context, id uuid.UUID) (*documents.Document, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "quotation not found")
}

func testRouter() http.Handler {
	cfg := &config.Config{}
	cfg.App.Env = "test"
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(cfg, logg, stubPinger{}, nil, nil, Services{
		Catalog:   stubCatalogService{},
		Customers: stubCustomerService{},
		Quotation: stubQuotationService{},
		Documents: stubDocumentService{},
	})
}

func TestRouterHealthEndpoints(t *testing.T) {
	router := testRouter()

	for _, path := range []string{"/health/live", "/health/ready"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s returned %d, want 200", path, rec.Code)
		}
	}
}

func TestRouterRouteTable(t *testing.T) {
	router := testRouter()

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/api/v1/catalog", http.StatusOK},
		{http.MethodGet, "/api/v1/catalog/accessories", http.StatusOK},
		{http.MethodGet, "/api/v1/categories/", http.StatusOK},
		{http.MethodGet, "/api/v1/products/", http.StatusOK},
		{http.MethodGet, "/api/v1/customers/", http.StatusOK},
		{http.MethodGet, "/api/v1/quotations/", http.StatusOK},
		{http.MethodGet, "/api/v1/quotations/" + uuid.NewString(), http.StatusNotFound},
		{http.MethodGet, "/api/v1/quotations/" + uuid.NewString() + "/document", http.StatusNotFound},
		{http.MethodGet, "/api/v1/customers/lookup?mobile=%2B919876543210", http.StatusNotFound},
		{http.MethodGet, "/nope", http.StatusNotFound},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != tt.want {
			t.Fatalf("%s %s returned %d, want %d", tt.method, tt.path, rec.Code, tt.want)
		}
	}
}

func TestRouterMetricsDisabledWithoutRegistry(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("/metrics returned %d, want 404 when no registry wired", rec.Code)
	}
}
