package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/quotedesk/quotedesk-backend/api/controllers"
	"github.com/quotedesk/quotedesk-backend/api/middleware"
	"github.com/quotedesk/quotedesk-backend/internal/catalog"
	"github.com/quotedesk/quotedesk-backend/internal/customers"
	"github.com/quotedesk/quotedesk-backend/internal/documents"
	"github.com/quotedesk/quotedesk-backend/internal/quotation"
	"github.com/quotedesk/quotedesk-backend/pkg/config"
	"github.com/quotedesk/quotedesk-backend/pkg/db"
	"github.com/quotedesk/quotedesk-backend/pkg/logger"
	pkgredis "github.com/quotedesk/quotedesk-backend/pkg/redis"
)

// Services bundles the feature services the router exposes.
type Services struct {
	Catalog   catalog.Service
	Customers customers.Service
	Quotation quotation.Service
	Documents documents.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *pkgredis.Client,
	promRegistry *prometheus.Registry,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisPinger(redisClient)))
	})

	if promRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Idempotency(idempotencyStore(redisClient), logg))

		r.Get("/catalog", controllers.CatalogIndex(svcs.Catalog, logg))
		r.Get("/catalog/accessories", controllers.CatalogAccessories(svcs.Catalog, logg))

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.CategoryList(svcs.Catalog, logg))
			r.Post("/", controllers.CategoryCreate(svcs.Catalog, logg))
			r.Patch("/{categoryId}", controllers.CategoryUpdate(svcs.Catalog, logg))
			r.Delete("/{categoryId}", controllers.CategoryDelete(svcs.Catalog, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(svcs.Catalog, logg))
			r.Post("/", controllers.ProductCreate(svcs.Catalog, logg))
			r.Get("/{productId}", controllers.ProductGet(svcs.Catalog, logg))
			r.Patch("/{productId}", controllers.ProductUpdate(svcs.Catalog, logg))
			r.Delete("/{productId}", controllers.ProductDelete(svcs.Catalog, logg))
		})

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", controllers.CustomerList(svcs.Customers, logg))
			r.Post("/", controllers.CustomerCreate(svcs.Customers, logg))
			r.Get("/lookup", controllers.CustomerLookup(svcs.Customers, logg))
		})

		r.Route("/quotations", func(r chi.Router) {
			r.Get("/", controllers.QuotationList(svcs.Quotation, logg))
			r.Post("/", controllers.QuotationCreate(svcs.Quotation, logg))
			r.Get("/{quotationId}", controllers.QuotationGet(svcs.Quotation, logg))
			r.Get("/{quotationId}/document", controllers.QuotationDocument(svcs.Documents, logg))
		})
	})

	return r
}

// redisPinger and idempotencyStore keep nil ergonomics: a typed nil interface
// would pass != nil checks downstream, so convert explicitly.
func redisPinger(client *pkgredis.Client) pkgredis.Pinger {
	if client == nil {
		return nil
	}
	return client
}

func idempotencyStore(client *pkgredis.Client) pkgredis.IdempotencyStore {
	if client == nil {
		return nil
	}
	return client
}
