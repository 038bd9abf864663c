package controllers

import (
	"net/http"

	"github.com/quotedesk/quotedesk-backend/api/responses"
	"github.com/quotedesk/quotedesk-backend/internal/catalog"
	"github.com/quotedesk/quotedesk-backend/pkg/logger"
)

// CatalogIndex serves the full selectable catalog: ordered product categories,
// each hydrated with its active products and their accessory bundles.
func CatalogIndex(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, err := svc.Index(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, index)
	}
}

// CatalogAccessories serves accessory-flagged categories and their items.
func CatalogAccessories(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sections, err := svc.AccessoryCategories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, sections)
	}
}
