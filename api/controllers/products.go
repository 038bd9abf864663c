package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quotedesk/quotedesk-backend/api/responses"
	"github.com/quotedesk/quotedesk-backend/api/validators"
	"github.com/quotedesk/quotedesk-backend/internal/catalog"
	"github.com/quotedesk/quotedesk-backend/pkg/enums"
	pkgerrors "github.com/quotedesk/quotedesk-backend/pkg/errors"
	"github.com/quotedesk/quotedesk-backend/pkg/logger"
)

type productRequest struct {
	CategoryID      string   `json:"categoryId" validate:"required,uuid"`
	Kind            string   `json:"kind" validate:"required,oneof=product accessory"`
	Name            string   `json:"name" validate:"required,min=1,max=200"`
	Description     *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	Make            *string  `json:"make,omitempty" validate:"omitempty,max=120"`
	Model           *string  `json:"model,omitempty" validate:"omitempty,max=120"`
	UnitPrice       string   `json:"unitPrice" validate:"required"`
	InstallationFee *string  `json:"installationFee,omitempty"`
	BaseQty         int      `json:"baseQty" validate:"omitempty,min=1"`
	ImageURL        *string  `json:"imageUrl,omitempty" validate:"omitempty,url"`
	AccessoryIDs    []string `json:"accessoryIds,omitempty" validate:"omitempty,dive,uuid"`
}

type productUpdateRequest struct {
	CategoryID      *string   `json:"categoryId,omitempty" validate:"omitempty,uuid"`
	Name            *string   `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description     *string   `json:"description,omitempty" validate:"omitempty,max=2000"`
	Make            *string   `json:"make,omitempty" validate:"omitempty,max=120"`
	Model           *string   `json:"model,omitempty" validate:"omitempty,max=120"`
	UnitPrice       *string   `json:"unitPrice,omitempty"`
	InstallationFee *string   `json:"installationFee,omitempty"`
	BaseQty         *int      `json:"baseQty,omitempty" validate:"omitempty,min=1"`
	ImageURL        *string   `json:"imageUrl,omitempty" validate:"omitempty,url"`
	IsActive        *bool     `json:"isActive,omitempty"`
	AccessoryIDs    *[]string `json:"accessoryIds,omitempty" validate:"omitempty,dive,uuid"`
}

func ProductCreate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload productRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

func ProductGet(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetProduct(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func ProductUpdate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload productUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		update, err := payload.toUpdate()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.UpdateProduct(r.Context(), id, update)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func ProductDelete(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteProduct(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func ProductList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := parseListParams(r, "created_at", "name", "unit_price")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := catalog.ProductFilter{ActiveOnly: r.URL.Query().Get("includeInactive") != "true"}
		if raw := strings.TrimSpace(r.URL.Query().Get("categoryId")); raw != "" {
			categoryID, parseErr := uuid.Parse(raw)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid categoryId"))
				return
			}
			filter.CategoryID = &categoryID
		}
		if kind := strings.TrimSpace(r.URL.Query().Get("kind")); kind != "" {
			if kind != string(enums.CatalogItemKindProduct) && kind != string(enums.CatalogItemKindAccessory) {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeValidation, "kind must be product or accessory"))
				return
			}
			filter.Kind = &kind
		}

		page, err := svc.ListProducts(r.Context(), params, filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

func (p productRequest) toInput() (catalog.ProductInput, error) {
	categoryID, err := uuid.Parse(p.CategoryID)
	if err != nil {
		return catalog.ProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid categoryId")
	}
	unitPrice, err := parseMoney(p.UnitPrice, "unitPrice")
	if err != nil {
		return catalog.ProductInput{}, err
	}
	installFee := decimal.Zero
	if p.InstallationFee != nil {
		installFee, err = parseMoney(*p.InstallationFee, "installationFee")
		if err != nil {
			return catalog.ProductInput{}, err
		}
	}
	accessoryIDs, err := parseUUIDs(p.AccessoryIDs)
	if err != nil {
		return catalog.ProductInput{}, err
	}

	return catalog.ProductInput{
		CategoryID:      categoryID,
		Kind:            enums.CatalogItemKind(p.Kind),
		Name:            p.Name,
		Description:     p.Description,
		Make:            p.Make,
		Model:           p.Model,
		UnitPrice:       unitPrice,
		InstallationFee: installFee,
		BaseQty:         p.BaseQty,
		ImageURL:        p.ImageURL,
		AccessoryIDs:    accessoryIDs,
	}, nil
}

func (p productUpdateRequest) toUpdate() (catalog.ProductUpdate, error) {
	update := catalog.ProductUpdate{
		Name:        p.Name,
		Description: p.Description,
		Make:        p.Make,
		Model:       p.Model,
		BaseQty:     p.BaseQty,
		ImageURL:    p.ImageURL,
		IsActive:    p.IsActive,
	}

	if p.CategoryID != nil {
		categoryID, err := uuid.Parse(*p.CategoryID)
		if err != nil {
			return catalog.ProductUpdate{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid categoryId")
		}
		update.CategoryID = &categoryID
	}
	if p.UnitPrice != nil {
		price, err := parseMoney(*p.UnitPrice, "unitPrice")
		if err != nil {
			return catalog.ProductUpdate{}, err
		}
		update.UnitPrice = &price
	}
	if p.InstallationFee != nil {
		fee, err := parseMoney(*p.InstallationFee, "installationFee")
		if err != nil {
			return catalog.ProductUpdate{}, err
		}
		update.InstallationFee = &fee
	}
	if p.AccessoryIDs != nil {
		ids, err := parseUUIDs(*p.AccessoryIDs)
		if err != nil {
			return catalog.ProductUpdate{}, err
		}
		update.AccessoryIDs = &ids
	}
	return update, nil
}

func parseMoney(raw, field string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeValidation, err, field+" must be a decimal amount")
	}
	return value, nil
}

func parseUUIDs(raw []string) ([]uuid.UUID, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	ids := make([]uuid.UUID, 0, len(raw))
	for _, value := range raw {
		id, err := uuid.Parse(value)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid accessory id")
		}
		ids = append(ids, id)
	}
	return ids, nil
}
