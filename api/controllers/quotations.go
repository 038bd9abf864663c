package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quotedesk/quotedesk-backend/api/responses"
	"github.com/quotedesk/quotedesk-backend/api/validators"
	"github.com/quotedesk/quotedesk-backend/internal/documents"
	"github.com/quotedesk/quotedesk-backend/internal/quotation"
	"github.com/quotedesk/quotedesk-backend/pkg/enums"
	pkgerrors "github.com/quotedesk/quotedesk-backend/pkg/errors"
	"github.com/quotedesk/quotedesk-backend/pkg/logger"
)

type quotationLineRequest struct {
	ProductID          string  `json:"productId" validate:"required,uuid"`
	Name               string  `json:"name" validate:"required,min=1,max=200"`
	Description        string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	Make               string  `json:"make,omitempty" validate:"omitempty,max=120"`
	Model              string  `json:"model,omitempty" validate:"omitempty,max=120"`
	ImageURL           string  `json:"imageUrl,omitempty" validate:"omitempty,url"`
	CategoryName       string  `json:"categoryName" validate:"required,min=1,max=120"`
	Quantity           int     `json:"quantity" validate:"required,min=1"`
	UnitRate           string  `json:"unitRate" validate:"required"`
	InstallationAmount *string `json:"installationAmount,omitempty"`
}

type quotationRequest struct {
	CustomerName      string                 `json:"customerName" validate:"required,min=1,max=200"`
	Mobile            string                 `json:"mobile" validate:"required,min=7,max=16"`
	Address           string                 `json:"address" validate:"required,min=1,max=500"`
	CompanyName       string                 `json:"companyName" validate:"required,min=1,max=200"`
	DocumentType      string                 `json:"documentType" validate:"required,oneof=quotation purchase_order proforma_invoice"`
	GSTOnSupply       bool                   `json:"gstOnSupply"`
	GSTOnInstallation bool                   `json:"gstOnInstallation"`
	GSTNumber         *string                `json:"gstNumber,omitempty" validate:"omitempty,max=20"`
	Items             []quotationLineRequest `json:"items" validate:"required,min=1,dive"`
}

func QuotationCreate(svc quotation.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload quotationRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toSaveInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Save(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, view)
	}
}

func QuotationGet(svc quotation.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "quotationId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func QuotationList(svc quotation.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := parseListParams(r, "created_at", "grand_total")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// QuotationDocument serves the printable rendition with embedded images.
func QuotationDocument(svc documents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "quotationId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		doc, err := svc.Render(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, doc)
	}
}

func (q quotationRequest) toSaveInput() (quotation.SaveInput, error) {
	items := make([]quotation.LineItem, 0, len(q.Items))
	for _, line := range q.Items {
		item, err := line.toLineItem()
		if err != nil {
			return quotation.SaveInput{}, err
		}
		items = append(items, item)
	}

	return quotation.SaveInput{
		CustomerName:      q.CustomerName,
		Mobile:            q.Mobile,
		Address:           q.Address,
		CompanyName:       q.CompanyName,
		DocumentType:      enums.DocumentType(q.DocumentType),
		GSTOnSupply:       q.GSTOnSupply,
		GSTOnInstallation: q.GSTOnInstallation,
		GSTNumber:         q.GSTNumber,
		Items:             quotation.Merge(nil, items),
	}, nil
}

func (l quotationLineRequest) toLineItem() (quotation.LineItem, error) {
	productID, err := uuid.Parse(l.ProductID)
	if err != nil {
		return quotation.LineItem{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid productId")
	}
	rate, err := parseMoney(l.UnitRate, "unitRate")
	if err != nil {
		return quotation.LineItem{}, err
	}
	install := decimal.Zero
	if l.InstallationAmount != nil {
		install, err = parseMoney(*l.InstallationAmount, "installationAmount")
		if err != nil {
			return quotation.LineItem{}, err
		}
	}

	return quotation.LineItem{
		ProductID:          productID,
		Name:               l.Name,
		Description:        l.Description,
		Make:               l.Make,
		Model:              l.Model,
		ImageURL:           l.ImageURL,
		CategoryName:       l.CategoryName,
		Quantity:           l.Quantity,
		UnitRate:           rate,
		InstallationAmount: install,
	}, nil
}
