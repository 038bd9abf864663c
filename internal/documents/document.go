package documents

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/quotedesk/quotedesk-backend/internal/quotation"
	"github.com/quotedesk/quotedesk-backend/pkg/logger"
)

// Document is the printable rendition of a saved quotation: title and company
// block, customer block, per-category line sections and the totals breakdown.
// It carries everything a renderer needs; visual layout is the client's job.
type Document struct {
	Title       string          `json:"title"`
	CompanyName string          `json:"companyName"`
	GSTNumber   *string         `json:"gstNumber,omitempty"`
	Customer    CustomerBlock   `json:"customer"`
	Sections    []Section       `json:"sections"`
	Totals      TotalsBlock     `json:"totals"`
	GeneratedAt string          `json:"generatedAt,omitempty"`
	DocumentID  uuid.UUID       `json:"documentId"`
	GrandTotal  decimal.Decimal `json:"grandTotal"`
}

// CustomerBlock is the addressee block of the document.
type CustomerBlock struct {
	Name    string `json:"name"`
	Mobile  string `json:"mobile"`
	Address string `json:"address"`
}

// Section is one category's rows, in quotation order.
type Section struct {
	Category string `json:"category"`
	Lines    []Line `json:"lines"`
}

// Line is one printable row. ImageData holds the inline base64 data URI for
// the product image, empty when the product has no image or the fetch failed.
type Line struct {
	SN           int             `json:"sn"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Make         string          `json:"make,omitempty"`
	Model        string          `json:"model,omitempty"`
	Quantity     int             `json:"quantity"`
	UnitRate     decimal.Decimal `json:"unitRate"`
	Installation decimal.Decimal `json:"installation"`
	LineTotal    decimal.Decimal `json:"lineTotal"`
	ImageData    string          `json:"imageData,omitempty"`
}

// TotalsBlock is the summary table at the foot of the document.
type TotalsBlock struct {
	SupplySubtotal       decimal.Decimal `json:"supplySubtotal"`
	InstallationSubtotal decimal.Decimal `json:"installationSubtotal"`
	SupplyGST            decimal.Decimal `json:"supplyGst,omitempty"`
	InstallationGST      decimal.Decimal `json:"installationGst,omitempty"`
	GSTOnSupply          bool            `json:"gstOnSupply"`
	GSTOnInstallation    bool            `json:"gstOnInstallation"`
	GrandTotal           decimal.Decimal `json:"grandTotal"`
}

type quotationLoader interface {
	Get(ctx context.Context, id uuid.UUID) (*quotation.View, error)
}

type imageFetcher interface {
	FetchDataURI(ctx context.Context, url string) (string, error)
}

// Service renders printable documents from saved quotations.
type Service interface {
	Render(ctx context.Context, quotationID uuid.UUID) (*Document, error)
}

type service struct {
	quotations quotationLoader
	images     imageFetcher
	log        *logger.Logger
}

// NewService constructs a document renderer. The image fetcher may be nil, in
// which case documents render without inline images.
func NewService(quotations quotationLoader, images imageFetcher, log *logger.Logger) (Service, error) {
	if quotations == nil {
		return nil, fmt.Errorf("quotation loader required")
	}
	return &service{quotations: quotations, images: images, log: log}, nil
}

// Render loads the quotation and builds its printable model. Image fetches
// run one line at a time in line order so the output is deterministic; a
// failed fetch leaves that line's image empty and never fails the document.
func (s *service) Render(ctx context.Context, quotationID uuid.UUID) (*Document, error) {
	if s.log != nil {
		ctx = s.log.WithQuotationID(ctx, quotationID.String())
	}
	view, err := s.quotations.Get(ctx, quotationID)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Title:       view.DocumentType.Title(),
		CompanyName: view.CompanyName,
		GSTNumber:   view.GSTNumber,
		DocumentID:  view.ID,
		Customer: CustomerBlock{
			Name:    view.Customer.Name,
			Mobile:  view.Customer.Mobile,
			Address: view.Address,
		},
		Totals: TotalsBlock{
			SupplySubtotal:       view.Aggregate.SupplySubtotal,
			InstallationSubtotal: view.Aggregate.InstallationSubtotal,
			SupplyGST:            view.Aggregate.SupplyGST,
			InstallationGST:      view.Aggregate.InstallationGST,
			GSTOnSupply:          view.GSTOnSupply,
			GSTOnInstallation:    view.GSTOnInstallation,
			GrandTotal:           view.Aggregate.GrandTotal,
		},
		GrandTotal:  view.Aggregate.GrandTotal,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}

	var imageErrs error
	for _, group := range view.Aggregate.Groups {
		section := Section{Category: group.Name, Lines: make([]Line, 0, len(group.Items))}
		for _, item := range group.Items {
			line := Line{
				SN:           item.SN,
				Name:         item.Name,
				Description:  item.Description,
				Make:         item.Make,
				Model:        item.Model,
				Quantity:     item.Quantity,
				UnitRate:     item.UnitRate,
				Installation: item.InstallationAmount,
				LineTotal:    quotation.LineTotal(item).Round(2),
			}
			if s.images != nil && item.ImageURL != "" {
				data, fetchErr := s.images.FetchDataURI(ctx, item.ImageURL)
				if fetchErr != nil {
					imageErrs = multierr.Append(imageErrs, fetchErr)
				} else {
					line.ImageData = data
				}
			}
			section.Lines = append(section.Lines, line)
		}
		doc.Sections = append(doc.Sections, section)
	}

	if imageErrs != nil && s.log != nil {
		s.log.Warn(ctx, fmt.Sprintf("document rendered without %d image(s): %v",
			len(multierr.Errors(imageErrs)), imageErrs))
	}
	return doc, nil
}
