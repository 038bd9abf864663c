package quotation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quotedesk/quotedesk-backend/internal/customers"
	"github.com/quotedesk/quotedesk-backend/pkg/db/models"
	"github.com/quotedesk/quotedesk-backend/pkg/enums"
	pkgerrors "github.com/quotedesk/quotedesk-backend/pkg/errors"
	"github.com/quotedesk/quotedesk-backend/pkg/metrics"
	"github.com/quotedesk/quotedesk-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type customerResolver interface {
	Resolve(ctx context.Context, input customers.CreateInput) (*models.Customer, error)
}

// Service builds, persists and loads quotations.
type Service interface {
	Save(ctx context.Context, input SaveInput) (*View, error)
	Get(ctx context.Context, id uuid.UUID) (*View, error)
	List(ctx context.Context, params pagination.Params) (*ListResult, error)
}

// SaveInput carries everything needed to persist one quotation. Totals are
// not part of the input: they are derived from Items and the GST toggles.
type SaveInput struct {
	CustomerName      string
	Mobile            string
	Address           string
	CompanyName       string
	DocumentType      enums.DocumentType
	GSTOnSupply       bool
	GSTOnInstallation bool
	GSTNumber         *string
	Items             []LineItem
}

type service struct {
	repo      Repository
	tx        txRunner
	customers customerResolver
	metrics   *metrics.OperationMetrics
}

// NewService constructs a quotation service backed by the provided stack.
func NewService(repo Repository, tx txRunner, resolver customerResolver, ops *metrics.OperationMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("quotation repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if resolver == nil {
		return nil, fmt.Errorf("customer resolver required")
	}
	return &service{repo: repo, tx: tx, customers: resolver, metrics: ops}, nil
}

// Save resolves the customer, derives the totals and writes header plus lines.
// Customer resolution deliberately happens outside the header/line transaction:
// if the header insert fails after a fresh customer was created, the customer
// row stays behind and a retry with the same mobile number reuses it.
func (s *service) Save(ctx context.Context, input SaveInput) (view *View, err error) {
	start := time.Now()
	defer func() { s.metrics.Observe("quotation_save", time.Since(start), err) }()

	if err = validateSaveInput(input); err != nil {
		return nil, err
	}

	customer, err := s.customers.Resolve(ctx, customers.CreateInput{
		Name:    input.CustomerName,
		Mobile:  input.Mobile,
		Address: input.Address,
	})
	if err != nil {
		return nil, err
	}

	items := Renumber(append([]LineItem(nil), input.Items...))
	agg := Compute(items, input.GSTOnSupply, input.GSTOnInstallation)

	header := &models.Quotation{
		CustomerID:        customer.ID,
		CompanyName:       strings.TrimSpace(input.CompanyName),
		DocumentType:      input.DocumentType,
		GSTOnSupply:       input.GSTOnSupply,
		GSTOnInstallation: input.GSTOnInstallation,
		GSTNumber:         input.GSTNumber,
		Address:           strings.TrimSpace(input.Address),
		SupplyTotal:       agg.SupplySubtotal,
		InstallationTotal: agg.InstallationSubtotal,
		GrandTotal:        agg.GrandTotal,
	}

	if err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if _, txErr := txRepo.CreateHeader(ctx, header); txErr != nil {
			return txErr
		}
		lines := make([]models.QuotationLine, 0, len(items))
		for _, item := range items {
			lines = append(lines, models.QuotationLine{
				QuotationID:        header.ID,
				ProductID:          item.ProductID,
				CategoryName:       item.CategoryName,
				Quantity:           item.Quantity,
				UnitRate:           item.UnitRate,
				InstallationAmount: item.InstallationAmount,
				Position:           item.SN,
			})
		}
		return txRepo.CreateLines(ctx, lines)
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist quotation")
	}

	header.Customer = customer
	return newView(header, items, agg), nil
}

// Get loads a stored quotation for viewing or printing. Lines are renumbered
// 1..N in storage order and the GST breakdown is recomputed for presentation;
// the stored totals are returned as written.
func (s *service) Get(ctx context.Context, id uuid.UUID) (view *View, err error) {
	start := time.Now()
	defer func() { s.metrics.Observe("quotation_load", time.Since(start), err) }()

	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quotation id is required")
	}

	stored, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "quotation not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load quotation")
	}

	items := itemsFromLines(stored.Lines)
	agg := Compute(items, stored.GSTOnSupply, stored.GSTOnInstallation)
	return newView(stored, items, agg), nil
}

func (s *service) List(ctx context.Context, params pagination.Params) (*ListResult, error) {
	rows, next, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list quotations")
	}
	summaries := make([]Summary, 0, len(rows))
	for i := range rows {
		summaries = append(summaries, newSummary(&rows[i]))
	}
	result := &ListResult{Items: summaries}
	if next != nil {
		result.Cursor = pagination.EncodeCursor(*next)
	}
	return result, nil
}

func validateSaveInput(input SaveInput) error {
	if strings.TrimSpace(input.CustomerName) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer name is required")
	}
	if strings.TrimSpace(input.Mobile) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "mobile number is required")
	}
	if strings.TrimSpace(input.Address) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "address is required")
	}
	if len(input.Items) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quotation must contain at least one item")
	}
	if _, err := enums.ParseDocumentType(string(input.DocumentType)); err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid document type")
	}
	return nil
}

// itemsFromLines rebuilds in-memory line items from stored rows, renumbering
// 1..N in whatever order storage returned them.
func itemsFromLines(lines []models.QuotationLine) []LineItem {
	items := make([]LineItem, 0, len(lines))
	for _, line := range lines {
		item := LineItem{
			ProductID:          line.ProductID,
			CategoryName:       line.CategoryName,
			Quantity:           line.Quantity,
			UnitRate:           line.UnitRate,
			InstallationAmount: line.InstallationAmount,
		}
		if line.Product != nil {
			item.Name = line.Product.Name
			item.Description = deref(line.Product.Description)
			item.Make = deref(line.Product.Make)
			item.Model = deref(line.Product.Model)
			item.ImageURL = deref(line.Product.ImageURL)
		}
		items = append(items, item)
	}
	return Renumber(items)
}
