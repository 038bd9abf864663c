package quotation

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/quotedesk/quotedesk-backend/internal/customers"
	"github.com/quotedesk/quotedesk-backend/pkg/db/models"
	"github.com/quotedesk/quotedesk-backend/pkg/enums"
	pkgerrors "github.com/quotedesk/quotedesk-backend/pkg/errors"
	"github.com/quotedesk/quotedesk-backend/pkg/pagination"
)

type stubQuotationRepo struct {
	header       *models.Quotation
	lines        []models.QuotationLine
	findByID     func(ctx context.Context, id uuid.UUID) (*models.Quotation, error)
	createHeader func(ctx context.Context, header *models.Quotation) (*models.Quotation, error)
	listRows     []models.Quotation
	listNext     *pagination.Cursor
}

func (s *stubQuotationRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubQuotationRepo) CreateHeader(ctx context.Context, header *models.Quotation) (*models.Quotation, error) {
	if s.createHeader != nil {
		return s.createHeader(ctx, header)
	}
	if header.ID == uuid.Nil {
		header.ID = uuid.New()
	}
	s.header = header
	return header, nil
}

func (s *stubQuotationRepo) CreateLines(ctx context.Context, lines []models.QuotationLine) error {
	s.lines = append(s.lines, lines...)
	return nil
}

func (s *stubQuotationRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Quotation, error) {
	if s.findByID != nil {
		return s.findByID(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubQuotationRepo) List(ctx context.Context, params pagination.Params) ([]models.Quotation, *pagination.Cursor, error) {
	return s.listRows, s.listNext, nil
}

type stubTxRunner struct{ calls int }

func (s *stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	s.calls++
	return fn(nil)
}

type stubResolver struct {
	byMobile map[string]*models.Customer
	created  int
}

func (s *stubResolver) Resolve(ctx context.Context, input customers.CreateInput) (*models.Customer, error) {
	if s.byMobile == nil {
		s.byMobile = make(map[string]*models.Customer)
	}
	if existing, ok := s.byMobile[input.Mobile]; ok {
		return existing, nil
	}
	s.created++
	customer := &models.Customer{
		ID:      uuid.New(),
		Name:    input.Name,
		Mobile:  input.Mobile,
		Address: input.Address,
	}
	s.byMobile[input.Mobile] = customer
	return customer, nil
}

func saveInputFixture() SaveInput {
	return SaveInput{
		CustomerName:      "Ravi Traders",
		Mobile:            "+919876543210",
		Address:           "14 MG Road, Pune",
		CompanyName:       "QuoteDesk Systems",
		DocumentType:      enums.DocumentTypeQuotation,
		Items: []LineItem{
			{
				ProductID:          uuid.New(),
				Name:               "Dome Camera 4MP",
				CategoryName:       "CCTV",
				Quantity:           2,
				UnitRate:           decimal.NewFromInt(1000),
				InstallationAmount: decimal.NewFromInt(100),
			},
			{
				ProductID:    uuid.New(),
				Name:         "Power Adapter",
				CategoryName: "CCTV",
				Quantity:     1,
				UnitRate:     decimal.NewFromInt(500),
			},
		},
	}
}

func newTestService(t *testing.T, repo Repository, tx txRunner, resolver customerResolver) Service {
	t.Helper()
	svc, err := NewService(repo, tx, resolver, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestSaveDerivesTotalsAndPersistsLines(t *testing.T) {
	repo := &stubQuotationRepo{}
	tx := &stubTxRunner{}
	resolver := &stubResolver{}
	svc := newTestService(t, repo, tx, resolver)

	view, err := svc.Save(context.Background(), saveInputFixture())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if tx.calls != 1 {
		t.Fatalf("transaction runs = %d, want 1", tx.calls)
	}
	if repo.header == nil {
		t.Fatal("header was not persisted")
	}
	if got := repo.header.SupplyTotal.StringFixed(2); got != "2500.00" {
		t.Fatalf("persisted supply total = %s, want 2500.00", got)
	}
	if got := repo.header.GrandTotal.StringFixed(2); got != "2700.00" {
		t.Fatalf("persisted grand total = %s, want 2700.00", got)
	}
	if len(repo.lines) != 2 {
		t.Fatalf("persisted %d lines, want 2", len(repo.lines))
	}
	if repo.lines[0].Position != 1 || repo.lines[1].Position != 2 {
		t.Fatalf("line positions = %d,%d, want 1,2", repo.lines[0].Position, repo.lines[1].Position)
	}
	if view.Aggregate.GrandTotal.StringFixed(2) != "2700.00" {
		t.Fatalf("view grand total = %s", view.Aggregate.GrandTotal)
	}
	if view.Customer.Mobile != "+919876543210" {
		t.Fatalf("view customer mobile = %q", view.Customer.Mobile)
	}
}

func TestSaveReusesCustomerByMobile(t *testing.T) {
	repo := &stubQuotationRepo{}
	resolver := &stubResolver{}
	svc := newTestService(t, repo, &stubTxRunner{}, resolver)

	first, err := svc.Save(context.Background(), saveInputFixture())
	if err != nil {
		t.Fatalf("first Save: %v", err)
	}
	second, err := svc.Save(context.Background(), saveInputFixture())
	if err != nil {
		t.Fatalf("second Save: %v", err)
	}

	if resolver.created != 1 {
		t.Fatalf("customers created = %d, want 1", resolver.created)
	}
	if first.Customer.ID != second.Customer.ID {
		t.Fatalf("both quotations should reference the same customer")
	}
}

func TestSaveIgnoresClientSuppliedTotals(t *testing.T) {
	repo := &stubQuotationRepo{}
	svc := newTestService(t, repo, &stubTxRunner{}, &stubResolver{})

	input := saveInputFixture()
	input.GSTOnSupply = true

	view, err := svc.Save(context.Background(), input)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Totals come from the lines and toggles, nowhere else.
	if got := view.Aggregate.SupplyGST.StringFixed(2); got != "450.00" {
		t.Fatalf("supply gst = %s, want 450.00", got)
	}
	if got := repo.header.GrandTotal.StringFixed(2); got != "3150.00" {
		t.Fatalf("persisted grand total = %s, want 3150.00", got)
	}
}

func TestSaveValidation(t *testing.T) {
	svc := newTestService(t, &stubQuotationRepo{}, &stubTxRunner{}, &stubResolver{})

	cases := []struct {
		name   string
		mutate func(*SaveInput)
	}{
		{"missing name", func(in *SaveInput) { in.CustomerName = " " }},
		{"missing mobile", func(in *SaveInput) { in.Mobile = "" }},
		{"missing address", func(in *SaveInput) { in.Address = "" }},
		{"no items", func(in *SaveInput) { in.Items = nil }},
		{"bad document type", func(in *SaveInput) { in.DocumentType = "memo" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := saveInputFixture()
			tc.mutate(&input)

			_, err := svc.Save(context.Background(), input)
			if err == nil {
				t.Fatal("expected validation error")
			}
			appErr := pkgerrors.As(err)
			if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
				t.Fatalf("error = %v, want validation code", err)
			}
		})
	}
}

func TestGetRenumbersAndRecomputes(t *testing.T) {
	id := uuid.New()
	productA := uuid.New()
	productB := uuid.New()
	repo := &stubQuotationRepo{
		findByID: func(ctx context.Context, got uuid.UUID) (*models.Quotation, error) {
			if got != id {
				return nil, gorm.ErrRecordNotFound
			}
			return &models.Quotation{
				ID:                id,
				DocumentType:      enums.DocumentTypePurchaseOrder,
				GSTOnSupply:       true,
				GSTOnInstallation: false,
				SupplyTotal:       decimal.NewFromInt(2500),
				InstallationTotal: decimal.NewFromInt(200),
				GrandTotal:        decimal.NewFromInt(3150),
				Customer:          &models.Customer{ID: uuid.New(), Name: "Ravi Traders", Mobile: "+919876543210"},
				Lines: []models.QuotationLine{
					{
						ProductID:          productA,
						Product:            &models.Product{ID: productA, Name: "Dome Camera 4MP"},
						CategoryName:       "CCTV",
						Quantity:           2,
						UnitRate:           decimal.NewFromInt(1000),
						InstallationAmount: decimal.NewFromInt(100),
						Position:           3, // stale gap from an old removal
					},
					{
						ProductID:    productB,
						Product:      &models.Product{ID: productB, Name: "Power Adapter"},
						CategoryName: "CCTV",
						Quantity:     1,
						UnitRate:     decimal.NewFromInt(500),
						Position:     5,
					},
				},
			}, nil
		},
	}
	svc := newTestService(t, repo, &stubTxRunner{}, &stubResolver{})

	view, err := svc.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	if view.Items[0].SN != 1 || view.Items[1].SN != 2 {
		t.Fatalf("sequence numbers = %d,%d, want 1,2", view.Items[0].SN, view.Items[1].SN)
	}
	if view.Items[0].Name != "Dome Camera 4MP" {
		t.Fatalf("product name not hydrated: %q", view.Items[0].Name)
	}
	if got := view.Aggregate.GrandTotal.StringFixed(2); got != "3150.00" {
		t.Fatalf("recomputed grand total = %s, want 3150.00", got)
	}
}

func TestGetNotFound(t *testing.T) {
	svc := newTestService(t, &stubQuotationRepo{}, &stubTxRunner{}, &stubResolver{})

	_, err := svc.Get(context.Background(), uuid.New())
	if err == nil {
		t.Fatal("expected error")
	}
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("error = %v, want not-found code", err)
	}
}

func TestListProjectsSummaries(t *testing.T) {
	repo := &stubQuotationRepo{
		listRows: []models.Quotation{
			{
				ID:           uuid.New(),
				DocumentType: enums.DocumentTypeQuotation,
				GrandTotal:   decimal.NewFromInt(2700),
				Customer:     &models.Customer{Name: "Ravi Traders", Mobile: "+919876543210"},
				Lines:        []models.QuotationLine{{}, {}},
			},
		},
	}
	svc := newTestService(t, repo, &stubTxRunner{}, &stubResolver{})

	result, err := svc.List(context.Background(), pagination.Params{Limit: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(result.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(result.Items))
	}
	if result.Items[0].CustomerName != "Ravi Traders" || result.Items[0].LineCount != 2 {
		t.Fatalf("summary projection wrong: %+v", result.Items[0])
	}
	if result.Cursor != "" {
		t.Fatalf("cursor = %q, want empty on final page", result.Cursor)
	}
}

func TestListEncodesNextCursor(t *testing.T) {
	next := &pagination.Cursor{CreatedAt: time.Now().UTC(), ID: uuid.New()}
	repo := &stubQuotationRepo{
		listRows: []models.Quotation{{ID: next.ID, CreatedAt: next.CreatedAt}},
		listNext: next,
	}
	svc := newTestService(t, repo, &stubTxRunner{}, &stubResolver{})

	result, err := svc.List(context.Background(), pagination.Params{Limit: 1})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if result.Cursor == "" {
		t.Fatal("expected a next-page cursor")
	}
	decoded, err := pagination.ParseCursor(result.Cursor)
	if err != nil {
		t.Fatalf("returned cursor does not round-trip: %v", err)
	}
	if decoded.ID != next.ID {
		t.Fatalf("cursor id = %s, want %s", decoded.ID, next.ID)
	}
}
