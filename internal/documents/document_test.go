package documents

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quotedesk/quotedesk-backend/internal/quotation"
	"github.com/quotedesk/quotedesk-backend/pkg/enums"
)

type stubLoader struct {
	view *quotation.View
	err  error
}

func (s *stubLoader) Get(ctx context.Context, id uuid.UUID) (*quotation.View, error) {
	return s.view, s.err
}

type stubFetcher struct {
	fetched []string
	fail    map[string]bool
}

func (s *stubFetcher) FetchDataURI(ctx context.Context, url string) (string, error) {
	s.fetched = append(s.fetched, url)
	if s.fail[url] {
		return "", errors.New("connection refused")
	}
	return "data:image/png;base64,AAAA", nil
}

func renderableView() *quotation.View {
	items := quotation.Renumber([]quotation.LineItem{
		{
			ProductID:          uuid.New(),
			Name:               "Dome Camera 4MP",
			Make:               "Hikvision",
			CategoryName:       "CCTV",
			Quantity:           2,
			UnitRate:           decimal.NewFromInt(1000),
			InstallationAmount: decimal.NewFromInt(100),
			ImageURL:           "https://cdn.example.com/camera.png",
		},
		{
			ProductID:    uuid.New(),
			Name:         "Cat6 Cable Roll",
			CategoryName: "Networking",
			Quantity:     1,
			UnitRate:     decimal.NewFromInt(500),
			ImageURL:     "https://cdn.example.com/cable.png",
		},
	})
	view := &quotation.View{
		ID:           uuid.New(),
		DocumentType: enums.DocumentTypePurchaseOrder,
		CompanyName:  "QuoteDesk Systems",
		Address:      "Warehouse 4, Pune",
		GSTOnSupply:  true,
		Customer: quotation.CustomerView{
			Name:   "Ravi Traders",
			Mobile: "+919876543210",
		},
		Items:     items,
		Aggregate: quotation.Compute(items, true, false),
	}
	return view
}

func TestRenderBuildsSectionsAndTotals(t *testing.T) {
	loader := &stubLoader{view: renderableView()}
	fetcher := &stubFetcher{}
	svc, err := NewService(loader, fetcher, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	doc, err := svc.Render(context.Background(), loader.view.ID)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if doc.Title != "Purchase Order" {
		t.Fatalf("title = %q, want Purchase Order", doc.Title)
	}
	if len(doc.Sections) != 2 {
		t.Fatalf("sections = %d, want 2", len(doc.Sections))
	}
	if doc.Sections[0].Category != "CCTV" || doc.Sections[1].Category != "Networking" {
		t.Fatalf("section order = %q,%q", doc.Sections[0].Category, doc.Sections[1].Category)
	}
	if got := doc.Sections[0].Lines[0].LineTotal.StringFixed(2); got != "2200.00" {
		t.Fatalf("camera line total = %s, want 2200.00", got)
	}
	if got := doc.Totals.SupplyGST.StringFixed(2); got != "450.00" {
		t.Fatalf("supply gst = %s, want 450.00", got)
	}
	if got := doc.GrandTotal.StringFixed(2); got != "3150.00" {
		t.Fatalf("grand total = %s, want 3150.00", got)
	}
	if doc.Customer.Address != "Warehouse 4, Pune" {
		t.Fatalf("customer block uses save-time address, got %q", doc.Customer.Address)
	}
}

func TestRenderFetchesImagesInLineOrder(t *testing.T) {
	loader := &stubLoader{view: renderableView()}
	fetcher := &stubFetcher{}
	svc, _ := NewService(loader, fetcher, nil)

	if _, err := svc.Render(context.Background(), loader.view.ID); err != nil {
		t.Fatalf("Render: %v", err)
	}

	want := []string{
		"https://cdn.example.com/camera.png",
		"https://cdn.example.com/cable.png",
	}
	if len(fetcher.fetched) != len(want) {
		t.Fatalf("fetched %d urls, want %d", len(fetcher.fetched), len(want))
	}
	for i := range want {
		if fetcher.fetched[i] != want[i] {
			t.Fatalf("fetch order: got %v, want %v", fetcher.fetched, want)
		}
	}
}

func TestRenderSurvivesImageFailures(t *testing.T) {
	loader := &stubLoader{view: renderableView()}
	fetcher := &stubFetcher{fail: map[string]bool{"https://cdn.example.com/camera.png": true}}
	svc, _ := NewService(loader, fetcher, nil)

	doc, err := svc.Render(context.Background(), loader.view.ID)
	if err != nil {
		t.Fatalf("image failure must not fail the document: %v", err)
	}

	if doc.Sections[0].Lines[0].ImageData != "" {
		t.Fatal("failed fetch should leave image empty")
	}
	if doc.Sections[1].Lines[0].ImageData == "" {
		t.Fatal("other images should still embed")
	}
}

func TestRenderWithoutFetcher(t *testing.T) {
	loader := &stubLoader{view: renderableView()}
	svc, _ := NewService(loader, nil, nil)

	doc, err := svc.Render(context.Background(), loader.view.ID)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	for _, section := range doc.Sections {
		for _, line := range section.Lines {
			if line.ImageData != "" {
				t.Fatal("no fetcher configured, images should be empty")
			}
		}
	}
}

func TestRenderPropagatesLoadError(t *testing.T) {
	loader := &stubLoader{err: errors.New("boom")}
	svc, _ := NewService(loader, &stubFetcher{}, nil)

	if _, err := svc.Render(context.Background(), uuid.New()); err == nil {
		t.Fatal("expected load error to propagate")
	}
}
