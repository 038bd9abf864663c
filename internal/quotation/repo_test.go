package quotation

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/quotedesk/quotedesk-backend/pkg/db/models"
	"github.com/quotedesk/quotedesk-backend/pkg/enums"
	"github.com/quotedesk/quotedesk-backend/pkg/pagination"
)

func setupQuotationTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	for _, ddl := range []string{
		`CREATE TABLE customers (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  mobile TEXT NOT NULL UNIQUE,
  address TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE products (
  id TEXT PRIMARY KEY,
  category_id TEXT NOT NULL,
  kind TEXT NOT NULL DEFAULT 'product',
  name TEXT NOT NULL,
  description TEXT,
  make TEXT,
  model TEXT,
  unit_price NUMERIC NOT NULL,
  installation_fee NUMERIC NOT NULL DEFAULT 0,
  base_qty INTEGER NOT NULL DEFAULT 1,
  image_url TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE quotations (
  id TEXT PRIMARY KEY,
  customer_id TEXT NOT NULL,
  company_name TEXT NOT NULL,
  document_type TEXT NOT NULL DEFAULT 'quotation',
  gst_on_supply INTEGER NOT NULL DEFAULT 0,
  gst_on_installation INTEGER NOT NULL DEFAULT 0,
  gst_number TEXT,
  address TEXT NOT NULL,
  supply_total NUMERIC NOT NULL,
  installation_total NUMERIC NOT NULL,
  grand_total NUMERIC NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE quotation_lines (
  id TEXT PRIMARY KEY,
  quotation_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  category_name TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  unit_rate NUMERIC NOT NULL,
  installation_amount NUMERIC NOT NULL DEFAULT 0,
  position INTEGER NOT NULL,
  created_at DATETIME
);`,
	} {
		require.NoError(t, db.Exec(ddl).Error)
	}
	return db
}

func seedCustomer(t *testing.T, db *gorm.DB) *models.Customer {
	t.Helper()
	customer := &models.Customer{
		ID:      uuid.New(),
		Name:    "Ravi Traders",
		Mobile:  "+919876543210",
		Address: "14 MG Road, Pune",
	}
	require.NoError(t, db.Create(customer).Error)
	return customer
}

func seedProduct(t *testing.T, db *gorm.DB, name string) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:         uuid.New(),
		CategoryID: uuid.New(),
		Kind:       enums.CatalogItemKindProduct,
		Name:       name,
		UnitPrice:  decimal.NewFromInt(1000),
		BaseQty:    1,
	}
	require.NoError(t, db.Omit("Category", "Accessories").Create(product).Error)
	return product
}

func TestRepositoryCreateAndFind(t *testing.T) {
	db := setupQuotationTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	customer := seedCustomer(t, db)
	camera := seedProduct(t, db, "Dome Camera 4MP")
	adapter := seedProduct(t, db, "Power Adapter")

	header := &models.Quotation{
		ID:                uuid.New(),
		CustomerID:        customer.ID,
		CompanyName:       "QuoteDesk Systems",
		DocumentType:      enums.DocumentTypeQuotation,
		Address:           customer.Address,
		SupplyTotal:       decimal.NewFromInt(2500),
		InstallationTotal: decimal.NewFromInt(200),
		GrandTotal:        decimal.NewFromInt(2700),
	}
	_, err := repo.CreateHeader(ctx, header)
	require.NoError(t, err)

	lines := []models.QuotationLine{
		{
			ID:                 uuid.New(),
			QuotationID:        header.ID,
			ProductID:          adapter.ID,
			CategoryName:       "CCTV",
			Quantity:           1,
			UnitRate:           decimal.NewFromInt(500),
			InstallationAmount: decimal.Zero,
			Position:           2,
		},
		{
			ID:                 uuid.New(),
			QuotationID:        header.ID,
			ProductID:          camera.ID,
			CategoryName:       "CCTV",
			Quantity:           2,
			UnitRate:           decimal.NewFromInt(1000),
			InstallationAmount: decimal.NewFromInt(100),
			Position:           1,
		},
	}
	require.NoError(t, repo.CreateLines(ctx, lines))

	found, err := repo.FindByID(ctx, header.ID)
	require.NoError(t, err)

	require.NotNil(t, found.Customer)
	assert.Equal(t, "Ravi Traders", found.Customer.Name)
	require.Len(t, found.Lines, 2)
	// Lines come back ordered by position regardless of insert order.
	assert.Equal(t, camera.ID, found.Lines[0].ProductID)
	assert.Equal(t, adapter.ID, found.Lines[1].ProductID)
	require.NotNil(t, found.Lines[0].Product)
	assert.Equal(t, "Dome Camera 4MP", found.Lines[0].Product.Name)
	assert.True(t, found.GrandTotal.Equal(decimal.NewFromInt(2700)))
}

func TestRepositoryFindByIDMissing(t *testing.T) {
	db := setupQuotationTestDB(t)
	repo := NewRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryListSearchAndOrder(t *testing.T) {
	db := setupQuotationTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	ravi := seedCustomer(t, db)
	meera := &models.Customer{
		ID:      uuid.New(),
		Name:    "Meera Electricals",
		Mobile:  "+918001112222",
		Address: "7 FC Road, Pune",
	}
	require.NoError(t, db.Create(meera).Error)

	base := time.Now().Add(-time.Hour)
	for i, customerID := range []uuid.UUID{ravi.ID, meera.ID, ravi.ID} {
		header := &models.Quotation{
			ID:                uuid.New(),
			CustomerID:        customerID,
			CompanyName:       "QuoteDesk Systems",
			DocumentType:      enums.DocumentTypeQuotation,
			Address:           "site",
			SupplyTotal:       decimal.NewFromInt(int64(100 * (i + 1))),
			InstallationTotal: decimal.Zero,
			GrandTotal:        decimal.NewFromInt(int64(100 * (i + 1))),
			CreatedAt:         base.Add(time.Duration(i) * time.Minute),
		}
		_, err := repo.CreateHeader(ctx, header)
		require.NoError(t, err)
	}

	all, next, err := repo.List(ctx, pagination.Params{Limit: 10})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Nil(t, next, "no next page expected")
	assert.True(t, all[0].CreatedAt.After(all[1].CreatedAt), "newest first")

	matches, _, err := repo.List(ctx, pagination.Params{Limit: 10, Search: "Meera"})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, meera.ID, matches[0].CustomerID)
}

func TestRepositoryListLoadsLines(t *testing.T) {
	db := setupQuotationTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	customer := seedCustomer(t, db)
	camera := seedProduct(t, db, "Dome Camera 4MP")
	adapter := seedProduct(t, db, "Power Adapter")

	header := &models.Quotation{
		ID:                uuid.New(),
		CustomerID:        customer.ID,
		CompanyName:       "QuoteDesk Systems",
		DocumentType:      enums.DocumentTypeQuotation,
		Address:           customer.Address,
		SupplyTotal:       decimal.NewFromInt(2500),
		InstallationTotal: decimal.Zero,
		GrandTotal:        decimal.NewFromInt(2500),
	}
	_, err := repo.CreateHeader(ctx, header)
	require.NoError(t, err)
	require.NoError(t, repo.CreateLines(ctx, []models.QuotationLine{
		{ID: uuid.New(), QuotationID: header.ID, ProductID: camera.ID, CategoryName: "CCTV",
			Quantity: 2, UnitRate: decimal.NewFromInt(1000), InstallationAmount: decimal.Zero, Position: 1},
		{ID: uuid.New(), QuotationID: header.ID, ProductID: adapter.ID, CategoryName: "CCTV",
			Quantity: 1, UnitRate: decimal.NewFromInt(500), InstallationAmount: decimal.Zero, Position: 2},
	}))

	rows, _, err := repo.List(ctx, pagination.Params{Limit: 10})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Len(t, rows[0].Lines, 2, "list rows carry their lines")
	assert.Equal(t, 2, newSummary(&rows[0]).LineCount)
}

func TestRepositoryListPagesWithCursor(t *testing.T) {
	db := setupQuotationTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	customer := seedCustomer(t, db)
	base := time.Now().UTC().Add(-time.Hour)
	ids := make([]uuid.UUID, 0, 3)
	for i := 0; i < 3; i++ {
		header := &models.Quotation{
			ID:                uuid.New(),
			CustomerID:        customer.ID,
			CompanyName:       "QuoteDesk Systems",
			DocumentType:      enums.DocumentTypeQuotation,
			Address:           "site",
			SupplyTotal:       decimal.NewFromInt(100),
			InstallationTotal: decimal.Zero,
			GrandTotal:        decimal.NewFromInt(100),
			CreatedAt:         base.Add(time.Duration(i) * time.Minute),
		}
		_, err := repo.CreateHeader(ctx, header)
		require.NoError(t, err)
		ids = append(ids, header.ID)
	}

	first, next, err := repo.List(ctx, pagination.Params{Limit: 2})
	require.NoError(t, err)
	require.Len(t, first, 2, "page is trimmed to the requested limit")
	require.NotNil(t, next, "a further page emits a cursor")
	assert.Equal(t, first[1].ID, next.ID, "cursor keys on the last returned row")

	second, final, err := repo.List(ctx, pagination.Params{
		Limit:  2,
		Cursor: pagination.EncodeCursor(*next),
	})
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, ids[0], second[0].ID, "second page continues past the cursor")
	assert.Nil(t, final, "exhausted listing emits no cursor")

	sorted, sortedNext, err := repo.List(ctx, pagination.Params{
		Limit: 2,
		Sort:  pagination.Sort{Field: "grand_total"},
	})
	require.NoError(t, err)
	require.Len(t, sorted, 2)
	assert.Nil(t, sortedNext, "custom sorts do not emit cursors")
}
