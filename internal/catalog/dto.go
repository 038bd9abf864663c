package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quotedesk/quotedesk-backend/pkg/db/models"
	"github.com/quotedesk/quotedesk-backend/pkg/enums"
)

// CategoryInput is the payload for creating a category.
type CategoryInput struct {
	Name        string
	IsAccessory bool
	Position    int
}

// CategoryUpdate carries partial category changes; nil fields are untouched.
type CategoryUpdate struct {
	Name        *string
	IsAccessory *bool
	Position    *int
}

// ProductInput is the payload for creating a product or accessory.
type ProductInput struct {
	CategoryID      uuid.UUID
	Kind            enums.CatalogItemKind
	Name            string
	Description     *string
	Make            *string
	Model           *string
	UnitPrice       decimal.Decimal
	InstallationFee decimal.Decimal
	BaseQty         int
	ImageURL        *string
	AccessoryIDs    []uuid.UUID
}

// ProductList wraps one page of products and the cursor for the next page.
// An empty cursor means the listing is exhausted.
type ProductList struct {
	Items  []models.Product `json:"items"`
	Cursor string           `json:"cursor,omitempty"`
}

// ProductUpdate carries partial product changes; nil fields are untouched.
// A non-nil AccessoryIDs replaces the bundle wholesale, empty slice clears it.
type ProductUpdate struct {
	CategoryID      *uuid.UUID
	Name            *string
	Description     *string
	Make            *string
	Model           *string
	UnitPrice       *decimal.Decimal
	InstallationFee *decimal.Decimal
	BaseQty         *int
	ImageURL        *string
	IsActive        *bool
	AccessoryIDs    *[]uuid.UUID
}
