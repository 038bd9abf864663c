package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quotedesk/quotedesk-backend/pkg/enums"
)

// Product is a sellable catalog item. Accessories are products with
// kind=accessory; a product may bundle accessories but an accessory never
// bundles anything itself (enforced by the catalog service).
type Product struct {
	ID              uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CategoryID      uuid.UUID             `gorm:"column:category_id;type:uuid;not null"`
	Category        *Category             `gorm:"foreignKey:CategoryID"`
	Kind            enums.CatalogItemKind `gorm:"column:kind;not null;default:'product'"`
	Name            string                `gorm:"column:name;not null"`
	Description     *string               `gorm:"column:description"`
	Make            *string               `gorm:"column:make"`
	Model           *string               `gorm:"column:model"`
	UnitPrice       decimal.Decimal       `gorm:"column:unit_price;type:numeric(12,2);not null"`
	InstallationFee decimal.Decimal       `gorm:"column:installation_fee;type:numeric(12,2);not null;default:0"`
	BaseQty         int                   `gorm:"column:base_qty;not null;default:1"`
	ImageURL        *string               `gorm:"column:image_url"`
	IsActive        bool                  `gorm:"column:is_active;not null;default:true"`
	Accessories     []Product             `gorm:"many2many:product_accessories;joinForeignKey:ProductID;joinReferences:AccessoryID"`
	CreatedAt       time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
