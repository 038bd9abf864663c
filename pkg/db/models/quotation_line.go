package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuotationLine snapshots one priced row of a quotation. CategoryName is
// denormalized on purpose: the category a product belonged to when quoted is
// preserved even if the catalog is later recategorized.
type QuotationLine struct {
	ID                 uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	QuotationID        uuid.UUID       `gorm:"column:quotation_id;type:uuid;not null"`
	ProductID          uuid.UUID       `gorm:"column:product_id;type:uuid;not null"`
	Product            *Product        `gorm:"foreignKey:ProductID"`
	CategoryName       string          `gorm:"column:category_name;not null"`
	Quantity           int             `gorm:"column:quantity;not null"`
	UnitRate           decimal.Decimal `gorm:"column:unit_rate;type:numeric(12,2);not null"`
	InstallationAmount decimal.Decimal `gorm:"column:installation_amount;type:numeric(12,2);not null;default:0"`
	Position           int             `gorm:"column:position;not null"`
	CreatedAt          time.Time       `gorm:"column:created_at;autoCreateTime"`
}
