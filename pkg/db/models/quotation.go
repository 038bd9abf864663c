package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quotedesk/quotedesk-backend/pkg/enums"
)

// Quotation is the persisted header row. The three totals are always derived
// from the line rows plus the GST toggles before insert; they are never
// accepted from the client and never mutated after save.
type Quotation struct {
	ID                uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID        uuid.UUID          `gorm:"column:customer_id;type:uuid;not null"`
	Customer          *Customer          `gorm:"foreignKey:CustomerID"`
	CompanyName       string             `gorm:"column:company_name;not null"`
	DocumentType      enums.DocumentType `gorm:"column:document_type;not null;default:'quotation'"`
	GSTOnSupply       bool               `gorm:"column:gst_on_supply;not null;default:false"`
	GSTOnInstallation bool               `gorm:"column:gst_on_installation;not null;default:false"`
	GSTNumber         *string            `gorm:"column:gst_number"`
	// Address captures the delivery address supplied at save time. It may
	// differ from the customer's registered address.
	Address           string          `gorm:"column:address;not null"`
	SupplyTotal       decimal.Decimal `gorm:"column:supply_total;type:numeric(14,2);not null"`
	InstallationTotal decimal.Decimal `gorm:"column:installation_total;type:numeric(14,2);not null"`
	GrandTotal        decimal.Decimal `gorm:"column:grand_total;type:numeric(14,2);not null"`
	Lines             []QuotationLine `gorm:"foreignKey:QuotationID;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
