package models

import (
	"time"

	"github.com/google/uuid"
)

// Customer is deduplicated by mobile number: saves look the number up first
// and only create a new row when no match exists.
type Customer struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Mobile    string    `gorm:"column:mobile;not null;uniqueIndex:idx_customers_mobile"`
	Address   string    `gorm:"column:address;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
