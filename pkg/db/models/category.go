package models

import (
	"time"

	"github.com/google/uuid"
)

// Category partitions the catalog. Accessory-only categories are flagged so
// the catalog index can serve them separately from product categories.
type Category struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string    `gorm:"column:name;not null;uniqueIndex:idx_categories_name"`
	IsAccessory bool      `gorm:"column:is_accessory;not null;default:false"`
	Position    int       `gorm:"column:position;not null;default:0"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
