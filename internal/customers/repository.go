package customers

import (
	"context"

	"gorm.io/gorm"

	"github.com/quotedesk/quotedesk-backend/pkg/db/models"
	"github.com/quotedesk/quotedesk-backend/pkg/pagination"
)

// Repository persists customer rows.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByMobile returns the customer with an exact mobile-number match.
func (r *Repository) FindByMobile(ctx context.Context, mobile string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).First(&customer, "mobile = ?", mobile).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// Create inserts a new customer row.
func (r *Repository) Create(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	if err := r.db.WithContext(ctx).Create(customer).Error; err != nil {
		return nil, err
	}
	return customer, nil
}

// List pages customers with optional name/mobile search. The buffered extra
// row signals another page and keys the returned cursor; no cursor is emitted
// for a custom sort since cursors only continue the default ordering.
func (r *Repository) List(ctx context.Context, params pagination.Params) ([]models.Customer, *pagination.Cursor, error) {
	query := r.db.WithContext(ctx).
		Order(params.Sort.OrderClause("created_at DESC, id DESC")).
		Limit(pagination.LimitWithBuffer(params.Limit))

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, nil, err
	}
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	if params.Search != "" {
		query = query.Where("name LIKE ? OR mobile LIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	var rows []models.Customer
	if err := query.Find(&rows).Error; err != nil {
		return nil, nil, err
	}

	var next *pagination.Cursor
	if size := pagination.NormalizeLimit(params.Limit); len(rows) > size {
		rows = rows[:size]
		if params.Sort.Field == "" {
			last := rows[len(rows)-1]
			next = &pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}
		}
	}
	return rows, next, nil
}
