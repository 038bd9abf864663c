package quotation

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quotedesk/quotedesk-backend/pkg/db/models"
	"github.com/quotedesk/quotedesk-backend/pkg/pagination"
)

// Repository defines persistence operations for quotation tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateHeader(ctx context.Context, header *models.Quotation) (*models.Quotation, error)
	CreateLines(ctx context.Context, lines []models.QuotationLine) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Quotation, error)
	List(ctx context.Context, params pagination.Params) ([]models.Quotation, *pagination.Cursor, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// CreateHeader inserts the quotation header row.
func (r *repository) CreateHeader(ctx context.Context, header *models.Quotation) (*models.Quotation, error) {
	if err := r.db.WithContext(ctx).Omit("Lines", "Customer").Create(header).Error; err != nil {
		return nil, err
	}
	return header, nil
}

// CreateLines bulk-inserts the line rows for a header.
func (r *repository) CreateLines(ctx context.Context, lines []models.QuotationLine) error {
	if len(lines) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Omit("Product").Create(&lines).Error
}

// FindByID loads one quotation with its customer and ordered lines, each line
// hydrated with its product so read paths can denormalize name/model/make.
func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Quotation, error) {
	var quotation models.Quotation
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Lines.Product").
		First(&quotation, "quotations.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &quotation, nil
}

// List pages quotation headers newest-first using the shared cursor scheme.
// One extra row is fetched to detect the next page; the last kept row keys
// the returned cursor. Cursors only continue the default ordering, so no
// cursor is emitted for a custom sort.
func (r *repository) List(ctx context.Context, params pagination.Params) ([]models.Quotation, *pagination.Cursor, error) {
	query := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Lines").
		Order(params.Sort.OrderClause("created_at DESC, id DESC")).
		Limit(pagination.LimitWithBuffer(params.Limit))

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, nil, err
	}
	if cursor != nil {
		query = query.Where(
			"(created_at, id) < (?, ?)",
			cursor.CreatedAt, cursor.ID,
		)
	}

	if params.Search != "" {
		query = query.
			Joins("JOIN customers ON customers.id = quotations.customer_id").
			Where("customers.name LIKE ? OR customers.mobile LIKE ?",
				"%"+params.Search+"%", "%"+params.Search+"%")
	}

	var rows []models.Quotation
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
