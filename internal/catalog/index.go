package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/quotedesk/quotedesk-backend/pkg/db/models"
	pkgerrors "github.com/quotedesk/quotedesk-backend/pkg/errors"
)

// Index is the full selectable catalog: product categories in configured
// order, each hydrated with its active products and their bundled accessories.
type Index struct {
	Categories []CategorySection `json:"categories"`
}

// CategorySection is one category with its products.
type CategorySection struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	IsAccessory bool             `json:"isAccessory"`
	Products    []models.Product `json:"products"`
}

// Index builds the browsable catalog. Accessory-only categories are excluded
// here; AccessoryCategories serves them separately.
func (s *service) Index(ctx context.Context) (*Index, error) {
	categories, err := s.repo.ListCategories(ctx, false)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}

	index := &Index{Categories: make([]CategorySection, 0, len(categories))}
	for _, category := range categories {
		if category.IsAccessory {
			continue
		}
		section, err := s.sectionFor(ctx, category)
		if err != nil {
			return nil, err
		}
		index.Categories = append(index.Categories, section)
	}
	return index, nil
}

// AccessoryCategories lists accessory-flagged categories with their items,
// for the screens that attach loose accessories to a quotation.
func (s *service) AccessoryCategories(ctx context.Context) ([]CategorySection, error) {
	categories, err := s.repo.ListCategories(ctx, true)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list accessory categories")
	}

	sections := make([]CategorySection, 0, len(categories))
	for _, category := range categories {
		section, err := s.sectionFor(ctx, category)
		if err != nil {
			return nil, err
		}
		sections = append(sections, section)
	}
	return sections, nil
}

func (s *service) sectionFor(ctx context.Context, category models.Category) (CategorySection, error) {
	products, err := s.repo.ListProductsByCategory(ctx, category.ID)
	if err != nil {
		return CategorySection{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list category products")
	}
	return CategorySection{
		ID:          category.ID,
		Name:        category.Name,
		IsAccessory: category.IsAccessory,
		Products:    products,
	}, nil
}
