package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quotedesk/quotedesk-backend/pkg/db"
	"github.com/quotedesk/quotedesk-backend/pkg/db/models"
	"github.com/quotedesk/quotedesk-backend/pkg/enums"
	pkgerrors "github.com/quotedesk/quotedesk-backend/pkg/errors"
	"github.com/quotedesk/quotedesk-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service manages catalog categories, products and accessory bundles.
type Service interface {
	CreateCategory(ctx context.Context, input CategoryInput) (*models.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, input CategoryUpdate) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	ListCategories(ctx context.Context) ([]models.Category, error)

	CreateProduct(ctx context.Context, input ProductInput) (*models.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input ProductUpdate) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	ListProducts(ctx context.Context, params pagination.Params, filter ProductFilter) (*ProductList, error)

	Index(ctx context.Context) (*Index, error)
	AccessoryCategories(ctx context.Context) ([]CategorySection, error)
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService constructs a catalog service instance.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) CreateCategory(ctx context.Context, input CategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name is required")
	}

	created, err := s.repo.CreateCategory(ctx, &models.Category{
		Name:        name,
		IsAccessory: input.IsAccessory,
		Position:    input.Position,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "idx_categories_name") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "category name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create category")
	}
	return created, nil
}

func (s *service) UpdateCategory(ctx context.Context, id uuid.UUID, input CategoryUpdate) (*models.Category, error) {
	if _, err := s.findCategory(ctx, id); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name is required")
		}
		updates["name"] = name
	}
	if input.IsAccessory != nil {
		updates["is_accessory"] = *input.IsAccessory
	}
	if input.Position != nil {
		updates["position"] = *input.Position
	}
	if len(updates) > 0 {
		if err := s.repo.UpdateCategory(ctx, id, updates); err != nil {
			if db.IsUniqueViolation(err, "idx_categories_name") {
				return nil, pkgerrors.New(pkgerrors.CodeConflict, "category name already exists")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update category")
		}
	}
	return s.findCategory(ctx, id)
}

// DeleteCategory refuses to delete a category that still has products; the
// quotation history references category names, not rows, so deletion only
// affects the catalog going forward.
func (s *service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findCategory(ctx, id); err != nil {
		return err
	}
	count, err := s.repo.CountProductsInCategory(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count category products")
	}
	if count > 0 {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "category still has products")
	}
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete category")
	}
	return nil
}

func (s *service) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := s.repo.ListCategories(ctx, false)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	return rows, nil
}

func (s *service) CreateProduct(ctx context.Context, input ProductInput) (*models.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}
	if _, err := s.findCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	accessories, err := s.resolveAccessoryRefs(ctx, input.Kind, input.AccessoryIDs)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		CategoryID:      input.CategoryID,
		Kind:            input.Kind,
		Name:            strings.TrimSpace(input.Name),
		Description:     input.Description,
		Make:            input.Make,
		Model:           input.Model,
		UnitPrice:       input.UnitPrice,
		InstallationFee: input.InstallationFee,
		BaseQty:         input.BaseQty,
		ImageURL:        input.ImageURL,
		IsActive:        true,
	}
	if product.BaseQty <= 0 {
		product.BaseQty = 1
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if _, txErr := txRepo.CreateProduct(ctx, product); txErr != nil {
			return txErr
		}
		if len(accessories) == 0 {
			return nil
		}
		return txRepo.ReplaceAccessories(ctx, product, accessories)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	product.Accessories = accessories
	return product, nil
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

func (s *service) UpdateProduct(ctx context.Context, id uuid.UUID, input ProductUpdate) (*models.Product, error) {
	existing, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
		}
		updates["name"] = name
	}
	if input.CategoryID != nil {
		if _, err := s.findCategory(ctx, *input.CategoryID); err != nil {
			return nil, err
		}
		updates["category_id"] = *input.CategoryID
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Make != nil {
		updates["make"] = *input.Make
	}
	if input.Model != nil {
		updates["model"] = *input.Model
	}
	if input.UnitPrice != nil {
		if input.UnitPrice.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unit price cannot be negative")
		}
		updates["unit_price"] = *input.UnitPrice
	}
	if input.InstallationFee != nil {
		if input.InstallationFee.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "installation fee cannot be negative")
		}
		updates["installation_fee"] = *input.InstallationFee
	}
	if input.BaseQty != nil {
		if *input.BaseQty <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "base quantity must be positive")
		}
		updates["base_qty"] = *input.BaseQty
	}
	if input.ImageURL != nil {
		updates["image_url"] = *input.ImageURL
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}

	var accessories []models.Product
	replaceAccessories := input.AccessoryIDs != nil
	if replaceAccessories {
		accessories, err = s.resolveAccessoryRefs(ctx, existing.Kind, *input.AccessoryIDs)
		if err != nil {
			return nil, err
		}
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if len(updates) > 0 {
			if txErr := txRepo.UpdateProduct(ctx, id, updates); txErr != nil {
				return txErr
			}
		}
		if replaceAccessories {
			return txRepo.ReplaceAccessories(ctx, &models.Product{ID: id}, accessories)
		}
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return s.GetProduct(ctx, id)
}

// DeleteProduct soft-disables the row. Quotation lines keep their product
// reference, so hard deletion would orphan history.
func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return err
	}
	if err := s.repo.UpdateProduct(ctx, id, map[string]any{"is_active": false}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "disable product")
	}
	return nil
}

func (s *service) ListProducts(ctx context.Context, params pagination.Params, filter ProductFilter) (*ProductList, error) {
	rows, next, err := s.repo.ListProducts(ctx, params, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	result := &ProductList{Items: rows}
	if next != nil {
		result.Cursor = pagination.EncodeCursor(*next)
	}
	return result, nil
}

func (s *service) findCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category id is required")
	}
	category, err := s.repo.FindCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}
	return category, nil
}

// resolveAccessoryRefs loads and checks bundled accessory references. Bundles
// nest exactly one level: only products carry bundles, and every referenced
// row must itself be an accessory.
func (s *service) resolveAccessoryRefs(ctx context.Context, kind enums.CatalogItemKind, ids []uuid.UUID) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if kind.IsAccessory() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "an accessory cannot carry bundled accessories")
	}

	rows, err := s.repo.FindProductsByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load accessories")
	}
	if len(rows) != len(ids) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "one or more accessory references do not exist")
	}
	byID := make(map[uuid.UUID]models.Product, len(rows))
	for _, row := range rows {
		if !row.Kind.IsAccessory() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("bundled item %q is not an accessory", row.Name))
		}
		byID[row.ID] = row
	}

	// keep bundle order as supplied
	ordered := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		ordered = append(ordered, byID[id])
	}
	return ordered, nil
}

func validateProductInput(input ProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if input.Kind != enums.CatalogItemKindProduct && input.Kind != enums.CatalogItemKindAccessory {
		return pkgerrors.New(pkgerrors.CodeValidation, "kind must be product or accessory")
	}
	if input.UnitPrice.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unit price cannot be negative")
	}
	if input.InstallationFee.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "installation fee cannot be negative")
	}
	return nil
}
