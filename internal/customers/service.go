package customers

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/quotedesk/quotedesk-backend/pkg/db"
	"github.com/quotedesk/quotedesk-backend/pkg/db/models"
	pkgerrors "github.com/quotedesk/quotedesk-backend/pkg/errors"
	"github.com/quotedesk/quotedesk-backend/pkg/pagination"
)

var mobileRe = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

type repository interface {
	FindByMobile(ctx context.Context, mobile string) (*models.Customer, error)
	Create(ctx context.Context, customer *models.Customer) (*models.Customer, error)
	List(ctx context.Context, params pagination.Params) ([]models.Customer, *pagination.Cursor, error)
}

// Service exposes customer management operations. The mobile number is the
// natural dedup key: Resolve reuses an existing row when the number matches.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Customer, error)
	Lookup(ctx context.Context, mobile string) (*models.Customer, error)
	Resolve(ctx context.Context, input CreateInput) (*models.Customer, error)
	List(ctx context.Context, params pagination.Params) (*ListResult, error)
}

// ListResult wraps one page of customers and the cursor for the next page.
// An empty cursor means the listing is exhausted.
type ListResult struct {
	Items  []models.Customer `json:"items"`
	Cursor string            `json:"cursor,omitempty"`
}

// CreateInput is the validated customer payload.
type CreateInput struct {
	Name    string
	Mobile  string
	Address string
}

type service struct {
	repo repository
}

// NewService constructs a customer service instance.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customer repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Customer, error) {
	input, err := normalizeInput(input)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &models.Customer{
		Name:    input.Name,
		Mobile:  input.Mobile,
		Address: input.Address,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "idx_customers_mobile") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "customer with this mobile already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create customer")
	}
	return created, nil
}

func (s *service) Lookup(ctx context.Context, mobile string) (*models.Customer, error) {
	mobile = strings.TrimSpace(mobile)
	if mobile == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "mobile number is required")
	}

	customer, err := s.repo.FindByMobile(ctx, mobile)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup customer")
	}
	return customer, nil
}

// Resolve finds the customer by exact mobile match or creates one. The
// lookup-then-create pair is not atomic with anything the caller does next;
// a concurrent create with the same mobile resolves via the unique index.
func (s *service) Resolve(ctx context.Context, input CreateInput) (*models.Customer, error) {
	input, err := normalizeInput(input)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByMobile(ctx, input.Mobile)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup customer")
	}

	created, err := s.repo.Create(ctx, &models.Customer{
		Name:    input.Name,
		Mobile:  input.Mobile,
		Address: input.Address,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "idx_customers_mobile") {
			// lost a race; the winner's row is the customer
			return s.Lookup(ctx, input.Mobile)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create customer")
	}
	return created, nil
}

func (s *service) List(ctx context.Context, params pagination.Params) (*ListResult, error) {
	rows, next, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list customers")
	}
	result := &ListResult{Items: rows}
	if next != nil {
		result.Cursor = pagination.EncodeCursor(*next)
	}
	return result, nil
}

func normalizeInput(input CreateInput) (CreateInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Mobile = strings.TrimSpace(input.Mobile)
	input.Address = strings.TrimSpace(input.Address)

	if input.Name == "" {
		return input, pkgerrors.New(pkgerrors.CodeValidation, "customer name is required")
	}
	if !mobileRe.MatchString(input.Mobile) {
		return input, pkgerrors.New(pkgerrors.CodeValidation, "mobile number is invalid")
	}
	if input.Address == "" {
		return input, pkgerrors.New(pkgerrors.CodeValidation, "customer address is required")
	}
	return input, nil
}
