package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/renewbay/renewbay-backend/pkg/db"
	"github.com/renewbay/renewbay-backend/pkg/db/models"
	"github.com/renewbay/renewbay-backend/pkg/enums"
	pkgerrors "github.com/renewbay/renewbay-backend/pkg/errors"
	"github.com/renewbay/renewbay-backend/pkg/pagination"
)

// Service exposes catalog management and browsing operations.
type Service interface {
	CreateProduct(ctx context.Context, actorEmail string, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, productID uint, input UpdateProductInput) (*ProductDTO, error)
	AdjustStock(ctx context.Context, productID uint, delta int) (*ProductDTO, error)
	GetProduct(ctx context.Context, productID uint) (*ProductDTO, error)
	ListProducts(ctx context.Context, filters Filters, params pagination.Params) ([]ProductDTO, error)
	ListFeatured(ctx context.Context, limit int) ([]ProductDTO, error)
	ListCategories(ctx context.Context) ([]string, error)
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Name           string
	Brand          string
	Category       enums.ProductCategory
	Condition      enums.ProductCondition
	Price          decimal.Decimal
	Stock          int
	WarrantyMonths int
	ImagePath      string
	Description    string
	Featured       bool
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	Name           *string
	Brand          *string
	Category       *enums.ProductCategory
	Condition      *enums.ProductCondition
	Price          *decimal.Decimal
	Stock          *int
	WarrantyMonths *int
	ImagePath      *string
	Description    *string
	Featured       *bool
}

type service struct {
	repo     Repository
	dbClient *db.Client
}

// NewService constructs a catalog service instance.
func NewService(repo Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

// CreateProduct stores a new listing and stamps its slug from the assigned id.
func (s *service) CreateProduct(ctx context.Context, actorEmail string, input CreateProductInput) (*ProductDTO, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if input.Stock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock cannot be negative")
	}
	if input.Category != "" && !input.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid category")
	}
	if input.Condition != "" && !input.Condition.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid condition")
	}

	createdBy := strings.TrimSpace(actorEmail)
	if createdBy == "" {
		createdBy = "system"
	}
	warranty := input.WarrantyMonths
	if warranty <= 0 {
		warranty = models.DefaultWarrantyMonths
	}

	product := &models.Product{
		Name:           strings.TrimSpace(input.Name),
		Brand:          strings.TrimSpace(input.Brand),
		Category:       input.Category,
		Condition:      input.Condition,
		Price:          input.Price,
		Stock:          input.Stock,
		WarrantyMonths: warranty,
		ImagePath:      input.ImagePath,
		Description:    input.Description,
		Featured:       input.Featured,
		CreatedBy:      createdBy,
	}
	if product.Category == "" {
		product.Category = enums.ProductCategoryOther
	}
	if product.Condition == "" {
		product.Condition = enums.ProductConditionGood
	}

	// The slug embeds the assigned id, so the insert and the slug stamp
	// commit together.
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		created, err := repo.Create(ctx, product)
		if err != nil {
			return err
		}
		slug := Slugify(created.Name, created.ID)
		if _, err := repo.Update(ctx, created.ID, map[string]any{"slug": slug}); err != nil {
			return err
		}
		product.Slug = slug
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to create product")
	}

	return toProductDTO(product), nil
}

var updatableColumns = map[string]struct{}{
	"name":            {},
	"brand":           {},
	"category":        {},
	"condition":       {},
	"price":           {},
	"stock":           {},
	"warranty_months": {},
	"image_path":      {},
	"description":     {},
	"featured":        {},
}

// UpdateProduct applies a partial update over the whitelisted columns.
func (s *service) UpdateProduct(ctx context.Context, productID uint, input UpdateProductInput) (*ProductDTO, error) {
	updates := map[string]any{}
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		updates["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Brand != nil {
		updates["brand"] = strings.TrimSpace(*input.Brand)
	}
	if input.Category != nil {
		if !input.Category.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid category")
		}
		updates["category"] = *input.Category
	}
	if input.Condition != nil {
		if !input.Condition.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid condition")
		}
		updates["condition"] = *input.Condition
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
		}
		updates["price"] = *input.Price
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock cannot be negative")
		}
		updates["stock"] = *input.Stock
	}
	if input.WarrantyMonths != nil {
		if *input.WarrantyMonths <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "warranty_months must be positive")
		}
		updates["warranty_months"] = *input.WarrantyMonths
	}
	if input.ImagePath != nil {
		updates["image_path"] = *input.ImagePath
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Featured != nil {
		updates["featured"] = *input.Featured
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no updatable fields provided")
	}
	for column := range updates {
		if _, ok := updatableColumns[column]; !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("field %s is not updatable", column))
		}
	}

	affected, err := s.repo.Update(ctx, productID, updates)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to update product")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	return s.GetProduct(ctx, productID)
}

// AdjustStock applies a clamped delta to the stored stock count.
func (s *service) AdjustStock(ctx context.Context, productID uint, delta int) (*ProductDTO, error) {
	affected, err := s.repo.AdjustStock(ctx, productID, delta)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to adjust stock")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return s.GetProduct(ctx, productID)
}

func (s *service) GetProduct(ctx context.Context, productID uint) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load product")
	}
	return toProductDTO(product), nil
}

func (s *service) ListProducts(ctx context.Context, filters Filters, params pagination.Params) ([]ProductDTO, error) {
	if filters.Category != "" && !filters.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid category")
	}
	if filters.Condition != "" && !filters.Condition.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid condition")
	}
	products, err := s.repo.List(ctx, filters, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to list products")
	}
	return toProductDTOs(products), nil
}

func (s *service) ListFeatured(ctx context.Context, limit int) ([]ProductDTO, error) {
	products, err := s.repo.ListFeatured(ctx, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to list featured products")
	}
	return toProductDTOs(products), nil
}

// ListCategories returns the base category set first, then any extra values
// found in stored rows.
func (s *service) ListCategories(ctx context.Context) ([]string, error) {
	stored, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to list categories")
	}

	base := []string{
		enums.ProductCategoryPhone.String(),
		enums.ProductCategoryLaptop.String(),
		enums.ProductCategoryTablet.String(),
		enums.ProductCategoryAccessory.String(),
		enums.ProductCategoryOther.String(),
	}
	seen := make(map[string]struct{}, len(base))
	for _, category := range base {
		seen[category] = struct{}{}
	}
	out := append([]string{}, base...)
	for _, category := range stored {
		if _, ok := seen[category]; ok {
			continue
		}
		seen[category] = struct{}{}
		out = append(out, category)
	}
	return out, nil
}

// Slugify builds a URL slug from a product name and its assigned id.
func Slugify(name string, id uint) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return fmt.Sprintf("product-%d", id)
	}
	return fmt.Sprintf("%s-%d", slug, id)
}
