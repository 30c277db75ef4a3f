package catalog

import (
	"context"

	"gorm.io/gorm"

	"github.com/renewbay/renewbay-backend/pkg/db/models"
	"github.com/renewbay/renewbay-backend/pkg/enums"
	"github.com/renewbay/renewbay-backend/pkg/pagination"
)

// Filters narrows catalog listings. Query matches name/description
// substrings case-insensitively; Brand matches a brand substring;
// Category and Condition match exactly when set.
type Filters struct {
	Query     string
	Brand     string
	Category  enums.ProductCategory
	Condition enums.ProductCondition
}

// Repository defines persistence operations for the products table.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	FindByID(ctx context.Context, id uint) (*models.Product, error)
	Update(ctx context.Context, id uint, updates map[string]any) (int64, error)
	AdjustStock(ctx context.Context, id uint, delta int) (int64, error)
	List(ctx context.Context, filters Filters, params pagination.Params) ([]models.Product, error)
	ListFeatured(ctx context.Context, limit int) ([]models.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
}

// StockAdjuster is the slice of the catalog the order workflow needs when
// reconciling stock inside its own transaction.
type StockAdjuster interface {
	AdjustStock(ctx context.Context, tx *gorm.DB, productID uint, delta int) error
}
