package orders

import (
	"context"

	"gorm.io/gorm"

	"github.com/renewbay/renewbay-backend/pkg/db/models"
	"github.com/renewbay/renewbay-backend/pkg/enums"
	"github.com/renewbay/renewbay-backend/pkg/pagination"
)

// Filters narrows order listings for the staff view.
type Filters struct {
	Email  string
	Status enums.OrderStatus
}

// Repository defines persistence operations for orders, their line items,
// and the attached payment record.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateOrder(ctx context.Context, order *models.Order) error
	CreatePayment(ctx context.Context, payment *models.Payment) error
	FindByID(ctx context.Context, orderID string) (*models.Order, error)
	FindPayment(ctx context.Context, orderID string) (*models.Payment, error)
	// UpdateStatusIf flips status only when the stored value still matches
	// from; the returned count is the compare-and-swap outcome.
	UpdateStatusIf(ctx context.Context, orderID string, from, to enums.OrderStatus) (int64, error)
	List(ctx context.Context, filters Filters, params pagination.Params) ([]models.Order, error)
	ListByEmailAndStatus(ctx context.Context, email string, status enums.OrderStatus, params pagination.Params) ([]models.Order, error)
}
