package sellrequests

import (
	"context"

	"gorm.io/gorm"

	"github.com/renewbay/renewbay-backend/pkg/db/models"
	"github.com/renewbay/renewbay-backend/pkg/enums"
	"github.com/renewbay/renewbay-backend/pkg/pagination"
)

// Repository defines persistence operations for sell requests.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, request *models.SellRequest) error
	FindByID(ctx context.Context, reqID string) (*models.SellRequest, error)
	// UpdateStatusIf flips status only when the stored value still matches
	// from; the returned count is the compare-and-swap outcome.
	UpdateStatusIf(ctx context.Context, reqID string, from, to enums.SellRequestStatus) (int64, error)
	List(ctx context.Context, status enums.SellRequestStatus, params pagination.Params) ([]models.SellRequest, error)
	ListByEmail(ctx context.Context, email string, params pagination.Params) ([]models.SellRequest, error)
}
