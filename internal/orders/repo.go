package orders

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/renewbay/renewbay-backend/pkg/db/models"
	"github.com/renewbay/renewbay-backend/pkg/enums"
	"github.com/renewbay/renewbay-backend/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *repository) CreatePayment(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *repository) FindByID(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, "order_id = ?", orderID).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) FindPayment(ctx context.Context, orderID string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).
		First(&payment, "order_id = ?", orderID).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *repository) UpdateStatusIf(ctx context.Context, orderID string, from, to enums.OrderStatus) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("order_id = ? AND status = ?", orderID, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}

func (r *repository) List(ctx context.Context, filters Filters, params pagination.Params) ([]models.Order, error) {
	params = params.Normalize()

	query := r.db.WithContext(ctx).Model(&models.Order{}).Preload("Items")
	if email := strings.TrimSpace(filters.Email); email != "" {
		query = query.Where("email = ?", strings.ToLower(email))
	}
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}

	var orders []models.Order
	err := query.
		Order("created_at DESC").
		Limit(params.Limit).
		Offset(params.Offset).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repository) ListByEmailAndStatus(ctx context.Context, email string, status enums.OrderStatus, params pagination.Params) ([]models.Order, error) {
	params = params.Normalize()

	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("email = ? AND status = ?", strings.ToLower(strings.TrimSpace(email)), status).
		Order("created_at DESC").
		Limit(params.Limit).
		Offset(params.Offset).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}
