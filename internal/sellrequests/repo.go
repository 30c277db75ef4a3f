package sellrequests

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

// NewRepository builds a sell request repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, request *models.SellRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *repository) FindByID(ctx context.Context, reqID string) (*models.SellRequest, error) {
	var request models.SellRequest
	if err := r.db.WithContext(ctx).First(&request, "req_id = ?", reqID).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *repository) UpdateStatusIf(ctx context.Context, reqID string, from, to enums.SellRequestStatus) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.SellRequest{}).
		Where("req_id = ? AND status = ?", reqID, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}

func (r *repository) List(ctx context.Context, status enums.SellRequestStatus, params pagination.Params) ([]models.SellRequest, error) {
	params = params.Normalize()

	query := r.db.WithContext(ctx).Model(&models.SellRequest{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var requests []models.SellRequest
	err := query.
		Order("created_at DESC").
		Limit(params.Limit).
		Offset(params.Offset).
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *repository) ListByEmail(ctx context.Context, email string, params pagination.Params) ([]models.SellRequest, error) {
	params = params.Normalize()

	var requests []models.SellRequest
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		Order("created_at DESC").
		Limit(params.Limit).
		Offset(params.Offset).
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}
