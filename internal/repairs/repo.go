package repairs

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/renewbay/renewbay-backend/pkg/db/models"
	"github.com/renewbay/renewbay-backend/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a repairs repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, ticket *models.RepairTicket) error {
	return r.db.WithContext(ctx).Create(ticket).Error
}

func (r *repository) FindByID(ctx context.Context, ticketID string) (*models.RepairTicket, error) {
	var ticket models.RepairTicket
	if err := r.db.WithContext(ctx).First(&ticket, "ticket = ?", ticketID).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *repository) Update(ctx context.Context, ticketID string, updates map[string]any) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.RepairTicket{}).
		Where("ticket = ?", ticketID).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *repository) AppendNotes(ctx context.Context, ticketID string, notes string) (int64, error) {
	res := r.db.WithContext(ctx).Exec(`
		UPDATE repair_tickets
		SET staff_notes = CASE
				WHEN staff_notes IS NULL OR staff_notes = '' THEN ?
				ELSE staff_notes || ?
			END,
			updated_at = CURRENT_TIMESTAMP
		WHERE ticket = ?
	`, notes, "\n"+notes, ticketID)
	return res.RowsAffected, res.Error
}

func (r *repository) List(ctx context.Context, filters Filters, params pagination.Params) ([]models.RepairTicket, error) {
	params = params.Normalize()

	query := r.db.WithContext(ctx).Model(&models.RepairTicket{})
	if email := strings.TrimSpace(filters.Email); email != "" {
		query = query.Where("email = ?", strings.ToLower(email))
	}
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}

	var tickets []models.RepairTicket
	err := query.
		Order("created_at DESC").
		Limit(params.Limit).
		Offset(params.Offset).
		Find(&tickets).Error
	if err != nil {
		return nil, err
	}
	return tickets, nil
}

func (r *repository) ListByEmail(ctx context.Context, email string, params pagination.Params) ([]models.RepairTicket, error) {
	params = params.Normalize()

	var tickets []models.RepairTicket
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		Order("created_at DESC").
		Limit(params.Limit).
		Offset(params.Offset).
		Find(&tickets).Error
	if err != nil {
		return nil, err
	}
	return tickets, nil
}
