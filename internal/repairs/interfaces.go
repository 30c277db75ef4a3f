package repairs

import (
	"context"

	"gorm.io/gorm"

	"github.com/renewbay/renewbay-backend/pkg/db/models"
	"github.com/renewbay/renewbay-backend/pkg/enums"
	"github.com/renewbay/renewbay-backend/pkg/pagination"
)

// Filters narrows ticket listings for the staff view.
type Filters struct {
	Email  string
	Status enums.RepairStatus
}

// Repository defines persistence operations for repair tickets.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, ticket *models.RepairTicket) error
	FindByID(ctx context.Context, ticketID string) (*models.RepairTicket, error)
	Update(ctx context.Context, ticketID string, updates map[string]any) (int64, error)
	// AppendNotes concatenates onto staff_notes in a single UPDATE so two
	// concurrent appends cannot drop each other's text.
	AppendNotes(ctx context.Context, ticketID string, notes string) (int64, error)
	List(ctx context.Context, filters Filters, params pagination.Params) ([]models.RepairTicket, error)
	ListByEmail(ctx context.Context, email string, params pagination.Params) ([]models.RepairTicket, error)
}
